package usecase

import (
	"time"

	"dropout-srv/internal/alert"
	"dropout-srv/internal/alert/repository"
	"dropout-srv/internal/metrics"
	"dropout-srv/internal/notification"
	"dropout-srv/internal/student"
	"dropout-srv/internal/user"
	"dropout-srv/pkg/log"
)

type implUseCase struct {
	l        log.Logger
	repo     repository.Repository
	students student.UseCase
	users    user.UseCase
	notifier notification.Dispatcher
	metrics  *metrics.Metrics
	opts     alert.Options
	clock    func() time.Time
}

func New(
	l log.Logger,
	repo repository.Repository,
	students student.UseCase,
	users user.UseCase,
	notifier notification.Dispatcher,
	m *metrics.Metrics,
	opts alert.Options,
) alert.UseCase {
	if opts.ResponseWindow <= 0 {
		opts.ResponseWindow = alert.DefaultResponseWindow
	}
	if opts.ReescalationInterval <= 0 {
		opts.ReescalationInterval = alert.DefaultReescalationInterval
	}
	if opts.SweepBatchSize <= 0 {
		opts.SweepBatchSize = alert.DefaultSweepBatchSize
	}
	if notifier == nil {
		notifier = notification.Nop()
	}

	return &implUseCase{
		l:        l,
		repo:     repo,
		students: students,
		users:    users,
		notifier: notifier,
		metrics:  m,
		opts:     opts,
		clock:    time.Now,
	}
}

// now is truncated to the precision TIMESTAMPTZ keeps.
func (uc *implUseCase) now() time.Time {
	return uc.clock().UTC().Truncate(time.Microsecond)
}
