package usecase

import (
	"sync"
	"time"

	"dropout-srv/internal/alert"
	"dropout-srv/internal/metrics"
	"dropout-srv/internal/risk"
	"dropout-srv/internal/risk/backend"
	"dropout-srv/internal/student"
	pkgLog "dropout-srv/pkg/log"
)

// sideEffectTimeout bounds the detached work that follows an assessment.
const sideEffectTimeout = 30 * time.Second

type implUseCase struct {
	l          pkgLog.Logger
	holder     *backend.Holder
	studentUC  student.UseCase
	alertUC    alert.UseCase
	metrics    *metrics.Metrics
	thresholds risk.Thresholds
	clock      func() time.Time
	pending    sync.WaitGroup
}

func New(
	l pkgLog.Logger,
	holder *backend.Holder,
	studentUC student.UseCase,
	alertUC alert.UseCase,
	m *metrics.Metrics,
	thresholds risk.Thresholds,
) risk.UseCase {
	if err := thresholds.Validate(); err != nil {
		thresholds = risk.Thresholds{Moderate: risk.DefaultModerateThreshold, High: risk.DefaultHighThreshold}
	}
	return &implUseCase{
		l:          l,
		holder:     holder,
		studentUC:  studentUC,
		alertUC:    alertUC,
		metrics:    m,
		thresholds: thresholds,
		clock:      time.Now,
	}
}
