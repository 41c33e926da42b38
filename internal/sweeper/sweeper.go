package sweeper

import (
	"context"
	"time"

	"dropout-srv/internal/alert"
	"dropout-srv/internal/metrics"
	pkgLog "dropout-srv/pkg/log"
)

// DefaultInterval is used when no interval is configured.
const DefaultInterval = 5 * time.Minute

// Sweeper runs the escalation pass on a fixed schedule.
type Sweeper struct {
	l        pkgLog.Logger
	uc       alert.UseCase
	lease    Lease
	metrics  *metrics.Metrics
	interval time.Duration
}

func New(l pkgLog.Logger, uc alert.UseCase, lease Lease, m *metrics.Metrics, interval time.Duration) *Sweeper {
	if lease == nil {
		lease = NewNopLease()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{
		l:        l,
		uc:       uc,
		lease:    lease,
		metrics:  m,
		interval: interval,
	}
}

// Run sweeps once right away and then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	s.l.Infof(ctx, "internal.sweeper.Run: started, interval=%s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
			s.l.Errorf(ctx, "internal.sweeper.Run.RunOnce: %v", err)
		}

		select {
		case <-ctx.Done():
			s.l.Info(context.Background(), "internal.sweeper.Run: stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce performs a single pass if the lease is free. ran is false when another holder owns it.
func (s *Sweeper) RunOnce(ctx context.Context) (out alert.SweepOutput, ran bool, err error) {
	token, ok, err := s.lease.Acquire(ctx)
	if err != nil {
		s.l.Warnf(ctx, "internal.sweeper.RunOnce.lease.Acquire: %v", err)
		s.metrics.SweepFinished("skipped", 0, 0)
		return alert.SweepOutput{}, false, err
	}
	if !ok {
		s.l.Debugf(ctx, "internal.sweeper.RunOnce: lease held elsewhere, skipping pass")
		s.metrics.SweepFinished("skipped", 0, 0)
		return alert.SweepOutput{}, false, nil
	}
	defer func() {
		// ctx may already be cancelled; the release must still reach redis.
		if err := s.lease.Release(context.WithoutCancel(ctx), token); err != nil {
			s.l.Warnf(ctx, "internal.sweeper.RunOnce.lease.Release: %v", err)
		}
	}()

	out, err = s.uc.Sweep(ctx)
	return out, true, err
}
