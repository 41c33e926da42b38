package usecase

import "context"

func (uc *implUseCase) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		uc.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		uc.l.Warnf(ctx, "internal.risk.usecase.Drain: %v", ctx.Err())
		return ctx.Err()
	}
}
