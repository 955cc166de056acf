package emulator

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunParallel runs independent emulators concurrently, each limited to
// its own MaxTicks. The first error cancels the remaining runs and is
// returned.
func RunParallel(ctx context.Context, emus ...*Emulator) error {
	group, ctx := errgroup.WithContext(ctx)

	for _, emu := range emus {
		group.Go(func() error {
			return emu.Run(ctx, emu.MaxTicks)
		})
	}

	return group.Wait()
}
