package app

import (
	"context"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/buildviz/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Watch renders the snapshot once and again whenever its content changes,
// until ctx is done. Failed renders are logged and the previous output is kept.
func (a *App) Watch(ctx context.Context, opts RenderOptions) error {
	settings, err := a.loadSettings(opts.ConfigPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.watcher.Start(ctx, opts.Snapshot); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		return a.watcher.Stop()
	})

	g.Go(func() error {
		defer cancel()

		var (
			last     uint64
			rendered bool
		)
		refresh := func() {
			data, err := os.ReadFile(opts.Snapshot)
			if err != nil {
				a.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrSnapshotReadFailed.Error()), "path", opts.Snapshot))
				return
			}
			sum := xxhash.Sum64(data)
			if rendered && sum == last {
				return
			}
			if err := a.render(opts, settings.Render); err != nil {
				a.logger.Error(err)
				return
			}
			last, rendered = sum, true
			if opts.Output != "" {
				a.logger.Info(fmt.Sprintf("rendered %s to %s", opts.Snapshot, opts.Output))
			}
		}

		refresh()
		for range a.watcher.Changes() {
			refresh()
		}
		return nil
	})

	return g.Wait()
}
