// Package app implements the application layer for topo.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/topo/internal/core/ports"
	"go.trai.ch/topo/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader ports.ManifestLoader
	log    ports.Logger
}

// New creates a new App instance.
func New(loader ports.ManifestLoader, log ports.Logger) *App {
	return &App{
		loader: loader,
		log:    log,
	}
}

// PlanOptions controls how a resolved plan is rendered.
type PlanOptions struct {
	// Levels groups components into parallel build levels instead of a flat order.
	Levels bool
}

// plan is the resolution result for a single manifest.
type plan struct {
	path   string
	order  []string
	levels [][]string
}

// Plan resolves each manifest into a build order and writes the result to
// out. Manifests are independent, so they are resolved concurrently; output
// is rendered in argument order once all of them succeeded. Any failure
// aborts the whole call without partial output.
func (a *App) Plan(ctx context.Context, paths []string, out io.Writer, opts PlanOptions) error {
	plans := make([]*plan, len(paths))

	eg, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := a.resolve(path, opts)
			if err != nil {
				return err
			}
			plans[i] = p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for i, p := range plans {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if len(plans) > 1 {
			fmt.Fprintf(out, "# %s\n", p.path)
		}
		p.render(out)
	}
	return nil
}

// resolve loads a single manifest and computes its order or leveling.
func (a *App) resolve(path string, opts PlanOptions) (*plan, error) {
	m, err := a.loader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load manifest")
	}

	g, err := resolver.BuildGraph(m)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build dependency graph")
	}

	p := &plan{path: path}
	if opts.Levels {
		p.levels, err = g.Levels()
	} else {
		p.order, err = g.Order()
	}
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve build order")
	}

	a.log.Info(fmt.Sprintf("resolved %d components from %s", g.Len(), path))
	return p, nil
}

// render writes the plan to out: one component per line for a flat order,
// one "level N: ..." line per parallel group for a leveling.
func (p *plan) render(out io.Writer) {
	if p.levels != nil {
		for i, level := range p.levels {
			fmt.Fprintf(out, "level %d: %s\n", i, strings.Join(level, " "))
		}
		return
	}
	for _, name := range p.order {
		fmt.Fprintln(out, name)
	}
}
