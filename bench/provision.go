package bench

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Driver is a client implementation known to the harness.
type Driver struct {
	Name      string
	Engine    Engine
	Caps      Caps
	Reference bool

	// WarmupQueries trivial queries are issued against this driver after it
	// is opened so its statement cache is at steady state before sampling.
	WarmupQueries int
	WarmupSQL     string

	// Open returns a target holding at most size physical connections.
	Open func(ctx context.Context, size int) (Target, error)
}

// Registry maps driver names to their presence, resolved once at construction.
type Registry struct {
	drivers []Driver
	present map[string]bool
}

// NewRegistry registers drivers in order. A driver without an Open function is absent.
// When only is non-empty, drivers not listed in it are absent too.
func NewRegistry(only []string, drivers ...Driver) (*Registry, error) {
	allow := map[string]bool{}
	for _, n := range only {
		allow[n] = true
	}

	r := &Registry{present: map[string]bool{}}
	refs := 0
	for _, d := range drivers {
		if _, dup := r.present[d.Name]; dup {
			return nil, fmt.Errorf("driver %q registered twice", d.Name)
		}
		on := d.Open != nil && (len(allow) == 0 || allow[d.Name])
		r.present[d.Name] = on
		r.drivers = append(r.drivers, d)
		if d.Reference {
			refs++
			if !on {
				return nil, fmt.Errorf("reference driver %q is not available", d.Name)
			}
		}
	}
	if refs != 1 {
		return nil, fmt.Errorf("expected exactly one reference driver, got %d", refs)
	}
	return r, nil
}

func (r *Registry) Present(name string) bool {
	return r.present[name]
}

// Reference returns the reference driver.
func (r *Registry) Reference() Driver {
	for _, d := range r.drivers {
		if d.Reference {
			return d
		}
	}
	return Driver{}
}

// Eligible lists the present drivers that can run w, reference first.
func (r *Registry) Eligible(w Workload) []Driver {
	var out []Driver
	for _, d := range r.drivers {
		if !r.present[d.Name] {
			continue
		}
		if w.ReferenceOnly && !d.Reference {
			continue
		}
		if w.RequireExecute && !d.Caps.Execute {
			continue
		}
		if d.Engine != MySQL && !w.Portable {
			continue
		}
		if d.Reference {
			out = append([]Driver{d}, out...)
		} else {
			out = append(out, d)
		}
	}
	return out
}

// Provisioner opens one target per eligible driver for a workload.
type Provisioner struct {
	Registry *Registry
	Log      zerolog.Logger
}

// Provision opens a connection (or a pool of w.PoolSize when w.RequiresPool) per
// eligible driver. Drivers that fail to open or warm up are left out.
func (p *Provisioner) Provision(ctx context.Context, w Workload) ([]Target, error) {
	size := w.size()
	var targets []Target
	for _, d := range p.Registry.Eligible(w) {
		log := p.Log.With().Str("workload", w.Title).Str("driver", d.Name).Int("size", size).Logger()

		t, err := p.open(ctx, d, size)
		if err != nil {
			log.Warn().Err(err).Msg("driver excluded")
			continue
		}
		log.Debug().Msg("target ready")
		targets = append(targets, t)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("%q: no driver could be provisioned", w.Title)
	}
	return targets, nil
}

func (p *Provisioner) open(ctx context.Context, d Driver, size int) (Target, error) {
	octx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	t, err := d.Open(octx, size)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if d.WarmupQueries > 0 {
		if err := warmup(ctx, t, d.Caps.Execute, d.WarmupSQL, d.WarmupQueries, size); err != nil {
			return nil, errors.Join(fmt.Errorf("warmup: %w", err), t.Close())
		}
	}
	return t, nil
}

// warmup goes through the prepared path when the driver has one, since that is
// where statement caches live.
func warmup(ctx context.Context, t Target, prepared bool, query string, n, limit int) error {
	run := t.Query
	if prepared {
		run = t.Execute
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			_, err := run(ctx, query, i)
			return err
		})
	}
	return g.Wait()
}

// OpenReference opens a single reference connection, used for setup and teardown.
func (p *Provisioner) OpenReference(ctx context.Context) (Target, error) {
	d := p.Registry.Reference()
	octx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()
	return d.Open(octx, 1)
}
