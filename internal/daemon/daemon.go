// Package daemon runs the display query service: an IPC server over
// the runtime socket plus an optional screen-change watch. The
// resolver stays stateless; the daemon only adds a long-lived home
// for it, query logging, and config reload.
package daemon

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sheen-dev/sheen/internal/display"
	"github.com/sheen-dev/sheen/internal/ipc"
	"github.com/sheen-dev/sheen/internal/logging"
)

// Options configures a daemon run.
type Options struct {
	// Backend is the name of the active display backend.
	Backend string

	// Resolver serves all display queries.
	Resolver display.Resolver

	// QueryLog records served queries; may be a disabled logger.
	QueryLog *logging.Logger

	// Reopen rebuilds the resolver after a RELOAD request. Nil
	// disables reload.
	Reopen func() (string, display.Resolver, error)

	// Watch blocks while delivering display reconfiguration
	// callbacks, returning when the daemon shuts down. Nil disables
	// watching (static backend).
	Watch func(onChange func()) error
}

// Daemon owns the IPC server and the watch goroutine.
type Daemon struct {
	opts   Options
	server *ipc.Server
	reload chan struct{}
}

// New creates a daemon from options.
func New(opts Options) (*Daemon, error) {
	if opts.Resolver == nil {
		return nil, fmt.Errorf("daemon requires a resolver")
	}

	var reload chan struct{}
	if opts.Reopen != nil {
		reload = make(chan struct{}, 1)
	}

	server, err := ipc.NewServer(opts.Backend, opts.Resolver, opts.QueryLog, reload)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		opts:   opts,
		server: server,
		reload: reload,
	}, nil
}

// Run serves until ctx is canceled.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.server.Start(); err != nil {
		return err
	}
	defer d.server.Stop()

	slog.Info("daemon started", "backend", d.opts.Backend)

	if d.opts.Watch != nil {
		go d.watch()
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("daemon stopping")
			return nil
		case <-d.reload:
			d.handleReload()
		}
	}
}

func (d *Daemon) handleReload() {
	backend, resolver, err := d.opts.Reopen()
	if err != nil {
		slog.Error("reload failed, keeping current resolver", "error", err)
		return
	}
	d.server.SetResolver(backend, resolver)
	slog.Info("configuration reloaded", "backend", backend)
}

func (d *Daemon) watch() {
	err := d.opts.Watch(func() {
		count := -1
		if n, err := d.opts.Resolver.DisplayCount(); err == nil {
			count = n
		}
		d.opts.QueryLog.Log(logging.EventReconfigure, map[string]interface{}{"displays": count})
		slog.Info("display configuration changed", "displays", count)
	})
	if err != nil {
		slog.Warn("screen change watch ended", "error", err)
	}
}
