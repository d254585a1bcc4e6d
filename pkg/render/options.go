package render

import (
	"log/slog"

	"github.com/taigrr/vista/pkg/state"
)

// Option configures a DispatchVisitor.
//
// Example:
//
//	v := render.NewDispatchVisitor(cb,
//		render.WithDepthPlanes(),
//		render.WithLogger(slog.Default()),
//	)
type Option func(*options)

type options struct {
	depthPlanes bool
	noCulling   bool
	logger      *slog.Logger
	state       *state.State
}

func defaultOptions() options {
	return options{}
}

// WithDepthPlanes adds the near and far planes to the culling volume.
// Without it only the four side planes are tested.
func WithDepthPlanes() Option {
	return func(o *options) {
		o.depthPlanes = true
	}
}

// WithoutCulling makes every cull node pass without being tested.
func WithoutCulling() Option {
	return func(o *options) {
		o.noCulling = true
	}
}

// WithLogger sets the visitor's logger instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithState makes the visitor traverse with s instead of a fresh State.
func WithState(s *state.State) Option {
	return func(o *options) {
		o.state = s
	}
}
