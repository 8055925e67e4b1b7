package factory

import (
	"log/slog"

	"github.com/viant/xconv/internal/logging"
)

type (
	//Options represents builder and invoker options
	Options struct {
		logger *slog.Logger
	}

	//Option represents an option
	Option func(o *Options)
)

// WithLogger sets a logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) *Options {
	ret := &Options{}
	for _, opt := range opts {
		opt(ret)
	}
	ret.logger = logging.OrNop(ret.logger)
	return ret
}
