package importer

import "github.com/jhoicas/changerank-api/pkg/logger"

type options struct {
	log *logger.Logger
	obs Observer
}

// Option configura los casos de uso de importación.
type Option func(*options)

// WithLogger fija el logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithObserver fija el receptor de métricas.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.obs = obs }
}

func buildOptions(opts []Option) options {
	o := options{log: logger.Nop(), obs: nopObserver{}}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
