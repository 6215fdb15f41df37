package services

import "github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/ports"

type options struct {
	observer ports.BatchObserver
}

type Option func(*options)

// WithBatchObserver reports the size of every batched catalog lookup.
func WithBatchObserver(o ports.BatchObserver) Option {
	return func(opts *options) { opts.observer = o }
}

func buildOptions(opts []Option) options {
	o := options{observer: noopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.observer == nil {
		o.observer = noopObserver{}
	}
	return o
}

type noopObserver struct{}

func (noopObserver) ObserveBatch(int) {}
