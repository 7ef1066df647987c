package richtext

import "github.com/sirupsen/logrus"

type options struct {
	keys   KeyGen
	logger logrus.FieldLogger
}

// Option configures how edits are applied.
type Option func(*options)

// WithKeys sets the generator used for every run or paragraph created by an
// edit.
func WithKeys(keys KeyGen) Option {
	return func(o *options) {
		if keys != nil {
			o.keys = keys
		}
	}
}

// WithLogger sets the logger used to report edits that were ignored.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		keys:   UUIDKeys,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
