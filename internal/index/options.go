package index

type options struct {
	k1               float64
	b                float64
	buildConcurrency int
}

func defaultOptions() options {
	return options{
		k1:               DefaultK1,
		b:                DefaultB,
		buildConcurrency: 1,
	}
}

// Option configures index construction.
type Option func(*options)

// WithK1 sets the term-frequency saturation parameter.
func WithK1(k1 float64) Option {
	return func(o *options) {
		o.k1 = k1
	}
}

// WithB sets the document-length normalization strength.
func WithB(b float64) Option {
	return func(o *options) {
		o.b = b
	}
}

// WithBuildConcurrency sets the number of workers used to compute per-document
// term-frequency tables during Build. Values <= 1 build serially. The
// resulting index is identical either way.
func WithBuildConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.buildConcurrency = n
		}
	}
}
