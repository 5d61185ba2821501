package pages

import "go.uber.org/zap"

// Option configures a Document.
type Option func(*config)

type config struct {
	logger   *zap.Logger
	compress bool
}

func defaultConfig() config {
	return config{
		logger:   zap.NewNop(),
		compress: true,
	}
}

// WithLogger sets the logger used for page-tree diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCompression controls whether streams written by the page model
// (content streams, ICC profiles) are flate compressed. Default: true.
func WithCompression(enabled bool) Option {
	return func(c *config) {
		c.compress = enabled
	}
}
