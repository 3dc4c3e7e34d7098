package dhash

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	// DefaultMinBaseSize is the smallest base size a table shrinks to.
	DefaultMinBaseSize = 53
	// DefaultMaxBaseSize bounds growth.
	DefaultMaxBaseSize = 1 << 30
	// DefaultGrowThreshold is the load factor percentage above which Insert grows the table.
	DefaultGrowThreshold = 70
	// DefaultShrinkThreshold is the load factor percentage below which Delete shrinks the table.
	DefaultShrinkThreshold = 10
)

type config struct {
	minBaseSize     int
	maxBaseSize     int
	growThreshold   int
	shrinkThreshold int
	logger          *zap.Logger
}

// Option configures a Table.
type Option func(*config) error

// WithMinBaseSize sets the base size of a new table and the floor for shrinking.
func WithMinBaseSize(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("min base size %d: %w", n, ErrInvalidConfig)
		}
		c.minBaseSize = n
		return nil
	}
}

// WithMaxBaseSize sets the largest base size growth may reach.
func WithMaxBaseSize(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("max base size %d: %w", n, ErrInvalidConfig)
		}
		c.maxBaseSize = n
		return nil
	}
}

// WithGrowThreshold sets the load factor percentage that triggers growth.
func WithGrowThreshold(pct int) Option {
	return func(c *config) error {
		if pct <= 0 || pct >= 100 {
			return fmt.Errorf("grow threshold %d: %w", pct, ErrInvalidConfig)
		}
		c.growThreshold = pct
		return nil
	}
}

// WithShrinkThreshold sets the load factor percentage that triggers shrinking.
// Zero disables shrinking.
func WithShrinkThreshold(pct int) Option {
	return func(c *config) error {
		if pct < 0 || pct >= 100 {
			return fmt.Errorf("shrink threshold %d: %w", pct, ErrInvalidConfig)
		}
		c.shrinkThreshold = pct
		return nil
	}
}

// WithLogger sets the logger used to report resizes.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return fmt.Errorf("nil logger: %w", ErrInvalidConfig)
		}
		c.logger = logger
		return nil
	}
}

func newConfig(opts []Option) (config, error) {
	c := config{
		minBaseSize:     DefaultMinBaseSize,
		maxBaseSize:     DefaultMaxBaseSize,
		growThreshold:   DefaultGrowThreshold,
		shrinkThreshold: DefaultShrinkThreshold,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return config{}, err
		}
	}
	if c.maxBaseSize < c.minBaseSize {
		return config{}, fmt.Errorf("max base size %d below min base size %d: %w",
			c.maxBaseSize, c.minBaseSize, ErrInvalidConfig)
	}
	if c.shrinkThreshold >= c.growThreshold {
		return config{}, fmt.Errorf("shrink threshold %d not below grow threshold %d: %w",
			c.shrinkThreshold, c.growThreshold, ErrInvalidConfig)
	}
	return c, nil
}
