package resynth

import (
	"fmt"

	"github.com/cwbudde/algo-lpc/dsp/core"
)

// MinOrder is the smallest usable prediction order.
const MinOrder = 1

// OrderPolicy selects how a frame boundary treats an out-of-range order.
type OrderPolicy int

const (
	// OrderClamp clamps the order to [MinOrder, MaxOrder]. A non-finite order
	// control falls back to core.DefaultOrder.
	OrderClamp OrderPolicy = iota
	// OrderReject skips analysis and synthesis for the frame, keeps the
	// previous output frame and records ErrInvalidOrder.
	OrderReject
)

// String returns the policy name.
func (p OrderPolicy) String() string {
	switch p {
	case OrderClamp:
		return "clamp"
	case OrderReject:
		return "reject"
	default:
		return fmt.Sprintf("OrderPolicy(%d)", int(p))
	}
}

// Option configures a Processor at construction time.
type Option func(*config) error

type config struct {
	frameSize int
	maxOrder  int
	order     int
	whisper   bool
	policy    OrderPolicy
}

func defaultConfig() config {
	return config{
		order:  core.DefaultOrder,
		policy: OrderClamp,
	}
}

// WithFrameSize sets the frame size. Without it the codec's FrameSize() is
// used when available, otherwise core.DefaultFrameSize.
func WithFrameSize(size int) Option {
	return func(cfg *config) error {
		if size < 1 {
			return fmt.Errorf("resynth: frame size must be >= 1: %d", size)
		}

		cfg.frameSize = size

		return nil
	}
}

// WithMaxOrder sets the size of the coefficient buffer. Without it the
// codec's MaxOrder() is used when available, otherwise core.DefaultMaxOrder.
func WithMaxOrder(order int) Option {
	return func(cfg *config) error {
		if order < MinOrder {
			return fmt.Errorf("resynth: max order must be >= %d: %d", MinOrder, order)
		}

		cfg.maxOrder = order

		return nil
	}
}

// WithOrder sets the initial prediction order.
func WithOrder(order int) Option {
	return func(cfg *config) error {
		if order < MinOrder {
			return fmt.Errorf("resynth: order must be >= %d: %d", MinOrder, order)
		}

		cfg.order = order

		return nil
	}
}

// WithWhisper sets the initial whisper state.
func WithWhisper(enabled bool) Option {
	return func(cfg *config) error {
		cfg.whisper = enabled
		return nil
	}
}

// WithOrderPolicy selects the invalid-order handling. Defaults to OrderClamp.
func WithOrderPolicy(policy OrderPolicy) Option {
	return func(cfg *config) error {
		if policy != OrderClamp && policy != OrderReject {
			return fmt.Errorf("resynth: invalid order policy: %d", policy)
		}

		cfg.policy = policy

		return nil
	}
}
