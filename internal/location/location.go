// Package location defines the position-watch capability the tracker
// consumes and a push-style implementation fed by HTTP and MQTT.
package location

import (
	"context"
	"time"

	"github.com/Harissh-lab/arm-scout/internal/domain"
)

type WatchOptions struct {
	HighAccuracy bool
	MaximumAge   time.Duration
	Timeout      time.Duration
}

// Source starts a position watch. Both channels are closed when ctx is
// done. An error returned from Watch means the capability is unavailable.
type Source interface {
	Watch(ctx context.Context, opts WatchOptions) (<-chan domain.PositionFix, <-chan error, error)
}
