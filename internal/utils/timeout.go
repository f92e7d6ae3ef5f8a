package utils

import (
	"context"
	"time"
)

// No retry policy on top of this: a timed-out gateway call is terminal for
// the triggering action.
const DefaultGatewayTimeout = 5 * time.Second

func WithGatewayTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultGatewayTimeout)
}
