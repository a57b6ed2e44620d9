// Package channels hosts the conversational transports. Each channel
// mounts its routes on the gateway router and decides whether to answer
// synchronously or through the message bus.
package channels

import (
	"context"

	"github.com/go-chi/chi/v5"
)

// TurnHandler processes one user message and returns the replies.
type TurnHandler func(ctx context.Context, sessionID, message string) []string

// Channel is a conversational transport.
type Channel interface {
	// Name identifies the channel on the bus.
	Name() string
	// Mount registers the channel's routes on the gateway router.
	Mount(r chi.Router)
}
