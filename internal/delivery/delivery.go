// Package delivery defines the contract every transport adapter satisfies.
package delivery

import "context"

// Delivery is a server that accepts external traffic (HTTP today).
type Delivery interface {
	// Serve blocks until the server stops or the context is canceled.
	Serve(ctx context.Context) error
}
