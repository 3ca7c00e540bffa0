package database

import "context"

// Pinger is a backing store that can report whether it is reachable.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}
