package repository

import "context"

type LocationRepository interface {
	ListStates(ctx context.Context) ([]string, error)
	// ListLGAs returns the LGAs of one state in seeded order. An unknown state
	// yields an empty slice and no error.
	ListLGAs(ctx context.Context, state string) ([]string, error)
}
