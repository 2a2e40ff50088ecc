package service

import "context"

type LocationService interface {
	States(ctx context.Context) ([]string, error)
	LGAs(ctx context.Context, state string) ([]string, error)
}
