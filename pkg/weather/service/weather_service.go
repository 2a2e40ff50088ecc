package service

import (
	"context"

	"agrosmart/entities"
)

type ObservationInput struct {
	State       string
	LGA         string
	Crop        string
	Temperature string
	Rainfall    string
	Season      string
}

type WeatherService interface {
	Record(ctx context.Context, in ObservationInput) (*entities.WeatherObservation, error)
	Recent(ctx context.Context, state string, limit int) ([]entities.WeatherObservation, error)
}
