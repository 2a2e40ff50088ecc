package repository

import (
	"context"

	"agrosmart/entities"
)

type WeatherRepository interface {
	Create(ctx context.Context, o *entities.WeatherObservation) error
	// Latest returns the most recent observation for the location and crop.
	// Empty lga or crop match any value. gorm.ErrRecordNotFound when none exist.
	Latest(ctx context.Context, state, lga, crop string) (*entities.WeatherObservation, error)
	List(ctx context.Context, state string, limit int) ([]entities.WeatherObservation, error)
}
