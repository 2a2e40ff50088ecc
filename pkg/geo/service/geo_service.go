package service

import (
	"context"

	"github.com/paulmach/orb/geojson"

	"agrosmart/pkg/geo/repository"
)

type GeoService interface {
	Points(ctx context.Context, crop string) ([]repository.Point, error)
	FeatureCollection(ctx context.Context, crop string) (*geojson.FeatureCollection, error)
}
