package serviceImp

import (
	"context"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	repo "agrosmart/pkg/geo/repository"
	"agrosmart/pkg/geo/service"
)

type geoSvc struct{ r repo.GeoRepository }

func NewGeoService(r repo.GeoRepository) service.GeoService { return &geoSvc{r} }

func (s *geoSvc) Points(ctx context.Context, crop string) ([]repo.Point, error) {
	pts, err := s.r.Aggregate(ctx, strings.TrimSpace(crop))
	if err != nil {
		return nil, fmt.Errorf("aggregate map points: %w", err)
	}
	return pts, nil
}

// FeatureCollection renders the points as GeoJSON. GeoJSON positions are
// [lng, lat].
func (s *geoSvc) FeatureCollection(ctx context.Context, crop string) (*geojson.FeatureCollection, error) {
	pts, err := s.Points(ctx, crop)
	if err != nil {
		return nil, err
	}
	fc := geojson.NewFeatureCollection()
	for _, p := range pts {
		f := geojson.NewFeature(orb.Point{p.Lng, p.Lat})
		f.Properties["state"] = p.State
		f.Properties["lga"] = p.LGA
		f.Properties["count"] = p.Count
		fc.Append(f)
	}
	return fc, nil
}
