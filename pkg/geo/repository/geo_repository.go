package repository

import "context"

// Point is the farmer count of one (state, LGA) with its seeded coordinate.
type Point struct {
	State string  `json:"state"`
	LGA   string  `json:"lga"`
	Count int64   `json:"count"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

type GeoRepository interface {
	// Aggregate groups farmers by (state, LGA). Pairs without a seeded
	// coordinate are left out. crop filters by case-insensitive substring.
	Aggregate(ctx context.Context, crop string) ([]Point, error)
}
