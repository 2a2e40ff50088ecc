package repository

import (
	"context"

	"agrosmart/entities"
)

// Filter narrows a listing. Zero fields match everything. State and LGA are
// exact matches; Query matches name or crop and Crop matches crop only, both
// as case-insensitive substrings.
type Filter struct {
	State string `query:"state" json:"state"`
	LGA   string `query:"lga" json:"lga"`
	Query string `query:"q" json:"q"`
	Crop  string `query:"crop" json:"crop"`
}

func (f Filter) IsZero() bool { return f == Filter{} }

type StateCount struct {
	State string `json:"state"`
	Count int64  `json:"count"`
}

type FarmerRepository interface {
	Create(ctx context.Context, f *entities.Farmer) error
	// List returns matching farmers newest first. limit <= 0 means no limit.
	List(ctx context.Context, f Filter, limit int) ([]entities.Farmer, error)
	StateCounts(ctx context.Context) ([]StateCount, error)
}
