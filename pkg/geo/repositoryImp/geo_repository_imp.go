package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"agrosmart/entities"
	farmerRepo "agrosmart/pkg/farmer/repository"
	farmerRepoImp "agrosmart/pkg/farmer/repositoryImp"
	"agrosmart/pkg/geo/repository"
)

type geoRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.GeoRepository { return &geoRepo{db} }

func (r *geoRepo) Aggregate(ctx context.Context, crop string) ([]repository.Point, error) {
	q := r.db.WithContext(ctx).
		Model(&entities.Farmer{}).
		Select("farmers.state AS state, farmers.lga AS lga, COUNT(*) AS count, coordinates.lat AS lat, coordinates.lng AS lng").
		Joins("JOIN coordinates ON coordinates.state = farmers.state AND coordinates.lga = farmers.lga")
	q = farmerRepoImp.Apply(q, farmerRepo.Filter{Crop: crop})

	out := []repository.Point{}
	err := q.Group("farmers.state, farmers.lga, coordinates.lat, coordinates.lng").
		Order("farmers.state ASC").
		Order("farmers.lga ASC").
		Scan(&out).Error
	return out, err
}
