package repositoryImp

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"agrosmart/entities"
	"agrosmart/pkg/weather/repository"
)

type weatherRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.WeatherRepository { return &weatherRepo{db} }

func (r *weatherRepo) Create(ctx context.Context, o *entities.WeatherObservation) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *weatherRepo) Latest(ctx context.Context, state, lga, crop string) (*entities.WeatherObservation, error) {
	q := r.db.WithContext(ctx).Where("state = ?", state)
	if lga != "" {
		q = q.Where("lga = ?", lga)
	}
	if crop != "" {
		q = q.Where("LOWER(crop) = ?", strings.ToLower(crop))
	}
	var o entities.WeatherObservation
	if err := q.Order("recorded_at DESC").Order("id DESC").First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *weatherRepo) List(ctx context.Context, state string, limit int) ([]entities.WeatherObservation, error) {
	q := r.db.WithContext(ctx).Order("recorded_at DESC").Order("id DESC")
	if state != "" {
		q = q.Where("state = ?", state)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	out := []entities.WeatherObservation{}
	return out, q.Find(&out).Error
}
