package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"agrosmart/entities"
	"agrosmart/pkg/location/repository"
)

type locationRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.LocationRepository { return &locationRepo{db} }

func (r *locationRepo) ListStates(ctx context.Context) ([]string, error) {
	out := []string{}
	err := r.db.WithContext(ctx).Model(&entities.State{}).Order("name ASC").Pluck("name", &out).Error
	return out, err
}

func (r *locationRepo) ListLGAs(ctx context.Context, state string) ([]string, error) {
	out := []string{}
	err := r.db.WithContext(ctx).
		Model(&entities.LGA{}).
		Joins("JOIN states ON states.id = lgas.state_id").
		Where("states.name = ?", state).
		Order("lgas.id ASC").
		Pluck("lgas.name", &out).Error
	return out, err
}
