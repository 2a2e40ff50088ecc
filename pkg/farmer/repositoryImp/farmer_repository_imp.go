package repositoryImp

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"agrosmart/entities"
	"agrosmart/pkg/farmer/repository"
)

type farmerRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmerRepository { return &farmerRepo{db} }

func (r *farmerRepo) Create(ctx context.Context, f *entities.Farmer) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *farmerRepo) List(ctx context.Context, f repository.Filter, limit int) ([]entities.Farmer, error) {
	q := Apply(r.db.WithContext(ctx).Model(&entities.Farmer{}), f)
	if limit > 0 {
		q = q.Limit(limit)
	}
	out := []entities.Farmer{}
	err := q.Order("created_at DESC").Order("id DESC").Find(&out).Error
	return out, err
}

func (r *farmerRepo) StateCounts(ctx context.Context) ([]repository.StateCount, error) {
	out := []repository.StateCount{}
	err := r.db.WithContext(ctx).
		Model(&entities.Farmer{}).
		Select("state, COUNT(*) AS count").
		Group("state").
		Order("count DESC").
		Order("state ASC").
		Scan(&out).Error
	return out, err
}

// Apply adds the filter conditions for the farmers table to q.
func Apply(q *gorm.DB, f repository.Filter) *gorm.DB {
	if s := strings.TrimSpace(f.State); s != "" {
		q = q.Where("farmers.state = ?", s)
	}
	if l := strings.TrimSpace(f.LGA); l != "" {
		q = q.Where("farmers.lga = ?", l)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		p := likePattern(s)
		q = q.Where("(LOWER(farmers.name) LIKE ? ESCAPE '!' OR LOWER(farmers.crop) LIKE ? ESCAPE '!')", p, p)
	}
	if s := strings.TrimSpace(f.Crop); s != "" {
		q = q.Where("LOWER(farmers.crop) LIKE ? ESCAPE '!'", likePattern(s))
	}
	return q
}

// likePattern lower-cases s and escapes LIKE wildcards so user input is
// matched literally.
func likePattern(s string) string {
	s = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(strings.ToLower(s))
	return "%" + s + "%"
}
