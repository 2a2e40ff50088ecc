package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"go.uber.org/zap"

	"agrosmart/entities"
	"agrosmart/pkg/advisory"
	repo "agrosmart/pkg/farmer/repository"
	"agrosmart/pkg/farmer/service"
	"agrosmart/pkg/metrics"
	"agrosmart/pkg/upload"
)

// PhotoSaver stores one uploaded photo and returns its stored name.
type PhotoSaver interface {
	Save(fh *multipart.FileHeader) (string, error)
}

type farmerSvc struct {
	r       repo.FarmerRepository
	photos  PhotoSaver
	advisor advisory.Provider
	log     *zap.Logger
	now     func() time.Time
}

func NewFarmerService(r repo.FarmerRepository, photos PhotoSaver, advisor advisory.Provider, log *zap.Logger) service.FarmerService {
	if log == nil {
		log = zap.NewNop()
	}
	return &farmerSvc{r: r, photos: photos, advisor: advisor, log: log, now: time.Now}
}

func (s *farmerSvc) Register(ctx context.Context, in service.RegistrationInput, photos service.Photos) (*entities.Farmer, error) {
	f := &entities.Farmer{
		Name:     strings.TrimSpace(in.Name),
		State:    strings.TrimSpace(in.State),
		LGA:      strings.TrimSpace(in.LGA),
		Location: strings.TrimSpace(in.Location),
		Crop:     strings.TrimSpace(in.Crop),
		Phone:    strings.TrimSpace(in.Phone),
	}
	required := []struct{ name, value string }{
		{"name", f.Name}, {"state", f.State}, {"lga", f.LGA}, {"crop", f.Crop}, {"phone", f.Phone},
	}
	for _, r := range required {
		if r.value == "" {
			metrics.IncRegistration(metrics.ResultRejected)
			return nil, &service.FieldError{Field: r.name}
		}
	}

	var err error
	if f.PhotoPath, err = s.savePhoto("photo", photos.Photo); err != nil {
		metrics.IncRegistration(metrics.ResultError)
		return nil, err
	}
	if f.FarmPhotoPath, err = s.savePhoto("farm_photo", photos.FarmPhoto); err != nil {
		metrics.IncRegistration(metrics.ResultError)
		return nil, err
	}

	if s.advisor != nil {
		a := s.advisor.Advise(ctx, advisory.Query{Crop: f.Crop, State: f.State, LGA: f.LGA})
		f.Rainfall, f.FloodRisk = a.Rainfall, a.FloodRisk
	}
	f.CreatedAt = s.now()

	// photos already on disk stay there if this fails
	if err := s.r.Create(ctx, f); err != nil {
		metrics.IncRegistration(metrics.ResultError)
		return nil, fmt.Errorf("save farmer: %w", err)
	}
	metrics.IncRegistration(metrics.ResultSuccess)
	return f, nil
}

// savePhoto stores fh and returns the stored name. Photos with a disallowed
// extension or over the size limit are dropped and the registration goes on.
func (s *farmerSvc) savePhoto(field string, fh *multipart.FileHeader) (string, error) {
	if fh == nil || s.photos == nil {
		return "", nil
	}
	name, err := s.photos.Save(fh)
	switch {
	case err == nil:
		return name, nil
	case errors.Is(err, upload.ErrDisallowedExtension), errors.Is(err, upload.ErrTooLarge):
		s.log.Info("photo dropped", zap.String("field", field), zap.String("filename", fh.Filename), zap.Error(err))
		return "", nil
	}
	return "", fmt.Errorf("save %s: %w", field, err)
}

func (s *farmerSvc) List(ctx context.Context, f repo.Filter) ([]entities.Farmer, error) {
	out, err := s.r.List(ctx, f, 0)
	if err != nil {
		return nil, fmt.Errorf("list farmers: %w", err)
	}
	return out, nil
}

func (s *farmerSvc) Recent(ctx context.Context, n int) ([]entities.Farmer, error) {
	out, err := s.r.List(ctx, repo.Filter{}, n)
	if err != nil {
		return nil, fmt.Errorf("recent farmers: %w", err)
	}
	return out, nil
}

func (s *farmerSvc) StateCounts(ctx context.Context) ([]repo.StateCount, error) {
	out, err := s.r.StateCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count farmers by state: %w", err)
	}
	return out, nil
}

func (s *farmerSvc) CropAdvice(ctx context.Context, farmers []entities.Farmer, max int) []service.CropAdvice {
	if s.advisor == nil {
		return nil
	}
	seen := map[string]bool{}
	var out []service.CropAdvice
	for _, f := range farmers {
		key := strings.ToLower(f.Crop)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		a := s.advisor.Advise(ctx, advisory.Query{Crop: f.Crop, State: f.State, LGA: f.LGA})
		out = append(out, service.CropAdvice{Crop: f.Crop, Advice: a})
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}
