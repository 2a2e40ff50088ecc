package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"agrosmart/entities"
	repo "agrosmart/pkg/weather/repository"
	"agrosmart/pkg/weather/service"
)

// ErrInvalidInput marks form values the handler should answer with a 400.
var ErrInvalidInput = errors.New("invalid observation")

type weatherSvc struct {
	r   repo.WeatherRepository
	now func() time.Time
}

func NewWeatherService(r repo.WeatherRepository) service.WeatherService {
	return &weatherSvc{r: r, now: time.Now}
}

func (s *weatherSvc) Record(ctx context.Context, in service.ObservationInput) (*entities.WeatherObservation, error) {
	state := strings.TrimSpace(in.State)
	crop := strings.TrimSpace(in.Crop)
	if state == "" {
		return nil, fmt.Errorf("%w: state is required", ErrInvalidInput)
	}
	if crop == "" {
		return nil, fmt.Errorf("%w: crop is required", ErrInvalidInput)
	}
	// numeric only; no range or plausibility check
	temp, err := strconv.ParseFloat(strings.TrimSpace(in.Temperature), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: temperature %q is not a number", ErrInvalidInput, in.Temperature)
	}
	rain, err := strconv.ParseFloat(strings.TrimSpace(in.Rainfall), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: rainfall %q is not a number", ErrInvalidInput, in.Rainfall)
	}

	o := &entities.WeatherObservation{
		State:       state,
		LGA:         strings.TrimSpace(in.LGA),
		Crop:        crop,
		Temperature: temp,
		Rainfall:    rain,
		Season:      strings.TrimSpace(in.Season),
		RecordedAt:  s.now(),
	}
	if err := s.r.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("save observation: %w", err)
	}
	return o, nil
}

func (s *weatherSvc) Recent(ctx context.Context, state string, limit int) ([]entities.WeatherObservation, error) {
	return s.r.List(ctx, state, limit)
}
