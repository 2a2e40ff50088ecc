package serviceImp

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	repo "agrosmart/pkg/location/repository"
	"agrosmart/pkg/location/service"
)

const statesKey = "states"

// The catalog does not change after seeding, so lookups are served from a
// TTL cache in front of the repository.
type locationSvc struct {
	r     repo.LocationRepository
	cache *cache.Cache
}

func NewLocationService(r repo.LocationRepository, ttl time.Duration) service.LocationService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &locationSvc{r: r, cache: cache.New(ttl, 2*ttl)}
}

func (s *locationSvc) States(ctx context.Context) ([]string, error) {
	if v, ok := s.cache.Get(statesKey); ok {
		return slices.Clone(v.([]string)), nil
	}
	states, err := s.r.ListStates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	// an empty catalog is not seeded yet
	if len(states) > 0 {
		s.cache.SetDefault(statesKey, slices.Clone(states))
	}
	return states, nil
}

func (s *locationSvc) LGAs(ctx context.Context, state string) ([]string, error) {
	state = strings.TrimSpace(state)
	if state == "" {
		return []string{}, nil
	}
	key := "lgas:" + state
	if v, ok := s.cache.Get(key); ok {
		return slices.Clone(v.([]string)), nil
	}
	lgas, err := s.r.ListLGAs(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("list lgas for %s: %w", state, err)
	}
	// unknown states are not cached; a typo should not pin an empty entry
	if len(lgas) > 0 {
		s.cache.SetDefault(key, slices.Clone(lgas))
	}
	return lgas, nil
}
