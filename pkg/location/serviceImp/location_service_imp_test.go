package serviceImp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRepo struct {
	states, lgas int
	fail         bool
	unseeded     bool
}

func (r *countingRepo) ListStates(context.Context) ([]string, error) {
	r.states++
	if r.fail {
		return nil, errors.New("boom")
	}
	if r.unseeded {
		return []string{}, nil
	}
	return []string{"Abia", "Kano"}, nil
}

func (r *countingRepo) ListLGAs(_ context.Context, state string) ([]string, error) {
	r.lgas++
	if state == "Kano" {
		return []string{"Fagge", "Gwale"}, nil
	}
	return []string{}, nil
}

func TestStatesAreCached(t *testing.T) {
	r := &countingRepo{}
	s := NewLocationService(r, time.Minute)

	for i := 0; i < 3; i++ {
		got, err := s.States(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"Abia", "Kano"}, got)
	}
	assert.Equal(t, 1, r.states)
}

func TestLGAsCacheSkipsUnknownState(t *testing.T) {
	r := &countingRepo{}
	s := NewLocationService(r, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := s.LGAs(ctx, "Kano")
		require.NoError(t, err)
		assert.Equal(t, []string{"Fagge", "Gwale"}, got)
	}
	assert.Equal(t, 1, r.lgas)

	_, _ = s.LGAs(ctx, "Nowhere")
	_, _ = s.LGAs(ctx, "Nowhere")
	assert.Equal(t, 3, r.lgas)
}

func TestLGAsBlankStateSkipsRepository(t *testing.T) {
	r := &countingRepo{}
	s := NewLocationService(r, time.Minute)

	got, err := s.LGAs(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, r.lgas)
}

func TestStatesWrapsRepositoryError(t *testing.T) {
	s := NewLocationService(&countingRepo{fail: true}, time.Minute)

	_, err := s.States(context.Background())
	assert.ErrorContains(t, err, "list states")
}

func TestCallersCannotMutateCache(t *testing.T) {
	s := NewLocationService(&countingRepo{}, time.Minute)
	ctx := context.Background()

	states, err := s.States(ctx)
	require.NoError(t, err)
	states[0] = "Changed"
	lgas, err := s.LGAs(ctx, "Kano")
	require.NoError(t, err)
	lgas[0] = "Changed"

	states, err = s.States(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Abia", "Kano"}, states)
	lgas, err = s.LGAs(ctx, "Kano")
	require.NoError(t, err)
	assert.Equal(t, []string{"Fagge", "Gwale"}, lgas)
}

func TestEmptyStatesNotCached(t *testing.T) {
	r := &countingRepo{unseeded: true}
	s := NewLocationService(r, time.Minute)
	ctx := context.Background()

	got, err := s.States(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	r.unseeded = false
	got, err = s.States(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Abia", "Kano"}, got)
	assert.Equal(t, 2, r.states)
}
