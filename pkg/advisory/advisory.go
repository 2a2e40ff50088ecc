// Package advisory produces the crop and weather advice shown on the home
// page, the dashboard and stored with each registration. Neither provider
// uses real weather data; the output is labeled as a stub wherever it is shown.
package advisory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"agrosmart/entities"
)

type Query struct {
	Crop  string
	State string
	LGA   string
}

type Advice struct {
	Condition string  `json:"condition"`
	Seed      string  `json:"seed"`
	FloodRisk string  `json:"flood_risk"`
	Rainfall  float64 `json:"rainfall"`
	Message   string  `json:"message"`
}

type Provider interface {
	Advise(ctx context.Context, q Query) Advice
}

// WeatherSource is the read side of the weather observation store.
type WeatherSource interface {
	Latest(ctx context.Context, state, lga, crop string) (*entities.WeatherObservation, error)
}

const (
	ModeTable  = "table"
	ModeRandom = "random"
)

// New builds the provider selected by mode. rulesPath is only read in table
// mode; a bad rules file falls back to the built-in crop table with a warning.
func New(mode, rulesPath string, weather WeatherSource, log *zap.Logger) (Provider, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch mode {
	case "", ModeTable:
		windows := DefaultWindows()
		if rulesPath != "" {
			loaded, err := LoadWindows(rulesPath)
			if err != nil {
				log.Warn("advisory rules not loaded, using built-in table", zap.String("path", rulesPath), zap.Error(err))
			} else {
				for crop, text := range loaded {
					windows[crop] = text
				}
				log.Info("advisory rules loaded", zap.String("path", rulesPath), zap.Int("crops", len(loaded)))
			}
		}
		return NewTable(windows, weather, log), nil
	case ModeRandom:
		return NewRandom(), nil
	}
	return nil, fmt.Errorf("unknown advisory mode %q", mode)
}
