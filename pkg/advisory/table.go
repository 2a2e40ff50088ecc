package advisory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

const (
	lowRainfallMM  = 50.0
	highRainfallMM = 200.0
)

// DefaultWindows is the built-in crop -> planting window table, keyed by
// lower-case crop name.
func DefaultWindows() map[string]string {
	return map[string]string{
		"maize":     "Plant at the onset of the rains: April to May in the south, June in the north.",
		"rice":      "Transplant in June to July on lowland plots that hold water.",
		"sorghum":   "Sow in June to July once the rains are steady.",
		"millet":    "Sow with the first reliable rains, May to June.",
		"cassava":   "Plant stem cuttings from April to October while the soil is moist.",
		"yam":       "Set seed yams from February to April on prepared mounds.",
		"sugarcane": "Plant setts early in the rainy season or under irrigation in the dry season.",
		"cowpea":    "Sow in July to August so pods mature after the heaviest rains.",
		"groundnut": "Sow in May to June on well-drained sandy soil.",
		"soybean":   "Sow in June to early July.",
		"tomato":    "Raise nursery seedlings in the dry season and transplant under irrigation.",
		"cocoa":     "Transplant seedlings at the peak of the rains, June to July.",
	}
}

type season struct {
	crop, condition, floodRisk string
}

// seasons is the typical Nigerian calendar: dry harmattan months, the rains
// building from April, the August to September peak, and the late harvest.
var seasons = map[time.Month]season{
	time.January:   {"tomato", "Dry", "Low"},
	time.February:  {"yam", "Dry", "Low"},
	time.March:     {"yam", "Dry", "Low"},
	time.April:     {"maize", "Rainy", "Medium"},
	time.May:       {"groundnut", "Rainy", "Medium"},
	time.June:      {"rice", "Rainy", "Medium"},
	time.July:      {"cowpea", "Heavy Rain", "High"},
	time.August:    {"cowpea", "Heavy Rain", "High"},
	time.September: {"cassava", "Heavy Rain", "High"},
	time.October:   {"cassava", "Rainy", "Medium"},
	time.November:  {"tomato", "Dry", "Low"},
	time.December:  {"tomato", "Dry", "Low"},
}

type tableProvider struct {
	windows map[string]string
	weather WeatherSource
	log     *zap.Logger
	now     func() time.Time
}

func NewTable(windows map[string]string, weather WeatherSource, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &tableProvider{windows: windows, weather: weather, log: log, now: time.Now}
}

func (p *tableProvider) Advise(ctx context.Context, q Query) Advice {
	if strings.TrimSpace(q.Crop) == "" {
		return p.seasonal()
	}
	crop := strings.ToLower(strings.TrimSpace(q.Crop))
	// Casers are stateful, so one per call
	a := Advice{Seed: cases.Title(language.English).String(crop), Condition: "Unknown", FloodRisk: "Unknown"}

	window, ok := p.windows[crop]
	if !ok {
		window = "No planting window on record for this crop; ask your extension officer."
	}
	a.Message = window

	if p.weather == nil || q.State == "" {
		return a
	}
	obs, err := p.weather.Latest(ctx, q.State, q.LGA, q.Crop)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			p.log.Warn("weather lookup failed", zap.String("state", q.State), zap.String("lga", q.LGA), zap.Error(err))
		}
		return a
	}

	a.Rainfall = obs.Rainfall
	a.Condition, a.FloodRisk = classifyRainfall(obs.Rainfall)
	switch {
	case obs.Rainfall < lowRainfallMM:
		a.Message += fmt.Sprintf(" Recorded rainfall %.0fmm is low; plan for irrigation.", obs.Rainfall)
	case obs.Rainfall > highRainfallMM:
		a.Message += fmt.Sprintf(" Recorded rainfall %.0fmm is high; flood risk, avoid low-lying plots.", obs.Rainfall)
	default:
		a.Message += fmt.Sprintf(" Recorded rainfall %.0fmm is adequate.", obs.Rainfall)
	}
	return a
}

// seasonal is the general indicator for a query without a crop, taken from
// the calendar month.
func (p *tableProvider) seasonal() Advice {
	s := seasons[p.now().Month()]
	a := Advice{
		Condition: s.condition,
		Seed:      cases.Title(language.English).String(s.crop),
		FloodRisk: s.floodRisk,
	}
	if window, ok := p.windows[s.crop]; ok {
		a.Message = window
	}
	return a
}

func classifyRainfall(mm float64) (condition, floodRisk string) {
	switch {
	case mm < lowRainfallMM:
		return "Dry", "Low"
	case mm > highRainfallMM:
		return "Heavy Rain", "High"
	default:
		return "Rainy", "Medium"
	}
}
