package advisory

import (
	"context"
	"math/rand"
)

type indicator struct {
	Condition string
	Seed      string
	FloodRisk string
}

var indicators = []indicator{
	{"Sunny", "Maize", "Low"},
	{"Rainy", "Rice", "Medium"},
	{"Heavy Rain", "Sugarcane", "High"},
	{"Dry", "Millet", "Low"},
	{"Cloudy", "Cassava", "Medium"},
}

// randomProvider picks one of the fixed indicators and a rainfall figure in
// [10, 100) on every call. Two calls with the same query may disagree.
type randomProvider struct {
	intN  func(int) int
	float func() float64
}

func NewRandom() Provider { return &randomProvider{intN: rand.Intn, float: rand.Float64} }

func (p *randomProvider) Advise(_ context.Context, q Query) Advice {
	in := indicators[p.intN(len(indicators))]
	a := Advice{
		Condition: in.Condition,
		Seed:      in.Seed,
		FloodRisk: in.FloodRisk,
		Rainfall:  10 + p.float()*90,
	}
	a.Message = "Weather: " + a.Condition + ". Suggested seed: " + a.Seed + ". Flood risk: " + a.FloodRisk + "."
	return a
}
