package entities

import "time"

type WeatherObservation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	State       string    `gorm:"index:idx_weather_lookup" json:"state"`
	LGA         string    `gorm:"column:lga;index:idx_weather_lookup" json:"lga"`
	Crop        string    `gorm:"index:idx_weather_lookup" json:"crop"`
	Temperature float64   `json:"temperature"`
	Rainfall    float64   `json:"rainfall"`
	Season      string    `json:"season"`
	RecordedAt  time.Time `json:"recorded_at"`
}
