package entities

import "time"

// Farmer is one registration record. State and LGA are copied inline from the
// form and are not checked against the catalog.
type Farmer struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	State         string    `gorm:"index" json:"state"`
	LGA           string    `gorm:"column:lga;index" json:"lga"`
	Location      string    `json:"location"`
	Crop          string    `json:"crop"`
	Phone         string    `json:"phone"`
	PhotoPath     string    `json:"photo_path"`
	FarmPhotoPath string    `json:"farm_photo_path"`
	Rainfall      float64   `json:"rainfall"`   // advisory stub snapshot, not a measurement
	FloodRisk     string    `json:"flood_risk"` // advisory stub snapshot, not a forecast
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}
