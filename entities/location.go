package entities

type State struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// LGA is a local government area. StateID is a loose reference; nothing
// outside the seed ever writes this table.
type LGA struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	StateID uint   `gorm:"index;not null" json:"state_id"`
	State   *State `gorm:"foreignKey:StateID" json:"-"`
}

func (LGA) TableName() string { return "lgas" }

type Coordinate struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	State string  `gorm:"uniqueIndex:idx_coord_state_lga;not null" json:"state"`
	LGA   string  `gorm:"column:lga;uniqueIndex:idx_coord_state_lga;not null" json:"lga"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}
