package database

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"agrosmart/entities"
)

//go:embed seed/*.yaml
var seedFS embed.FS

type CatalogState struct {
	Name string   `yaml:"name"`
	LGAs []string `yaml:"lgas"`
}

type catalogFile struct {
	States []CatalogState `yaml:"states"`
}

type coordinatesFile struct {
	Coordinates []entities.Coordinate `yaml:"coordinates"`
}

// Catalog returns the embedded state -> LGA mapping in seed order.
func Catalog() ([]CatalogState, error) {
	var f catalogFile
	if err := readSeed("seed/catalog.yaml", &f); err != nil {
		return nil, err
	}
	return f.States, nil
}

// Coordinates returns the embedded LGA coordinate sample.
func Coordinates() ([]entities.Coordinate, error) {
	var f coordinatesFile
	if err := readSeed("seed/coordinates.yaml", &f); err != nil {
		return nil, err
	}
	return f.Coordinates, nil
}

func readSeed(name string, out any) error {
	b, err := seedFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// Seed fills the catalog and coordinate tables when they are empty. Existing
// rows are never touched.
func Seed(db *gorm.DB) error {
	var n int64
	if err := db.Model(&entities.State{}).Count(&n).Error; err != nil {
		return fmt.Errorf("count states: %w", err)
	}
	if n == 0 {
		states, err := Catalog()
		if err != nil {
			return err
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			for _, s := range states {
				st := entities.State{Name: s.Name}
				if err := tx.Create(&st).Error; err != nil {
					return fmt.Errorf("insert state %s: %w", s.Name, err)
				}
				lgas := make([]entities.LGA, 0, len(s.LGAs))
				for _, name := range s.LGAs {
					lgas = append(lgas, entities.LGA{Name: name, StateID: st.ID})
				}
				if len(lgas) == 0 {
					continue
				}
				if err := tx.Create(&lgas).Error; err != nil {
					return fmt.Errorf("insert lgas for %s: %w", s.Name, err)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	if err := db.Model(&entities.Coordinate{}).Count(&n).Error; err != nil {
		return fmt.Errorf("count coordinates: %w", err)
	}
	if n > 0 {
		return nil
	}
	coords, err := Coordinates()
	if err != nil {
		return err
	}
	if err := db.Create(&coords).Error; err != nil {
		return fmt.Errorf("insert coordinates: %w", err)
	}
	return nil
}
