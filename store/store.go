package store

import (
	"github.com/LuisDeAnda17/concept-backend-sub002/internal/profile"
)

// Store provides database access to all raw objects: the item registries
// (assignments, office hours), the calendar registry, and the derived
// day-bucket index.
//
// The registries are the source of truth for item data; the day-bucket
// index is a derived structure mutated exclusively by the reconciliation
// service.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}
