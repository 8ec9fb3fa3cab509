package catalog

import (
	"github.com/uponco/bookflow/services/booking-service/internal/schedule"
)

// Location is a place (physical or online) where services are performed.
// SpecialistIDs mirrors each specialist's LocationIDs so both directions
// resolve in O(1).
type Location struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	CountryRegion string   `json:"countryRegion"`
	PostalCode    string   `json:"postalCode"`
	Phone         string   `json:"phone"`
	LocationType  string   `json:"locationType"` // "physical" or "online"
	SpecialistIDs []string `json:"specialistIds"`
}

type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Service struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PriceMin    float64 `json:"priceMin"`
	PriceMax    float64 `json:"priceMax"`
	Duration    int     `json:"duration"` // minutes
	// TechnicalBreak is the buffer in minutes after each booking. It is
	// carried on the entity but not yet consumed by slot generation.
	TechnicalBreak int       `json:"technicalBreak"`
	ServiceType    string    `json:"serviceType"`
	Capacity       int       `json:"capacity"`
	Category       *Category `json:"category,omitempty"`
	LocationIDs    []string  `json:"locationIds"`
	SpecialistIDs  []string  `json:"specialistIds"`
}

type Specialist struct {
	ID           string                `json:"id"`
	FullName     string                `json:"fullName"`
	Email        string                `json:"email"`
	AvatarURL    string                `json:"avatarUrl"`
	WorkSchedule schedule.WorkSchedule `json:"workSchedule"`
	LocationIDs  []string              `json:"locationIds"`
	ServiceIDs   []string              `json:"serviceIds"`
}

// Catalog is the full location/service/specialist hierarchy for one company,
// plus lookup indices. It is built once per fetch and treated as immutable
// for the duration of a booking session.
type Catalog struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Locations   []Location   `json:"locations"`
	Services    []Service    `json:"services"`
	Specialists []Specialist `json:"specialists"`

	locationByID   map[string]*Location
	serviceByID    map[string]*Service
	specialistByID map[string]*Specialist
}

func (c *Catalog) LocationByID(id string) (*Location, bool) {
	l, ok := c.locationByID[id]
	return l, ok
}

func (c *Catalog) ServiceByID(id string) (*Service, bool) {
	s, ok := c.serviceByID[id]
	return s, ok
}

func (c *Catalog) SpecialistByID(id string) (*Specialist, bool) {
	s, ok := c.specialistByID[id]
	return s, ok
}
