package selection

import (
	"github.com/uponco/bookflow/services/booking-service/internal/catalog"
)

// Selection is a partial choice of booking dimensions. Empty fields mean the
// dimension has not been chosen yet.
type Selection struct {
	LocationID   string `json:"locationId"`
	ServiceID    string `json:"serviceId"`
	SpecialistID string `json:"specialistId"`
}

// Filtered holds the candidate sets that remain selectable given a partial
// Selection, each in the catalog's original insertion order.
type Filtered struct {
	Locations   []catalog.Location   `json:"locations"`
	Services    []catalog.Service    `json:"services"`
	Specialists []catalog.Specialist `json:"specialists"`
}

// Options narrows every dimension a set id can constrain. Filters apply in
// fixed precedence specialist → service → location, each narrowing the
// current candidate lists conjunctively. An id that does not resolve in the
// catalog is ignored as if that filter were absent.
func Options(c *catalog.Catalog, sel Selection) Filtered {
	out := Filtered{
		Locations:   c.Locations,
		Services:    c.Services,
		Specialists: c.Specialists,
	}

	if sp, ok := c.SpecialistByID(sel.SpecialistID); ok {
		out.Locations = filterLocations(out.Locations, func(l catalog.Location) bool {
			return contains(sp.LocationIDs, l.ID)
		})
		out.Services = filterServices(out.Services, func(s catalog.Service) bool {
			return contains(sp.ServiceIDs, s.ID)
		})
	}

	if svc, ok := c.ServiceByID(sel.ServiceID); ok {
		out.Locations = filterLocations(out.Locations, func(l catalog.Location) bool {
			return contains(svc.LocationIDs, l.ID)
		})
		out.Specialists = filterSpecialists(out.Specialists, func(sp catalog.Specialist) bool {
			return contains(sp.ServiceIDs, svc.ID)
		})
	}

	if loc, ok := c.LocationByID(sel.LocationID); ok {
		out.Services = filterServices(out.Services, func(s catalog.Service) bool {
			return contains(s.LocationIDs, loc.ID)
		})
		out.Specialists = filterSpecialists(out.Specialists, func(sp catalog.Specialist) bool {
			return contains(sp.LocationIDs, loc.ID)
		})
	}

	return out
}

// ServicesForLocation returns the services offered at a location, or the
// full list when the id is empty or unknown.
func ServicesForLocation(c *catalog.Catalog, locationID string) []catalog.Service {
	loc, ok := c.LocationByID(locationID)
	if !ok {
		return c.Services
	}
	return filterServices(c.Services, func(s catalog.Service) bool {
		return contains(s.LocationIDs, loc.ID)
	})
}

// SpecialistsForService returns the specialists assigned to a service, or the
// full list when the id is empty or unknown.
func SpecialistsForService(c *catalog.Catalog, serviceID string) []catalog.Specialist {
	svc, ok := c.ServiceByID(serviceID)
	if !ok {
		return c.Specialists
	}
	return filterSpecialists(c.Specialists, func(sp catalog.Specialist) bool {
		return contains(sp.ServiceIDs, svc.ID)
	})
}

// SpecialistsForServiceAndLocation returns specialists who can perform the
// service and, when a location is given, also work there.
func SpecialistsForServiceAndLocation(c *catalog.Catalog, serviceID, locationID string) []catalog.Specialist {
	svc, ok := c.ServiceByID(serviceID)
	if !ok {
		return c.Specialists
	}
	return filterSpecialists(c.Specialists, func(sp catalog.Specialist) bool {
		if !contains(sp.ServiceIDs, svc.ID) {
			return false
		}
		if _, ok := c.LocationByID(locationID); ok {
			return contains(sp.LocationIDs, locationID)
		}
		return true
	})
}

// LocationsForService returns the locations a service is offered at, or the
// full list when the id is empty or unknown.
func LocationsForService(c *catalog.Catalog, serviceID string) []catalog.Location {
	svc, ok := c.ServiceByID(serviceID)
	if !ok {
		return c.Locations
	}
	return filterLocations(c.Locations, func(l catalog.Location) bool {
		return contains(svc.LocationIDs, l.ID)
	})
}

// LocationsForSpecialist returns the locations a specialist works at, or the
// full list when the id is empty or unknown.
func LocationsForSpecialist(c *catalog.Catalog, specialistID string) []catalog.Location {
	sp, ok := c.SpecialistByID(specialistID)
	if !ok {
		return c.Locations
	}
	return filterLocations(c.Locations, func(l catalog.Location) bool {
		return contains(sp.LocationIDs, l.ID)
	})
}

// ServicesForSpecialist returns the services a specialist can perform, or the
// full list when the id is empty or unknown.
func ServicesForSpecialist(c *catalog.Catalog, specialistID string) []catalog.Service {
	sp, ok := c.SpecialistByID(specialistID)
	if !ok {
		return c.Services
	}
	return filterServices(c.Services, func(s catalog.Service) bool {
		return contains(sp.ServiceIDs, s.ID)
	})
}

// AutoSelect reports the ids the client should pre-choose, keyed by
// dimension name. A dimension qualifies when it is still unset and the
// filtered candidate list holds exactly one entry.
func AutoSelect(c *catalog.Catalog, sel Selection) map[string]string {
	filtered := Options(c, sel)

	auto := map[string]string{}
	if sel.LocationID == "" && len(filtered.Locations) == 1 {
		auto["location"] = filtered.Locations[0].ID
	}
	if sel.ServiceID == "" && len(filtered.Services) == 1 {
		auto["service"] = filtered.Services[0].ID
	}
	if sel.SpecialistID == "" && len(filtered.Specialists) == 1 {
		auto["specialist"] = filtered.Specialists[0].ID
	}
	return auto
}

func filterLocations(in []catalog.Location, keep func(catalog.Location) bool) []catalog.Location {
	out := make([]catalog.Location, 0, len(in))
	for _, l := range in {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

func filterServices(in []catalog.Service, keep func(catalog.Service) bool) []catalog.Service {
	out := make([]catalog.Service, 0, len(in))
	for _, s := range in {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func filterSpecialists(in []catalog.Specialist, keep func(catalog.Specialist) bool) []catalog.Specialist {
	out := make([]catalog.Specialist, 0, len(in))
	for _, sp := range in {
		if keep(sp) {
			out = append(out, sp)
		}
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
