package catalog

import (
	"errors"
	"fmt"

	"github.com/uponco/bookflow/services/booking-service/internal/schedule"
)

// ErrMalformedCatalog indicates the raw source violated its contract (a
// mandatory identifier is missing). No partial catalog is returned.
var ErrMalformedCatalog = errors.New("malformed catalog source")

const (
	defaultLocationName   = "Unnamed Location"
	defaultServiceTitle   = "Unnamed Service"
	defaultSpecialistName = "Unknown Specialist"
	defaultCompanyName    = "Unnamed Company"

	defaultServiceDuration = 60
	defaultWorkdayStart    = "09:00"
	defaultWorkdayEnd      = "17:00"
)

// Parse builds an indexed Catalog from the raw company hierarchy.
//
// Specialist ServiceIDs and LocationIDs are derived by inverting the
// assignment lists found on services and locations; the specialist record
// itself is never consulted for them. That inversion is the canonical
// source of truth for what a specialist can do and where.
func Parse(raw *RawCompany) (*Catalog, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: company data is nil", ErrMalformedCatalog)
	}
	if raw.ID == "" {
		return nil, fmt.Errorf("%w: company id is missing", ErrMalformedCatalog)
	}

	// First pass: profile -> service ids.
	serviceAssignments := make(map[string][]string)
	for _, svc := range raw.Services {
		for _, profileID := range svc.AssignedProfileIDs {
			serviceAssignments[profileID] = append(serviceAssignments[profileID], svc.ID)
		}
	}

	// Second pass: profile -> location ids.
	locationAssignments := make(map[string][]string)
	for _, loc := range raw.Locations {
		for _, profileID := range loc.AssignedProfileIDs {
			locationAssignments[profileID] = append(locationAssignments[profileID], loc.ID)
		}
	}

	c := &Catalog{
		ID:   raw.ID,
		Name: stringOr(raw.Name, defaultCompanyName),
	}

	for _, rl := range raw.Locations {
		c.Locations = append(c.Locations, Location{
			ID:            rl.ID,
			Name:          stringOr(rl.Name, defaultLocationName),
			Address:       rl.Address,
			City:          rl.City,
			CountryRegion: rl.CountryRegion,
			PostalCode:    rl.PostalCode,
			Phone:         rl.Phone,
			LocationType:  stringOr(rl.LocationType, "physical"),
			SpecialistIDs: append([]string(nil), rl.AssignedProfileIDs...),
		})
	}

	for _, rs := range raw.Services {
		var cat *Category
		if rs.Category != nil {
			cat = &Category{ID: rs.Category.ID, Title: rs.Category.Title}
		}
		c.Services = append(c.Services, Service{
			ID:             rs.ID,
			Title:          stringOr(rs.Title, defaultServiceTitle),
			Description:    rs.Description,
			PriceMin:       floatOr(rs.PriceMin, 0),
			PriceMax:       floatOr(rs.PriceMax, 0),
			Duration:       intOr(rs.Duration, defaultServiceDuration),
			TechnicalBreak: intOr(rs.TechnicalBreak, 0),
			ServiceType:    rs.ServiceType,
			Capacity:       intOr(rs.Capacity, 1),
			Category:       cat,
			LocationIDs:    append([]string(nil), rs.LocationIDs...),
			SpecialistIDs:  append([]string(nil), rs.AssignedProfileIDs...),
		})
	}

	for _, rp := range raw.Specialists {
		c.Specialists = append(c.Specialists, Specialist{
			ID:           rp.ID,
			FullName:     stringOr(rp.FullName, defaultSpecialistName),
			Email:        rp.Email,
			AvatarURL:    rp.AvatarURL,
			WorkSchedule: parseWorkSchedule(rp.WorkHours, raw.ID),
			LocationIDs:  locationAssignments[rp.ID],
			ServiceIDs:   serviceAssignments[rp.ID],
		})
	}

	c.locationByID = make(map[string]*Location, len(c.Locations))
	for i := range c.Locations {
		c.locationByID[c.Locations[i].ID] = &c.Locations[i]
	}
	c.serviceByID = make(map[string]*Service, len(c.Services))
	for i := range c.Services {
		c.serviceByID[c.Services[i].ID] = &c.Services[i]
	}
	c.specialistByID = make(map[string]*Specialist, len(c.Specialists))
	for i := range c.Specialists {
		c.specialistByID[c.Specialists[i].ID] = &c.Specialists[i]
	}

	return c, nil
}

func parseWorkSchedule(hours []RawWorkHours, companyID string) schedule.WorkSchedule {
	var out schedule.WorkSchedule
	for _, wh := range hours {
		if wh.CompanyID != companyID || wh.DayOfWeek == nil {
			continue
		}
		wd := schedule.WorkDay{
			DayOfWeek: *wh.DayOfWeek,
			StartTime: stringOr(wh.StartTime, defaultWorkdayStart),
			EndTime:   stringOr(wh.EndTime, defaultWorkdayEnd),
		}
		for _, wb := range wh.Breaks {
			if wb.StartTime == "" || wb.EndTime == "" {
				continue
			}
			wd.Breaks = append(wd.Breaks, schedule.WorkBreak{
				StartTime: wb.StartTime,
				EndTime:   wb.EndTime,
			})
		}
		out = append(out, wd)
	}
	return out
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
