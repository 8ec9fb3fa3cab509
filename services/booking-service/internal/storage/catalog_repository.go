package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/uponco/bookflow/libs/db"
	"github.com/uponco/bookflow/services/booking-service/internal/catalog"
)

// CatalogRepository assembles the raw company hierarchy from Postgres. It
// returns junction rows the way the schema stores them; catalog.Parse owns
// the inversion into per-specialist adjacency.
type CatalogRepository struct {
	pool *db.Pool
}

func NewCatalogRepository(pool *db.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// FetchBySlug loads one company's full hierarchy. A missing slug returns
// (nil, nil), not an error.
func (r *CatalogRepository) FetchBySlug(ctx context.Context, slug string) (*catalog.RawCompany, error) {
	raw := &catalog.RawCompany{}
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, COALESCE(name, '')
		FROM companies
		WHERE slug = $1
	`, slug).Scan(&raw.ID, &raw.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if raw.Locations, err = r.fetchLocations(ctx, raw.ID); err != nil {
		return nil, err
	}
	if raw.Services, err = r.fetchServices(ctx, raw.ID); err != nil {
		return nil, err
	}
	if raw.Specialists, err = r.fetchSpecialists(ctx, raw.ID); err != nil {
		return nil, err
	}
	return raw, nil
}

func (r *CatalogRepository) fetchLocations(ctx context.Context, companyID string) ([]catalog.RawLocation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, COALESCE(name, ''), COALESCE(address, ''), COALESCE(city, ''),
			COALESCE(country_region, ''), COALESCE(postal_code, ''), COALESCE(phone, ''),
			COALESCE(location_type, '')
		FROM locations
		WHERE company_id = $1
		ORDER BY position ASC, created_at ASC
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locs []catalog.RawLocation
	index := map[string]int{}
	for rows.Next() {
		var loc catalog.RawLocation
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Address, &loc.City,
			&loc.CountryRegion, &loc.PostalCode, &loc.Phone, &loc.LocationType); err != nil {
			return nil, err
		}
		index[loc.ID] = len(locs)
		locs = append(locs, loc)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	assigned, err := r.pool.Query(ctx, `
		SELECT la.location_id::text, la.profile_id::text
		FROM location_assignments la
		JOIN locations l ON l.id = la.location_id
		WHERE l.company_id = $1
		ORDER BY la.created_at ASC
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer assigned.Close()

	for assigned.Next() {
		var locationID, profileID string
		if err := assigned.Scan(&locationID, &profileID); err != nil {
			return nil, err
		}
		if i, ok := index[locationID]; ok {
			locs[i].AssignedProfileIDs = append(locs[i].AssignedProfileIDs, profileID)
		}
	}
	if assigned.Err() != nil {
		return nil, assigned.Err()
	}
	return locs, nil
}

func (r *CatalogRepository) fetchServices(ctx context.Context, companyID string) ([]catalog.RawService, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id::text, COALESCE(s.title, ''), COALESCE(s.description, ''),
			s.price_min, s.price_max, s.duration, s.technical_break, COALESCE(s.service_type, ''), s.capacity,
			c.id::text, c.title
		FROM services s
		LEFT JOIN service_categories c ON c.id = s.category_id
		WHERE s.company_id = $1
		ORDER BY s.position ASC, s.created_at ASC
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var svcs []catalog.RawService
	index := map[string]int{}
	for rows.Next() {
		var svc catalog.RawService
		var categoryID, categoryTitle *string
		if err := rows.Scan(&svc.ID, &svc.Title, &svc.Description,
			&svc.PriceMin, &svc.PriceMax, &svc.Duration, &svc.TechnicalBreak, &svc.ServiceType, &svc.Capacity,
			&categoryID, &categoryTitle); err != nil {
			return nil, err
		}
		if categoryID != nil {
			svc.Category = &catalog.RawCategory{ID: *categoryID}
			if categoryTitle != nil {
				svc.Category.Title = *categoryTitle
			}
		}
		index[svc.ID] = len(svcs)
		svcs = append(svcs, svc)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	locations, err := r.pool.Query(ctx, `
		SELECT sl.service_id::text, sl.location_id::text
		FROM service_locations sl
		JOIN services s ON s.id = sl.service_id
		WHERE s.company_id = $1
		ORDER BY sl.created_at ASC
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer locations.Close()

	for locations.Next() {
		var serviceID, locationID string
		if err := locations.Scan(&serviceID, &locationID); err != nil {
			return nil, err
		}
		if i, ok := index[serviceID]; ok {
			svcs[i].LocationIDs = append(svcs[i].LocationIDs, locationID)
		}
	}
	if locations.Err() != nil {
		return nil, locations.Err()
	}

	assigned, err := r.pool.Query(ctx, `
		SELECT sa.service_id::text, sa.profile_id::text
		FROM service_assignments sa
		JOIN services s ON s.id = sa.service_id
		WHERE s.company_id = $1
		ORDER BY sa.created_at ASC
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer assigned.Close()

	for assigned.Next() {
		var serviceID, profileID string
		if err := assigned.Scan(&serviceID, &profileID); err != nil {
			return nil, err
		}
		if i, ok := index[serviceID]; ok {
			svcs[i].AssignedProfileIDs = append(svcs[i].AssignedProfileIDs, profileID)
		}
	}
	if assigned.Err() != nil {
		return nil, assigned.Err()
	}
	return svcs, nil
}

func (r *CatalogRepository) fetchSpecialists(ctx context.Context, companyID string) ([]catalog.RawSpecialist, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id::text, COALESCE(p.full_name, ''), COALESCE(p.email, ''), COALESCE(p.avatar_url, '')
		FROM profiles p
		JOIN company_members cm ON cm.profile_id = p.id
		WHERE cm.company_id = $1
		ORDER BY cm.created_at ASC
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sps []catalog.RawSpecialist
	index := map[string]int{}
	for rows.Next() {
		var sp catalog.RawSpecialist
		if err := rows.Scan(&sp.ID, &sp.FullName, &sp.Email, &sp.AvatarURL); err != nil {
			return nil, err
		}
		index[sp.ID] = len(sps)
		sps = append(sps, sp)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	hours, err := r.pool.Query(ctx, `
		SELECT wh.id::text, wh.profile_id::text, wh.company_id::text, wh.day_of_week,
			to_char(wh.start_time, 'HH24:MI'), to_char(wh.end_time, 'HH24:MI')
		FROM work_hours wh
		WHERE wh.company_id = $1
		ORDER BY wh.day_of_week ASC
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer hours.Close()

	hourIndex := map[string][2]int{}
	for hours.Next() {
		var hourID, profileID string
		var wh catalog.RawWorkHours
		if err := hours.Scan(&hourID, &profileID, &wh.CompanyID, &wh.DayOfWeek, &wh.StartTime, &wh.EndTime); err != nil {
			return nil, err
		}
		i, ok := index[profileID]
		if !ok {
			continue
		}
		hourIndex[hourID] = [2]int{i, len(sps[i].WorkHours)}
		sps[i].WorkHours = append(sps[i].WorkHours, wh)
	}
	if hours.Err() != nil {
		return nil, hours.Err()
	}

	breaks, err := r.pool.Query(ctx, `
		SELECT wb.work_hour_id::text,
			to_char(wb.start_time, 'HH24:MI'), to_char(wb.end_time, 'HH24:MI')
		FROM work_breaks wb
		JOIN work_hours wh ON wh.id = wb.work_hour_id
		WHERE wh.company_id = $1
		ORDER BY wb.start_time ASC
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer breaks.Close()

	for breaks.Next() {
		var hourID string
		var br catalog.RawWorkBreak
		if err := breaks.Scan(&hourID, &br.StartTime, &br.EndTime); err != nil {
			return nil, err
		}
		if at, ok := hourIndex[hourID]; ok {
			wh := &sps[at[0]].WorkHours[at[1]]
			wh.Breaks = append(wh.Breaks, br)
		}
	}
	if breaks.Err() != nil {
		return nil, breaks.Err()
	}
	return sps, nil
}
