package catalog

import (
	"errors"
	"testing"
)

func intp(v int) *int          { return &v }
func floatp(v float64) *float64 { return &v }

func testRawCompany() *RawCompany {
	return &RawCompany{
		ID:   "co-1",
		Name: "Uponco",
		Locations: []RawLocation{
			{ID: "loc-1", Name: "Downtown", LocationType: "physical", AssignedProfileIDs: []string{"sp-1", "sp-2"}},
			{ID: "loc-2", Name: "Online", LocationType: "online", AssignedProfileIDs: []string{"sp-2"}},
		},
		Services: []RawService{
			{
				ID: "svc-1", Title: "Consultation",
				PriceMin: floatp(50), PriceMax: floatp(80), Duration: intp(30),
				Category:           &RawCategory{ID: "cat-1", Title: "General"},
				LocationIDs:        []string{"loc-1", "loc-2"},
				AssignedProfileIDs: []string{"sp-1", "sp-2"},
			},
			{
				ID:                 "svc-2",
				LocationIDs:        []string{"loc-1"},
				AssignedProfileIDs: []string{"sp-1"},
			},
		},
		Specialists: []RawSpecialist{
			{
				ID: "sp-1", FullName: "Alice Ames", Email: "alice@example.com",
				WorkHours: []RawWorkHours{
					{CompanyID: "co-1", DayOfWeek: intp(1), StartTime: "09:00", EndTime: "17:00",
						Breaks: []RawWorkBreak{{StartTime: "12:00", EndTime: "13:00"}}},
					{CompanyID: "other-co", DayOfWeek: intp(2), StartTime: "08:00", EndTime: "12:00"},
					{CompanyID: "co-1", DayOfWeek: nil, StartTime: "10:00", EndTime: "12:00"},
				},
			},
			{ID: "sp-2", Email: "bob@example.com"},
		},
	}
}

func TestParseMissingCompanyID(t *testing.T) {
	_, err := Parse(&RawCompany{Name: "no id"})
	if !errors.Is(err, ErrMalformedCatalog) {
		t.Fatalf("expected ErrMalformedCatalog, got %v", err)
	}

	_, err = Parse(nil)
	if !errors.Is(err, ErrMalformedCatalog) {
		t.Fatalf("expected ErrMalformedCatalog for nil input, got %v", err)
	}
}

func TestParseDerivesSpecialistRelations(t *testing.T) {
	c, err := Parse(testRawCompany())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	sp1, ok := c.SpecialistByID("sp-1")
	if !ok {
		t.Fatalf("sp-1 not indexed")
	}
	if len(sp1.ServiceIDs) != 2 || sp1.ServiceIDs[0] != "svc-1" || sp1.ServiceIDs[1] != "svc-2" {
		t.Fatalf("expected sp-1 services [svc-1 svc-2], got %v", sp1.ServiceIDs)
	}
	if len(sp1.LocationIDs) != 1 || sp1.LocationIDs[0] != "loc-1" {
		t.Fatalf("expected sp-1 locations [loc-1], got %v", sp1.LocationIDs)
	}

	sp2, _ := c.SpecialistByID("sp-2")
	if len(sp2.ServiceIDs) != 1 || sp2.ServiceIDs[0] != "svc-1" {
		t.Fatalf("expected sp-2 services [svc-1], got %v", sp2.ServiceIDs)
	}
	if len(sp2.LocationIDs) != 2 {
		t.Fatalf("expected sp-2 at two locations, got %v", sp2.LocationIDs)
	}
}

func TestParseDefaults(t *testing.T) {
	c, err := Parse(testRawCompany())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	svc2, ok := c.ServiceByID("svc-2")
	if !ok {
		t.Fatalf("svc-2 not indexed")
	}
	if svc2.Title != "Unnamed Service" {
		t.Fatalf("expected sentinel title, got %q", svc2.Title)
	}
	if svc2.Duration != 60 {
		t.Fatalf("expected default duration 60, got %d", svc2.Duration)
	}
	if svc2.PriceMin != 0 || svc2.PriceMax != 0 {
		t.Fatalf("expected zero prices, got %v-%v", svc2.PriceMin, svc2.PriceMax)
	}
	if svc2.Category != nil {
		t.Fatalf("expected nil category")
	}

	sp2, _ := c.SpecialistByID("sp-2")
	if sp2.FullName != "Unknown Specialist" {
		t.Fatalf("expected sentinel specialist name, got %q", sp2.FullName)
	}
}

func TestParseWorkSchedule(t *testing.T) {
	c, err := Parse(testRawCompany())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	sp1, _ := c.SpecialistByID("sp-1")
	// Entries for other companies and entries without a day of week are
	// dropped.
	if len(sp1.WorkSchedule) != 1 {
		t.Fatalf("expected 1 workday, got %d", len(sp1.WorkSchedule))
	}
	wd := sp1.WorkSchedule[0]
	if wd.DayOfWeek != 1 || wd.StartTime != "09:00" || wd.EndTime != "17:00" {
		t.Fatalf("unexpected workday %+v", wd)
	}
	if len(wd.Breaks) != 1 || wd.Breaks[0].StartTime != "12:00" {
		t.Fatalf("unexpected breaks %+v", wd.Breaks)
	}
}

func TestParsePreservesOrder(t *testing.T) {
	c, err := Parse(testRawCompany())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if c.Locations[0].ID != "loc-1" || c.Locations[1].ID != "loc-2" {
		t.Fatalf("location order not preserved: %v", []string{c.Locations[0].ID, c.Locations[1].ID})
	}
	if c.Services[0].ID != "svc-1" || c.Services[1].ID != "svc-2" {
		t.Fatalf("service order not preserved")
	}
}
