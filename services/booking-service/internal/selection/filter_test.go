package selection

import "testing"

func TestOptionsNoFilters(t *testing.T) {
	c := fixtureCatalog(t)
	got := Options(c, Selection{})

	if !equalIDs(locationIDs(got.Locations), []string{"loc-a", "loc-b", "loc-c"}) {
		t.Fatalf("expected all locations in order, got %v", locationIDs(got.Locations))
	}
	if !equalIDs(serviceIDs(got.Services), []string{"svc-cut", "svc-color", "svc-spa"}) {
		t.Fatalf("expected all services in order, got %v", serviceIDs(got.Services))
	}
	if !equalIDs(specialistIDs(got.Specialists), []string{"sp-1", "sp-2", "sp-3"}) {
		t.Fatalf("expected all specialists in order, got %v", specialistIDs(got.Specialists))
	}
}

func TestOptionsBySpecialist(t *testing.T) {
	c := fixtureCatalog(t)
	got := Options(c, Selection{SpecialistID: "sp-2"})

	if !equalIDs(locationIDs(got.Locations), []string{"loc-a", "loc-b"}) {
		t.Fatalf("expected sp-2 locations [loc-a loc-b], got %v", locationIDs(got.Locations))
	}
	if !equalIDs(serviceIDs(got.Services), []string{"svc-cut", "svc-color"}) {
		t.Fatalf("expected sp-2 services [svc-cut svc-color], got %v", serviceIDs(got.Services))
	}
}

func TestOptionsByServiceAndLocation(t *testing.T) {
	c := fixtureCatalog(t)
	got := Options(c, Selection{LocationID: "loc-b", ServiceID: "svc-cut"})

	// svc-cut narrows specialists to sp-1/sp-2, loc-b narrows further to sp-2.
	if !equalIDs(specialistIDs(got.Specialists), []string{"sp-2"}) {
		t.Fatalf("expected [sp-2], got %v", specialistIDs(got.Specialists))
	}
	if !equalIDs(locationIDs(got.Locations), []string{"loc-a", "loc-b"}) {
		t.Fatalf("expected svc-cut locations, got %v", locationIDs(got.Locations))
	}
}

func TestOptionsUnknownIDIgnored(t *testing.T) {
	c := fixtureCatalog(t)
	got := Options(c, Selection{ServiceID: "svc-ghost"})

	if len(got.Locations) != 3 || len(got.Services) != 3 || len(got.Specialists) != 3 {
		t.Fatalf("unresolvable id must not narrow anything, got %d/%d/%d",
			len(got.Locations), len(got.Services), len(got.Specialists))
	}
}

func TestServicesForLocation(t *testing.T) {
	c := fixtureCatalog(t)

	if got := serviceIDs(ServicesForLocation(c, "loc-a")); !equalIDs(got, []string{"svc-cut", "svc-color"}) {
		t.Fatalf("expected [svc-cut svc-color], got %v", got)
	}
	if got := ServicesForLocation(c, ""); len(got) != 3 {
		t.Fatalf("empty id must return full list, got %d", len(got))
	}
}

func TestSpecialistsForService(t *testing.T) {
	c := fixtureCatalog(t)

	for _, spID := range []string{"sp-1", "sp-2"} {
		if !contains(specialistIDs(SpecialistsForService(c, "svc-cut")), spID) {
			t.Fatalf("expected %s in specialists for svc-cut", spID)
		}
	}
	if got := SpecialistsForService(c, "missing"); len(got) != 3 {
		t.Fatalf("unknown id must return full list, got %d", len(got))
	}
}

func TestSpecialistsForServiceAndLocation(t *testing.T) {
	c := fixtureCatalog(t)

	if got := specialistIDs(SpecialistsForServiceAndLocation(c, "svc-cut", "loc-b")); !equalIDs(got, []string{"sp-2"}) {
		t.Fatalf("expected [sp-2], got %v", got)
	}
	// No location given: location constraint is skipped.
	if got := specialistIDs(SpecialistsForServiceAndLocation(c, "svc-cut", "")); !equalIDs(got, []string{"sp-1", "sp-2"}) {
		t.Fatalf("expected [sp-1 sp-2], got %v", got)
	}
}

func TestLocationsForServiceAndSpecialist(t *testing.T) {
	c := fixtureCatalog(t)

	if got := locationIDs(LocationsForService(c, "svc-spa")); !equalIDs(got, []string{"loc-c"}) {
		t.Fatalf("expected [loc-c], got %v", got)
	}
	if got := locationIDs(LocationsForSpecialist(c, "sp-1")); !equalIDs(got, []string{"loc-a"}) {
		t.Fatalf("expected [loc-a], got %v", got)
	}
	if got := serviceIDs(ServicesForSpecialist(c, "sp-3")); !equalIDs(got, []string{"svc-spa"}) {
		t.Fatalf("expected [svc-spa], got %v", got)
	}
}

func TestAutoSelect(t *testing.T) {
	c := fixtureCatalog(t)

	// Exactly one candidate for the only unset dimension: fires.
	auto := AutoSelect(c, Selection{LocationID: "loc-a", ServiceID: "svc-color"})
	if len(auto) != 1 || auto["specialist"] != "sp-2" {
		t.Fatalf("expected {specialist: sp-2}, got %v", auto)
	}

	// One candidate in two unset dimensions: both fire.
	auto = AutoSelect(c, Selection{ServiceID: "svc-spa"})
	if auto["location"] != "loc-c" || auto["specialist"] != "sp-3" {
		t.Fatalf("expected loc-c and sp-3, got %v", auto)
	}

	// Two candidates: never fires.
	auto = AutoSelect(c, Selection{LocationID: "loc-a"})
	if len(auto) != 0 {
		t.Fatalf("auto-select must not fire for two candidates, got %v", auto)
	}

	// Zero candidates (inconsistent pair leaves no specialist): never fires.
	auto = AutoSelect(c, Selection{LocationID: "loc-a", ServiceID: "svc-spa"})
	if _, ok := auto["specialist"]; ok {
		t.Fatalf("auto-select must not fire for zero candidates, got %v", auto)
	}

	// A set dimension is never auto-selected even with one candidate.
	auto = AutoSelect(c, Selection{LocationID: "loc-c"})
	if _, ok := auto["location"]; ok {
		t.Fatalf("set dimension must not appear, got %v", auto)
	}
	if auto["service"] != "svc-spa" || auto["specialist"] != "sp-3" {
		t.Fatalf("expected svc-spa and sp-3, got %v", auto)
	}
}
