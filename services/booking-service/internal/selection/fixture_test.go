package selection

import (
	"testing"

	"github.com/uponco/bookflow/services/booking-service/internal/catalog"
)

// Fixture relations:
//
//	loc-a: sp-1, sp-2    svc-cut:   loc-a, loc-b / sp-1, sp-2
//	loc-b: sp-2          svc-color: loc-a        / sp-2
//	loc-c: sp-3          svc-spa:   loc-c        / sp-3
func fixtureCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse(&catalog.RawCompany{
		ID:   "co-1",
		Name: "Uponco",
		Locations: []catalog.RawLocation{
			{ID: "loc-a", Name: "Aurora Street", AssignedProfileIDs: []string{"sp-1", "sp-2"}},
			{ID: "loc-b", Name: "Birch Avenue", AssignedProfileIDs: []string{"sp-2"}},
			{ID: "loc-c", Name: "Cedar Plaza", AssignedProfileIDs: []string{"sp-3"}},
		},
		Services: []catalog.RawService{
			{ID: "svc-cut", Title: "Haircut", LocationIDs: []string{"loc-a", "loc-b"}, AssignedProfileIDs: []string{"sp-1", "sp-2"}},
			{ID: "svc-color", Title: "Coloring", LocationIDs: []string{"loc-a"}, AssignedProfileIDs: []string{"sp-2"}},
			{ID: "svc-spa", Title: "Spa Treatment", LocationIDs: []string{"loc-c"}, AssignedProfileIDs: []string{"sp-3"}},
		},
		Specialists: []catalog.RawSpecialist{
			{ID: "sp-1", FullName: "Alice Ames"},
			{ID: "sp-2", FullName: "Bella Brook"},
			{ID: "sp-3", FullName: "Clara Cole"},
		},
	})
	if err != nil {
		t.Fatalf("fixture catalog: %v", err)
	}
	return c
}

func locationIDs(locs []catalog.Location) []string {
	out := make([]string, 0, len(locs))
	for _, l := range locs {
		out = append(out, l.ID)
	}
	return out
}

func serviceIDs(svcs []catalog.Service) []string {
	out := make([]string, 0, len(svcs))
	for _, s := range svcs {
		out = append(out, s.ID)
	}
	return out
}

func specialistIDs(sps []catalog.Specialist) []string {
	out := make([]string, 0, len(sps))
	for _, sp := range sps {
		out = append(out, sp.ID)
	}
	return out
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
