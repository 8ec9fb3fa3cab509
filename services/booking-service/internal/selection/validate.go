package selection

import (
	"fmt"

	"github.com/uponco/bookflow/services/booking-service/internal/catalog"
)

// FailureCode classifies why a combination was rejected.
type FailureCode string

const (
	CodeEntityNotFound          FailureCode = "entity_not_found"
	CodeInconsistentCombination FailureCode = "inconsistent_combination"
)

// Result is the outcome of validating a pre-supplied combination. Failures
// are data, never errors: the caller branches on Valid.
type Result struct {
	Valid bool        `json:"valid"`
	Code  FailureCode `json:"code,omitempty"`
	Error string      `json:"error,omitempty"`
}

func ok() Result {
	return Result{Valid: true}
}

func notFound(dimension, id string) Result {
	return Result{
		Valid: false,
		Code:  CodeEntityNotFound,
		Error: fmt.Sprintf("%s %q was not found", dimension, id),
	}
}

func inconsistent(format string, args ...any) Result {
	return Result{
		Valid: false,
		Code:  CodeInconsistentCombination,
		Error: fmt.Sprintf(format, args...),
	}
}

// Validate checks that the supplied ids are jointly consistent with the
// catalog relations. Checks run in order and short-circuit on the first
// failure: resolution of every non-empty id, then pairwise consistency for
// every supplied pair, then a joint re-check when all three are present.
//
// Validate is pure. It must be re-run whenever an id arrives from an
// external source (deep-link parameters); in-flow selections are consistent
// by construction because the filter only offers consistent choices.
func Validate(c *catalog.Catalog, sel Selection) Result {
	var (
		loc *catalog.Location
		svc *catalog.Service
		sp  *catalog.Specialist
	)

	if sel.LocationID != "" {
		l, found := c.LocationByID(sel.LocationID)
		if !found {
			return notFound("location", sel.LocationID)
		}
		loc = l
	}
	if sel.ServiceID != "" {
		s, found := c.ServiceByID(sel.ServiceID)
		if !found {
			return notFound("service", sel.ServiceID)
		}
		svc = s
	}
	if sel.SpecialistID != "" {
		s, found := c.SpecialistByID(sel.SpecialistID)
		if !found {
			return notFound("specialist", sel.SpecialistID)
		}
		sp = s
	}

	if loc != nil && svc != nil && !contains(svc.LocationIDs, loc.ID) {
		return inconsistent("%q is not available at %q", svc.Title, loc.Name)
	}
	if loc != nil && sp != nil && !contains(sp.LocationIDs, loc.ID) {
		return inconsistent("%q does not work at %q", sp.FullName, loc.Name)
	}
	if svc != nil && sp != nil && !contains(sp.ServiceIDs, svc.ID) {
		return inconsistent("%q does not offer %q", sp.FullName, svc.Title)
	}

	// Joint re-check of the same three facts when the triple is fully
	// specified.
	if loc != nil && svc != nil && sp != nil {
		if !contains(sp.LocationIDs, loc.ID) ||
			!contains(sp.ServiceIDs, svc.ID) ||
			!contains(svc.LocationIDs, loc.ID) {
			return inconsistent("%q, %q and %q are not a bookable combination",
				loc.Name, svc.Title, sp.FullName)
		}
	}

	return ok()
}
