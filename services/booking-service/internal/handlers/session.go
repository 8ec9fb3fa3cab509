package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/uponco/bookflow/services/booking-service/internal/model"
	"github.com/uponco/bookflow/services/booking-service/internal/selection"
	"github.com/uponco/bookflow/services/booking-service/internal/session"
	"github.com/uponco/bookflow/services/booking-service/internal/storage"
)

// SessionHandler is the stateful surface over the booking pipeline: a
// session is created per widget load (optionally parameterized by deep-link
// ids) and then driven step by step through actions until submission.
type SessionHandler struct {
	catalogs CatalogSource
	sessions *session.Manager
	booking  *BookingHandler
	logger   *slog.Logger
}

func NewSessionHandler(catalogs CatalogSource, sessions *session.Manager, booking *BookingHandler, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		catalogs: catalogs,
		sessions: sessions,
		booking:  booking,
		logger:   logger,
	}
}

type createSessionRequest struct {
	Company    string `json:"company"`
	Location   string `json:"location"`
	Service    string `json:"service"`
	Specialist string `json:"specialist"`
}

type actionRequest struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type submitRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Comment  string `json:"comment"`
}

type sessionResponse struct {
	SessionID string                              `json:"sessionId"`
	State     session.State                       `json:"state"`
	Steps     map[session.Step]session.StepStatus `json:"steps"`
}

type submitResponse struct {
	Success   bool          `json:"success"`
	BookingID string        `json:"bookingId"`
	State     session.State `json:"state"`
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Company = strings.TrimSpace(req.Company)
	if req.Company == "" {
		http.Error(w, "company is required", http.StatusBadRequest)
		return
	}

	cat, err := h.catalogs.Get(r.Context(), req.Company)
	if err != nil {
		http.Error(w, "failed to load catalog", http.StatusInternalServerError)
		return
	}
	if cat == nil {
		http.Error(w, "company not found", http.StatusNotFound)
		return
	}

	id, st := h.sessions.Create(cat, req.Company, session.DeepLink{
		LocationID:   strings.TrimSpace(req.Location),
		ServiceID:    strings.TrimSpace(req.Service),
		SpecialistID: strings.TrimSpace(req.Specialist),
	})
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: id, State: st, Steps: st.StepStatuses()})
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.PathValue("id")
	st, _, err := h.sessions.Get(id)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{SessionID: id, State: st, Steps: st.StepStatuses()})
}

func (h *SessionHandler) Action(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.PathValue("id")

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Value = strings.TrimSpace(req.Value)

	act, msg := h.buildAction(r, id, req)
	if act == nil {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	st, err := h.sessions.Apply(id, act)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{SessionID: id, State: st, Steps: st.StepStatuses()})
}

// buildAction maps the wire action onto the reducer's union. Entity
// selections are checked against the catalog so a session never carries an
// id the catalog cannot resolve.
func (h *SessionHandler) buildAction(r *http.Request, id string, req actionRequest) (session.Action, string) {
	switch req.Type {
	case "select_location", "select_service", "select_specialist":
		if req.Value == "" {
			return nil, "value is required"
		}
		_, slug, err := h.sessions.Get(id)
		if err != nil {
			// Apply will surface the not-found for the same id.
			return session.Reset{}, ""
		}
		cat, err := h.catalogs.Get(r.Context(), slug)
		if err != nil || cat == nil {
			return nil, "failed to load catalog"
		}
		switch req.Type {
		case "select_location":
			if _, ok := cat.LocationByID(req.Value); !ok {
				return nil, "unknown location"
			}
			return session.SelectLocation{ID: req.Value}, ""
		case "select_service":
			if _, ok := cat.ServiceByID(req.Value); !ok {
				return nil, "unknown service"
			}
			return session.SelectService{ID: req.Value}, ""
		default:
			if _, ok := cat.SpecialistByID(req.Value); !ok {
				return nil, "unknown specialist"
			}
			return session.SelectSpecialist{ID: req.Value}, ""
		}
	case "select_date":
		if _, err := time.Parse("2006-01-02", req.Value); err != nil {
			return nil, "invalid date"
		}
		return session.SelectDate{Date: req.Value}, ""
	case "select_time":
		if _, err := time.Parse("15:04", req.Value); err != nil {
			return nil, "invalid time"
		}
		return session.SelectTime{Time: req.Value}, ""
	case "go_to_step":
		step := session.Step(req.Value)
		switch step {
		case session.StepLocation, session.StepService, session.StepSpecialist, session.StepDateTime, session.StepContact:
			return session.GoToStep{Step: step}, ""
		}
		return nil, "unknown step"
	case "reset":
		return session.Reset{}, ""
	}
	return nil, "unknown action type"
}

// Submit books the appointment described by the session's selections, then
// marks the session complete. Contact details arrive with the submission
// and are not stored in session state.
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.PathValue("id")

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Comment = strings.TrimSpace(req.Comment)

	st, slug, err := h.sessions.Get(id)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if !st.Valid {
		http.Error(w, st.ValidationError, http.StatusUnprocessableEntity)
		return
	}
	if st.Complete {
		http.Error(w, "session already completed", http.StatusConflict)
		return
	}
	if !st.SelectionComplete() {
		http.Error(w, "selection is incomplete", http.StatusUnprocessableEntity)
		return
	}
	if msg := validateContact(req.FullName, req.Email, req.Phone); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	cat, err := h.catalogs.Get(r.Context(), slug)
	if err != nil || cat == nil {
		http.Error(w, "failed to load catalog", http.StatusInternalServerError)
		return
	}
	res := selection.Validate(cat, selection.Selection{
		LocationID:   st.LocationID,
		ServiceID:    st.ServiceID,
		SpecialistID: st.SpecialistID,
	})
	if !res.Valid {
		http.Error(w, res.Error, http.StatusUnprocessableEntity)
		return
	}

	svc, _ := cat.ServiceByID(st.ServiceID)
	start, err := time.ParseInLocation("2006-01-02T15:04", st.Date+"T"+st.Time, time.Local)
	if err != nil {
		http.Error(w, "invalid date or time in session", http.StatusUnprocessableEntity)
		return
	}

	appt := &model.Appointment{
		CompanyID:    cat.ID,
		LocationID:   st.LocationID,
		ServiceID:    st.ServiceID,
		SpecialistID: st.SpecialistID,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Comment:      req.Comment,
		StartTime:    start,
		EndTime:      start.Add(time.Duration(svc.Duration) * time.Minute),
	}

	bookingID, err := h.booking.persist(r.Context(), appt)
	if err != nil {
		if storage.IsConflict(err) {
			http.Error(w, "time slot already booked", http.StatusConflict)
			return
		}
		h.logger.Error("session submit failed", "err", err, "session_id", id)
		http.Error(w, "failed to create booking", http.StatusInternalServerError)
		return
	}

	h.booking.slots.InvalidateSpecialistDay(st.SpecialistID, st.Date)

	st, err = h.sessions.Apply(id, session.CompleteBooking{})
	if err != nil && !errors.Is(err, session.ErrSessionNotFound) {
		h.logger.Error("session completion failed", "err", err, "session_id", id)
	}
	writeJSON(w, http.StatusCreated, submitResponse{Success: true, BookingID: bookingID, State: st})
}
