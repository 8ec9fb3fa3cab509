package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/uponco/bookflow/services/booking-service/internal/availability"
	"github.com/uponco/bookflow/services/booking-service/internal/catalog"
	"github.com/uponco/bookflow/services/booking-service/internal/catcache"
	"github.com/uponco/bookflow/services/booking-service/internal/model"
	"github.com/uponco/bookflow/services/booking-service/internal/outbox"
	"github.com/uponco/bookflow/services/booking-service/internal/reservations"
	"github.com/uponco/bookflow/services/booking-service/internal/selection"
	"github.com/uponco/bookflow/services/booking-service/internal/storage"
)

// CatalogSource resolves a company slug to its parsed catalog. Unknown slugs
// yield (nil, nil). catcache.Cache is the production implementation.
type CatalogSource interface {
	Get(ctx context.Context, slug string) (*catalog.Catalog, error)
}

type BookingHandler struct {
	catalogs   CatalogSource
	slots      *catcache.SlotCache
	repo       *storage.AppointmentRepository
	outboxRepo *outbox.Repository
	provider   func() reservations.Provider
	logger     *slog.Logger
}

func NewBookingHandler(catalogs CatalogSource, slots *catcache.SlotCache, repo *storage.AppointmentRepository, outboxRepo *outbox.Repository, provider func() reservations.Provider, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{
		catalogs:   catalogs,
		slots:      slots,
		repo:       repo,
		outboxRepo: outboxRepo,
		provider:   provider,
		logger:     logger,
	}
}

type optionsResponse struct {
	Locations   []catalog.Location   `json:"locations"`
	Services    []catalog.Service    `json:"services"`
	Specialists []catalog.Specialist `json:"specialists"`
	// AutoSelect names the dimensions with exactly one remaining candidate
	// that the client should pre-choose.
	AutoSelect map[string]string `json:"autoSelect,omitempty"`
}

type bookingRequest struct {
	Company      string `json:"company"`
	LocationID   string `json:"locationId"`
	ServiceID    string `json:"serviceId"`
	SpecialistID string `json:"specialistId"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Comment      string `json:"comment"`
}

type bookingResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId"`
}

func (h *BookingHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	cat, ok := h.loadCatalog(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (h *BookingHandler) Options(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	cat, ok := h.loadCatalog(w, r)
	if !ok {
		return
	}

	sel := selectionFromQuery(r)
	filtered := selection.Options(cat, sel)

	resp := optionsResponse{
		Locations:   filtered.Locations,
		Services:    filtered.Services,
		Specialists: filtered.Specialists,
	}
	if auto := selection.AutoSelect(cat, sel); len(auto) > 0 {
		resp.AutoSelect = auto
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	cat, ok := h.loadCatalog(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, selection.Validate(cat, selectionFromQuery(r)))
}

func (h *BookingHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	cat, ok := h.loadCatalog(w, r)
	if !ok {
		return
	}

	specialistID := strings.TrimSpace(r.URL.Query().Get("specialist"))
	serviceID := strings.TrimSpace(r.URL.Query().Get("service"))
	dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
	if specialistID == "" || serviceID == "" || dateStr == "" {
		http.Error(w, "specialist, service, and date are required", http.StatusBadRequest)
		return
	}

	sp, found := cat.SpecialistByID(specialistID)
	if !found {
		http.Error(w, "specialist not found", http.StatusNotFound)
		return
	}
	svc, found := cat.ServiceByID(serviceID)
	if !found {
		http.Error(w, "service not found", http.StatusNotFound)
		return
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	slots, err := h.slots.Get(r.Context(), specialistID, dateStr, svc.Duration, func(ctx context.Context) ([]availability.TimeSlot, error) {
		return h.generateSlots(ctx, sp, date, svc.Duration)
	})
	if err != nil {
		h.logger.Error("slot generation failed", "err", err, "specialist", specialistID, "date", dateStr)
		http.Error(w, "failed to load slots", http.StatusInternalServerError)
		return
	}
	if slots == nil {
		slots = []availability.TimeSlot{}
	}
	writeJSON(w, http.StatusOK, slots)
}

func (h *BookingHandler) generateSlots(ctx context.Context, sp *catalog.Specialist, date time.Time, duration int) ([]availability.TimeSlot, error) {
	prov := h.provider()
	var provErr error
	isBooked := func(specialistID, dateISO, slotTime string) bool {
		if provErr != nil {
			return false
		}
		booked, err := prov.IsBooked(ctx, specialistID, dateISO, slotTime)
		if err != nil {
			provErr = err
			return false
		}
		return booked
	}
	slots := availability.Generate(sp, date, duration, time.Now(), isBooked)
	if provErr != nil {
		return nil, provErr
	}
	return slots, nil
}

func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Company = strings.TrimSpace(req.Company)
	req.LocationID = strings.TrimSpace(req.LocationID)
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	req.SpecialistID = strings.TrimSpace(req.SpecialistID)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Comment = strings.TrimSpace(req.Comment)

	if req.Company == "" || req.ServiceID == "" || req.SpecialistID == "" || req.Date == "" || req.Time == "" {
		http.Error(w, "company, serviceId, specialistId, date, and time are required", http.StatusBadRequest)
		return
	}
	if msg := validateContact(req.FullName, req.Email, req.Phone); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
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

	res := selection.Validate(cat, selection.Selection{
		LocationID:   req.LocationID,
		ServiceID:    req.ServiceID,
		SpecialistID: req.SpecialistID,
	})
	if !res.Valid {
		http.Error(w, res.Error, http.StatusUnprocessableEntity)
		return
	}

	svc, _ := cat.ServiceByID(req.ServiceID)
	start, err := time.ParseInLocation("2006-01-02T15:04", req.Date+"T"+req.Time, time.Local)
	if err != nil {
		http.Error(w, "invalid date or time", http.StatusBadRequest)
		return
	}
	now := time.Now()
	if start.Before(now) {
		http.Error(w, "requested slot is in the past", http.StatusUnprocessableEntity)
		return
	}
	if start.After(now.AddDate(0, 0, availability.BookingHorizonDays)) {
		http.Error(w, "requested slot is beyond the booking horizon", http.StatusUnprocessableEntity)
		return
	}

	appt := &model.Appointment{
		CompanyID:    cat.ID,
		LocationID:   req.LocationID,
		ServiceID:    req.ServiceID,
		SpecialistID: req.SpecialistID,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Comment:      req.Comment,
		StartTime:    start,
		EndTime:      start.Add(time.Duration(svc.Duration) * time.Minute),
	}

	id, err := h.persist(r.Context(), appt)
	if err != nil {
		if storage.IsConflict(err) {
			http.Error(w, "time slot already booked", http.StatusConflict)
			return
		}
		h.logger.Error("booking failed", "err", err, "specialist", req.SpecialistID)
		http.Error(w, "failed to create booking", http.StatusInternalServerError)
		return
	}

	h.slots.InvalidateSpecialistDay(req.SpecialistID, req.Date)
	writeJSON(w, http.StatusCreated, bookingResponse{Success: true, BookingID: id})
}

// appointmentView is the staff-facing projection of a stored appointment.
type appointmentView struct {
	ID           string    `json:"id"`
	LocationID   string    `json:"locationId,omitempty"`
	ServiceID    string    `json:"serviceId"`
	SpecialistID string    `json:"specialistId"`
	FullName     string    `json:"fullName"`
	Comment      string    `json:"comment,omitempty"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
}

// SpecialistAppointments lists one specialist's appointments over an
// inclusive date range. Staff-facing: registered outside /public.
func (h *BookingHandler) SpecialistAppointments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	specialistID := r.PathValue("id")
	q := r.URL.Query()
	fromStr := strings.TrimSpace(q.Get("from"))
	toStr := strings.TrimSpace(q.Get("to"))
	if fromStr == "" || toStr == "" {
		http.Error(w, "from and to are required", http.StatusBadRequest)
		return
	}
	from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
	if err != nil {
		http.Error(w, "invalid from date", http.StatusBadRequest)
		return
	}
	to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
	if err != nil {
		http.Error(w, "invalid to date", http.StatusBadRequest)
		return
	}
	if to.Before(from) {
		http.Error(w, "to must not precede from", http.StatusBadRequest)
		return
	}

	appts, err := h.repo.ListBySpecialist(r.Context(), specialistID, from, to.AddDate(0, 0, 1))
	if err != nil {
		h.logger.Error("appointment list failed", "err", err, "specialist", specialistID)
		http.Error(w, "failed to load appointments", http.StatusInternalServerError)
		return
	}

	views := make([]appointmentView, 0, len(appts))
	for _, a := range appts {
		views = append(views, appointmentView{
			ID:           a.ID,
			LocationID:   a.LocationID,
			ServiceID:    a.ServiceID,
			SpecialistID: a.SpecialistID,
			FullName:     a.FullName,
			Comment:      a.Comment,
			StartTime:    a.StartTime,
			EndTime:      a.EndTime,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

// persist writes the appointment and its booked event in one transaction.
func (h *BookingHandler) persist(ctx context.Context, appt *model.Appointment) (string, error) {
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	id, err := h.repo.Create(ctx, tx, appt)
	if err != nil {
		return "", err
	}
	appt.ID = id

	evt, err := outbox.NewAppointmentBooked(appt)
	if err != nil {
		return "", err
	}
	if err := h.outboxRepo.Insert(ctx, tx, evt); err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (h *BookingHandler) loadCatalog(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, bool) {
	slug := strings.TrimSpace(r.URL.Query().Get("company"))
	if slug == "" {
		http.Error(w, "company is required", http.StatusBadRequest)
		return nil, false
	}
	cat, err := h.catalogs.Get(r.Context(), slug)
	if err != nil {
		h.logger.Error("catalog load failed", "err", err, "company", slug)
		http.Error(w, "failed to load catalog", http.StatusInternalServerError)
		return nil, false
	}
	if cat == nil {
		http.Error(w, "company not found", http.StatusNotFound)
		return nil, false
	}
	return cat, true
}

func selectionFromQuery(r *http.Request) selection.Selection {
	q := r.URL.Query()
	return selection.Selection{
		LocationID:   strings.TrimSpace(q.Get("location")),
		ServiceID:    strings.TrimSpace(q.Get("service")),
		SpecialistID: strings.TrimSpace(q.Get("specialist")),
	}
}

func validateContact(fullName, email, phone string) string {
	if len([]rune(fullName)) < 2 {
		return "fullName must be at least 2 characters"
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "invalid email address"
	}
	if len([]rune(phone)) < 7 {
		return "phone must be at least 7 characters"
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
