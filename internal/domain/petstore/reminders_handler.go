package petstore

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-house/internal/domain/pets"
	"pet-house/internal/domain/reminders"
	"pet-house/internal/platform/textclean"

	"github.com/go-chi/chi/v5"
)

// Clock se inyecta para calcular "overdue" en tests.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

func registerReminderRoutes(r chi.Router, store *Store, now Clock) {
	r.Route("/reminders", func(rr chi.Router) {
		rr.Get("/", listRemindersHandler(store, now))
		rr.Post("/", createReminderHandler(store, now))
		rr.Post("/derive", deriveRemindersHandler(store, now))

		rr.Get("/{reminderID}", getReminderHandler(store, now))
		rr.Patch("/{reminderID}", updateReminderHandler(store, now))
		rr.Delete("/{reminderID}", deleteReminderHandler(store))
		rr.Post("/{reminderID}/complete", completeReminderHandler(store, now))
	})
}

type createReminderRequest struct {
	PetID string `json:"petId"`
	Type  string `json:"type"`
	Title string `json:"title"`
	Date  string `json:"date"` // YYYY-MM-DD
	Notes string `json:"notes"`
}

type updateReminderRequest struct {
	Type      *string `json:"type"`
	Title     *string `json:"title"`
	Date      *string `json:"date"`
	Completed *bool   `json:"completed"`
	Notes     *string `json:"notes"`
}

type reminderResponse struct {
	ID        string         `json:"id"`
	PetID     string         `json:"petId"`
	Type      reminders.Type `json:"type"`
	Title     string         `json:"title"`
	Date      string         `json:"date"`
	Completed bool           `json:"completed"`
	Notes     string         `json:"notes,omitempty"`
	Overdue   bool           `json:"overdue"`
}

// listRemindersHandler godoc
// @Summary Listar recordatorios
// @Description Devuelve los recordatorios ordenados por fecha ascendente.
// @Tags reminders
// @Produce json
// @Param status query string false "all | pending | completed. Por defecto all"
// @Param pet_id query string false "Filtra por mascota"
// @Success 200 {array} reminderResponse
// @Failure 400 {string} string "status inválido"
// @Router /reminders [get]
func listRemindersHandler(store *Store, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		status, ok := reminders.ParseStatus(q.Get("status"))
		if !ok {
			http.Error(w, "status must be all, pending or completed", http.StatusBadRequest)
			return
		}

		var items []reminders.Reminder
		if petID := strings.TrimSpace(q.Get("pet_id")); petID != "" {
			items = store.RemindersForPet(petID)
		} else {
			items = store.Reminders()
		}
		items = reminders.SortByDate(reminders.Filter(items, status))

		t := now()
		out := make([]reminderResponse, 0, len(items))
		for _, rem := range items {
			out = append(out, toReminderResponse(rem, t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createReminderHandler godoc
// @Summary Crear recordatorio
// @Description `type` es vaccine | appointment | medication. La mascota debe existir.
// @Tags reminders
// @Accept json
// @Produce json
// @Param payload body createReminderRequest true "Datos del recordatorio"
// @Success 201 {object} reminderResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "pet not found"
// @Router /reminders [post]
func createReminderHandler(store *Store, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReminderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := reminders.Input{
			PetID: strings.TrimSpace(req.PetID),
			Type:  reminders.Type(strings.ToLower(strings.TrimSpace(req.Type))),
			Title: textclean.Clean(req.Title),
			Date:  strings.TrimSpace(req.Date),
			Notes: textclean.Clean(req.Notes),
		}
		if err := validateReminderInput(in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rem, ok := store.AddReminderForPet(r.Context(), in)
		if !ok {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusCreated, toReminderResponse(rem, now()))
	}
}

// getReminderHandler godoc
// @Summary Ver recordatorio
// @Tags reminders
// @Produce json
// @Param reminderID path string true "ID del recordatorio"
// @Success 200 {object} reminderResponse
// @Failure 404 {string} string "reminder not found"
// @Router /reminders/{reminderID} [get]
func getReminderHandler(store *Store, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rem, ok := store.Reminder(chi.URLParam(r, "reminderID"))
		if !ok {
			http.Error(w, "reminder not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toReminderResponse(rem, now()))
	}
}

// updateReminderHandler godoc
// @Summary Actualizar recordatorio
// @Tags reminders
// @Accept json
// @Produce json
// @Param reminderID path string true "ID del recordatorio"
// @Param payload body updateReminderRequest true "Campos a modificar"
// @Success 200 {object} reminderResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "reminder not found"
// @Router /reminders/{reminderID} [patch]
func updateReminderHandler(store *Store, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateReminderRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		patch := reminders.Patch{
			Title:     textclean.CleanPtr(req.Title),
			Date:      trimPtr(req.Date),
			Completed: req.Completed,
			Notes:     textclean.CleanPtr(req.Notes),
		}
		if req.Type != nil {
			t := reminders.Type(strings.ToLower(strings.TrimSpace(*req.Type)))
			patch.Type = &t
		}
		if err := validateReminderPatch(patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rem, ok := store.UpdateReminder(r.Context(), chi.URLParam(r, "reminderID"), patch)
		if !ok {
			http.Error(w, "reminder not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toReminderResponse(rem, now()))
	}
}

// completeReminderHandler godoc
// @Summary Completar recordatorio
// @Tags reminders
// @Produce json
// @Param reminderID path string true "ID del recordatorio"
// @Success 200 {object} reminderResponse
// @Failure 404 {string} string "reminder not found"
// @Router /reminders/{reminderID}/complete [post]
func completeReminderHandler(store *Store, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rem, ok := store.CompleteReminder(r.Context(), chi.URLParam(r, "reminderID"))
		if !ok {
			http.Error(w, "reminder not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toReminderResponse(rem, now()))
	}
}

// deleteReminderHandler godoc
// @Summary Eliminar recordatorio
// @Tags reminders
// @Param reminderID path string true "ID del recordatorio"
// @Success 204
// @Failure 404 {string} string "reminder not found"
// @Router /reminders/{reminderID} [delete]
func deleteReminderHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !store.DeleteReminder(r.Context(), chi.URLParam(r, "reminderID")) {
			http.Error(w, "reminder not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// deriveRemindersHandler godoc
// @Summary Generar recordatorios de vacunas
// @Description Crea los recordatorios de próxima dosis que falten. Repetir la llamada no crea duplicados.
// @Tags reminders
// @Produce json
// @Success 200 {array} reminderResponse
// @Router /reminders/derive [post]
func deriveRemindersHandler(store *Store, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		created := store.DeriveReminders(r.Context())

		t := now()
		out := make([]reminderResponse, 0, len(created))
		for _, rem := range created {
			out = append(out, toReminderResponse(rem, t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toReminderResponse(r reminders.Reminder, now time.Time) reminderResponse {
	return reminderResponse{
		ID:        r.ID,
		PetID:     r.PetID,
		Type:      r.Type,
		Title:     r.Title,
		Date:      r.Date,
		Completed: r.Completed,
		Notes:     r.Notes,
		Overdue:   reminders.IsOverdue(r, now),
	}
}

func validateReminderInput(in reminders.Input) error {
	if in.PetID == "" {
		return invalid("petId is required")
	}
	if !in.Type.Valid() {
		return invalid("type must be vaccine, appointment or medication")
	}
	if in.Title == "" {
		return invalid("title is required")
	}
	if _, err := pets.ParseDate(in.Date); err != nil {
		return invalid("date must be YYYY-MM-DD")
	}
	return nil
}

func validateReminderPatch(p reminders.Patch) error {
	if p.Type != nil && !p.Type.Valid() {
		return invalid("type must be vaccine, appointment or medication")
	}
	if p.Title != nil && *p.Title == "" {
		return invalid("title cannot be empty")
	}
	if p.Date != nil {
		if _, err := pets.ParseDate(*p.Date); err != nil {
			return invalid("date must be YYYY-MM-DD")
		}
	}
	return nil
}
