package petstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"pet-house/internal/domain/pets"
	"pet-house/internal/platform/textclean"

	"github.com/go-chi/chi/v5"
)

var ErrInvalidInput = errors.New("invalid input")

func RegisterRoutes(r chi.Router, store *Store, now Clock) {
	if now == nil {
		now = systemClock
	}

	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(store))
		pr.Post("/", createPetHandler(store))

		pr.Get("/{petID}", getPetHandler(store))
		pr.Patch("/{petID}", updatePetHandler(store))
		pr.Delete("/{petID}", deletePetHandler(store))

		// Carnet de vacunas
		pr.Get("/{petID}/vaccines", listVaccinesHandler(store))
		pr.Post("/{petID}/vaccines", createVaccineHandler(store))
		pr.Patch("/{petID}/vaccines/{vaccineID}", updateVaccineHandler(store))
		pr.Delete("/{petID}/vaccines/{vaccineID}", deleteVaccineHandler(store))
	})

	registerReminderRoutes(r, store, now)
}

type createPetRequest struct {
	Name      string   `json:"name"`
	Species   string   `json:"species"`
	Breed     string   `json:"breed"`
	Birthdate string   `json:"birthdate"` // YYYY-MM-DD opcional
	Weight    *float64 `json:"weight"`
	Gender    string   `json:"gender"`
	Photo     string   `json:"photo"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar. id y vaccines no se aceptan.
	Name      *string  `json:"name"`
	Species   *string  `json:"species"`
	Breed     *string  `json:"breed"`
	Birthdate *string  `json:"birthdate"`
	Weight    *float64 `json:"weight"`
	Gender    *string  `json:"gender"`
	Photo     *string  `json:"photo"`
}

type createVaccineRequest struct {
	Name         string  `json:"name"`
	Date         string  `json:"date"`     // YYYY-MM-DD
	NextDate     *string `json:"nextDate"` // opcional
	Veterinarian string  `json:"veterinarian"`
	Notes        string  `json:"notes"`
}

type updateVaccineRequest struct {
	Name         *string `json:"name"`
	Date         *string `json:"date"`
	Veterinarian *string `json:"veterinarian"`
	Notes        *string `json:"notes"`
	// nextDate se lee aparte para distinguir null de ausente
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Devuelve todas las mascotas en orden de alta, con su carnet de vacunas.
// @Tags pets
// @Produce json
// @Success 200 {array} pets.Pet
// @Router /pets [get]
func listPetsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Pets())
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Crea una mascota con carnet vacío. `name`, `species` (dog|cat|other) y `gender` (male|female) son obligatorios.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} pets.Pet
// @Failure 400 {string} string "invalid json / validación"
// @Router /pets [post]
func createPetHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := pets.PetInput{
			Name:      textclean.Clean(req.Name),
			Species:   pets.Species(strings.ToLower(strings.TrimSpace(req.Species))),
			Breed:     textclean.Clean(req.Breed),
			Birthdate: strings.TrimSpace(req.Birthdate),
			Weight:    req.Weight,
			Gender:    pets.Gender(strings.ToLower(strings.TrimSpace(req.Gender))),
			Photo:     strings.TrimSpace(req.Photo),
		}
		if err := validatePetInput(in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, store.AddPet(r.Context(), in))
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} pets.Pet
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := store.Pet(chi.URLParam(r, "petID"))
		if !ok {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Mezcla los campos enviados sobre la mascota. No modifica id ni vacunas.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} pets.Pet
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [patch]
func updatePetHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		patch := pets.PetPatch{
			Name:      textclean.CleanPtr(req.Name),
			Breed:     textclean.CleanPtr(req.Breed),
			Birthdate: trimPtr(req.Birthdate),
			Weight:    req.Weight,
			Photo:     trimPtr(req.Photo),
		}
		if req.Species != nil {
			s := pets.Species(strings.ToLower(strings.TrimSpace(*req.Species)))
			patch.Species = &s
		}
		if req.Gender != nil {
			g := pets.Gender(strings.ToLower(strings.TrimSpace(*req.Gender)))
			patch.Gender = &g
		}
		if err := validatePetPatch(patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		updated, ok := store.UpdatePet(r.Context(), chi.URLParam(r, "petID"), patch)
		if !ok {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// deletePetHandler godoc
// @Summary Eliminar mascota
// @Description Elimina la mascota, su carnet y todos sus recordatorios.
// @Tags pets
// @Param petID path string true "ID de la mascota"
// @Success 204
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [delete]
func deletePetHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !store.DeletePet(r.Context(), chi.URLParam(r, "petID")) {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listVaccinesHandler godoc
// @Summary Carnet de vacunas
// @Tags vaccines
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param sort query string false "name | date | nextDate. Sin sort se respeta el orden de alta"
// @Param dir query string false "asc | desc. Por defecto desc"
// @Success 200 {array} pets.Vaccine
// @Failure 400 {string} string "sort/dir inválidos"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/vaccines [get]
func listVaccinesHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		key := pets.SortKey(q.Get("sort"))
		switch key {
		case "", pets.SortByName, pets.SortByDate, pets.SortByNextDate:
		default:
			http.Error(w, "sort must be name, date or nextDate", http.StatusBadRequest)
			return
		}

		dir := pets.SortDir(strings.ToLower(q.Get("dir")))
		switch dir {
		case "":
			dir = pets.Descending
		case pets.Ascending, pets.Descending:
		default:
			http.Error(w, "dir must be asc or desc", http.StatusBadRequest)
			return
		}

		p, ok := store.Pet(chi.URLParam(r, "petID"))
		if !ok {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		if key == "" {
			writeJSON(w, http.StatusOK, p.Vaccines)
			return
		}
		writeJSON(w, http.StatusOK, pets.SortVaccines(p.Vaccines, key, dir))
	}
}

// createVaccineHandler godoc
// @Summary Registrar vacuna
// @Description Agrega una vacuna al carnet. Si trae `nextDate` se crea el recordatorio de la próxima dosis.
// @Tags vaccines
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body createVaccineRequest true "Datos de la vacuna; fechas YYYY-MM-DD"
// @Success 201 {object} pets.Vaccine
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/vaccines [post]
func createVaccineHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createVaccineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := pets.VaccineInput{
			Name:         textclean.Clean(req.Name),
			Date:         strings.TrimSpace(req.Date),
			NextDate:     trimPtr(req.NextDate),
			Veterinarian: textclean.Clean(req.Veterinarian),
			Notes:        textclean.Clean(req.Notes),
		}
		if err := validateVaccineInput(in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		v, ok := store.AddVaccine(r.Context(), chi.URLParam(r, "petID"), in)
		if !ok {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusCreated, v)
	}
}

// updateVaccineHandler godoc
// @Summary Actualizar vacuna
// @Description Mezcla los campos enviados. `nextDate: null` elimina la próxima dosis.
// @Tags vaccines
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param vaccineID path string true "ID de la vacuna"
// @Param payload body updateVaccineRequest true "Campos a modificar"
// @Success 200 {object} pets.Vaccine
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "vaccine not found"
// @Router /pets/{petID}/vaccines/{vaccineID} [patch]
func updateVaccineHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Decodificar a map primero para detectar si "nextDate" vino (null = limpiar).
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		nd := pets.ClearableDate{}
		if v, exists := raw["nextDate"]; exists {
			nd.Present = true
			delete(raw, "nextDate")
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					http.Error(w, "nextDate must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				nd.Value = trimPtr(&s)
			}
		}

		var req updateVaccineRequest
		b, err := json.Marshal(raw)
		if err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		patch := pets.VaccinePatch{
			Name:         textclean.CleanPtr(req.Name),
			Date:         trimPtr(req.Date),
			NextDate:     nd,
			Veterinarian: textclean.CleanPtr(req.Veterinarian),
			Notes:        textclean.CleanPtr(req.Notes),
		}
		if err := validateVaccinePatch(patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		v, ok := store.UpdateVaccine(r.Context(), chi.URLParam(r, "petID"), chi.URLParam(r, "vaccineID"), patch)
		if !ok {
			http.Error(w, "vaccine not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// deleteVaccineHandler godoc
// @Summary Eliminar vacuna
// @Description Quita la vacuna del carnet. Los recordatorios ya creados se conservan.
// @Tags vaccines
// @Param petID path string true "ID de la mascota"
// @Param vaccineID path string true "ID de la vacuna"
// @Success 204
// @Failure 404 {string} string "vaccine not found"
// @Router /pets/{petID}/vaccines/{vaccineID} [delete]
func deleteVaccineHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !store.DeleteVaccine(r.Context(), chi.URLParam(r, "petID"), chi.URLParam(r, "vaccineID")) {
			http.Error(w, "vaccine not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// -------------------------
// Validación
// -------------------------

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validatePetInput(in pets.PetInput) error {
	if in.Name == "" {
		return invalid("name is required")
	}
	if !in.Species.Valid() {
		return invalid("species must be dog, cat or other")
	}
	if !in.Gender.Valid() {
		return invalid("gender must be male or female")
	}
	if in.Birthdate != "" {
		if _, err := pets.ParseDate(in.Birthdate); err != nil {
			return invalid("birthdate must be YYYY-MM-DD")
		}
	}
	if in.Weight != nil && *in.Weight <= 0 {
		return invalid("weight must be > 0")
	}
	return nil
}

func validatePetPatch(p pets.PetPatch) error {
	if p.Name != nil && *p.Name == "" {
		return invalid("name cannot be empty")
	}
	if p.Species != nil && !p.Species.Valid() {
		return invalid("species must be dog, cat or other")
	}
	if p.Gender != nil && !p.Gender.Valid() {
		return invalid("gender must be male or female")
	}
	if p.Birthdate != nil && *p.Birthdate != "" {
		if _, err := pets.ParseDate(*p.Birthdate); err != nil {
			return invalid("birthdate must be YYYY-MM-DD")
		}
	}
	if p.Weight != nil && *p.Weight <= 0 {
		return invalid("weight must be > 0")
	}
	return nil
}

func validateVaccineInput(in pets.VaccineInput) error {
	if in.Name == "" {
		return invalid("name is required")
	}
	if _, err := pets.ParseDate(in.Date); err != nil {
		return invalid("date must be YYYY-MM-DD")
	}
	if in.NextDate != nil && *in.NextDate != "" {
		if _, err := pets.ParseDate(*in.NextDate); err != nil {
			return invalid("nextDate must be YYYY-MM-DD")
		}
	}
	return nil
}

func validateVaccinePatch(p pets.VaccinePatch) error {
	if p.Name != nil && *p.Name == "" {
		return invalid("name cannot be empty")
	}
	if p.Date != nil {
		if _, err := pets.ParseDate(*p.Date); err != nil {
			return invalid("date must be YYYY-MM-DD")
		}
	}
	if v := p.NextDate.Value; p.NextDate.Present && v != nil && *v != "" {
		if _, err := pets.ParseDate(*v); err != nil {
			return invalid("nextDate must be YYYY-MM-DD or null")
		}
	}
	return nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// writeJSON está duplicado en cada paquete con handlers (petstore/assistant),
// igual que el resto de helpers HTTP chicos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
