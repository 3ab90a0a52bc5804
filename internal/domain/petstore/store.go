// Package petstore es la única fuente de verdad de mascotas, vacunas y recordatorios.
// Todas las mutaciones pasan por un único lock: mutar, derivar recordatorios y persistir
// ocurren como una sola sección crítica.
package petstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"pet-house/internal/domain/pets"
	"pet-house/internal/domain/reminders"
	"pet-house/internal/platform/logger"
	"pet-house/internal/ports/blobstore"
)

// Claves del blob store. Cada una guarda un arreglo JSON completo.
const (
	KeyPets      = "pets"
	KeyReminders = "reminders"
)

// Recorder recibe las señales de métricas del store.
type Recorder interface {
	RecordMutation(op string, found bool)
	RecordRemindersDerived(n int)
	RecordPersistFailure(key string)
}

type nopRecorder struct{}

func (nopRecorder) RecordMutation(string, bool) {}
func (nopRecorder) RecordRemindersDerived(int)  {}
func (nopRecorder) RecordPersistFailure(string) {}

type Options struct {
	Blobs   blobstore.Store
	Logger  logger.Logger // opcional
	Metrics Recorder      // opcional
	NewID   func() string // opcional, default uuid
}

type Store struct {
	mu sync.Mutex

	blobs   blobstore.Store
	log     logger.Logger
	metrics Recorder
	newID   func() string

	pets      []pets.Pet
	reminders []reminders.Reminder
}

// Open carga ambas colecciones y corre una pasada de derivación.
// Datos ausentes o malformados se tratan como colección vacía; solo un error
// del adapter (p.ej. base caída) hace fallar el arranque.
func Open(ctx context.Context, opts Options) (*Store, error) {
	s := &Store{
		blobs:   opts.Blobs,
		log:     opts.Logger,
		metrics: opts.Metrics,
		newID:   opts.NewID,
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	s.log = s.log.With(logger.Fields{"component": "petstore"})
	if s.metrics == nil {
		s.metrics = nopRecorder{}
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}

	var err error
	if s.pets, err = loadCollection[pets.Pet](ctx, s.blobs, s.log, KeyPets); err != nil {
		return nil, err
	}
	if s.reminders, err = loadCollection[reminders.Reminder](ctx, s.blobs, s.log, KeyReminders); err != nil {
		return nil, err
	}
	for i := range s.pets {
		if s.pets[i].Vaccines == nil {
			s.pets[i].Vaccines = []pets.Vaccine{}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.deriveLocked(ctx)

	s.log.Info("store loaded", logger.Fields{
		"pets":      len(s.pets),
		"reminders": len(s.reminders),
	})
	return s, nil
}

// ---------------------------------------------------------------------------
// Lecturas: copias profundas en orden de inserción.
// ---------------------------------------------------------------------------

func (s *Store) Pets() []pets.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]pets.Pet, 0, len(s.pets))
	for _, p := range s.pets {
		out = append(out, p.Clone())
	}
	return out
}

func (s *Store) Pet(id string) (pets.Pet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.petIndex(id)
	if i < 0 {
		return pets.Pet{}, false
	}
	return s.pets[i].Clone(), true
}

func (s *Store) Reminders() []reminders.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]reminders.Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

func (s *Store) Reminder(id string) (reminders.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.reminderIndex(id)
	if i < 0 {
		return reminders.Reminder{}, false
	}
	return s.reminders[i], true
}

// RemindersForPet devuelve los recordatorios de una mascota.
func (s *Store) RemindersForPet(petID string) []reminders.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	return reminders.ForPet(s.reminders, petID)
}

// ---------------------------------------------------------------------------
// Mascotas
// ---------------------------------------------------------------------------

// AddPet crea la mascota con id nuevo y carnet vacío.
func (s *Store) AddPet(ctx context.Context, in pets.PetInput) pets.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := pets.NewPet(s.newID(), in)
	s.pets = append(s.pets, p)
	s.persistPets(ctx)

	s.done("add_pet", true, logger.Fields{"pet_id": p.ID, "pet_name": p.Name})
	return p.Clone()
}

// UpdatePet mezcla los campos del patch. found=false si el id no existe (no-op).
func (s *Store) UpdatePet(ctx context.Context, id string, patch pets.PetPatch) (pets.Pet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.petIndex(id)
	if i < 0 {
		s.done("update_pet", false, logger.Fields{"pet_id": id})
		return pets.Pet{}, false
	}

	s.pets[i] = patch.Apply(s.pets[i])
	s.persistPets(ctx)

	s.done("update_pet", true, logger.Fields{"pet_id": id})
	return s.pets[i].Clone(), true
}

// DeletePet borra la mascota (con sus vacunas) y en cascada todos sus recordatorios.
func (s *Store) DeletePet(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.petIndex(id)
	if i < 0 {
		s.done("delete_pet", false, logger.Fields{"pet_id": id})
		return false
	}

	s.pets = append(s.pets[:i:i], s.pets[i+1:]...)

	kept := make([]reminders.Reminder, 0, len(s.reminders))
	removed := 0
	for _, r := range s.reminders {
		if r.PetID == id {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.reminders = kept

	s.persistPets(ctx)
	s.persistReminders(ctx)

	s.done("delete_pet", true, logger.Fields{"pet_id": id, "reminders_removed": removed})
	return true
}

// ---------------------------------------------------------------------------
// Vacunas
// ---------------------------------------------------------------------------

// AddVaccine agrega la vacuna al carnet. Si trae nextDate crea además el
// recordatorio de próxima dosis y luego corre la derivación.
func (s *Store) AddVaccine(ctx context.Context, petID string, in pets.VaccineInput) (pets.Vaccine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.petIndex(petID)
	if i < 0 {
		s.done("add_vaccine", false, logger.Fields{"pet_id": petID})
		return pets.Vaccine{}, false
	}

	v := pets.NewVaccine(s.newID(), in)
	s.pets[i].Vaccines = append(s.pets[i].Vaccines, v)
	s.persistPets(ctx)

	if rin, ok := reminders.ForVaccine(s.pets[i], v); ok {
		s.addReminderLocked(ctx, rin)
	}
	s.deriveLocked(ctx)

	s.done("add_vaccine", true, logger.Fields{"pet_id": petID, "vaccine_id": v.ID, "vaccine": v.Name})
	return v.Clone(), true
}

// UpdateVaccine mezcla campos en la vacuna indicada; no-op si pet o vacuna no existen.
func (s *Store) UpdateVaccine(ctx context.Context, petID, vaccineID string, patch pets.VaccinePatch) (pets.Vaccine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, j := s.vaccineIndex(petID, vaccineID)
	if j < 0 {
		s.done("update_vaccine", false, logger.Fields{"pet_id": petID, "vaccine_id": vaccineID})
		return pets.Vaccine{}, false
	}

	s.pets[i].Vaccines[j] = patch.Apply(s.pets[i].Vaccines[j])
	s.persistPets(ctx)
	s.deriveLocked(ctx)

	s.done("update_vaccine", true, logger.Fields{"pet_id": petID, "vaccine_id": vaccineID})
	return s.pets[i].Vaccines[j].Clone(), true
}

// DeleteVaccine quita la vacuna del carnet. El recordatorio derivado de ella se conserva.
func (s *Store) DeleteVaccine(ctx context.Context, petID, vaccineID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, j := s.vaccineIndex(petID, vaccineID)
	if j < 0 {
		s.done("delete_vaccine", false, logger.Fields{"pet_id": petID, "vaccine_id": vaccineID})
		return false
	}

	vs := s.pets[i].Vaccines
	s.pets[i].Vaccines = append(vs[:j:j], vs[j+1:]...)
	s.persistPets(ctx)

	s.done("delete_vaccine", true, logger.Fields{"pet_id": petID, "vaccine_id": vaccineID})
	return true
}

// ---------------------------------------------------------------------------
// Recordatorios
// ---------------------------------------------------------------------------

func (s *Store) AddReminder(ctx context.Context, in reminders.Input) reminders.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.addReminderLocked(ctx, in)
	s.done("add_reminder", true, logger.Fields{"reminder_id": r.ID, "pet_id": r.PetID, "date": r.Date})
	return r
}

// AddReminderForPet es AddReminder pero exige que in.PetID exista, comprobado bajo
// el mismo lock que el alta. found=false => no-op.
func (s *Store) AddReminderForPet(ctx context.Context, in reminders.Input) (reminders.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.petIndex(in.PetID) < 0 {
		s.done("add_reminder", false, logger.Fields{"pet_id": in.PetID})
		return reminders.Reminder{}, false
	}
	r := s.addReminderLocked(ctx, in)
	s.done("add_reminder", true, logger.Fields{"reminder_id": r.ID, "pet_id": r.PetID, "date": r.Date})
	return r, true
}

func (s *Store) UpdateReminder(ctx context.Context, id string, patch reminders.Patch) (reminders.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateReminderLocked(ctx, "update_reminder", id, patch)
}

// CompleteReminder equivale a UpdateReminder(id, {completed: true}).
func (s *Store) CompleteReminder(ctx context.Context, id string) (reminders.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	done := true
	return s.updateReminderLocked(ctx, "complete_reminder", id, reminders.Patch{Completed: &done})
}

// DeleteReminder no vuelve a derivar: un recordatorio de vacuna borrado solo
// reaparece tras DeriveReminders o una nueva mutación de la vacuna.
func (s *Store) DeleteReminder(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.reminderIndex(id)
	if i < 0 {
		s.done("delete_reminder", false, logger.Fields{"reminder_id": id})
		return false
	}

	s.reminders = append(s.reminders[:i:i], s.reminders[i+1:]...)
	s.persistReminders(ctx)

	s.done("delete_reminder", true, logger.Fields{"reminder_id": id})
	return true
}

// DeriveReminders corre la regla de derivación a demanda y devuelve lo creado.
func (s *Store) DeriveReminders(ctx context.Context) []reminders.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deriveLocked(ctx)
}

// ---------------------------------------------------------------------------
// internos (requieren s.mu tomado)
// ---------------------------------------------------------------------------

func (s *Store) addReminderLocked(ctx context.Context, in reminders.Input) reminders.Reminder {
	r := reminders.New(s.newID(), in)
	s.reminders = append(s.reminders, r)
	s.persistReminders(ctx)
	return r
}

func (s *Store) updateReminderLocked(ctx context.Context, op, id string, patch reminders.Patch) (reminders.Reminder, bool) {
	i := s.reminderIndex(id)
	if i < 0 {
		s.done(op, false, logger.Fields{"reminder_id": id})
		return reminders.Reminder{}, false
	}

	s.reminders[i] = patch.Apply(s.reminders[i])
	s.persistReminders(ctx)

	s.done(op, true, logger.Fields{"reminder_id": id})
	return s.reminders[i], true
}

func (s *Store) deriveLocked(ctx context.Context) []reminders.Reminder {
	created := reminders.DeriveVaccineReminders(s.pets, s.reminders, s.newID)
	if len(created) == 0 {
		return nil
	}

	s.reminders = append(s.reminders, created...)
	s.persistReminders(ctx)

	s.metrics.RecordRemindersDerived(len(created))
	s.log.Info("vaccine reminders generated", logger.Fields{"count": len(created)})

	out := make([]reminders.Reminder, len(created))
	copy(out, created)
	return out
}

func (s *Store) petIndex(id string) int {
	for i := range s.pets {
		if s.pets[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) vaccineIndex(petID, vaccineID string) (int, int) {
	i := s.petIndex(petID)
	if i < 0 {
		return -1, -1
	}
	for j := range s.pets[i].Vaccines {
		if s.pets[i].Vaccines[j].ID == vaccineID {
			return i, j
		}
	}
	return i, -1
}

func (s *Store) reminderIndex(id string) int {
	for i := range s.reminders {
		if s.reminders[i].ID == id {
			return i
		}
	}
	return -1
}

// done es la señal de confirmación de cada operación (log + métrica).
func (s *Store) done(op string, found bool, fields logger.Fields) {
	s.metrics.RecordMutation(op, found)
	fields["op"] = op
	if !found {
		s.log.Debug("not found, no-op", fields)
		return
	}
	s.log.Info("store updated", fields)
}
