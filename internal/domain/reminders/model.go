package reminders

// Type es el tipo de recordatorio.
// @Enum vaccine, appointment, medication
type Type string

const (
	TypeVaccine     Type = "vaccine"
	TypeAppointment Type = "appointment"
	TypeMedication  Type = "medication"
)

func (t Type) Valid() bool {
	switch t {
	case TypeVaccine, TypeAppointment, TypeMedication:
		return true
	default:
		return false
	}
}

// Reminder es una tarea fechada asociada a una mascota.
// PetID es referencia débil: el store borra en cascada al eliminar la mascota.
type Reminder struct {
	ID        string `json:"id"`
	PetID     string `json:"petId"`
	Type      Type   `json:"type"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Notes     string `json:"notes,omitempty"`
}

// Input son los datos de creación (sin id). Completed por defecto es false.
type Input struct {
	PetID     string
	Type      Type
	Title     string
	Date      string
	Completed bool
	Notes     string
}

func New(id string, in Input) Reminder {
	return Reminder{
		ID:        id,
		PetID:     in.PetID,
		Type:      in.Type,
		Title:     in.Title,
		Date:      in.Date,
		Completed: in.Completed,
		Notes:     in.Notes,
	}
}

// Patch: nil = no tocar.
type Patch struct {
	PetID     *string
	Type      *Type
	Title     *string
	Date      *string
	Completed *bool
	Notes     *string
}

func (p Patch) Apply(r Reminder) Reminder {
	if p.PetID != nil {
		r.PetID = *p.PetID
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Completed != nil {
		r.Completed = *p.Completed
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	return r
}
