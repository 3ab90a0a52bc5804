package pets

import "strings"

// Species define las especies soportadas.
// @Enum dog, cat, other
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesOther:
		return true
	default:
		return false
	}
}

// Gender define el sexo de la mascota.
// @Enum male, female
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Vaccine es un registro de vacunación; pertenece a una sola mascota.
// Las fechas se guardan como YYYY-MM-DD, igual que en el blob persistido.
type Vaccine struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Date         string  `json:"date"`
	NextDate     *string `json:"nextDate"`
	Veterinarian string  `json:"veterinarian,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// HasNextDate indica si la vacuna tiene próxima dosis programada.
func (v Vaccine) HasNextDate() bool {
	return v.NextDate != nil && strings.TrimSpace(*v.NextDate) != ""
}

// Pet representa el perfil de una mascota con su carnet de vacunas.
type Pet struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Species   Species  `json:"species"`
	Breed     string   `json:"breed,omitempty"`
	Birthdate string   `json:"birthdate,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
	Gender    Gender   `json:"gender"`
	Photo     string   `json:"photo,omitempty"`

	Vaccines []Vaccine `json:"vaccines"`
}

// Vaccine busca una vacuna por id dentro de la mascota.
func (p Pet) Vaccine(id string) (Vaccine, bool) {
	for _, v := range p.Vaccines {
		if v.ID == id {
			return v, true
		}
	}
	return Vaccine{}, false
}

// Clone devuelve una copia profunda (los slices y punteros no se comparten).
func (p Pet) Clone() Pet {
	out := p
	if p.Weight != nil {
		w := *p.Weight
		out.Weight = &w
	}
	out.Vaccines = make([]Vaccine, 0, len(p.Vaccines))
	for _, v := range p.Vaccines {
		out.Vaccines = append(out.Vaccines, v.Clone())
	}
	return out
}

func (v Vaccine) Clone() Vaccine {
	out := v
	if v.NextDate != nil {
		d := *v.NextDate
		out.NextDate = &d
	}
	return out
}
