package pets

// PetInput son los datos para crear una mascota (sin id ni vacunas).
// La validación de campos requeridos es responsabilidad del llamador.
type PetInput struct {
	Name      string
	Species   Species
	Breed     string
	Birthdate string
	Weight    *float64
	Gender    Gender
	Photo     string
}

// NewPet arma la mascota con el id dado y carnet vacío.
func NewPet(id string, in PetInput) Pet {
	p := Pet{
		ID:        id,
		Name:      in.Name,
		Species:   in.Species,
		Breed:     in.Breed,
		Birthdate: in.Birthdate,
		Gender:    in.Gender,
		Photo:     in.Photo,
		Vaccines:  []Vaccine{},
	}
	if in.Weight != nil {
		w := *in.Weight
		p.Weight = &w
	}
	return p
}

// PetPatch: punteros para PATCH real, nil = no tocar.
// id y vaccines no se modifican por esta vía.
type PetPatch struct {
	Name      *string
	Species   *Species
	Breed     *string
	Birthdate *string
	Weight    *float64
	Gender    *Gender
	Photo     *string
}

// Apply mezcla los campos presentes sobre p.
func (pp PetPatch) Apply(p Pet) Pet {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Species != nil {
		p.Species = *pp.Species
	}
	if pp.Breed != nil {
		p.Breed = *pp.Breed
	}
	if pp.Birthdate != nil {
		p.Birthdate = *pp.Birthdate
	}
	if pp.Weight != nil {
		w := *pp.Weight
		p.Weight = &w
	}
	if pp.Gender != nil {
		p.Gender = *pp.Gender
	}
	if pp.Photo != nil {
		p.Photo = *pp.Photo
	}
	return p
}

// VaccineInput son los datos para registrar una vacuna (sin id).
type VaccineInput struct {
	Name         string
	Date         string
	NextDate     *string
	Veterinarian string
	Notes        string
}

func NewVaccine(id string, in VaccineInput) Vaccine {
	v := Vaccine{
		ID:           id,
		Name:         in.Name,
		Date:         in.Date,
		Veterinarian: in.Veterinarian,
		Notes:        in.Notes,
	}
	if in.NextDate != nil && *in.NextDate != "" {
		d := *in.NextDate
		v.NextDate = &d
	}
	return v
}

// ClearableDate permite diferenciar "no enviado" de "null" en un PATCH.
type ClearableDate struct {
	Present bool
	Value   *string
}

type VaccinePatch struct {
	Name         *string
	Date         *string
	NextDate     ClearableDate
	Veterinarian *string
	Notes        *string
}

func (vp VaccinePatch) Apply(v Vaccine) Vaccine {
	if vp.Name != nil {
		v.Name = *vp.Name
	}
	if vp.Date != nil {
		v.Date = *vp.Date
	}
	if vp.NextDate.Present {
		if vp.NextDate.Value == nil || *vp.NextDate.Value == "" {
			v.NextDate = nil
		} else {
			d := *vp.NextDate.Value
			v.NextDate = &d
		}
	}
	if vp.Veterinarian != nil {
		v.Veterinarian = *vp.Veterinarian
	}
	if vp.Notes != nil {
		v.Notes = *vp.Notes
	}
	return v
}
