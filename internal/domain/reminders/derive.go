package reminders

import (
	"fmt"
	"strings"

	"pet-house/internal/domain/pets"
)

// VaccineTitle arma el título de un recordatorio de vacuna: contiene el nombre
// de la vacuna y el de la mascota.
func VaccineTitle(vaccineName, petName string) string {
	return fmt.Sprintf("Vaccine %s for %s", vaccineName, petName)
}

// ForVaccine construye el input del recordatorio de próxima dosis.
// ok=false si la vacuna no tiene nextDate.
func ForVaccine(p pets.Pet, v pets.Vaccine) (Input, bool) {
	if !v.HasNextDate() {
		return Input{}, false
	}
	return Input{
		PetID:     p.ID,
		Type:      TypeVaccine,
		Title:     VaccineTitle(v.Name, p.Name),
		Date:      *v.NextDate,
		Completed: false,
		Notes:     fmt.Sprintf("Next dose of %s", v.Name),
	}, true
}

// HasVaccineReminder reporta si ya existe un recordatorio de vacuna para la mascota
// cuyo título contiene el nombre de la vacuna. El estado completed no se considera.
func HasVaccineReminder(existing []Reminder, petID, vaccineName string) bool {
	for _, r := range existing {
		if r.Type == TypeVaccine && r.PetID == petID && strings.Contains(r.Title, vaccineName) {
			return true
		}
	}
	return false
}

// DeriveVaccineReminders devuelve los recordatorios que faltan para las vacunas con
// nextDate. No modifica sus argumentos; el llamador agrega el resultado a la colección.
// Es idempotente: aplicarlo sobre existing+resultado devuelve vacío.
func DeriveVaccineReminders(ps []pets.Pet, existing []Reminder, newID func() string) []Reminder {
	var out []Reminder
	for _, p := range ps {
		for _, v := range p.Vaccines {
			in, ok := ForVaccine(p, v)
			if !ok {
				continue
			}
			if HasVaccineReminder(existing, p.ID, v.Name) || HasVaccineReminder(out, p.ID, v.Name) {
				continue
			}
			out = append(out, New(newID(), in))
		}
	}
	return out
}
