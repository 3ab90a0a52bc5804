package reminders

import (
	"sort"
	"strings"
	"time"

	"pet-house/internal/domain/pets"
)

// Status filtra la lista como la pantalla de recordatorios.
type Status string

const (
	StatusAll       Status = "all"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusAll:
		return StatusAll, true
	case StatusPending:
		return StatusPending, true
	case StatusCompleted:
		return StatusCompleted, true
	default:
		return "", false
	}
}

func Filter(in []Reminder, status Status) []Reminder {
	out := make([]Reminder, 0, len(in))
	for _, r := range in {
		switch status {
		case StatusPending:
			if r.Completed {
				continue
			}
		case StatusCompleted:
			if !r.Completed {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func ForPet(in []Reminder, petID string) []Reminder {
	out := make([]Reminder, 0)
	for _, r := range in {
		if r.PetID == petID {
			out = append(out, r)
		}
	}
	return out
}

// SortByDate ordena por fecha ascendente sobre una copia; empates conservan el orden de inserción.
func SortByDate(in []Reminder) []Reminder {
	out := make([]Reminder, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		ti, errI := pets.ParseDate(out[i].Date)
		tj, errJ := pets.ParseDate(out[j].Date)
		if errI != nil || errJ != nil {
			// fechas inválidas al final
			return errI == nil && errJ != nil
		}
		return ti.Before(tj)
	})
	return out
}

// IsOverdue: pendiente y con fecha anterior a hoy (por día, no por hora).
func IsOverdue(r Reminder, now time.Time) bool {
	if r.Completed {
		return false
	}
	due, err := pets.ParseDate(r.Date)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	return dueDay.Before(today)
}
