package pets

import (
	"sort"
	"strings"
	"time"
)

// DateLayout es el formato de fecha usado en todo el modelo.
const DateLayout = "2006-01-02"

// ParseDate acepta YYYY-MM-DD y, por compatibilidad con datos viejos, RFC3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err == nil {
		return t, nil
	}
	if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
		return t2, nil
	}
	return time.Time{}, err
}

type SortKey string

const (
	SortByName     SortKey = "name"
	SortByDate     SortKey = "date"
	SortByNextDate SortKey = "nextDate"
)

type SortDir string

const (
	Ascending  SortDir = "asc"
	Descending SortDir = "desc"
)

// SortVaccines devuelve una copia ordenada del carnet (orden estable).
// Una clave desconocida deja el orden de inserción.
func SortVaccines(in []Vaccine, key SortKey, dir SortDir) []Vaccine {
	out := make([]Vaccine, len(in))
	copy(out, in)

	var less func(a, b Vaccine) bool
	switch key {
	case SortByName:
		less = func(a, b Vaccine) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortByDate:
		less = func(a, b Vaccine) bool { return compareDates(a.Date, b.Date) < 0 }
	case SortByNextDate:
		less = func(a, b Vaccine) bool { return compareDates(deref(a.NextDate), deref(b.NextDate)) < 0 }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if dir == Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// compareDates ordena fechas parseables cronológicamente; vacías o inválidas van al final.
func compareDates(a, b string) int {
	ta, errA := ParseDate(a)
	tb, errB := ParseDate(b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	return ta.Compare(tb)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
