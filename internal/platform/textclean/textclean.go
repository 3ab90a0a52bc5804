// Package textclean limpia texto libre que llega de los clientes (nombres, notas, chat).
package textclean

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Clean quita cualquier markup y espacios extremos. bluemonday escapa entidades,
// así que se desescapa al final para conservar "&" o comillas en nombres.
func Clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// CleanPtr aplica Clean si el puntero no es nil (campos de PATCH).
func CleanPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := Clean(*s)
	return &v
}
