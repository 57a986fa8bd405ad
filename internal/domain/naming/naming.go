// Package naming normaliza nombres visibles para comparaciones de unicidad.
package naming

import (
	"strings"

	"golang.org/x/text/cases"
)

// Clean recorta y colapsa espacios internos.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Key clave de comparación sin distinción de mayúsculas ("Paracetamol " == "PARACETAMOL").
// Se persiste en columnas name_key con índice único.
func Key(s string) string {
	return cases.Fold().String(Clean(s))
}

// FileToken convierte un nombre en un fragmento apto para nombres de archivo:
// espacios → "_", sin separadores de ruta ni comillas.
func FileToken(s string) string {
	s = Clean(s)
	r := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", "\"", "", ",", "")
	return r.Replace(s)
}
