package report

import (
	"fmt"
	"time"
)

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(m time.Month, year int) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[m-1], year)
}
