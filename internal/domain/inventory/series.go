package inventory

import (
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
)

// StartOfDay devuelve la medianoche del día de t en su propia zona horaria.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ValidateWindow exige 1 <= days <= maxDays. No se corrige en silencio.
func ValidateWindow(days, maxDays int) error {
	if days < 1 {
		return domain.NewValidationError("days", "debe ser un entero positivo")
	}
	if maxDays > 0 && days > maxDays {
		return domain.NewValidationError("days", fmt.Sprintf("no puede superar %d", maxDays))
	}
	return nil
}

// Window devuelve el rango semiabierto [from, to) de los últimos days días calendario,
// hoy incluido: from = hoy-(days-1) a las 00:00, to = mañana a las 00:00.
func Window(now time.Time, days int) (from, to time.Time) {
	today := StartOfDay(now)
	return today.AddDate(0, 0, -(days - 1)), today.AddDate(0, 0, 1)
}

// BucketDaily agrupa los movimientos de [from, to) por día calendario (zona de from)
// y suma la cantidad por tipo. Solo emite días con al menos un movimiento, en orden ascendente.
func BucketDaily(movements []*entity.StockMovement, from, to time.Time) []entity.DailyMovement {
	loc := from.Location()
	byDay := make(map[time.Time]*entity.DailyMovement)

	for _, m := range movements {
		if m.OccurredAt.Before(from) || !m.OccurredAt.Before(to) {
			continue
		}
		day := StartOfDay(m.OccurredAt.In(loc))
		row, ok := byDay[day]
		if !ok {
			row = &entity.DailyMovement{Date: day}
			byDay[day] = row
		}
		row.Add(m.Type, m.Quantity)
	}

	series := make([]entity.DailyMovement, 0, len(byDay))
	for _, row := range byDay {
		series = append(series, *row)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series
}
