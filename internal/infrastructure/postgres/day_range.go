package postgres

import "time"

// dayBounds convierte un rango de fechas calendario inclusivo en [inicio, fin) para
// comparar timestamptz con índices, en la zona de from.
func dayBounds(from, to time.Time) (time.Time, time.Time) {
	return startOfDay(from), startOfDay(to).AddDate(0, 0, 1)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
