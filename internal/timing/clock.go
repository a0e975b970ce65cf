package timing

import "time"

// Clock - источник текущего времени, подменяется в тестах
type Clock func() time.Time

func SystemClock() Clock { return time.Now }

// StartOfDay - полночь календарного дня t в локации loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayRange - полуинтервал [from, to) календарного дня, to - следующая полночь
func DayRange(day time.Time, loc *time.Location) (from, to time.Time) {
	from = StartOfDay(day, loc)
	to = from.AddDate(0, 0, 1)
	return from, to
}

// CalendarDate - календарная дата t как полночь в loc.
// lib/pq читает колонки DATE как полночь UTC.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// ParseDate разбирает YYYY-MM-DD как полночь в loc
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, loc)
}
