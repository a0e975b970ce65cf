// Package timing считает окно сдачи отчёта тренера относительно начала слота.
package timing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrUnknownSlot = errors.New("unknown slot")

const (
	windowOpensBefore  = 60 * time.Minute
	windowClosesBefore = 30 * time.Minute
)

// Slots - фиксированный набор тренировочных слотов
var Slots = []string{
	"08:00-09:30",
	"10:00-11:30",
	"16:00-17:00",
	"18:00-20:00",
	"20:00-22:00",
}

type Window struct {
	StartTime   time.Time
	WindowStart time.Time
	WindowEnd   time.Time
}

func IsKnownSlot(slot string) bool {
	for _, s := range Slots {
		if s == slot {
			return true
		}
	}
	return false
}

func slotStart(slot string) (hour, minute int, err error) {
	if !IsKnownSlot(slot) {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	start, _, _ := strings.Cut(slot, "-")
	h, m, _ := strings.Cut(start, ":")
	if hour, err = strconv.Atoi(h); err != nil {
		return 0, 0, err
	}
	if minute, err = strconv.Atoi(m); err != nil {
		return 0, 0, err
	}
	return hour, minute, nil
}

// WindowTimes берёт календарную дату из date (время суток отбрасывается) в её же локации.
func WindowTimes(date time.Time, slot string) (Window, error) {
	hour, minute, err := slotStart(slot)
	if err != nil {
		return Window{}, err
	}
	start := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
	return Window{
		StartTime:   start,
		WindowStart: start.Add(-windowOpensBefore),
		WindowEnd:   start.Add(-windowClosesBefore),
	}, nil
}

// CanSubmitAt - раньше чем за 60 минут до начала сдавать нельзя
func CanSubmitAt(date time.Time, slot string, now time.Time) (bool, error) {
	w, err := WindowTimes(date, slot)
	if err != nil {
		return false, err
	}
	return !now.Before(w.WindowStart), nil
}

// IsLateAt - позже чем за 30 минут до начала отчёт принимается, но помечается опоздавшим
func IsLateAt(date time.Time, slot string, now time.Time) (bool, error) {
	w, err := WindowTimes(date, slot)
	if err != nil {
		return false, err
	}
	return now.After(w.WindowEnd), nil
}
