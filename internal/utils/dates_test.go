package utils

import (
	"testing"
	"time"
)

func TestMonthWindowBounds(t *testing.T) {
	start, end := MonthWindow(3, 2024)

	if start.Year() != 2024 || start.Month() != time.March || start.Day() != 1 {
		t.Fatalf("unexpected start: %v", start)
	}
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
		t.Fatalf("start must be midnight: %v", start)
	}

	if end.Month() != time.March || end.Day() != 31 {
		t.Fatalf("unexpected end: %v", end)
	}
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Fatalf("end must extend to the last second: %v", end)
	}

	// Inclusive both ends: the last millisecond of March is inside, the
	// first instant of April is not.
	lastMoment := time.Date(2024, 3, 31, 23, 59, 59, int(999*time.Millisecond), time.Local)
	if lastMoment.After(end) {
		t.Fatalf("last millisecond of March excluded: end=%v", end)
	}
	april := time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local)
	if !april.After(end) {
		t.Fatalf("April 1 must fall outside the window: end=%v", end)
	}
}

func TestMonthWindowLeapFebruary(t *testing.T) {
	_, end := MonthWindow(2, 2024)
	if end.Day() != 29 {
		t.Fatalf("expected leap-year February to end on the 29th, got %v", end)
	}

	_, end = MonthWindow(2, 2023)
	if end.Day() != 28 {
		t.Fatalf("expected February to end on the 28th, got %v", end)
	}
}

func TestMonthWindowDecemberRollsOverYear(t *testing.T) {
	_, end := MonthWindow(12, 2024)
	if end.Year() != 2024 || end.Month() != time.December || end.Day() != 31 {
		t.Fatalf("unexpected December end: %v", end)
	}
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)
	out := EndOfDay(in)

	if out.Day() != 15 || out.Hour() != 23 || out.Minute() != 59 || out.Second() != 59 {
		t.Fatalf("unexpected end of day: %v", out)
	}
	if out.Nanosecond() != int(999*time.Millisecond) {
		t.Fatalf("expected millisecond precision padding, got %d", out.Nanosecond())
	}
}
