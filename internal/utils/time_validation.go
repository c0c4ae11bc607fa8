package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"deskhive/internal/db"
)

const (
	// DefaultMinimumAdvanceMinutes is how far ahead a booking must start
	// unless the caller overrides it.
	DefaultMinimumAdvanceMinutes = 30
	// DefaultMaximumAdvanceDays bounds how far out bookings may be placed
	// when the space carries no advance limit of its own.
	DefaultMaximumAdvanceDays = 90
	// SlotStrideMinutes is the step between generated candidate slots.
	SlotStrideMinutes = 30

	defaultOpenTime  = "09:00"
	defaultCloseTime = "18:00"

	minutesPerDay = 24 * 60
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// ValidationConfig tunes ValidateBookingTime. Zero values fall back to the
// package defaults.
type ValidationConfig struct {
	AllowPastBookings     bool
	MinimumAdvanceMinutes int
	MaximumAdvanceDays    int
	RespectOperatingHours bool
}

func (c ValidationConfig) minimumAdvanceMinutes() int {
	if c.MinimumAdvanceMinutes > 0 {
		return c.MinimumAdvanceMinutes
	}
	return DefaultMinimumAdvanceMinutes
}

func (c ValidationConfig) maximumAdvanceDays() int {
	if c.MaximumAdvanceDays > 0 {
		return c.MaximumAdvanceDays
	}
	return DefaultMaximumAdvanceDays
}

// BusinessHoursResult reports whether a time range sits inside a location's
// operating window for the day.
type BusinessHoursResult struct {
	IsWithinHours bool
	LocationOpen  bool
	DayHours      *db.LocationHours
}

// TimeUntilBooking is display data for clients. Minutes, hours and days are
// each floored from the full duration independently, not a breakdown of one
// another.
type TimeUntilBooking struct {
	Minutes int64 `json:"minutes"`
	Hours   int64 `json:"hours"`
	Days    int64 `json:"days"`
}

// ValidationResult aggregates every failed rule; it never stops at the first.
type ValidationResult struct {
	IsValid          bool             `json:"is_valid"`
	Errors           []string         `json:"errors"`
	Warnings         []string         `json:"warnings"`
	TimeUntilBooking TimeUntilBooking `json:"time_until_booking"`
}

// TimeSlot is one fixed-duration candidate returned by slot generation.
type TimeSlot struct {
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
}

// BookingWindow is the minimal view of an existing booking needed to mark
// generated slots as taken.
type BookingWindow struct {
	StartTime time.Time
	EndTime   time.Time
}

// ModifyCheck is the outcome of a modification-window test.
type ModifyCheck struct {
	CanModify      bool    `json:"can_modify"`
	Reason         string  `json:"reason,omitempty"`
	HoursRemaining float64 `json:"hours_remaining"`
}

// CancelCheck is the outcome of a cancellation-window test.
type CancelCheck struct {
	CanCancel      bool    `json:"can_cancel"`
	Reason         string  `json:"reason,omitempty"`
	HoursRemaining float64 `json:"hours_remaining"`
}

// CurrentTimeInTimezone resolves "now" in the given IANA timezone. An
// unknown timezone falls back to the system clock unchanged.
func CurrentTimeInTimezone(tz string) time.Time {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return timeNow()
	}
	return timeNow().In(loc)
}

// DayOfWeekInTimezone returns the weekday name of t as observed in tz.
func DayOfWeekInTimezone(t time.Time, tz string) string {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return t.Weekday().String()
	}
	return t.In(loc).Weekday().String()
}

// CheckBusinessHours compares [start,end) against the location's operating
// window for start's weekday. A close time at or before the open time means
// the window spans midnight and the close boundary is pushed to the next day.
// A nil location means no restriction.
func CheckBusinessHours(start, end time.Time, location *db.Location) BusinessHoursResult {
	if location == nil {
		return BusinessHoursResult{IsWithinHours: true, LocationOpen: true}
	}

	weekday := DayOfWeekInTimezone(start, location.Timezone)
	dayHours := location.HoursFor(weekday)
	if dayHours == nil || dayHours.Closed {
		return BusinessHoursResult{LocationOpen: false, DayHours: dayHours}
	}

	openMin, errOpen := parseClock(dayHours.OpenTime)
	closeMin, errClose := parseClock(dayHours.CloseTime)
	if errOpen != nil || errClose != nil {
		// Unparseable hours behave as unrestricted rather than locking the
		// location shut.
		return BusinessHoursResult{IsWithinHours: true, LocationOpen: true, DayHours: dayHours}
	}

	loc, err := time.LoadLocation(location.Timezone)
	if err != nil {
		loc = time.Local
	}
	startMin := minuteOfDay(start.In(loc))
	endMin := minuteOfDay(end.In(loc))

	if closeMin <= openMin {
		closeMin += minutesPerDay
	}
	if endMin <= startMin {
		endMin += minutesPerDay
	}

	within := startMin >= openMin && endMin <= closeMin
	return BusinessHoursResult{IsWithinHours: within, LocationOpen: true, DayHours: dayHours}
}

// ValidateBookingTime runs every timing rule and accumulates all failures so
// the caller sees the complete list in one round-trip.
func ValidateBookingTime(start, end time.Time, location *db.Location, cfg ValidationConfig) ValidationResult {
	now := timeNow()
	loc := time.Local
	if location != nil {
		if l, err := time.LoadLocation(location.Timezone); err == nil {
			loc = l
			now = now.In(loc)
		}
	}

	var errs []string
	var warnings []string

	if !end.After(start) {
		errs = append(errs, "booking start time must be before end time")
	}

	if !cfg.AllowPastBookings && start.Before(now) {
		errs = append(errs, "booking start time cannot be in the past")
	}

	until := start.Sub(now)

	minAdvance := cfg.minimumAdvanceMinutes()
	if until < time.Duration(minAdvance)*time.Minute {
		errs = append(errs, fmt.Sprintf("bookings require at least %d minutes advance notice", minAdvance))
	}

	maxDays := cfg.maximumAdvanceDays()
	if until > time.Duration(maxDays)*24*time.Hour {
		errs = append(errs, fmt.Sprintf("bookings cannot be made more than %d days in advance", maxDays))
	}

	if location != nil && !location.AllowSameDayBooking && sameDate(start.In(loc), now) {
		errs = append(errs, "same-day bookings are not allowed at this location")
	}

	if cfg.RespectOperatingHours && location != nil {
		hours := CheckBusinessHours(start, end, location)
		if !hours.LocationOpen {
			errs = append(errs, fmt.Sprintf("location is closed on %s", DayOfWeekInTimezone(start, location.Timezone)))
		} else if !hours.IsWithinHours {
			errs = append(errs, fmt.Sprintf("booking time is outside operating hours (%s - %s)",
				hours.DayHours.OpenTime, hours.DayHours.CloseTime))
		}
	}

	if until > 0 && until < 2*time.Hour {
		warnings = append(warnings, "short notice: booking starts in less than 2 hours")
	}
	if until > 30*24*time.Hour {
		warnings = append(warnings, "booking is more than 30 days in advance")
	}
	startDay := start.In(loc).Weekday()
	if startDay == time.Saturday || startDay == time.Sunday {
		warnings = append(warnings, "booking falls on a weekend")
	}

	return ValidationResult{
		IsValid:          len(errs) == 0,
		Errors:           errs,
		Warnings:         warnings,
		TimeUntilBooking: timeUntil(until),
	}
}

// GenerateAvailableTimeSlots produces fixed-duration candidate slots on a
// 30-minute stride across the location's operating window for the given day,
// marking each one unavailable when it overlaps any existing booking. With no
// location a default 09:00-18:00 window applies. Closed days and overnight
// windows yield no slots.
func GenerateAvailableTimeSlots(date time.Time, durationMinutes int, location *db.Location, existing []BookingWindow) []TimeSlot {
	if durationMinutes <= 0 {
		return nil
	}

	loc := time.Local
	openTime, closeTime := defaultOpenTime, defaultCloseTime

	if location != nil {
		if l, err := time.LoadLocation(location.Timezone); err == nil {
			loc = l
		}
		dayHours := location.HoursFor(date.In(loc).Weekday().String())
		if dayHours == nil || dayHours.Closed {
			return nil
		}
		openTime, closeTime = dayHours.OpenTime, dayHours.CloseTime
	}

	openMin, errOpen := parseClock(openTime)
	closeMin, errClose := parseClock(closeTime)
	if errOpen != nil || errClose != nil {
		return nil
	}
	if closeMin <= openMin {
		// Overnight windows are bookable via the business-hours check but
		// not generated as slots.
		return nil
	}

	localDate := date.In(loc)
	dayStart := time.Date(localDate.Year(), localDate.Month(), localDate.Day(), 0, 0, 0, 0, loc)
	first := dayStart.Add(time.Duration(openMin) * time.Minute)
	closeAt := dayStart.Add(time.Duration(closeMin) * time.Minute)

	now := timeNow().In(loc)
	if sameDate(localDate, now) {
		if next := nextStride(now); next.After(first) {
			first = next
		}
	}

	duration := time.Duration(durationMinutes) * time.Minute
	var slots []TimeSlot
	for start := first; !start.Add(duration).After(closeAt); start = start.Add(SlotStrideMinutes * time.Minute) {
		end := start.Add(duration)
		available := true
		for _, b := range existing {
			if start.Before(b.EndTime) && end.After(b.StartTime) {
				available = false
				break
			}
		}
		slots = append(slots, TimeSlot{StartTime: start, EndTime: end, IsAvailable: available})
	}
	return slots
}

// CanModifyBooking reports whether a booking starting at start may still be
// modified. minHours <= 0 falls back to the 4-hour default. Exactly at the
// cutoff modification is still permitted.
func CanModifyBooking(start time.Time, tz string, minHours int) ModifyCheck {
	if minHours <= 0 {
		minHours = 4
	}
	remaining := hoursUntil(start, tz)
	if remaining >= float64(minHours) {
		return ModifyCheck{CanModify: true, HoursRemaining: remaining}
	}
	return ModifyCheck{
		Reason:         fmt.Sprintf("bookings can only be modified at least %d hours before the start time", minHours),
		HoursRemaining: clampHours(remaining),
	}
}

// CanCancelBooking reports whether a booking starting at start may still be
// cancelled. minHours <= 0 falls back to the 2-hour default.
func CanCancelBooking(start time.Time, tz string, minHours int) CancelCheck {
	if minHours <= 0 {
		minHours = 2
	}
	remaining := hoursUntil(start, tz)
	if remaining >= float64(minHours) {
		return CancelCheck{CanCancel: true, HoursRemaining: remaining}
	}
	return CancelCheck{
		Reason:         fmt.Sprintf("bookings can only be cancelled at least %d hours before the start time", minHours),
		HoursRemaining: clampHours(remaining),
	}
}

func hoursUntil(start time.Time, tz string) float64 {
	return start.Sub(CurrentTimeInTimezone(tz)).Hours()
}

func clampHours(h float64) float64 {
	if h < 0 {
		return 0
	}
	return h
}

func timeUntil(d time.Duration) TimeUntilBooking {
	if d < 0 {
		return TimeUntilBooking{}
	}
	return TimeUntilBooking{
		Minutes: int64(d.Minutes()),
		Hours:   int64(d.Hours()),
		Days:    int64(d.Hours() / 24),
	}
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// nextStride rounds t up to the next slot boundary, keeping t itself when it
// already sits exactly on one.
func nextStride(t time.Time) time.Time {
	base := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	rem := t.Minute() % SlotStrideMinutes
	if rem == 0 && base.Equal(t) {
		return t
	}
	return base.Add(time.Duration(SlotStrideMinutes-rem) * time.Minute)
}

// parseClock converts "HH:MM" to minutes past midnight.
func parseClock(v string) (int, error) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", v)
	}
	return h*60 + m, nil
}
