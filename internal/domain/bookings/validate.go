package bookings

import (
	"regexp"
	"strings"
	"time"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationErrors поле → сообщение. Пустая map значит, что заявка валидна.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, f := range []string{"name", "email", "phone", "eventType", "eventDate", "timeSlot", "guestCount", "location"} {
		if msg, ok := v[f]; ok {
			parts = append(parts, f+": "+msg)
		}
	}
	return "booking: " + strings.Join(parts, "; ")
}

// Validate проверяет заявку. now нужен, чтобы отсечь даты в прошлом
// (сегодняшняя дата допустима).
func Validate(b Booking, now time.Time) ValidationErrors {
	errs := ValidationErrors{}

	if len([]rune(strings.TrimSpace(b.Name))) < 2 {
		errs["name"] = "Name must be at least 2 characters"
	}
	if !emailRe.MatchString(b.Email) {
		errs["email"] = "Valid email is required"
	}
	if len(strings.TrimSpace(b.Phone)) < 10 {
		errs["phone"] = "Valid phone number is required"
	}
	if strings.TrimSpace(b.EventType) == "" {
		errs["eventType"] = "Event type is required"
	}
	if b.EventDate.IsZero() {
		errs["eventDate"] = "Event date is required"
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if b.EventDate.Before(today) {
			errs["eventDate"] = "Event date must be in the future"
		}
	}
	// слот необязателен, но если указан: только из Slots
	if b.TimeSlot != "" && !isSlot(b.TimeSlot) {
		errs["timeSlot"] = "Time slot must be morning, afternoon or evening"
	}
	if b.GuestCount < 1 {
		errs["guestCount"] = "Guest count must be at least 1"
	}
	if len([]rune(strings.TrimSpace(b.Location))) < 2 {
		errs["location"] = "Location is required"
	}
	return errs
}

func isSlot(s string) bool {
	for _, slot := range Slots {
		if s == slot {
			return true
		}
	}
	return false
}

// ParseDate принимает YYYY-MM-DD и DD.MM.YYYY.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err == nil {
		return t, nil
	}
	return time.ParseInLocation("02.01.2006", s, loc)
}
