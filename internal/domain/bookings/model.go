package bookings

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Source string

const (
	SourceWebsite  Source = "Website"
	SourceWhatsApp Source = "WhatsApp"
	SourceTelegram Source = "Telegram"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Слоты дня
const (
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
	SlotEvening   = "evening"
)

var Slots = []string{SlotMorning, SlotAfternoon, SlotEvening}

var EventTypes = []string{
	"Wedding",
	"Birthday Party",
	"Corporate Event",
	"Baby Shower",
	"Anniversary",
	"Theme Party",
	"Other",
}

type Booking struct {
	ID         int64     `json:"-"`
	Reference  string    `json:"bookingId"`
	UserID     *int64    `json:"-"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	EventType  string    `json:"eventType"`
	EventDate  time.Time `json:"eventDate"`
	TimeSlot   string    `json:"timeSlot,omitempty"`
	GuestCount int       `json:"guestCount"`
	Location   string    `json:"location"`
	Budget     string    `json:"budget,omitempty"`
	Message    string    `json:"message,omitempty"`
	Source     Source    `json:"source"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewReference: номер заявки вида EE-1700000000000
func NewReference(now time.Time) string {
	return fmt.Sprintf("EE-%d", now.UnixMilli())
}

// nextReference: EE-1700000000000 → EE-1700000000001
func nextReference(ref string) (string, bool) {
	ms, err := strconv.ParseInt(strings.TrimPrefix(ref, "EE-"), 10, 64)
	if err != nil || !strings.HasPrefix(ref, "EE-") {
		return "", false
	}
	return fmt.Sprintf("EE-%d", ms+1), true
}

var slotLabels = map[string]string{
	SlotMorning:   "10:00 AM - 2:00 PM",
	SlotAfternoon: "2:00 PM - 6:00 PM",
	SlotEvening:   "6:00 PM - 10:00 PM",
}

// FormatTimeSlot: morning → "10:00 AM - 2:00 PM"; неизвестное значение возвращаем как есть.
func FormatTimeSlot(slot string) string {
	if l, ok := slotLabels[strings.ToLower(slot)]; ok {
		return l
	}
	return slot
}

// Availability: свободные слоты дня по списку уже занятых.
func Availability(taken []string) []string {
	busy := make(map[string]bool, len(taken))
	for _, s := range taken {
		busy[strings.ToLower(s)] = true
	}
	free := make([]string, 0, len(Slots))
	for _, s := range Slots {
		if !busy[s] {
			free = append(free, s)
		}
	}
	return free
}

// Message: текст заявки для WhatsApp администратора.
func Message(b Booking) string {
	var sb strings.Builder
	sb.WriteString("🎉 *New Event Booking Request*\n\n")
	if b.Reference != "" {
		fmt.Fprintf(&sb, "📋 *Booking ID:* %s\n", b.Reference)
	}
	fmt.Fprintf(&sb, "👤 *Name:* %s\n", b.Name)
	fmt.Fprintf(&sb, "📧 *Email:* %s\n", b.Email)
	fmt.Fprintf(&sb, "📱 *Phone:* %s\n", b.Phone)
	fmt.Fprintf(&sb, "🎊 *Event Type:* %s\n", b.EventType)
	fmt.Fprintf(&sb, "📅 *Event Date:* %s\n", b.EventDate.Format(time.DateOnly))
	if b.TimeSlot != "" {
		fmt.Fprintf(&sb, "🕐 *Time:* %s\n", FormatTimeSlot(b.TimeSlot))
	}
	fmt.Fprintf(&sb, "👥 *Guest Count:* %d\n", b.GuestCount)
	fmt.Fprintf(&sb, "📍 *Location:* %s\n", b.Location)
	if b.Budget != "" {
		fmt.Fprintf(&sb, "💰 *Budget:* %s\n", b.Budget)
	}
	if b.Message != "" {
		fmt.Fprintf(&sb, "💬 *Message:* %s\n", b.Message)
	}
	sb.WriteString("\nLooking forward to creating a magical event! ✨")
	return sb.String()
}
