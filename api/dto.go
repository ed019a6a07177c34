package api

type Slot struct {
	Date     string `json:"date"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Duration int    `json:"duration"`
}

type SlotsResponse struct {
	Date       string `json:"date"`
	Department string `json:"department,omitempty"`
	Slots      []Slot `json:"slots"`
}

type SlotCheckRequest struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	Duration   int    `json:"duration"`
	Department string `json:"department,omitempty"`
}

type SlotCheckResponse struct {
	Slot      Slot     `json:"slot"`
	Valid     bool     `json:"valid"`
	Reasons   []string `json:"reasons"`
	Free      bool     `json:"free"`
	Available bool     `json:"available"`
}

type NextSlotResponse struct {
	Next       Slot   `json:"next"`
	Date       string `json:"date"`
	Department string `json:"department,omitempty"`
	Slots      []Slot `json:"slots"`
}

type BookingRequest struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Duration    int    `json:"duration"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Department  string `json:"department"`
	VisitReason string `json:"visit_reason"`
}

type BookingStatus string

const (
	BookingBooked   BookingStatus = "booked"
	BookingRejected BookingStatus = "rejected"
	BookingConflict BookingStatus = "conflict"
)

type BookingResponse struct {
	Status       BookingStatus `json:"status"`
	EventID      string        `json:"event_id,omitempty"`
	Department   string        `json:"department,omitempty"`
	CalendarID   string        `json:"calendar_id"`
	Slot         Slot          `json:"slot"`
	Reasons      []string      `json:"reasons,omitempty"`
	Alternatives []Slot        `json:"alternatives,omitempty"`
}

type Event struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

type EventsResponse struct {
	Date       string  `json:"date"`
	CalendarID string  `json:"calendar_id"`
	Events     []Event `json:"events"`
}

type HolidayRequest struct {
	Date string `json:"date"`
}

type HolidaysResponse struct {
	Holidays []string `json:"holidays"`
}

type DateInfo struct {
	Date           string `json:"date"`
	IsWeekend      bool   `json:"is_weekend"`
	IsHoliday      bool   `json:"is_holiday"`
	IsWorkingDay   bool   `json:"is_working_day"`
	NextWorkingDay string `json:"next_working_day"`
}

type Department struct {
	Name       string `json:"name"`
	CalendarID string `json:"calendar_id"`
}
