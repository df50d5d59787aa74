package availability

import "time"

type CheckRequest struct {
	PropertyID       int64     `json:"property_id" binding:"required"`
	DateFrom         time.Time `json:"date_from" binding:"required"`
	DateTo           time.Time `json:"date_to" binding:"required"`
	Rooms            int       `json:"rooms" binding:"required,gte=1"`
	ExcludeBookingID int64     `json:"exclude_booking_id,omitempty"`
}

// Conflict is a live booking that overlaps the requested range, reduced
// to the fields a caller needs to understand the capacity shortfall.
type Conflict struct {
	BookingID     int64     `json:"booking_id"`
	ReferenceCode string    `json:"reference_code,omitempty"`
	DateFrom      time.Time `json:"date_from"`
	DateTo        time.Time `json:"date_to"`
	Rooms         int       `json:"rooms"`
	Status        string    `json:"status"`
}

type CheckResult struct {
	Available      bool       `json:"available"`
	AvailableRooms int        `json:"available_rooms"`
	Capacity       int        `json:"capacity"`
	Conflicts      []Conflict `json:"conflicts,omitempty"`
	Message        string     `json:"message,omitempty"`
}
