// Package catalog is the single source of truth for the club's bookable
// resources: the fixed set of courts and the fixed set of hourly time
// slots. Both the availability resolver and the booking writer validate
// against these lists so the two can never drift apart.
package catalog

import "regexp"

// Court describes one of the club's padel courts. Courts are a static
// catalog, not rows in the database; bookings reference them by ID.
type Court struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// Courts returns the club's courts in display order. The slice is a
// fresh copy on every call so callers cannot mutate the catalog.
func Courts() []Court {
	return []Court{
		{ID: 1, Nombre: "Cancha 1"},
		{ID: 2, Nombre: "Cancha 2"},
		{ID: 3, Nombre: "Cancha 3"},
	}
}

// slots holds the bookable hour labels, one per hour from 10:00 to 22:00.
var slots = []string{
	"10:00", "11:00", "12:00", "13:00", "14:00", "15:00",
	"16:00", "17:00", "18:00", "19:00", "20:00", "21:00", "22:00",
}

// Slots returns the bookable hour labels in chronological order.
func Slots() []string {
	out := make([]string, len(slots))
	copy(out, slots)
	return out
}

// NumCourts and NumSlots size the availability grid (3 x 13 = 39 cells).
const (
	NumCourts = 3
	NumSlots  = 13
)

// ValidCourt reports whether id identifies one of the club's courts.
func ValidCourt(id int) bool {
	return id >= 1 && id <= NumCourts
}

// ValidSlot reports whether label is one of the catalog hour labels.
func ValidSlot(label string) bool {
	for _, s := range slots {
		if s == label {
			return true
		}
	}
	return false
}

// CourtName resolves a court ID to its display name. It returns the
// empty string for IDs outside the catalog.
func CourtName(id int) string {
	for _, c := range Courts() {
		if c.ID == id {
			return c.Nombre
		}
	}
	return ""
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDate reports whether s is a calendar date in YYYY-MM-DD form.
// Only the shape is checked, matching what the booking API accepts.
func ValidDate(s string) bool {
	return dateRe.MatchString(s)
}
