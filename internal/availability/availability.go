// Package availability computes the free/occupied grid for one
// calendar day. The grid shape is fixed by the catalog: every response
// carries all courts and all hour slots regardless of what bookings
// exist, so clients can render the full table without special cases.
package availability

import (
	"github.com/padelgestionado/padel-club-api/internal/catalog"
	"github.com/padelgestionado/padel-club-api/internal/model"
)

// SlotStatus is one cell of the grid.
type SlotStatus struct {
	Hora       string `json:"hora"`
	Disponible bool   `json:"disponible"`
}

// CourtAvailability is one court's row of the grid, in slot order.
type CourtAvailability struct {
	CanchaID int          `json:"cancha_id"`
	Nombre   string       `json:"nombre"`
	Horas    []SlotStatus `json:"horas"`
}

// BuildGrid marks each (court, slot) cell occupied when any of the
// given bookings matches both court ID and hour label. The caller is
// expected to pass only non-cancelled bookings for a single date. The
// linear scan is deliberate: the grid has 39 cells and a day has at
// most 39 active bookings.
func BuildGrid(bookings []model.Booking) []CourtAvailability {
	courts := catalog.Courts()
	slots := catalog.Slots()
	grid := make([]CourtAvailability, 0, len(courts))
	for _, c := range courts {
		horas := make([]SlotStatus, 0, len(slots))
		for _, hora := range slots {
			ocupado := false
			for _, b := range bookings {
				if b.CanchaID == c.ID && b.Hora == hora {
					ocupado = true
					break
				}
			}
			horas = append(horas, SlotStatus{Hora: hora, Disponible: !ocupado})
		}
		grid = append(grid, CourtAvailability{CanchaID: c.ID, Nombre: c.Nombre, Horas: horas})
	}
	return grid
}
