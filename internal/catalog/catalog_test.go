package catalog

import "testing"

func TestCourts(t *testing.T) {
	courts := Courts()
	if len(courts) != NumCourts {
		t.Fatalf("expected %d courts, got %d", NumCourts, len(courts))
	}
	for i, c := range courts {
		if c.ID != i+1 {
			t.Errorf("court %d has ID %d", i, c.ID)
		}
		if !ValidCourt(c.ID) {
			t.Errorf("ValidCourt(%d) = false for a catalog court", c.ID)
		}
	}
	if ValidCourt(0) || ValidCourt(4) || ValidCourt(-1) {
		t.Error("ValidCourt accepted an ID outside the catalog")
	}
}

func TestCourtsReturnsCopy(t *testing.T) {
	Courts()[0].Nombre = "mutada"
	if Courts()[0].Nombre != "Cancha 1" {
		t.Fatal("mutating the returned slice changed the catalog")
	}
}

func TestSlots(t *testing.T) {
	got := Slots()
	if len(got) != NumSlots {
		t.Fatalf("expected %d slots, got %d", NumSlots, len(got))
	}
	if got[0] != "10:00" || got[len(got)-1] != "22:00" {
		t.Fatalf("slot range is %s..%s", got[0], got[len(got)-1])
	}
	for _, s := range got {
		if !ValidSlot(s) {
			t.Errorf("ValidSlot(%q) = false for a catalog slot", s)
		}
	}
	for _, s := range []string{"09:00", "23:00", "10:30", "10", ""} {
		if ValidSlot(s) {
			t.Errorf("ValidSlot(%q) = true", s)
		}
	}
}

func TestCourtName(t *testing.T) {
	if got := CourtName(2); got != "Cancha 2" {
		t.Fatalf("CourtName(2) = %q", got)
	}
	if got := CourtName(9); got != "" {
		t.Fatalf("CourtName(9) = %q, want empty", got)
	}
}

func TestValidDate(t *testing.T) {
	valid := []string{"2025-01-15", "1999-12-31", "2025-13-40"} // shape only
	for _, s := range valid {
		if !ValidDate(s) {
			t.Errorf("ValidDate(%q) = false", s)
		}
	}
	invalid := []string{"", "2025/01/15", "15-01-2025", "2025-1-5", "2025-01-15T10:00", "hoy"}
	for _, s := range invalid {
		if ValidDate(s) {
			t.Errorf("ValidDate(%q) = true", s)
		}
	}
}
