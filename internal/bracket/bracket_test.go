package bracket

import "testing"

func TestRoundEven(t *testing.T) {
	got := Round([]int{10, 20, 30, 40})
	if len(got) != 2 {
		t.Fatalf("expected 2 pairings, got %d", len(got))
	}
	if got[0].A != 10 || got[0].B == nil || *got[0].B != 20 {
		t.Errorf("first pairing = %+v", got[0])
	}
	if got[1].A != 30 || got[1].B == nil || *got[1].B != 40 {
		t.Errorf("second pairing = %+v", got[1])
	}
}

func TestRoundOddGivesBye(t *testing.T) {
	got := Round([]int{1, 2, 3})
	if len(got) != 2 {
		t.Fatalf("expected 2 pairings, got %d", len(got))
	}
	last := got[len(got)-1]
	if last.A != 3 || last.B != nil {
		t.Fatalf("last pairing should be a bye for 3, got %+v", last)
	}
}

func TestRoundTwoContenders(t *testing.T) {
	got := Round([]int{7, 8})
	if len(got) != 1 {
		t.Fatalf("expected a single final, got %d pairings", len(got))
	}
	if got[0].A != 7 || got[0].B == nil || *got[0].B != 8 {
		t.Fatalf("final = %+v", got[0])
	}
}

func TestRoundSingleContender(t *testing.T) {
	got := Round([]int{5})
	if len(got) != 1 || got[0].A != 5 || got[0].B != nil {
		t.Fatalf("single contender should get one bye pairing, got %+v", got)
	}
}

func TestRoundEmpty(t *testing.T) {
	if got := Round(nil); len(got) != 0 {
		t.Fatalf("expected no pairings, got %d", len(got))
	}
}
