// Package bracket holds the pure pairing logic for single-elimination
// tournament rounds. It knows nothing about storage; the match
// repository feeds it pair IDs and persists what it returns.
package bracket

// Pairing is one match of a round. B is nil when A advances on a bye.
type Pairing struct {
	A int
	B *int
}

// Round pairs contenders in the order given: first with second, third
// with fourth, and so on. An odd contender count leaves the last one
// with a bye. The input order is the assignment order for round one and
// the match order of the previous round afterwards.
func Round(ids []int) []Pairing {
	out := make([]Pairing, 0, (len(ids)+1)/2)
	for i := 0; i < len(ids); i += 2 {
		p := Pairing{A: ids[i]}
		if i+1 < len(ids) {
			b := ids[i+1]
			p.B = &b
		}
		out = append(out, p)
	}
	return out
}
