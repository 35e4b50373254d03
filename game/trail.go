package game

import "strings"

const trailCapacity = 256

// diagTrail is a rotating record of accepted messages and internal steps,
// kept only for postmortems. Accessed under the session lock.
type diagTrail struct {
	entries []string
	next    int
	full    bool
}

func newDiagTrail() *diagTrail {
	return &diagTrail{entries: make([]string, trailCapacity)}
}

func (t *diagTrail) Add(entry string) {
	t.entries[t.next] = entry
	t.next++

	if t.next == len(t.entries) {
		t.next = 0
		t.full = true
	}
}

func (t *diagTrail) Dump() string {
	var sb strings.Builder

	if t.full {
		for _, e := range t.entries[t.next:] {
			sb.WriteString(e)
			sb.WriteByte('\n')
		}
	}

	for _, e := range t.entries[:t.next] {
		sb.WriteString(e)
		sb.WriteByte('\n')
	}

	return sb.String()
}
