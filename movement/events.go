package movement

import "strings"

// Event is a set of discrete locomotion transitions that happened during one
// update. Several may fire in the same update.
type Event uint8

const (
	EventJumped Event = 1 << iota
	EventAirJumped
	EventJumpCut
	EventLanded
	EventTurned
)

var eventNames = []struct {
	e    Event
	name string
}{
	{EventJumped, "jumped"},
	{EventAirJumped, "air_jumped"},
	{EventJumpCut, "jump_cut"},
	{EventLanded, "landed"},
	{EventTurned, "turned"},
}

// Has reports whether all bits of o are set in e.
func (e Event) Has(o Event) bool {
	return o != 0 && e&o == o
}

func (e Event) String() string {
	if e == 0 {
		return "none"
	}
	var parts []string
	for _, n := range eventNames {
		if e.Has(n.e) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
