package dhash

type slotState uint8

const (
	slotEmpty slotState = iota
	slotOccupied
	slotTombstone
)

func (s slotState) String() string {
	switch s {
	case slotEmpty:
		return "empty"
	case slotOccupied:
		return "occupied"
	case slotTombstone:
		return "tombstone"
	default:
		return "unknown"
	}
}

// slot holds key and value only while occupied.
type slot struct {
	state slotState
	key   string
	value string
}
