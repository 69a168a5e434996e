package lifecycle

// createState tracks the creation state of one dependent instance slot.
type createState uint8

const (
	createAllow createState = iota // slot is free
	createOK                       // instance exists in the engine
	createFail                     // last creation attempt failed; sticky
)

// slot tracks one dependent object instance. The type and instance fields
// are only meaningful outside the Allow state.
type slot struct {
	state    createState
	objType  uint16
	instance uint16
}

func (s *slot) reset() {
	s.state = createAllow
	s.objType = 0
	s.instance = 0
}

// slotTable is the bookkeeping for one base instance. The slot array is
// allocated once and never grows.
type slotTable struct {
	baseInstance uint16
	slots        []slot
}

// find returns the slot recording (objType, instance), regardless of
// state, or nil. Within one table at most one non-Allow slot can hold a
// given pair.
func (t *slotTable) find(objType, instance uint16) *slot {
	for i := range t.slots {
		if t.slots[i].objType == objType && t.slots[i].instance == instance {
			return &t.slots[i]
		}
	}
	return nil
}

// findFree returns the first slot in the Allow state, or nil. All free
// slots are interchangeable, so first fit is enough.
func (t *slotTable) findFree() *slot {
	for i := range t.slots {
		if t.slots[i].state == createAllow {
			return &t.slots[i]
		}
	}
	return nil
}
