package sim

// PatchStatus is the closed set of states a factory patch moves through.
type PatchStatus int

const (
	// StatusNone means the patch is empty, waiting for its turn to start
	// a cultivation attempt.
	StatusNone PatchStatus = iota
	// StatusCultivating means a cultivation attempt is in progress.
	StatusCultivating
	// StatusGrowing means the patch is being grown from the cultivation
	// distance to the target distance.
	StatusGrowing
	// StatusIdling means the patch holds a finished magic state waiting to
	// be paired with one from the opposite group.
	StatusIdling
	// StatusConsumed means the patch's state was just used; the patch is
	// physically occupied for a fixed cooldown before it can be reused.
	StatusConsumed
)

func (s PatchStatus) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusCultivating:
		return "cult"
	case StatusGrowing:
		return "growing"
	case StatusIdling:
		return "idling"
	case StatusConsumed:
		return "consumed"
	default:
		return "unknown"
	}
}

// Patch is one hardware region dedicated to producing a single candidate
// magic state. Group 0 is the left side of the layout, group 1 the right.
// Clock counts ticks since the last status change.
type Patch struct {
	Group  int
	Status PatchStatus
	Clock  int
}

// ChangeStatus moves the patch to a new status and resets its local clock.
func (p *Patch) ChangeStatus(status PatchStatus) {
	p.Status = status
	p.Clock = 0
}

// noPatch marks an empty idling slot.
const noPatch = -1

// newPatchArena builds the flat patch collection: indices [0, nm) are
// group 0, indices [nm, 2*nm) are group 1. The first patch of each group
// starts cultivating immediately; everything else starts empty.
func newPatchArena(nm int) []Patch {
	patches := make([]Patch, 2*nm)
	for i := range patches {
		patches[i].Group = i / nm
	}
	patches[0].ChangeStatus(StatusCultivating)
	patches[nm].ChangeStatus(StatusCultivating)
	return patches
}
