package tui

// focus identifies the widget that receives key input.
type focus int

const (
	focusLeftDraft focus = iota
	focusRightDraft
	focusRate
	focusEntries
)

func (f focus) String() string {
	switch f {
	case focusLeftDraft:
		return "left"
	case focusRightDraft:
		return "right"
	case focusRate:
		return "rate"
	case focusEntries:
		return "entries"
	default:
		return "unknown"
	}
}

// savedMsg reports the outcome of a background save. Failures are only
// logged by the persister; the model ignores them.
type savedMsg struct {
	err      error
	revision uint64
}
