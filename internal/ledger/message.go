package ledger

// Msg is a request to change the state. The set of messages is closed.
type Msg interface {
	isMsg()
}

// Add appends the draft as a new entry.
type Add struct{}

// UpdateDraft replaces the draft text and selects the column it targets.
type UpdateDraft struct {
	Text   string
	Column Column
}

// UpdateEntry replaces the description and column of the entry with ID.
type UpdateEntry struct {
	Text   string
	ID     uint64
	Column Column
}

// UpdateRate sets the exchange rate from free text.
type UpdateRate struct {
	Text string
}

// EditEntry toggles the editing flag of the entry with ID.
type EditEntry struct {
	ID      uint64
	Editing bool
}

// Noop leaves the state unchanged. Keys other than the confirm key map to it.
type Noop struct{}

func (Add) isMsg()         {}
func (UpdateDraft) isMsg() {}
func (UpdateEntry) isMsg() {}
func (UpdateRate) isMsg()  {}
func (EditEntry) isMsg()   {}
func (Noop) isMsg()        {}
