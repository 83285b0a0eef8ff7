package ledger

// Entry is one ledger line. Description holds the amount as the user typed
// it and is not guaranteed to be numeric.
type Entry struct {
	Description string `json:"description"`
	Column      Column `json:"column"`
	Editing     bool   `json:"editing"`
	ID          uint64 `json:"id"`
}

// NewEntry creates a non-editing entry.
func NewEntry(id uint64, description string, column Column) Entry {
	return Entry{
		ID:          id,
		Description: description,
		Column:      column,
	}
}

// Amount returns the parsed description, or 0 when it is not a number.
func (e Entry) Amount() float64 {
	v, ok := ParseAmount(e.Description)
	if !ok {
		return 0
	}
	return v
}
