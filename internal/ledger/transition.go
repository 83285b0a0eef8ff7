package ledger

import "math"

// Transition returns the state that results from applying msg to s. It is
// total: a nil message, Noop, or an update for an unknown id returns s
// unchanged. The entry slice of s is never written to. Once the id counter
// is exhausted, Add returns s unchanged instead of reusing an id.
func Transition(s State, msg Msg) State {
	switch msg := msg.(type) {
	case Add:
		if s.NextID == math.MaxUint64 {
			if _, taken := s.Find(s.NextID); taken {
				return s
			}
		}
		next := s
		next.Entries = append(cloneEntries(s.Entries), NewEntry(s.NextID, s.PendingValue, s.PendingColumn))
		if s.NextID < math.MaxUint64 {
			next.NextID = s.NextID + 1
		}
		next.PendingValue = ""
		return next

	case UpdateDraft:
		next := s
		next.PendingValue = msg.Text
		next.PendingColumn = msg.Column
		return next

	case UpdateEntry:
		// Duplicate ids only occur in a corrupted store; all of them are updated.
		return updateMatching(s, msg.ID, func(e *Entry) {
			e.Description = msg.Text
			e.Column = msg.Column
		})

	case UpdateRate:
		next := s
		next.Rate = ParseRate(msg.Text)
		return next

	case EditEntry:
		return updateMatching(s, msg.ID, func(e *Entry) {
			e.Editing = msg.Editing
		})

	default:
		return s
	}
}

// Apply folds msgs over s.
func Apply(s State, msgs ...Msg) State {
	for _, msg := range msgs {
		s = Transition(s, msg)
	}
	return s
}

func updateMatching(s State, id uint64, update func(*Entry)) State {
	if _, ok := s.Find(id); !ok {
		return s
	}
	next := s
	next.Entries = cloneEntries(s.Entries)
	for i := range next.Entries {
		if next.Entries[i].ID == id {
			update(&next.Entries[i])
		}
	}
	return next
}
