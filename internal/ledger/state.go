package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// StorageKey is the fixed key the serialized State is stored under.
const StorageKey = "moneycount::data"

// Errors returned while decoding or interpreting ledger data.
var (
	ErrInvalidColumn = errors.New("invalid column")
	ErrMissingField  = errors.New("missing state field")
)

// State is the whole widget state. It is replaced, never mutated, by
// Transition.
type State struct {
	PendingValue  string  `json:"value"`
	Entries       []Entry `json:"entries"`
	NextID        uint64  `json:"uid"`
	Rate          float64 `json:"l2r_rate"`
	PendingColumn Column  `json:"column"`
}

// New returns the fresh default state.
func New() State {
	return State{
		Entries:       []Entry{},
		PendingColumn: Left,
		Rate:          DefaultRate,
	}
}

// EntryCount is the number of entries regardless of column.
func (s State) EntryCount() int {
	return len(s.Entries)
}

// Find returns the first entry with the given id.
func (s State) Find(id uint64) (Entry, bool) {
	for _, e := range s.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// DraftFor returns the draft text shown in the input field of column c. The
// field that is not targeted by the draft shows empty.
func (s State) DraftFor(c Column) string {
	if s.PendingColumn == c {
		return s.PendingValue
	}
	return ""
}

// Clone returns a copy whose entry slice does not alias s.
func (s State) Clone() State {
	out := s
	out.Entries = cloneEntries(s.Entries)
	return out
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries), len(entries)+1)
	copy(out, entries)
	return out
}

// ClearEditing returns s with no entry marked as being edited. An editing
// flag only means something while the session that set it is running.
func (s State) ClearEditing() State {
	out := s.Clone()
	for i := range out.Entries {
		out.Entries[i].Editing = false
	}
	return out
}

// Normalize raises NextID above every stored id so a corrupted counter can
// never hand out an id twice. It also replaces a nil entry slice. An entry
// holding math.MaxUint64 leaves the counter exhausted at that value.
func (s State) Normalize() State {
	out := s.Clone()
	for _, e := range out.Entries {
		switch {
		case e.ID == math.MaxUint64:
			out.NextID = math.MaxUint64
		case e.ID >= out.NextID:
			out.NextID = e.ID + 1
		}
	}
	return out
}

// storedState mirrors State with pointers so absent keys can be detected.
// JSON has no NaN or Inf, so a non-finite rate is stored as a quoted string.
type storedState struct {
	Entries       *[]Entry         `json:"entries"`
	PendingValue  *string          `json:"value"`
	PendingColumn *Column          `json:"column"`
	NextID        *uint64          `json:"uid"`
	Rate          *json.RawMessage `json:"l2r_rate"`
}

// Marshal encodes the state in the storage layout.
func Marshal(s State) ([]byte, error) {
	entries := s.Entries
	if entries == nil {
		entries = []Entry{}
	}

	rate := json.RawMessage(strconv.FormatFloat(s.Rate, 'g', -1, 64))
	if math.IsNaN(s.Rate) || math.IsInf(s.Rate, 0) {
		rate = json.RawMessage(strconv.Quote(strconv.FormatFloat(s.Rate, 'g', -1, 64)))
	}

	data, err := json.Marshal(storedState{
		Entries:       &entries,
		PendingValue:  &s.PendingValue,
		PendingColumn: &s.PendingColumn,
		NextID:        &s.NextID,
		Rate:          &rate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

func decodeRate(raw json.RawMessage) (float64, error) {
	if len(raw) > 0 && raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, fmt.Errorf("failed to decode rate: %w", err)
		}
		v, ok := ParseAmount(text)
		if !ok {
			return 0, fmt.Errorf("failed to decode rate: %q is not a number", text)
		}
		return v, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("failed to decode rate: %w", err)
	}
	return v, nil
}

// Unmarshal decodes a stored state. All five top-level keys are required;
// unknown keys are ignored. The result is normalized.
func Unmarshal(data []byte) (State, error) {
	var raw storedState
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return State{}, fmt.Errorf("failed to decode state: %w", err)
	}

	switch {
	case raw.Entries == nil:
		return State{}, fmt.Errorf("%w: entries", ErrMissingField)
	case raw.PendingValue == nil:
		return State{}, fmt.Errorf("%w: value", ErrMissingField)
	case raw.PendingColumn == nil:
		return State{}, fmt.Errorf("%w: column", ErrMissingField)
	case raw.NextID == nil:
		return State{}, fmt.Errorf("%w: uid", ErrMissingField)
	case raw.Rate == nil || string(*raw.Rate) == "null":
		return State{}, fmt.Errorf("%w: l2r_rate", ErrMissingField)
	}

	rate, err := decodeRate(*raw.Rate)
	if err != nil {
		return State{}, err
	}

	s := State{
		Entries:       *raw.Entries,
		PendingValue:  *raw.PendingValue,
		PendingColumn: *raw.PendingColumn,
		NextID:        *raw.NextID,
		Rate:          rate,
	}
	return s.Normalize(), nil
}
