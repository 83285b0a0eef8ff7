package ofx

import (
	"github.com/Veraticus/dual-count/internal/ledger"
)

// Dedupe drops transactions whose statement id was already seen. seen is
// updated in place so it can be shared across files.
func Dedupe(txns []Transaction, seen map[string]bool) []Transaction {
	out := make([]Transaction, 0, len(txns))
	for _, tx := range txns {
		if tx.ID != "" {
			if seen[tx.ID] {
				continue
			}
			seen[tx.ID] = true
		}
		out = append(out, tx)
	}
	return out
}

// Messages returns the messages that add tx as an entry in column.
func Messages(tx Transaction, column ledger.Column) []ledger.Msg {
	return []ledger.Msg{
		ledger.UpdateDraft{Text: tx.Amount, Column: column},
		ledger.Add{},
	}
}

// Import adds every transaction to state as an entry in column, in order.
// The draft the user had pending is put back afterwards.
func Import(state ledger.State, txns []Transaction, column ledger.Column) ledger.State {
	draft := ledger.UpdateDraft{Text: state.PendingValue, Column: state.PendingColumn}
	for _, tx := range txns {
		state = ledger.Apply(state, Messages(tx, column)...)
	}
	return ledger.Transition(state, draft)
}
