package ledger

// Variant selects how the widget aggregates its columns.
type Variant int

const (
	// VariantDual converts between the two currencies with the rate.
	VariantDual Variant = iota
	// VariantCounter only counts entries per column and ignores the rate.
	VariantCounter
)

// String returns the configuration name of the variant.
func (v Variant) String() string {
	if v == VariantCounter {
		return "counter"
	}
	return "dual"
}

// ParseVariant maps a configuration name to a Variant.
func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "dual", "":
		return VariantDual, true
	case "counter":
		return VariantCounter, true
	}
	return VariantDual, false
}

// Convert returns an entry's value in both currencies. Unparseable text
// counts as zero.
func Convert(e Entry, rate float64) (left, right float64) {
	a := e.Amount()
	if e.Column == Left {
		return a, a * rate
	}
	return a / rate, a
}

// ColumnSum adds the raw amounts of entries in column c. Entries whose text
// does not parse contribute nothing.
func ColumnSum(entries []Entry, c Column) float64 {
	var sum float64
	for _, e := range entries {
		if e.Column != c {
			continue
		}
		if v, ok := ParseAmount(e.Description); ok {
			sum += v
		}
	}
	return sum
}

// ColumnCount counts the entries in column c.
func ColumnCount(entries []Entry, c Column) int {
	n := 0
	for _, e := range entries {
		if e.Column == c {
			n++
		}
	}
	return n
}

// Summary holds every derived value the widget displays.
type Summary struct {
	Variant    Variant
	Count      int
	LeftCount  int
	RightCount int
	LeftSum    float64
	RightSum   float64
	LeftTotal  float64
	RightTotal float64
	Rate       float64
}

// Summarize derives the totals for s. It is recomputed on every render; for
// the counter variant the sums and totals stay zero.
func Summarize(s State, variant Variant) Summary {
	sum := Summary{
		Variant:    variant,
		Count:      s.EntryCount(),
		LeftCount:  ColumnCount(s.Entries, Left),
		RightCount: ColumnCount(s.Entries, Right),
	}
	if variant == VariantCounter {
		return sum
	}

	sum.Rate = s.Rate
	sum.LeftSum = ColumnSum(s.Entries, Left)
	sum.RightSum = ColumnSum(s.Entries, Right)
	sum.LeftTotal = sum.LeftSum + sum.RightSum/s.Rate
	sum.RightTotal = sum.LeftSum*s.Rate + sum.RightSum
	return sum
}
