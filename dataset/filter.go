package dataset

// FilterSet maps a column name to its allowed values. Missing entries and
// empty value lists impose no constraint; active constraints combine with
// logical AND across columns.
type FilterSet map[string][]string

// View is a read-only, possibly filtered projection over a Table. It
// holds row indices only; the underlying columns are never copied or
// mutated.
type View struct {
	table *Table
	idx   []int
}

// NewView returns an unfiltered view over t.
func NewView(t *Table) *View {
	idx := make([]int, t.NumRows())
	for i := range idx {
		idx[i] = i
	}
	return &View{table: t, idx: idx}
}

func (v *View) Len() int { return len(v.idx) }

func (v *View) Table() *Table { return v.table }

// Filter applies a filter set and returns a new view. Filtering is
// idempotent and side-effect-free: unknown columns are ignored, empty
// allowed-value sets keep every row.
func (v *View) Filter(filters FilterSet) *View {
	idx := v.idx
	for field, allowed := range filters {
		if len(allowed) == 0 {
			continue
		}
		col, ok := v.table.Column(field)
		if !ok {
			continue
		}
		set := make(map[string]struct{}, len(allowed))
		for _, value := range allowed {
			set[value] = struct{}{}
		}
		kept := make([]int, 0, len(idx))
		for _, row := range idx {
			if _, ok := set[col.Display(row)]; ok {
				kept = append(kept, row)
			}
		}
		idx = kept
	}
	out := make([]int, len(idx))
	copy(out, idx)
	return &View{table: v.table, idx: out}
}
