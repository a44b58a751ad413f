package domain

// Table is a write-once 2-D grid of cell values. The first row is the
// header; every data row has the same column count. Ownership passes to
// the sheet writer after assembly.
type Table [][]any

func (t Table) RowCount() int {
	return len(t)
}

// ColCount returns the header width, or 0 for an empty table.
func (t Table) ColCount() int {
	if len(t) == 0 {
		return 0
	}
	return len(t[0])
}
