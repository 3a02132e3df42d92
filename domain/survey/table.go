package survey

// NewTable builds a table from raw records where records[0] is the header
// row. Rows shorter than the widest record are padded with empty cells.
func NewTable(records [][]string) *Table {
	if len(records) == 0 {
		return &Table{}
	}

	width := 0
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}

	t := &Table{
		Headers: pad(records[0], width),
		Rows:    make([][]string, 0, len(records)-1),
	}
	for _, rec := range records[1:] {
		t.Rows = append(t.Rows, pad(rec, width))
	}
	return t
}

func pad(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

// Width returns the number of columns
func (t *Table) Width() int {
	return len(t.Headers)
}

// Len returns the number of data rows (header excluded)
func (t *Table) Len() int {
	return len(t.Rows)
}

// Records returns header and rows as one slice, the inverse of NewTable
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Headers)
	records = append(records, t.Rows...)
	return records
}

// Column returns a copy of the cells at column idx
func (t *Table) Column(idx int) []string {
	col := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		col[i] = row[idx]
	}
	return col
}

// Cell returns the value at (row, col) and whether it exists
func (t *Table) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Headers) {
		return "", false
	}
	return t.Rows[row][col], true
}

// Clone returns a deep copy
func (t *Table) Clone() *Table {
	c := &Table{
		Headers: append([]string(nil), t.Headers...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		c.Rows[i] = append([]string(nil), row...)
	}
	return c
}

// Project returns a new table holding only the columns at indices, in that
// order, with headers replaced by names. t is left untouched.
func (t *Table) Project(indices []int, names []string) *Table {
	p := &Table{
		Headers: append([]string(nil), names...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for r, row := range t.Rows {
		out := make([]string, len(indices))
		for i, idx := range indices {
			out[i] = row[idx]
		}
		p.Rows[r] = out
	}
	return p
}

// DropRows returns a copy of t without its first n data rows. Dropping more
// rows than exist yields an empty table with the same headers.
func (t *Table) DropRows(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	c := t.Clone()
	c.Rows = c.Rows[n:]
	return c
}
