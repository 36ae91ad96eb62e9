package models

// Table is one already-parsed tabular source: an ordered header row plus
// string cell rows. All engine input arrives in this shape; the engine never
// touches raw file bytes.
type Table struct {
	Name    string     `json:"name"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Workbook is a multi-sheet source, e.g. one uploaded payment file.
type Workbook struct {
	Name   string   `json:"name"`
	Sheets []*Table `json:"sheets"`
}

// Cell returns the value at (row, col), or "" when the row is ragged and
// does not reach col. Marketplace exports routinely have short rows.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ShiftHeader re-interprets the first data row as the header row and returns
// the result as a new table. The receiver is not modified. Used when an
// export carries a banner/title row above the real header.
func (t *Table) ShiftHeader() *Table {
	if len(t.Rows) == 0 {
		return &Table{Name: t.Name}
	}
	shifted := &Table{
		Name:    t.Name,
		Headers: append([]string(nil), t.Rows[0]...),
		Rows:    make([][]string, 0, len(t.Rows)-1),
	}
	for _, row := range t.Rows[1:] {
		shifted.Rows = append(shifted.Rows, append([]string(nil), row...))
	}
	return shifted
}
