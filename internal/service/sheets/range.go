package sheets

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var a1CellPattern = regexp.MustCompile(`^([A-Z]+)(\d+)$`)

// ColumnLetter converts a 1-based column index to its A1 letter ("A", "Z",
// "AA").
func ColumnLetter(col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters
}

// columnNumber is the inverse of ColumnLetter.
func columnNumber(letters string) int {
	n := 0
	for _, r := range letters {
		n = n*26 + int(r-'A') + 1
	}
	return n
}

// CellRef renders a 1-based (col, row) pair as an A1 reference.
func CellRef(col, row int) string {
	return fmt.Sprintf("%s%d", ColumnLetter(col), row)
}

// RangeRef renders an inclusive rectangular range in A1 notation.
func RangeRef(startCol, startRow, endCol, endRow int) string {
	return CellRef(startCol, startRow) + ":" + CellRef(endCol, endRow)
}

// parseRange resolves an A1 range ("B7:B18", single cells allowed) into
// 1-based coordinates.
func parseRange(ref string) (startCol, startRow, endCol, endRow int, err error) {
	parts := strings.SplitN(ref, ":", 2)
	startCol, startRow, err = parseCell(parts[0])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if len(parts) == 1 {
		return startCol, startRow, startCol, startRow, nil
	}
	endCol, endRow, err = parseCell(parts[1])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if endCol < startCol || endRow < startRow {
		return 0, 0, 0, 0, fmt.Errorf("inverted range: %q", ref)
	}
	return startCol, startRow, endCol, endRow, nil
}

func parseCell(ref string) (col, row int, err error) {
	m := a1CellPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(ref)))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid cell reference: %q", ref)
	}
	row, err = strconv.Atoi(m[2])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("invalid cell reference: %q", ref)
	}
	return columnNumber(m[1]), row, nil
}
