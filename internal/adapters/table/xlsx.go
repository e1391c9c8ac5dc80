package table

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

func readXLSX(path, sheet string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, nil
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	// GetRows trims trailing blank rows but keeps interior ones.
	data := rows[1:]
	out := data[:0]
	for _, r := range data {
		if len(r) > 0 {
			out = append(out, r)
		}
	}
	return rows[0], out, nil
}
