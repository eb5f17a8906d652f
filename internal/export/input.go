package export

import (
	"casetrace-backend/internal/address"
	"casetrace-backend/internal/scrapers/judiciary"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// header maps lowercased column names to their index, required columns that
// are missing make it fail.
func header(row []string, required ...string) (map[string]int, error) {
	index := map[string]int{}
	for i, name := range row {
		if i == 0 {
			// excel's "CSV UTF-8" export starts with a byte order mark
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := index[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func readAll(r io.Reader, required ...string) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("empty csv")
	}
	index, err := header(rows[0], required...)
	if err != nil {
		return nil, nil, err
	}
	return rows[1:], index, nil
}

func field(row []string, index map[string]int, name string) string {
	i, ok := index[strings.ToLower(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// SkippedRow is an input row that did not make it into the output, Row is
// 1-indexed and counts the header.
type SkippedRow struct {
	Row int
	Err error
}

// ReadAddresses reads a csv with street, city, state and zip columns. Values
// are kept as text so zips keep their leading zeros. Rows that fail
// address.Validate are returned as skipped rather than failing the read.
func ReadAddresses(r io.Reader) ([]address.Address, []SkippedRow, error) {
	rows, index, err := readAll(r, "street", "city", "state", "zip")
	if err != nil {
		return nil, nil, fmt.Errorf("read addresses: %w", err)
	}
	out := make([]address.Address, 0, len(rows))
	var skipped []SkippedRow
	for i, row := range rows {
		addr := address.Address{
			Street: field(row, index, "street"),
			City:   field(row, index, "city"),
			State:  field(row, index, "state"),
			Zip:    field(row, index, "zip"),
		}
		err := addr.Validate()
		if err != nil {
			skipped = append(skipped, SkippedRow{Row: i + 2, Err: err})
			continue
		}
		out = append(out, addr)
	}
	return out, skipped, nil
}

// ReadCases reads a case csv as written by WriteCases, only "Property
// Address" is required.
func ReadCases(r io.Reader) ([]judiciary.Case, error) {
	rows, index, err := readAll(r, COL_CASE_PROPERTY_ADDRESS)
	if err != nil {
		return nil, fmt.Errorf("read cases: %w", err)
	}
	out := make([]judiciary.Case, 0, len(rows))
	for _, row := range rows {
		out = append(out, judiciary.Case{
			Name:                field(row, index, COL_CASE_NAME),
			Docket:              field(row, index, COL_CASE_DOCKET),
			Defendant:           field(row, index, COL_CASE_DEFENDANT),
			PropertyAddressText: field(row, index, COL_CASE_PROPERTY_ADDRESS),
		})
	}
	return out, nil
}
