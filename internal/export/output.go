package export

import (
	"casetrace-backend/internal/address"
	"casetrace-backend/internal/scrapers/judiciary"
	"casetrace-backend/internal/skiptrace"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
)

const (
	COL_CASE_NAME             = "Name"
	COL_CASE_DOCKET           = "Docket"
	COL_CASE_DEFENDANT        = "Defendant"
	COL_CASE_PROPERTY_ADDRESS = "Property Address"
)

var CaseColumns = []string{
	COL_CASE_NAME,
	COL_CASE_DOCKET,
	COL_CASE_DEFENDANT,
	COL_CASE_PROPERTY_ADDRESS,
}

var AddressColumns = []string{"street", "city", "state", "zip"}

type Format string

const (
	FORMAT_CSV   Format = "csv"
	FORMAT_EXCEL Format = "excel"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FORMAT_CSV, FORMAT_EXCEL:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format '%s', expected csv or excel", s)
}

// OutputPath swaps a .csv extension for .xlsx when writing excel, any other
// path is kept as is.
func (f Format) OutputPath(path string) string {
	if f == FORMAT_EXCEL && strings.EqualFold(filepath.Ext(path), ".csv") {
		return strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
	}
	return path
}

type Options struct {
	// PrettyPhones writes phones as (xxx) xxx-xxxx.
	PrettyPhones bool
}

func writeCSV(w io.Writer, rows [][]string) error {
	writer := csv.NewWriter(w)
	err := writer.WriteAll(rows)
	if err != nil {
		return err
	}
	return writer.Error()
}

// WriteCases writes one row per case, the property address is the text from
// the detail page, or the results page if the detail page had none.
func WriteCases(w io.Writer, cases []judiciary.Case) error {
	rows := [][]string{CaseColumns}
	for _, c := range cases {
		text := c.PropertyAddressText
		if text == "" {
			text = c.RawAddress
		}
		rows = append(rows, []string{c.Name, c.Docket, c.Defendant, text})
	}
	return writeCSV(w, rows)
}

func WriteAddresses(w io.Writer, addresses []address.Address) error {
	rows := [][]string{AddressColumns}
	for _, a := range addresses {
		rows = append(rows, []string{a.Street, a.City, a.State, a.Zip})
	}
	return writeCSV(w, rows)
}

// recordRows lays out the records of a batch in result.Columns order, the
// first row is the header.
func recordRows(result skiptrace.BatchResult, opts Options) [][]string {
	rows := [][]string{slices.Clone(result.Columns)}
	for _, entry := range result.Records {
		row := make([]string, len(result.Columns))
		for i, col := range result.Columns {
			value := entry.Record[col]
			if opts.PrettyPhones && slices.Contains(skiptrace.PhoneColumns, col) {
				value = skiptrace.FormatPhone(value)
			}
			row[i] = value
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteRecords writes one row per record of a batch in the given format.
func WriteRecords(w io.Writer, format Format, result skiptrace.BatchResult, opts Options) error {
	rows := recordRows(result, opts)
	switch format {
	case FORMAT_CSV:
		return writeCSV(w, rows)
	case FORMAT_EXCEL:
		return writeXLSX(w, rows)
	}
	return fmt.Errorf("unknown format '%s'", format)
}
