package contacts

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/BearBump/ParcelDesk/internal/apperr"
	"github.com/BearBump/ParcelDesk/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	colFullName      = "full_name"
	colContactNumber = "contact_number"
	colAddress       = "address"
)

// normalizeHeader turns "Full Name", " full name ", "FULL_NAME" into "full_name".
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.Join(strings.Fields(strings.ToLower(h)), "_")
}

var utf8BOM = []byte("\ufeff")

// readCSV buffers every record of r. The first record is the header.
func readCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, apperr.Parse(err, "failed to parse CSV")
	}
	return records, nil
}

// readXLSX returns the rows of the first sheet.
func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Parse(err, "failed to read spreadsheet")
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperr.Parse(err, "failed to read spreadsheet")
	}
	return rows, nil
}

// toContactRows maps records to rows by header name. It returns the number of
// data records seen and the rows that carry a name or a number.
func toContactRows(records [][]string) (int, []models.ContactRow) {
	if len(records) == 0 {
		return 0, nil
	}

	idx := map[string]int{}
	for i, h := range records[0] {
		name := normalizeHeader(h)
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	field := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	data := records[1:]
	out := make([]models.ContactRow, 0, len(data))
	seen := 0
	for _, rec := range data {
		if blankLine(rec) {
			continue
		}
		seen++
		row := models.ContactRow{
			FullName:      field(rec, colFullName),
			ContactNumber: field(rec, colContactNumber),
			Address:       field(rec, colAddress),
		}
		if row.Empty() {
			continue
		}
		out = append(out, row)
	}
	return seen, out
}

// blankLine reports a line with no cells at all. Lines of bare delimiters
// still count as records and are dropped by the name/number filter.
func blankLine(rec []string) bool {
	return len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "")
}
