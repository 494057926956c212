package csvimport

import (
	"encoding/csv"
	"errors"
	"strings"
)

var (
	ErrEmpty    = errors.New("csv data is empty")
	ErrNoRecord = errors.New("csv contains a header but no data rows")
)

// Row is one parsed CSV data record. Header lookup is tolerant: keys are
// matched case-insensitively with surrounding whitespace removed and inner
// spaces collapsed to underscores, so "Mobile Number", "mobile_number" and
// " MOBILE  NUMBER " all address the same column.
type Row struct {
	// Line is the 1-based position of the record among the data rows
	// (the header row is not counted).
	Line   int
	fields map[string]string
}

// Get returns the first non-empty value among the given column keys.
func (r Row) Get(keys ...string) string {
	for _, k := range keys {
		if v := r.fields[normalize(k)]; v != "" {
			return v
		}
	}
	return ""
}

// GetOr is Get with a fallback default.
func (r Row) GetOr(def string, keys ...string) string {
	if v := r.Get(keys...); v != "" {
		return v
	}
	return def
}

// Parse reads raw CSV text with a header row into tolerant Rows.
func Parse(data string) ([]Row, error) {
	if strings.TrimSpace(data) == "" {
		return nil, ErrEmpty
	}

	reader := csv.NewReader(strings.NewReader(data))
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	if len(records) < 2 {
		return nil, ErrNoRecord
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = normalize(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		fields := make(map[string]string, len(headers))
		for j, h := range headers {
			if j < len(record) {
				fields[h] = sanitize(record[j])
			}
		}
		rows = append(rows, Row{Line: i + 1, fields: fields})
	}
	return rows, nil
}

// normalize folds a header to its canonical lookup key.
func normalize(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.Fields(h), "_")
}

// sanitize trims a value and strips non-printable characters, which show up
// when spreadsheets export with BOMs or smart whitespace.
func sanitize(v string) string {
	v = strings.TrimSpace(v)
	var b strings.Builder
	for _, r := range v {
		if r >= 0x20 && r != 0x7f && r != '\uFEFF' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
