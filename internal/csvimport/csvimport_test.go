package csvimport

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		rows    int
	}{
		{
			name:    "empty input",
			input:   "   \n  ",
			wantErr: ErrEmpty,
		},
		{
			name:    "header only",
			input:   "name,address\n",
			wantErr: ErrNoRecord,
		},
		{
			name:  "two data rows",
			input: "name,address\nalice,street 1\nbob,street 2\n",
			rows:  2,
		},
		{
			name:  "ragged row tolerated",
			input: "name,address,phone\nalice,street 1\n",
			rows:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Parse(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(rows) != tt.rows {
				t.Fatalf("Parse() rows = %d, want %d", len(rows), tt.rows)
			}
		})
	}
}

func TestRowHeaderTolerance(t *testing.T) {
	rows, err := Parse(" Mobile  Number , ASSET TAG\n555-0100,LT-001\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	row := rows[0]

	if got := row.Get("mobile_number"); got != "555-0100" {
		t.Errorf("Get(mobile_number) = %q, want 555-0100", got)
	}
	if got := row.Get("Mobile Number"); got != "555-0100" {
		t.Errorf("Get(Mobile Number) = %q, want 555-0100", got)
	}
	if got := row.Get("asset_tag"); got != "LT-001" {
		t.Errorf("Get(asset_tag) = %q, want LT-001", got)
	}
	if row.Line != 1 {
		t.Errorf("Line = %d, want 1", row.Line)
	}
}

func TestRowGetOr(t *testing.T) {
	rows, err := Parse("name,status\nalice,\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := rows[0].GetOr("Open", "status"); got != "Open" {
		t.Errorf("GetOr = %q, want Open", got)
	}
	if got := rows[0].GetOr("fallback", "name"); got != "alice" {
		t.Errorf("GetOr = %q, want alice", got)
	}
}

func TestSanitizeStripsNonPrintable(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "control char", input: "name\n alice \x01\n"},
		{name: "byte order mark", input: "name\n\"\uFEFFalice\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := rows[0].Get("name"); got != "alice" {
				t.Errorf("Get(name) = %q, want alice", got)
			}
		})
	}
}
