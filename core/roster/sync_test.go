package roster

import (
	"strings"
	"testing"

	"github.com/volatiletech/null/v8"

	"checkpoint/core"
)

func Test_parseBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "true", want: true},
		{value: "TRUE", want: true},
		{value: "Yes", want: true},
		{value: "1", want: true},
		{value: "y", want: true},
		{value: "false"},
		{value: "no"},
		{value: "0"},
		{value: ""},
		{value: "lol"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := parseBool(tt.value); got != tt.want {
				t.Errorf("parseBool(%q) = %t, want %t", tt.value, got, tt.want)
			}
		})
	}
}

func Test_mapRow(t *testing.T) {
	headers := []string{"Student ID", "Full_Name", "Email_Address", "AGE", "In_Competition", "Status", "Unknown"}

	tests := []struct {
		name   string
		row    core.SheetRow
		want   StudentFields
		wantOK bool
	}{
		{
			name:   "full row",
			row:    core.SheetRow{"S1", "Ann", "ann@test.test", "20", "yes", "registered", "ignored"},
			want:   StudentFields{StudentID: "S1", Name: null.StringFrom("Ann"), Email: null.StringFrom("ann@test.test"), Age: null.IntFrom(20), Competition: null.BoolFrom(true), Registered: null.BoolFrom(true)},
			wantOK: true,
		},
		{
			// a truncated row must not blank stored fields
			name: "row shorter than the header discards the row",
			row:  core.SheetRow{"S2", "Ben"},
		},
		{
			name:   "non-numeric age coerces to 0",
			row:    core.SheetRow{"S3", "Cleo", "", "twenty", "no", "false", ""},
			want:   StudentFields{StudentID: "S3", Name: null.StringFrom("Cleo"), Email: null.StringFrom(""), Age: null.IntFrom(0), Competition: null.BoolFrom(false), Registered: null.BoolFrom(false)},
			wantOK: true,
		},
		{
			name: "missing student ID discards the row",
			row:  core.SheetRow{"", "Dan", "dan@test.test", "30", "no", "no", ""},
		},
		{
			name: "whitespace-only student ID discards the row",
			row:  core.SheetRow{"   ", "Eve", "", "", "", "", ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := mapRow(headers, tt.row)
			if ok != tt.wantOK {
				t.Fatalf("mapRow() ok = %t, want %t", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("mapRow() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func Test_mapRow_headerSubset(t *testing.T) {
	// a sheet carrying only some columns must leave the rest invalid so
	// upserts never clobber stored values
	headers := []string{"id", "registered"}
	got, ok := mapRow(headers, core.SheetRow{"S1", "TRUE"})
	if !ok {
		t.Fatal("mapRow() ok = false, want true")
	}
	want := StudentFields{StudentID: "S1", Registered: null.BoolFrom(true)}
	if got != want {
		t.Errorf("mapRow() = %+v, want %+v", got, want)
	}
	if got.Name.Valid || got.Email.Valid || got.Age.Valid || got.Competition.Valid {
		t.Error("unmapped columns must stay invalid")
	}
}

func Test_renderRow(t *testing.T) {
	stu := Student{
		StudentID:   "S1",
		Name:        "Ann",
		Email:       "ann@test.test",
		Age:         20,
		Competition: true,
		Registered:  false,
	}

	tests := []struct {
		name    string
		headers []string
		want    core.SheetRow
	}{
		{
			name:    "canonical headers",
			headers: []string{"student_id", "name", "email", "age", "competition", "registration_status"},
			want:    core.SheetRow{"S1", "Ann", "ann@test.test", "20", "TRUE", "FALSE"},
		},
		{
			name:    "synonyms and unknown headers",
			headers: []string{"ID", "Student_Name", "Unknown", "Registered"},
			want:    core.SheetRow{"S1", "Ann", "", "FALSE"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderRow(tt.headers, stu)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("renderRow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_invertHeaderSynonyms(t *testing.T) {
	for field, synonyms := range headerSynonyms {
		for _, syn := range synonyms {
			if got := headerFields[syn]; got != field {
				t.Errorf("headerFields[%q] = %q, want %q", syn, got, field)
			}
		}
	}
}
