package roster

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"checkpoint/core"
)

// Canonical sheet-mapped field names.
const (
	fieldStudentID   = "student_id"
	fieldName        = "name"
	fieldEmail       = "email"
	fieldAge         = "age"
	fieldCompetition = "competition"
	fieldRegistered  = "registration_status"
)

// headerSynonyms maps each canonical field to the header spellings
// (case-insensitive) it may appear under in the sheet.
var headerSynonyms = map[string][]string{
	fieldStudentID:   {"student_id", "id", "student id"},
	fieldName:        {"name", "student_name", "full_name"},
	fieldEmail:       {"email", "email_address"},
	fieldAge:         {"age"},
	fieldCompetition: {"competition", "in_competition"},
	fieldRegistered:  {"registration_status", "registered", "status"},
}

// headerFields is the inverted synonym table: header spelling -> canonical field.
var headerFields = invertHeaderSynonyms()

// invertHeaderSynonyms panics on a synonym claimed by two fields, so a bad
// mapping is caught at startup rather than silently misfiling columns.
func invertHeaderSynonyms() map[string]string {
	inverted := make(map[string]string)
	for field, synonyms := range headerSynonyms {
		for _, syn := range synonyms {
			if dup, ok := inverted[syn]; ok {
				panic(fmt.Sprintf("header synonym %q maps to both %q and %q", syn, dup, field))
			}
			inverted[syn] = field
		}
	}
	return inverted
}

// parseBool reports whether a sheet cell reads as true.
func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "1", "y":
		return true
	}
	return false
}

func renderBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// mapRow maps one data row onto StudentFields using the header row. It
// reports false for rows shorter than the header or lacking a non-empty
// student ID; those are discarded. Skipping short rows keeps a truncated row
// from blanking stored fields.
func mapRow(headers []string, row core.SheetRow) (StudentFields, bool) {
	if len(row) < len(headers) {
		return StudentFields{}, false
	}
	var fields StudentFields
	for i, header := range headers {
		value := row[i]
		switch headerFields[strings.ToLower(strings.TrimSpace(header))] {
		case fieldStudentID:
			fields.StudentID = strings.TrimSpace(value)
		case fieldName:
			fields.Name = null.StringFrom(value)
		case fieldEmail:
			fields.Email = null.StringFrom(value)
		case fieldAge:
			age, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				age = 0 // non-numeric ages coerce to 0
			}
			fields.Age = null.IntFrom(age)
		case fieldCompetition:
			fields.Competition = null.BoolFrom(parseBool(value))
		case fieldRegistered:
			// the registration column also accepts the literal "registered"
			fields.Registered = null.BoolFrom(parseBool(value) || strings.EqualFold(value, "registered"))
		}
	}
	return fields, fields.StudentID != ""
}

// renderRow renders a Student back into a row laid out per the header row.
// Unknown headers render as empty cells.
func renderRow(headers []string, stu Student) core.SheetRow {
	row := make(core.SheetRow, 0, len(headers))
	for _, header := range headers {
		switch headerFields[strings.ToLower(strings.TrimSpace(header))] {
		case fieldStudentID:
			row = append(row, stu.StudentID)
		case fieldName:
			row = append(row, stu.Name)
		case fieldEmail:
			row = append(row, stu.Email)
		case fieldAge:
			row = append(row, strconv.Itoa(stu.Age))
		case fieldCompetition:
			row = append(row, renderBool(stu.Competition))
		case fieldRegistered:
			row = append(row, renderBool(stu.Registered))
		default:
			row = append(row, "")
		}
	}
	return row
}

// SyncFromSheet pulls every row from the sheet mirror and upserts it into the
// roster; later rows win on duplicate student IDs. It returns the number of
// records written. A transport error gives no partial-state guarantee: some
// upserts may have committed already.
func (svc *Service) SyncFromSheet(ctx context.Context) (int, error) {
	if svc.sheet == nil {
		return 0, ErrSheetDisabled
	}
	rows, err := svc.sheet.ReadRows(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "reading sheet")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	headers := rows[0]
	var synced int
	for _, row := range rows[1:] {
		fields, ok := mapRow(headers, row)
		if !ok {
			continue
		}
		wrote, err := svc.repo.UpsertStudent(ctx, fields)
		if err != nil {
			return synced, errors.Wrapf(err, "upserting %q", fields.StudentID)
		}
		if wrote {
			synced++
		}
	}
	return synced, nil
}

// SyncToSheet pushes one student back to the mirror: the first row whose
// first cell equals the student ID is overwritten, otherwise a new row is
// appended. Unlocked read-modify-write; concurrent pushes can race.
func (svc *Service) SyncToSheet(ctx context.Context, stu Student) error {
	if svc.sheet == nil {
		return ErrSheetDisabled
	}
	rows, err := svc.sheet.ReadRows(ctx)
	if err != nil {
		return errors.Wrap(err, "reading sheet")
	}
	if len(rows) == 0 {
		return errors.New("sheet has no header row")
	}

	headers := rows[0]
	row := renderRow(headers, stu)
	for i, existing := range rows[1:] {
		if len(existing) > 0 && existing[0] == stu.StudentID {
			return errors.Wrap(svc.sheet.UpdateRow(ctx, i+2, row), "updating row")
		}
	}
	return errors.Wrap(svc.sheet.AppendRow(ctx, row), "appending row")
}
