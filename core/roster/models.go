package roster

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"checkpoint/core"
)

// Scan statuses
const (
	StatusRegistered        = "registered"
	StatusAlreadyRegistered = "already_registered"
	StatusNotFound          = "not_found"
)

// Scan channels
const (
	ScanTypeBarcode = "barcode"
	ScanTypeManual  = "manual"
)

var ScanTypes = []string{ScanTypeBarcode, ScanTypeManual}

func IsValidScanType(scanType string) bool {
	for _, st := range ScanTypes {
		if st == scanType {
			return true
		}
	}
	return false
}

type Student struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Age         int       `json:"age"`
	Competition bool      `json:"competition"`
	Registered  bool      `json:"registration_status"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// WithRegistered returns a copy of s with the registration flag set.
// The flag is monotonic: the verification workflow only ever sets it to true.
func (s Student) WithRegistered(registered bool) Student {
	s.Registered = registered
	return s
}

// StudentFields is a partial update of a Student, keyed by StudentID.
// Only valid fields are written, so a sheet missing a column never clobbers
// stored values.
type StudentFields struct {
	StudentID   string
	Name        null.String
	Email       null.String
	Age         null.Int
	Competition null.Bool
	Registered  null.Bool
}

// NewStudent contains information needed to add a Student to the roster.
type NewStudent struct {
	StudentID   string `json:"student_id" validate:"required,alphanum_"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Age         int    `json:"age" validate:"gte=0,lte=150"`
	Competition bool   `json:"competition"`
}

func (ns *NewStudent) Validate(ctx context.Context, svc *Service) error {
	ns.StudentID = core.CleanString(ns.StudentID)
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true)

	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	return svc.checkStudentIDUniqueness(ctx, ns.StudentID)
}

// ScanLog records one attempt to verify a student ID, whatever the outcome.
// Entries are append-only and never mutated.
type ScanLog struct {
	ID          string      `json:"id"`
	StudentID   string      `json:"student_id"`
	StudentName null.String `json:"student_name"`
	Status      string      `json:"status"`
	Timestamp   time.Time   `json:"timestamp"` // UTC
	ScanType    string      `json:"scan_type"`
}

// VerifyResult is returned from every verification, whatever the branch taken.
type VerifyResult struct {
	Verified     bool     `json:"verified"`
	Student      *Student `json:"student,omitempty"`
	Message      string   `json:"message"`
	Action       string   `json:"action"`
	PopupMessage string   `json:"popup_message"`
}
