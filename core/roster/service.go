package roster

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"checkpoint/core"
)

var (
	// errors
	ErrNotFound        = errors.New("student not found")
	ErrStudentIDExists = errors.New("a student with this ID already exists")
	ErrSheetDisabled   = errors.New("sheet sync disabled")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, stu Student) (Student, error)
		GetStudent(ctx context.Context, studentID string) (Student, error)
		// QueryAllStudents returns the roster sorted by name, ascending.
		QueryAllStudents(ctx context.Context) ([]Student, error)
		// UpsertStudent merges the set fields into the record matching
		// fields.StudentID, creating it if needed. It reports whether a
		// write occurred.
		UpsertStudent(ctx context.Context, fields StudentFields) (bool, error)
		// MarkRegistered sets the registration flag of an existing record.
		// The flag only ever goes false -> true; nothing resets it.
		MarkRegistered(ctx context.Context, studentID string) error
		CreateScanLog(ctx context.Context, entry ScanLog) (ScanLog, error)
		// QueryScanLogs returns up to limit entries, most recent first.
		QueryScanLogs(ctx context.Context, limit int) ([]ScanLog, error)
	}

	Service struct {
		repo    Repository
		sheet   core.SheetService // nil when the mirror is not configured
		mailSvc core.EmailService
		logger  core.Logger
	}
)

func NewService(repo Repository, sheet core.SheetService, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{repo: repo, sheet: sheet, mailSvc: mailSvc, logger: logger}
}

// Verify checks a scanned student ID against the roster and flips the
// registration flag on first sighting. Store failures abort the scan and are
// returned; sheet failures only degrade it (the lookup runs on local data).
//
// This is a read-then-write with no lock: concurrent scans of the same ID can
// interleave and produce duplicate "registered" log entries.
func (svc *Service) Verify(ctx context.Context, studentID, scanType string) (VerifyResult, error) {
	studentID = core.CleanString(studentID)
	if !IsValidScanType(scanType) {
		scanType = ScanTypeBarcode
	}

	// refresh local data from the mirror first; stale data is still usable
	if _, err := svc.SyncFromSheet(ctx); err != nil && err != ErrSheetDisabled {
		svc.logger.Warn(fmt.Sprintf("pre-scan sheet sync failed: %v", err), err)
	}

	stu, err := svc.repo.GetStudent(ctx, studentID)
	if err == ErrNotFound {
		svc.logScan(ctx, studentID, null.String{}, StatusNotFound, scanType)
		return VerifyResult{
			Verified:     false,
			Message:      fmt.Sprintf("Student ID %s not found in roster", studentID),
			Action:       StatusNotFound,
			PopupMessage: fmt.Sprintf("❌ Student ID %s not found in roster!", studentID),
		}, nil
	}
	if err != nil {
		return VerifyResult{}, errors.Wrap(err, "looking up student")
	}

	if stu.Registered {
		svc.logScan(ctx, studentID, null.StringFrom(stu.Name), StatusAlreadyRegistered, scanType)
		return VerifyResult{
			Verified:     true,
			Student:      &stu,
			Message:      fmt.Sprintf("%s is already registered", stu.Name),
			Action:       StatusAlreadyRegistered,
			PopupMessage: fmt.Sprintf("ℹ️ %s is already registered!", stu.Name),
		}, nil
	}

	if err := svc.repo.MarkRegistered(ctx, studentID); err != nil {
		return VerifyResult{}, errors.Wrap(err, "updating registration status")
	}
	upd := stu.WithRegistered(true)

	// best effort; the store write is not rolled back on mirror failure
	if err := svc.SyncToSheet(ctx, upd); err != nil && err != ErrSheetDisabled {
		svc.logger.Warn(fmt.Sprintf("pushing %q to sheet: %v", studentID, err), err)
	}
	svc.sendRegistrationMail(upd)
	svc.logScan(ctx, studentID, null.StringFrom(upd.Name), StatusRegistered, scanType)

	return VerifyResult{
		Verified:     true,
		Student:      &upd,
		Message:      fmt.Sprintf("Registration completed for %s!", upd.Name),
		Action:       StatusRegistered,
		PopupMessage: fmt.Sprintf("✅ %s has been successfully registered!", upd.Name),
	}, nil
}

// Add validates and inserts a new student.
func (svc *Service) Add(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(ctx, svc); err != nil {
		return Student{}, err
	}
	stu := Student{
		StudentID:   ns.StudentID,
		Name:        ns.Name,
		Email:       ns.Email,
		Age:         ns.Age,
		Competition: ns.Competition,
		CreatedAt:   nowFunc().UTC(),
	}
	return svc.repo.CreateStudent(ctx, stu)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) RecentScans(ctx context.Context, limit int) ([]ScanLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return svc.repo.QueryScanLogs(ctx, limit)
}

// Seed inserts the given students, but only when the roster is empty.
// It returns the number of records inserted.
func (svc *Service) Seed(ctx context.Context, students []Student) (int, error) {
	existing, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "querying roster")
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, stu := range students {
		stu.CreatedAt = nowFunc().UTC()
		if _, err := svc.repo.CreateStudent(ctx, stu); err != nil {
			return i, errors.Wrapf(err, "seeding %q", stu.StudentID)
		}
	}
	return len(students), nil
}

func (svc *Service) checkStudentIDUniqueness(ctx context.Context, studentID string) error {
	_, err := svc.repo.GetStudent(ctx, studentID)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	return core.NewValidationError(
		ErrStudentIDExists,
		core.FieldError{Field: "student_id", Error: ErrStudentIDExists.Error()},
	)
}

// logScan appends a scan event. Failures are logged and swallowed; a lost log
// entry never fails the scan itself.
func (svc *Service) logScan(ctx context.Context, studentID string, name null.String, status, scanType string) {
	entry := ScanLog{
		StudentID:   studentID,
		StudentName: name,
		Status:      status,
		Timestamp:   nowFunc().UTC(),
		ScanType:    scanType,
	}
	if _, err := svc.repo.CreateScanLog(ctx, entry); err != nil {
		svc.logger.Error(fmt.Sprintf("logging %s scan for %q: %v", status, studentID, err), err)
	}
}

func (svc *Service) sendRegistrationMail(stu Student) {
	if svc.mailSvc == nil || stu.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: stu.Name, Address: stu.Email}},
		Subject: "Registration confirmed",
		BodyStr: fmt.Sprintf("Hi %s,\n\nYour check-in is complete and your registration is confirmed. Welcome!\n", stu.Name),
	})
}
