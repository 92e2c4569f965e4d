package dummydb

import (
	"context"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"checkpoint/core/roster"
)

func newTestRepo(t *testing.T) roster.Repository {
	t.Helper()
	db, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return NewRosterRepository(db)
}

func TestRosterRepository_CreateStudent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	stu, err := repo.CreateStudent(ctx, roster.Student{StudentID: "S1", Name: "Ann"})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	if stu.ID == "" {
		t.Error("CreateStudent() did not assign an ID")
	}

	if _, err = repo.CreateStudent(ctx, roster.Student{StudentID: "S1", Name: "Ann Again"}); err != roster.ErrStudentIDExists {
		t.Errorf("CreateStudent() error = %v, want ErrStudentIDExists", err)
	}

	if _, err = repo.GetStudent(ctx, "nope"); err != roster.ErrNotFound {
		t.Errorf("GetStudent() error = %v, want ErrNotFound", err)
	}
}

func TestRosterRepository_UpsertStudent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	// creates when missing
	wrote, err := repo.UpsertStudent(ctx, roster.StudentFields{
		StudentID: "S1",
		Name:      null.StringFrom("Ann"),
		Age:       null.IntFrom(20),
		Email:     null.StringFrom("ann@test.test"),
	})
	if err != nil {
		t.Fatalf("UpsertStudent() failed: %v", err)
	}
	if !wrote {
		t.Error("UpsertStudent() wrote = false, want true on insert")
	}

	// partial upsert must not clobber unset fields
	wrote, err = repo.UpsertStudent(ctx, roster.StudentFields{
		StudentID:  "S1",
		Registered: null.BoolFrom(true),
	})
	if err != nil {
		t.Fatalf("UpsertStudent() failed: %v", err)
	}
	if !wrote {
		t.Error("UpsertStudent() wrote = false, want true on change")
	}

	stu, err := repo.GetStudent(ctx, "S1")
	if err != nil {
		t.Fatalf("GetStudent() failed: %v", err)
	}
	if stu.Name != "Ann" || stu.Age != 20 || stu.Email != "ann@test.test" {
		t.Errorf("partial upsert clobbered fields: %+v", stu)
	}
	if !stu.Registered {
		t.Error("Registered = false, want true")
	}

	// identical upsert reports no write
	wrote, err = repo.UpsertStudent(ctx, roster.StudentFields{
		StudentID:  "S1",
		Registered: null.BoolFrom(true),
	})
	if err != nil {
		t.Fatalf("UpsertStudent() failed: %v", err)
	}
	if wrote {
		t.Error("UpsertStudent() wrote = true, want false on no-op")
	}
}

func TestRosterRepository_MarkRegistered(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if err := repo.MarkRegistered(ctx, "nope"); err != roster.ErrNotFound {
		t.Errorf("MarkRegistered() error = %v, want ErrNotFound", err)
	}

	if _, err := repo.CreateStudent(ctx, roster.Student{StudentID: "S1", Name: "Ann"}); err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	if err := repo.MarkRegistered(ctx, "S1"); err != nil {
		t.Fatalf("MarkRegistered() failed: %v", err)
	}
	stu, _ := repo.GetStudent(ctx, "S1")
	if !stu.Registered {
		t.Error("Registered = false, want true")
	}
}

func TestRosterRepository_QueryAllStudents(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for _, stu := range []roster.Student{
		{StudentID: "S3", Name: "Cleo"},
		{StudentID: "S1", Name: "Ann"},
		{StudentID: "S2", Name: "Ben"},
	} {
		if _, err := repo.CreateStudent(ctx, stu); err != nil {
			t.Fatalf("CreateStudent() failed: %v", err)
		}
	}

	students, err := repo.QueryAllStudents(ctx)
	if err != nil {
		t.Fatalf("QueryAllStudents() failed: %v", err)
	}
	want := []string{"Ann", "Ben", "Cleo"}
	if len(students) != len(want) {
		t.Fatalf("QueryAllStudents() returned %d students, want %d", len(students), len(want))
	}
	for i, name := range want {
		if students[i].Name != name {
			t.Errorf("students[%d].Name = %q, want %q", i, students[i].Name, name)
		}
	}
}

func TestRosterRepository_QueryScanLogs(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, status := range []string{roster.StatusNotFound, roster.StatusRegistered, roster.StatusAlreadyRegistered} {
		entry := roster.ScanLog{
			StudentID: "S1",
			Status:    status,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			ScanType:  roster.ScanTypeBarcode,
		}
		if _, err := repo.CreateScanLog(ctx, entry); err != nil {
			t.Fatalf("CreateScanLog() failed: %v", err)
		}
	}

	entries, err := repo.QueryScanLogs(ctx, 2)
	if err != nil {
		t.Fatalf("QueryScanLogs() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("QueryScanLogs() returned %d entries, want 2", len(entries))
	}
	if entries[0].Status != roster.StatusAlreadyRegistered || entries[1].Status != roster.StatusRegistered {
		t.Errorf("QueryScanLogs() order = [%s %s], want most recent first", entries[0].Status, entries[1].Status)
	}
}
