package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"checkpoint/core/roster"
)

// CreateStudent persists a Student for a test and fails the test on error.
func CreateStudent(
	t *testing.T,
	repo roster.Repository,
	studentID, name, email string,
	age int,
	competition, registered bool,
	createdAt ...time.Time,
) roster.Student {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	stu := roster.Student{
		StudentID:   studentID,
		Name:        name,
		Email:       email,
		Age:         age,
		Competition: competition,
		Registered:  registered,
		CreatedAt:   tstamp,
	}
	stu, err := repo.CreateStudent(context.Background(), stu)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return stu
}

// Diff returns a unified diff of want vs got for failure messages.
func Diff(want, got string) string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	return diff
}
