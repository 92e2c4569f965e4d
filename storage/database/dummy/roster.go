package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"checkpoint/core/roster"
)

type rosterRepository struct {
	db *rosterTable
}

var _ roster.Repository = (*rosterRepository)(nil) // interface compliance check

func NewRosterRepository(db *DB) roster.Repository {
	return &rosterRepository{db: db.roster}
}

func (repo *rosterRepository) CreateStudent(ctx context.Context, stu roster.Student) (roster.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.students[stu.StudentID]; ok {
		return roster.Student{}, roster.ErrStudentIDExists
	}
	stu.ID = uuid.New().String()
	repo.db.students[stu.StudentID] = &stu
	return stu, nil
}

func (repo *rosterRepository) GetStudent(ctx context.Context, studentID string) (roster.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if stu, ok := repo.db.students[studentID]; ok {
		return *stu, nil
	}
	return roster.Student{}, roster.ErrNotFound
}

func (repo *rosterRepository) QueryAllStudents(ctx context.Context) ([]roster.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]roster.Student, 0, len(repo.db.students))
	for _, stu := range repo.db.students {
		students = append(students, *stu)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })
	return students, nil
}

func (repo *rosterRepository) UpsertStudent(ctx context.Context, fields roster.StudentFields) (bool, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	stu, ok := repo.db.students[fields.StudentID]
	if !ok {
		stu = &roster.Student{ID: uuid.New().String(), StudentID: fields.StudentID}
		repo.db.students[fields.StudentID] = stu
		applyFields(stu, fields)
		return true, nil
	}

	orig := *stu
	applyFields(stu, fields)
	return *stu != orig, nil
}

func applyFields(stu *roster.Student, fields roster.StudentFields) {
	if fields.Name.Valid {
		stu.Name = fields.Name.String
	}
	if fields.Email.Valid {
		stu.Email = fields.Email.String
	}
	if fields.Age.Valid {
		stu.Age = fields.Age.Int
	}
	if fields.Competition.Valid {
		stu.Competition = fields.Competition.Bool
	}
	if fields.Registered.Valid {
		stu.Registered = fields.Registered.Bool
	}
}

func (repo *rosterRepository) MarkRegistered(ctx context.Context, studentID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	stu, ok := repo.db.students[studentID]
	if !ok {
		return roster.ErrNotFound
	}
	stu.Registered = true
	return nil
}

func (repo *rosterRepository) CreateScanLog(ctx context.Context, entry roster.ScanLog) (roster.ScanLog, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	entry.ID = uuid.New().String()
	repo.db.scanLogs = append(repo.db.scanLogs, entry)
	return entry, nil
}

func (repo *rosterRepository) QueryScanLogs(ctx context.Context, limit int) ([]roster.ScanLog, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if limit <= 0 || limit > len(repo.db.scanLogs) {
		limit = len(repo.db.scanLogs)
	}
	entries := make([]roster.ScanLog, 0, limit)
	for i := len(repo.db.scanLogs) - 1; i >= 0 && len(entries) < limit; i-- {
		entries = append(entries, repo.db.scanLogs[i])
	}
	return entries, nil
}
