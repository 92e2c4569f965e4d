package dummysheet

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"checkpoint/core"
)

// Service is an in-memory SheetService for tests and local development.
type Service struct {
	mu   sync.RWMutex
	rows []core.SheetRow

	ReadErr  error // when set, ReadRows fails with it
	WriteErr error // when set, UpdateRow and AppendRow fail with it
}

var _ core.SheetService = (*Service)(nil) // interface compliance check

func NewService(rows ...core.SheetRow) *Service {
	svc := &Service{rows: make([]core.SheetRow, 0, len(rows))}
	for _, row := range rows {
		svc.rows = append(svc.rows, append(core.SheetRow{}, row...))
	}
	return svc
}

func (svc *Service) ReadRows(ctx context.Context) ([]core.SheetRow, error) {
	if svc.ReadErr != nil {
		return nil, svc.ReadErr
	}
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.copyRows(), nil
}

func (svc *Service) UpdateRow(ctx context.Context, rowIndex int, row core.SheetRow) error {
	if svc.WriteErr != nil {
		return svc.WriteErr
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if rowIndex < 1 || rowIndex > len(svc.rows) {
		return errors.Errorf("row index %d out of range", rowIndex)
	}
	svc.rows[rowIndex-1] = append(core.SheetRow{}, row...)
	return nil
}

func (svc *Service) AppendRow(ctx context.Context, row core.SheetRow) error {
	if svc.WriteErr != nil {
		return svc.WriteErr
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.rows = append(svc.rows, append(core.SheetRow{}, row...))
	return nil
}

// Rows returns a copy of the current sheet contents for assertions.
func (svc *Service) Rows() []core.SheetRow {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.copyRows()
}

func (svc *Service) copyRows() []core.SheetRow {
	rows := make([]core.SheetRow, 0, len(svc.rows))
	for _, row := range svc.rows {
		rows = append(rows, append(core.SheetRow{}, row...))
	}
	return rows
}
