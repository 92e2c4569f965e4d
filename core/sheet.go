package core

import "context"

// SheetRow is one spreadsheet row as cell strings, in column order.
type SheetRow []string

// SheetService is any service that can read and write the spreadsheet mirror
// of the roster. Row indexes are 1-based sheet positions, header row included.
type SheetService interface {
	ReadRows(ctx context.Context) ([]SheetRow, error)
	UpdateRow(ctx context.Context, rowIndex int, row SheetRow) error
	// AppendRow is not idempotent: repeated appends duplicate rows.
	AppendRow(ctx context.Context, row SheetRow) error
}
