package sheetsvc

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"checkpoint/core"
)

type googleService struct {
	svc           *sheets.Service
	spreadsheetID string
	readRange     string
	sheetName     string
}

var _ core.SheetService = (*googleService)(nil)

// NewGoogleService builds a SheetService on the Sheets API using the
// configured service account credentials (JSON blob, or file as fallback).
func NewGoogleService(ctx context.Context, conf *core.Config) (*googleService, error) {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if conf.Sheet.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(conf.Sheet.CredentialsJSON)))
	} else {
		opts = append(opts, option.WithCredentialsFile(conf.Sheet.CredentialsFile))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "building sheets client")
	}
	return &googleService{
		svc:           svc,
		spreadsheetID: conf.Sheet.ID,
		readRange:     conf.Sheet.Range,
		sheetName:     conf.Sheet.Name(),
	}, nil
}

func (svc *googleService) ReadRows(ctx context.Context) ([]core.SheetRow, error) {
	res, err := svc.svc.Spreadsheets.Values.
		Get(svc.spreadsheetID, svc.readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	rows := make([]core.SheetRow, 0, len(res.Values))
	for _, values := range res.Values {
		row := make(core.SheetRow, 0, len(values))
		for _, value := range values {
			row = append(row, fmt.Sprint(value))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (svc *googleService) UpdateRow(ctx context.Context, rowIndex int, row core.SheetRow) error {
	rangeName := fmt.Sprintf("%s!A%d:%s%d", svc.sheetName, rowIndex, columnName(len(row)), rowIndex)
	_, err := svc.svc.Spreadsheets.Values.
		Update(svc.spreadsheetID, rangeName, valueRange(row)).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func (svc *googleService) AppendRow(ctx context.Context, row core.SheetRow) error {
	_, err := svc.svc.Spreadsheets.Values.
		Append(svc.spreadsheetID, svc.sheetName+"!A:A", valueRange(row)).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func valueRange(row core.SheetRow) *sheets.ValueRange {
	values := make([]interface{}, 0, len(row))
	for _, cell := range row {
		values = append(values, cell)
	}
	return &sheets.ValueRange{Values: [][]interface{}{values}}
}

// columnName converts a 1-based column count to its A1-notation letters.
func columnName(n int) string {
	var name string
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}
