package sheets

import (
	"context"
	"fmt"

	gsheets "google.golang.org/api/sheets/v4"
)

// RangeWrite is one rectangular overwrite within a tab.
type RangeWrite struct {
	Range string
	Rows  [][]string
}

// Tab is a read/write view of a single worksheet tab. Ranges use A1
// notation local to the tab (e.g. "A2:G").
type Tab interface {
	Read(ctx context.Context, rng string) ([][]string, error)
	Write(ctx context.Context, writes []RangeWrite) error
	Append(ctx context.Context, rng string, rows [][]string) error
}

// Worksheet is the Google Sheets implementation of Tab, bound to one
// spreadsheet and tab name.
type Worksheet struct {
	srv           *gsheets.Service
	spreadsheetID string
	tab           string
}

// NewWorksheet creates a Tab over the given spreadsheet and tab name.
func NewWorksheet(srv *gsheets.Service, spreadsheetID, tab string) *Worksheet {
	return &Worksheet{srv: srv, spreadsheetID: spreadsheetID, tab: tab}
}

func (w *Worksheet) qualify(rng string) string {
	return fmt.Sprintf("%s!%s", w.tab, rng)
}

func (w *Worksheet) Read(ctx context.Context, rng string) ([][]string, error) {
	resp, err := w.srv.Spreadsheets.Values.Get(w.spreadsheetID, w.qualify(rng)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to read range %s: %w", rng, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Write applies every range overwrite in a single batched request.
func (w *Worksheet) Write(ctx context.Context, writes []RangeWrite) error {
	if len(writes) == 0 {
		return nil
	}
	data := make([]*gsheets.ValueRange, 0, len(writes))
	for _, wr := range writes {
		data = append(data, &gsheets.ValueRange{
			Range:  w.qualify(wr.Range),
			Values: toValues(wr.Rows),
		})
	}
	req := &gsheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}
	if _, err := w.srv.Spreadsheets.Values.BatchUpdate(w.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to write %d ranges: %w", len(writes), err)
	}
	return nil
}

// Append inserts rows after the last row of the table containing rng.
func (w *Worksheet) Append(ctx context.Context, rng string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	vr := &gsheets.ValueRange{Values: toValues(rows)}
	_, err := w.srv.Spreadsheets.Values.Append(w.spreadsheetID, w.qualify(rng), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("unable to append %d rows: %w", len(rows), err)
	}
	return nil
}

func toValues(rows [][]string) [][]any {
	values := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, c := range row {
			cells[j] = c
		}
		values[i] = cells
	}
	return values
}
