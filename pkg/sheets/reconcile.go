package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/harrisonrobin/tasksheet/pkg/record"
)

// Result counts what Upsert did.
type Result struct {
	Updated  int
	Appended int
}

// lastColumn returns the letter of the n-th column (1-based, A..Z).
func lastColumn(n int) string {
	return string(rune('A' + n - 1))
}

// EnsureHeader makes row 1 match the expected column names, writing only
// when it differs. Safe to run on every invocation, including against an
// empty sheet.
func EnsureHeader(ctx context.Context, tab Tab, columns []string) error {
	rng := fmt.Sprintf("A1:%s1", lastColumn(len(columns)))
	rows, err := tab.Read(ctx, rng)
	if err != nil {
		return fmt.Errorf("reading header row: %w", err)
	}
	if len(rows) > 0 && headerMatches(rows[0], columns) {
		return nil
	}
	return tab.Write(ctx, []RangeWrite{{Range: rng, Rows: [][]string{columns}}})
}

func headerMatches(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if strings.TrimSpace(got[i]) != want[i] {
			return false
		}
	}
	return true
}

// Upsert overwrites the row of every record whose task id already appears
// in column A and appends the rest, as one batched write followed by one
// batched append. Row numbers are recomputed from a fresh read each run and
// never cached. Running Upsert twice with the same records produces zero
// appends and identical overwrites the second time. Rows are never deleted;
// if the sheet already holds duplicate task ids, the first row wins and
// later duplicates are left untouched (known limitation).
func Upsert(ctx context.Context, tab Tab, records []record.Record) (Result, error) {
	last := lastColumn(len(record.Columns))

	// Data starts at row 2; row 1 is the header.
	existing, err := tab.Read(ctx, fmt.Sprintf("A2:%s", last))
	if err != nil {
		return Result{}, fmt.Errorf("reading existing rows: %w", err)
	}

	rowByID := make(map[string]int, len(existing))
	for i, row := range existing {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		if _, ok := rowByID[row[0]]; !ok {
			rowByID[row[0]] = i + 2
		}
	}

	var writes []RangeWrite
	var appends [][]string
	for _, rec := range records {
		if rowNum, ok := rowByID[rec.TaskID]; ok {
			writes = append(writes, RangeWrite{
				Range: fmt.Sprintf("A%d:%s%d", rowNum, last, rowNum),
				Rows:  [][]string{rec.Row()},
			})
		} else {
			appends = append(appends, rec.Row())
		}
	}

	// Both batches depend on the read above; the write must never be
	// reordered before it or the row map would be stale.
	if err := tab.Write(ctx, writes); err != nil {
		return Result{}, fmt.Errorf("updating rows: %w", err)
	}
	if err := tab.Append(ctx, fmt.Sprintf("A1:%s", last), appends); err != nil {
		return Result{}, fmt.Errorf("appending rows: %w", err)
	}
	return Result{Updated: len(writes), Appended: len(appends)}, nil
}
