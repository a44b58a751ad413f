package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/kjohnson/ytreport/internal/domain"
	"github.com/kjohnson/ytreport/internal/util"
	"github.com/kjohnson/ytreport/pkg/errors"
)

// Writer wraps the Sheets API for the report's output tabs. Tab creation
// and table writes are fatal on failure (a half-written report is worse
// than none); formatting is visual polish and the caller is expected to
// log-and-continue on error.
type Writer struct {
	svc           *gsheet.Service
	spreadsheetID string
	pacer         *util.Pacer
	logger        *zap.Logger

	// sheet IDs resolved by EnsureTab, needed by formatting requests
	sheetIDs map[string]int64
}

func NewWriter(svc *gsheet.Service, spreadsheetID string, pacer *util.Pacer, logger *zap.Logger) *Writer {
	return &Writer{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		pacer:         pacer,
		logger:        logger,
		sheetIDs:      make(map[string]int64),
	}
}

// EnsureTab makes the named tab exist and empty: an existing tab is
// cleared, a missing one is created. Idempotent.
func (w *Writer) EnsureTab(ctx context.Context, name string) error {
	resp, err := w.svc.Spreadsheets.Get(w.spreadsheetID).Context(ctx).Do()
	w.pacer.Wait()
	if err != nil {
		return errors.NewRemoteError("failed to read spreadsheet metadata", "sheets", "spreadsheets.get", err)
	}

	for _, sheet := range resp.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == name {
			w.sheetIDs[name] = sheet.Properties.SheetId
			return w.clearTab(ctx, name)
		}
	}

	return w.createTab(ctx, name)
}

func (w *Writer) clearTab(ctx context.Context, name string) error {
	_, err := w.svc.Spreadsheets.Values.Clear(w.spreadsheetID, name+"!A:Z", &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	w.pacer.Wait()
	if err != nil {
		return errors.NewRemoteError("failed to clear tab", "sheets", "values.clear", err)
	}
	w.logger.Info("Cleared existing tab", zap.String("tab", name))
	return nil
}

func (w *Writer) createTab(ctx context.Context, name string) error {
	resp, err := w.svc.Spreadsheets.BatchUpdate(w.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: name},
			},
		}},
	}).Context(ctx).Do()
	w.pacer.Wait()
	if err != nil {
		return errors.NewRemoteError("failed to create tab", "sheets", "addSheet", err)
	}

	for _, r := range resp.Replies {
		if r.AddSheet != nil && r.AddSheet.Properties != nil {
			w.sheetIDs[name] = r.AddSheet.Properties.SheetId
		}
	}
	w.logger.Info("Created tab", zap.String("tab", name))
	return nil
}

// WriteTable writes the full table starting at A1 with user-entered value
// interpretation, so formula and numeric strings are evaluated by the
// renderer.
func (w *Writer) WriteTable(ctx context.Context, name string, table domain.Table) error {
	vr := &gsheet.ValueRange{Values: [][]any(table)}
	_, err := w.svc.Spreadsheets.Values.Update(w.spreadsheetID, name+"!A1", vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	w.pacer.Wait()
	if err != nil {
		return errors.NewRemoteError("failed to write table", "sheets", "values.update", err)
	}

	w.logger.Info("Table written",
		zap.String("tab", name),
		zap.Int("rows", table.RowCount()),
		zap.Int("cols", table.ColCount()))
	return nil
}

// ApplyStandardFormat applies the report's visual treatment to the first
// rowCount rows: frozen bold header, auto-sized columns, zebra striping on
// data rows, and — when highlightLast is set and rowCount > 2 — a
// highlighted final row. The caller asserts with highlightLast that its row
// ordering puts the summary row last; without it the shade would land on an
// ordinary data row.
func (w *Writer) ApplyStandardFormat(ctx context.Context, name string, rowCount, colCount int, highlightLast bool) error {
	sheetID, ok := w.sheetIDs[name]
	if !ok {
		return fmt.Errorf("unknown tab %q: EnsureTab must run first", name)
	}

	header := &gsheet.CellFormat{
		BackgroundColor: &gsheet.Color{Red: 0.85, Green: 0.85, Blue: 0.85},
		TextFormat:      &gsheet.TextFormat{Bold: true},
	}
	zebra := &gsheet.Color{Red: 0.96, Green: 0.96, Blue: 0.96}
	summary := &gsheet.CellFormat{
		BackgroundColor: &gsheet.Color{Red: 1.0, Green: 0.95, Blue: 0.8},
		TextFormat:      &gsheet.TextFormat{Bold: true},
	}

	requests := []*gsheet.Request{
		{
			UpdateSheetProperties: &gsheet.UpdateSheetPropertiesRequest{
				Properties: &gsheet.SheetProperties{
					SheetId:        sheetID,
					GridProperties: &gsheet.GridProperties{FrozenRowCount: 1},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
		{
			RepeatCell: &gsheet.RepeatCellRequest{
				Range:  gridRange(sheetID, 0, 1, 0, colCount),
				Cell:   &gsheet.CellData{UserEnteredFormat: header},
				Fields: "userEnteredFormat(backgroundColor,textFormat)",
			},
		},
		{
			AutoResizeDimensions: &gsheet.AutoResizeDimensionsRequest{
				Dimensions: &gsheet.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   int64(colCount),
				},
			},
		},
		{
			AddConditionalFormatRule: &gsheet.AddConditionalFormatRuleRequest{
				Rule: &gsheet.ConditionalFormatRule{
					Ranges: []*gsheet.GridRange{gridRange(sheetID, 1, rowCount, 0, colCount)},
					BooleanRule: &gsheet.BooleanRule{
						Condition: &gsheet.BooleanCondition{
							Type: "CUSTOM_FORMULA",
							Values: []*gsheet.ConditionValue{
								{UserEnteredValue: "=ISEVEN(ROW())"},
							},
						},
						Format: &gsheet.CellFormat{BackgroundColor: zebra},
					},
				},
			},
		},
	}

	if highlightLast && rowCount > 2 {
		requests = append(requests, &gsheet.Request{
			RepeatCell: &gsheet.RepeatCellRequest{
				Range:  gridRange(sheetID, rowCount-1, rowCount, 0, colCount),
				Cell:   &gsheet.CellData{UserEnteredFormat: summary},
				Fields: "userEnteredFormat(backgroundColor,textFormat)",
			},
		})
	}

	_, err := w.svc.Spreadsheets.BatchUpdate(w.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	w.pacer.Wait()
	if err != nil {
		return errors.NewRemoteError("failed to apply formatting", "sheets", "batchUpdate", err)
	}
	return nil
}

// AddSparkline writes one SPARKLINE formula per cell of the target range,
// each referencing the same data range. The target may be any rectangle.
func (w *Writer) AddSparkline(ctx context.Context, name, dataRangeRef, targetRangeRef string) error {
	startCol, startRow, endCol, endRow, err := parseRange(targetRangeRef)
	if err != nil {
		return err
	}

	formula := fmt.Sprintf("=SPARKLINE(%s)", dataRangeRef)
	values := make([][]any, 0, endRow-startRow+1)
	for r := startRow; r <= endRow; r++ {
		row := make([]any, 0, endCol-startCol+1)
		for c := startCol; c <= endCol; c++ {
			row = append(row, formula)
		}
		values = append(values, row)
	}

	_, err = w.svc.Spreadsheets.Values.Update(w.spreadsheetID,
		fmt.Sprintf("%s!%s", name, targetRangeRef),
		&gsheet.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	w.pacer.Wait()
	if err != nil {
		return errors.NewRemoteError("failed to write sparkline formulas", "sheets", "values.update", err)
	}
	return nil
}

// gridRange builds a half-open GridRange over 0-based row/col bounds.
func gridRange(sheetID int64, startRow, endRow, startCol, endCol int) *gsheet.GridRange {
	return &gsheet.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    int64(startRow),
		EndRowIndex:      int64(endRow),
		StartColumnIndex: int64(startCol),
		EndColumnIndex:   int64(endCol),
	}
}
