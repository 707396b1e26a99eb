package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/Joseda-hg/notebook/internal/db"
	"github.com/Joseda-hg/notebook/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Notes"
	UnknownUser = "Unknown User"
)

var Headers = []string{"User", "Note", "Category", "Tags"}

var ErrNoData = errors.New("no notes to export")

// StorageError wraps a failure reading the notes or writing the workbook.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

type Source interface {
	ReportRows(ctx context.Context) ([]model.ReportRow, error)
}

// Summary describes a written report. Truncated counts cells cut to the
// spreadsheet limit of excelize.TotalCellChars characters.
type Summary struct {
	Path      string
	Rows      int
	Truncated int
}

type Generator struct {
	source Source
	logger *slog.Logger
}

func NewGenerator(source Source) *Generator {
	return &Generator{source: source, logger: slog.Default().With("component", "report")}
}

// Export writes every note to a workbook at dest, replacing any file there.
// Nothing is written when there are no notes.
func (g *Generator) Export(ctx context.Context, dest string) (Summary, error) {
	if dest == "" {
		return Summary{}, fmt.Errorf("report destination is required")
	}

	rows, err := g.source.ReportRows(ctx)
	if err != nil {
		return Summary{}, &StorageError{Op: "read notes", Err: err}
	}
	if len(rows) == 0 {
		return Summary{}, ErrNoData
	}

	book, truncated, err := buildWorkbook(rows)
	if err != nil {
		return Summary{}, &StorageError{Op: "build workbook", Err: err}
	}
	defer book.Close()

	if err := book.SaveAs(dest); err != nil {
		return Summary{}, &StorageError{Op: "save workbook", Err: err}
	}

	if truncated > 0 {
		g.logger.Warn("report cells truncated", "path", dest, "cells", truncated, "limit", excelize.TotalCellChars)
	}
	g.logger.Debug("exported notes", "path", dest, "rows", len(rows))
	return Summary{Path: dest, Rows: len(rows), Truncated: truncated}, nil
}

// ExportDatabase opens its own connection to the database at dbPath, exports
// and releases the connection whatever the outcome.
func ExportDatabase(ctx context.Context, dbPath, dest string) (summary Summary, err error) {
	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return Summary{}, &StorageError{Op: "open database", Err: err}
	}
	defer func() {
		if closeErr := sqlDB.Close(); closeErr != nil && err == nil {
			err = &StorageError{Op: "close database", Err: closeErr}
		}
	}()

	return NewGenerator(db.NewStore(sqlDB, nil)).Export(ctx, dest)
}

func buildWorkbook(rows []model.ReportRow) (*excelize.File, int, error) {
	book := excelize.NewFile()
	if err := book.SetSheetName("Sheet1", SheetName); err != nil {
		_ = book.Close()
		return nil, 0, err
	}

	headerStyle, err := book.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Family: "Arial", Size: 12},
	})
	if err != nil {
		_ = book.Close()
		return nil, 0, err
	}

	header := make([]interface{}, 0, len(Headers))
	for _, title := range Headers {
		header = append(header, title)
	}
	if err := book.SetSheetRow(SheetName, "A1", &header); err != nil {
		_ = book.Close()
		return nil, 0, err
	}
	if err := book.SetCellStyle(SheetName, "A1", "D1", headerStyle); err != nil {
		_ = book.Close()
		return nil, 0, err
	}

	truncated := 0
	for i, row := range rows {
		texts := []string{authorName(row), row.Content, row.Category, row.Tags}
		values := make([]interface{}, 0, len(texts))
		for _, text := range texts {
			if utf8.RuneCountInString(text) > excelize.TotalCellChars {
				truncated++
			}
			values = append(values, text)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = book.Close()
			return nil, 0, err
		}
		if err := book.SetSheetRow(SheetName, cell, &values); err != nil {
			_ = book.Close()
			return nil, 0, err
		}
	}

	if err := book.SetColWidth(SheetName, "B", "B", 48); err != nil {
		_ = book.Close()
		return nil, 0, err
	}

	return book, truncated, nil
}

func authorName(row model.ReportRow) string {
	if !row.HasAuthor {
		return UnknownUser
	}
	return row.Username
}
