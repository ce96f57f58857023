package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

const (
	xlsxWordColumn    = 0 // column A
	xlsxMeaningColumn = 1 // column B
)

// XLSXSource reads a word list from a spreadsheet: column A holds the word,
// column B the meaning. A first row whose column A reads "word" is a header.
type XLSXSource struct {
	path  string
	sheet string
}

// NewXLSXSource creates a new XLSXSource. An empty sheet selects the first one.
func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet}
}

func (s *XLSXSource) Name() string {
	return "xlsx " + s.path
}

func (s *XLSXSource) Fetch(ctx context.Context) ([]entities.WordEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := s.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	if len(rows) > 0 && len(rows[0]) > xlsxWordColumn &&
		strings.EqualFold(strings.TrimSpace(rows[0][xlsxWordColumn]), "word") {
		rows = rows[1:]
	}

	words := lo.Map(rows, func(row []string, _ int) entities.WordEntry {
		return entities.WordEntry{
			Word:    cell(row, xlsxWordColumn),
			Meaning: cell(row, xlsxMeaningColumn),
		}
	})

	return compact(words), nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
