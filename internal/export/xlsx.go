package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/talent-scout/internal/candidate"
	"github.com/spigell/talent-scout/internal/questions"
)

const (
	questionsSheet = "Questions"
	candidateSheet = "Candidate"
)

var questionHeaders = []string{"Technology", "#", "Question", "Source"}

// QuestionsXLSX renders a question set and the masked candidate profile as an
// Excel workbook. The profile may be nil.
func QuestionsXLSX(profile *candidate.Profile, set *questions.Set) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, questionsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	row, err := writeHeader(f, questionsSheet, 0, questionHeaders)
	if err != nil {
		return nil, fmt.Errorf("write questions header: %w", err)
	}

	if set != nil {
		for _, entry := range set.Items {
			for i, q := range entry.Questions {
				row++
				values := []any{entry.Technology, i + 1, q, string(entry.Source)}
				if err := writeRow(f, questionsSheet, row, values); err != nil {
					return nil, fmt.Errorf("write question row: %w", err)
				}
			}
		}
	}

	if profile != nil {
		if err := writeProfile(f, profile.Masked()); err != nil {
			return nil, fmt.Errorf("write candidate sheet: %w", err)
		}
	}

	return f.WriteToBuffer()
}

func writeProfile(f *excelize.File, p *candidate.Profile) error {
	if _, err := f.NewSheet(candidateSheet); err != nil {
		return err
	}

	rows := [][]any{
		{"Name", p.Name},
		{"Email", p.Email},
		{"Phone", p.Phone},
		{"Experience", p.Experience},
		{"Position", p.Position},
		{"Location", p.Location},
	}
	for _, tech := range p.TechStack {
		rows = append(rows, []any{"Technology", tech})
	}

	if err := f.SetColWidth(candidateSheet, "A", "B", 30); err != nil {
		return err
	}

	for i, values := range rows {
		if err := writeRow(f, candidateSheet, i+1, values); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, row int, headers []string) (int, error) {
	row++
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return row, err
	}

	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return row, err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), row)
	if err != nil {
		return row, err
	}
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return row, err
	}

	if err := f.SetColWidth(sheet, "A", "A", 20); err != nil {
		return row, err
	}
	if err := f.SetColWidth(sheet, "C", "C", 80); err != nil {
		return row, err
	}

	values := make([]any, 0, len(headers))
	for _, h := range headers {
		values = append(values, h)
	}
	return row, writeRow(f, sheet, row, values)
}
