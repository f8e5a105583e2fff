package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/ai-interview-coach/internal/core/domain"
)

const transcriptSheet = "Interview"

// TranscriptWorkbook builds an xlsx transcript of the session: one row per
// question with the latest answer, ideal answer, score and feedback, plus the
// aggregate. The caller owns closing the returned file.
func TranscriptWorkbook(session *domain.Session) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", transcriptSheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	headers := []string{"#", "Question", "Your Answer", "Ideal Answer", "Score", "Feedback"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(transcriptSheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
		if err := f.SetCellStyle(transcriptSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header: %w", err)
		}
	}
	_ = f.SetColWidth(transcriptSheet, "B", "D", 60)

	row := 2
	for i, question := range session.Questions {
		idx := i + 1
		values := []any{idx, question, "", session.IdealAnswers[i], "", ""}
		if answer, ok := session.Answers[idx]; ok {
			values[2] = answer.Text
			if answer.Scored {
				values[4] = answer.Score
				values[5] = answer.Feedback.Message()
			}
		}
		if err := f.SetSheetRow(transcriptSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	if err := f.SetCellValue(transcriptSheet, fmt.Sprintf("A%d", row+1), "Skills"); err != nil {
		return nil, fmt.Errorf("write skills label: %w", err)
	}
	if err := f.SetCellValue(transcriptSheet, fmt.Sprintf("B%d", row+1), strings.Join(session.Skills, ", ")); err != nil {
		return nil, fmt.Errorf("write skills: %w", err)
	}

	if aggregate, ok := session.AggregateScore(); ok {
		if err := f.SetCellValue(transcriptSheet, fmt.Sprintf("A%d", row+2), "Final Score"); err != nil {
			return nil, fmt.Errorf("write aggregate label: %w", err)
		}
		if err := f.SetCellValue(transcriptSheet, fmt.Sprintf("B%d", row+2), aggregate); err != nil {
			return nil, fmt.Errorf("write aggregate: %w", err)
		}
	}

	return f, nil
}
