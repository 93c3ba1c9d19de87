// Package export produces spreadsheet artifacts from extracted events.
package export

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/coursetrack/syllabus-tracker/internal/entity"
)

// Service renders course schedules as XLSX workbooks.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ScheduleXLSX returns an XLSX workbook (as bytes) listing every event.
// Events without dates are included with an empty due cell; the flag column
// marks low-accuracy extractions for manual review.
func (s *Service) ScheduleXLSX(events []entity.CourseEvent, courseName string) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Schedule"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}
	_ = f.DeleteSheet("Sheet1")
	if index, err := f.GetSheetIndex(sheet); err == nil {
		f.SetActiveSheet(index)
	}

	headers := []string{"Title", "Due Date", "Type", "Accuracy", "Needs Review"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range events {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, e.Title)
		if e.DueDate != nil {
			write(2, *e.DueDate)
		} else {
			write(2, "")
		}
		write(3, e.Type)
		write(4, e.Accuracy)
		if e.IsLowAccuracy {
			write(5, "yes")
		} else {
			write(5, "")
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("schedule exported", "course", courseName, "events", len(events))
	return buf.Bytes(), nil
}
