package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"vacancy-reporter/models"
	"vacancy-reporter/utils"
)

const (
	sheetYears   = "Статистика по годам"
	sheetRegions = "Статистика по городам"

	// builtin number format 10: "0.00%"
	percentFormat = 10
)

// XLSXWriter renders the aggregate report as a two-sheet workbook:
// year statistics on the first sheet, the two region top-10 views side
// by side on the second.
type XLSXWriter struct {
	path   string
	logger *utils.Logger
}

// NewXLSXWriter creates a writer targeting path. Intermediate
// directories are created automatically.
func NewXLSXWriter(path string, logger *utils.Logger) (*XLSXWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("xlsx: create output dir: %w", err)
	}
	return &XLSXWriter{path: path, logger: logger}, nil
}

// Write builds and saves the workbook.
func (w *XLSXWriter) Write(report *models.StatsReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetYears); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetRegions); err != nil {
		return fmt.Errorf("xlsx: create sheet: %w", err)
	}

	styles, err := newStyleSet(f)
	if err != nil {
		return err
	}

	if err := w.writeYears(f, styles, report); err != nil {
		return err
	}
	if err := w.writeRegions(f, styles, report); err != nil {
		return err
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", w.path, err)
	}
	w.logger.Info("[xlsx] Report saved to %s", w.path)
	return nil
}

type styleSet struct {
	header  int
	data    int
	percent int
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	border := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: border,
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: header style: %w", err)
	}
	data, err := f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return nil, fmt.Errorf("xlsx: data style: %w", err)
	}
	percent, err := f.NewStyle(&excelize.Style{
		Border: border,
		NumFmt: percentFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: percent style: %w", err)
	}

	return &styleSet{header: header, data: data, percent: percent}, nil
}

func (w *XLSXWriter) writeYears(f *excelize.File, styles *styleSet, report *models.StatsReport) error {
	headers := []string{
		"Год",
		"Средняя зарплата",
		"Средняя зарплата - " + report.Profession,
		"Количество вакансий",
		"Количество вакансий - " + report.Profession,
	}

	rows := make([][]any, 0, len(report.Years))
	for i, year := range report.Years {
		profession := models.YearStat{}
		if i < len(report.ProfessionYears) {
			profession = report.ProfessionYears[i]
		}
		rows = append(rows, []any{
			year.Year, year.MeanSalary, profession.MeanSalary,
			year.Count, profession.Count,
		})
	}

	return writeTable(f, sheetYears, styles, 1, headers, rows, -1)
}

func (w *XLSXWriter) writeRegions(f *excelize.File, styles *styleSet, report *models.StatsReport) error {
	salaryRows := make([][]any, 0, len(report.TopSalaryRegions))
	for _, r := range report.TopSalaryRegions {
		salaryRows = append(salaryRows, []any{r.Region, r.MeanSalary})
	}
	if err := writeTable(f, sheetRegions, styles, 1,
		[]string{"Город", "Уровень зарплат"}, salaryRows, -1); err != nil {
		return err
	}

	shareRows := make([][]any, 0, len(report.TopShareRegions))
	for _, r := range report.TopShareRegions {
		shareRows = append(shareRows, []any{r.Region, r.Fraction})
	}
	// share column rendered as percent, hence the column offset 4 (D:E)
	return writeTable(f, sheetRegions, styles, 4,
		[]string{"Город", "Доля вакансий"}, shareRows, 5)
}

// writeTable writes a bordered table whose top-left header cell sits at
// (startCol, 1). percentCol, when non-negative, names the 1-based sheet
// column formatted as a percentage.
func writeTable(f *excelize.File, sheet string, styles *styleSet, startCol int, headers []string, rows [][]any, percentCol int) error {
	widths := make([]float64, len(headers))

	for i, h := range headers {
		name, err := excelize.CoordinatesToCellName(startCol+i, 1)
		if err != nil {
			return fmt.Errorf("xlsx: cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, name, h); err != nil {
			return fmt.Errorf("xlsx: set header: %w", err)
		}
		if err := f.SetCellStyle(sheet, name, name, styles.header); err != nil {
			return fmt.Errorf("xlsx: style header: %w", err)
		}
		widths[i] = float64(len([]rune(h)))
	}

	for r, row := range rows {
		for c, value := range row {
			col := startCol + c
			name, err := excelize.CoordinatesToCellName(col, r+2)
			if err != nil {
				return fmt.Errorf("xlsx: cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, name, value); err != nil {
				return fmt.Errorf("xlsx: set cell: %w", err)
			}
			style := styles.data
			if col == percentCol {
				style = styles.percent
			}
			if err := f.SetCellStyle(sheet, name, name, style); err != nil {
				return fmt.Errorf("xlsx: style cell: %w", err)
			}
			if l := float64(len([]rune(fmt.Sprint(value)))); l > widths[c] {
				widths[c] = l
			}
		}
	}

	for i := range headers {
		col, err := excelize.ColumnNumberToName(startCol + i)
		if err != nil {
			return fmt.Errorf("xlsx: column name: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, widths[i]+2); err != nil {
			return fmt.Errorf("xlsx: column width: %w", err)
		}
	}
	return nil
}
