package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"vacancy-reporter/config"
	"vacancy-reporter/input"
	"vacancy-reporter/models"
	"vacancy-reporter/services"
	"vacancy-reporter/storage"
	"vacancy-reporter/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	mode := "table"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	prompter := input.NewPrompter(os.Stdin, os.Stdout)

	switch mode {
	case "table":
		runTable(prompter, logger)
	case "report":
		runReport(prompter, cfg, logger)
	default:
		logger.Error("Unknown mode %q, expected \"table\" or \"report\"", mode)
		os.Exit(1)
	}
}

func runTable(prompter *input.Prompter, logger *utils.Logger) {
	params, err := prompter.TableParams()
	if err != nil {
		fmt.Println(err)
		return
	}

	vacancies, ok := loadVacancies(params.FilePath, logger)
	if !ok {
		return
	}

	engine := services.NewQueryEngine(services.NewFormatter(), services.DefaultCurrencyTable(), logger)
	view, err := engine.Run(vacancies, params.Options)
	switch {
	case errors.Is(err, models.ErrEmptyDataset):
		fmt.Println("Нет данных")
		return
	case errors.Is(err, models.ErrEmptyResult):
		fmt.Println("Ничего не найдено")
		return
	case err != nil:
		logger.Error("Query failed: %v", err)
		os.Exit(1)
	}

	if err := storage.NewConsoleTable(os.Stdout).Render(view); err != nil {
		logger.Error("Table rendering failed: %v", err)
		os.Exit(1)
	}
}

func runReport(prompter *input.Prompter, cfg *config.Config, logger *utils.Logger) {
	params, err := prompter.ReportParams()
	if err != nil {
		fmt.Println(err)
		return
	}

	vacancies, ok := loadVacancies(params.FilePath, logger)
	if !ok {
		return
	}

	aggregator := services.NewAggregator(services.DefaultCurrencyTable(), logger)
	report, err := aggregator.BuildReport(vacancies, params.Profession)
	if errors.Is(err, models.ErrEmptyDataset) {
		fmt.Println("Нет данных")
		return
	}
	if err != nil {
		logger.Error("Aggregation failed: %v", err)
		os.Exit(1)
	}

	printStats(report)

	xlsxWriter, err := storage.NewXLSXWriter(cfg.XLSXOutputPath, logger)
	if err != nil {
		logger.Error("XLSX writer: %v", err)
		os.Exit(1)
	}
	chartWriter, err := storage.NewChartWriter(cfg.ChartOutputDir, logger)
	if err != nil {
		logger.Error("Chart writer: %v", err)
		os.Exit(1)
	}
	pdfWriter, err := storage.NewPDFWriter(
		storage.PDFOptions{
			HTMLPath:  cfg.HTMLOutputPath,
			PDFPath:   cfg.PDFOutputPath,
			ChromeBin: cfg.ChromeBin,
			Timeout:   time.Duration(cfg.PDFTimeoutSec) * time.Second,
		},
		&utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: logger},
		logger,
	)
	if err != nil {
		logger.Error("PDF writer: %v", err)
		os.Exit(1)
	}

	for _, writer := range []storage.ReportWriter{xlsxWriter, chartWriter, pdfWriter} {
		if err := writer.Write(report); err != nil {
			logger.Error("Report output failed: %v", err)
			os.Exit(1)
		}
	}

	fmt.Printf("  Done. XLSX → %s | Charts → %s | PDF → %s\n\n",
		cfg.XLSXOutputPath, cfg.ChartOutputDir, cfg.PDFOutputPath)
}

func loadVacancies(path string, logger *utils.Logger) ([]*models.Vacancy, bool) {
	rows, err := storage.NewCSVReader(path).ReadAll()
	if err != nil {
		logger.Error("CSV read failed: %v", err)
		return nil, false
	}

	vacancies, err := services.NewNormalizer(logger).Normalize(rows)
	if err != nil {
		logger.Error("Normalization failed: %v", err)
		return nil, false
	}
	return vacancies, true
}

func printStats(r *models.StatsReport) {
	fmt.Println("Динамика уровня зарплат по годам:",
		yearLine(r.Years, func(s models.YearStat) int { return s.MeanSalary }))
	fmt.Println("Динамика количества вакансий по годам:",
		yearLine(r.Years, func(s models.YearStat) int { return s.Count }))
	fmt.Println("Динамика уровня зарплат по годам для выбранной профессии:",
		yearLine(r.ProfessionYears, func(s models.YearStat) int { return s.MeanSalary }))
	fmt.Println("Динамика количества вакансий по годам для выбранной профессии:",
		yearLine(r.ProfessionYears, func(s models.YearStat) int { return s.Count }))

	fmt.Println("Уровень зарплат по городам (в порядке убывания):",
		regionLine(r.TopSalaryRegions, func(s models.RegionStat) any { return s.MeanSalary }))
	fmt.Println("Доля вакансий по городам (в порядке убывания):",
		regionLine(r.TopShareRegions, func(s models.RegionStat) any { return s.Fraction }))
}

func yearLine(stats []models.YearStat, pick func(models.YearStat) int) string {
	parts := make([]string, 0, len(stats))
	for _, s := range stats {
		parts = append(parts, fmt.Sprintf("%d: %d", s.Year, pick(s)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func regionLine(stats []models.RegionStat, pick func(models.RegionStat) any) string {
	parts := make([]string, 0, len(stats))
	for _, s := range stats {
		parts = append(parts, fmt.Sprintf("%s: %v", s.Region, pick(s)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
