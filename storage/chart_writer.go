package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"

	"vacancy-reporter/models"
	"vacancy-reporter/utils"
)

// ChartWriter renders the aggregate report as four PNG panels: salary by
// year, vacancy count by year (both overall vs profession), salary by
// top regions and a pie of region shares with the remainder slice.
type ChartWriter struct {
	dir    string
	logger *utils.Logger
}

// NewChartWriter creates a writer rendering into dir.
func NewChartWriter(dir string, logger *utils.Logger) (*ChartWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("chart: create output dir: %w", err)
	}
	return &ChartWriter{dir: dir, logger: logger}, nil
}

// Write renders all four panels.
func (w *ChartWriter) Write(report *models.StatsReport) error {
	panels := []struct {
		file  string
		build func() error
	}{
		{"salary_by_year.png", func() error {
			return w.yearBars("salary_by_year.png",
				"Уровень зарплат по годам", report,
				func(s models.YearStat) float64 { return float64(s.MeanSalary) })
		}},
		{"vacancies_by_year.png", func() error {
			return w.yearBars("vacancies_by_year.png",
				"Количество вакансий по годам", report,
				func(s models.YearStat) float64 { return float64(s.Count) })
		}},
		{"salary_by_city.png", func() error { return w.regionBars(report) }},
		{"city_share.png", func() error { return w.sharePie(report) }},
	}

	for _, p := range panels {
		if err := p.build(); err != nil {
			return fmt.Errorf("chart: %s: %w", p.file, err)
		}
	}

	w.logger.Info("[chart] %d panels rendered to %s", len(panels), w.dir)
	return nil
}

// yearBars draws paired bars per year: the overall value labelled with
// the year, the profession-restricted value unlabelled right next to it.
func (w *ChartWriter) yearBars(file, title string, report *models.StatsReport, pick func(models.YearStat) float64) error {
	overallStyle := chart.Style{FillColor: chart.ColorBlue, StrokeColor: chart.ColorBlue}
	professionStyle := chart.Style{FillColor: chart.ColorGreen, StrokeColor: chart.ColorGreen}

	bars := make([]chart.Value, 0, len(report.Years)*2)
	for i, year := range report.Years {
		bars = append(bars, chart.Value{
			Label: strconv.Itoa(year.Year),
			Value: pick(year),
			Style: overallStyle,
		})
		if i < len(report.ProfessionYears) {
			bars = append(bars, chart.Value{
				Label: " ",
				Value: pick(report.ProfessionYears[i]),
				Style: professionStyle,
			})
		}
	}

	return w.renderBars(file, title+" (синий: все, зелёный: "+report.Profession+")", bars, 16)
}

func (w *ChartWriter) regionBars(report *models.StatsReport) error {
	bars := make([]chart.Value, 0, len(report.TopSalaryRegions))
	for _, r := range report.TopSalaryRegions {
		bars = append(bars, chart.Value{
			Label: r.Region,
			Value: float64(r.MeanSalary),
		})
	}
	return w.renderBars("salary_by_city.png", "Уровень зарплат по городам", bars, 40)
}

func (w *ChartWriter) renderBars(file, title string, bars []chart.Value, barWidth int) error {
	if len(bars) == 0 {
		w.logger.Warn("[chart] No data for %s, skipping", file)
		return nil
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    1024,
		Height:   512,
		BarWidth: barWidth,
		Bars:     bars,
	}

	f, err := os.Create(filepath.Join(w.dir, file))
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}

func (w *ChartWriter) sharePie(report *models.StatsReport) error {
	if len(report.TopShareRegions) == 0 {
		w.logger.Warn("[chart] No data for city_share.png, skipping")
		return nil
	}

	values := make([]chart.Value, 0, len(report.TopShareRegions)+1)
	covered := 0.0
	for _, r := range report.TopShareRegions {
		values = append(values, chart.Value{Label: r.Region, Value: r.Fraction})
		covered += r.Fraction
	}
	if remainder := 1 - covered; remainder > 0 {
		values = append(values, chart.Value{Label: "Другие", Value: remainder})
	}

	graph := chart.PieChart{
		Title:  "Доля вакансий по городам",
		Width:  800,
		Height: 800,
		Values: values,
	}

	f, err := os.Create(filepath.Join(w.dir, "city_share.png"))
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}
