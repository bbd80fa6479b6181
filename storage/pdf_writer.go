package storage

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"vacancy-reporter/models"
	"vacancy-reporter/utils"
)

const reportTemplate = `<!doctype html>
<html lang="ru">
<head>
<meta charset="utf-8">
<style>
body { font-family: Verdana, sans-serif; }
h1 { text-align: center; font-size: 28px; }
table { border-collapse: collapse; margin: 0 auto 24px auto; }
th, td { border: 1px solid #000; padding: 4px 8px; font-size: 14px; }
th { font-weight: bold; }
</style>
</head>
<body>
<h1>Аналитика по зарплатам и городам для профессии {{.Profession}}</h1>

<h2>Статистика по годам</h2>
<table>
<tr><th>Год</th><th>Средняя зарплата</th><th>Средняя зарплата - {{.Profession}}</th>
<th>Количество вакансий</th><th>Количество вакансий - {{.Profession}}</th></tr>
{{range $i, $y := .Years}}{{$p := index $.ProfessionYears $i}}
<tr><td>{{$y.Year}}</td><td>{{$y.MeanSalary}}</td><td>{{$p.MeanSalary}}</td>
<td>{{$y.Count}}</td><td>{{$p.Count}}</td></tr>
{{end}}
</table>

<h2>Статистика по городам</h2>
<table>
<tr><th>Город</th><th>Уровень зарплат</th></tr>
{{range .TopSalaryRegions}}
<tr><td>{{.Region}}</td><td>{{.MeanSalary}}</td></tr>
{{end}}
</table>

<table>
<tr><th>Город</th><th>Доля вакансий</th></tr>
{{range .TopShareRegions}}
<tr><td>{{.Region}}</td><td>{{percent .Fraction}}</td></tr>
{{end}}
</table>
</body>
</html>
`

// PDFOptions configures the PDF rendering step.
type PDFOptions struct {
	HTMLPath  string
	PDFPath   string
	ChromeBin string
	Timeout   time.Duration
}

// PDFWriter renders the aggregate report as a PDF document: the HTML
// template is filled in, then printed through headless Chrome.
type PDFWriter struct {
	opts   PDFOptions
	tmpl   *template.Template
	retry  *utils.RetryConfig
	logger *utils.Logger
}

// NewPDFWriter creates a PDF writer. Intermediate directories for both
// the HTML and PDF outputs are created automatically.
func NewPDFWriter(opts PDFOptions, retry *utils.RetryConfig, logger *utils.Logger) (*PDFWriter, error) {
	for _, p := range []string{opts.HTMLPath, opts.PDFPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return nil, fmt.Errorf("pdf: create output dir: %w", err)
		}
	}

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"percent": func(fraction float64) string {
			return fmt.Sprintf("%.2f%%", fraction*100)
		},
	}).Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("pdf: parse template: %w", err)
	}

	return &PDFWriter{opts: opts, tmpl: tmpl, retry: retry, logger: logger}, nil
}

// Write fills the HTML template and prints it to PDF.
func (w *PDFWriter) Write(report *models.StatsReport) error {
	htmlFile, err := os.Create(w.opts.HTMLPath)
	if err != nil {
		return fmt.Errorf("pdf: create html %q: %w", w.opts.HTMLPath, err)
	}
	if err := w.tmpl.Execute(htmlFile, report); err != nil {
		_ = htmlFile.Close()
		return fmt.Errorf("pdf: render template: %w", err)
	}
	if err := htmlFile.Close(); err != nil {
		return fmt.Errorf("pdf: close html: %w", err)
	}

	data, err := w.printToPDF()
	if err != nil {
		return err
	}

	if err := os.WriteFile(w.opts.PDFPath, data, 0644); err != nil {
		return fmt.Errorf("pdf: write %q: %w", w.opts.PDFPath, err)
	}
	w.logger.Info("[pdf] Report saved to %s", w.opts.PDFPath)
	return nil
}

func (w *PDFWriter) printToPDF() ([]byte, error) {
	chromeBin := w.opts.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	w.logger.Debug("[pdf] Using browser binary: %s", chromeBin)

	htmlAbs, err := filepath.Abs(w.opts.HTMLPath)
	if err != nil {
		return nil, fmt.Errorf("pdf: resolve html path: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()

	var data []byte
	err = w.retry.Do("print-to-pdf", func() error {
		ctx, cancel := chromedp.NewContext(silentCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, w.opts.Timeout)
		defer cancelTimeout()

		return chromedp.Run(ctx,
			chromedp.Navigate("file://"+htmlAbs),
			chromedp.ActionFunc(func(ctx context.Context) error {
				buf, _, err := page.PrintToPDF().
					WithPrintBackground(true).
					Do(ctx)
				if err != nil {
					return fmt.Errorf("chromedp print: %w", err)
				}
				data = buf
				return nil
			}),
		)
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
