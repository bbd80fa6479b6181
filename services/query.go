package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"vacancy-reporter/models"
	"vacancy-reporter/utils"
)

// TableView is the render-ready result of a query: header labels and
// rows of display strings, row index first.
type TableView struct {
	Headers []string
	Rows    [][]string
}

// QueryEngine applies one filter predicate and one sort key to the full
// vacancy collection, then slices a page and a column subset.
//
// The pipeline is explicit and staged: Vacancy → FormattedVacancy →
// sort → filter → index → paginate → column subset. Filtering runs over
// the already-formatted representation, so filter values are compared
// against display text for display fields and against retained raw
// values for skills, salary bounds and the currency code.
type QueryEngine struct {
	formatter *Formatter
	rates     CurrencyTable
	logger    *utils.Logger
}

// NewQueryEngine creates a QueryEngine over the given conversion table.
func NewQueryEngine(formatter *Formatter, rates CurrencyTable, logger *utils.Logger) *QueryEngine {
	return &QueryEngine{formatter: formatter, rates: rates, logger: logger}
}

// Run executes the query. Configuration errors surface before any record
// is touched; an empty dataset and an empty filter result are reported
// as two distinct errors.
func (q *QueryEngine) Run(vacancies []*models.Vacancy, opts QueryOptions) (*TableView, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(vacancies) == 0 {
		return nil, models.ErrEmptyDataset
	}

	formatted := make([]*FormattedVacancy, 0, len(vacancies))
	for _, v := range vacancies {
		fv, err := q.formatter.Format(v, q.rates)
		if err != nil {
			return nil, err
		}
		formatted = append(formatted, fv)
	}

	if opts.Sort.Set {
		q.sortRecords(formatted, opts.Sort)
	}

	if opts.Filter.Set {
		kept, err := q.filterRecords(formatted, opts.Filter)
		if err != nil {
			return nil, err
		}
		formatted = kept
	}
	if len(formatted) == 0 {
		return nil, models.ErrEmptyResult
	}

	rows := make([][]string, 0, len(formatted))
	for i, fv := range formatted {
		rows = append(rows, buildRow(i+1, fv))
	}

	rows = paginate(rows, opts.Page)

	view := &TableView{Headers: headerLabels(), Rows: rows}
	if len(opts.Columns) > 0 {
		view = selectColumns(view, opts.Columns)
	}

	q.logger.Debug("[query] %d records after filter, %d rows rendered",
		len(formatted), len(view.Rows))
	return view, nil
}

func (q *QueryEngine) sortRecords(records []*FormattedVacancy, spec SortSpec) {
	less := func(a, b *FormattedVacancy) bool {
		switch spec.Field {
		case FieldSkills:
			return len(a.Skills) < len(b.Skills)
		case FieldSalary:
			return a.NormalizedSalary < b.NormalizedSalary
		case FieldExperience:
			return a.ExperienceRank < b.ExperienceRank
		case FieldDate:
			return a.PublishedAt.Before(b.PublishedAt)
		case FieldName:
			return a.Name < b.Name
		case FieldDescription:
			return a.Description < b.Description
		case FieldPremium:
			return a.Premium < b.Premium
		case FieldEmployer:
			return a.Employer < b.Employer
		case FieldRegion:
			return a.Region < b.Region
		case FieldCurrency:
			return a.CurrencyCode < b.CurrencyCode
		default:
			return false
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if spec.Descending {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}

func (q *QueryEngine) filterRecords(records []*FormattedVacancy, spec FilterSpec) ([]*FormattedVacancy, error) {
	match, err := predicate(spec)
	if err != nil {
		return nil, err
	}

	kept := make([]*FormattedVacancy, 0, len(records))
	for _, fv := range records {
		if match(fv) {
			kept = append(kept, fv)
		}
	}
	return kept, nil
}

// predicate builds the field-specific match function. Display fields
// compare for exact equality with the formatted value; skills use a
// subset test; salary is a bounds check; currency matches the raw code.
func predicate(spec FilterSpec) (func(*FormattedVacancy) bool, error) {
	switch spec.Field {
	case FieldSkills:
		wanted := strings.Split(spec.Value, ", ")
		return func(fv *FormattedVacancy) bool {
			have := make(map[string]struct{}, len(fv.Skills))
			for _, s := range fv.Skills {
				have[s] = struct{}{}
			}
			for _, w := range wanted {
				if _, ok := have[w]; !ok {
					return false
				}
			}
			return true
		}, nil

	case FieldSalary:
		value, err := strconv.Atoi(spec.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: Оклад %q", models.ErrInvalidConfig, spec.Value)
		}
		return func(fv *FormattedVacancy) bool {
			return fv.SalaryFrom <= value && value <= fv.SalaryTo
		}, nil

	case FieldCurrency:
		return func(fv *FormattedVacancy) bool {
			return fv.CurrencyCode == spec.Value
		}, nil

	default:
		accessor := displayAccessor(spec.Field)
		return func(fv *FormattedVacancy) bool {
			return accessor(fv) == spec.Value
		}, nil
	}
}

func displayAccessor(field FieldKey) func(*FormattedVacancy) string {
	switch field {
	case FieldName:
		return func(fv *FormattedVacancy) string { return fv.Name }
	case FieldDescription:
		return func(fv *FormattedVacancy) string { return fv.Description }
	case FieldExperience:
		return func(fv *FormattedVacancy) string { return fv.Experience }
	case FieldPremium:
		return func(fv *FormattedVacancy) string { return fv.Premium }
	case FieldEmployer:
		return func(fv *FormattedVacancy) string { return fv.Employer }
	case FieldSalary:
		return func(fv *FormattedVacancy) string { return fv.SalaryText }
	case FieldRegion:
		return func(fv *FormattedVacancy) string { return fv.Region }
	case FieldDate:
		return func(fv *FormattedVacancy) string { return fv.Date }
	default:
		return func(fv *FormattedVacancy) string { return "" }
	}
}

func headerLabels() []string {
	headers := make([]string, 0, len(fieldOrder)+1)
	headers = append(headers, "№")
	for _, key := range fieldOrder {
		headers = append(headers, key.Label())
	}
	return headers
}

func buildRow(index int, fv *FormattedVacancy) []string {
	cells := make([]string, 0, len(fieldOrder)+1)
	cells = append(cells, strconv.Itoa(index))
	for _, key := range fieldOrder {
		var cell string
		switch key {
		case FieldSkills:
			cell = strings.Join(fv.Skills, "\n")
		default:
			cell = displayAccessor(key)(fv)
		}
		cells = append(cells, TrimLong(cell))
	}
	return cells
}

// paginate slices rows using the 1-based inclusive-exclusive convention:
// start=1 end=11 keeps rows 1..10 in their current order.
func paginate(rows [][]string, page *PageRange) [][]string {
	if page == nil {
		return rows
	}

	start := page.Start - 1
	if start < 0 {
		start = 0
	}
	if start > len(rows) {
		start = len(rows)
	}

	end := len(rows)
	if page.End > 0 {
		end = page.End - 1
		if end > len(rows) {
			end = len(rows)
		}
		if end < start {
			end = start
		}
	}

	return rows[start:end]
}

// selectColumns keeps only the requested display columns, always
// preserving the row index. Unknown labels are ignored.
func selectColumns(view *TableView, labels []string) *TableView {
	wanted := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		wanted[l] = struct{}{}
	}

	keep := []int{0} // row index column survives every subset
	for i, header := range view.Headers[1:] {
		if _, ok := wanted[header]; ok {
			keep = append(keep, i+1)
		}
	}

	out := &TableView{Headers: make([]string, 0, len(keep))}
	for _, i := range keep {
		out.Headers = append(out.Headers, view.Headers[i])
	}
	for _, row := range view.Rows {
		cells := make([]string, 0, len(keep))
		for _, i := range keep {
			cells = append(cells, row[i])
		}
		out.Rows = append(out.Rows, cells)
	}
	return out
}
