package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"vacancy-reporter/models"
	"vacancy-reporter/services"
)

// The five user-facing validation messages. Exactly one of them is
// printed per failed run, before any data processing starts.
const (
	MsgEmptyFile      = "Пустой файл"
	MsgBadFilterInput = "Формат ввода некорректен"
	MsgBadFilterField = "Параметр поиска некорректен"
	MsgBadSortField   = "Параметр сортировки некорректен"
	MsgBadReverseFlag = "Порядок сортировки задан некорректно"
)

// ValidationError carries the localized message for the terminal and a
// sentinel error for errors.Is branching.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Err }

// TableParams is the validated configuration of one table-mode run.
type TableParams struct {
	FilePath string
	Options  services.QueryOptions
}

// ReportParams is the configuration of one report-mode run.
type ReportParams struct {
	FilePath   string
	Profession string
}

// Prompter collects run parameters from a terminal. It reads from any
// io.Reader so tests can script the dialogue.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a Prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) ask(prompt string) string {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		return ""
	}
	return p.in.Text()
}

// TableParams runs the six table-mode prompts and validates the answers.
func (p *Prompter) TableParams() (*TableParams, error) {
	filePath := p.ask("Введите название файла: ")
	filterStr := p.ask("Введите параметр фильтрации: ")
	sortStr := p.ask("Введите параметр сортировки: ")
	reverseStr := p.ask("Обратный порядок сортировки (Да / Нет): ")
	pageStr := p.ask("Введите диапазон вывода: ")
	columnsStr := p.ask("Введите требуемые столбцы: ")

	return ParseTableParams(filePath, filterStr, sortStr, reverseStr, pageStr, columnsStr)
}

// ReportParams runs the two report-mode prompts.
func (p *Prompter) ReportParams() (*ReportParams, error) {
	params := &ReportParams{
		FilePath:   p.ask("Введите название файла: "),
		Profession: p.ask("Введите название профессии: "),
	}
	if err := checkFile(params.FilePath); err != nil {
		return nil, err
	}
	return params, nil
}

// ParseTableParams validates the raw prompt answers against the closed
// field vocabulary. Checks run in a fixed order and the first failure
// wins, so a run reports exactly one configuration error.
func ParseTableParams(filePath, filterStr, sortStr, reverseStr, pageStr, columnsStr string) (*TableParams, error) {
	if err := checkFile(filePath); err != nil {
		return nil, err
	}

	filter, err := parseFilter(filterStr)
	if err != nil {
		return nil, err
	}

	sortSpec := services.SortSpec{}
	if sortStr != "" {
		field, ok := services.ParseFieldKey(sortStr)
		if !ok {
			return nil, &ValidationError{Message: MsgBadSortField, Err: models.ErrInvalidSort}
		}
		sortSpec = services.SortSpec{Field: field, Set: true}
	}

	switch reverseStr {
	case "Да":
		sortSpec.Descending = true
	case "Нет", "":
	default:
		return nil, &ValidationError{Message: MsgBadReverseFlag, Err: models.ErrInvalidConfig}
	}

	page, err := parsePage(pageStr)
	if err != nil {
		return nil, err
	}

	var columns []string
	if columnsStr != "" {
		columns = strings.Split(columnsStr, ", ")
	}

	return &TableParams{
		FilePath: filePath,
		Options: services.QueryOptions{
			Filter:  filter,
			Sort:    sortSpec,
			Page:    page,
			Columns: columns,
		},
	}, nil
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("открыть файл: %w", err)
	}
	if info.Size() == 0 {
		return &ValidationError{Message: MsgEmptyFile, Err: models.ErrInvalidConfig}
	}
	return nil
}

func parseFilter(filterStr string) (services.FilterSpec, error) {
	if filterStr == "" {
		return services.FilterSpec{}, nil
	}
	if !strings.Contains(filterStr, ":") {
		return services.FilterSpec{}, &ValidationError{Message: MsgBadFilterInput, Err: models.ErrInvalidConfig}
	}

	label, value, _ := strings.Cut(filterStr, ": ")
	field, ok := services.ParseFieldKey(label)
	if !ok {
		return services.FilterSpec{}, &ValidationError{Message: MsgBadFilterField, Err: models.ErrInvalidFilter}
	}

	return services.FilterSpec{Field: field, Value: value, Set: true}, nil
}

// parsePage reads "start" or "start end" (1-based). Non-numeric tokens
// are reported as malformed input, like a broken filter string.
func parsePage(pageStr string) (*services.PageRange, error) {
	if pageStr == "" {
		return nil, nil
	}

	tokens := strings.Fields(pageStr)
	numbers := make([]int, 0, len(tokens))
	for _, t := range tokens {
		n, err := strconv.Atoi(t)
		if err != nil {
			return nil, &ValidationError{Message: MsgBadFilterInput, Err: models.ErrInvalidConfig}
		}
		numbers = append(numbers, n)
	}

	switch len(numbers) {
	case 1:
		return &services.PageRange{Start: numbers[0]}, nil
	case 2:
		return &services.PageRange{Start: numbers[0], End: numbers[1]}, nil
	default:
		return nil, &ValidationError{Message: MsgBadFilterInput, Err: models.ErrInvalidConfig}
	}
}
