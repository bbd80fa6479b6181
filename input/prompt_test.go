package input

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vacancy-reporter/models"
	"vacancy-reporter/services"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vacancies.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestParseTableParamsFull(t *testing.T) {
	path := writeTempCSV(t, "name,description\n")

	params, err := ParseTableParams(path,
		"Название: Программист",
		"Оклад",
		"Да",
		"10 20",
		"Название, Оклад")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	opts := params.Options
	if !opts.Filter.Set || opts.Filter.Field != services.FieldName || opts.Filter.Value != "Программист" {
		t.Errorf("filter = %+v", opts.Filter)
	}
	if !opts.Sort.Set || opts.Sort.Field != services.FieldSalary || !opts.Sort.Descending {
		t.Errorf("sort = %+v", opts.Sort)
	}
	if opts.Page == nil || opts.Page.Start != 10 || opts.Page.End != 20 {
		t.Errorf("page = %+v", opts.Page)
	}
	if len(opts.Columns) != 2 || opts.Columns[0] != "Название" || opts.Columns[1] != "Оклад" {
		t.Errorf("columns = %v", opts.Columns)
	}
}

func TestParseTableParamsAllBlank(t *testing.T) {
	path := writeTempCSV(t, "name\n")

	params, err := ParseTableParams(path, "", "", "", "", "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	opts := params.Options
	if opts.Filter.Set || opts.Sort.Set || opts.Page != nil || opts.Columns != nil {
		t.Errorf("blank answers must leave options zero, got %+v", opts)
	}
}

func TestParseTableParamsValidationMessages(t *testing.T) {
	path := writeTempCSV(t, "name\n")

	tests := []struct {
		name     string
		filter   string
		sort     string
		reverse  string
		page     string
		message  string
		sentinel error
	}{
		{
			name:     "filter without separator",
			filter:   "Оклад",
			message:  MsgBadFilterInput,
			sentinel: models.ErrInvalidConfig,
		},
		{
			name:     "unknown filter field",
			filter:   "Зарплата: 100",
			message:  MsgBadFilterField,
			sentinel: models.ErrInvalidFilter,
		},
		{
			name:     "unknown sort field",
			sort:     "Зарплата",
			message:  MsgBadSortField,
			sentinel: models.ErrInvalidSort,
		},
		{
			name:     "bad reverse token",
			sort:     "Оклад",
			reverse:  "да нет",
			message:  MsgBadReverseFlag,
			sentinel: models.ErrInvalidConfig,
		},
		{
			name:     "non-numeric page token",
			page:     "10 конец",
			message:  MsgBadFilterInput,
			sentinel: models.ErrInvalidConfig,
		},
		{
			name:     "too many page tokens",
			page:     "1 2 3",
			message:  MsgBadFilterInput,
			sentinel: models.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTableParams(path, tt.filter, tt.sort, tt.reverse, tt.page, "")
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if err.Error() != tt.message {
				t.Errorf("message = %q, want %q", err.Error(), tt.message)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error %v does not wrap %v", err, tt.sentinel)
			}
		})
	}
}

func TestParseTableParamsFirstFailureWins(t *testing.T) {
	path := writeTempCSV(t, "name\n")

	// both the filter and the sort field are broken; the filter check
	// runs first
	_, err := ParseTableParams(path, "Зарплата: 100", "Зарплата", "", "", "")
	if err == nil || err.Error() != MsgBadFilterField {
		t.Errorf("got %v, want %q", err, MsgBadFilterField)
	}
}

func TestCheckFileEmptyAndMissing(t *testing.T) {
	empty := writeTempCSV(t, "")

	_, err := ParseTableParams(empty, "", "", "", "", "")
	if err == nil || err.Error() != MsgEmptyFile {
		t.Errorf("empty file: got %v, want %q", err, MsgEmptyFile)
	}

	_, err = ParseTableParams(filepath.Join(t.TempDir(), "нет.csv"), "", "", "", "", "")
	if err == nil {
		t.Error("missing file must be an error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error %v does not wrap os.ErrNotExist", err)
	}
}

func TestParsePageSingleNumber(t *testing.T) {
	path := writeTempCSV(t, "name\n")

	params, err := ParseTableParams(path, "", "", "", "5", "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if params.Options.Page == nil || params.Options.Page.Start != 5 || params.Options.Page.End != 0 {
		t.Errorf("page = %+v, want start 5 open end", params.Options.Page)
	}
}

func TestPrompterScriptedDialogue(t *testing.T) {
	path := writeTempCSV(t, "name\n")

	script := strings.Join([]string{
		path,
		"Компания: Контур",
		"Дата публикации вакансии",
		"Нет",
		"1 11",
		"",
	}, "\n") + "\n"

	p := NewPrompter(strings.NewReader(script), io.Discard)
	params, err := p.TableParams()
	if err != nil {
		t.Fatalf("dialogue: %v", err)
	}

	if params.FilePath != path {
		t.Errorf("file path = %q", params.FilePath)
	}
	if params.Options.Filter.Field != services.FieldEmployer || params.Options.Filter.Value != "Контур" {
		t.Errorf("filter = %+v", params.Options.Filter)
	}
	if params.Options.Sort.Field != services.FieldDate || params.Options.Sort.Descending {
		t.Errorf("sort = %+v", params.Options.Sort)
	}
	if params.Options.Page == nil || params.Options.Page.Start != 1 || params.Options.Page.End != 11 {
		t.Errorf("page = %+v", params.Options.Page)
	}
}

func TestPrompterReportParams(t *testing.T) {
	path := writeTempCSV(t, "name\n")

	script := path + "\nПрограммист\n"
	p := NewPrompter(strings.NewReader(script), io.Discard)

	params, err := p.ReportParams()
	if err != nil {
		t.Fatalf("dialogue: %v", err)
	}
	if params.Profession != "Программист" {
		t.Errorf("profession = %q", params.Profession)
	}
}
