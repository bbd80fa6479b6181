package services

import (
	"errors"
	"io"
	"testing"

	"vacancy-reporter/models"
	"vacancy-reporter/utils"
)

func testLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard) }

func sampleRow(overrides map[string]string) models.RawRow {
	row := models.RawRow{
		"name":            "Программист",
		"description":     "Удаленная работа",
		"key_skills":      "Git\nLinux",
		"experience_id":   "between3And6",
		"premium":         "True",
		"employer_name":   "Контур",
		"salary_from":     "50000.0",
		"salary_to":       "80000.0",
		"salary_gross":    "True",
		"salary_currency": "RUR",
		"area_name":       "Екатеринбург",
		"published_at":    "2022-07-05T18:22:28+0300",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func TestNormalizeParsesRow(t *testing.T) {
	n := NewNormalizer(testLogger())

	vacancies, err := n.Normalize([]models.RawRow{sampleRow(nil)})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(vacancies) != 1 {
		t.Fatalf("got %d vacancies, want 1", len(vacancies))
	}

	v := vacancies[0]
	if v.Name != "Программист" {
		t.Errorf("Name = %q", v.Name)
	}
	if len(v.KeySkills) != 2 || v.KeySkills[0] != "Git" || v.KeySkills[1] != "Linux" {
		t.Errorf("KeySkills = %v", v.KeySkills)
	}
	if v.Salary.From != 50000 || v.Salary.To != 80000 {
		t.Errorf("salary bounds = %d..%d, want 50000..80000 (\".0\" suffix stripped)",
			v.Salary.From, v.Salary.To)
	}
	if !v.Premium || !v.Salary.Gross {
		t.Error("premium/gross flags not parsed")
	}
	if v.ExperienceID != "between3And6" {
		t.Errorf("ExperienceID = %q (must stay a raw code)", v.ExperienceID)
	}
	if v.Salary.Currency != "RUR" {
		t.Errorf("Currency = %q (must stay a raw code)", v.Salary.Currency)
	}
	if v.PublishedAt.Year() != 2022 {
		t.Errorf("PublishedAt year = %d", v.PublishedAt.Year())
	}
}

func TestNormalizeDropsIncompleteRows(t *testing.T) {
	n := NewNormalizer(testLogger())

	rows := []models.RawRow{
		sampleRow(nil),
		sampleRow(map[string]string{"description": ""}), // one empty field kills the row
		sampleRow(map[string]string{"salary_to": ""}),
	}

	vacancies, err := n.Normalize(rows)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(vacancies) != 1 {
		t.Errorf("got %d vacancies, want 1, incomplete rows must be dropped whole", len(vacancies))
	}
	if len(vacancies) > len(rows) {
		t.Error("output longer than input")
	}
}

func TestNormalizeMissingSchemaFieldFails(t *testing.T) {
	n := NewNormalizer(testLogger())

	row := sampleRow(nil)
	delete(row, "published_at")

	_, err := n.Normalize([]models.RawRow{row})
	if !errors.Is(err, models.ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput for missing schema field, got %v", err)
	}
}

func TestNormalizeEmptyResultIsNotAnError(t *testing.T) {
	n := NewNormalizer(testLogger())

	vacancies, err := n.Normalize([]models.RawRow{
		sampleRow(map[string]string{"name": ""}),
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(vacancies) != 0 {
		t.Errorf("got %d vacancies, want 0", len(vacancies))
	}
}
