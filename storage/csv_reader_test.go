package storage

import (
	"errors"
	"strings"
	"testing"

	"vacancy-reporter/models"
)

const testHeader = "name,description,key_skills,experience_id,premium," +
	"employer_name,salary_from,salary_to,salary_gross,salary_currency," +
	"area_name,published_at"

func TestParseRowsMapsValuesByHeader(t *testing.T) {
	content := testHeader + "\n" +
		"Программист,Описание,Git,noExperience,False,Контур," +
		"35000.0,45000.0,True,RUR,Екатеринбург,2022-07-05T18:22:28+0300\n"

	rows, err := ParseRows(strings.NewReader(content))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	row := rows[0]
	if row["name"] != "Программист" {
		t.Errorf("name = %q", row["name"])
	}
	if row["salary_from"] != "35000.0" {
		t.Errorf("salary_from = %q", row["salary_from"])
	}
	if row["area_name"] != "Екатеринбург" {
		t.Errorf("area_name = %q", row["area_name"])
	}
}

func TestParseRowsStripsBOM(t *testing.T) {
	content := "\uFEFF" + testHeader + "\n" +
		"А,Б,Git,noExperience,False,Контур,1,2,True,RUR,Москва,2022-07-05T18:22:28+0300\n"

	rows, err := ParseRows(strings.NewReader(content))
	if err != nil {
		t.Fatalf("utf-8-sig header rejected: %v", err)
	}
	if rows[0]["name"] != "А" {
		t.Errorf("name = %q, BOM leaked into the first header field", rows[0]["name"])
	}
}

func TestParseRowsRejectsIncompleteHeader(t *testing.T) {
	content := "name,description,salary_from\nА,Б,100\n"

	_, err := ParseRows(strings.NewReader(content))
	if !errors.Is(err, models.ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput, got %v", err)
	}
}

func TestParseRowsRejectsEmptyInput(t *testing.T) {
	_, err := ParseRows(strings.NewReader(""))
	if !errors.Is(err, models.ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput, got %v", err)
	}
}

func TestParseRowsSkipsShortRecords(t *testing.T) {
	content := testHeader + "\n" +
		"А,Б,Git,noExperience,False,Контур,1,2,True,RUR,Москва,2022-07-05T18:22:28+0300\n" +
		"Обрезанная,строка\n" +
		"В,Г,Git,noExperience,False,Контур,3,4,True,RUR,Казань,2022-07-06T18:22:28+0300\n"

	rows, err := ParseRows(strings.NewReader(content))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (the short record is skipped)", len(rows))
	}
	if rows[1]["name"] != "В" {
		t.Errorf("second kept row is %q", rows[1]["name"])
	}
}

func TestParseRowsEmptyValuesKept(t *testing.T) {
	// value-level validation belongs to the normalizer; the reader keeps
	// rows with blank cells as long as the width matches
	content := testHeader + "\n" +
		"А,,Git,noExperience,False,Контур,1,2,True,RUR,Москва,2022-07-05T18:22:28+0300\n"

	rows, err := ParseRows(strings.NewReader(content))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0]["description"] != "" {
		t.Errorf("description = %q, want empty string preserved", rows[0]["description"])
	}
}
