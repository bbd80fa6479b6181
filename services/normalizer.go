package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"vacancy-reporter/models"
	"vacancy-reporter/utils"
)

const publishedAtLayout = "2006-01-02T15:04:05-0700"

// Normalizer turns raw CSV rows into typed Vacancy records.
//
// Row validity is all-or-nothing: a row with any empty field is dropped
// whole, silently. Only a schema-level defect (a required field missing
// from the row map itself) is an error.
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize converts rows into vacancies. An empty result is not an
// error: the caller decides whether "no data" is fatal.
func (n *Normalizer) Normalize(rows []models.RawRow) ([]*models.Vacancy, error) {
	vacancies := make([]*models.Vacancy, 0, len(rows))

	dropped := 0
	for _, row := range rows {
		complete := true
		for _, field := range models.RequiredFields {
			value, ok := row[field]
			if !ok {
				return nil, fmt.Errorf("%w: row is missing field %q", models.ErrMalformedInput, field)
			}
			if value == "" {
				complete = false
			}
		}
		if !complete {
			dropped++
			continue
		}

		vacancy, err := n.parseRow(row)
		if err != nil {
			n.logger.Debug("[normalizer] Dropping unparsable row: %v", err)
			dropped++
			continue
		}
		vacancies = append(vacancies, vacancy)
	}

	n.logger.Info("[normalizer] Normalized %d → %d vacancies (dropped %d)",
		len(rows), len(vacancies), dropped)
	return vacancies, nil
}

func (n *Normalizer) parseRow(row models.RawRow) (*models.Vacancy, error) {
	from, err := parseSalaryBound(row["salary_from"])
	if err != nil {
		return nil, fmt.Errorf("salary_from: %w", err)
	}
	to, err := parseSalaryBound(row["salary_to"])
	if err != nil {
		return nil, fmt.Errorf("salary_to: %w", err)
	}

	publishedAt, err := time.Parse(publishedAtLayout, row["published_at"])
	if err != nil {
		return nil, fmt.Errorf("published_at: %w", err)
	}

	return &models.Vacancy{
		Name:         row["name"],
		Description:  row["description"],
		KeySkills:    strings.Split(row["key_skills"], "\n"),
		ExperienceID: row["experience_id"],
		Premium:      row["premium"] == "True",
		Employer:     row["employer_name"],
		Salary: models.Salary{
			From:     from,
			To:       to,
			Gross:    row["salary_gross"] == "True",
			Currency: row["salary_currency"],
		},
		Region:      row["area_name"],
		PublishedAt: publishedAt,
	}, nil
}

// parseSalaryBound parses an integer bound, tolerating the ".0" suffix
// the export writes on whole decimals.
func parseSalaryBound(value string) (int, error) {
	return strconv.Atoi(strings.TrimSuffix(value, ".0"))
}
