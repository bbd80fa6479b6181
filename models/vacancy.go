package models

import "time"

// RawRow holds one unparsed CSV line keyed by header field name.
// It is transient: rows are discarded once normalization has run.
type RawRow map[string]string

// RequiredFields is the exact HH.ru export schema the reader expects.
// A header missing any of these is a malformed input, not a bad row.
var RequiredFields = []string{
	"name", "description", "key_skills", "experience_id", "premium",
	"employer_name", "salary_from", "salary_to", "salary_gross",
	"salary_currency", "area_name", "published_at",
}

// Vacancy is the normalized, typed job-posting record.
// Currency and experience stay as raw HH codes; translation to display
// strings is the formatter's job, not the normalizer's.
type Vacancy struct {
	Name         string
	Description  string
	KeySkills    []string
	ExperienceID string
	Premium      bool
	Employer     string
	Salary       Salary
	Region       string
	PublishedAt  time.Time
}

// Salary is an inclusive salary range in a single currency.
// From ≤ To is deliberately not enforced: the export never guarantees
// it and inverted ranges pass through untouched.
type Salary struct {
	From     int
	To       int
	Gross    bool
	Currency string
}

// YearStat is one row of the per-year aggregate: mean rouble salary and
// vacancy count for a single publication year.
type YearStat struct {
	Year       int
	MeanSalary int
	Count      int
}

// RegionStat is one row of the per-region aggregate: mean rouble salary
// and the region's share of the whole dataset.
type RegionStat struct {
	Region     string
	MeanSalary int
	Fraction   float64
}

// StatsReport holds everything the XLSX/chart/PDF writers render.
type StatsReport struct {
	Profession      string
	TotalVacancies  int
	Years           []YearStat // all vacancies, first-appearance year order
	ProfessionYears []YearStat // same years, restricted to title matches
	TopSalaryRegions []RegionStat // top 10 by mean salary, descending
	TopShareRegions  []RegionStat // top 10 by share, descending
}
