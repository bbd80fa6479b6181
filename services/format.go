package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"vacancy-reporter/models"
)

var tagRegexp = regexp.MustCompile(`<[^>]+>`)

// Formatter translates raw HH codes into display strings. The translation
// tables are explicit immutable values owned by the Formatter, not
// package globals.
type Formatter struct {
	currencyNames   map[string]string
	experienceNames map[string]string
	experienceRank  map[string]int
}

// NewFormatter creates a Formatter with the standard HH translations.
func NewFormatter() *Formatter {
	return &Formatter{
		currencyNames: map[string]string{
			"AZN": "Манаты",
			"BYR": "Белорусские рубли",
			"EUR": "Евро",
			"GEL": "Грузинский лари",
			"KGS": "Киргизский сом",
			"KZT": "Тенге",
			"RUR": "Рубли",
			"UAH": "Гривны",
			"USD": "Доллары",
			"UZS": "Узбекский сум",
		},
		experienceNames: map[string]string{
			"noExperience": "Нет опыта",
			"between1And3": "От 1 года до 3 лет",
			"between3And6": "От 3 до 6 лет",
			"moreThan6":    "Более 6 лет",
		},
		experienceRank: map[string]int{
			"noExperience": 0,
			"between1And3": 1,
			"between3And6": 2,
			"moreThan6":    3,
		},
	}
}

// CurrencyName translates a currency code to its display name.
func (f *Formatter) CurrencyName(code string) (string, error) {
	name, ok := f.currencyNames[code]
	if !ok {
		return "", fmt.Errorf("%w: %q", models.ErrUnknownCurrency, code)
	}
	return name, nil
}

// ExperienceName translates an experience code to its display name.
// Unknown codes pass through unchanged; the export only ever carries
// the four known ones.
func (f *Formatter) ExperienceName(code string) string {
	if name, ok := f.experienceNames[code]; ok {
		return name
	}
	return code
}

// ExperienceRank returns the ordinal position of an experience code.
func (f *Formatter) ExperienceRank(code string) int {
	return f.experienceRank[code]
}

// FormatBool renders a boolean as the localized Да/Нет token.
func FormatBool(value bool) string {
	if value {
		return "Да"
	}
	return "Нет"
}

// TaxText renders the gross flag as its tax-deduction phrase.
func TaxText(gross bool) string {
	if gross {
		return "Без вычета налогов"
	}
	return "С вычетом налогов"
}

// StripTags removes markup and collapses runs of whitespace.
func StripTags(text string) string {
	return strings.Join(strings.Fields(tagRegexp.ReplaceAllString(text, "")), " ")
}

// FormatDate renders a timestamp as dd.mm.yyyy.
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// GroupDigits inserts a space before the final three digits of a number
// string: "55000" → "55 000", "100" → "100".
func GroupDigits(number string) string {
	if len(number) <= 3 {
		return number
	}
	return number[:len(number)-3] + " " + number[len(number)-3:]
}

// FormatSalary assembles the salary column text:
// "10 000 - 20 000 (Рубли) (Без вычета налогов)".
func (f *Formatter) FormatSalary(s models.Salary) (string, error) {
	currency, err := f.CurrencyName(s.Currency)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s - %s (%s) (%s)",
		GroupDigits(strconv.Itoa(s.From)),
		GroupDigits(strconv.Itoa(s.To)),
		currency,
		TaxText(s.Gross),
	), nil
}

// TrimLong cuts display text to 100 runes, marking the cut with "...".
func TrimLong(text string) string {
	runes := []rune(text)
	if len(runes) > 100 {
		return string(runes[:100]) + "..."
	}
	return text
}

// FormattedVacancy is the display view of a Vacancy. Filtering, sorting
// and rendering all operate on this staged form; the raw values the
// field-specific comparators and predicates need are kept alongside the
// display strings instead of being overwritten in place.
type FormattedVacancy struct {
	Name        string
	Description string
	Skills      []string // joined with newlines only at render time
	Experience  string
	Premium     string
	Employer    string
	SalaryText  string
	Region      string
	Date        string

	SalaryFrom       int
	SalaryTo         int
	CurrencyCode     string
	NormalizedSalary int
	ExperienceRank   int
	PublishedAt      time.Time
}

// Format produces the display view of one vacancy. The result is
// deterministic: formatting the same record twice yields identical
// display strings.
func (f *Formatter) Format(v *models.Vacancy, rates CurrencyTable) (*FormattedVacancy, error) {
	salaryText, err := f.FormatSalary(v.Salary)
	if err != nil {
		return nil, err
	}
	normalized, err := rates.NormalizedSalary(v.Salary)
	if err != nil {
		return nil, err
	}

	return &FormattedVacancy{
		Name:        StripTags(v.Name),
		Description: StripTags(v.Description),
		Skills:      v.KeySkills,
		Experience:  f.ExperienceName(v.ExperienceID),
		Premium:     FormatBool(v.Premium),
		Employer:    v.Employer,
		SalaryText:  salaryText,
		Region:      v.Region,
		Date:        FormatDate(v.PublishedAt),

		SalaryFrom:       v.Salary.From,
		SalaryTo:         v.Salary.To,
		CurrencyCode:     v.Salary.Currency,
		NormalizedSalary: normalized,
		ExperienceRank:   f.ExperienceRank(v.ExperienceID),
		PublishedAt:      v.PublishedAt,
	}, nil
}
