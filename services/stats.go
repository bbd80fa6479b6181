package services

import (
	"math"
	"sort"
	"strings"

	"vacancy-reporter/models"
	"vacancy-reporter/utils"
)

// topRegions is how many regions each ranked view keeps.
const topRegions = 10

// Aggregator groups vacancies by publication year and by region and
// computes mean rouble salaries over the groups. One Aggregator serves
// both the tabular report and the chart/PDF path.
type Aggregator struct {
	rates  CurrencyTable
	logger *utils.Logger
}

// NewAggregator creates an Aggregator over the given conversion table.
func NewAggregator(rates CurrencyTable, logger *utils.Logger) *Aggregator {
	return &Aggregator{rates: rates, logger: logger}
}

// ByYear aggregates mean salary and count per publication year, in
// first-appearance year order.
//
// A non-empty titleFilter restricts the aggregation to vacancies whose
// name contains the substring (case-sensitive), but every year present
// in the full dataset still appears, with zero mean and zero count
// when nothing matched.
func (a *Aggregator) ByYear(vacancies []*models.Vacancy, titleFilter string) ([]models.YearStat, error) {
	salaries := make(map[int][]int)
	years := make([]int, 0)

	for _, v := range vacancies {
		year := v.PublishedAt.Year()
		if _, seen := salaries[year]; !seen {
			salaries[year] = nil
			years = append(years, year)
		}
		if titleFilter != "" && !strings.Contains(v.Name, titleFilter) {
			continue
		}
		normalized, err := a.rates.NormalizedSalary(v.Salary)
		if err != nil {
			return nil, err
		}
		salaries[year] = append(salaries[year], normalized)
	}

	stats := make([]models.YearStat, 0, len(years))
	for _, year := range years {
		stats = append(stats, models.YearStat{
			Year:       year,
			MeanSalary: mean(salaries[year]),
			Count:      len(salaries[year]),
		})
	}
	return stats, nil
}

// ByRegion aggregates mean salary and dataset share per region, drops
// regions below the one-percent representation threshold and returns two
// independently ranked top-10 views: by mean salary and by share, both
// descending. Ties keep first-appearance order (stable sort).
func (a *Aggregator) ByRegion(vacancies []*models.Vacancy) (bySalary, byShare []models.RegionStat, err error) {
	salaries := make(map[string][]int)
	regions := make([]string, 0)

	for _, v := range vacancies {
		if _, seen := salaries[v.Region]; !seen {
			regions = append(regions, v.Region)
		}
		normalized, err := a.rates.NormalizedSalary(v.Salary)
		if err != nil {
			return nil, nil, err
		}
		salaries[v.Region] = append(salaries[v.Region], normalized)
	}

	total := len(vacancies)
	threshold := total / 100

	stats := make([]models.RegionStat, 0, len(regions))
	for _, region := range regions {
		count := len(salaries[region])
		if count < threshold {
			continue
		}
		stats = append(stats, models.RegionStat{
			Region:     region,
			MeanSalary: mean(salaries[region]),
			Fraction:   round4(float64(count) / float64(total)),
		})
	}

	bySalary = append([]models.RegionStat(nil), stats...)
	sort.SliceStable(bySalary, func(i, j int) bool {
		return bySalary[i].MeanSalary > bySalary[j].MeanSalary
	})
	if len(bySalary) > topRegions {
		bySalary = bySalary[:topRegions]
	}

	byShare = append([]models.RegionStat(nil), stats...)
	sort.SliceStable(byShare, func(i, j int) bool {
		return byShare[i].Fraction > byShare[j].Fraction
	})
	if len(byShare) > topRegions {
		byShare = byShare[:topRegions]
	}

	a.logger.Debug("[stats] %d regions above threshold %d of %d total",
		len(stats), threshold, total)
	return bySalary, byShare, nil
}

// BuildReport runs both aggregations and assembles the report the
// XLSX/chart/PDF writers consume.
func (a *Aggregator) BuildReport(vacancies []*models.Vacancy, profession string) (*models.StatsReport, error) {
	if len(vacancies) == 0 {
		return nil, models.ErrEmptyDataset
	}

	years, err := a.ByYear(vacancies, "")
	if err != nil {
		return nil, err
	}
	professionYears, err := a.ByYear(vacancies, profession)
	if err != nil {
		return nil, err
	}
	topSalary, topShare, err := a.ByRegion(vacancies)
	if err != nil {
		return nil, err
	}

	return &models.StatsReport{
		Profession:       profession,
		TotalVacancies:   len(vacancies),
		Years:            years,
		ProfessionYears:  professionYears,
		TopSalaryRegions: topSalary,
		TopShareRegions:  topShare,
	}, nil
}

// mean is the floored average; an empty group has mean 0 by definition.
func mean(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Floor(float64(sum) / float64(len(values))))
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
