package services

import (
	"fmt"

	"vacancy-reporter/models"
)

// FieldKey is the closed enumeration of queryable/sortable vacancy
// attributes. Dispatch tables over FieldKey replace name-based lookup so
// an unknown field fails once, up front, instead of at access time.
type FieldKey int

const (
	FieldName FieldKey = iota
	FieldDescription
	FieldSkills
	FieldExperience
	FieldPremium
	FieldEmployer
	FieldSalary
	FieldRegion
	FieldDate
	FieldCurrency
)

// fieldOrder is the display column order of the console table.
// FieldCurrency is filterable/sortable but never rendered as a column.
var fieldOrder = []FieldKey{
	FieldName, FieldDescription, FieldSkills, FieldExperience,
	FieldPremium, FieldEmployer, FieldSalary, FieldRegion, FieldDate,
}

var fieldLabels = map[FieldKey]string{
	FieldName:        "Название",
	FieldDescription: "Описание",
	FieldSkills:      "Навыки",
	FieldExperience:  "Опыт работы",
	FieldPremium:     "Премиум-вакансия",
	FieldEmployer:    "Компания",
	FieldSalary:      "Оклад",
	FieldRegion:      "Название региона",
	FieldDate:        "Дата публикации вакансии",
	FieldCurrency:    "Идентификатор валюты оклада",
}

// Label returns the localized display label of a field.
func (k FieldKey) Label() string {
	return fieldLabels[k]
}

// ParseFieldKey resolves a localized label to its FieldKey. The label
// vocabulary is closed; anything else is rejected before processing.
func ParseFieldKey(label string) (FieldKey, bool) {
	for key, l := range fieldLabels {
		if l == label {
			return key, true
		}
	}
	return 0, false
}

// FilterSpec is a single (field, value) predicate. Zero value means
// "no filtering".
type FilterSpec struct {
	Field FieldKey
	Value string
	Set   bool
}

// SortSpec names the sort field and direction. Zero value preserves
// input order.
type SortSpec struct {
	Field      FieldKey
	Descending bool
	Set        bool
}

// PageRange is a 1-based inclusive-exclusive display slice; End 0 means
// "to the end of the collection".
type PageRange struct {
	Start int
	End   int
}

// QueryOptions bundles everything the query engine needs beyond the
// record collection itself.
type QueryOptions struct {
	Filter  FilterSpec
	Sort    SortSpec
	Page    *PageRange
	Columns []string // display labels; nil means all columns
}

// Validate rejects options naming fields outside the closed vocabulary.
func (o QueryOptions) Validate() error {
	if o.Filter.Set {
		if _, ok := fieldLabels[o.Filter.Field]; !ok {
			return fmt.Errorf("%w: %d", models.ErrInvalidFilter, o.Filter.Field)
		}
	}
	if o.Sort.Set {
		if _, ok := fieldLabels[o.Sort.Field]; !ok {
			return fmt.Errorf("%w: %d", models.ErrInvalidSort, o.Sort.Field)
		}
	}
	return nil
}
