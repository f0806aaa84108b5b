// Package filter describes list conditions shared by every repository
// implementation (Postgres and in-memory).
package filter

// ComparisonType enumerates the supported comparisons.
type ComparisonType string

const (
	Equal          ComparisonType = "eq"
	NotEqual       ComparisonType = "neq"
	LessOrEqual    ComparisonType = "lte"
	GreaterOrEqual ComparisonType = "gte"
	InList         ComparisonType = "in"       // Value is a slice
	Contains       ComparisonType = "contains" // case-insensitive substring (ILIKE %val%)
)

// Item is a single list condition.
type Item struct {
	Field    string         `json:"field"` // column name (snake_case)
	Operator ComparisonType `json:"operator"`
	Value    any            `json:"value"`
}

// Eq is shorthand for an equality condition.
func Eq(field string, value any) Item {
	return Item{Field: field, Operator: Equal, Value: value}
}
