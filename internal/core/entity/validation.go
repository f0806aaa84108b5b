package entity

import (
	"strings"

	"boxfactory/internal/core/apperror"
)

// Problems collects field-level validation messages so that every problem
// of a payload is reported at once.
type Problems struct {
	list []string
}

// Check records msg when ok is false.
func (p *Problems) Check(ok bool, msg string) {
	if !ok {
		p.list = append(p.list, msg)
	}
}

// Require records msg when value is blank.
func (p *Problems) Require(value, msg string) {
	p.Check(strings.TrimSpace(value) != "", msg)
}

// NonNegative records msg when v is below zero.
func (p *Problems) NonNegative(v float64, msg string) {
	p.Check(v >= 0, msg)
}

// OneOf records msg when value is not among allowed.
func (p *Problems) OneOf(value string, allowed []string, msg string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	p.list = append(p.list, msg)
}

// Add records msg unconditionally.
func (p *Problems) Add(msg string) {
	p.list = append(p.list, msg)
}

// Len returns the number of collected problems.
func (p *Problems) Len() int {
	return len(p.list)
}

// Err returns a validation AppError listing every problem, or nil.
func (p *Problems) Err() error {
	if len(p.list) == 0 {
		return nil
	}
	return apperror.NewValidationList(p.list)
}

// EnumMessage builds the "<Field> must be one of: a, b" message.
func EnumMessage(field string, allowed []string) string {
	return field + " must be one of: " + strings.Join(allowed, ", ")
}
