// Package dto provides Data Transfer Objects for API requests/responses.
//
// Request DTOs are explicit whitelists: create requests list the writable
// fields, update requests hold pointers so that only supplied fields are
// merged. Derived fields (totals, stock status, snapshots) have no DTO field.
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"boxfactory/internal/core/id"
	"boxfactory/internal/domain/pagination"
	"boxfactory/internal/domain/refs"
)

// --- Envelopes ---

// Response wraps a single record.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Deleted is the body returned after a delete.
func Deleted(resource string) Response {
	return Response{Success: true, Data: struct{}{}, Message: resource + " deleted successfully"}
}

// CountResponse wraps an unpaginated list.
type CountResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    any  `json:"data"`
}

// PaginationResponse contains pagination metadata.
type PaginationResponse struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// NewPaginationResponse converts a computed window.
func NewPaginationResponse(w pagination.Window) PaginationResponse {
	return PaginationResponse{
		Page:    w.CurrentPage,
		Limit:   w.PageSize,
		Total:   w.Total,
		Pages:   w.TotalPages,
		HasNext: w.HasNext,
		HasPrev: w.HasPrev,
	}
}

// ListResponse wraps one page of results. Count is the page size actually returned.
type ListResponse struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
	Count      int                `json:"count"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Error   string   `json:"error"`
	Errors  []string `json:"errors,omitempty"`
}

// --- Dates ---

// Date accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (UTC midnight).
type Date struct {
	time.Time
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			d.Time = t.UTC()
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// timeOf returns the zero time for a nil date.
func timeOf(d *Date) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}

// optionalTime returns nil for a nil or empty date.
func optionalTime(d *Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// --- References ---

// parseRef reads a required reference. Blank input yields the nil id, which
// field validation reports as missing. Malformed input cannot resolve and
// fails the same way a dangling reference does.
func parseRef(raw, kind, field string) (id.ID, error) {
	if strings.TrimSpace(raw) == "" {
		return id.Nil(), nil
	}
	parsed, err := id.Parse(raw)
	if err != nil {
		return id.Nil(), refs.NotFound(kind, field, raw)
	}
	return parsed, nil
}

// parseOptionalRef reads an optional reference; blank means absent.
func parseOptionalRef(raw, kind, field string) (*id.ID, error) {
	parsed, err := id.ParseOptional(raw)
	if err != nil {
		return nil, refs.NotFound(kind, field, raw)
	}
	return parsed, nil
}

// parseLineRef reads a reference held by a list entry.
func parseLineRef(raw, kind, field string) (id.ID, error) {
	if strings.TrimSpace(raw) == "" {
		return id.Nil(), nil
	}
	parsed, err := id.Parse(raw)
	if err != nil {
		return id.Nil(), refs.LineNotFound(kind, field, raw)
	}
	return parsed, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
