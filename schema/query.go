package schema

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListQuery is the normalized form of list query parameters after defaults
// have been applied.
type ListQuery struct {
	Page      int    `validate:"gte=1"`
	Limit     int    `validate:"gte=1,lte=100"`
	Search    string
	SortBy    string
	SortOrder string `validate:"oneof=asc desc"`
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// TotalPages computes ceil(total/limit) for the pagination envelope.
func (q ListQuery) TotalPages(total int64) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(q.Limit) - 1) / int64(q.Limit))
}

// ParseListQuery validates raw query values against the resource's sortable
// columns. Unknown parameters and malformed numbers are rejected rather than
// ignored. extraKeys lists resource-specific parameters that are allowed
// through without interpretation (e.g. "flat" on navigation lists).
func ParseListQuery(values url.Values, sortable []string, extraKeys ...string) (ListQuery, error) {
	allowed := map[string]bool{"page": true, "limit": true, "search": true, "sortBy": true, "sortOrder": true}
	for _, k := range extraKeys {
		allowed[k] = true
	}

	ve := &ValidationError{}
	for key := range values {
		if !allowed[key] {
			ve.Fields = append(ve.Fields, FieldError{
				Field:   key,
				Rule:    "unknown",
				Message: fmt.Sprintf("unknown query parameter %q", key),
			})
		}
	}

	q := ListQuery{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		Search:    values.Get("search"),
		SortBy:    "created_at",
		SortOrder: "desc",
	}

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			ve.Fields = append(ve.Fields, FieldError{Field: "page", Rule: "gte", Message: "page must be a positive integer"})
		} else {
			q.Page = n
		}
	}
	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxLimit {
			ve.Fields = append(ve.Fields, FieldError{Field: "limit", Rule: "lte", Message: fmt.Sprintf("limit must be between 1 and %d", MaxLimit)})
		} else {
			q.Limit = n
		}
	}
	if raw := values.Get("sortBy"); raw != "" {
		found := false
		for _, col := range sortable {
			if raw == col {
				found = true
				break
			}
		}
		if !found {
			ve.Fields = append(ve.Fields, FieldError{Field: "sortBy", Rule: "oneof", Message: fmt.Sprintf("sortBy must be one of %v", sortable)})
		} else {
			q.SortBy = raw
		}
	}
	if raw := values.Get("sortOrder"); raw != "" {
		if raw != "asc" && raw != "desc" {
			ve.Fields = append(ve.Fields, FieldError{Field: "sortOrder", Rule: "oneof", Message: "sortOrder must be asc or desc"})
		} else {
			q.SortOrder = raw
		}
	}

	if len(ve.Fields) > 0 {
		return q, ve
	}
	return q, nil
}
