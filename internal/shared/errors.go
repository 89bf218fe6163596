package shared

import (
	"fmt"
	"sort"
	"strings"
)

// DenyReason tells the boundary layer why an operation was refused.
type DenyReason string

const (
	ReasonUnauthenticated   DenyReason = "unauthenticated"
	ReasonNotOwner          DenyReason = "not_owner"
	ReasonMissingPermission DenyReason = "missing_permission"
	ReasonWrongRole         DenyReason = "wrong_role"
)

// FieldError is a single field failure.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError collects every failing field of one payload.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Reason: reason}}}
}

func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// Has reports whether field failed.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Map returns field -> reason, keeping the first reason per field.
func (e *ValidationError) Map() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := out[f.Field]; !ok {
			out[f.Field] = f.Reason
		}
	}
	return out
}

// Sort orders fields by name so messages are stable.
func (e *ValidationError) Sort() {
	sort.SliceStable(e.Fields, func(i, j int) bool { return e.Fields[i].Field < e.Fields[j].Field })
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AuthDenied is returned when the access policy refuses an operation.
type AuthDenied struct {
	Reason DenyReason
}

func (e *AuthDenied) Error() string {
	return "access denied: " + string(e.Reason)
}

// NotFoundError reports a missing row of the given kind.
type NotFoundError struct {
	Kind Kind
	ID   any
}

func NewNotFound(kind Kind, id any) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Kind, e.ID)
}
