package models

import (
	"sort"
	"strings"
)

// ValidationError collects client-side validation failures per field.
// It is returned before any request is sent.
type ValidationError struct {
	Fields map[string]string // поле -> причина
}

// Add записывает ошибку поля, первая причина побеждает
func (e *ValidationError) Add(field, reason string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = reason
	}
}

// Check adds err under field when err is not nil
func (e *ValidationError) Check(field string, err error) {
	if err != nil {
		e.Add(field, err.Error())
	}
}

// Err возвращает nil, если ошибок нет
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
