package jsonx

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

type typedValue struct {
	Type  string `json:"t"`
	Value any    `json:"v"`
}

// CompositeKey encodes an ordered list of values as a JSON array, usable as a map key.
// Every value is stored next to its Go type, so values that differ in type or order produce
// different keys even when their JSON forms match ([]byte("abc") and "YWJj" for example).
func CompositeKey(values ...any) (string, error) {
	typed := make([]typedValue, len(values))
	for i, v := range values {
		typed[i] = typedValue{Type: fmt.Sprintf("%T", v), Value: v}
	}

	data, err := json.Marshal(typed)
	if err != nil {
		return "", errors.WithMessage(err, "failed to encode composite key")
	}

	return string(data), nil
}
