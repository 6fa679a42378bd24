// Package validator is a declarative request validation engine. Callers
// describe each field of interest as a chain of checks bound to a request
// source (headers, query, payload) or to a literal value; the validator
// evaluates the accumulated rules in one pass, collecting every failure and
// building a sanitized bag of the values that passed.
//
// Evaluation short-circuits per field: once a field fails a check, its
// remaining checks are skipped, but other fields are still evaluated, so a
// single request reports all of its field errors at once.
package validator

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// Source names a request data source a rule reads from.
type Source string

const (
	Headers Source = "headers"
	Query   Source = "query"
	Payload Source = "payload"
)

// Data carries the request-bound inputs for a validator.
type Data struct {
	Headers http.Header
	Query   url.Values
	Payload map[string]any
}

// Error is one accumulated validation failure.
type Error struct {
	From  string `json:"from"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

type Validator struct {
	data   Data
	values map[string]any
	errors []Error
}

// New creates a validator bound to the given request data.
func New(data Data) *Validator {
	return &Validator{data: data, values: map[string]any{}}
}

// Check evaluates the given rules in order, accumulating errors and
// sanitized values. It may be called more than once on the same validator.
func (v *Validator) Check(rules ...Rule) *Validator {
	for _, r := range rules {
		v.evaluate(r)
	}
	return v
}

// Valid reports whether no errors have accumulated.
func (v *Validator) Valid() bool {
	return len(v.errors) == 0
}

// Errors returns a copy of the accumulated error list. An empty list means
// validation passed.
func (v *Validator) Errors() []Error {
	return append([]Error(nil), v.errors...)
}

// Values returns a deep copy of the sanitized value bag. The bag holds only
// source-bound fields that passed every check.
func (v *Validator) Values() map[string]any {
	buf, err := json.Marshal(v.values)
	if err != nil {
		return map[string]any{}
	}
	out := map[string]any{}
	if err := json.Unmarshal(buf, &out); err != nil {
		return map[string]any{}
	}
	return out
}

// String returns a validated string field, or "" if absent.
func (v *Validator) String(name string) string {
	s, _ := v.values[name].(string)
	return s
}

// Number returns a validated numeric field, or 0 if absent.
func (v *Validator) Number(name string) float64 {
	n, _ := v.values[name].(float64)
	return n
}

// Bool returns a validated boolean field, or false if absent.
func (v *Validator) Bool(name string) bool {
	b, _ := v.values[name].(bool)
	return b
}

// Slice returns a validated array field, or nil if absent.
func (v *Validator) Slice(name string) []any {
	s, _ := v.values[name].([]any)
	return s
}

// Object returns a validated object field, or nil if absent.
func (v *Validator) Object(name string) map[string]any {
	m, _ := v.values[name].(map[string]any)
	return m
}

func (v *Validator) evaluate(r Rule) {
	value, present := r.lookup(v.data)

	// Optional fields are only validated when they are present.
	if !present {
		if r.optional {
			return
		}
	}

	cur := value
	for _, c := range r.checks {
		next, ok := c.run(cur)
		if !ok {
			v.errors = append(v.errors, Error{From: c.from, Name: r.name, Error: c.msg})
			delete(v.values, r.name)
			return
		}
		cur = next
	}

	// Literal values are validated but never enter the sanitized bag.
	if !r.isLiteral && present {
		v.values[r.name] = cur
	}
}
