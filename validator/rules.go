package validator

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strings"
)

// Rule describes how one field is located and checked. Rules are immutable
// descriptors: every chain call returns a new value, and nothing is
// evaluated until the rule is passed to Validator.Check.
type Rule struct {
	name      string
	source    Source
	literal   any
	isLiteral bool
	optional  bool
	checks    []check
}

type check struct {
	from string
	msg  string
	run  func(v any) (any, bool)
}

// Field starts a rule for the named field.
func Field(name string) Rule {
	return Rule{name: name}
}

// From binds the rule to a request data source. Exclusive of Value.
func (r Rule) From(s Source) Rule {
	r.source = s
	return r
}

// Value binds the rule to a literal value. Exclusive of From. Literal-bound
// rules contribute errors but never enter the sanitized value bag.
func (r Rule) Value(v any) Rule {
	r.literal = v
	r.isLiteral = true
	return r
}

// Optional marks the field as allowed to be absent. An absent optional field
// skips all checks and is omitted from the sanitized bag; a present one is
// still checked.
func (r Rule) Optional() Rule {
	r.optional = true
	return r
}

// IsString requires the value to be a string.
func (r Rule) IsString(msg string) Rule {
	return r.check("isString", msg, "is not a string", func(v any) (any, bool) {
		s, ok := v.(string)
		return s, ok
	})
}

// Trim trims surrounding whitespace from a string value. It never fails.
func (r Rule) Trim() Rule {
	return r.check("trim", "", "", func(v any) (any, bool) {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s), true
		}
		return v, true
	})
}

// IsNumber requires the value to be numeric. The value is narrowed to
// float64 for subsequent checks.
func (r Rule) IsNumber(msg string) Rule {
	return r.check("isNumber", msg, "is not a number", func(v any) (any, bool) {
		f, ok := toNumber(v)
		if !ok {
			return v, false
		}
		return f, true
	})
}

// IsInteger fails numeric values with a fractional part. Non-numeric values
// pass through untouched; pair with IsNumber to enforce the type.
func (r Rule) IsInteger(msg string) Rule {
	return r.check("isInteger", msg, "is not an integer", func(v any) (any, bool) {
		f, ok := toNumber(v)
		if !ok {
			return v, true
		}
		return f, math.Mod(f, 1) == 0
	})
}

// IsInRange bounds a numeric value inclusively. Non-numeric values pass
// through untouched.
func (r Rule) IsInRange(min, max float64, msg string) Rule {
	return r.check("isInRange", msg, "is out of range", func(v any) (any, bool) {
		f, ok := toNumber(v)
		if !ok {
			return v, true
		}
		return f, f >= min && f <= max
	})
}

// IsBoolean requires the value to be a boolean.
func (r Rule) IsBoolean(msg string) Rule {
	return r.check("isBoolean", msg, "is not a boolean", func(v any) (any, bool) {
		b, ok := v.(bool)
		return b, ok
	})
}

// IsTrue requires the value to be exactly true.
func (r Rule) IsTrue(msg string) Rule {
	return r.check("isTrue", msg, "is not true", func(v any) (any, bool) {
		b, ok := v.(bool)
		return v, ok && b
	})
}

// IsTruthy fails nil, false, empty strings, and zero numbers.
func (r Rule) IsTruthy(msg string) Rule {
	return r.check("isTruthy", msg, "is not truthy", func(v any) (any, bool) {
		switch t := v.(type) {
		case nil:
			return v, false
		case bool:
			return v, t
		case string:
			return v, t != ""
		default:
			if f, ok := toNumber(v); ok {
				return v, f != 0
			}
			return v, true
		}
	})
}

// IsObject requires the value to be an object (and not an array).
func (r Rule) IsObject(msg string) Rule {
	return r.check("isObject", msg, "is not an object", func(v any) (any, bool) {
		m, ok := v.(map[string]any)
		return m, ok
	})
}

// IsArray requires the value to be an array.
func (r Rule) IsArray(msg string) Rule {
	return r.check("isArray", msg, "is not an array", func(v any) (any, bool) {
		if v == nil {
			return v, false
		}
		k := reflect.TypeOf(v).Kind()
		return v, k == reflect.Slice || k == reflect.Array
	})
}

// IsLength bounds the length of a string or array value inclusively. A
// negative max means unbounded above. Other types pass through untouched.
func (r Rule) IsLength(min, max int, msg string) Rule {
	return r.check("isLength", msg, "is out of range", func(v any) (any, bool) {
		var n int
		switch t := v.(type) {
		case string:
			n = len(t)
		default:
			if v == nil || reflect.TypeOf(v).Kind() != reflect.Slice {
				return v, true
			}
			n = reflect.ValueOf(v).Len()
		}
		if n < min {
			return v, false
		}
		if max >= 0 && n > max {
			return v, false
		}
		return v, true
	})
}

// IsIn requires a string value to be a member of list.
func (r Rule) IsIn(list []string, msg string) Rule {
	return r.check("isIn", msg, "is not in list", func(v any) (any, bool) {
		s, ok := v.(string)
		if !ok {
			return v, false
		}
		for _, item := range list {
			if s == item {
				return s, true
			}
		}
		return v, false
	})
}

// Matches requires a string value to match expr. Non-string values pass
// through untouched; pair with IsString to enforce the type.
func (r Rule) Matches(expr *regexp.Regexp, msg string) Rule {
	return r.check("matches", msg, "does not match", func(v any) (any, bool) {
		s, ok := v.(string)
		if !ok {
			return v, true
		}
		return s, expr.MatchString(s)
	})
}

func (r Rule) check(from, msg, fallback string, run func(v any) (any, bool)) Rule {
	if msg == "" {
		msg = fallback
	}
	checks := make([]check, len(r.checks), len(r.checks)+1)
	copy(checks, r.checks)
	r.checks = append(checks, check{from: from, msg: msg, run: run})
	return r
}

func (r Rule) lookup(d Data) (any, bool) {
	if r.isLiteral {
		return r.literal, r.literal != nil
	}
	switch r.source {
	case Headers:
		if d.Headers == nil || len(d.Headers.Values(r.name)) == 0 {
			return nil, false
		}
		return d.Headers.Get(r.name), true
	case Query:
		if d.Query == nil || !d.Query.Has(r.name) {
			return nil, false
		}
		return d.Query.Get(r.name), true
	case Payload:
		if d.Payload == nil {
			return nil, false
		}
		v, ok := d.Payload[r.name]
		return v, ok
	}
	return nil, false
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
