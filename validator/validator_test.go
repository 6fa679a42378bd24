package validator

import (
	"net/http"
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectsOneErrorPerField(t *testing.T) {
	v := New(Data{Payload: map[string]any{"name": 42, "age": "old"}})
	v.Check(
		Field("name").From(Payload).IsString("name must be a string").IsLength(1, -1, "name must not be empty"),
		Field("age").From(Payload).IsNumber("age must be a number").IsInRange(0, 150, "age out of range"),
	)

	assert.False(t, v.Valid())
	errs := v.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, Error{From: "isString", Name: "name", Error: "name must be a string"}, errs[0])
	assert.Equal(t, Error{From: "isNumber", Name: "age", Error: "age must be a number"}, errs[1])
}

func TestShortCircuitsPerField(t *testing.T) {
	// A failed check stops evaluation of the same field's remaining checks,
	// so only one error is reported for it.
	v := New(Data{Payload: map[string]any{"name": 42}})
	v.Check(
		Field("name").From(Payload).
			IsString("not a string").
			IsLength(5, -1, "too short"),
	)

	require.Len(t, v.Errors(), 1)
	assert.Equal(t, "not a string", v.Errors()[0].Error)
}

func TestMandatoryAbsentFieldFails(t *testing.T) {
	v := New(Data{Payload: map[string]any{}})
	v.Check(Field("email").From(Payload).IsString("email must be a string"))

	assert.False(t, v.Valid())
}

func TestOptionalAbsentFieldSkips(t *testing.T) {
	v := New(Data{Payload: map[string]any{}})
	v.Check(Field("address").From(Payload).Optional().IsObject("address must be an object"))

	assert.True(t, v.Valid())
	assert.NotContains(t, v.Values(), "address")
}

func TestOptionalPresentFieldIsChecked(t *testing.T) {
	v := New(Data{Payload: map[string]any{"address": "not an object"}})
	v.Check(Field("address").From(Payload).Optional().IsObject("address must be an object"))

	assert.False(t, v.Valid())
}

func TestTrim(t *testing.T) {
	v := New(Data{Payload: map[string]any{"name": "  bear  "}})
	v.Check(Field("name").From(Payload).IsString("").Trim())

	assert.True(t, v.Valid())
	assert.Equal(t, "bear", v.String("name"))
}

func TestIsIn(t *testing.T) {
	sizes := []string{"small", "medium", "large"}

	v := New(Data{Payload: map[string]any{"size": "medium"}})
	v.Check(Field("size").From(Payload).IsIn(sizes, "bad size"))
	assert.True(t, v.Valid())

	v = New(Data{Payload: map[string]any{"size": "jumbo"}})
	v.Check(Field("size").From(Payload).IsIn(sizes, "bad size"))
	assert.False(t, v.Valid())
}

func TestIsLength(t *testing.T) {
	v := New(Data{Payload: map[string]any{"token": "abc", "items": []any{1, 2}}})
	v.Check(
		Field("token").From(Payload).IsLength(3, 3, "must be 3 chars"),
		Field("items").From(Payload).IsLength(1, -1, "must not be empty"),
	)
	assert.True(t, v.Valid())

	v = New(Data{Payload: map[string]any{"token": "abcd"}})
	v.Check(Field("token").From(Payload).IsLength(3, 3, "must be 3 chars"))
	assert.False(t, v.Valid())
}

func TestMatches(t *testing.T) {
	re := regexp.MustCompile(`^\d+$`)

	v := New(Data{Payload: map[string]any{"zip": "90210"}})
	v.Check(Field("zip").From(Payload).Matches(re, "digits only"))
	assert.True(t, v.Valid())

	v = New(Data{Payload: map[string]any{"zip": "ab"}})
	v.Check(Field("zip").From(Payload).Matches(re, "digits only"))
	assert.False(t, v.Valid())
}

func TestRangeCheckPassesNonNumbers(t *testing.T) {
	// IsInRange only constrains values that are actually numeric; the type
	// itself is IsNumber's job.
	v := New(Data{Payload: map[string]any{"month": "july"}})
	v.Check(Field("month").From(Payload).IsInRange(1, 12, "bad month"))

	assert.True(t, v.Valid())
}

func TestIsTrue(t *testing.T) {
	v := New(Data{Payload: map[string]any{"extend": true}})
	v.Check(Field("extend").From(Payload).IsBoolean("not a bool").IsTrue("must be true"))
	assert.True(t, v.Valid())

	v = New(Data{Payload: map[string]any{"extend": false}})
	v.Check(Field("extend").From(Payload).IsBoolean("not a bool").IsTrue("must be true"))
	assert.False(t, v.Valid())
}

func TestLiteralRulesStayOutOfValues(t *testing.T) {
	v := New(Data{Payload: map[string]any{}})
	v.Check(Field("item.id").Value("cheese-pizza").IsString("must be a string"))

	assert.True(t, v.Valid())
	assert.Empty(t, v.Values())
}

func TestValuesDeepCopy(t *testing.T) {
	v := New(Data{Payload: map[string]any{"address": map[string]any{"city": "Fresno"}}})
	v.Check(Field("address").From(Payload).IsObject(""))

	values := v.Values()
	values["address"].(map[string]any)["city"] = "mutated"

	again := v.Values()
	assert.Equal(t, "Fresno", again["address"].(map[string]any)["city"])
}

func TestHeaderAndQuerySources(t *testing.T) {
	headers := http.Header{}
	headers.Set("token", "abc123")
	query := url.Values{}
	query.Set("email", "a@b.com")

	v := New(Data{Headers: headers, Query: query})
	v.Check(
		Field("token").From(Headers).IsString(""),
		Field("email").From(Query).IsString(""),
	)

	assert.True(t, v.Valid())
	assert.Equal(t, "abc123", v.String("token"))
	assert.Equal(t, "a@b.com", v.String("email"))
}

func TestFailedFieldLeavesValues(t *testing.T) {
	v := New(Data{Payload: map[string]any{"name": "ok"}})
	v.Check(Field("name").From(Payload).IsString("").IsLength(10, -1, "too short"))

	assert.False(t, v.Valid())
	assert.NotContains(t, v.Values(), "name")
}
