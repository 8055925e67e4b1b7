package conv

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tagly/format/text"
	"github.com/viant/xconv"
	"github.com/viant/xconv/enum"
	"github.com/viant/xconv/factory"
	"github.com/viant/xconv/internal/logging"
	"github.com/viant/xconv/payload"
)

type language int

const (
	java language = iota + 1
	scala
	kotlin
)

func (l language) String() string {
	switch l {
	case java:
		return "Java"
	case scala:
		return "Scala"
	case kotlin:
		return "Kotlin"
	}
	return ""
}

type series struct {
	values []int
}

func parseSeries(csv string) (series, error) {
	values, err := payload.Ints(csv)
	if err != nil {
		return series{}, err
	}
	return series{values: values}, nil
}

type word struct{ text string }

type record struct {
	Language  language
	Fallback  *language
	Series    series
	Points    *series
	Word      word `convert:"factory=upper"`
	Count     int
	Ratio     float64
	Title     string `format:"name=heading"`
	Skipped   string `convert:"-"`
	CreatedAt time.Time
	Invalid   string     `convert:"separator=;"`
	Expiry    time.Time  `format:"dateFormat=DD/MM/YYYY"`
	Audited   *time.Time `format:"timeLayout=2006.01.02"`
	secret    series
}

func newConverter(t testing.TB, opts ...Option) *Converter {
	languageType, err := enum.Of("Language", java, scala, kotlin)
	require.NoError(t, err)
	enums, err := enum.NewRegistry(languageType)
	require.NoError(t, err)

	b := factory.NewBuilder()
	factory.Register(b, "csv", parseSeries)
	factory.Register(b, "upper", func(s string) (word, error) { return word{text: strings.ToUpper(s)}, nil })
	factory.Register(b, "lower", func(s string) (word, error) { return word{text: strings.ToLower(s)}, nil })
	return NewConverter(enums, b.Build(), opts...)
}

func ptr(s string) *string {
	return &s
}

func TestConverter_Convert(t *testing.T) {
	converter := newConverter(t)
	kotlinValue := kotlin

	testCases := []struct {
		name     string
		token    *string
		dest     interface{}
		expected interface{}
	}{
		{"enum", ptr("Kotlin"), new(language), kotlin},
		{"enum absent", nil, new(language), language(0)},
		{"enum empty", ptr(""), new(language), language(0)},
		{"enum pointer", ptr("Kotlin"), new(*language), &kotlinValue},
		{"enum pointer empty", ptr(""), new(*language), (*language)(nil)},
		{"factory", ptr("1,2,3"), new(series), series{values: []int{1, 2, 3}}},
		{"factory pointer", ptr("4"), new(*series), &series{values: []int{4}}},
		{"factory absent", nil, new(series), series{}},
		{"string", ptr("hello"), new(string), "hello"},
		{"int", ptr("-12"), new(int), -12},
		{"int8", ptr("12"), new(int8), int8(12)},
		{"uint", ptr("12"), new(uint), uint(12)},
		{"float", ptr("1.5"), new(float64), 1.5},
		{"bool", ptr("true"), new(bool), true},
		{"bytes", ptr("abc"), new([]byte), []byte("abc")},
		{"string pointer", ptr("x"), new(*string), ptr("x")},
		{"time", ptr("2023-01-15T12:30:45Z"), new(time.Time), time.Date(2023, 1, 15, 12, 30, 45, 0, time.UTC)},
		{"time custom layout", ptr("2023-01-15 12:30:45.000"), new(time.Time), time.Date(2023, 1, 15, 12, 30, 45, 0, time.UTC)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := converter.Convert(tc.token, tc.dest)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, reflect.ValueOf(tc.dest).Elem().Interface())
		})
	}
}

func TestConverter_Convert_Errors(t *testing.T) {
	converter := newConverter(t)

	testCases := []struct {
		name     string
		token    *string
		dest     interface{}
		sentinel error
	}{
		{"invalid enum", ptr("kotlin"), new(language), xconv.ErrInvalidEnumValue},
		{"malformed payload", ptr("1,x,3"), new(series), xconv.ErrMalformedPayload},
		{"ambiguous", ptr("a"), new(word), xconv.ErrAmbiguousConverter},
		{"no converter", ptr("a"), new(struct{ A int }), xconv.ErrNoConverterFound},
		{"no converter map", ptr("a"), new(map[string]int), xconv.ErrNoConverterFound},
		{"int syntax", ptr("0x10"), new(int), xconv.ErrMalformedPayload},
		{"int range", ptr("300"), new(int8), strconv.ErrRange},
		{"bool", ptr("maybe"), new(bool), xconv.ErrMalformedPayload},
		{"time", ptr("yesterday"), new(time.Time), xconv.ErrMalformedPayload},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := reflect.ValueOf(tc.dest).Elem().Interface()
			err := converter.Convert(tc.token, tc.dest)
			assert.ErrorIs(t, err, tc.sentinel)
			assert.Equal(t, before, reflect.ValueOf(tc.dest).Elem().Interface(), "destination must stay untouched")
		})
	}
}

func TestConverter_Convert_Destination(t *testing.T) {
	converter := newConverter(t)
	var nilPtr *int
	assert.EqualError(t, converter.Convert(ptr("1"), nil), "destination cannot be nil")
	assert.EqualError(t, converter.Convert(ptr("1"), 1), "destination must be a pointer")
	assert.EqualError(t, converter.Convert(ptr("1"), nilPtr), "destination pointer cannot be nil")
}

func TestConverter_ConvertTo(t *testing.T) {
	converter := newConverter(t)

	value, err := converter.ConvertTo(ptr("Scala"), reflect.TypeOf(java))
	require.NoError(t, err)
	assert.Equal(t, scala, value)

	value, err = converter.ConvertTo(nil, reflect.TypeOf(series{}))
	require.NoError(t, err)
	assert.Nil(t, value)

	value, err = converter.ConvertTo(ptr("7,8"), reflect.TypeOf(series{}))
	require.NoError(t, err)
	assert.Equal(t, series{values: []int{7, 8}}, value)

	_, err = converter.ConvertTo(ptr("7"), nil)
	assert.Error(t, err)
}

func TestConverter_NilRegistries(t *testing.T) {
	converter := NewConverter(nil, nil)
	var count int
	require.NoError(t, converter.Convert(ptr("3"), &count))
	assert.Equal(t, 3, count)

	var value series
	assert.ErrorIs(t, converter.Convert(ptr("3"), &value), xconv.ErrNoConverterFound)
}

func TestConverter_BindField(t *testing.T) {
	converter := newConverter(t)
	kotlinValue := kotlin
	created := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	aRecord := &record{Skipped: "keep"}
	bindings := []struct {
		field string
		token *string
	}{
		{"Language", ptr("Java")},
		{"Fallback", ptr("Kotlin")},
		{"Series", ptr("1,2,3")},
		{"Points", ptr("")},
		{"Word", ptr("mixed")},
		{"Count", ptr("42")},
		{"Ratio", ptr("0.25")},
		{"Title", ptr("hello")},
		{"Skipped", ptr("ignored")},
		{"CreatedAt", ptr("2024-02-29")},
		{"Expiry", ptr("29/02/2024")},
		{"Audited", ptr("2024.02.29")},
		{"secret", ptr("-1,-2")},
	}
	for _, binding := range bindings {
		require.NoError(t, converter.BindField(aRecord, binding.field, binding.token), binding.field)
	}

	assert.Equal(t, &record{
		Language:  java,
		Fallback:  &kotlinValue,
		Series:    series{values: []int{1, 2, 3}},
		Points:    &series{values: []int{}},
		Word:      word{text: "MIXED"},
		Count:     42,
		Ratio:     0.25,
		Title:     "hello",
		Skipped:   "keep",
		CreatedAt: created,
		Expiry:    created,
		Audited:   &created,
		secret:    series{values: []int{-1, -2}},
	}, aRecord)
}

func TestConverter_BindField_Errors(t *testing.T) {
	converter := newConverter(t)
	aRecord := &record{}

	err := converter.BindField(aRecord, "Language", ptr("Cobol"))
	require.ErrorIs(t, err, xconv.ErrInvalidEnumValue)
	assert.Contains(t, err.Error(), "field language:")

	err = converter.BindField(aRecord, "Series", ptr("1,x"))
	require.ErrorIs(t, err, xconv.ErrMalformedPayload)
	var malformed *xconv.MalformedPayloadError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 1, malformed.Index)
	assert.Equal(t, "x", malformed.Substring)

	err = converter.BindField(aRecord, "Title", ptr("x"))
	require.NoError(t, err)

	err = converter.BindField(aRecord, "Missing", ptr("x"))
	assert.ErrorContains(t, err, "failed to lookup field Missing")

	err = converter.BindField(aRecord, "Invalid", ptr("x"))
	assert.ErrorContains(t, err, "unknown key")

	err = converter.BindField(*aRecord, "Count", ptr("1"))
	assert.ErrorContains(t, err, "holder must be a non nil struct pointer")

	assert.Equal(t, record{Title: "x"}, *aRecord)
}

func TestConverter_BindField_NamedFactoryMissing(t *testing.T) {
	type holder struct {
		Series series `convert:"factory=tsv"`
	}
	converter := newConverter(t)
	err := converter.BindField(&holder{}, "Series", ptr("1"))
	assert.ErrorIs(t, err, xconv.ErrNoConverterFound)
}

func TestConverter_FieldName(t *testing.T) {
	recordType := reflect.TypeOf(record{})
	testCases := []struct {
		name       string
		field      string
		caseFormat text.CaseFormat
		expected   string
	}{
		{"lower camel", "CreatedAt", text.CaseFormatLowerCamel, "createdAt"},
		{"lower underscore", "CreatedAt", text.CaseFormatLowerUnderscore, "created_at"},
		{"undefined keeps go name", "CreatedAt", text.CaseFormatUndefined, "CreatedAt"},
		{"format tag name", "Title", text.CaseFormatLowerUnderscore, "heading"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			converter := newConverter(t, WithCaseFormat(tc.caseFormat))
			field, ok := recordType.FieldByName(tc.field)
			require.True(t, ok)
			assert.Equal(t, tc.expected, converter.FieldName(field))
		})
	}
}

func TestConverter_Options(t *testing.T) {
	buffer := &bytes.Buffer{}
	type holder struct {
		Series series `conv:"factory=csv"`
		Stamp  time.Time
	}
	converter := newConverter(t,
		WithTagName("conv"),
		WithDateLayout("02/01/2006"),
		WithLogger(logging.NewWithWriter(buffer, slog.LevelDebug)),
	)
	aHolder := &holder{}
	require.NoError(t, converter.BindField(aHolder, "Series", ptr("5")))
	require.NoError(t, converter.BindField(aHolder, "Stamp", ptr("15/01/2023")))
	assert.Equal(t, series{values: []int{5}}, aHolder.Series)
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), aHolder.Stamp)
	assert.Contains(t, buffer.String(), "route=factory")
	assert.Contains(t, buffer.String(), "route=primitive")
}

func TestConverter_BindField_FactoryOnEnum(t *testing.T) {
	type holder struct {
		Language language `convert:"factory=upper"`
	}
	converter := newConverter(t)
	aHolder := &holder{}
	err := converter.BindField(aHolder, "Language", ptr("Java"))
	assert.ErrorContains(t, err, `factory "upper" cannot be used with enum Language`)
	assert.Equal(t, language(0), aHolder.Language)
}
