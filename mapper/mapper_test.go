package mapper

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) Document {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var doc Document
	require.NoError(t, dec.Decode(&doc))
	return doc
}

var categoryMapping = Mapping{
	"id_":         Key("category_id"),
	"name":        Key("name"),
	"description": Key("description"),
}

func TestBuild_Category(t *testing.T) {
	doc := decode(t, `{"category_id": 1, "name": "Accommodation", "description": "From camping to luxury hotels"}`)

	rec := Build(categoryMapping, doc)

	require.Equal(t, 3, rec.Len())
	require.NotNil(t, rec.Int("id_"))
	assert.Equal(t, int64(1), *rec.Int("id_"))
	assert.Equal(t, "Accommodation", *rec.Str("name"))
	assert.Equal(t, "From camping to luxury hotels", *rec.Str("description"))
}

func TestBuild_FieldSetEqualsMappingKeys(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", `{}`},
		{"partial document", `{"name": "Food"}`},
		{"extra keys", `{"category_id": 2, "name": "Food", "description": "x", "extra": true}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := Build(categoryMapping, decode(t, tc.doc))
			assert.Equal(t, []string{"description", "id_", "name"}, rec.Names())
			assert.False(t, rec.Has("extra"))
		})
	}
}

func TestBuild_MissingKeysAreAbsent(t *testing.T) {
	rec := Build(categoryMapping, decode(t, `{"name": "Food"}`))

	_, ok := rec.Get("id_")
	assert.False(t, ok)
	assert.Nil(t, rec.Int("id_"))
	assert.Nil(t, rec.Str("description"))
	assert.Equal(t, "Food", *rec.Str("name"))
}

func TestBuild_NullIsPresent(t *testing.T) {
	rec := Build(categoryMapping, decode(t, `{"name": null}`))

	v, ok := rec.Get("name")
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Nil(t, rec.Str("name"))
	assert.NotEqual(t, rec.Field("name"), rec.Field("description"))
}

func TestBuild_NestedPath(t *testing.T) {
	m := Mapping{
		"currency": KeyPath("info", "currency_code"),
		"deep":     KeyPath("a", "b", "c"),
		"broken":   KeyPath("info", "currency_code", "more"),
		"missing":  KeyPath("info", "nope"),
	}
	doc := decode(t, `{"info": {"currency_code": "USD"}, "a": {"b": {"c": 3.5}}}`)

	rec := Build(m, doc)

	assert.Equal(t, "USD", *rec.Str("currency"))
	assert.Equal(t, 3.5, *rec.Float("deep"))
	_, ok := rec.Get("broken")
	assert.False(t, ok, "non-terminal key resolving to a scalar must be absent")
	_, ok = rec.Get("missing")
	assert.False(t, ok)
}

func TestBuild_NilDocument(t *testing.T) {
	rec := Build(categoryMapping, nil)
	assert.Equal(t, 3, rec.Len())
	for _, name := range rec.Names() {
		_, ok := rec.Get(name)
		assert.False(t, ok, name)
	}
}

func TestResolve(t *testing.T) {
	doc := map[string]any{"a": map[string]any{"b": "c"}, "list": []any{1}}

	v, ok := Resolve(doc, Key("a"))
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"b": "c"}, v)

	v, ok = Resolve(doc, KeyPath("a", "b"))
	assert.True(t, ok)
	assert.Equal(t, "c", v)

	_, ok = Resolve(doc, KeyPath("list", "0"))
	assert.False(t, ok)

	_, ok = Resolve(doc, nil)
	assert.False(t, ok)
}

func TestRecord_Coercion(t *testing.T) {
	m := Mapping{
		"int_str":   Key("i"),
		"float_str": Key("f"),
		"whole":     Key("w"),
		"frac":      Key("fr"),
		"flag":      Key("b"),
		"flag_str":  Key("bs"),
	}
	rec := Build(m, decode(t, `{"i": " 42 ", "f": "1.25", "w": 7.0, "fr": 7.5, "b": true, "bs": "false"}`))

	assert.Equal(t, int64(42), *rec.Int("int_str"))
	assert.Equal(t, 1.25, *rec.Float("float_str"))
	assert.Equal(t, int64(7), *rec.Int("whole"))
	assert.Nil(t, rec.Int("frac"))
	assert.Equal(t, "7.5", *rec.Str("frac"))
	assert.True(t, *rec.Bool("flag"))
	assert.False(t, *rec.Bool("flag_str"))
	assert.Nil(t, rec.Bool("frac"))
}

func TestRecord_Equal(t *testing.T) {
	a := Build(categoryMapping, decode(t, `{"category_id": 1, "name": "Accommodation"}`))
	b := Build(categoryMapping, decode(t, `{"name": "Accommodation", "category_id": 1, "ignored": 1}`))
	c := Build(categoryMapping, decode(t, `{"category_id": 1, "name": "Accommodation", "description": null}`))
	d := Build(Mapping{"name": Key("name")}, decode(t, `{"name": "Accommodation"}`))

	e := Build(categoryMapping, decode(t, `{"category_id": 1, "name": "Accommodation", "description": "x"}`))

	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(c), "null and absent both carry no value")
	assert.True(t, c.Equal(a))
	assert.False(t, a.Equal(e))
	assert.False(t, a.Equal(d), "different mapping key sets")
}

func TestRecord_StringIsDeterministic(t *testing.T) {
	rec := Build(categoryMapping, decode(t, `{"category_id": 1, "name": "Accommodation", "description": null}`))

	want := `{description: null, id_: 1, name: "Accommodation"}`
	for i := 0; i < 5; i++ {
		assert.Equal(t, want, rec.String())
	}

	absent := Build(categoryMapping, decode(t, `{}`))
	assert.Equal(t, `{description: <absent>, id_: <absent>, name: <absent>}`, absent.String())
}

func TestRecord_MarshalJSON(t *testing.T) {
	rec := Build(categoryMapping, decode(t, `{"category_id": 1, "name": "Accommodation"}`))

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"description": null, "id_": 1, "name": "Accommodation"}`, string(out))
}

func TestMapping_Validate(t *testing.T) {
	assert.NoError(t, categoryMapping.Validate())
	assert.Error(t, Mapping{"x": Path{}}.Validate())
	assert.Error(t, Mapping{"x": KeyPath("a", "")}.Validate())
	assert.Error(t, Mapping{"": Key("a")}.Validate())
}

func TestPath_String(t *testing.T) {
	assert.Equal(t, "info.currency_code", KeyPath("info", "currency_code").String())
	assert.Equal(t, "name", Key("name").String())
}
