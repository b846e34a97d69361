package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Field is one resolved attribute. Present is false when the source path
// could not be resolved; a JSON null that was present has Present true and a nil Value.
type Field struct {
	Value   any
	Present bool
}

// Record is the result of Build: exactly one Field per mapping entry.
// Records are immutable after construction.
type Record struct {
	fields map[string]Field
}

// Build resolves every entry of m against doc. It never fails: unresolvable
// paths produce absent fields.
func Build(m Mapping, doc Document) Record {
	fields := make(map[string]Field, len(m))
	for name, path := range m {
		v, ok := Resolve(doc, path)
		fields[name] = Field{Value: v, Present: ok}
	}
	return Record{fields: fields}
}

// Len returns the number of attributes in the record.
func (r Record) Len() int {
	return len(r.fields)
}

// Names returns the attribute names in sorted order.
func (r Record) Names() []string {
	names := make([]string, 0, len(r.fields))
	for k := range r.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is an attribute of the record, present or not.
func (r Record) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// Field returns the raw field for name. Unknown names are reported as absent.
func (r Record) Field(name string) Field {
	return r.fields[name]
}

// Get returns the value of name and whether it was present in the source document.
func (r Record) Get(name string) (any, bool) {
	f := r.fields[name]
	return f.Value, f.Present
}

// Str returns the attribute as a string, or nil when absent or null.
// Numbers are formatted without loss.
func (r Record) Str(name string) *string {
	v, ok := r.Get(name)
	if !ok || v == nil {
		return nil
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(t)
	default:
		s = fmt.Sprint(t)
	}
	return &s
}

// Int returns the attribute as an integer, or nil when absent, null or not integral.
func (r Record) Int(name string) *int64 {
	v, ok := r.Get(name)
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return &i
		}
		if f, err := t.Float64(); err == nil && f == float64(int64(f)) {
			i := int64(f)
			return &i
		}
	case float64:
		if t == float64(int64(t)) {
			i := int64(t)
			return &i
		}
	case int:
		i := int64(t)
		return &i
	case int64:
		return &t
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return &i
		}
	}
	return nil
}

// Float returns the attribute as a float, or nil when absent, null or not numeric.
func (r Record) Float(name string) *float64 {
	v, ok := r.Get(name)
	if !ok || v == nil {
		return nil
	}
	return ToFloat(v)
}

// Bool returns the attribute as a bool, or nil when absent, null or not boolean.
func (r Record) Bool(name string) *bool {
	v, ok := r.Get(name)
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case bool:
		return &t
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return &b
		}
	}
	return nil
}

// ToFloat converts a decoded JSON scalar to a float. Numeric strings are accepted.
func ToFloat(v any) *float64 {
	switch t := v.(type) {
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return &f
		}
	case float64:
		return &t
	case int:
		f := float64(t)
		return &f
	case int64:
		f := float64(t)
		return &f
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return &f
		}
	}
	return nil
}

// Equal reports whether both records declare the same attributes with the same values.
// An absent field equals a field present as JSON null; both carry no value.
func (r Record) Equal(other Record) bool {
	if len(r.fields) != len(other.fields) {
		return false
	}
	for name, f := range r.fields {
		o, ok := other.fields[name]
		if !ok {
			return false
		}
		if !reflect.DeepEqual(f.value(), o.value()) {
			return false
		}
	}
	return true
}

// value is the field's value, nil when absent.
func (f Field) value() any {
	if !f.Present {
		return nil
	}
	return f.Value
}

// String renders the record as {name: value, ...} sorted by attribute name.
// Absent attributes render as <absent>.
func (r Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range r.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		f := r.fields[name]
		switch {
		case !f.Present:
			b.WriteString("<absent>")
		case f.Value == nil:
			b.WriteString("null")
		default:
			if s, ok := f.Value.(string); ok {
				b.WriteString(strconv.Quote(s))
			} else {
				fmt.Fprint(&b, f.Value)
			}
		}
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON writes the record as an object with sorted keys. Absent fields are written as null.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.Names() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(r.fields[name].Value)
		if err != nil {
			return nil, fmt.Errorf("mapper: marshal %q: %w", name, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
