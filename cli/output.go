package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
	FormatDump = "dump"
)

func validateOutput(format string) error {
	switch format {
	case FormatJSON, FormatYAML, FormatText, FormatDump:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want json, yaml, text or dump)", format)
	}
}

// render writes v to w in format. A non-empty query is evaluated against the
// JSON form of v first, and its result is rendered instead.
func render(w io.Writer, v any, format, query string) error {
	if query = strings.TrimSpace(query); query != "" {
		selected, err := applyQuery(v, query)
		if err != nil {
			return err
		}
		v = selected
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatText:
		return renderText(w, v)
	case FormatDump:
		doc, err := generic(v)
		if err != nil {
			return err
		}
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
		cfg.Fdump(w, doc)
		return nil
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}
}

// generic returns the JSON form of v as maps, slices and scalars.
func generic(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding result: %w", err)
	}
	return doc, nil
}

// applyQuery evaluates a JSONPath expression over the JSON form of v.
func applyQuery(v any, query string) (any, error) {
	doc, err := generic(v)
	if err != nil {
		return nil, err
	}
	out, err := jsonpath.Get(query, doc)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", query, err)
	}
	return out, nil
}

// renderText writes records with their String form, one per line, and
// scalars as plain values. Anything else falls back to compact JSON.
func renderText(w io.Writer, v any) error {
	if s, ok := v.(fmt.Stringer); ok {
		_, err := fmt.Fprintln(w, s.String())
		return err
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Implements(reflect.TypeOf((*fmt.Stringer)(nil)).Elem()) {
		for i := 0; i < rv.Len(); i++ {
			if _, err := fmt.Fprintln(w, rv.Index(i).Interface().(fmt.Stringer).String()); err != nil {
				return err
			}
		}
		return nil
	}

	switch t := v.(type) {
	case string:
		_, err := fmt.Fprintln(w, t)
		return err
	case float64:
		_, err := fmt.Fprintln(w, strconv.FormatFloat(t, 'f', -1, 64))
		return err
	case bool:
		_, err := fmt.Fprintln(w, strconv.FormatBool(t))
		return err
	case []any:
		for _, item := range t {
			if err := renderText(w, item); err != nil {
				return err
			}
		}
		return nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}
