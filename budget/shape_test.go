package budget

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/tripcost/mapper"
)

func TestDecodeShape_Bare(t *testing.T) {
	doc := mapper.Document{"country_code": "US", "info": nil}

	s := decodeShape(doc)
	assert.False(t, s.withCosts)
	assert.Nil(t, s.costs)
	assert.Equal(t, "US", s.fields["country_code"])
}

func TestDecodeShape_FalsyInfo(t *testing.T) {
	for _, info := range []any{nil, false, "", map[string]any{}, []any{}, json.Number("0")} {
		s := decodeShape(mapper.Document{"info": info, "costs": []any{map[string]any{}}})
		assert.False(t, s.withCosts, "info=%#v", info)
	}
}

func TestDecodeShape_InfoAndCosts(t *testing.T) {
	doc := mapper.Document{
		"info": map[string]any{"country_code": "US"},
		"costs": []any{
			map[string]any{"category_id": "1"},
			"junk",
			map[string]any{"category_id": "2"},
		},
	}

	s := decodeShape(doc)
	require.True(t, s.withCosts)
	assert.Equal(t, "US", s.fields["country_code"])
	require.Len(t, s.costs, 3)
	assert.Equal(t, "1", s.costs[0]["category_id"])
	assert.Empty(t, s.costs[1])
	assert.Equal(t, "2", s.costs[2]["category_id"])
}

func TestDecodeShape_MissingCosts(t *testing.T) {
	for _, costs := range []any{nil, "x", map[string]any{"a": 1}} {
		doc := mapper.Document{"info": map[string]any{"country_code": "US"}}
		if costs != nil {
			doc["costs"] = costs
		}
		s := decodeShape(doc)
		assert.True(t, s.withCosts)
		assert.NotNil(t, s.costs)
		assert.Empty(t, s.costs)
	}
}

func TestDecodeShape_NonObjectInfo(t *testing.T) {
	s := decodeShape(mapper.Document{"info": "yes", "costs": []any{}})
	assert.True(t, s.withCosts)
	assert.Nil(t, s.fields)

	country := NewCountry(mapper.Document{"info": []any{1}})
	assert.Nil(t, country.Code)
	assert.Equal(t, len(countryMapping), country.Record().Len())
	assert.NotNil(t, country.Costs)
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		v    any
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"0", true},
		{json.Number("0"), false},
		{json.Number("0.0"), false},
		{json.Number("12"), true},
		{0.0, false},
		{1.5, true},
		{0, false},
		{int64(3), true},
		{map[string]any{}, false},
		{map[string]any{"a": nil}, true},
		{[]any{}, false},
		{[]any{nil}, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truthy(tt.v), "truthy(%#v)", tt.v)
	}
}
