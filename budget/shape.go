package budget

import (
	"encoding/json"

	"github.com/kbukum/tripcost/mapper"
)

// Keys of the combined info+costs payload returned by the costs endpoints.
const (
	infoKey  = "info"
	costsKey = "costs"
)

// shape is a resource document decoded once at the boundary. It is either a
// bare record, or an info document with an accompanying costs list.
type shape struct {
	fields    mapper.Document
	costs     []mapper.Document
	withCosts bool
}

// decodeShape selects the field source. When "info" is present and truthy the
// fields come from it and every element of "costs" becomes a cost document,
// with non-object elements kept as empty documents. Otherwise the document
// itself is the field source and there are no costs.
func decodeShape(doc mapper.Document) shape {
	info, ok := doc[infoKey]
	if !ok || !truthy(info) {
		return shape{fields: doc}
	}

	fields, _ := info.(map[string]any)
	s := shape{fields: fields, withCosts: true, costs: []mapper.Document{}}
	list, _ := doc[costsKey].([]any)
	for _, item := range list {
		costDoc, _ := item.(map[string]any)
		s.costs = append(s.costs, costDoc)
	}
	return s
}

// truthy reports whether a decoded JSON value carries data: null, false,
// zero, and empty strings, lists and objects do not.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return true
	}
}
