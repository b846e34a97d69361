package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DataKey is the envelope field holding the payload.
const DataKey = "data"

// Reasons an envelope could not be unwrapped.
var (
	ErrNotJSON        = errors.New("response body is not valid JSON")
	ErrNotObject      = errors.New("response body is not a JSON object")
	ErrMissingPayload = errors.New("response body has no \"data\" field")
)

// Unwrap decodes body and returns the value under "data".
// Numbers decode as json.Number so integers and decimals survive unchanged.
// A present "data": null returns (nil, nil).
func Unwrap(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after value", ErrNotJSON)
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	data, ok := obj[DataKey]
	if !ok {
		return nil, ErrMissingPayload
	}
	return data, nil
}
