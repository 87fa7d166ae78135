package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/CrestNiraj12/chirpterm/domain"
)

// decodeJSON decodes raw keeping numbers as json.Number so large ids and
// counters survive untouched. An empty body decodes to nil.
func decodeJSON(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return v, nil
}

// decodeObject decodes a single post, unwrapping one level of the given
// envelope keys when the top level does not look like a post itself.
func decodeObject(raw []byte, envelopes ...string) (domain.Payload, error) {
	v, err := decodeJSON(raw)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		if v == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding response: expected object, got %T", v)
	}
	if _, hasID := obj["id"]; !hasID {
		for _, key := range envelopes {
			if inner, ok := obj[key].(map[string]any); ok {
				return domain.Payload(inner), nil
			}
		}
	}
	return domain.Payload(obj), nil
}

// decodeList decodes a reply list sent as a bare array, as {"replies": [...]}
// or inside a "data" envelope holding either form.
func decodeList(raw []byte) ([]domain.Payload, error) {
	v, err := decodeJSON(raw)
	if err != nil {
		return nil, err
	}
	items, err := listFrom(v, 0)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Payload, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, domain.Payload(obj))
		}
	}
	return out, nil
}

func listFrom(v any, depth int) ([]any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return t, nil
	case map[string]any:
		if depth > 1 {
			break
		}
		for _, key := range []string{"replies", "data", "items"} {
			if inner, ok := t[key]; ok {
				return listFrom(inner, depth+1)
			}
		}
		return nil, nil
	}
	return nil, fmt.Errorf("decoding response: expected list, got %T", v)
}
