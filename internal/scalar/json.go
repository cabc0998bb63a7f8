package scalar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeJSONArray decodes a heterogeneous JSON array into scalars.
// Dispatch is on the first byte of each raw element:
//   - null    -> Null
//   - string  -> String
//   - number  -> Int when integral, Float otherwise
//   - bool, array, object -> Other (not convertible, engine falls back)
//
// This is the CLI's input surface; library callers construct scalars directly.
func DecodeJSONArray(data []byte) ([]Scalar, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("input is not a JSON array: %w", err)
	}

	out := make([]Scalar, len(raw))
	for i, elem := range raw {
		s, err := decodeJSONValue(elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

func decodeJSONValue(data []byte) (Scalar, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return String(s), nil

	case 'n':
		return Null{}, nil

	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return Other{Value: b}, nil

	case '[', '{':
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return Other{Value: v}, nil

	default:
		// Number. Use json.Number so integers survive at full precision.
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return nil, err
		}
		s := n.String()
		if !strings.ContainsAny(s, ".eE") {
			i, err := n.Int64()
			if err == nil {
				return Int(i), nil
			}
			// Integer literal outside int64: keep the float form so the
			// engine's overflow handling sees it.
		}
		f, err := n.Float64()
		if err != nil {
			return nil, err
		}
		return Float(f), nil
	}
}
