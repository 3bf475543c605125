package item

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var jsonNull = json.RawMessage("null")

// FieldJSON renders one stored field. An absent field yields nil, a BSON null
// yields JSON null, and anything else is passed through with its own type.
func FieldJSON(rv bson.RawValue) (json.RawMessage, error) {
	switch rv.Type {
	case 0:
		return nil, nil
	case bson.TypeNull, bson.TypeUndefined:
		return jsonNull, nil
	}
	var v interface{}
	if err := rv.Unmarshal(&v); err != nil {
		return nil, fmt.Errorf("decode %s field: %w", rv.Type, err)
	}
	out, err := json.Marshal(plain(v))
	if err != nil {
		return nil, fmt.Errorf("render %s field: %w", rv.Type, err)
	}
	return out, nil
}

// plain turns ordered BSON documents and arrays into JSON-friendly maps and slices.
func plain(v interface{}) interface{} {
	switch t := v.(type) {
	case primitive.D:
		m := make(map[string]interface{}, len(t))
		for _, e := range t {
			m[e.Key] = plain(e.Value)
		}
		return m
	case primitive.M:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[k] = plain(e)
		}
		return m
	case primitive.A:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	}
	return v
}
