package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValueKind discriminates the shapes an answer value can take on the wire.
type ValueKind int

const (
	ValueEmpty ValueKind = iota
	ValueString
	ValueNumber
	ValueBool
	ValueList
	ValueMap
)

// AnswerValue is the value of one answer entry. Respondents submit strings,
// numbers, booleans, option lists (multi-select) or row/column maps (matrix),
// and the original wire shape is preserved on re-encode.
type AnswerValue struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	List []string
	Map  map[string]string
}

func StringValue(s string) AnswerValue  { return AnswerValue{Kind: ValueString, Str: s} }
func NumberValue(n float64) AnswerValue { return AnswerValue{Kind: ValueNumber, Num: n} }
func ListValue(l ...string) AnswerValue { return AnswerValue{Kind: ValueList, List: l} }

// Float returns the numeric interpretation of the value, if it has one.
func (v AnswerValue) Float() (float64, bool) {
	switch v.Kind {
	case ValueNumber:
		return v.Num, true
	case ValueString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Display renders the value for text summaries and comparisons.
func (v AnswerValue) Display() string {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueList:
		return strings.Join(v.List, ", ")
	case ValueMap:
		keys := make([]string, 0, len(v.Map))
		for k := range v.Map {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+v.Map[k])
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

// Buckets returns the frequency-table keys this value contributes to. Lists
// contribute one key per selected option; matrix maps one per row.
func (v AnswerValue) Buckets() []string {
	switch v.Kind {
	case ValueString:
		if v.Str == "" {
			return nil
		}
		return []string{v.Str}
	case ValueNumber, ValueBool:
		return []string{v.Display()}
	case ValueList:
		return v.List
	case ValueMap:
		out := make([]string, 0, len(v.Map))
		for row, col := range v.Map {
			out = append(out, row+": "+col)
		}
		sort.Strings(out)
		return out
	}
	return nil
}

// IsEmpty reports whether the respondent effectively left the question blank.
func (v AnswerValue) IsEmpty() bool {
	switch v.Kind {
	case ValueEmpty:
		return true
	case ValueString:
		return strings.TrimSpace(v.Str) == ""
	case ValueList:
		return len(v.List) == 0
	case ValueMap:
		return len(v.Map) == 0
	}
	return false
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueString:
		return json.Marshal(v.Str)
	case ValueNumber:
		return json.Marshal(v.Num)
	case ValueBool:
		return json.Marshal(v.Bool)
	case ValueList:
		return json.Marshal(v.List)
	case ValueMap:
		return json.Marshal(v.Map)
	}
	return []byte("null"), nil
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*v = AnswerValue{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = AnswerValue{Kind: ValueString, Str: s}
	case '[':
		var raw []any
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*v = AnswerValue{Kind: ValueList, List: stringify(raw)}
	case '{':
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		m := make(map[string]string, len(raw))
		for k, e := range raw {
			m[k] = toString(e)
		}
		*v = AnswerValue{Kind: ValueMap, Map: m}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = AnswerValue{Kind: ValueBool, Bool: b}
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = AnswerValue{Kind: ValueNumber, Num: n}
	}
	return nil
}

func (v AnswerValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch v.Kind {
	case ValueString:
		return bson.MarshalValue(v.Str)
	case ValueNumber:
		return bson.MarshalValue(v.Num)
	case ValueBool:
		return bson.MarshalValue(v.Bool)
	case ValueList:
		return bson.MarshalValue(v.List)
	case ValueMap:
		return bson.MarshalValue(v.Map)
	}
	return bson.MarshalValue(primitive.Null{})
}

func (v *AnswerValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*v = AnswerValue{Kind: ValueString, Str: rv.StringValue()}
	case bsontype.Double:
		*v = AnswerValue{Kind: ValueNumber, Num: rv.Double()}
	case bsontype.Int32:
		*v = AnswerValue{Kind: ValueNumber, Num: float64(rv.Int32())}
	case bsontype.Int64:
		*v = AnswerValue{Kind: ValueNumber, Num: float64(rv.Int64())}
	case bsontype.Boolean:
		*v = AnswerValue{Kind: ValueBool, Bool: rv.Boolean()}
	case bsontype.Array:
		var raw []any
		if err := rv.Unmarshal(&raw); err != nil {
			return err
		}
		*v = AnswerValue{Kind: ValueList, List: stringify(raw)}
	case bsontype.EmbeddedDocument:
		var raw map[string]any
		if err := rv.Unmarshal(&raw); err != nil {
			return err
		}
		m := make(map[string]string, len(raw))
		for k, e := range raw {
			m[k] = toString(e)
		}
		*v = AnswerValue{Kind: ValueMap, Map: m}
	case bsontype.Null, bsontype.Undefined:
		*v = AnswerValue{}
	default:
		return fmt.Errorf("unsupported answer value type %s", t)
	}
	return nil
}

func stringify(raw []any) []string {
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		out = append(out, toString(e))
	}
	return out
}

func toString(e any) string {
	switch x := e.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
