// Package smw normalizes the raw "browsebysubject" SMW payload into a flat
// list of (property, typed value) pairs.
package smw

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Value is the typed value of a single SMW property after transformation.
// Exactly one of these holds data; a property with no data items at all
// yields a Value with Null true.
type Value struct {
	Null   bool
	Scalar any   // string or float64
	List   []any // populated when the upstream property had >1 data item
}

// IsList reports whether this property's arity is list-shaped.
func (v Value) IsList() bool { return v.List != nil }

// Property is one normalized (name, value) pair.
type Property struct {
	Name  string
	Value Value
}

// rawPayload mirrors the action=browsebysubject response shape.
type rawPayload struct {
	Query struct {
		Subject string        `json:"subject"`
		Data    []rawProperty `json:"data"`
	} `json:"query"`
}

type rawProperty struct {
	Property string        `json:"property"`
	DataItem []rawDataItem `json:"dataitem"`
}

type rawDataItem struct {
	Type int             `json:"type"`
	Item json.RawMessage `json:"item"`
}

// Result is the outcome of transforming one browsebysubject payload.
type Result struct {
	Subject    string
	Properties []Property
}

// smwInternalPrefix strips the SMW internal subject/property prefix #0# or
// #10# that browsebysubject prepends to wikipage-typed values.
var smwInternalPrefix = buildPrefixStripper()

func buildPrefixStripper() func(string) string {
	// Matches "#0#" or "#10#" at the start of the string. Implemented
	// directly rather than via regexp since it's a two-alternative literal
	// prefix strip.
	return func(s string) string {
		switch {
		case strings.HasPrefix(s, "#10#"):
			return s[4:]
		case strings.HasPrefix(s, "#0#"):
			return s[3:]
		default:
			return s
		}
	}
}

// Transform converts a raw browsebysubject JSON body into a Result.
func Transform(body []byte) (Result, error) {
	var raw rawPayload
	if err := json.Unmarshal(body, &raw); err != nil {
		return Result{}, err
	}

	result := Result{Subject: smwInternalPrefix(raw.Query.Subject)}

	for _, prop := range raw.Query.Data {
		if strings.HasPrefix(prop.Property, "_") {
			continue // internal property, never surfaced to callers
		}

		scalars := make([]any, 0, len(prop.DataItem))
		for _, item := range prop.DataItem {
			scalars = append(scalars, typedItem(item))
		}

		var value Value
		switch len(scalars) {
		case 0:
			value = Value{Null: true}
		case 1:
			value = Value{Scalar: scalars[0]}
		default:
			value = Value{List: scalars}
		}

		result.Properties = append(result.Properties, Property{Name: prop.Property, Value: value})
	}

	return result, nil
}

// typedItem decodes one dataitem entry by its integer type tag:
// 1 -> number, 9 -> property (stripped string), 2/default -> raw string.
func typedItem(item rawDataItem) any {
	var raw string
	if err := json.Unmarshal(item.Item, &raw); err != nil {
		// Non-string item payload (shouldn't happen upstream); degrade to
		// the raw JSON text rather than erroring.
		raw = string(item.Item)
	}

	switch item.Type {
	case 1:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return raw
		}
		return f
	case 9:
		return smwInternalPrefix(raw)
	default:
		return raw
	}
}
