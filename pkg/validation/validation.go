package validation

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
)

// TypeTag is the discriminator value carried by serialized results so a
// forwarded JSON response can be recognized and rehydrated into a Result.
const TypeTag = "ValidationResult"

var emailRe = regexp.MustCompile(`.*@.*\.\w+`)

// Item is the outcome of checking one field.
type Item struct {
	Field string `json:"field"`
	Value any    `json:"value"`
	Error string `json:"error,omitempty"`
}

// OK reports whether the field passed its check.
func (i Item) OK() bool {
	return i.Error == ""
}

// Result collects per-field validation outcomes.
type Result struct {
	Items []Item
}

// OK reports whether every field passed.
func (r *Result) OK() bool {
	for _, it := range r.Items {
		if !it.OK() {
			return false
		}
	}
	return true
}

// Field returns the item recorded for the given field name.
func (r *Result) Field(name string) (Item, bool) {
	for _, it := range r.Items {
		if it.Field == name {
			return it, true
		}
	}
	return Item{}, false
}

// Errors returns the messages of all failed checks, keyed by field.
func (r *Result) Errors() map[string]string {
	out := make(map[string]string)
	for _, it := range r.Items {
		if !it.OK() {
			out[it.Field] = it.Error
		}
	}
	return out
}

type resultWire struct {
	Type        string `json:"__type"`
	Validations []Item `json:"validations"`
}

// MarshalJSON emits the tagged wire format.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultWire{Type: TypeTag, Validations: r.Items})
}

// UnmarshalJSON accepts the tagged wire format.
func (r *Result) UnmarshalJSON(data []byte) error {
	var w resultWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.Items = w.Validations
	return nil
}

// IsResultPayload reports whether a decoded JSON value carries the Result
// discriminator.
func IsResultPayload(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	tag, _ := m["__type"].(string)
	_, hasItems := m["validations"]
	return tag == TypeTag && hasItems
}

// FromPayload rehydrates a decoded JSON value into a Result.
// Returns nil if the value does not carry the discriminator.
func FromPayload(v any) *Result {
	if !IsResultPayload(v) {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var r Result
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil
	}
	return &r
}

// Rule checks one field of a form-like value.
type Rule struct {
	Field string
	Check func(values url.Values) error
}

// Rules is an ordered set of field checks.
type Rules []Rule

// Check runs every rule against the values and records one item per rule.
func (rs Rules) Check(values url.Values) *Result {
	result := &Result{}
	for _, rule := range rs {
		item := Item{Field: rule.Field, Value: values.Get(rule.Field)}
		if err := rule.Check(values); err != nil {
			item.Error = err.Error()
		}
		result.Items = append(result.Items, item)
	}
	return result
}

// Required fails when the field is absent or empty.
func Required(field string) Rule {
	return Rule{Field: field, Check: func(values url.Values) error {
		if values.Get(field) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}}
}

// Email fails when a non-empty field does not look like an email address.
// An empty value passes; combine with Required when the field is mandatory.
func Email(field string) Rule {
	return Rule{Field: field, Check: func(values url.Values) error {
		v := values.Get(field)
		if v == "" || emailRe.MatchString(v) {
			return nil
		}
		return fmt.Errorf("%s should be valid email", field)
	}}
}

// MinLength fails when a non-empty field is shorter than n.
func MinLength(field string, n int) Rule {
	return Rule{Field: field, Check: func(values url.Values) error {
		v := values.Get(field)
		if v == "" || len(v) >= n {
			return nil
		}
		return fmt.Errorf("%s must be at least length %d", field, n)
	}}
}
