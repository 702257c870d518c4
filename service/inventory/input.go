package inventory

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Field is a numeric form value that may arrive as a JSON number or a string.
// Empty means absent.
type Field string

func (f *Field) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*f = Field(strings.TrimSpace(str))
		return nil
	}
	*f = Field(s)
	return nil
}

// UnmarshalParam lets echo bind Field from form and query values.
func (f *Field) UnmarshalParam(param string) error {
	*f = Field(strings.TrimSpace(param))
	return nil
}

func (f Field) Empty() bool { return strings.TrimSpace(string(f)) == "" }

// parse returns nil for an empty field, and a ValidationError for anything
// that is not a finite, non-negative number.
func (f Field) parse(name string) (*float64, error) {
	s := strings.TrimSpace(string(f))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, invalid(name, "must be a valid number")
	}
	if v < 0 {
		return nil, invalid(name, "cannot be negative")
	}
	return &v, nil
}

// ItemInput is the operator-supplied form for creating or editing an item.
type ItemInput struct {
	Name             string `json:"name" form:"name"`
	Stock            Field  `json:"stock" form:"stock"`
	ReorderThreshold Field  `json:"reorder_threshold" form:"reorder_threshold"`
	ReorderQuantity  Field  `json:"reorder_quantity" form:"reorder_quantity"`
	Supplier         string `json:"supplier" form:"supplier"`
	IsMix            bool   `json:"is_mix" form:"is_mix"`
	// ConsumeSubcomponents names the subcomponents drawn down when a mix item's stock rises.
	ConsumeSubcomponents []string `json:"consume_subcomponents" form:"consume_subcomponents"`
}

type itemValues struct {
	name      string
	stock     *float64
	threshold *float64
	quantity  *float64
	supplier  string
}

func (in ItemInput) validate() (*itemValues, error) {
	v := &itemValues{
		name:     strings.TrimSpace(in.Name),
		supplier: strings.TrimSpace(in.Supplier),
	}
	if v.name == "" {
		return nil, invalid("name", "cannot be empty")
	}
	var err error
	if v.stock, err = in.Stock.parse("stock"); err != nil {
		return nil, err
	}
	if v.threshold, err = in.ReorderThreshold.parse("reorder_threshold"); err != nil {
		return nil, err
	}
	if v.quantity, err = in.ReorderQuantity.parse("reorder_quantity"); err != nil {
		return nil, err
	}
	if v.supplier == "" {
		return nil, invalid("supplier", "cannot be empty")
	}
	return v, nil
}
