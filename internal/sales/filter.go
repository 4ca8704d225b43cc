package sales

import (
	"strconv"
	"strings"
)

// FilterSpec is the typed filter input for one request. The transport layer
// is responsible for turning raw query parameters into this shape; the
// compiler never sees request data.
type FilterSpec struct {
	Search         string
	Regions        []string
	Genders        []string
	AgeMin         *int
	AgeMax         *int
	Categories     []string
	Tags           []string
	PaymentMethods []string
	DateFrom       string
	DateTo         string
}

// Compile turns a FilterSpec into a Predicate. Pure function, no I/O.
//
// Search and tags each OR their alternatives internally, but when both are
// present the record must satisfy the search match AND at least one tag.
func Compile(spec FilterSpec) Predicate {
	var p Predicate

	if search := strings.TrimSpace(spec.Search); search != "" {
		p = p.And(anyOf{
			contains{column: "customer_name", needle: search},
			contains{column: "phone_number", needle: search},
		})
	}

	if len(spec.Regions) > 0 {
		p = p.And(inSet{column: "customer_region", values: spec.Regions})
	}
	if len(spec.Genders) > 0 {
		p = p.And(inSet{column: "gender", values: spec.Genders})
	}

	if spec.AgeMin != nil || spec.AgeMax != nil {
		age := rangeCond{column: "age"}
		if spec.AgeMin != nil {
			age.min = *spec.AgeMin
		}
		if spec.AgeMax != nil {
			age.max = *spec.AgeMax
		}
		p = p.And(age)
	}

	if len(spec.Categories) > 0 {
		p = p.And(inSet{column: "product_category", values: spec.Categories})
	}

	if len(spec.Tags) > 0 {
		group := make(anyOf, 0, len(spec.Tags))
		for _, tag := range spec.Tags {
			group = append(group, contains{column: "tags", needle: tag})
		}
		p = p.And(group)
	}

	if len(spec.PaymentMethods) > 0 {
		p = p.And(inSet{column: "payment_method", values: spec.PaymentMethods})
	}

	if spec.DateFrom != "" || spec.DateTo != "" {
		date := rangeCond{column: "date"}
		if spec.DateFrom != "" {
			date.min = spec.DateFrom
		}
		if spec.DateTo != "" {
			date.max = spec.DateTo
		}
		p = p.And(date)
	}

	return p
}

// CoerceInt parses raw as an integer, returning nil when it is empty or not
// numeric. Silent fallback to "no bound" is the documented contract for
// filter bounds; replace this helper to switch to strict validation without
// touching the compiler.
func CoerceInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

// CoerceIntDefault parses raw as an integer, substituting fallback when it
// is empty or not numeric. Used for page and limit.
func CoerceIntDefault(raw string, fallback int) int {
	if v := CoerceInt(raw); v != nil {
		return *v
	}
	return fallback
}
