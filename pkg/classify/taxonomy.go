package classify

import (
	"encoding/json"
	"strings"
)

// Taxonomy is the closed set of request types the classifier may choose
// from. Order preserves the declaration order so prompt text stays stable
// across runs.
type Taxonomy struct {
	Order    []string
	SubTypes map[string][]string
}

// NewTaxonomy builds a Taxonomy from an ordered list of (type, subtypes)
// pairs.
func NewTaxonomy(pairs ...TaxonomyEntry) Taxonomy {
	t := Taxonomy{
		SubTypes: make(map[string][]string, len(pairs)),
	}
	for _, p := range pairs {
		t.Order = append(t.Order, p.Type)
		t.SubTypes[p.Type] = p.SubTypes
	}
	return t
}

type TaxonomyEntry struct {
	Type     string
	SubTypes []string
}

// Types returns the request types in declaration order.
func (t Taxonomy) Types() []string {
	return t.Order
}

// Contains reports whether requestType is part of the taxonomy.
func (t Taxonomy) Contains(requestType string) bool {
	_, ok := t.SubTypes[requestType]
	return ok
}

// Dump renders the taxonomy as a JSON dictionary string with keys in
// declaration order, suitable for embedding in a prompt.
func (t Taxonomy) Dump() string {
	var b strings.Builder
	b.WriteString("{")
	for i, requestType := range t.Order {
		if i > 0 {
			b.WriteString(", ")
		}
		key, _ := json.Marshal(requestType)
		b.Write(key)
		b.WriteString(": ")

		subTypes := t.SubTypes[requestType]
		if subTypes == nil {
			subTypes = []string{}
		}
		values, _ := json.Marshal(subTypes)
		b.Write(values)
	}
	b.WriteString("}")
	return b.String()
}
