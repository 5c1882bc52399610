package constant

import "loan-triage-be/pkg/classify"

// DefaultTaxonomy is the loan servicing request catalogue. Types without
// sub-types map to an empty list.
func DefaultTaxonomy() classify.Taxonomy {
	return classify.NewTaxonomy(
		classify.TaxonomyEntry{Type: "Adjustment"},
		classify.TaxonomyEntry{Type: "AU Transfer"},
		classify.TaxonomyEntry{Type: "Closing Notice", SubTypes: []string{"Reallocation Fees", "Amendment Fees", "Reallocation Principal"}},
		classify.TaxonomyEntry{Type: "Commitment Change", SubTypes: []string{"Cashless Roll", "Decrease", "Increase"}},
		classify.TaxonomyEntry{Type: "Fee Payment", SubTypes: []string{"Ongoing Fee", "Letter of Credit Fee"}},
		classify.TaxonomyEntry{Type: "Money Movement-Inbound", SubTypes: []string{"Principal", "Interest", "Principal+Interest", "Principal+Interest+Fee"}},
		classify.TaxonomyEntry{Type: "Money Movement-Outbound", SubTypes: []string{"Timebound", "Foreign Currency"}},
	)
}
