package constant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTaxonomyTypes(t *testing.T) {
	taxonomy := DefaultTaxonomy()

	assert.Equal(t, []string{
		"Adjustment",
		"AU Transfer",
		"Closing Notice",
		"Commitment Change",
		"Fee Payment",
		"Money Movement-Inbound",
		"Money Movement-Outbound",
	}, taxonomy.Types())
}

func TestDefaultTaxonomySubTypes(t *testing.T) {
	taxonomy := DefaultTaxonomy()

	assert.Empty(t, taxonomy.SubTypes["Adjustment"])
	assert.Empty(t, taxonomy.SubTypes["AU Transfer"])
	assert.Equal(t, []string{"Reallocation Fees", "Amendment Fees", "Reallocation Principal"}, taxonomy.SubTypes["Closing Notice"])
	assert.Equal(t, []string{"Cashless Roll", "Decrease", "Increase"}, taxonomy.SubTypes["Commitment Change"])
	assert.Equal(t, []string{"Ongoing Fee", "Letter of Credit Fee"}, taxonomy.SubTypes["Fee Payment"])
	assert.Equal(t, []string{"Principal", "Interest", "Principal+Interest", "Principal+Interest+Fee"}, taxonomy.SubTypes["Money Movement-Inbound"])
	assert.Equal(t, []string{"Timebound", "Foreign Currency"}, taxonomy.SubTypes["Money Movement-Outbound"])
}

// The compound inbound sub-types are written without surrounding spaces;
// the prompt dump and stored labels must match deployments that already
// hold these exact strings.
func TestDefaultTaxonomyDumpUsesUnspacedCompoundSubTypes(t *testing.T) {
	dump := DefaultTaxonomy().Dump()

	require.Contains(t, dump, `"Principal+Interest"`)
	require.Contains(t, dump, `"Principal+Interest+Fee"`)
	assert.NotContains(t, dump, "Principal + Interest")
}
