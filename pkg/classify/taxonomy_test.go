package classify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTaxonomy() Taxonomy {
	return NewTaxonomy(
		TaxonomyEntry{Type: "Adjustment"},
		TaxonomyEntry{Type: "Fee Payment", SubTypes: []string{"Ongoing Fee", "Letter of Credit Fee"}},
	)
}

func TestTaxonomyDumpPreservesDeclarationOrder(t *testing.T) {
	taxonomy := sampleTaxonomy()

	dump := taxonomy.Dump()
	assert.Equal(t, `{"Adjustment": [], "Fee Payment": ["Ongoing Fee","Letter of Credit Fee"]}`, dump)
}

func TestTaxonomyDumpIsValidJSON(t *testing.T) {
	taxonomy := sampleTaxonomy()

	var decoded map[string][]string
	require.NoError(t, json.Unmarshal([]byte(taxonomy.Dump()), &decoded))
	assert.Len(t, decoded, 2)
	assert.Empty(t, decoded["Adjustment"])
	assert.Equal(t, []string{"Ongoing Fee", "Letter of Credit Fee"}, decoded["Fee Payment"])
}

func TestTaxonomyDumpIsStable(t *testing.T) {
	taxonomy := sampleTaxonomy()

	first := taxonomy.Dump()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, taxonomy.Dump())
	}
}

func TestTaxonomyContains(t *testing.T) {
	taxonomy := sampleTaxonomy()

	assert.True(t, taxonomy.Contains("Adjustment"))
	assert.True(t, taxonomy.Contains("Fee Payment"))
	assert.False(t, taxonomy.Contains("Ongoing Fee"))
	assert.False(t, taxonomy.Contains("Unknown"))
}
