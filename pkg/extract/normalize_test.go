package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLowercasesAndCollapsesWhitespace(t *testing.T) {
	got := Normalize("  Hello   WORLD\n\tthis  is\r\na TEST  ")
	assert.Equal(t, "hello world this is a test", got)
}

func TestNormalizeStripsSpecialCharacters(t *testing.T) {
	got := Normalize("Fee: $1,200.50 (due 5/10) #urgent!")
	assert.Equal(t, "fee 1,200.50 due 510 urgent", got)
}

func TestNormalizeDecomposesAccents(t *testing.T) {
	// NFKD splits é into e + combining accent; the accent is then dropped
	// as a non-ASCII rune.
	got := Normalize("Café Crédit")
	assert.Equal(t, "cafe credit", got)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	once := Normalize("Wire $500 to ACME Corp., ref #123!")
	twice := Normalize(once)
	assert.Equal(t, once, twice)
}

func TestNormalizeEmptyInput(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   \n\t  "))
}
