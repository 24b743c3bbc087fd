package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Lowercases(t *testing.T) {
	assert.Equal(t, "swiggy order 4521", Normalize("SWIGGY ORDER 4521"))
}

func TestNormalize_TrimsAndCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "atm wdl charge", Normalize("  ATM   WDL\tCHARGE  "))
}

func TestNormalize_StripsPunctuation(t *testing.T) {
	assert.Equal(t, "neft ref123 salary", Normalize("NEFT Ref/123, Salary!"))
}

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("  \t "))
	assert.Equal(t, "", Normalize("-/*!"))
}

func TestNormalize_Deterministic(t *testing.T) {
	in := " Some  MERCHANT*ref-99 "
	assert.Equal(t, Normalize(in), Normalize(in))
}
