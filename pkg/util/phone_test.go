package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "03132306429", NormalizePhone("0313-2306429"))
	assert.Equal(t, "03132306429", NormalizePhone("+92 313 2306429"))
	assert.Equal(t, "03132306429", NormalizePhone("92 313 2306429"))
	assert.Equal(t, "", NormalizePhone("no digits"))

	// Too short or long for a country-code form; digits pass through
	assert.Equal(t, "921234", NormalizePhone("921234"))
}

func TestSamePhone(t *testing.T) {
	assert.True(t, SamePhone("0313-2306429", "0313 2306429"))
	assert.True(t, SamePhone("+92 313 2306429", "03132306429"))
	assert.False(t, SamePhone("03132306429", "03132306428"))
}
