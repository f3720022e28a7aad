package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequested(t *testing.T) {
	requested, desc := Requested([]string{"-priceSaleAmount", "name"}, "priceSaleAmount")
	assert.True(t, requested)
	assert.True(t, desc)

	requested, desc = Requested([]string{"priceSaleAmount"}, "priceSaleAmount")
	assert.True(t, requested)
	assert.False(t, desc)

	requested, _ = Requested([]string{"name"}, "priceSaleAmount")
	assert.False(t, requested)

	requested, desc = Requested([]string{" -sortKey "}, "sortKey")
	assert.True(t, requested)
	assert.True(t, desc)
}
