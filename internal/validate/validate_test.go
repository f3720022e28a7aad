package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	valid := []string{"shirt", "blue-shirt", "a1-b2-c3", "X", "123"}
	for _, s := range valid {
		assert.NoError(t, Slug(s), "slug %q", s)
	}

	invalid := []string{"", "blue shirt", `blue\shirt`, "blü", "shirt!", "a_b"}
	for _, s := range invalid {
		err := Slug(s)
		assert.Error(t, err, "slug %q", s)
		assert.Equal(t, "The slug is invalid!", err.Error())
	}

	// A slug of only hyphens has nothing left to match; it passes the
	// character check.
	assert.NoError(t, Slug("--"))
}

func TestPrice(t *testing.T) {
	assert.NoError(t, Price("priceAmount", nil))

	zero := 0.0
	assert.NoError(t, Price("priceAmount", &zero))

	positive := 19.99
	assert.NoError(t, Price("priceSaleAmount", &positive))

	negative := -0.01
	err := Price("priceAmount", &negative)
	assert.Error(t, err)
	assert.Equal(t, "The priceAmount must be a positive number or zero!", err.Error())

	err = Price("priceSaleAmount", &negative)
	assert.Equal(t, "The priceSaleAmount must be a positive number or zero!", err.Error())
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewError("Can not find this product!")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "Can not find this product!", ve.Message)
}
