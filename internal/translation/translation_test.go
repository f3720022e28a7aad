package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequiresEveryLanguage(t *testing.T) {
	helper := Helper{Languages: []string{"en", "de"}, RequiredFields: []string{"name"}}

	ok, msg := helper.Validate("product", []Entry{
		{LanguageCode: "en", Fields: map[string]string{"name": "Shirt"}},
	})
	assert.False(t, ok)
	assert.Equal(t, "The product translation (de) is required!", msg)
}

func TestValidateRequiresFields(t *testing.T) {
	helper := Helper{Languages: []string{"en"}, RequiredFields: []string{"name"}}

	ok, msg := helper.Validate("productOption", []Entry{
		{LanguageCode: "en", Fields: map[string]string{"name": ""}},
	})
	assert.False(t, ok)
	assert.Equal(t, "The productOption translation (en) name is required!", msg)
}

func TestValidatePassesWithFullCoverage(t *testing.T) {
	helper := Helper{Languages: []string{"en", "de"}, RequiredFields: []string{"name"}}

	ok, msg := helper.Validate("product", []Entry{
		{LanguageCode: "en", Fields: map[string]string{"name": "Shirt"}},
		{LanguageCode: "de", Fields: map[string]string{"name": "Hemd"}},
		// Extra languages beyond the required set are allowed.
		{LanguageCode: "fr", Fields: map[string]string{"name": "Chemise"}},
	})
	assert.True(t, ok)
	assert.Empty(t, msg)
}
