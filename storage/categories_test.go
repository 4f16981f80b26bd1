package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCategory(t *testing.T) {
	cases := map[string]string{
		"toilet":     "toilets-victoria",
		"toilets":    "toilets-victoria",
		"Toilets":    "toilets-victoria",
		" train ":    "trains-victoria",
		"trains":     "trains-victoria",
		"tram":       "trams-victoria",
		"trams":      "trams-victoria",
		"healthcare": "medical-victoria",
		"hospital":   "medical-victoria",
	}
	for category, want := range cases {
		got, ok := ResolveCategory(category)
		assert.True(t, ok, category)
		assert.Equal(t, want, got, category)
	}

	_, ok := ResolveCategory("airport")
	assert.False(t, ok)
}

func TestAliasesForCoverBothSpellings(t *testing.T) {
	assert.ElementsMatch(t, []string{"toilet", "toilets"}, AliasesFor("toilet"))
	assert.ElementsMatch(t, []string{"toilet", "toilets"}, AliasesFor("toilets"))
	assert.ElementsMatch(t, []string{"train", "trains"}, AliasesFor("train"))
	assert.Nil(t, AliasesFor("airport"))
}

func TestCategoryLabels(t *testing.T) {
	for _, collection := range CollectionNames() {
		assert.NotEqual(t, collection, CategoryLabel(collection))
	}
	assert.Equal(t, "healthcare", CategoryLabel("medical-victoria"))
}
