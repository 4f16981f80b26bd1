package storage

import "strings"

// Accessibility categories map to one backing collection each. Both the
// singular and plural spelling of a category resolve to the same
// collection, and stored documents may carry either spelling in
// Accessibility_Type_Name.
var categoryCollections = map[string]string{
	"healthcare": "medical-victoria",
	"hospital":   "medical-victoria",
	"hospitals":  "medical-victoria",
	"toilet":     "toilets-victoria",
	"toilets":    "toilets-victoria",
	"train":      "trains-victoria",
	"trains":     "trains-victoria",
	"tram":       "trams-victoria",
	"trams":      "trams-victoria",
}

// categoryAliases lists the equivalent spellings that may appear in stored
// records, keyed by collection name.
var categoryAliases = map[string][]string{
	"medical-victoria": {"healthcare", "hospital", "hospitals"},
	"toilets-victoria": {"toilet", "toilets"},
	"trains-victoria":  {"train", "trains"},
	"trams-victoria":   {"tram", "trams"},
}

// CollectionNames returns every category collection, one entry per backing
// collection.
func CollectionNames() []string {
	return []string{"toilets-victoria", "trains-victoria", "trams-victoria", "medical-victoria"}
}

// ResolveCategory maps a user-supplied accessibility type to its collection
// name. The second return is false for unknown categories.
func ResolveCategory(category string) (string, bool) {
	name, ok := categoryCollections[strings.ToLower(strings.TrimSpace(category))]
	return name, ok
}

// AliasesFor returns the spellings equivalent to the given category, for
// matching stored Accessibility_Type_Name values.
func AliasesFor(category string) []string {
	name, ok := ResolveCategory(category)
	if !ok {
		return nil
	}
	return categoryAliases[name]
}

// CategoryLabel returns the display label for a collection name.
func CategoryLabel(collection string) string {
	switch collection {
	case "medical-victoria":
		return "healthcare"
	case "toilets-victoria":
		return "toilets"
	case "trains-victoria":
		return "trains"
	case "trams-victoria":
		return "trams"
	}
	return collection
}
