// Package domain holds the navigation page data model.
package domain

// Site is a single navigable entry on the page.
//
// Category references a category by its string value; the admin console keeps
// the reference consistent (it removes a category's sites when the category
// is deleted), the server stores what it is given.
type Site struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category"`
	// Icon is an optional markup snippet. When empty the page falls back to
	// a generic globe icon client-side.
	Icon string `json:"icon"`
}

// Data is the full navigation data set, replaced wholesale on every save.
type Data struct {
	Categories []string `json:"categories"`
	Sites      []Site   `json:"sites"`
}

// Empty returns a Data with non-nil, zero-length collections.
func Empty() Data {
	return Data{Categories: []string{}, Sites: []Site{}}
}
