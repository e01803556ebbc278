package model

// Category is a user-defined grouping for assets. Deleting a category nulls
// the reference on every asset that used it; it never cascades.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	SortOrder int    `json:"sortOrder"`
}
