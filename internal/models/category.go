package models

// Subcategory is a child entry of a catalog category.
type Subcategory struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Category represents a top-level catalog category with its subcategories.
type Category struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Image   string        `json:"image"`
	Subcats []Subcategory `json:"subcats"`
}
