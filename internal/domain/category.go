package domain

// Category is a single node of the marketplace taxonomy
type Category struct {
	ID   string `json:"id"`   // Taxonomy category id, e.g. "9355"
	Name string `json:"name"` // Display name, e.g. "Cell Phones & Smartphones"
	Leaf bool   `json:"leaf"` // True when the node has no children
}
