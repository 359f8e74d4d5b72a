package category

// Category mirrors the {id, name} records of the categories endpoint.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
