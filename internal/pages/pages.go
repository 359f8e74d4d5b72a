package pages

// Page is a static content page (about, contact). JSON tags use camelCase
// to match the frontend.
type Page struct {
	Slug       string   `json:"slug"`
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
	Contact    *Contact `json:"contact,omitempty"`
}

// Contact is the reach-us block shown on the contact page.
type Contact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Hours   string `json:"hours,omitempty"`
}
