package banner

// Banner is one hero slide on the storefront landing page.
type Banner struct {
	ID    int     `json:"id"`
	Image string  `json:"image"`
	Link  *string `json:"link,omitempty"`
	Alt   *string `json:"alt,omitempty"`
}
