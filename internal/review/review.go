package review

// Review is a customer review as served by the commerce API.
type Review struct {
	ID            int     `json:"id"`
	ProductID     int     `json:"productId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail,omitempty"`
	Rating        int     `json:"rating"`
	Comment       string  `json:"comment,omitempty"`
	CreatedAt     *string `json:"createdAt,omitempty"`
}

// Stats is the aggregate returned by the review-stats endpoint.
type Stats struct {
	AverageRating float64 `json:"averageRating"`
	Count         int     `json:"count"`
}

// NewReview is the submission payload.
type NewReview struct {
	ProductID     int    `json:"productId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

func validateNewReview(r *NewReview) map[string]string {
	errs := map[string]string{}
	if r.CustomerName == "" {
		errs["customerName"] = "customerName is required"
	}
	if r.CustomerEmail == "" {
		errs["customerEmail"] = "customerEmail is required"
	}
	if r.Rating < 1 || r.Rating > 5 {
		errs["rating"] = "rating must be between 1 and 5"
	}
	return errs
}
