package checkout

import "errors"

var ErrEmptyCart = errors.New("cart is empty")

// CustomerForm is the contact block of the checkout form. Everything but
// the location is required; format checking beyond presence stays in the
// browser's input types.
type CustomerForm struct {
	CustomerName     string `json:"customerName"`
	CustomerEmail    string `json:"customerEmail"`
	CustomerPhone    string `json:"customerPhone"`
	CustomerAddress  string `json:"customerAddress"`
	CustomerLocation string `json:"customerLocation,omitempty"`
}

func validateForm(f *CustomerForm) map[string]string {
	errs := map[string]string{}
	if f.CustomerName == "" {
		errs["customerName"] = "customerName is required"
	}
	if f.CustomerEmail == "" {
		errs["customerEmail"] = "customerEmail is required"
	}
	if f.CustomerPhone == "" {
		errs["customerPhone"] = "customerPhone is required"
	}
	if f.CustomerAddress == "" {
		errs["customerAddress"] = "customerAddress is required"
	}
	return errs
}

// orderItem and orderRequest mirror the orders endpoint contract.
type orderItem struct {
	Product struct {
		ID int `json:"id"`
	} `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type orderRequest struct {
	CustomerName     string      `json:"customerName"`
	CustomerEmail    string      `json:"customerEmail"`
	CustomerPhone    string      `json:"customerPhone"`
	CustomerAddress  string      `json:"customerAddress"`
	CustomerLocation string      `json:"customerLocation,omitempty"`
	Items            []orderItem `json:"items"`
}

type createdOrder struct {
	ID int `json:"id"`
}
