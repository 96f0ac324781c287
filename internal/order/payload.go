package order

// Customer holds the contact details supplied with an order
type Customer struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	OrderDate string `json:"orderDate,omitempty"`
}

// LineItem represents a single item in an order
type LineItem struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  float64 `json:"quantity"`
}

// Payload represents a validated order submission.
// Only TaxPercent is taken from the client-supplied totals block.
type Payload struct {
	Customer   Customer   `json:"customer"`
	Items      []LineItem `json:"items"`
	TaxPercent float64    `json:"taxPercent"`
}
