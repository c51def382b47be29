package payloads

// OrderPlacedPayload is the message published to the order events queue
// after an order is committed. The worker uses it to send the
// confirmation email without another database round trip.
type OrderPlacedPayload struct {
	OrderID   int64  `json:"order_id"`
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Total     string `json:"total"`
	Reference string `json:"reference"`
}
