package models

// FeedSubmission is a stored attempt to send a card to the national catalog
type FeedSubmission struct {
	ID           string `json:"id"`
	ProductIndex int    `json:"productIndex"`
	ProductName  string `json:"productName"`
	Tnved        string `json:"tnved"`
	CategoryID   int    `json:"categoryId"`
	FeedID       string `json:"feedId,omitempty"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
	Status       string `json:"status,omitempty"` // last raw feed-status payload
	SubmittedAt  string `json:"submittedAt"`
}

// SendResult is the response of POST /send_to_nk/{index}
type SendResult struct {
	Success     bool   `json:"success"`
	FeedID      string `json:"feed_id,omitempty"`
	Message     string `json:"message,omitempty"`
	ProductName string `json:"product_name,omitempty"`
	Error       string `json:"error,omitempty"`
	StatusCode  int    `json:"status_code,omitempty"`
}
