package dto

// DetailResponse carries a single human-readable error or status message.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// PageResponse is the envelope of every paginated list.
type PageResponse struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}
