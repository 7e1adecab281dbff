package sse

// ConnectedPayload is the first event every client receives
type ConnectedPayload struct {
	ClientID string   `json:"client_id"`
	Filters  []string `json:"filters,omitempty"`
}
