package pkg

import "time"

// HTTP wire types of the chat API. Field names follow the web client.

// SendMessageRequest is the body of POST /api/chat/send
type SendMessageRequest struct {
	Message       string `json:"message"`
	GenerateAudio bool   `json:"generateAudio"`
}

// SendMessageResponse is the reply to POST /api/chat/send
type SendMessageResponse struct {
	Response    string `json:"response"`
	IsResolved  bool   `json:"isResolved"`
	AudioBase64 string `json:"audioBase64,omitempty"`
}

// StatusResponse is the reply to GET /api/chat/status
type StatusResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryEntry is one recorded exchange
type HistoryEntry struct {
	Message    string    `json:"message"`
	Response   string    `json:"response"`
	IsResolved bool      `json:"isResolved"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HistoryResponse is the reply to GET /api/chat/history
type HistoryResponse struct {
	UserID   string         `json:"userId"`
	Messages []HistoryEntry `json:"messages"`
}

// ErrorResponse is returned for rejected requests
type ErrorResponse struct {
	Error string `json:"error"`
}
