// internal/domain/chat.go
package domain

// ChatReply is the chatbot response. Fallback is always true: no inference runs server-side.
type ChatReply struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
}
