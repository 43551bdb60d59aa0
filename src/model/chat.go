package model

import (
	"strings"
	"time"
)

// ----------------------------------------------------
// ================ Knowledge ================
// KnowledgeEntry is a question/answer pair loaded from the knowledge source
type KnowledgeEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ----------------------------------------------------
// ================ Request ================
// Role identifies the caller class
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// ParseRole maps a free-form role claim to a Role. Anything other than
// "admin" is treated as a customer.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleCustomer
}

// ChatTurn is one inbound user message
type ChatTurn struct {
	UserID     string `json:"user_id,omitempty"`
	Message    string `json:"message"`
	Role       Role   `json:"role"`
	WantsAudio bool   `json:"wants_audio"`
}

// ----------------------------------------------------
// ================ Response ================
// ChatReply is the assistant answer for a ChatTurn.
// AudioPayload is empty when no audio was requested or synthesis failed.
type ChatReply struct {
	ResponseText       string `json:"response_text"`
	IsConversationOver bool   `json:"is_conversation_over"`
	AudioPayload       string `json:"audio_payload,omitempty"`
}

// HasAudio reports whether an audio payload is attached
func (r ChatReply) HasAudio() bool {
	return r.AudioPayload != ""
}

// ----------------------------------------------------
// ================ Transcript ================
// Exchange is a recorded message/response pair
type Exchange struct {
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Role      Role      `json:"role"`
	Resolved  bool      `json:"resolved"`
	CreatedAt time.Time `json:"created_at"`
}
