package models

import (
	"time"
)

// MessageRole identifies who authored a chat message.
type MessageRole string

const (
	RoleUser      MessageRole = "USER"
	RoleAssistant MessageRole = "ASSISTANT"
	RoleSystem    MessageRole = "SYSTEM"
)

// Valid reports whether the role is one of the recognized values.
func (r MessageRole) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Message is one persisted chat message. Rows are append-only: they are
// never updated, and the only delete path is the compensating removal of
// a user message after a downstream failure.
type Message struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	UserID    string      `json:"userId" gorm:"index;not null"`
	Content   string      `json:"content" gorm:"not null"`
	Role      MessageRole `json:"role" gorm:"not null"`
	CreatedAt time.Time   `json:"createdAt" gorm:"autoCreateTime"`
}

// ConversationMessage is the transient projection of a Message used as
// LLM context. It is rebuilt per request and never persisted.
type ConversationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
