package models

import "time"

// Sender identifies who wrote a message.
type Sender struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Message is one entry of an application chat.
type Message struct {
	ID        string    `json:"_id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// ApplicationChat is the thread attached one-to-one to an application.
type ApplicationChat struct {
	ID            string    `json:"_id"`
	ApplicationID string    `json:"applicationId"`
	Messages      []Message `json:"messages"`
}

// ChatSummary is the dashboard view of a chat returned by GET /api/chats.
type ChatSummary struct {
	ID            string    `json:"_id"`
	ApplicationID string    `json:"applicationId"`
	University    string    `json:"university,omitempty"`
	LastMessage   string    `json:"lastMessage,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
	UnreadCount   int       `json:"unreadCount"`
}
