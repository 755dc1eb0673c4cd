package api

import (
	"context"
	"net/http"

	"github.com/zhubert/studydesk/internal/models"
)

// GetApplicationChat fetches the message thread of an application.
func (c *Client) GetApplicationChat(ctx context.Context, applicationID string) (models.ApplicationChat, error) {
	var chat models.ApplicationChat
	path := "/api/application-chats/" + escape(applicationID)
	err := c.doJSON(ctx, "api.GetApplicationChat", http.MethodGet, path, nil, &chat)
	return chat, err
}

// MarkChatRead marks every message of the thread read for the caller.
func (c *Client) MarkChatRead(ctx context.Context, applicationID string) error {
	path := "/api/application-chats/" + escape(applicationID) + "/read"
	return c.doJSON(ctx, "api.MarkChatRead", http.MethodPut, path, nil, nil)
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// SendMessage posts a message and returns the server's copy of it.
func (c *Client) SendMessage(ctx context.Context, applicationID, text string) (models.Message, error) {
	var msg models.Message
	path := "/api/application-chats/" + escape(applicationID) + "/messages"
	err := c.doJSON(ctx, "api.SendMessage", http.MethodPost, path, sendMessageRequest{Text: text}, &msg)
	return msg, err
}

// ListChats returns the dashboard chat summaries.
func (c *Client) ListChats(ctx context.Context) ([]models.ChatSummary, error) {
	var chats []models.ChatSummary
	if err := c.doJSON(ctx, "api.ListChats", http.MethodGet, "/api/chats", nil, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}
