package domain

import "context"

// Chat roles understood by ChatModel implementations.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is a single turn of an assistant conversation.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatModel is the port for the diet assistant language model. The last
// message of turns is the one being answered.
type ChatModel interface {
	Generate(ctx context.Context, turns []ChatMessage) (string, error)
}
