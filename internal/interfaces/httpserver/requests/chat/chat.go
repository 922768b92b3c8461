package chatrequests

// ChatMessageInput is the body of a user turn.
type ChatMessageInput struct {
	Content string `json:"content" binding:"required"`
}
