package model

// Sender identifies which side of the conversation produced a message.
type Sender string

// Chat message senders.
const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is a single entry in a chat session's ordered log. IDs are
// assigned sequentially within a session and increase monotonically.
type ChatMessage struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
	ID     int64  `json:"id"`
}
