package domain

import "context"

type Attachment struct {
	URL string
}

// Event is an inbound chat message.
type Event struct {
	Author       string
	Where        string
	SelfAuthored bool // the bot's own messages must be ignored to avoid feedback loops
	Attachments  []Attachment
}

// Replier sends replies to wherever the event came from.
type Replier interface {
	Reply(ctx context.Context, text string) error
	ReplyWithImage(ctx context.Context, text, imagePath string) error
}

type EventHandler func(ctx context.Context, event *Event, replier Replier) error

// Transport delivers events to the handler until the context is cancelled or the connection is lost.
// Whether events are handled one by one or concurrently is up to the transport.
type Transport interface {
	Run(ctx context.Context, handler EventHandler) error
}
