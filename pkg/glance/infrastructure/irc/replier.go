package irc

import (
	"context"
	"fmt"

	"kgeyst.com/glance/pkg/common"
	"kgeyst.com/glance/pkg/glance/domain"
)

// Messenger sends a message to a channel or a user. Implemented by *hbot.Bot.
type Messenger interface {
	Msg(who, text string)
}

// ImagePublisher makes a local image reachable by a URL.
type ImagePublisher interface {
	Publish(ctx context.Context, filePath string) (string, error)
}

type replier struct {
	messenger Messenger
	target    string
	publisher ImagePublisher
}

// NewReplier replies to `target` (a channel or a nick). IRC messages are single-line, so multi-line text is sent
// line by line.
func NewReplier(messenger Messenger, target string, publisher ImagePublisher) domain.Replier {
	return &replier{
		messenger: messenger,
		target:    target,
		publisher: publisher,
	}
}

func (r *replier) Reply(_ context.Context, text string) error {
	for _, line := range common.SplitLines(text) {
		r.messenger.Msg(r.target, line)
	}
	return nil
}

// ReplyWithImage publishes the image and appends its URL. If publishing fails, the text is still sent.
func (r *replier) ReplyWithImage(ctx context.Context, text, imagePath string) error {
	url, err := r.publisher.Publish(ctx, imagePath)
	if err != nil {
		_ = r.Reply(ctx, text)
		return fmt.Errorf("publish %s: %w", imagePath, err)
	}
	return r.Reply(ctx, text+"\nAnnotated: "+url)
}
