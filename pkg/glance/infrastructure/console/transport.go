package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"kgeyst.com/glance/pkg/common"
	"kgeyst.com/glance/pkg/glance/domain"
)

// ConfigKeyUserName the name under which console input is attributed
const ConfigKeyUserName = "userName"

type URLFinder interface {
	FindURLs(str string) []string
}

// Transport reads lines from the terminal; every URL in a line is treated as an attachment. Handy for trying out
// the bot without a chat server.
type Transport struct {
	urlFinder URLFinder
	userName  string
	logger    common.Logger
}

func NewTransport(urlFinder URLFinder, config *common.Config, logger common.Logger) *Transport {
	return &Transport{
		urlFinder: urlFinder,
		userName:  config.GetStringOrDefault(ConfigKeyUserName, "John"),
		logger:    logger,
	}
}

func (t *Transport) Run(ctx context.Context, handler domain.EventHandler) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer func() {
		_ = rl.Close()
	}()
	go func() {
		<-ctx.Done()
		_ = rl.Close()
	}()
	replier := NewReplier(rl.Stdout())
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF, readline.ErrInterrupt or closed
			break
		}
		event := t.lineToEvent(line)
		if len(event.Attachments) == 0 {
			_ = replier.Reply(ctx, "Paste an image URL.")
			continue
		}
		err = handler(ctx, event, replier)
		if err != nil {
			t.logger.Log(err.Error())
			_ = replier.Reply(ctx, "Error: "+err.Error())
		}
	}
	return ctx.Err()
}

func (t *Transport) lineToEvent(line string) *domain.Event {
	event := &domain.Event{
		Author: t.userName,
		Where:  "console",
	}
	for _, url := range t.urlFinder.FindURLs(strings.TrimSpace(line)) {
		event.Attachments = append(event.Attachments, domain.Attachment{URL: url})
	}
	return event
}

type replier struct {
	out io.Writer
}

func NewReplier(out io.Writer) domain.Replier {
	return &replier{out: out}
}

func (r *replier) Reply(_ context.Context, text string) error {
	_, err := fmt.Fprintln(r.out, text)
	return err
}

func (r *replier) ReplyWithImage(_ context.Context, text, imagePath string) error {
	_, err := fmt.Fprintf(r.out, "%s\nAnnotated image: %s\n", text, imagePath)
	return err
}
