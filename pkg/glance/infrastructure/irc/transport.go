package irc

import (
	"context"
	"fmt"
	"strings"

	"github.com/whyrusleeping/hellabot"

	"kgeyst.com/glance/pkg/common"
	"kgeyst.com/glance/pkg/glance/domain"
)

const (
	// ConfigKeyServerName IRC server address, "host:port"
	ConfigKeyServerName = "serverName"
	// ConfigKeyRoomName the channel to join, without the leading '#'
	ConfigKeyRoomName = "roomName"
	// ConfigKeyUseTLS connect over TLS
	ConfigKeyUseTLS = "useTLS"
	// ConfigKeyPassword the server password; prefer the PasswordEnvName environment variable
	ConfigKeyPassword = "ircPassword"
	// ConfigKeyResolvePageImages if true, links to web pages are replaced with the page's preview image
	ConfigKeyResolvePageImages = "resolvePageImages"
	// ConfigKeyQueueCapacity how many messages with links may wait for processing before new ones are dropped
	ConfigKeyQueueCapacity = "queueCapacity"

	PasswordEnvName = "GLANCE_IRC_PASSWORD"
)

type URLFinder interface {
	FindURLs(str string) []string
}

type PageImageResolver interface {
	ResolveImageURL(ctx context.Context, pageURL string) (string, error)
}

// Transport receives channel and private messages from IRC. IRC has no attachments, so image links found in
// a message play their role. Messages are handled one at a time on a job queue, away from the read loop.
type Transport struct {
	bot               *hbot.Bot
	messenger         Messenger
	botName           string
	urlFinder         URLFinder
	pageImageResolver PageImageResolver // nil if disabled
	publisher         ImagePublisher
	queueCapacity     int
	logger            common.Logger
}

// NewBot creates an IRC client which joins the configured room.
func NewBot(config *common.Config) (*hbot.Bot, error) {
	botName := config.GetStringOrDefault(domain.ConfigKeyBotName, "Glance")
	serverName := config.GetStringOrDefault(ConfigKeyServerName, "irc.euirc.net:6667")
	roomName := config.GetStringOrDefault(ConfigKeyRoomName, "GlanceRoom")
	useTLS := config.GetBoolOrDefault(ConfigKeyUseTLS, false)
	password := config.GetSecret(ConfigKeyPassword, PasswordEnvName)
	ircBot, err := hbot.NewBot(serverName, botName, func(bot *hbot.Bot) {
		bot.SSL = useTLS
		bot.Password = password
	})
	if err != nil {
		return nil, err
	}
	ircBot.Channels = []string{"#" + roomName}
	return ircBot, nil
}

func NewTransport(
	bot *hbot.Bot,
	urlFinder URLFinder,
	pageImageResolver PageImageResolver,
	publisher ImagePublisher,
	config *common.Config,
	logger common.Logger,
) *Transport {
	transport := newTransport(bot, urlFinder, pageImageResolver, publisher, config, logger)
	transport.bot = bot
	return transport
}

func newTransport(
	messenger Messenger,
	urlFinder URLFinder,
	pageImageResolver PageImageResolver,
	publisher ImagePublisher,
	config *common.Config,
	logger common.Logger,
) *Transport {
	if !config.GetBoolOrDefault(ConfigKeyResolvePageImages, false) {
		pageImageResolver = nil
	}
	return &Transport{
		messenger:         messenger,
		botName:           config.GetStringOrDefault(domain.ConfigKeyBotName, "Glance"),
		urlFinder:         urlFinder,
		pageImageResolver: pageImageResolver,
		publisher:         publisher,
		queueCapacity:     config.GetIntOrDefault(ConfigKeyQueueCapacity, 32),
		logger:            logger,
	}
}

// Run blocks until the connection is closed. Cancelling the context closes the connection.
func (t *Transport) Run(ctx context.Context, handler domain.EventHandler) error {
	jobQueue := common.NewJobQueue(t.queueCapacity, t.logger)
	defer jobQueue.Stop()
	var trigger = hbot.Trigger{
		Condition: func(b *hbot.Bot, m *hbot.Message) bool {
			return m.Command == "PRIVMSG"
		},
		Action: func(b *hbot.Bot, m *hbot.Message) bool {
			t.onMessage(ctx, jobQueue, handler, incomingMessage{
				from:    m.From,
				to:      m.To,
				content: m.Content,
			})
			return false
		},
	}
	t.bot.AddTrigger(trigger)
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			_ = t.bot.Close()
		case <-stopped:
		}
	}()
	t.bot.Run()
	return ctx.Err()
}

type incomingMessage struct {
	from    string
	to      string
	content string
}

// Replies go to the channel for channel messages and to the sender for private messages.
func (m incomingMessage) replyTarget() string {
	if strings.HasPrefix(m.to, "#") {
		return m.to
	}
	return m.from
}

func (t *Transport) onMessage(ctx context.Context, jobQueue *common.JobQueue, handler domain.EventHandler, m incomingMessage) {
	if t.isSelf(m.from) {
		return
	}
	urls := t.urlFinder.FindURLs(m.content)
	if len(urls) == 0 {
		return
	}
	err := jobQueue.Enqueue(func() error {
		event := t.toEvent(ctx, m, urls)
		replier := NewReplier(t.messenger, m.replyTarget(), t.publisher)
		err := handler(ctx, event, replier)
		if err != nil {
			return fmt.Errorf("message from %s: %w", m.from, err)
		}
		return nil
	})
	if err != nil {
		t.logger.Log(fmt.Sprintf("dropped message from %s: %s", m.from, err))
	}
}

func (t *Transport) toEvent(ctx context.Context, m incomingMessage, urls []string) *domain.Event {
	event := &domain.Event{
		Author:       m.from,
		Where:        m.replyTarget(),
		SelfAuthored: t.isSelf(m.from),
	}
	for _, url := range urls {
		imageURL := t.toImageURL(ctx, url)
		if imageURL != "" {
			event.Attachments = append(event.Attachments, domain.Attachment{URL: imageURL})
		}
	}
	return event
}

func (t *Transport) toImageURL(ctx context.Context, url string) string {
	if common.IsImageFormat(url) {
		return url
	}
	if t.pageImageResolver == nil {
		return ""
	}
	imageURL, err := t.pageImageResolver.ResolveImageURL(ctx, url)
	if err != nil {
		t.logger.Log(fmt.Sprintf("failed to resolve the preview image of %s: %s", url, err))
		return ""
	}
	return imageURL
}

func (t *Transport) isSelf(nick string) bool {
	return strings.EqualFold(nick, t.botName)
}
