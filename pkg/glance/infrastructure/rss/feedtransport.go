package rss

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"kgeyst.com/glance/pkg/common"
	"kgeyst.com/glance/pkg/glance/domain"
)

const (
	// ConfigKeyFeedURL an RSS/Atom feed to watch for images; the feed transport is disabled if empty
	ConfigKeyFeedURL = "feedURL"
	// ConfigKeyFeedPollInterval how often to poll the feed, in milliseconds
	ConfigKeyFeedPollInterval = "feedPollInterval"
	// ConfigKeyFeedSkipBacklog if true, items already in the feed at startup are not analyzed
	ConfigKeyFeedSkipBacklog = "feedSkipBacklog"
)

const maxFeedSize = 5 * 1024 * 1024

// FeedTransport turns new feed items with images into events. Feeds can't be replied to, so replies go to the
// given replier (usually a chat channel).
type FeedTransport struct {
	url          string
	pollInterval time.Duration
	skipBacklog  bool
	replier      domain.Replier
	parser       *gofeed.Parser
	seenItems    map[string]bool
	polledOnce   bool
	logger       common.Logger
}

func NewFeedTransport(config *common.Config, replier domain.Replier, logger common.Logger) *FeedTransport {
	return &FeedTransport{
		url:          config.GetString(ConfigKeyFeedURL),
		pollInterval: config.GetDurationOrDefault(ConfigKeyFeedPollInterval, 5*time.Minute),
		skipBacklog:  config.GetBoolOrDefault(ConfigKeyFeedSkipBacklog, true),
		replier:      replier,
		parser:       gofeed.NewParser(),
		seenItems:    make(map[string]bool),
		logger:       logger,
	}
}

// Run polls the feed until the context is cancelled. Events are handled one by one in the polling goroutine.
func (f *FeedTransport) Run(ctx context.Context, handler domain.EventHandler) error {
	for {
		events, err := f.Poll(ctx)
		if err != nil {
			f.logger.Log(fmt.Sprintf("failed to poll feed %s: %s", f.url, err))
		}
		for _, event := range events {
			err := handler(ctx, event, f.replier)
			if err != nil {
				f.logger.Log(fmt.Sprintf("failed to handle feed item from %s: %s", event.Where, err))
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.pollInterval):
		}
	}
}

// Poll returns events for items which weren't seen before.
func (f *FeedTransport) Poll(ctx context.Context) ([]*domain.Event, error) {
	data, err := common.ReadAllFromURL(ctx, f.url, maxFeedSize)
	if err != nil {
		return nil, err
	}
	feed, err := f.parser.ParseString(string(data))
	if err != nil {
		return nil, err
	}
	backlog := !f.polledOnce && f.skipBacklog
	f.polledOnce = true
	var events []*domain.Event
	for _, item := range feed.Items {
		key := itemKey(item)
		if key == "" || f.seenItems[key] {
			continue
		}
		f.seenItems[key] = true
		if backlog {
			continue
		}
		imageURL := findImageURL(item)
		if imageURL == "" {
			continue
		}
		events = append(events, &domain.Event{
			Author:      itemAuthor(feed, item),
			Where:       strings.TrimSpace(feed.Title),
			Attachments: []domain.Attachment{{URL: imageURL}},
		})
	}
	return events, nil
}

func itemKey(item *gofeed.Item) string {
	if item.GUID != "" {
		return item.GUID
	}
	return item.Link
}

func itemAuthor(feed *gofeed.Feed, item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	return strings.TrimSpace(feed.Title)
}

func findImageURL(item *gofeed.Item) string {
	for _, enclosure := range item.Enclosures {
		if enclosure == nil || enclosure.URL == "" {
			continue
		}
		if strings.HasPrefix(enclosure.Type, "image/") || common.IsImageFormat(enclosure.URL) {
			return enclosure.URL
		}
	}
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	return ""
}
