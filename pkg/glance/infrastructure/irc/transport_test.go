package irc

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"kgeyst.com/glance/pkg/common"
	"kgeyst.com/glance/pkg/glance/domain"
	"kgeyst.com/glance/pkg/glance/infrastructure/web"
)

type sentMessage struct {
	who  string
	text string
}

type fakeMessenger struct {
	mutex    sync.Mutex
	messages []sentMessage
}

func (f *fakeMessenger) Msg(who, text string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.messages = append(f.messages, sentMessage{who: who, text: text})
}

func (f *fakeMessenger) sent() []sentMessage {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]sentMessage(nil), f.messages...)
}

type fakePublisher struct {
	err error
}

func (f *fakePublisher) Publish(_ context.Context, filePath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://storage.example.com/bucket/" + filePath, nil
}

type fakePageImageResolver struct{}

func (f *fakePageImageResolver) ResolveImageURL(_ context.Context, pageURL string) (string, error) {
	if strings.Contains(pageURL, "broken") {
		return "", errors.New("timeout")
	}
	if strings.Contains(pageURL, "gallery") {
		return "https://cdn.example.com/preview.jpg", nil
	}
	return "", nil
}

func newTestTransport(values map[string]any) (*Transport, *fakeMessenger) {
	messenger := &fakeMessenger{}
	config := common.NewConfig(values)
	return newTransport(messenger, web.NewURLFinder(), &fakePageImageResolver{}, &fakePublisher{}, config, common.NewMemoryLogger()), messenger
}

func attachmentURLs(event *domain.Event) []string {
	var result []string
	for _, attachment := range event.Attachments {
		result = append(result, attachment.URL)
	}
	return result
}

func TestToEvent(t *testing.T) {
	t.Run("image links become attachments", func(t *testing.T) {
		transport, _ := newTestTransport(nil)
		m := incomingMessage{from: "john", to: "#GlanceRoom", content: "what is this https://example.com/cat.jpg https://example.com/page"}
		event := transport.toEvent(context.Background(), m, transport.urlFinder.FindURLs(m.content))
		if !reflect.DeepEqual(attachmentURLs(event), []string{"https://example.com/cat.jpg"}) {
			t.Errorf("unexpected attachments %v", attachmentURLs(event))
		}
		if event.Author != "john" || event.Where != "#GlanceRoom" || event.SelfAuthored {
			t.Errorf("unexpected event %+v", event)
		}
	})

	t.Run("page links are resolved when enabled", func(t *testing.T) {
		transport, _ := newTestTransport(map[string]any{ConfigKeyResolvePageImages: true})
		m := incomingMessage{from: "john", to: "Glance", content: "https://example.com/broken https://example.com/gallery/1 https://example.com/plain"}
		event := transport.toEvent(context.Background(), m, transport.urlFinder.FindURLs(m.content))
		if !reflect.DeepEqual(attachmentURLs(event), []string{"https://cdn.example.com/preview.jpg"}) {
			t.Errorf("unexpected attachments %v", attachmentURLs(event))
		}
		if event.Where != "john" {
			t.Errorf("expected private messages to be answered privately, got %s", event.Where)
		}
	})

	t.Run("self messages are flagged", func(t *testing.T) {
		transport, _ := newTestTransport(map[string]any{domain.ConfigKeyBotName: "Glance"})
		m := incomingMessage{from: "glance", to: "#GlanceRoom", content: "https://example.com/cat.jpg"}
		event := transport.toEvent(context.Background(), m, transport.urlFinder.FindURLs(m.content))
		if !event.SelfAuthored {
			t.Error("expected the event to be flagged as self-authored")
		}
	})
}

func TestOnMessage(t *testing.T) {
	transport, messenger := newTestTransport(nil)
	jobQueue := common.NewJobQueue(4, common.NewMemoryLogger())
	defer jobQueue.Stop()
	handled := make(chan *domain.Event, 4)
	handler := func(ctx context.Context, event *domain.Event, replier domain.Replier) error {
		handled <- event
		return replier.Reply(ctx, "Looks like: 'Cat' (Probability: 87%)\nOther guesses: Dog (42%)")
	}

	transport.onMessage(context.Background(), jobQueue, handler, incomingMessage{from: "john", to: "#GlanceRoom", content: "just chatting"})
	transport.onMessage(context.Background(), jobQueue, handler, incomingMessage{from: "Glance", to: "#GlanceRoom", content: "https://example.com/a.jpg"})
	transport.onMessage(context.Background(), jobQueue, handler, incomingMessage{from: "john", to: "#GlanceRoom", content: "https://example.com/cat.jpg"})

	select {
	case event := <-handled:
		if event.Author != "john" || len(event.Attachments) != 1 {
			t.Errorf("unexpected event %+v", event)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("the message was never handled")
	}
	jobQueue.Stop()
	select {
	case event := <-handled:
		t.Errorf("expected chatter and self messages to be skipped, got %+v", event)
	default:
	}
	want := []sentMessage{
		{who: "#GlanceRoom", text: "Looks like: 'Cat' (Probability: 87%)"},
		{who: "#GlanceRoom", text: "Other guesses: Dog (42%)"},
	}
	if got := messenger.sent(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestReplier(t *testing.T) {
	t.Run("image URL is appended", func(t *testing.T) {
		messenger := &fakeMessenger{}
		replier := NewReplier(messenger, "#room", &fakePublisher{})
		if err := replier.ReplyWithImage(context.Background(), "Looks like: 'Cat' (Probability: 87%)", "images/a_annotated.jpg"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []sentMessage{
			{who: "#room", text: "Looks like: 'Cat' (Probability: 87%)"},
			{who: "#room", text: "Annotated: https://storage.example.com/bucket/images/a_annotated.jpg"},
		}
		if got := messenger.sent(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("text is sent even if publishing fails", func(t *testing.T) {
		messenger := &fakeMessenger{}
		replier := NewReplier(messenger, "john", &fakePublisher{err: errors.New("forbidden")})
		if err := replier.ReplyWithImage(context.Background(), "Looks like: 'Cat' (Probability: 87%)", "a.jpg"); err == nil {
			t.Error("expected an error")
		}
		want := []sentMessage{{who: "john", text: "Looks like: 'Cat' (Probability: 87%)"}}
		if got := messenger.sent(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})
}
