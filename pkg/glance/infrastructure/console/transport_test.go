package console

import (
	"bytes"
	"context"
	"testing"

	"kgeyst.com/glance/pkg/common"
	"kgeyst.com/glance/pkg/glance/infrastructure/web"
)

func TestLineToEvent(t *testing.T) {
	transport := NewTransport(web.NewURLFinder(), common.NewConfig(map[string]any{ConfigKeyUserName: "alice"}), common.NewMemoryLogger())
	event := transport.lineToEvent("  https://example.com/cat.jpg and https://example.com/dog.png ")
	if event.Author != "alice" || event.Where != "console" {
		t.Errorf("unexpected event %+v", event)
	}
	if len(event.Attachments) != 2 || event.Attachments[0].URL != "https://example.com/cat.jpg" {
		t.Errorf("unexpected attachments %+v", event.Attachments)
	}
	if event := transport.lineToEvent("hello"); len(event.Attachments) != 0 {
		t.Errorf("expected no attachments, got %+v", event.Attachments)
	}
}

func TestReplier(t *testing.T) {
	var out bytes.Buffer
	replier := NewReplier(&out)
	if err := replier.Reply(context.Background(), "Sorry, doesn't look like anything to me :/"); err != nil {
		t.Fatal(err)
	}
	if err := replier.ReplyWithImage(context.Background(), "Looks like: 'Cat' (Probability: 87%)", "images/a_annotated.jpg"); err != nil {
		t.Fatal(err)
	}
	want := "Sorry, doesn't look like anything to me :/\nLooks like: 'Cat' (Probability: 87%)\nAnnotated image: images/a_annotated.jpg\n"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}
