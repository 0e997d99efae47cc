package domain

import (
	"context"
	"errors"
	"testing"
)

func TestIngestor(t *testing.T) {
	t.Run("downloads and uploads under the same identifier", func(t *testing.T) {
		assetStore := &fakeAssetStore{dir: t.TempDir()}
		downloader := &fakeDownloader{}
		objectStorage := &fakeObjectStorage{}
		ingestor := NewIngestor(assetStore, downloader, objectStorage, "chatimages")
		ingestedImage, err := ingestor.Ingest(context.Background(), "https://example.com/cat.jpg")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ingestedImage.Asset.ID != "id1" {
			t.Errorf("expected id1, got %s", ingestedImage.Asset.ID)
		}
		if ingestedImage.URI != "gs://test-bucket/chatimages/id1_original.jpg" {
			t.Errorf("unexpected URI %s", ingestedImage.URI)
		}
		if len(downloader.urls) != 1 || downloader.urls[0] != "https://example.com/cat.jpg" {
			t.Errorf("unexpected downloads %v", downloader.urls)
		}
	})

	t.Run("every ingestion gets its own identifier", func(t *testing.T) {
		ingestor := NewIngestor(&fakeAssetStore{dir: t.TempDir()}, &fakeDownloader{}, &fakeObjectStorage{}, "")
		first, err := ingestor.Ingest(context.Background(), "https://example.com/a.jpg")
		if err != nil {
			t.Fatal(err)
		}
		second, err := ingestor.Ingest(context.Background(), "https://example.com/a.jpg")
		if err != nil {
			t.Fatal(err)
		}
		if first.Asset.ID == second.Asset.ID {
			t.Errorf("expected distinct identifiers, got %s twice", first.Asset.ID)
		}
		if first.URI != "gs://test-bucket/id1_original.jpg" {
			t.Errorf("expected no prefix, got %s", first.URI)
		}
	})

	t.Run("download errors propagate", func(t *testing.T) {
		objectStorage := &fakeObjectStorage{}
		ingestor := NewIngestor(&fakeAssetStore{dir: t.TempDir()}, &fakeDownloader{err: errNetwork}, objectStorage, "x")
		_, err := ingestor.Ingest(context.Background(), "https://example.com/a.jpg")
		if !errors.Is(err, errNetwork) {
			t.Fatalf("expected errNetwork, got %v", err)
		}
		if len(objectStorage.keys) != 0 {
			t.Error("expected nothing to be uploaded")
		}
	})

	t.Run("upload errors propagate", func(t *testing.T) {
		ingestor := NewIngestor(&fakeAssetStore{dir: t.TempDir()}, &fakeDownloader{}, &fakeObjectStorage{err: errNetwork}, "x")
		if _, err := ingestor.Ingest(context.Background(), "https://example.com/a.jpg"); !errors.Is(err, errNetwork) {
			t.Fatalf("expected errNetwork, got %v", err)
		}
	})
}
