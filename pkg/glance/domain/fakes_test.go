package domain

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

type fakeAssetStore struct {
	dir     string
	nextID  int
	removed []string
}

func (f *fakeAssetStore) NewAsset() (*ImageAsset, error) {
	f.nextID++
	id := fmt.Sprintf("id%d", f.nextID)
	return &ImageAsset{
		ID:           id,
		OriginalPath: filepath.Join(f.dir, id+"_original.jpg"),
	}, nil
}

func (f *fakeAssetStore) AnnotatedPath(asset *ImageAsset, ext string) string {
	return filepath.Join(f.dir, asset.ID+"_annotated"+ext)
}

func (f *fakeAssetStore) Remove(asset *ImageAsset) error {
	f.removed = append(f.removed, asset.ID)
	return nil
}

type fakeDownloader struct {
	urls []string
	err  error
}

func (f *fakeDownloader) Download(_ context.Context, url, _ string) error {
	f.urls = append(f.urls, url)
	return f.err
}

type fakeObjectStorage struct {
	keys []string
	err  error
}

func (f *fakeObjectStorage) Upload(_ context.Context, _, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "gs://test-bucket/" + key, nil
}

type fakeAnalyzer struct {
	result *AnalysisResult
	err    error
	uris   []string
}

func (f *fakeAnalyzer) Analyze(_ context.Context, uri string) (*AnalysisResult, error) {
	f.uris = append(f.uris, uri)
	return f.result, f.err
}

type fakeAnnotator struct {
	outcome RenderOutcome
	calls   int
}

func (f *fakeAnnotator) Annotate(_ *AnalysisResult, _ *ImageAsset) RenderOutcome {
	f.calls++
	return f.outcome
}

type fakeLabelDescriber struct {
	description string
	err         error
}

func (f *fakeLabelDescriber) DescribeLabel(_ string) (string, error) {
	return f.description, f.err
}

type reply struct {
	text      string
	imagePath string
}

type fakeReplier struct {
	replies []reply
}

func (f *fakeReplier) Reply(_ context.Context, text string) error {
	f.replies = append(f.replies, reply{text: text})
	return nil
}

func (f *fakeReplier) ReplyWithImage(_ context.Context, text, imagePath string) error {
	f.replies = append(f.replies, reply{text: text, imagePath: imagePath})
	return nil
}

var errNetwork = errors.New("network is down")
