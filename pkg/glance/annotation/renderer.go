package annotation

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"math"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"

	"kgeyst.com/glance/pkg/common"
	"kgeyst.com/glance/pkg/glance/domain"
)

var (
	labelFontOnce sync.Once
	labelFont     *opentype.Font
	labelFontErr  error
)

// Renderer draws a box and a label for every detection and saves the result next to the original image.
type Renderer struct {
	assetStore domain.AssetStore
	style      Style
	primary    Encoder
	fallback   Encoder
	logger     common.Logger
}

func NewRenderer(assetStore domain.AssetStore, style Style, logger common.Logger) *Renderer {
	return &Renderer{
		assetStore: assetStore,
		style:      style,
		primary:    JPEGEncoder,
		fallback:   PNGEncoder,
		logger:     logger,
	}
}

// WithEncoders replaces the default JPEG/PNG pair.
func (r *Renderer) WithEncoders(primary, fallback Encoder) *Renderer {
	r.primary = primary
	r.fallback = fallback
	return r
}

// Annotate never returns an error: any failure is logged and reported as domain.RenderFailed, because the text
// response is still useful without the picture.
func (r *Renderer) Annotate(result *domain.AnalysisResult, asset *domain.ImageAsset) domain.RenderOutcome {
	img, err := loadImage(asset.OriginalPath)
	if err != nil {
		return r.fail(asset, err)
	}
	annotated, err := r.Draw(img, result)
	if err != nil {
		return r.fail(asset, err)
	}
	path := r.assetStore.AnnotatedPath(asset, r.primary.Ext)
	err = saveImage(path, annotated, r.primary)
	if err == nil {
		return domain.RenderOutcome{Kind: domain.RenderSaved, Path: path}
	}
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		return r.fail(asset, err)
	}
	r.logger.Log(fmt.Sprintf("falling back to %s for %s: %s", r.fallback.Ext, asset.ID, err))
	path = r.assetStore.AnnotatedPath(asset, r.fallback.Ext)
	err = saveImage(path, annotated, r.fallback)
	if err != nil {
		return r.fail(asset, err)
	}
	return domain.RenderOutcome{Kind: domain.RenderFallbackSaved, Path: path}
}

// Draw returns a copy of the image with the detections drawn on top. The copy's origin is always (0, 0).
func (r *Renderer) Draw(img image.Image, result *domain.AnalysisResult) (*image.RGBA, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Src)
	if result.IsEmpty() {
		return canvas, nil
	}
	face, err := newLabelFace(r.style.FontSize(width))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = face.Close()
	}()
	accent := image.NewUniform(r.style.AccentColor)
	strokeWidth := r.style.StrokeWidth(width)
	for _, detection := range result.Detections {
		rect := PixelRect(detection.Box, width, height)
		drawOutline(canvas, rect, strokeWidth, accent)
		drawLabel(canvas, face, rect.Min.Add(r.style.LabelOffset), domain.FormatLabel(detection), accent)
	}
	return canvas, nil
}

func (r *Renderer) fail(asset *domain.ImageAsset, err error) domain.RenderOutcome {
	r.logger.Log(fmt.Sprintf("failed to annotate %s: %s", asset.ID, err))
	return domain.RenderOutcome{Kind: domain.RenderFailed}
}

// PixelRect converts a normalized box to pixel coordinates. Both corners are inclusive: the box (0.1,0.1)-(0.5,0.5)
// on a 1000x1000 image spans pixels 100 through 500.
func PixelRect(box domain.BoundingBox, width, height int) image.Rectangle {
	return image.Rect(
		scale(box.Left, width),
		scale(box.Top, height),
		scale(box.Right, width),
		scale(box.Bottom, height),
	)
}

func scale(normalized float64, size int) int {
	return int(math.Round(normalized * float64(size)))
}

// The outline grows inwards from the box edges.
func drawOutline(canvas draw.Image, rect image.Rectangle, strokeWidth int, src image.Image) {
	x0, y0, x1, y1 := rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y
	edges := []image.Rectangle{
		image.Rect(x0, y0, x1+1, y0+strokeWidth),
		image.Rect(x0, y1-strokeWidth+1, x1+1, y1+1),
		image.Rect(x0, y0, x0+strokeWidth, y1+1),
		image.Rect(x1-strokeWidth+1, y0, x1+1, y1+1),
	}
	for _, edge := range edges {
		draw.Draw(canvas, edge.Intersect(canvas.Bounds()), src, image.Point{}, draw.Src)
	}
}

// `topLeft` is the top of the text, not the baseline.
func drawLabel(canvas draw.Image, face font.Face, topLeft image.Point, text string, src image.Image) {
	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  src,
		Face: face,
		Dot:  fixed.P(topLeft.X, topLeft.Y+face.Metrics().Ascent.Ceil()),
	}
	drawer.DrawString(text)
}

func newLabelFace(size float64) (font.Face, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = opentype.Parse(goregular.TTF)
	})
	if labelFontErr != nil {
		return nil, labelFontErr
	}
	return opentype.NewFace(labelFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// The image is encoded in memory first, so that a failed encoding leaves no partial file behind.
func saveImage(path string, img image.Image, encoder Encoder) error {
	var buffer bytes.Buffer
	err := encoder.Encode(&buffer, img)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buffer.Bytes(), 0644)
}
