package annotation

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
)

// The largest dimension a baseline JPEG can describe.
const maxJPEGDimension = 65535

// FormatError means the image can't be represented in the given format; another format may still work.
type FormatError struct {
	Format string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Format, e.Reason)
}

type Encoder struct {
	Ext    string
	Encode func(w io.Writer, img image.Image) error
}

var (
	JPEGEncoder = Encoder{Ext: ".jpg", Encode: encodeJPEG}
	PNGEncoder  = Encoder{Ext: ".png", Encode: png.Encode}
)

func encodeJPEG(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	if bounds.Dx() > maxJPEGDimension || bounds.Dy() > maxJPEGDimension {
		return &FormatError{Format: "jpeg", Reason: fmt.Sprintf("%dx%d is too large", bounds.Dx(), bounds.Dy())}
	}
	if !isOpaque(img) {
		return &FormatError{Format: "jpeg", Reason: "transparency is not supported"}
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
}

func isOpaque(img image.Image) bool {
	if opaque, ok := img.(interface{ Opaque() bool }); ok {
		return opaque.Opaque()
	}
	return true
}
