package service

import (
	"bytes"
	"fmt"
	"image"
	"log"

	"github.com/disintegration/imaging"
)

const (
	// maxPublishDim is the maximum edge length of a published image
	maxPublishDim = 1200
	jpegQuality   = 85
)

// PrepareImage downsizes oversized images before publishing and re-encodes
// them in their source format so the object key extension stays truthful.
// Returns the encoded bytes and the content type to upload with.
func PrepareImage(data []byte) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxPublishDim || height > maxPublishDim {
		log.Printf("🔄 Resizing image: %dx%d -> fit %dpx", width, height, maxPublishDim)
		img = imaging.Fit(img, maxPublishDim, maxPublishDim, imaging.Lanczos)
	} else if format == "png" || format == "jpeg" {
		// Already within bounds and in an accepted format: upload as-is.
		return data, contentTypeFor(format), nil
	}

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	default:
		// The catalog convention is PNG; anything exotic is normalized to it.
		format = "png"
		err = imaging.Encode(&buf, img, imaging.PNG)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), contentTypeFor(format), nil
}

func contentTypeFor(format string) string {
	if format == "jpeg" {
		return "image/jpeg"
	}
	return "image/png"
}
