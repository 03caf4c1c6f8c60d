package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	// Formats a phone camera or gallery can hand us.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/nfnt/resize"
)

// DecodeImage decodes a photo into pixels. Any failure wraps ErrImageDecode.
func DecodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrImageDecode)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrImageDecode)
	}
	return img, nil
}

// PrepareImage shrinks img so neither side exceeds maxDimension (0 disables
// shrinking) and encodes it as PNG for the OCR engine.
func PrepareImage(img image.Image, maxDimension uint) ([]byte, error) {
	if maxDimension > 0 {
		b := img.Bounds()
		if uint(b.Dx()) > maxDimension || uint(b.Dy()) > maxDimension {
			img = resize.Thumbnail(maxDimension, maxDimension, img, resize.Lanczos3)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
