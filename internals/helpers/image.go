package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const maxImageEdge = 1600

// ConvertToWebP decodes an uploaded photo, caps the longest edge at 1600px
// and re-encodes as lossy WebP. Evidence photos come straight off phone
// cameras, so this typically shrinks them by an order of magnitude.
func ConvertToWebP(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageEdge || bounds.Dy() > maxImageEdge {
		if bounds.Dx() >= bounds.Dy() {
			img = imaging.Resize(img, maxImageEdge, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, maxImageEdge, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: false, Quality: 80}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
