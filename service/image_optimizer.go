package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"
)

// Preview sizes accepted by OptimizeImage
const (
	PreviewSizeThumb  = "thumb"
	PreviewSizeMedium = "medium"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// OptimizeImage converts a screenshot to JPEG, shrinking it to the size's max dimension.
// Unknown sizes fall back to medium.
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Debugf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	var maxDim, quality int
	switch size {
	case PreviewSizeThumb:
		maxDim = maxSizeThumb
		quality = qualityThumb
	case PreviewSizeMedium:
		maxDim = maxSizeMedium
		quality = qualityMedium
	default:
		maxDim = maxSizeMedium
		quality = qualityMedium
		log.Printf("⚠️  Unknown size '%s', defaulting to medium", size)
	}

	// imaging.Fit keeps the aspect ratio and never upscales
	resized := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	log.Printf("✓ Image optimized: size=%s, quality=%d, output_size=%d bytes", size, quality, buf.Len())
	return buf.Bytes(), nil
}
