package scribe

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// ArchiveImages packs the rendered page images into a ZIP archive, one
// page-NN.png entry per page in order.
func ArchiveImages(images [][]byte) ([]byte, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: no images to archive", ErrExportEncode)
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for i, img := range images {
		f, err := w.Create(fmt.Sprintf("page-%02d.png", i+1))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExportEncode, err)
		}
		if _, err := f.Write(img); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExportEncode, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportEncode, err)
	}
	return buf.Bytes(), nil
}

// Thumbnail scales a page PNG down to the given width, preserving aspect
// ratio. Images already at or under the width are returned unchanged.
func Thumbnail(pngData []byte, maxWidth int) ([]byte, error) {
	if maxWidth < 1 {
		return nil, fmt.Errorf("%w: thumbnail width must be positive", ErrExportEncode)
	}

	src, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportEncode, err)
	}

	bounds := src.Bounds()
	if bounds.Dx() <= maxWidth {
		return pngData, nil
	}

	height := bounds.Dy() * maxWidth / bounds.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportEncode, err)
	}
	return buf.Bytes(), nil
}
