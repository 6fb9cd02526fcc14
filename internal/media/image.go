package media

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/chai2010/webp"
	"github.com/gabriel-vasile/mimetype"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/yelo29/barangayreservetest-1/internal/httperr"
)

const webpQuality = 82

// Info describes an upload that passed inspection.
type Info struct {
	ContentType string
	Format      string
	Width       int
	Height      int
}

// Inspect sniffs the payload and makes sure it decodes as an image. The
// declared content type of the upload is never trusted.
func Inspect(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, httperr.Upload("File is empty")
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return Info{}, httperr.Upload("Only image files are allowed")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, httperr.Upload("Image could not be decoded")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, httperr.Upload("Image has no pixels")
	}

	return Info{
		ContentType: mt.String(),
		Format:      format,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}

// Normalize downscales an image whose longer side exceeds maxDim and
// re-encodes it as WebP. Smaller images are returned unchanged.
func Normalize(data []byte, info Info, maxDim int) ([]byte, Info, bool, error) {
	if maxDim <= 0 || (info.Width <= maxDim && info.Height <= maxDim) {
		return data, info, false, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, info, false, httperr.Upload("Image could not be decoded")
	}

	w, h := fit(info.Width, info.Height, maxDim)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, info, false, httperr.Internal("failed to encode image", err)
	}

	return buf.Bytes(), Info{
		ContentType: "image/webp",
		Format:      "webp",
		Width:       w,
		Height:      h,
	}, true, nil
}

// fit scales w x h so the longer side equals maxDim, keeping the ratio.
func fit(w, h, maxDim int) (int, int) {
	if w >= h {
		nh := h * maxDim / w
		if nh < 1 {
			nh = 1
		}
		return maxDim, nh
	}
	nw := w * maxDim / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxDim
}
