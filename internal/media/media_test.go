package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/gabriel-vasile/mimetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/storage"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestInspect(t *testing.T) {
	info, err := Inspect(pngBytes(t, 20, 10))
	require.NoError(t, err)
	assert.Equal(t, "image/png", info.ContentType)
	assert.Equal(t, 20, info.Width)

	_, err = Inspect([]byte("%PDF-1.4 not an image"))
	assert.True(t, httperr.Is(err, httperr.KindUpload))

	_, err = Inspect(nil)
	assert.True(t, httperr.Is(err, httperr.KindUpload))
}

func TestInspect_TruncatedImage(t *testing.T) {
	data := pngBytes(t, 20, 10)

	_, err := Inspect(data[:12])
	assert.True(t, httperr.Is(err, httperr.KindUpload))
}

func TestUpload_StoresUnderNamespacedKey(t *testing.T) {
	store := storage.NewMemoryStore("https://files.example.com")
	u := NewUploader(store, Options{MaxBytes: 1 << 20})

	res, err := u.Upload(context.Background(), NamespaceReceipt, "user-1", "../gcash receipt.png", pngBytes(t, 8, 8))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Key, "receipts/user-1/"), res.Key)
	assert.True(t, strings.HasSuffix(res.Key, "_gcash_receipt.png"), res.Key)
	assert.Equal(t, "https://files.example.com/"+res.Key, res.URL)
	assert.Equal(t, 1, store.Len())
}

func TestUpload_RejectsOversizedAndNonImages(t *testing.T) {
	store := storage.NewMemoryStore("")
	u := NewUploader(store, Options{MaxBytes: 64})

	_, err := u.Upload(context.Background(), NamespaceReceipt, "u1", "big.png", make([]byte, 65))
	assert.True(t, httperr.Is(err, httperr.KindUpload))

	_, err = u.Upload(context.Background(), NamespaceReceipt, "u1", "notes.txt", []byte("hello"))
	assert.True(t, httperr.Is(err, httperr.KindUpload))

	assert.Zero(t, store.Len())
}

func TestUpload_NormalizesLargeImagesToWebP(t *testing.T) {
	store := storage.NewMemoryStore("")
	u := NewUploader(store, Options{MaxBytes: 1 << 20, Normalize: true, MaxDimension: 16})

	res, err := u.Upload(context.Background(), NamespaceIDImage, "u1", "id.png", pngBytes(t, 64, 32))
	require.NoError(t, err)

	assert.Equal(t, "image/webp", res.ContentType)
	assert.True(t, strings.HasSuffix(res.Key, "_id.webp"), res.Key)

	obj, ok := store.Get(res.Key)
	require.True(t, ok)
	assert.Equal(t, "image/webp", mimetype.Detect(obj.Data).String())

	info, err := Inspect(obj.Data)
	require.NoError(t, err)
	assert.Equal(t, 16, info.Width)
	assert.Equal(t, 8, info.Height)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "receipt.png", SanitizeFilename("receipt.png"))
	assert.Equal(t, "my_photo.jpg", SanitizeFilename("C:\\Users\\me\\my photo.jpg"))
	assert.Equal(t, "upload", SanitizeFilename("..."))
	assert.LessOrEqual(t, len(SanitizeFilename(strings.Repeat("a", 200)+".png")), maxFilenameLen)
}
