package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/idgen"
	"github.com/yelo29/barangayreservetest-1/internal/storage"
)

// Key namespaces, one per upload field.
const (
	NamespaceReceipt      = "receipts"
	NamespaceProfileImage = "profile-images"
	NamespaceIDImage      = "id-images"
)

const maxFilenameLen = 64

type Options struct {
	MaxBytes     int64
	Normalize    bool
	MaxDimension int
}

type Uploader struct {
	store storage.ObjectStore
	opts  Options
}

type Result struct {
	URL         string `json:"imageUrl"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}

func NewUploader(store storage.ObjectStore, opts Options) *Uploader {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 5 * 1024 * 1024
	}
	return &Uploader{store: store, opts: opts}
}

// UploadFile reads a multipart file and hands it to Upload.
func (u *Uploader) UploadFile(ctx context.Context, namespace, ownerID string, fh *multipart.FileHeader) (*Result, error) {
	if fh == nil {
		return nil, httperr.Upload("No file uploaded")
	}
	if fh.Size > u.opts.MaxBytes {
		return nil, u.tooLarge()
	}

	f, err := fh.Open()
	if err != nil {
		return nil, httperr.Upload("Uploaded file could not be read")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, u.opts.MaxBytes+1))
	if err != nil {
		return nil, httperr.Upload("Uploaded file could not be read")
	}

	return u.Upload(ctx, namespace, ownerID, fh.Filename, data)
}

// Upload validates an image and stores it under
// <namespace>/<ownerID>/<ksuid>_<filename>.
func (u *Uploader) Upload(ctx context.Context, namespace, ownerID, filename string, data []byte) (*Result, error) {
	if int64(len(data)) > u.opts.MaxBytes {
		return nil, u.tooLarge()
	}

	info, err := Inspect(data)
	if err != nil {
		return nil, err
	}

	if u.opts.Normalize {
		var changed bool
		data, info, changed, err = Normalize(data, info, u.opts.MaxDimension)
		if err != nil {
			return nil, err
		}
		if changed {
			filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".webp"
		}
	}

	key := ObjectKey(namespace, ownerID, filename)
	url, err := u.store.Put(ctx, key, info.ContentType, data)
	if err != nil {
		return nil, httperr.Internal("failed to store upload", err)
	}

	return &Result{URL: url, Key: key, ContentType: info.ContentType, Size: len(data)}, nil
}

func (u *Uploader) tooLarge() error {
	return httperr.Upload(fmt.Sprintf("File exceeds the %d MB limit", u.opts.MaxBytes/(1024*1024)))
}

func ObjectKey(namespace, ownerID, filename string) string {
	return path.Join(namespace, ownerID, idgen.NewKSUID()+"_"+SanitizeFilename(filename))
}

// SanitizeFilename keeps letters, digits, dot, dash and underscore.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "upload"
	}
	if len(out) > maxFilenameLen {
		ext := filepath.Ext(out)
		if len(ext) > 10 {
			ext = ""
		}
		out = out[:maxFilenameLen-len(ext)] + ext
	}
	return out
}
