package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Put(t *testing.T) {
	s := NewMemoryStore("https://cdn.example.com/")

	url, err := s.Put(context.Background(), "receipts/u1/abc_r.png", "image/png", []byte{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/receipts/u1/abc_r.png", url)

	obj, ok := s.Get("receipts/u1/abc_r.png")
	require.True(t, ok)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, 1, s.Len())
}

func TestBaseURLFor(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com",
		baseURLFor(S3Config{Bucket: "b", PublicBaseURL: "https://cdn.example.com"}))
	assert.Equal(t, "http://localhost:9000/b",
		baseURLFor(S3Config{Bucket: "b", Endpoint: "http://localhost:9000"}))
	assert.Equal(t, "https://b.s3.ap-southeast-1.amazonaws.com",
		baseURLFor(S3Config{Bucket: "b", Region: "ap-southeast-1"}))
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(S3Config{})
	assert.Error(t, err)
}
