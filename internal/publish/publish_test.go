package publish

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/slideshow/internal/config"
)

func TestObjectKey(t *testing.T) {
	local := filepath.Join("tmp", "out", "deck.pptx")
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "deck.pptx"},
		{"decks", "decks/deck.pptx"},
		{"/decks/2024/", "decks/2024/deck.pptx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ObjectKey(tt.prefix, local), "prefix %q", tt.prefix)
	}
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://s3.example.com/decks/team%20a/q1%20review.pptx",
		PublicURL("https://s3.example.com/", "decks", "team a/q1 review.pptx"))
}

func TestNewUploaderRejectsBadEndpoint(t *testing.T) {
	_, err := NewUploader(context.Background(), config.S3{
		Endpoint:  "https://not-a-host-only.example.com/path",
		Bucket:    "decks",
		AccessKey: "ak",
		SecretKey: "sk",
	}, nil)
	require.Error(t, err)
}
