package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDropboxMissingToken(t *testing.T) {
	s := NewDropbox(filepath.Join(t.TempDir(), "dropbox_token.txt"))

	err := s.Upload("/amazon_images/x.jpg", []byte("data"))
	assert.ErrorContains(t, err, "failed to read storage token")

	_, err = s.TemporaryLink("/amazon_images/x.jpg")
	assert.Error(t, err)
}

func TestDropboxEmptyToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dropbox_token.txt")
	assert.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	_, err := NewDropbox(path).SharedLink("/amazon_images/x.jpg")
	assert.ErrorContains(t, err, "is empty")
}
