package relay

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"autolist/lister/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	base       string
	uploads    map[string][]byte
	tempErr    error
	sharedErr  error
	sharedURLs int
}

func (f *fakeStorage) Upload(remotePath string, content []byte) error {
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[remotePath] = content
	return nil
}

func (f *fakeStorage) TemporaryLink(remotePath string) (string, error) {
	if f.tempErr != nil {
		return "", f.tempErr
	}
	return f.base + "/hosted" + remotePath, nil
}

func (f *fakeStorage) SharedLink(remotePath string) (string, error) {
	f.sharedURLs++
	if f.sharedErr != nil {
		return "", f.sharedErr
	}
	return f.base + "/hosted" + remotePath + "?dl=0", nil
}

func newImageServer(t *testing.T, hostedStatus int) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/images/I/71main._AC_SL1500_.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write([]byte("jpeg-bytes"))
		case strings.HasPrefix(r.URL.Path, "/hosted/"):
			assert.Equal(t, http.MethodHead, r.Method)
			w.WriteHeader(hostedStatus)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func stagedFiles(t *testing.T, dir string) []string {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRelaySuccess(t *testing.T) {
	server := newImageServer(t, http.StatusOK)
	staging := filepath.Join(t.TempDir(), "amazon_images")
	store := &fakeStorage{base: server.URL}
	r := New(config.RelayConfig{StagingDir: staging, RemoteDir: "/amazon_images", Timeout: 5}, store, nil)

	image, err := r.Relay(context.Background(), server.URL+"/images/I/71main._AC_SL1500_.jpg")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(image.RemotePath, "/amazon_images/"))
	assert.True(t, strings.HasSuffix(image.RemotePath, ".jpg"))
	assert.Equal(t, server.URL+"/hosted"+image.RemotePath, image.URL)
	assert.Equal(t, []byte("jpeg-bytes"), store.uploads[image.RemotePath])
	assert.Equal(t, 0, store.sharedURLs)

	// Staged copy is gone once the link answers
	assert.Empty(t, stagedFiles(t, staging))
}

func TestRelaySharedLinkFallback(t *testing.T) {
	server := newImageServer(t, http.StatusOK)
	staging := t.TempDir()
	store := &fakeStorage{base: server.URL, tempErr: errors.New("temporary links disabled")}
	r := New(config.RelayConfig{StagingDir: staging, RemoteDir: "/amazon_images", Timeout: 5}, store, nil)

	image, err := r.Relay(context.Background(), server.URL+"/images/I/71main._AC_SL1500_.jpg")
	require.NoError(t, err)

	assert.Equal(t, 1, store.sharedURLs)
	assert.Equal(t, server.URL+"/hosted"+image.RemotePath+"?raw=1", image.URL)
}

func TestRelayUnreachableKeepsFile(t *testing.T) {
	server := newImageServer(t, http.StatusForbidden)
	staging := t.TempDir()
	store := &fakeStorage{base: server.URL}
	r := New(config.RelayConfig{StagingDir: staging, RemoteDir: "/amazon_images", Timeout: 5}, store, nil)

	_, err := r.Relay(context.Background(), server.URL+"/images/I/71main._AC_SL1500_.jpg")
	assert.Error(t, err)
	assert.Len(t, stagedFiles(t, staging), 1)
}

func TestRelayDownloadFailure(t *testing.T) {
	server := newImageServer(t, http.StatusOK)
	staging := filepath.Join(t.TempDir(), "never-created")
	store := &fakeStorage{base: server.URL}
	r := New(config.RelayConfig{StagingDir: staging, RemoteDir: "/amazon_images", Timeout: 5}, store, nil)

	_, err := r.Relay(context.Background(), server.URL+"/missing.jpg")
	assert.Error(t, err)
	assert.Empty(t, store.uploads)
	assert.NoDirExists(t, staging)
}

func TestDirectLink(t *testing.T) {
	assert.Equal(t,
		"https://dl.dropboxusercontent.com/s/abc123/x.jpg?raw=1",
		DirectLink("https://www.dropbox.com/s/abc123/x.jpg?dl=0"))

	assert.Equal(t,
		"https://dl.dropboxusercontent.com/scl/fi/abc/x.jpg?raw=1&rlkey=k",
		DirectLink("https://www.dropbox.com/scl/fi/abc/x.jpg?rlkey=k&dl=0"))

	assert.Equal(t, "https://cdn.example.com/x.jpg", DirectLink("https://cdn.example.com/x.jpg"))
}

func TestImageExt(t *testing.T) {
	assert.Equal(t, ".png", imageExt("https://host/a/b.PNG?x=1"))
	assert.Equal(t, ".jpg", imageExt("https://host/a/b"))
	assert.Equal(t, ".jpg", imageExt("https://host/a/b.exe"))
}
