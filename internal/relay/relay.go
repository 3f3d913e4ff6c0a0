package relay

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"autolist/lister/internal/config"
	"autolist/lister/internal/domain"
	"autolist/lister/internal/proxy"
	"autolist/lister/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

const defaultImageExt = ".jpg"

// Relay re-hosts a scraped image so the marketplace can fetch it from a durable URL
type Relay interface {
	Relay(ctx context.Context, sourceURL string) (*domain.HostedImage, error)
}

type relay struct {
	httpClient *resty.Client
	store      storage.Storage
	stagingDir string
	remoteDir  string
}

func New(cfg config.RelayConfig, store storage.Storage, proxies proxy.ProxySupplier) Relay {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetRetryCount(0)

	if proxies != nil {
		if proxyURL := proxies.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("🔗 Image downloads using proxy: %s", proxyURL)
		}
	}

	return &relay{
		httpClient: client,
		store:      store,
		stagingDir: cfg.StagingDir,
		remoteDir:  cfg.RemoteDir,
	}
}

// Relay downloads sourceURL, uploads it to storage and verifies the public link.
// The staged file is removed only after the link answers, failures leave it for inspection.
func (r *relay) Relay(ctx context.Context, sourceURL string) (*domain.HostedImage, error) {
	log.Infof("📥 Downloading image %s", sourceURL)

	content, err := r.download(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(r.stagingDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging dir %s: %w", r.stagingDir, err)
	}

	filename := uuid.NewString() + imageExt(sourceURL)
	image := &domain.HostedImage{
		SourceURL:  sourceURL,
		LocalPath:  filepath.Join(r.stagingDir, filename),
		RemotePath: path.Join(r.remoteDir, filename),
	}

	if err := os.WriteFile(image.LocalPath, content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to stage image %s: %w", image.LocalPath, err)
	}

	if err := r.store.Upload(image.RemotePath, content); err != nil {
		return nil, err
	}

	image.URL, err = r.publicURL(image.RemotePath)
	if err != nil {
		return nil, err
	}

	if err := r.checkReachable(ctx, image.URL); err != nil {
		log.Errorf("❌ Hosted image %s is not reachable, keeping %s", image.URL, image.LocalPath)
		return nil, err
	}

	if err := os.Remove(image.LocalPath); err != nil {
		log.Warnf("⚠️ Failed to remove staged image %s: %v", image.LocalPath, err)
	}

	log.Infof("✅ Image hosted at %s", image.URL)
	return image, nil
}

func (r *relay) download(ctx context.Context, sourceURL string) ([]byte, error) {
	resp, err := r.httpClient.R().
		SetContext(ctx).
		Get(sourceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download image %s: %w", sourceURL, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to download image %s: status %s", sourceURL, resp.Status())
	}

	body := resp.Bytes()
	if len(body) == 0 {
		return nil, fmt.Errorf("failed to download image %s: empty body", sourceURL)
	}
	return body, nil
}

// publicURL prefers a temporary direct link and falls back to a shared link
// rewritten to serve raw bytes
func (r *relay) publicURL(remotePath string) (string, error) {
	link, err := r.store.TemporaryLink(remotePath)
	if err == nil {
		return link, nil
	}
	log.Warnf("⚠️ Temporary link failed, falling back to shared link: %v", err)

	shared, err := r.store.SharedLink(remotePath)
	if err != nil {
		return "", err
	}
	return DirectLink(shared), nil
}

func (r *relay) checkReachable(ctx context.Context, imageURL string) error {
	resp, err := r.httpClient.R().
		SetContext(ctx).
		Head(imageURL)
	if err != nil {
		return fmt.Errorf("failed to reach hosted image %s: %w", imageURL, err)
	}
	if resp.IsError() {
		return fmt.Errorf("hosted image %s returned status %s", imageURL, resp.Status())
	}
	return nil
}

// DirectLink turns a shared preview link into one that serves the file itself
func DirectLink(shared string) string {
	u, err := url.Parse(shared)
	if err != nil {
		return shared
	}

	if u.Host == "www.dropbox.com" {
		u.Host = "dl.dropboxusercontent.com"
	}
	q := u.Query()
	if q.Get("dl") == "0" {
		q.Del("dl")
		q.Set("raw", "1")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func imageExt(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return defaultImageExt
	}
	ext := strings.ToLower(path.Ext(u.Path))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	default:
		return defaultImageExt
	}
}
