package storage

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/sharing"
	log "github.com/sirupsen/logrus"
)

// Storage is a cloud file store that can hand out public links to uploaded files
type Storage interface {
	Upload(remotePath string, content []byte) error
	// TemporaryLink returns a short-lived direct download link
	TemporaryLink(remotePath string) (string, error)
	// SharedLink returns a long-lived link to the file's preview page
	SharedLink(remotePath string) (string, error)
}

type dropboxStorage struct {
	tokenFile string

	once    sync.Once
	initErr error
	files   files.Client
	sharing sharing.Client
}

// NewDropbox creates a Storage backed by Dropbox. The access token is read from tokenFile
// on first use, so the store can be built before the token exists.
func NewDropbox(tokenFile string) Storage {
	return &dropboxStorage{tokenFile: tokenFile}
}

func (s *dropboxStorage) init() error {
	s.once.Do(func() {
		raw, err := os.ReadFile(s.tokenFile)
		if err != nil {
			s.initErr = fmt.Errorf("failed to read storage token from %s: %w", s.tokenFile, err)
			return
		}
		token := strings.TrimSpace(string(raw))
		if token == "" {
			s.initErr = fmt.Errorf("storage token file %s is empty", s.tokenFile)
			return
		}

		cfg := dropbox.Config{
			Token:    token,
			LogLevel: dropbox.LogOff,
		}
		s.files = files.New(cfg)
		s.sharing = sharing.New(cfg)
		log.Debugf("Dropbox client initialized from %s", s.tokenFile)
	})
	return s.initErr
}

func (s *dropboxStorage) Upload(remotePath string, content []byte) error {
	if err := s.init(); err != nil {
		return err
	}

	arg := files.NewUploadArg(remotePath)
	if _, err := s.files.Upload(arg, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("failed to upload %s: %w", remotePath, err)
	}

	log.Infof("☁️ Uploaded %s (%d bytes)", remotePath, len(content))
	return nil
}

func (s *dropboxStorage) TemporaryLink(remotePath string) (string, error) {
	if err := s.init(); err != nil {
		return "", err
	}

	res, err := s.files.GetTemporaryLink(files.NewGetTemporaryLinkArg(remotePath))
	if err != nil {
		return "", fmt.Errorf("failed to get temporary link for %s: %w", remotePath, err)
	}
	return res.Link, nil
}

func (s *dropboxStorage) SharedLink(remotePath string) (string, error) {
	if err := s.init(); err != nil {
		return "", err
	}

	res, err := s.sharing.CreateSharedLinkWithSettings(sharing.NewCreateSharedLinkWithSettingsArg(remotePath))
	if err != nil {
		return "", fmt.Errorf("failed to create shared link for %s: %w", remotePath, err)
	}

	switch link := res.(type) {
	case *sharing.FileLinkMetadata:
		return link.Url, nil
	case *sharing.FolderLinkMetadata:
		return link.Url, nil
	default:
		return "", fmt.Errorf("unexpected shared link type %T for %s", res, remotePath)
	}
}
