package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"autolist/lister/internal/domain"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Keys of the credential file
const (
	KeyToken               = "token"
	KeyAppID               = "appid"
	KeyDevID               = "devid"
	KeyCertID              = "certid"
	KeyPaymentPolicyID     = "payment_policy_id"
	KeyReturnPolicyID      = "return_policy_id"
	KeyFulfillmentPolicyID = "fulfillment_policy_id"
)

// MissingFieldsError names every required credential absent from the file
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required marketplace credentials: %s", strings.Join(e.Fields, ", "))
}

// Store is an opaque key-value provider for marketplace credentials
type Store interface {
	Load() (*domain.Credentials, error)
	Token() (string, error)
	Save(values map[string]string) error
}

type fileStore struct {
	path string
}

func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

func (s *fileStore) read() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read credentials file %s: %w", s.path, err)
	}
	return v, nil
}

// Load reads the credential file. Fields are not validated here, see Validate.
func (s *fileStore) Load() (*domain.Credentials, error) {
	v, err := s.read()
	if err != nil {
		return nil, err
	}

	var creds domain.Credentials
	if err := v.Unmarshal(&creds); err != nil {
		return nil, fmt.Errorf("unable to decode credentials file %s: %w", s.path, err)
	}

	return &creds, nil
}

// Token returns the bearer token used for taxonomy lookups
func (s *fileStore) Token() (string, error) {
	creds, err := s.Load()
	if err != nil {
		return "", err
	}
	if creds.Token == "" {
		return "", &MissingFieldsError{Fields: []string{KeyToken}}
	}
	return creds.Token, nil
}

// Save merges values into the credential file, creating it when absent
func (s *fileStore) Save(values map[string]string) error {
	v, err := s.read()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return err
		}
		log.Infof("📝 Creating new credentials file %s", s.path)
		v = viper.New()
		v.SetConfigType("yaml")
	}

	for key, value := range values {
		v.Set(key, value)
	}

	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write credentials file %s: %w", s.path, err)
	}
	return nil
}

// Validate checks the four identity fields and the three policy ids
func Validate(creds *domain.Credentials) error {
	required := []struct {
		key   string
		value string
	}{
		{KeyAppID, creds.AppID},
		{KeyDevID, creds.DevID},
		{KeyCertID, creds.CertID},
		{KeyToken, creds.Token},
		{KeyPaymentPolicyID, creds.PaymentPolicyID},
		{KeyReturnPolicyID, creds.ReturnPolicyID},
		{KeyFulfillmentPolicyID, creds.FulfillmentPolicyID},
	}

	var missing []string
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.key)
		}
	}

	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}
