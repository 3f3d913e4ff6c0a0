package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"autolist/lister/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ebay.yaml")
	content := `token: v^1.1#abc
appid: app-1
devid: dev-1
certid: cert-1
payment_policy_id: 111
return_policy_id: "222"
fulfillment_policy_id: "333"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	store := NewFileStore(path)
	creds, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, "v^1.1#abc", creds.Token)
	assert.Equal(t, "app-1", creds.AppID)
	assert.Equal(t, "111", creds.PaymentPolicyID)
	assert.NoError(t, Validate(creds))

	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "v^1.1#abc", token)
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := store.Load()
	require.Error(t, err)

	_, err = store.Token()
	require.Error(t, err)
}

func TestFileStoreSaveMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ebay.yaml")
	require.NoError(t, os.WriteFile(path, []byte("payment_policy_id: \"42\"\n"), 0o600))

	store := NewFileStore(path)
	require.NoError(t, store.Save(map[string]string{
		KeyToken: "fresh-token",
		KeyAppID: "app-2",
	}))

	creds, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", creds.Token)
	assert.Equal(t, "app-2", creds.AppID)
	assert.Equal(t, "42", creds.PaymentPolicyID)
}

func TestFileStoreSaveCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ebay.yaml")

	store := NewFileStore(path)
	require.NoError(t, store.Save(map[string]string{KeyToken: "t"}))

	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "t", token)
}

func TestValidateNamesEveryMissingField(t *testing.T) {
	err := Validate(&domain.Credentials{
		Token:          "t",
		AppID:          "a",
		CertID:         "c",
		ReturnPolicyID: "r",
	})
	require.Error(t, err)

	var missing *MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{KeyDevID, KeyPaymentPolicyID, KeyFulfillmentPolicyID}, missing.Fields)
	assert.Contains(t, err.Error(), "devid, payment_policy_id, fulfillment_policy_id")
}
