package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"autolist/lister/internal/config"
	"autolist/lister/internal/credentials"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Authorizer performs the one-time authorization code exchanges for the marketplace
// and the storage account
type Authorizer struct {
	ebay      *oauth2.Config
	ebayDevID string
	dropbox   *oauth2.Config
	tokenFile string
	store     credentials.Store
}

func NewAuthorizer(ebayCfg config.EbayAuthConfig, dropboxCfg config.DropboxConfig, store credentials.Store) *Authorizer {
	return &Authorizer{
		ebay: &oauth2.Config{
			ClientID:     ebayCfg.ClientID,
			ClientSecret: ebayCfg.ClientSecret,
			RedirectURL:  ebayCfg.RuName,
			Scopes:       ebayCfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   ebayCfg.AuthURL,
				TokenURL:  ebayCfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		ebayDevID: ebayCfg.DevID,
		dropbox: &oauth2.Config{
			ClientID:     dropboxCfg.AppKey,
			ClientSecret: dropboxCfg.AppSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  dropboxCfg.AuthURL,
				TokenURL: dropboxCfg.TokenURL,
			},
		},
		tokenFile: dropboxCfg.TokenFile,
		store:     store,
	}
}

// EbayAuthURL is the consent page the user opens in a browser
func (a *Authorizer) EbayAuthURL(state string) string {
	return a.ebay.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "login"))
}

// ExchangeEbay trades the code from the redirect for a user token and writes it,
// together with the application ids, into the credential file
func (a *Authorizer) ExchangeEbay(ctx context.Context, code string) error {
	if a.ebay.ClientID == "" || a.ebay.ClientSecret == "" {
		return errors.New("ebay_auth.client_id and ebay_auth.client_secret must be configured")
	}

	token, err := a.ebay.Exchange(ctx, decodeCode(code))
	if err != nil {
		return fmt.Errorf("failed to exchange code: %w", err)
	}

	values := map[string]string{
		credentials.KeyToken:  token.AccessToken,
		credentials.KeyAppID:  a.ebay.ClientID,
		credentials.KeyCertID: a.ebay.ClientSecret,
	}
	if a.ebayDevID != "" {
		values[credentials.KeyDevID] = a.ebayDevID
	}
	if token.RefreshToken != "" {
		values["refresh_token"] = token.RefreshToken
	}

	if err := a.store.Save(values); err != nil {
		return err
	}

	log.Infof("✅ Marketplace token saved, expires %s", token.Expiry.Format("2006-01-02 15:04"))
	return nil
}

// DropboxAuthURL is the consent page for the no-redirect flow. The user copies
// the displayed code back.
func (a *Authorizer) DropboxAuthURL() string {
	return a.dropbox.AuthCodeURL("", oauth2.SetAuthURLParam("token_access_type", "offline"))
}

func (a *Authorizer) ExchangeDropbox(ctx context.Context, code string) error {
	if a.dropbox.ClientID == "" || a.dropbox.ClientSecret == "" {
		return errors.New("dropbox.app_key and dropbox.app_secret must be configured")
	}

	token, err := a.dropbox.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return fmt.Errorf("failed to exchange code: %w", err)
	}

	if err := os.WriteFile(a.tokenFile, []byte(token.AccessToken), 0o600); err != nil {
		return fmt.Errorf("failed to write storage token to %s: %w", a.tokenFile, err)
	}

	log.Infof("✅ Storage token saved to %s", a.tokenFile)
	return nil
}

// decodeCode undoes the URL encoding left on codes copied out of a redirect URL
func decodeCode(code string) string {
	code = strings.TrimSpace(code)
	if decoded, err := url.QueryUnescape(code); err == nil {
		return decoded
	}
	return code
}
