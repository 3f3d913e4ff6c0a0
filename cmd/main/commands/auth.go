package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var authCode string

func init() {
	authCmd.PersistentFlags().StringVar(&authCode, "code", "", "Authorization code. Prompted for when empty.")
	authCmd.AddCommand(authEbayCmd, authDropboxCmd)
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "One-time authorization for the marketplace and the image storage account.",
}

var authEbayCmd = &cobra.Command{
	Use:   "ebay",
	Short: "Exchanges a marketplace authorization code and saves the token to the credentials file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Open this URL, approve access and copy the code parameter from the page you land on:")
		fmt.Fprintln(out, app.Auth.EbayAuthURL(uuid.NewString()))

		code, err := promptCode(cmd)
		if err != nil {
			return err
		}
		if err := app.Auth.ExchangeEbay(cmd.Context(), code); err != nil {
			return err
		}

		fmt.Fprintf(out, "Token saved to %s\n", app.Config.Credentials.File)
		return nil
	},
}

var authDropboxCmd = &cobra.Command{
	Use:   "dropbox",
	Short: "Exchanges a storage authorization code and saves the access token.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Open this URL, approve access and copy the code shown:")
		fmt.Fprintln(out, app.Auth.DropboxAuthURL())

		code, err := promptCode(cmd)
		if err != nil {
			return err
		}
		if err := app.Auth.ExchangeDropbox(cmd.Context(), code); err != nil {
			return err
		}

		fmt.Fprintf(out, "Token saved to %s\n", app.Config.Dropbox.TokenFile)
		return nil
	},
}

func promptCode(cmd *cobra.Command) (string, error) {
	if authCode != "" {
		return authCode, nil
	}

	fmt.Fprint(cmd.OutOrStdout(), "Enter the authorization code: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read authorization code: %w", err)
	}

	code := strings.TrimSpace(line)
	if code == "" {
		return "", errors.New("authorization code is empty")
	}
	return code, nil
}
