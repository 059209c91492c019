package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/ps2hub/internal/constants"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
	"github.com/fivetwenty-io/ps2hub/pkg/hubclient"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		token    string
		noVerify bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a session token",
		Long: `Store the bearer token issued by the hub website for the configured API.

The token is read with a hidden prompt unless --token is given, checked
against /users/me and saved to the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			reader := bufio.NewReader(cmd.InOrStdin())

			if config.API == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "API base URL: ")
				line, _ := reader.ReadString('\n')
				config.API = normalizeAPIURL(line)
			}

			if config.API == "" {
				return constants.ErrNoAPIConfigured
			}

			if token == "" {
				token, err = readSecret(cmd, reader, "Token: ")
				if err != nil {
					return err
				}
			}

			token = strings.TrimSpace(token)
			if token == "" {
				return constants.ErrEmptyToken
			}

			if !noVerify {
				username, err := verifyToken(cmd, config, token)
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", username)
			}

			path, err := configFilePath()
			if err != nil {
				return err
			}

			err = saveAPI(path, config.API)
			if err != nil {
				return err
			}

			err = NewConfigPersister(path).UpdateToken(config.API, token)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Token saved for %s\n", config.API)

			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "token to store instead of prompting")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "save the token without calling /users/me")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session token",
		Long:  "Remove the token stored for the configured API from the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			if config.API == "" {
				return constants.ErrNoAPIConfigured
			}

			if config.Tokens[config.API] == "" {
				return fmt.Errorf("%w: %s", constants.ErrNoTokenStored, config.API)
			}

			path, err := configFilePath()
			if err != nil {
				return err
			}

			err = NewConfigPersister(path).UpdateToken(config.API, "")
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged out of %s\n", config.API)

			return nil
		},
	}
}

// readSecret prompts for a value without echo when stdin is a terminal and
// reads a plain line otherwise.
func readSecret(cmd *cobra.Command, reader *bufio.Reader, prompt string) (string, error) {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), prompt)

	if file, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		secret, err := term.ReadPassword(int(file.Fd()))

		_, _ = fmt.Fprintln(cmd.OutOrStdout())

		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}

		return string(secret), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return line, nil
}

func verifyToken(cmd *cobra.Command, config *Config, token string) (string, error) {
	hubConfig, err := buildHubConfig(config)
	if err != nil {
		return "", err
	}

	hubConfig.TokenSource = nil
	hubConfig.AccessToken = token
	hubConfig.Cache = nil

	ctx := commandContext(cmd)

	client, err := hubclient.New(ctx, hubConfig)
	if err != nil {
		return "", fmt.Errorf("failed to create API client: %w", err)
	}

	me, err := client.Users().Me(ctx, hub.NewRequestOptions())
	if err != nil {
		return "", fmt.Errorf("failed to verify token: %w", err)
	}

	return me.Data.Username, nil
}

// saveAPI records apiURL as the default API when the file has none.
func saveAPI(path, apiURL string) error {
	fileConfig, err := readConfigFile(path)
	if err != nil {
		return err
	}

	if fileConfig.API != "" {
		return nil
	}

	fileConfig.API = apiURL

	return writeConfigFile(path, fileConfig)
}
