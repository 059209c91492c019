package commands

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/ps2hub/internal/constants"
)

// NewTokenCommand creates the token command group.
func NewTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Inspect the stored session token",
		Long:  "Inspect the session token stored by 'hub login'",
	}

	cmd.AddCommand(newTokenStatusCommand())

	return cmd
}

// TokenStatus describes the stored token.
type TokenStatus struct {
	API       string     `json:"api"                  yaml:"api"`
	Token     string     `json:"token"                yaml:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	Expired   bool       `json:"expired"              yaml:"expired"`
	Warning   string     `json:"warning,omitempty"    yaml:"warning,omitempty"`
}

func newTokenStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show token status and expiration",
		Long:  "Show the stored token, masked, and when it expires if it is a JWT",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			if config.API == "" {
				return constants.ErrNoAPIConfigured
			}

			token := config.Tokens[config.API]
			if token == "" {
				return constants.ErrNotAuthenticated
			}

			status := tokenStatus(config.API, token, time.Now())

			output := viper.GetString("output")
			if output == constants.FormatJSON || output == constants.FormatYAML {
				return renderStructured(cmd.OutOrStdout(), status)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Property", "Value")
			_ = table.Append("API", status.API)
			_ = table.Append("Token", status.Token)

			if status.ExpiresAt != nil {
				_ = table.Append("Expires", humanize.Time(*status.ExpiresAt))
				_ = table.Append("Expired", fmt.Sprintf("%t", status.Expired))
			}

			if status.Warning != "" {
				_ = table.Append("Warning", status.Warning)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func tokenStatus(api, token string, now time.Time) TokenStatus {
	status := TokenStatus{
		API:   api,
		Token: maskToken(token),
	}

	expiresAt, err := decodeJWTExpiration(token)
	if err != nil {
		status.Warning = err.Error()

		return status
	}

	status.ExpiresAt = expiresAt
	status.Expired = !now.Before(*expiresAt)

	if !status.Expired && expiresAt.Sub(now) < constants.TokenExpiryWarning {
		status.Warning = "token expires soon, run 'hub login' again"
	}

	return status
}

// decodeJWTExpiration reads the exp claim without verifying the signature.
func decodeJWTExpiration(token string) (*time.Time, error) {
	parts := strings.Split(token, ".")
	if len(parts) != constants.TokenPartsCount {
		return nil, constants.ErrInvalidJWTFormat
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, fmt.Errorf("failed to decode JWT payload: %w", err)
	}

	var claims struct {
		Exp int64 `json:"exp"`
	}

	err = json.Unmarshal(payloadBytes, &claims)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT claims: %w", err)
	}

	if claims.Exp == 0 {
		return nil, constants.ErrNoExpirationClaim
	}

	expTime := time.Unix(claims.Exp, 0)

	return &expTime, nil
}
