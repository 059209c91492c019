package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/ps2hub/internal/constants"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

const configFileName = "config.yml"

// Config represents the CLI configuration file.
type Config struct {
	API        string `json:"api,omitempty"         yaml:"api,omitempty"`
	Output     string `json:"output,omitempty"      yaml:"output,omitempty"`
	CookieName string `json:"cookie_name,omitempty" yaml:"cookie_name,omitempty"`
	Cache      string `json:"cache,omitempty"       yaml:"cache,omitempty"`
	NATSURL    string `json:"nats_url,omitempty"    yaml:"nats_url,omitempty"`
	Retries    int    `json:"retries,omitempty"     yaml:"retries,omitempty"`

	// Tokens holds one bearer token per API base URL.
	Tokens map[string]string `json:"tokens,omitempty" yaml:"tokens,omitempty"`
}

// settableKeys are the keys `config set` and `config unset` accept.
var settableKeys = []string{"api", "output", "cookie_name", "cache", "nats_url", "retries"}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in ~/.ps2hub/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration with tokens masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			masked := *config
			masked.Tokens = make(map[string]string, len(config.Tokens))

			for api, token := range config.Tokens {
				masked.Tokens[api] = maskToken(token)
			}

			switch viper.GetString("output") {
			case constants.FormatJSON, constants.FormatYAML:
				return renderStructured(cmd.OutOrStdout(), masked)
			default:
				return displayConfigTable(cmd.OutOrStdout(), &masked)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + strings.Join(settableKeys, ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}

			config, err := readConfigFile(path)
			if err != nil {
				return err
			}

			err = setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = writeConfigFile(path, config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value so the default applies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}

			config, err := readConfigFile(path)
			if err != nil {
				return err
			}

			err = unsetConfigValue(config, args[0])
			if err != nil {
				return err
			}

			err = writeConfigFile(path, config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])

			return nil
		},
	}
}

// setConfigValue validates and applies one key.
func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "api":
		config.API = normalizeAPIURL(value)
	case "output":
		if !slices.Contains([]string{constants.FormatTable, constants.FormatJSON, constants.FormatYAML}, value) {
			return fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, value)
		}

		config.Output = value
	case "cookie_name":
		config.CookieName = value
	case "cache":
		switch hub.CacheType(value) {
		case hub.CacheTypeNone, hub.CacheTypeMemory, hub.CacheTypeNATS:
			config.Cache = value
		default:
			return fmt.Errorf("%w: %s", hub.ErrUnsupportedCacheType, value)
		}
	case "nats_url":
		config.NATSURL = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil || retries < 0 {
			return fmt.Errorf("%w: %q", constants.ErrInvalidRetries, value)
		}

		config.Retries = retries
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func unsetConfigValue(config *Config, key string) error {
	switch key {
	case "api":
		config.API = ""
	case "output":
		config.Output = ""
	case "cookie_name":
		config.CookieName = ""
	case "cache":
		config.Cache = ""
	case "nats_url":
		config.NATSURL = ""
	case "retries":
		config.Retries = 0
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

// loadConfig returns the config file overlaid with flags and PS2HUB_*
// environment variables.
func loadConfig() (*Config, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	config, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	overlay := map[string]*string{
		"api":         &config.API,
		"output":      &config.Output,
		"cookie_name": &config.CookieName,
		"cache":       &config.Cache,
		"nats_url":    &config.NATSURL,
	}

	for key, field := range overlay {
		if value := viper.GetString(key); value != "" {
			*field = value
		}
	}

	if viper.IsSet("retries") && viper.GetInt("retries") > 0 {
		config.Retries = viper.GetInt("retries")
	}

	config.API = normalizeAPIURL(config.API)
	if config.API == "" {
		config.API = normalizeAPIURL(os.Getenv(constants.EnvAPIURL))
	}

	return config, nil
}

// configFilePath returns the file viper read, or ~/.ps2hub/config.yml.
func configFilePath() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	if configFile := viper.GetString("config"); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, configFileName), nil
}

// readConfigFile decodes path. A missing file is an empty config.
func readConfigFile(path string) (*Config, error) {
	config := &Config{}

	// path is the user's own config file
	// #nosec G304
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func writeConfigFile(path string, config *Config) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func normalizeAPIURL(apiURL string) string {
	return strings.TrimRight(strings.TrimSpace(apiURL), "/")
}

func maskToken(token string) string {
	if len(token) <= constants.StringTruncationLimit {
		return constants.MaskedSecret
	}

	return token[:constants.StringTruncationLimit] + constants.MaskedSecret
}

func displayConfigTable(w io.Writer, config *Config) error {
	table := tablewriter.NewWriter(w)
	table.Header("Setting", "Value")

	_ = table.Append("API", valueOrNA(config.API))
	_ = table.Append("Output", valueOrNA(config.Output))
	_ = table.Append("Cookie name", valueOrNA(config.CookieName))
	_ = table.Append("Cache", valueOrNA(config.Cache))
	_ = table.Append("NATS URL", valueOrNA(config.NATSURL))
	_ = table.Append("Retries", strconv.Itoa(config.Retries))

	apis := make([]string, 0, len(config.Tokens))
	for api := range config.Tokens {
		apis = append(apis, api)
	}

	slices.Sort(apis)

	for _, api := range apis {
		_ = table.Append("Token "+api, config.Tokens[api])
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderStructured writes data as JSON or YAML depending on --output.
func renderStructured(w io.Writer, data interface{}) error {
	if viper.GetString("output") == constants.FormatYAML {
		encoder := yaml.NewEncoder(w)

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding to YAML: %w", err)
		}

		return encoder.Close()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding to JSON: %w", err)
	}

	return nil
}
