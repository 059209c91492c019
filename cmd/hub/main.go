package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/ps2hub/cmd/hub/commands"
	"github.com/fivetwenty-io/ps2hub/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "hub",
	Short: "PS2 Homebrew Hub CLI",
	Long: `A command-line interface for the PS2 Homebrew Hub API.

Browse games, tutorials and snippets, submit content and, with the
moderator role, review pending submissions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.ps2hub/config.yml)")
	rootCmd.PersistentFlags().StringP("api", "a", "", "API base URL (default from PS2HUB_API_URL)")
	rootCmd.PersistentFlags().StringP("token", "t", "", "bearer token, overrides the stored login")
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log HTTP requests and responses")
	rootCmd.PersistentFlags().String("cache", "", "response cache backend (none, memory, nats)")
	rootCmd.PersistentFlags().Int("retries", 0, "retry failed requests this many times")

	// Bind flags to viper
	for _, name := range []string{"config", "api", "token", "output", "verbose", "cache", "retries"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewLogoutCommand())
	rootCmd.AddCommand(commands.NewTokenCommand())
	rootCmd.AddCommand(commands.NewResourceCommand())
	rootCmd.AddCommand(commands.NewGamesCommand())
	rootCmd.AddCommand(commands.NewTutorialsCommand())
	rootCmd.AddCommand(commands.NewSnippetsCommand())
	rootCmd.AddCommand(commands.NewSubmissionsCommand())
	rootCmd.AddCommand(commands.NewPasswordCheckCommand())
	rootCmd.AddCommand(commands.NewCurrencyCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.ps2hub/config.yml
		viper.AddConfigPath(filepath.Join(home, constants.ConfigDirName))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("PS2HUB")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
