package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/ps2hub/internal/constants"
	"github.com/fivetwenty-io/ps2hub/pkg/forms"
)

// NewPasswordCheckCommand creates the password-check command. It exits
// with an error for passwords the sign up form would refuse.
func NewPasswordCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "password-check [PASSWORD]",
		Short: "Score a password like the sign up form does",
		Long:  "Score a password for length, mixed case, digits and special characters. Prompts when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string

			if len(args) == 1 {
				password = args[0]
			} else {
				secret, err := readSecret(cmd, bufio.NewReader(cmd.InOrStdin()), "Password: ")
				if err != nil {
					return err
				}

				password = strings.TrimRight(secret, "\r\n")
			}

			strength := forms.CheckPassword(password)

			output := viper.GetString("output")
			if output == constants.FormatJSON || output == constants.FormatYAML {
				err := renderStructured(cmd.OutOrStdout(), strength)
				if err != nil {
					return err
				}
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%d/%d)\n", strength.Message, strength.Score, forms.MaxPasswordScore)
			}

			if !strength.Status {
				return constants.ErrWeakPassword
			}

			return nil
		},
	}
}

// NewCurrencyCommand creates the currency command group.
func NewCurrencyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currency",
		Short: "Convert currency strings",
		Long:  "Parse and format Brazilian real and US dollar amounts",
	}

	cmd.AddCommand(newCurrencyParseCommand())
	cmd.AddCommand(newCurrencyFormatCommand())

	return cmd
}

func newCurrencyParseCommand() *cobra.Command {
	var currency string

	cmd := &cobra.Command{
		Use:   "parse AMOUNT",
		Short: "Parse a currency string into a number",
		Long:  `Parse a currency string such as "R$ 1.000,50" or "$1,000.50". Invalid input prints 0.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value float64

			switch strings.ToLower(currency) {
			case constants.CurrencyBRL:
				value = forms.ConvertBrazilianCurrencyToNumber(args[0])
			case constants.CurrencyUSD:
				value = forms.ConvertUSCurrencyToNumber(args[0])
			default:
				return fmt.Errorf("%w: %q", constants.ErrUnknownCurrency, currency)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), forms.NumberToString(value))

			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "format", constants.CurrencyBRL, "currency of the input (brl, usd)")

	return cmd
}

func newCurrencyFormatCommand() *cobra.Command {
	var currency string

	cmd := &cobra.Command{
		Use:   "format NUMBER",
		Short: "Format a number as currency",
		Long:  "Format a plain number with the currency's symbol and separators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := forms.ParseNumberStrict(args[0])
			if err != nil {
				return err
			}

			var formatted string

			switch strings.ToLower(currency) {
			case constants.CurrencyBRL:
				formatted = forms.FormatBrazilianCurrency(value)
			case constants.CurrencyUSD:
				formatted = forms.FormatUSCurrency(value)
			default:
				return fmt.Errorf("%w: %q", constants.ErrUnknownCurrency, currency)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatted)

			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "format", constants.CurrencyBRL, "currency of the output (brl, usd)")

	return cmd
}
