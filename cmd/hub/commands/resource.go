package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ps2hub/internal/constants"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// NewResourceCommand creates the generic resource command group.
func NewResourceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resource",
		Aliases: []string{"res", "r"},
		Short:   "Call any API resource",
		Long:    "Run find, get, create, update and delete against any endpoint, e.g. /games or /comments",
	}

	cmd.AddCommand(newResourceFindCommand())
	cmd.AddCommand(newResourceGetCommand())
	cmd.AddCommand(newResourceCreateCommand())
	cmd.AddCommand(newResourceUpdateCommand())
	cmd.AddCommand(newResourceDeleteCommand())

	return cmd
}

func newResourceFindCommand() *cobra.Command {
	flags := &requestFlags{}

	cmd := &cobra.Command{
		Use:   "find ENDPOINT",
		Short: "List a collection",
		Long:  "GET the collection at ENDPOINT, or ENDPOINT plus --sub-endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			result, err := client.Resource(endpointArg(args[0])).Find(ctx, opts)
			if err != nil {
				return err
			}

			return writeResult(cmd.OutOrStdout(), result, opts.ResponseType)
		},
	}

	flags.register(cmd, false)

	return cmd
}

func newResourceGetCommand() *cobra.Command {
	flags := &requestFlags{}

	cmd := &cobra.Command{
		Use:   "get ENDPOINT ID",
		Short: "Get one resource",
		Long:  "GET ENDPOINT/ID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}

			opts, err := flags.options()
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			result, err := client.Resource(endpointArg(args[0])).FindByID(ctx, id, opts)
			if err != nil {
				return err
			}

			return writeResult(cmd.OutOrStdout(), result, opts.ResponseType)
		},
	}

	flags.register(cmd, false)

	return cmd
}

// bodyFlags describe a request payload.
type bodyFlags struct {
	data     string
	dataFile string
	fields   []string
	files    []string
}

func (f *bodyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.data, "data", "d", "", "JSON request body")
	cmd.Flags().StringVar(&f.dataFile, "data-file", "", "read the JSON request body from a file")
	cmd.Flags().StringArrayVarP(&f.fields, "field", "F", nil, "form field as key=value (repeatable, sends multipart)")
	cmd.Flags().StringArrayVar(&f.files, "file", nil, "form file as key=path (repeatable, sends multipart)")
}

// body returns a *hub.Form when fields or files are given, else the JSON
// document from --data or --data-file.
func (f *bodyFlags) body() (any, error) {
	if len(f.fields) > 0 || len(f.files) > 0 {
		return f.form()
	}

	data := f.data

	if f.dataFile != "" {
		path, err := validateFilePath(f.dataFile)
		if err != nil {
			return nil, err
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.dataFile, err)
		}

		data = string(content)
	}

	if strings.TrimSpace(data) == "" {
		return nil, constants.ErrDataRequired
	}

	if !json.Valid([]byte(data)) {
		return nil, constants.ErrInvalidJSONData
	}

	return json.RawMessage(data), nil
}

func (f *bodyFlags) form() (*hub.Form, error) {
	form := hub.NewForm()

	for _, pair := range f.fields {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidKeyValue, pair)
		}

		form.AddField(key, value)
	}

	for _, pair := range f.files {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidKeyValue, pair)
		}

		path, err := validateFilePath(value)
		if err != nil {
			return nil, err
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", value, err)
		}

		form.AddFileBytes(key, filepath.Base(path), "", content)
	}

	return form, nil
}

func newResourceCreateCommand() *cobra.Command {
	flags := &requestFlags{}
	payload := &bodyFlags{}

	cmd := &cobra.Command{
		Use:   "create ENDPOINT",
		Short: "Create a resource",
		Long:  "POST a JSON document or multipart form to ENDPOINT. Authenticated by default.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := payload.body()
			if err != nil {
				return err
			}

			opts, err := flags.options()
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			result, err := client.Resource(endpointArg(args[0])).Create(ctx, body, opts)
			if err != nil {
				return err
			}

			return writeResult(cmd.OutOrStdout(), result, opts.ResponseType)
		},
	}

	flags.register(cmd, true)
	payload.register(cmd)

	return cmd
}

func newResourceUpdateCommand() *cobra.Command {
	flags := &requestFlags{}
	payload := &bodyFlags{}

	cmd := &cobra.Command{
		Use:   "update ENDPOINT ID",
		Short: "Update a resource",
		Long:  "PATCH ENDPOINT/ID with a JSON document or multipart form. Authenticated by default.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}

			body, err := payload.body()
			if err != nil {
				return err
			}

			opts, err := flags.options()
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			result, err := client.Resource(endpointArg(args[0])).Update(ctx, id, body, opts)
			if err != nil {
				return err
			}

			return writeResult(cmd.OutOrStdout(), result, opts.ResponseType)
		},
	}

	flags.register(cmd, true)
	payload.register(cmd)

	return cmd
}

func newResourceDeleteCommand() *cobra.Command {
	flags := &requestFlags{}

	cmd := &cobra.Command{
		Use:   "delete ENDPOINT ID",
		Short: "Delete a resource",
		Long:  "DELETE ENDPOINT/ID. Authenticated by default.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}

			opts, err := flags.options()
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			result, err := client.Resource(endpointArg(args[0])).Delete(ctx, id, opts)
			if err != nil {
				return err
			}

			return writeResult(cmd.OutOrStdout(), result, opts.ResponseType)
		},
	}

	flags.register(cmd, true)

	return cmd
}

// endpointArg accepts "games" as well as "/games".
func endpointArg(arg string) string {
	return "/" + strings.Trim(arg, "/")
}
