package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/ps2hub/internal/constants"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// requestFlags are the per-request options shared by resource commands.
type requestFlags struct {
	params       []string
	headers      []string
	subEndpoint  string
	auth         bool
	responseType string
}

// register adds the flags to cmd. Mutating commands authenticate by default.
func (f *requestFlags) register(cmd *cobra.Command, authByDefault bool) {
	cmd.Flags().StringArrayVarP(&f.params, "param", "p", nil, "query parameter as key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&f.headers, "header", "H", nil, "request header as key=value (repeatable)")
	cmd.Flags().StringVar(&f.subEndpoint, "sub-endpoint", "", "path that replaces the /{id} suffix, e.g. /featured")
	cmd.Flags().BoolVar(&f.auth, "auth", authByDefault, "send the stored bearer token")
	cmd.Flags().StringVar(&f.responseType, "response-type", string(hub.ResponseTypeJSON), "json, text, blob, arraybuffer or stream")
}

// options converts the flags into request options.
func (f *requestFlags) options() (*hub.RequestOptions, error) {
	opts := hub.NewRequestOptions().
		WithSubEndpoint(f.subEndpoint).
		WithResponseType(hub.ResponseType(f.responseType))

	if f.auth {
		opts.WithAuth()
	}

	params, err := parseKeyValues(f.params)
	if err != nil {
		return nil, err
	}

	for key, value := range params {
		opts.WithParam(key, value)
	}

	headers, err := parseKeyValues(f.headers)
	if err != nil {
		return nil, err
	}

	for key, value := range headers {
		opts.WithHeader(key, value)
	}

	return opts, nil
}

// parseKeyValues splits "key=value" pairs. Later keys win.
func parseKeyValues(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidKeyValue, pair)
		}

		values[key] = value
	}

	return values, nil
}

// parseID parses a positive resource id.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidID, arg)
	}

	return id, nil
}

// commandContext returns the command's context or a background one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// validateFilePath rejects relative paths that climb out of the working
// directory and anything that is not a regular file.
func validateFilePath(path string) (string, error) {
	cleaned := filepath.Clean(path)
	if !filepath.IsAbs(cleaned) && (cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator))) {
		return "", fmt.Errorf("%w: %s", constants.ErrDirectoryTraversalDetected, path)
	}

	info, err := os.Stat(cleaned)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", constants.ErrNotRegularFile, path)
	}

	return cleaned, nil
}

// writeResult prints a result according to --output. Non-JSON bodies are
// written as is.
func writeResult[T any](w io.Writer, result *hub.Result[T], responseType hub.ResponseType) error {
	switch responseType.OrDefault() {
	case hub.ResponseTypeStream:
		defer func() { _ = result.Close() }()

		_, err := io.Copy(w, result.Stream)
		if err != nil {
			return fmt.Errorf("reading response stream: %w", err)
		}

		return nil
	case hub.ResponseTypeText, hub.ResponseTypeBlob, hub.ResponseTypeArrayBuffer:
		_, err := w.Write(result.Raw)

		return err
	}

	if len(result.Raw) == 0 {
		_, _ = fmt.Fprintf(w, "OK (%d)\n", result.StatusCode)

		return nil
	}

	var data interface{}

	err := json.Unmarshal(result.Raw, &data)
	if err != nil {
		return fmt.Errorf("%w: %w", hub.ErrInvalidResponse, err)
	}

	return renderStructured(w, data)
}

// contentRow is one line of a content listing.
type contentRow struct {
	ID      int64
	Title   string
	Creator *hub.User
	Status  string
	Created *time.Time
}

// renderContentTable prints rows as a table, or JSON/YAML with --output.
func renderContentTable(w io.Writer, rows []contentRow, meta hub.Pagination, raw interface{}) error {
	output := viper.GetString("output")
	if output == constants.FormatJSON || output == constants.FormatYAML {
		return renderStructured(w, raw)
	}

	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "No results")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Title", "Creator", "Status", "Created")

	for _, row := range rows {
		creator := constants.NotAvailable
		if row.Creator != nil && row.Creator.Username != "" {
			creator = row.Creator.Username
		}

		created := constants.NotAvailable
		if row.Created != nil {
			created = humanize.Time(*row.Created)
		}

		_ = table.Append(
			strconv.FormatInt(row.ID, 10),
			truncate(row.Title, constants.DescriptionTruncationLimit),
			creator,
			valueOrNA(row.Status),
			created,
		)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if meta.TotalPages > 1 {
		_, _ = fmt.Fprintf(w, "Page %d of %d (%s results)\n", meta.Page, meta.TotalPages, humanize.Comma(int64(meta.Total)))
	}

	return nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit-3]) + "..."
}

func valueOrNA(s string) string {
	if s == "" {
		return constants.NotAvailable
	}

	return s
}
