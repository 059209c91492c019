package http

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeForm writes form as multipart/form-data and returns the body with
// its boundary-bearing content type.
func encodeForm(form *hub.Form) ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, part := range form.Parts() {
		if !part.IsFile() {
			err := writer.WriteField(part.Name, part.Value)
			if err != nil {
				return nil, "", fmt.Errorf("writing form field %s: %w", part.Name, err)
			}

			continue
		}

		contentType := part.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(part.Name), quoteEscaper.Replace(part.FileName)))
		header.Set("Content-Type", contentType)

		dst, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("creating form file %s: %w", part.Name, err)
		}

		_, err = io.Copy(dst, part.Content)
		if err != nil {
			return nil, "", fmt.Errorf("copying form file %s: %w", part.Name, err)
		}
	}

	err := writer.Close()
	if err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}
