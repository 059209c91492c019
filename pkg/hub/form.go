package hub

import (
	"bytes"
	"io"
)

// Form is a multipart/form-data payload. Fields and files are written in the
// order they were added.
type Form struct {
	parts []FormPart
}

// FormPart is one field or file of a Form.
type FormPart struct {
	Name        string
	Value       string
	FileName    string
	ContentType string
	Content     io.Reader
}

// IsFile reports whether the part carries file content.
func (p FormPart) IsFile() bool {
	return p.Content != nil
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{}
}

// AddField appends a text field.
func (f *Form) AddField(name, value string) *Form {
	f.parts = append(f.parts, FormPart{Name: name, Value: value})

	return f
}

// AddFile appends a file read from content. An empty contentType lets the
// encoder default to application/octet-stream.
func (f *Form) AddFile(name, fileName, contentType string, content io.Reader) *Form {
	f.parts = append(f.parts, FormPart{
		Name:        name,
		FileName:    fileName,
		ContentType: contentType,
		Content:     content,
	})

	return f
}

// AddFileBytes appends a file held in memory.
func (f *Form) AddFileBytes(name, fileName, contentType string, content []byte) *Form {
	return f.AddFile(name, fileName, contentType, bytes.NewReader(content))
}

// Parts returns the form parts in insertion order.
func (f *Form) Parts() []FormPart {
	return f.parts
}

// Len returns the number of parts.
func (f *Form) Len() int {
	return len(f.parts)
}
