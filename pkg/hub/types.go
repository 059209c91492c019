package hub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Resource holds the fields every API entity shares.
type Resource struct {
	ID        int64      `json:"id,omitempty"        yaml:"id"`
	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" yaml:"updated_at,omitempty"`
}

// Role is a permission level such as "user" or "moderator".
type Role struct {
	Resource `yaml:",inline"`

	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// User is a registered hub member.
type User struct {
	Resource `yaml:",inline"`

	Username  string `json:"username"            yaml:"username"`
	Email     string `json:"email,omitempty"     yaml:"email,omitempty"`
	Bio       string `json:"bio,omitempty"       yaml:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty" yaml:"avatar_url,omitempty"`
	Role      *Role  `json:"role,omitempty"      yaml:"role,omitempty"`
}

// Category groups content, e.g. "Emulators" or "Graphics".
type Category struct {
	Resource `yaml:",inline"`

	Name        string `json:"name"                  yaml:"name"`
	Slug        string `json:"slug,omitempty"        yaml:"slug,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Game is a homebrew game listing.
type Game struct {
	Resource `yaml:",inline"`

	Title         string    `json:"title"                   yaml:"title"`
	Description   string    `json:"description,omitempty"   yaml:"description,omitempty"`
	CoverImageURL string    `json:"coverImageUrl,omitempty" yaml:"cover_image_url,omitempty"`
	Screenshots   []string  `json:"screenshots,omitempty"   yaml:"screenshots,omitempty"`
	DownloadURL   string    `json:"downloadUrl,omitempty"   yaml:"download_url,omitempty"`
	Featured      bool      `json:"featured,omitempty"      yaml:"featured"`
	Status        string    `json:"status,omitempty"        yaml:"status,omitempty"`
	Creator       *User     `json:"creator,omitempty"       yaml:"creator,omitempty"`
	Category      *Category `json:"category,omitempty"      yaml:"category,omitempty"`
}

// Tutorial is a Markdown article.
type Tutorial struct {
	Resource `yaml:",inline"`

	Title    string    `json:"title"              yaml:"title"`
	Content  string    `json:"content,omitempty"  yaml:"content,omitempty"`
	Summary  string    `json:"summary,omitempty"  yaml:"summary,omitempty"`
	Status   string    `json:"status,omitempty"   yaml:"status,omitempty"`
	Creator  *User     `json:"creator,omitempty"  yaml:"creator,omitempty"`
	Category *Category `json:"category,omitempty" yaml:"category,omitempty"`
}

// Snippet is a short piece of code.
type Snippet struct {
	Resource `yaml:",inline"`

	Title       string    `json:"title"                 yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Code        string    `json:"code"                  yaml:"code"`
	Language    string    `json:"language,omitempty"    yaml:"language,omitempty"`
	Status      string    `json:"status,omitempty"      yaml:"status,omitempty"`
	Creator     *User     `json:"creator,omitempty"     yaml:"creator,omitempty"`
	Category    *Category `json:"category,omitempty"    yaml:"category,omitempty"`
}

// Submission statuses.
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// Submission is a piece of content awaiting moderation.
type Submission struct {
	Resource `yaml:",inline"`

	ContentType string `json:"contentType,omitempty" yaml:"content_type"`
	ContentID   int64  `json:"contentId,omitempty"   yaml:"content_id"`
	Status      string `json:"status,omitempty"      yaml:"status"`
	Feedback    string `json:"feedback,omitempty"    yaml:"feedback,omitempty"`
	Submitter   *User  `json:"submitter,omitempty"   yaml:"submitter,omitempty"`
	Reviewer    *User  `json:"reviewer,omitempty"    yaml:"reviewer,omitempty"`
}

// ReviewDecision is the body of a moderator review.
type ReviewDecision struct {
	Status   string `json:"status"             yaml:"status"`
	Feedback string `json:"feedback,omitempty" yaml:"feedback,omitempty"`
}

// Pagination represents pagination information.
type Pagination struct {
	Total      int `json:"total"      yaml:"total"`
	Page       int `json:"page"       yaml:"page"`
	Limit      int `json:"limit"      yaml:"limit"`
	TotalPages int `json:"totalPages" yaml:"total_pages"`
}

// ListResponse is a collection payload. The API answers either with a bare
// array or with {"data": [...], "meta": {...}}; both decode into it.
type ListResponse[T any] struct {
	Data []T        `json:"data" yaml:"data"`
	Meta Pagination `json:"meta" yaml:"meta"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *ListResponse[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T

		err := json.Unmarshal(trimmed, &items)
		if err != nil {
			return fmt.Errorf("decoding list: %w", err)
		}

		l.Data = items
		l.Meta = Pagination{Total: len(items), TotalPages: 1, Page: 1, Limit: len(items)}

		return nil
	}

	var out struct {
		Data []T        `json:"data"`
		Meta Pagination `json:"meta"`
	}

	err := json.Unmarshal(trimmed, &out)
	if err != nil {
		return fmt.Errorf("decoding paged list: %w", err)
	}

	l.Data = out.Data
	l.Meta = out.Meta

	return nil
}

// GamesList represents a paginated list of Game resources.
type GamesList = ListResponse[Game]

// TutorialsList represents a paginated list of Tutorial resources.
type TutorialsList = ListResponse[Tutorial]

// SnippetsList represents a paginated list of Snippet resources.
type SnippetsList = ListResponse[Snippet]

// SubmissionsList represents a paginated list of Submission resources.
type SubmissionsList = ListResponse[Submission]
