package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/ps2hub/internal/constants"
	"github.com/fivetwenty-io/ps2hub/internal/http"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// SubmissionsClient implements hub.SubmissionsClient.
type SubmissionsClient struct {
	*Resource[hub.Submission, hub.SubmissionsList]
}

// NewSubmissionsClient creates a new submissions client.
func NewSubmissionsClient(httpClient *http.Client, handler hub.ErrorHandler) *SubmissionsClient {
	return &SubmissionsClient{
		Resource: NewResource[hub.Submission, hub.SubmissionsList](httpClient, "/submissions", handler),
	}
}

// Pending implements hub.SubmissionsClient.Pending.
func (c *SubmissionsClient) Pending(ctx context.Context, opts *hub.RequestOptions) (*hub.Result[hub.SubmissionsList], error) {
	return c.Find(ctx, withSubEndpoint(withAuth(opts), "/pending"))
}

// Review implements hub.SubmissionsClient.Review. The decision status must
// be approved or rejected; nothing is sent otherwise.
func (c *SubmissionsClient) Review(ctx context.Context, id int64, decision *hub.ReviewDecision, opts *hub.RequestOptions) (*hub.Result[hub.Submission], error) {
	if decision == nil || (decision.Status != hub.SubmissionApproved && decision.Status != hub.SubmissionRejected) {
		status := ""
		if decision != nil {
			status = decision.Status
		}

		return nil, fmt.Errorf("%w: %q", constants.ErrInvalidDecision, status)
	}

	subEndpoint := "/" + strconv.FormatInt(id, 10) + "/review"

	return c.Update(ctx, id, decision, withSubEndpoint(withAuth(opts), subEndpoint))
}

// submissionsErrorHandler marks 403 answers as needing the moderator role.
func submissionsErrorHandler(classify hub.ErrorClassifier) hub.ErrorHandler {
	base := hub.NewErrorHandler("/submissions", classify)

	return func(op string, err error) error {
		wrapped := base(op, err)
		if hub.IsForbidden(err) {
			return fmt.Errorf("%w: %w", hub.ErrModeratorRequired, wrapped)
		}

		return wrapped
	}
}
