package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ps2hub/internal/constants"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// NewSubmissionsCommand creates the submissions command group. Both
// subcommands need a moderator token.
func NewSubmissionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "submissions",
		Aliases: []string{"submission", "sub"},
		Short:   "Moderate submitted content",
		Long:    "List pending submissions and approve or reject them. Requires the moderator role.",
	}

	cmd.AddCommand(newSubmissionsPendingCommand())
	cmd.AddCommand(newSubmissionsReviewCommand())

	return cmd
}

func newSubmissionsPendingCommand() *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List pending submissions",
		Long:  "List submissions waiting for review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			result, err := client.Submissions().Pending(ctx, flags.options())
			if err != nil {
				return err
			}

			rows := make([]contentRow, 0, len(result.Data.Data))
			for _, submission := range result.Data.Data {
				rows = append(rows, submissionRow(submission))
			}

			return renderContentTable(cmd.OutOrStdout(), rows, result.Data.Meta, result.Data)
		},
	}

	flags.register(cmd)

	return cmd
}

func newSubmissionsReviewCommand() *cobra.Command {
	var (
		approve  bool
		reject   bool
		feedback string
	)

	cmd := &cobra.Command{
		Use:   "review ID",
		Short: "Approve or reject a submission",
		Long:  "Record a moderator decision for a submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if approve == reject {
				return fmt.Errorf("%w: pass exactly one of --approve or --reject", constants.ErrInvalidDecision)
			}

			decision := &hub.ReviewDecision{Status: hub.SubmissionApproved, Feedback: feedback}
			if reject {
				decision.Status = hub.SubmissionRejected
			}

			ctx := commandContext(cmd)

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			result, err := client.Submissions().Review(ctx, id, decision, hub.NewRequestOptions())
			if err != nil {
				return err
			}

			return renderContentTable(cmd.OutOrStdout(), []contentRow{submissionRow(result.Data)}, hub.Pagination{}, result.Data)
		},
	}

	cmd.Flags().BoolVar(&approve, "approve", false, "approve the submission")
	cmd.Flags().BoolVar(&reject, "reject", false, "reject the submission")
	cmd.Flags().StringVar(&feedback, "feedback", "", "message for the submitter")
	cmd.MarkFlagsMutuallyExclusive("approve", "reject")

	return cmd
}

func submissionRow(submission hub.Submission) contentRow {
	return contentRow{
		ID:      submission.ID,
		Title:   fmt.Sprintf("%s #%d", submission.ContentType, submission.ContentID),
		Creator: submission.Submitter,
		Status:  submission.Status,
		Created: submission.CreatedAt,
	}
}
