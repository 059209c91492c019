package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// contentSource adapts one content client to the list and get commands.
type contentSource[T any] struct {
	noun      string
	find      func(ctx context.Context, client hub.Client, opts *hub.RequestOptions) (*hub.Result[hub.ListResponse[T]], error)
	byCreator func(ctx context.Context, client hub.Client, id int64, opts *hub.RequestOptions) (*hub.Result[hub.ListResponse[T]], error)
	byID      func(ctx context.Context, client hub.Client, id int64, opts *hub.RequestOptions) (*hub.Result[T], error)
	row       func(item T) contentRow
}

// NewGamesCommand creates the games command group.
func NewGamesCommand() *cobra.Command {
	source := contentSource[hub.Game]{
		noun: "games",
		find: func(ctx context.Context, client hub.Client, opts *hub.RequestOptions) (*hub.Result[hub.GamesList], error) {
			return client.Games().Find(ctx, opts)
		},
		byCreator: func(ctx context.Context, client hub.Client, id int64, opts *hub.RequestOptions) (*hub.Result[hub.GamesList], error) {
			return client.Games().ByCreator(ctx, id, opts)
		},
		byID: func(ctx context.Context, client hub.Client, id int64, opts *hub.RequestOptions) (*hub.Result[hub.Game], error) {
			return client.Games().FindByID(ctx, id, opts)
		},
		row: func(game hub.Game) contentRow {
			return contentRow{ID: game.ID, Title: game.Title, Creator: game.Creator, Status: game.Status, Created: game.CreatedAt}
		},
	}

	cmd := source.command("Browse homebrew games", []string{"game", "g"})
	cmd.AddCommand(newGamesFeaturedCommand(source))

	return cmd
}

// NewTutorialsCommand creates the tutorials command group.
func NewTutorialsCommand() *cobra.Command {
	source := contentSource[hub.Tutorial]{
		noun: "tutorials",
		find: func(ctx context.Context, client hub.Client, opts *hub.RequestOptions) (*hub.Result[hub.TutorialsList], error) {
			return client.Tutorials().Find(ctx, opts)
		},
		byCreator: func(ctx context.Context, client hub.Client, id int64, opts *hub.RequestOptions) (*hub.Result[hub.TutorialsList], error) {
			return client.Tutorials().ByCreator(ctx, id, opts)
		},
		byID: func(ctx context.Context, client hub.Client, id int64, opts *hub.RequestOptions) (*hub.Result[hub.Tutorial], error) {
			return client.Tutorials().FindByID(ctx, id, opts)
		},
		row: func(tutorial hub.Tutorial) contentRow {
			return contentRow{ID: tutorial.ID, Title: tutorial.Title, Creator: tutorial.Creator, Status: tutorial.Status, Created: tutorial.CreatedAt}
		},
	}

	return source.command("Browse tutorials", []string{"tutorial", "tut"})
}

// NewSnippetsCommand creates the snippets command group.
func NewSnippetsCommand() *cobra.Command {
	source := contentSource[hub.Snippet]{
		noun: "snippets",
		find: func(ctx context.Context, client hub.Client, opts *hub.RequestOptions) (*hub.Result[hub.SnippetsList], error) {
			return client.Snippets().Find(ctx, opts)
		},
		byCreator: func(ctx context.Context, client hub.Client, id int64, opts *hub.RequestOptions) (*hub.Result[hub.SnippetsList], error) {
			return client.Snippets().ByCreator(ctx, id, opts)
		},
		byID: func(ctx context.Context, client hub.Client, id int64, opts *hub.RequestOptions) (*hub.Result[hub.Snippet], error) {
			return client.Snippets().FindByID(ctx, id, opts)
		},
		row: func(snippet hub.Snippet) contentRow {
			return contentRow{ID: snippet.ID, Title: snippet.Title, Creator: snippet.Creator, Status: snippet.Status, Created: snippet.CreatedAt}
		},
	}

	return source.command("Browse code snippets", []string{"snippet", "snip"})
}

func (s contentSource[T]) command(short string, aliases []string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     s.noun,
		Aliases: aliases,
		Short:   short,
		Long:    short + " on the hub",
	}

	cmd.AddCommand(s.listCommand())
	cmd.AddCommand(s.getCommand())

	return cmd
}

// listFlags are the listing filters shared by content commands.
type listFlags struct {
	creator int64
	page    int
	limit   int
	search  string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.creator, "creator", 0, "only list content by this user id")
	cmd.Flags().IntVar(&f.page, "page", 0, "page number")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "results per page")
	cmd.Flags().StringVar(&f.search, "search", "", "full-text filter")
}

func (f *listFlags) options() *hub.RequestOptions {
	opts := hub.NewRequestOptions()

	if f.page > 0 {
		opts.WithParam("page", strconv.Itoa(f.page))
	}

	if f.limit > 0 {
		opts.WithParam("limit", strconv.Itoa(f.limit))
	}

	if f.search != "" {
		opts.WithParam("search", f.search)
	}

	return opts
}

func (s contentSource[T]) listCommand() *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List " + s.noun,
		Long:    "List " + s.noun + ", optionally filtered by creator",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			var result *hub.Result[hub.ListResponse[T]]
			if flags.creator > 0 {
				result, err = s.byCreator(ctx, client, flags.creator, flags.options())
			} else {
				result, err = s.find(ctx, client, flags.options())
			}

			if err != nil {
				return err
			}

			return s.renderList(cmd, result.Data)
		},
	}

	flags.register(cmd)

	return cmd
}

func (s contentSource[T]) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one of the " + s.noun,
		Long:  "Show one of the " + s.noun + " by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			result, err := s.byID(ctx, client, id, hub.NewRequestOptions())
			if err != nil {
				return err
			}

			return renderContentTable(cmd.OutOrStdout(), []contentRow{s.row(result.Data)}, hub.Pagination{}, result.Data)
		},
	}
}

func (s contentSource[T]) renderList(cmd *cobra.Command, list hub.ListResponse[T]) error {
	rows := make([]contentRow, 0, len(list.Data))
	for _, item := range list.Data {
		rows = append(rows, s.row(item))
	}

	return renderContentTable(cmd.OutOrStdout(), rows, list.Meta, list)
}

func newGamesFeaturedCommand(source contentSource[hub.Game]) *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "List featured games",
		Long:  "List the games featured on the hub front page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			result, err := client.Games().Featured(ctx, hub.NewRequestOptions())
			if err != nil {
				return err
			}

			return source.renderList(cmd, result.Data)
		},
	}
}
