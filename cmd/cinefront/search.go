package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/amaumene/cinefront/internal/controllers"
	"github.com/amaumene/cinefront/internal/render"
	"github.com/spf13/cobra"
)

// stderrNotifier prints user messages on the command's error stream
type stderrNotifier struct {
	w        io.Writer
	notified bool
}

func newNotifier(cmd *cobra.Command) *stderrNotifier {
	return &stderrNotifier{w: cmd.ErrOrStderr()}
}

func (n *stderrNotifier) Notify(message string) {
	n.notified = true
	fmt.Fprintln(n.w, message)
}

// reported marks err as already shown to the user when the notifier printed it
func (n *stderrNotifier) reported(err error) error {
	if err == nil || !n.notified {
		return err
	}
	return reportedError{err: err}
}

// reportedError is a failure the user has already seen
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func newSearchCmd() *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "search [value]",
		Short: "Search the catalog and print the rendered records",
		Example: `  cinefront search "The Matrix"
  cinefront search --field movie-director "Lana Wachowski"
  cinefront search tt0133093`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			binding, ok := controllers.BindingFor(field)
			if !ok {
				return fmt.Errorf("unknown search field %q", field)
			}

			_, logger, client, err := setup()
			if err != nil {
				return err
			}
			renderer, err := render.NewRenderer()
			if err != nil {
				return fmt.Errorf("failed to initialize renderer: %w", err)
			}

			target := &render.Container{}
			notifier := newNotifier(cmd)
			ctrl := controllers.NewSearchController(client, renderer, target, notifier, logger)
			if _, err := ctrl.Search(cmd.Context(), binding, strings.Join(args, " ")); err != nil {
				return notifier.reported(err)
			}

			fmt.Fprint(cmd.OutOrStdout(), target.HTML())
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", "movie-title", "search input to use: "+fieldIDs())
	return cmd
}

func fieldIDs() string {
	ids := make([]string, 0, len(controllers.DefaultBindings))
	for _, b := range controllers.DefaultBindings {
		ids = append(ids, b.FieldID)
	}
	return strings.Join(ids, ", ")
}
