package main

import (
	"fmt"
	"strings"

	"github.com/amaumene/cinefront/internal/controllers"
	"github.com/amaumene/cinefront/internal/models"
	"github.com/spf13/cobra"
)

// printNavigator prints the created resource instead of opening it
type printNavigator struct {
	cmd *cobra.Command
}

func (n printNavigator) Navigate(href string) {
	fmt.Fprintln(n.cmd.OutOrStdout(), href)
}

func newAddActorCmd() *cobra.Command {
	form := models.FormValues{}
	cmd := &cobra.Command{
		Use:     "add-actor",
		Short:   "Create an actor in the catalog",
		Example: `  cinefront add-actor --name "Jane Doe" --birth-date 1990-01-01 --birth-country USA`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := newCreationController()
			if err != nil {
				return err
			}
			notifier := newNotifier(cmd)
			_, err = ctrl.SubmitActor(cmd.Context(), form, printNavigator{cmd}, notifier)
			return notifier.reported(err)
		},
	}
	bindFormFlags(cmd, form, models.ActorFields)
	return cmd
}

func newAddMovieCmd() *cobra.Command {
	form := models.FormValues{}
	cmd := &cobra.Command{
		Use:     "add-movie",
		Short:   "Create a movie in the catalog",
		Example: `  cinefront add-movie --title "The Matrix" --release-date 1999-03-31 --runtime 136 --imdb-id tt0133093`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := newCreationController()
			if err != nil {
				return err
			}
			notifier := newNotifier(cmd)
			_, err = ctrl.SubmitMovie(cmd.Context(), form, printNavigator{cmd}, notifier)
			return notifier.reported(err)
		},
	}
	bindFormFlags(cmd, form, models.MovieFields)
	return cmd
}

func newCreationController() (*controllers.CreationController, error) {
	cfg, logger, client, err := setup()
	if err != nil {
		return nil, err
	}
	if !cfg.HasCredentials() {
		logger.Warn("No backend credentials configured, the create request is sent unauthenticated")
	}
	return controllers.NewCreationController(client, logger), nil
}

// formFlag stores a flag value directly in a form field
type formFlag struct {
	form  models.FormValues
	field string
}

func (f formFlag) String() string     { return f.form[f.field] }
func (f formFlag) Set(v string) error { f.form[f.field] = v; return nil }
func (f formFlag) Type() string       { return "string" }

// bindFormFlags exposes each form field as a --kebab-case flag
func bindFormFlags(cmd *cobra.Command, form models.FormValues, fields []string) {
	for _, field := range fields {
		name := strings.ReplaceAll(field, "_", "-")
		cmd.Flags().Var(formFlag{form: form, field: field}, name, strings.ReplaceAll(field, "_", " "))
	}
}
