package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-intake/pkg/tui"
)

func newFillCmd(a *app) *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "fill <form>",
		Short: "Fill a form interactively",
		Long: `Prompts for each field of the form in order. Invalid answers are
explained and asked again; progress is printed as it changes. The payload is
written once the form submits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			form, err := a.form(args[0])
			if err != nil {
				return err
			}
			opts, err := a.sessionOptions(form)
			if err != nil {
				return err
			}

			driver := a.driver
			if driver == nil {
				driver = tui.NewSurveyDriver(a.errOut)
			}
			runner, err := tui.New(driver, tui.WithConfirmSubmit(confirm))
			if err != nil {
				return err
			}

			outcome, runErr := runner.Run(ctx, form, opts...)
			if errors.Is(runErr, tui.ErrAborted) {
				fmt.Fprintln(a.errOut, "Aborted.")
				return runErr
			}
			if outcome.Session == nil {
				return runErr
			}
			a.logger.Debug("fill finished",
				zap.String("session", outcome.Session.ID()),
				zap.Bool("submitted", outcome.Result.Submitted),
				zap.Error(runErr),
			)

			view, err := a.renderer()
			if err != nil {
				return err
			}
			page, err := view.RenderResult(ctx, form, outcome.Result, runErr)
			if err != nil {
				return err
			}
			fmt.Fprint(a.errOut, string(page))
			return runErr
		},
	}
	cmd.Flags().BoolVar(&confirm, "confirm", false, "ask before submitting")
	return cmd
}
