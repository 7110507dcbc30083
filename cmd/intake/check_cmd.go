package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/session"
)

func newCheckCmd(a *app) *cobra.Command {
	var valuesFile string
	cmd := &cobra.Command{
		Use:   "check <form>",
		Short: "Validate a values file against a form",
		Long: `Loads answers from a YAML or JSON file, prints the form with its
progress and errors, and submits when nothing blocks. Exits with status 2
when validation errors remain.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			form, err := a.form(args[0])
			if err != nil {
				return err
			}
			values, err := readValues(valuesFile)
			if err != nil {
				return err
			}
			opts, err := a.sessionOptions(form)
			if err != nil {
				return err
			}

			s, err := session.New(form, append(opts, session.WithInitialValues(values))...)
			if err != nil {
				return err
			}
			res, submitErr := s.Submit(ctx)

			view, err := a.renderer()
			if err != nil {
				return err
			}
			page, err := view.Render(ctx, s.Snapshot())
			if err != nil {
				return err
			}
			fmt.Fprint(a.errOut, string(page))

			result, err := view.RenderResult(ctx, form, res, submitErr)
			if err != nil {
				return err
			}
			fmt.Fprint(a.errOut, string(result))

			if submitErr != nil {
				return submitErr
			}
			if !res.Submitted {
				return errBlocked
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&valuesFile, "file", "f", "", "YAML or JSON file with field values")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// readValues decodes a values file. JSON is a subset of YAML, so one decoder
// covers both.
func readValues(path string) (model.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse values %s: %w", path, err)
	}
	values := make(model.Values, len(raw))
	for key, value := range raw {
		if list, ok := value.([]any); ok {
			items := make([]string, 0, len(list))
			for _, item := range list {
				items = append(items, fmt.Sprint(item))
			}
			value = items
		}
		values[key] = value
	}
	return values, nil
}
