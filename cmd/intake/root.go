package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-intake/internal/config"
	"github.com/goliatone/go-intake/pkg/forms"
	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/render"
	"github.com/goliatone/go-intake/pkg/session"
	"github.com/goliatone/go-intake/pkg/submit"
	"github.com/goliatone/go-intake/pkg/tui"
)

// errBlocked marks a submission held back by validation errors.
var errBlocked = errors.New("submission blocked by validation errors")

type app struct {
	cfg    config.Config
	out    io.Writer
	errOut io.Writer

	// logger and driver are built lazily unless preset.
	logger *zap.Logger
	driver tui.PromptDriver

	formsDir string
	format   string
	output   string
	verbose  bool
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "intake",
		Short: "Fill and check mentorship intake forms",
		Long: `intake walks mentor, mentee and event forms from the terminal.

Every answer is validated as you go and the completion percentage is shown
whenever it changes. Valid submissions are written as JSON, form-encoded or
plain text.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			zcfg := zap.NewProductionConfig()
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if a.verbose {
				zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := zcfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", a.cfg.Verbose, "log session events at debug level")
	flags.StringVar(&a.formsDir, "forms-dir", a.cfg.FormsDir, "directory of form definitions (bundled forms when empty)")
	flags.StringVar(&a.format, "format", a.cfg.OutputFormat, "payload format: json, form or pretty")
	flags.StringVarP(&a.output, "output", "o", "", "write the payload to a file instead of stdout")

	root.AddCommand(newFormsCmd(a), newFillCmd(a), newCheckCmd(a))
	return root
}

func (a *app) store() (*forms.Store, error) {
	if dir := strings.TrimSpace(a.formsDir); dir != "" {
		return forms.LoadFS(os.DirFS(dir))
	}
	return forms.Default()
}

func (a *app) form(id string) (model.FormModel, error) {
	store, err := a.store()
	if err != nil {
		return model.FormModel{}, err
	}
	form, ok := store.Form(id)
	if !ok {
		return model.FormModel{}, fmt.Errorf("unknown form %q (available: %s)", id, strings.Join(store.IDs(), ", "))
	}
	return form, nil
}

// sessionOptions wires logging, hidden fields and payload output into a
// session for form.
func (a *app) sessionOptions(form model.FormModel) ([]session.Option, error) {
	format, err := submit.ParseFormat(a.format)
	if err != nil {
		return nil, err
	}
	hidden := []submit.HiddenField{submit.FormID(form.ID)}
	if a.cfg.AuthToken != "" {
		hidden = append(hidden, submit.AuthToken(a.cfg.AuthTokenName, a.cfg.AuthToken))
	}
	return []session.Option{
		session.WithLogger(a.logger.Named("session")),
		session.WithTransformer(submit.WithHidden(hidden...)),
		session.WithSubmitHandler(a.payloadWriter(format)),
	}, nil
}

func (a *app) payloadWriter(format submit.Format) session.SubmitHandler {
	return func(_ context.Context, values model.Values) error {
		data, err := submit.Encode(values, format)
		if err != nil {
			return err
		}
		if a.output != "" {
			if err := os.WriteFile(a.output, data, 0o644); err != nil {
				return fmt.Errorf("write payload: %w", err)
			}
			a.logger.Info("payload written", zap.String("path", a.output), zap.String("content_type", format.ContentType()))
			return nil
		}
		_, err = fmt.Fprintln(a.out, string(data))
		return err
	}
}

func (a *app) renderer() (*render.Text, error) {
	return render.NewText()
}
