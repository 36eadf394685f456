// cmd/fraudtect/commands.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fraudtect/internal/adapters/httpapi"
	"fraudtect/internal/adapters/output"
	"fraudtect/internal/core/domain"
	"fraudtect/internal/core/ports"
	"fraudtect/internal/platform/config"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/ui"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "fraudtect",
		Short: "Hybrid risk scoring for scam messages and URLs",
		Long: `FrauDTect scores text messages and URLs for fraud risk.

Text is scored by fusing a lexical detector with a trained classifier.
URLs are scored with DNS, domain registration and, optionally, external
reputation services.

` + config.EnvHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "Fichero YAML de configuración")
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newTextCommand(),
		newURLCommand(),
		newServeCommand(),
		newHistoryCommand(),
		newConfigCommand(),
		newVersionCommand(),
	)
	return root
}

func newTextCommand() *cobra.Command {
	var (
		file    string
		saveDir string
	)

	cmd := &cobra.Command{
		Use:   "text [TEXT...]",
		Short: "Analyze a message for scam indicators",
		Example: `  fraudtect text "URGENT: verify your account now"
  fraudtect text --file message.txt
  cat message.txt | fraudtect text -o json`,

		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args, file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			res, err := a.text.Analyze(cmd.Context(), text)
			if err != nil {
				return err
			}
			if err := a.renderer.Text(res); err != nil {
				return err
			}
			return saveReport(a, saveDir, "text_"+shortID(res.ID), res)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Leer el texto de un fichero (- para stdin)")
	cmd.Flags().StringVar(&saveDir, "save", "", "Guardar el informe JSON en este directorio")
	return cmd
}

func newURLCommand() *cobra.Command {
	var (
		deep    bool
		saveDir string
	)

	cmd := &cobra.Command{
		Use:   "url URL",
		Short: "Analyze a URL for phishing risk",
		Example: `  fraudtect url free-prize.xyz
  fraudtect url https://example.com --deep`,
		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			progress := ui.Progress(ui.NoopProgress{})
			if deep && a.renderer.Format() == config.FormatTable {
				progress = ui.NewProgress(a.stdout)
			}
			if deep {
				progress.Start("Deep scan: " + strings.Join(a.url.DeepScanServices(), ", "))
			}

			res := a.url.Analyze(cmd.Context(), args[0], deep)

			if deep {
				progress.Success(fmt.Sprintf("Analysis complete: %s", res.Verdict))
			}
			if err := a.renderer.URL(res); err != nil {
				return err
			}
			return saveReport(a, saveDir, res.Domain, res)
		},
	}

	cmd.Flags().BoolVar(&deep, "deep", false, "Consultar servicios de reputación (VirusTotal, urlscan.io)")
	cmd.Flags().StringVar(&saveDir, "save", "", "Guardar el informe JSON en este directorio")
	return cmd
}

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Example: `  fraudtect serve --addr :8080
  curl -s localhost:8080/api/v1/analyze/text -d '{"text":"verify your account"}'`,

		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			opts := httpapi.Options{
				Text:    a.text,
				URL:     a.url,
				Metrics: a.metrics.Handler(),
				Logger:  a.logger,
			}
			if a.history != nil {
				opts.History = a.history
				if fr, ok := a.history.(ports.FeedbackRecorder); ok {
					opts.Feedback = fr
				}
			}

			a.logger.Info("FrauDTect starting",
				"version", version,
				"addr", a.cfg.Server.Addr,
				"model_available", a.text.ModelAvailable(),
				"history", a.cfg.History.Backend,
			)
			return httpapi.New(a.cfg.Server.Addr, opts).Run(cmd.Context())
		},
	}

	cmd.Flags().String("addr", httpapi.DefaultAddr, "Dirección de escucha")
	return cmd
}

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the analysis history",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recent analyses, newest first",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if a.history == nil {
				return errors.New("history is disabled (backend none)")
			}
			records, err := a.history.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return a.renderer.History(records)
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 20, "Número máximo de registros")

	feedback := &cobra.Command{
		Use:   "feedback ID TYPE [COMMENTS...]",
		Short: "Record operator feedback (correct, false_positive, false_negative)",
		Example: `  fraudtect history feedback 3f2a... false_positive "sender is my bank" --history sqlite`,
		Args:    cobra.MinimumNArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			fr, ok := a.history.(ports.FeedbackRecorder)
			if !ok {
				return domain.ErrFeedbackUnsupported
			}
			comments := strings.Join(args[2:], " ")
			if err := fr.RecordFeedback(cmd.Context(), args[0], args[1], comments); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, ui.StatusSuccess.Label("Feedback recorded for "+args[0]))
			return nil
		},
	}

	cmd.AddCommand(list, feedback)
	return cmd
}

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration (secrets masked)",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out, err := cfg.Redacted().ToYAML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			config.PrintVersion(cmd.OutOrStdout(), version, commit, date)
		},
	}
}

// saveReport guarda res si se pidió --save.
func saveReport(a *app, dir, name string, res any) error {
	if dir == "" {
		return nil
	}
	path, err := output.SaveJSON(dir, name, res, time.Now())
	if err != nil {
		return err
	}
	a.logger.Info("report saved", "path", path)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
