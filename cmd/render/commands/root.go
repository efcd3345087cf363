// Package commands implements the offline listing renderer CLI.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"finitefield.org/listing-web/internal/i18n"
	"finitefield.org/listing-web/internal/observability"
	"finitefield.org/listing-web/internal/render"
	"finitefield.org/listing-web/internal/site"
	"finitefield.org/listing-web/internal/source"
)

type options struct {
	document string
	lang     string
	template string
	pageURL  string
	output   string
	timeout  time.Duration
	verbose  bool
}

func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the CLI. Rendering writes the page to stdout unless
// --output names a file. A document that cannot be loaded still produces the
// failure page, and the command exits non-zero.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "listing-render",
		Short:        "Render a listing page from object.json",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	root.Flags().StringVarP(&opts.document, "document", "d", source.DocumentName, "listing document URL or path")
	root.Flags().StringVarP(&opts.lang, "lang", "l", i18n.DefaultLocale, "page locale")
	root.Flags().StringVar(&opts.template, "template", "", "page skeleton (default embedded)")
	root.Flags().StringVar(&opts.pageURL, "url", "", "page URL published in structured data")
	root.Flags().StringVarP(&opts.output, "output", "o", "", "write the page to this file instead of stdout")
	root.Flags().DurationVar(&opts.timeout, "timeout", 8*time.Second, "document fetch timeout")
	root.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log render steps to stderr")

	root.AddCommand(localesCmd())
	return root
}

func localesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List supported locales and their text layer keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, locale := range i18n.SupportedLocales() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", locale, i18n.LayerKey(locale))
			}
			return nil
		},
	}
}

func runRender(ctx context.Context, stdout io.Writer, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := zap.NewNop()
	if opts.verbose {
		// stdout carries the page, so logs go to stderr
		core := zapcore.NewCore(zapcore.NewJSONEncoder(observability.EncoderConfig()), zapcore.Lock(os.Stderr), zapcore.DebugLevel)
		logger = zap.New(core)
	}

	bundle, err := i18n.Default()
	if err != nil {
		return err
	}
	skeleton, err := site.Load(opts.template)
	if err != nil {
		return err
	}
	page, err := skeleton.New()
	if err != nil {
		return err
	}

	locale := opts.lang
	if !i18n.IsSupported(locale) {
		logger.Warn("unsupported locale, using default", zap.String("locale", locale))
		locale = i18n.DefaultLocale
	}

	pipeline := render.NewPipeline(bundle, logger)
	root, fetchErr := source.NewClient(opts.document, opts.timeout).Fetch(ctx)
	if fetchErr != nil {
		logger.Error("load listing document", zap.Error(fetchErr))
		pipeline.Fail(page, locale)
	} else {
		pipeline.Run(page, root, locale, opts.pageURL)
	}

	if err := writePage(stdout, opts.output, page); err != nil {
		return err
	}
	if fetchErr != nil {
		return fmt.Errorf("render: %w", fetchErr)
	}
	return nil
}

type pageRenderer interface {
	Render(w io.Writer) error
}

// writePage renders page to stdout, or to the file at output when set.
func writePage(stdout io.Writer, output string, page pageRenderer) (err error) {
	if output == "" {
		return page.Render(stdout)
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", output, cerr)
		}
	}()
	return page.Render(f)
}
