package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	Dialect string
	File    string
}

// Rendered is the output of the render command.
type Rendered struct {
	Dialect string `json:"dialect"`
	SQL     string `json:"sql"`
	Params  []any  `json:"params"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a YAML query description to SQL",
		Long: `Render a YAML query description to SQL and bind parameters.

The query is read from --file, or from stdin when --file is empty or "-".
Placeholders are rewritten to the dialect's native style.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", "", "target dialect (required)")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "query description file (default stdin)")
	_ = cmd.MarkFlagRequired("dialect")

	return cmd
}

func runRender(rootOpts *RootOptions, opts *RenderOptions, cmd *cobra.Command) error {
	log := newLogger(rootOpts, cmd.ErrOrStderr())

	d, err := LookupDialect(opts.Dialect)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid flag", err)
	}

	var in io.Reader = cmd.InOrStdin()
	source := "stdin"
	if opts.File != "" && opts.File != "-" {
		f, err := os.Open(opts.File)
		if err != nil {
			return WrapExitError(ExitCommandError, "open query", err)
		}
		defer f.Close()
		in, source = f, opts.File
	}

	q, err := ParseQuery(in)
	if err != nil {
		return WrapExitError(ExitCommandError, "read query", err)
	}

	sql, params, err := q.Build(d).Query()
	if err != nil {
		log.WithError(err).WithField("dialect", d.Name()).Debug("render failed")
		return WrapExitError(ExitFailure, "render query", err)
	}
	log.WithFields(logrus.Fields{
		"dialect": d.Name(),
		"source":  source,
		"table":   q.Table,
		"params":  len(params),
	}).Debug("rendered query")

	if params == nil {
		params = []any{}
	}
	return writeRendered(cmd.OutOrStdout(), rootOpts.Format, Rendered{Dialect: d.Name(), SQL: sql, Params: params})
}

func writeRendered(w io.Writer, format string, r Rendered) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	params, err := json.Marshal(r.Params)
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n", r.SQL, params)
	return err
}
