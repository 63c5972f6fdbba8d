package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailjsx"
	"github.com/dmitrymomot/mailjsx/pkg/jsx"
	"github.com/dmitrymomot/mailjsx/pkg/logger"
	"github.com/dmitrymomot/mailjsx/pkg/render"
)

type renderFlags struct {
	plainText bool
	pretty    bool
	strict    bool
	syntax    string
	set       []string
	out       string
}

func newRenderCommand(a *app) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render <file|->",
		Short: "render a template",
		Long: `Renders a template file, or standard input when the file is "-".

Names used by the template come from the --scope file and --set pairs;
--set wins on collision.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, a, f, args[0])
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	flags := cmd.Flags()
	flags.BoolVar(&f.plainText, "plain-text", false, "render plain text instead of HTML")
	flags.BoolVar(&f.pretty, "pretty", false, "indent the HTML output")
	flags.BoolVar(&f.strict, "strict", false, "compile in strict mode")
	flags.StringVar(&f.syntax, "syntax", string(jsx.SyntaxECMAScript), "template syntax: ecmascript or typescript")
	flags.StringArrayVar(&f.set, "set", nil, "add a string to the scope as name=value (repeatable)")
	flags.StringVarP(&f.out, "out", "o", "", "write the output to a file instead of standard output")
	return cmd
}

func runRender(cmd *cobra.Command, a *app, f *renderFlags, file string) error {
	name, src, err := readTemplate(cmd, file)
	if err != nil {
		return err
	}
	fileScope, err := loadScope(a.scope)
	if err != nil {
		return err
	}
	setScope, err := parseSet(f.set)
	if err != nil {
		return err
	}

	compiler := jsx.DefaultOptions()
	compiler.Parser.Syntax = jsx.Syntax(f.syntax)
	compiler.Module.StrictMode = f.strict

	ctx := cmd.Context()
	start := time.Now()
	out, err := mailjsx.Render(ctx, src,
		mailjsx.WithCompilerOptions(compiler),
		mailjsx.WithRenderOptions(render.Options{PlainText: f.plainText, Pretty: f.pretty}),
		mailjsx.WithScope(fileScope),
		mailjsx.WithScope(setScope),
		mailjsx.WithLogger(a.log),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	a.log.DebugContext(ctx, "rendered",
		logger.Template(name, len(src)),
		logger.Output(f.plainText),
		logger.Duration(time.Since(start)),
	)

	if f.out == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), out+"\n")
		return err
	}
	if err := os.WriteFile(f.out, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	a.log.InfoContext(ctx, "wrote output", slog.String("path", f.out))
	return nil
}

func readTemplate(cmd *cobra.Command, file string) (string, string, error) {
	if file == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read template: %w", err)
	}
	return file, string(data), nil
}
