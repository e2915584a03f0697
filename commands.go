package main

// Commands use the cobra hooks in this order:
// 1. PersistentPreRunE (root) - initialize the logger
// 2. RunE (subcommands) - load the model file and do the work
// 3. PersistentPostRunE (root) - close the log file

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"causalflow/config"
	"causalflow/core"
	"causalflow/export"
	"causalflow/layout"
	"causalflow/logging"
	"causalflow/render"
	"causalflow/validation"
)

const (
	quietFlag   = "quiet"
	verboseFlag = "verbose"
	logFileFlag = "log-file"
	formatFlag  = "format"
	outputFlag  = "output"
	watchFlag   = "watch"
	strictFlag  = "strict"
	plainFlag   = "plain"

	stdoutName = "-"
)

// inArgs holds parsed flag values
type inArgs struct {
	quiet   bool
	verbose bool
	logFile string
	logOut  *os.File

	renderFormat formatSetting
	exportFormat formatSetting
	editOutput   string
	renderOutput string
	exportOutput string
	watch        bool
	strict       bool
	plain        bool
}

// formatSetting is a flag restricted to a fixed list of values.
type formatSetting struct {
	value   string
	allowed []string
}

func newFormatSetting(def string, allowed ...string) formatSetting {
	return formatSetting{value: def, allowed: allowed}
}

func (fs *formatSetting) String() string {
	return fs.value
}

func (fs *formatSetting) Set(v string) error {
	v = strings.ToLower(v)
	if slices.Contains(fs.allowed, v) {
		fs.value = v
		return nil
	}
	return fmt.Errorf("%s", mustBeOneOf(fs.allowed))
}

func (fs *formatSetting) Type() string {
	return "string"
}

func newRootCommand() *cobra.Command {
	args := &inArgs{}

	rootCmd := &cobra.Command{
		Use:   "causalflow",
		Short: "causalflow draws cross-lagged path diagrams",
		Long: `causalflow edits and renders cross-lagged path models: variables measured
over several time periods, connected by directed regression paths.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logging.Init(logging.ParseVerbosity(args.quiet, args.verbose))
			if args.logFile == "" {
				return nil
			}
			f, err := os.OpenFile(args.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			args.logOut = f
			logging.SetOutput(f)
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if args.logOut == nil {
				return nil
			}
			logging.SetOutput(os.Stderr)
			err := args.logOut.Close()
			args.logOut = nil
			return err
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&args.quiet, quietFlag, "q", false, "report only errors")
	rootCmd.PersistentFlags().BoolVarP(&args.verbose, verboseFlag, "v", false, "include debug messages in the log")
	rootCmd.MarkFlagsMutuallyExclusive(quietFlag, verboseFlag)
	rootCmd.PersistentFlags().StringVar(&args.logFile, logFileFlag, "", "append log messages to this file")
	rootCmd.PersistentFlags().SortFlags = false

	rootCmd.AddCommand(newEditCommand(args))
	rootCmd.AddCommand(newRenderCommand(args))
	rootCmd.AddCommand(newExportCommand(args))
	rootCmd.AddCommand(newCheckCommand(args))
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	return rootCmd
}

func newEditCommand(args *inArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a model in the terminal",
		Long: `Open the interactive editor. Click a source node and then a target node
to draw a path. Press ? inside the editor for the key bindings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			path := ""
			if len(posArgs) == 1 {
				path = posArgs[0]
			}
			if args.watch && path == "" {
				return fmt.Errorf("--%s needs a model file", watchFlag)
			}
			if args.logOut == nil {
				// Anything written to stderr would land on the editor screen.
				logging.SetOutput(io.Discard)
				defer logging.SetOutput(os.Stderr)
			}
			return RunInteractive(cmd.Context(), editOptions{path: path, watch: args.watch, output: args.editOutput})
		},
	}
	cmd.Flags().BoolVarP(&args.watch, watchFlag, "w", false, "reload the model file when it changes")
	cmd.Flags().StringVarP(&args.editOutput, outputFlag, "o", export.DefaultFileName(export.NewLavaanExporter()),
		"file written by the export key")
	return cmd
}

func newRenderCommand(args *inArgs) *cobra.Command {
	args.renderFormat = newFormatSetting("terminal", "terminal", "svg")
	cmd := &cobra.Command{
		Use:   "render file",
		Short: "Draw a model as text or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			f, m, err := loadModel(posArgs[0])
			if err != nil {
				return err
			}
			var out string
			switch args.renderFormat.value {
			case "svg":
				g := f.Style.ApplyGrid(layout.PixelGrid())
				r := f.Style.ApplyRouting(render.PixelRouting())
				out = render.SVG(render.ModelScene(m, g, r), render.DefaultSVGStyle())
			default:
				c, err := render.Terminal(render.ModelScene(m, layout.CellGrid(), render.CellRouting()), render.DetectCapabilities().Style())
				if err != nil {
					return fmt.Errorf("rendering %s: %w", posArgs[0], err)
				}
				if args.plain {
					out = c.String()
				} else {
					out = c.ColoredString()
				}
			}
			return writeOutput(cmd, args.renderOutput, []byte(out))
		},
	}
	cmd.Flags().VarP(&args.renderFormat, formatFlag, "f", "output format; "+mustBeOneOf(args.renderFormat.allowed))
	cmd.Flags().StringVarP(&args.renderOutput, outputFlag, "o", stdoutName, "output file")
	cmd.Flags().BoolVar(&args.plain, plainFlag, false, "no colors in terminal output")
	return cmd
}

func newExportCommand(args *inArgs) *cobra.Command {
	formats := make([]string, 0, len(export.AvailableFormats()))
	for _, f := range export.AvailableFormats() {
		formats = append(formats, string(f))
	}
	args.exportFormat = newFormatSetting(string(export.FormatLavaan), formats...)

	cmd := &cobra.Command{
		Use:   "export file",
		Short: "Write a model as lavaan syntax or an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			f, m, err := loadModel(posArgs[0])
			if err != nil {
				return err
			}
			format, err := export.ParseFormat(args.exportFormat.value)
			if err != nil {
				return err
			}
			opts := export.DefaultOptions()
			opts.Grid = f.Style.ApplyGrid(opts.Grid)
			opts.Routing = f.Style.ApplyRouting(opts.Routing)
			e, err := export.NewExporterWithOptions(format, opts)
			if err != nil {
				return err
			}

			data, err := e.Export(m)
			if err != nil {
				return fmt.Errorf("exporting %s as %s: %w", posArgs[0], e.FormatName(), err)
			}
			output := args.exportOutput
			if output == "" {
				output = export.DefaultFileName(e)
			}
			if err := writeOutput(cmd, output, data); err != nil {
				return err
			}
			logging.Infof("wrote %s to %s", e.FormatName(), output)
			return nil
		},
	}
	cmd.Flags().VarP(&args.exportFormat, formatFlag, "f", "output format; "+mustBeOneOf(args.exportFormat.allowed))
	cmd.Flags().StringVarP(&args.exportOutput, outputFlag, "o", "", "output file, - for stdout (default causalflow_model.lav or causalflow_diagram.<ext>)")
	return cmd
}

func newCheckCommand(args *inArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check file",
		Short: "List every problem in a model file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			data, err := os.ReadFile(posArgs[0])
			if err != nil {
				return fmt.Errorf("reading model file: %w", err)
			}
			f, err := config.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", posArgs[0], err)
			}

			v := validation.NewValidator()
			v.Strict = args.strict
			issues := v.Validate(config.Draft(f))

			out := cmd.OutOrStdout()
			for _, issue := range issues {
				fmt.Fprintln(out, issue)
			}
			fmt.Fprintf(out, "%s: %s\n", posArgs[0], validation.Summary(issues))
			if validation.HasErrors(issues) {
				return fmt.Errorf("%s has %s", posArgs[0], validation.Summary(issues))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&args.strict, strictFlag, false, "treat warnings as errors")
	return cmd
}

func loadModel(path string) (*config.File, *core.Model, error) {
	f, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	m, err := f.Model()
	if err != nil {
		return nil, nil, err
	}
	logging.Debugf("loaded %s: %d variables, %d periods, %d paths", path, len(m.Variables), m.Periods, len(m.Paths))
	return f, m, nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == stdoutName {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func mustBeOneOf(values []string) string {
	return fmt.Sprintf("must be one of [%s]", strings.Join(values, ", "))
}
