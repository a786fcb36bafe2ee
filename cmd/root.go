package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/statutedb/lawdiff/internal/config"
	"github.com/statutedb/lawdiff/internal/diff"
	"github.com/statutedb/lawdiff/internal/format"
	"github.com/statutedb/lawdiff/internal/hunkgen"
	"github.com/statutedb/lawdiff/internal/logging"
	"github.com/statutedb/lawdiff/internal/render"
	"github.com/statutedb/lawdiff/internal/section"
	"github.com/statutedb/lawdiff/internal/tui"
	"github.com/statutedb/lawdiff/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "lawdiff [section.json | before.txt after.txt]",
	Short: "A terminal viewer for statutory amendment diffs",
	Long: `lawdiff renders the changes an amendment makes to a section of statutory
text. It takes either a section diff document (JSON) or a before/after pair
of text files, pairs removed lines with their replacements, highlights the
amended phrases, and collapses unchanged provisions into expandable regions.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// If the help flag is set, show the help message
		if cmd.Flag("help").Changed {
			cmd.Help()
			return nil
		}
		if cmd.Flag("version").Changed {
			fmt.Println(version.Version)
			return nil
		}

		// Setup logging
		debug, _ := cmd.Flags().GetBool("debug")
		if err := logging.InitService(); err != nil {
			return err
		}
		logging.Setup(debug)

		// Load the config
		cwd, _ := cmd.Flags().GetString("cwd")
		if cwd != "" {
			err := os.Chdir(cwd)
			if err != nil {
				return fmt.Errorf("failed to change directory: %v", err)
			}
		}
		if cwd == "" {
			c, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current working directory: %v", err)
			}
			cwd = c
		}
		cfg, err := config.Load(cwd, debug)
		if err != nil {
			return err
		}

		sd, err := resolveInput(cmd, args)
		if err != nil {
			return err
		}

		layout := render.Layout(cfg.View.Layout)
		if cmd.Flags().Changed("layout") {
			layoutStr, _ := cmd.Flags().GetString("layout")
			layout = render.Layout(layoutStr)
			if !layout.IsValid() {
				return fmt.Errorf("invalid layout: %s", layoutStr)
			}
		}
		width := cfg.View.Width
		if cmd.Flags().Changed("width") {
			width, _ = cmd.Flags().GetInt("width")
		}
		granular := cfg.View.Granular
		if cmd.Flags().Changed("granular") {
			granular, _ = cmd.Flags().GetBool("granular")
		}

		interactive, _ := cmd.Flags().GetBool("tui")
		if interactive {
			return runTUI(*sd, layout, granular)
		}

		outputFormatStr, _ := cmd.Flags().GetString("output-format")
		outputFormat := format.OutputFormat(outputFormatStr)
		if !outputFormat.IsValid() {
			return fmt.Errorf("invalid output format: %s", outputFormatStr)
		}

		expand, _ := cmd.Flags().GetIntSlice("expand")
		expandAll, _ := cmd.Flags().GetBool("expand-all")

		return handleNonInteractiveMode(*sd, viewOptions{
			layout:    layout,
			width:     width,
			granular:  granular,
			format:    outputFormat,
			expand:    expand,
			expandAll: expandAll,
		})
	},
}

// resolveInput builds the section diff from the command's arguments: a JSON
// section document, a before/after pair of text files, or piped stdin.
func resolveInput(cmd *cobra.Command, args []string) (*diff.SectionDiff, error) {
	citation, _ := cmd.Flags().GetString("citation")

	switch len(args) {
	case 2:
		before, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read old text: %w", err)
		}
		after, err := os.ReadFile(args[1])
		if err != nil {
			return nil, fmt.Errorf("failed to read new text: %w", err)
		}
		hunks, err := hunkgen.Compute(string(before), string(after))
		if err != nil {
			return nil, err
		}
		if citation == "" {
			citation = filepath.Base(args[1])
		}
		return &diff.SectionDiff{
			ID:            uuid.NewString(),
			Citation:      citation,
			Hunks:         hunks,
			AllProvisions: hunkgen.Provisions(string(after)),
		}, nil

	case 1:
		sd, err := section.LoadFile(args[0])
		if err != nil {
			return nil, err
		}
		if citation != "" {
			sd.Citation = citation
		}
		return sd, nil
	}

	if data, piped := checkStdinPipe(); piped {
		sd, err := section.Load(strings.NewReader(data))
		if err != nil {
			return nil, err
		}
		if citation != "" {
			sd.Citation = citation
		}
		return sd, nil
	}

	return nil, fmt.Errorf("no input: pass a section document, a before/after pair, or pipe JSON on stdin")
}

// checkStdinPipe reads piped stdin data if any is available.
func checkStdinPipe() (string, bool) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return "", false
	}

	// A character device means an interactive terminal, not a pipe
	if info.Mode()&os.ModeCharDevice != 0 {
		return "", false
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", false
	}

	if len(data) > 0 {
		return string(data), true
	}
	return "", false
}

// runTUI starts the interactive viewer.
func runTUI(sd diff.SectionDiff, layout render.Layout, granular bool) error {
	program := tea.NewProgram(
		tui.New(sd, layout, granular),
		tea.WithAltScreen(),
	)

	defer logging.RecoverPanic("TUI", func() {
		program.Quit()
	})

	if _, err := program.Run(); err != nil {
		slog.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %v", err)
	}

	slog.Info("TUI exited")
	return nil
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().BoolP("version", "v", false, "Version")
	rootCmd.Flags().BoolP("debug", "d", false, "Debug")
	rootCmd.Flags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.Flags().StringP("layout", "l", "", "Diff layout (unified, split)")
	rootCmd.Flags().IntP("width", "w", 0, "Output width in columns")
	rootCmd.Flags().Bool("granular", false, "Highlight character-level difference segments")
	rootCmd.Flags().StringP("output-format", "f", "text", "Output format for non-interactive mode (text, json)")
	rootCmd.Flags().String("citation", "", "Citation shown in the section header")
	rootCmd.Flags().IntSlice("expand", nil, "Collapsed region indexes to expand (comma-separated list)")
	rootCmd.Flags().Bool("expand-all", false, "Expand every collapsed region")
	rootCmd.Flags().BoolP("tui", "t", false, "Open the interactive viewer")

	// Expanding everything makes individual indexes meaningless
	rootCmd.MarkFlagsMutuallyExclusive("expand", "expand-all")
}
