package cmd

import (
	"fmt"

	"log/slog"

	"github.com/statutedb/lawdiff/internal/diff"
	"github.com/statutedb/lawdiff/internal/format"
	"github.com/statutedb/lawdiff/internal/render"
)

// viewOptions carries the resolved flag and config values for one render.
type viewOptions struct {
	layout    render.Layout
	width     int
	granular  bool
	format    format.OutputFormat
	expand    []int
	expandAll bool
}

// handleNonInteractiveMode renders a section diff once and prints it
func handleNonInteractiveMode(sd diff.SectionDiff, opts viewOptions) error {
	slog.Info("Running in non-interactive mode",
		"section_id", sd.ID,
		"layout", opts.layout,
		"format", opts.format,
		"expand_all", opts.expandAll)

	expanded := expandedSet(sd, opts)
	assembled := diff.Assemble(sd, expanded)

	r := render.New(
		render.WithWidth(opts.width),
		render.WithLayout(opts.layout),
		render.WithGranular(opts.granular),
	)

	output, err := format.Output(r.Section(assembled), assembled, opts.format)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Println(output)
	return nil
}

// expandedSet resolves the --expand/--expand-all flags against the actual
// collapsed region count.
func expandedSet(sd diff.SectionDiff, opts viewOptions) diff.ExpandedSet {
	if opts.expandAll {
		count := diff.Assemble(sd, nil).CollapsedCount
		expanded := make(diff.ExpandedSet, count)
		for i := 0; i < count; i++ {
			expanded[i] = true
		}
		return expanded
	}

	if len(opts.expand) == 0 {
		return nil
	}
	expanded := make(diff.ExpandedSet, len(opts.expand))
	for _, i := range opts.expand {
		if i >= 0 {
			expanded[i] = true
		}
	}
	return expanded
}
