package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/webcheck/backend/analyzer"
)

func newAnalyzeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Audit a single page and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := loadRuntime()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck // best-effort flush

			result, err := analyzer.New(logger).Analyze(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("analyze %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			writeReport(out, result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON result")
	return cmd
}

func writeReport(w io.Writer, r *analyzer.AnalysisResult) {
	fmt.Fprintf(w, "Report for %s\n", r.URL)
	fmt.Fprintf(w, "Title: %s\n", r.Title)
	fmt.Fprintf(w, "Description: %s\n\n", r.MetaDescription)

	fmt.Fprintf(w, "Overall        %3d  %s\n", r.OverallScore, analyzer.ScoreLabel(r.OverallScore))
	fmt.Fprintf(w, "SEO            %3d  %s\n", r.SEO.Score, analyzer.ScoreLabel(r.SEO.Score))
	fmt.Fprintf(w, "Accessibility  %3d  %s\n", r.Accessibility.Score, analyzer.ScoreLabel(r.Accessibility.Score))
	fmt.Fprintf(w, "Performance    %3d  %s\n", r.Performance.Score, analyzer.ScoreLabel(r.Performance.Score))

	writeSection(w, "SEO issues", r.SEO.Issues)
	writeSection(w, "SEO recommendations", r.SEO.Recommendations)
	writeSection(w, "Accessibility issues", r.Accessibility.Issues)
	writeSection(w, "Performance issues", r.Performance.Issues)
	writeSection(w, "Broken internal links", r.BrokenLinks.Internal)
	writeSection(w, "Broken external links", r.BrokenLinks.External)

	fmt.Fprintf(w, "\nImages: %d total, %d without alt\n", r.Images.Total, r.Images.WithoutAlt)
	fmt.Fprintf(w, "Headings: %d h1 (multiple: %t)\n", r.Headers.H1Count, r.Headers.HasMultipleH1)
	for _, h := range r.Headers.Structure {
		fmt.Fprintf(w, "  %s\n", strings.TrimSpace(h))
	}

	writeSection(w, "Next steps", r.FutureScope)
}

func writeSection(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}
