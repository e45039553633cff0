package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"aacrawler/internal/crawler"
	"aacrawler/internal/formatter"
	"aacrawler/internal/models"
	"aacrawler/internal/normalizer"
	"aacrawler/internal/summary"
)

// Output formats of the crawl command.
const (
	formatJSON  = "json"
	formatTable = "table"
)

func (a *app) crawlCommand() *cobra.Command {
	var (
		filters   map[string]string
		format    string
		output    string
		normalize bool
	)

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Search and fetch every matching article",
		Example: `  crawler crawl
  crawler crawl --filter limit=10 --filter filter_category=2
  crawler crawl --format table --normalize
  crawler crawl --output data/articles.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatJSON && format != formatTable {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatTable)
			}

			client, err := crawler.NewClientFromConfig(a.cfg, crawler.WithLogger(a.logger))
			if err != nil {
				return err
			}

			articles, report, err := client.CrawlWithStats(cmd.Context(), filters)
			if err != nil {
				return fmt.Errorf("crawl failed: %w", err)
			}

			if normalize {
				articles, err = normalizer.NewProcessor(a.cfg.Crawler.SummaryLength).Process(articles)
				if err != nil {
					return fmt.Errorf("normalize failed: %w", err)
				}
			}

			if output != "" {
				if err := saveArticles(articles, output); err != nil {
					return err
				}

				fmt.Fprintf(cmd.ErrOrStderr(), "✅ Saved %d articles to %s (%s)\n",
					len(articles), output, report.Log.Stats())

				return nil
			}

			return writeArticles(cmd.OutOrStdout(), articles, format)
		},
	}

	cmd.Flags().StringToStringVar(&filters, "filter", nil, "Search filter override as key=value (repeatable)")
	cmd.Flags().StringVar(&format, "format", formatJSON, "Output format: json or table")
	cmd.Flags().StringVar(&output, "output", "", "Write JSON to this file instead of stdout")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "Derive missing summaries and title-case names")

	return cmd
}

func (a *app) documentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "document <id>",
		Short: "Fetch and map a single document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := crawler.NewClientFromConfig(a.cfg, crawler.WithLogger(a.logger))
			if err != nil {
				return err
			}

			article, err := client.Article(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)

			return enc.Encode(article)
		},
	}
}

func (a *app) summaryCommand() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "summary [text...]",
		Short: "Summarize text from arguments or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}

				text = string(data)
			}

			if length <= 0 {
				length = a.cfg.Crawler.SummaryLength
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), summary.New(length).CreateSummary(text))

			return err
		},
	}

	cmd.Flags().IntVar(&length, "length", 0, "Maximum summary length (default from config)")

	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "crawler version %s\n", Version)
		},
	}
}

func writeArticles(w io.Writer, articles []models.Article, format string) error {
	if format == formatTable {
		_, err := io.WriteString(w, formatter.NewTableFormatter(0).ArticlesTable(articles))

		return err
	}

	return crawler.WriteArticlesJSON(w, articles)
}

func saveArticles(articles []models.Article, outputPath string) error {
	// Ensure output directory exists
	outputDir := filepath.Dir(outputPath)
	if outputDir != "." && outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("could not create output directory: %w", err)
		}
	}

	// Keep the previous run as a backup
	if _, err := os.Stat(outputPath); err == nil {
		if err := os.Rename(outputPath, outputPath+".bak"); err != nil {
			return fmt.Errorf("could not create backup: %w", err)
		}
	}

	return crawler.SaveArticlesJSON(articles, outputPath)
}
