package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"alfredoptarigan/resumesync/internal/config"
	"alfredoptarigan/resumesync/internal/models"
	"alfredoptarigan/resumesync/internal/services"
)

var errNoDocumentText = errors.New("no text could be extracted")

type analyzeOptions struct {
	resumePath string
	jobPath    string
	jobText    string
	asJSON     bool
}

func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a resume file against a job description",
		Long: `Extracts the resume text (PDF, DOCX or TXT), sends it with the job description
to the configured model and prints the ATS report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.resumePath, "resume", "", "Path to the resume (PDF, DOCX or TXT)")
	cmd.Flags().StringVar(&opts.jobPath, "job", "", "Path to the job description (PDF, DOCX or TXT)")
	cmd.Flags().StringVar(&opts.jobText, "job-text", "", "Job description text")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the report and view as JSON")
	_ = cmd.MarkFlagRequired("resume")
	cmd.MarkFlagsMutuallyExclusive("job", "job-text")
	cmd.MarkFlagsOneRequired("job", "job-text")

	return cmd
}

func runAnalyze(cmd *cobra.Command, cfg *config.Config, opts *analyzeOptions) error {
	overrides, err := config.LoadPromptOverrides(cfg.Prompt.File)
	if err != nil {
		return fmt.Errorf("failed to load prompt file: %w", err)
	}

	completer, err := services.NewCompleter(cfg)
	if err != nil {
		return err
	}

	// Without a page to paste into, DOCX text is always extracted.
	ingestion := services.NewIngestionService(services.NewPDFPageExtractor(), services.NewDocxTextExtractor())
	analyzer := services.NewAnalyzerService(completer, services.NewPromptBuilder(overrides), cfg.Workflow)

	resumeText, err := readDocument(ingestion, opts.resumePath)
	if err != nil {
		return report(cmd, err)
	}

	jobDescription := opts.jobText
	if opts.jobPath != "" {
		if jobDescription, err = readDocument(ingestion, opts.jobPath); err != nil {
			return report(cmd, err)
		}
	}

	log.Printf("📄 Analyzing %s", opts.resumePath)
	result, err := analyzer.Analyze(cmd.Context(), resumeText, jobDescription)
	if err != nil {
		return report(cmd, err)
	}

	view := services.Present(result)
	out := cmd.OutOrStdout()

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(models.AnalyzeResponse{
			Report:       result,
			View:         view,
			Notification: services.AnalysisCompleteNotification(),
		})
	}

	_, err = fmt.Fprint(out, services.RenderText(view))
	return err
}

func readDocument(ingestion services.IngestionService, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	name := filepath.Base(path)
	doc, err := ingestion.Ingest(models.Upload{
		FileName:  name,
		MediaType: services.MediaTypeFor(name, ""),
		Data:      data,
	})
	if err != nil {
		return "", err
	}

	// There is no text box to fall back on here, so a pass-through document is an error.
	if doc.Text == "" && doc.Warning != "" {
		return "", fmt.Errorf("%w from %s", errNoDocumentText, name)
	}

	return doc.Text, nil
}

// report prints the user-facing notification for err and returns err.
func report(cmd *cobra.Command, err error) error {
	if errors.Is(err, errNoDocumentText) {
		fmt.Fprintf(cmd.ErrOrStderr(), "❌ %s: %v. Convert it to PDF or TXT and retry.\n", services.TitleNoTextExtracted, err)
		return err
	}

	n := services.NotificationFor(err)
	fmt.Fprintf(cmd.ErrOrStderr(), "❌ %s: %s\n", n.Title, n.Description)
	return err
}
