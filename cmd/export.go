package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zhubert/studydesk/internal/app"
	"github.com/zhubert/studydesk/internal/auth"
	"github.com/zhubert/studydesk/internal/config"
	"github.com/zhubert/studydesk/internal/export"
	"github.com/zhubert/studydesk/internal/logger"
	"github.com/zhubert/studydesk/internal/models"
)

var (
	exportFormat  string
	exportOutput  string
	exportStudent string
)

const exportTimeout = 60 * time.Second

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export applications to XLSX or PDF",
	Long: `Writes the application list to a spreadsheet or a PDF report, with each
row tinted in its status colour.

Advisors and admins export every application, or one student's with --student.
Students always export their own applications.`,
	Example: `  studydesk export
  studydesk export --format pdf --student 64f1c2
  studydesk export -o ~/reports/fall.xlsx`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: xlsx or pdf (default from --output, else xlsx)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default applications[-student].<format>)")
	exportCmd.Flags().StringVar(&exportStudent, "student", "", "Only this student's applications (advisors and admins)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Each export run gets its own log file
	if err := logger.Init(logger.ExportLogPath(uuid.NewString()[:8])); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	defer logger.Close()

	svc, c, err := connect(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), exportTimeout)
	defer cancel()

	path, n, err := exportApplications(ctx, svc, c, exportStudent, exportFormat, exportOutput)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d application(s) to %s\n", n, path)
	return nil
}

// exportApplications fetches the applications c may see and writes them.
// It returns the path written and how many rows it holds.
func exportApplications(ctx context.Context, svc app.Service, c auth.Capability, studentID, format, output string) (string, int, error) {
	f, err := resolveFormat(format, output)
	if err != nil {
		return "", 0, err
	}

	if c.IsStudent() {
		studentID = c.StudentID
	}

	var apps []models.Application
	if studentID != "" {
		apps, err = svc.ListStudentApplications(ctx, studentID)
	} else {
		apps, err = svc.ListApplications(ctx)
	}
	if err != nil {
		return "", 0, fmt.Errorf("error loading applications: %w", err)
	}

	path := output
	if path == "" {
		path = export.DefaultFileName(f, studentID)
	}
	logger.ComponentLogger("Export").Info("writing export", "path", path, "rows", len(apps), "format", f)

	if err := writeExport(path, f, apps); err != nil {
		return "", 0, err
	}
	return path, len(apps), nil
}

// resolveFormat prefers --format, then the output extension, then XLSX
func resolveFormat(format, output string) (export.Format, error) {
	switch {
	case format != "":
		return export.ParseFormat(format)
	case output != "":
		return export.FormatFromPath(output)
	}
	return export.FormatXLSX, nil
}

// writeExport renders in f even when path carries another extension
func writeExport(path string, f export.Format, apps []models.Application) error {
	out, err := export.Render(export.ApplicationsDataset(apps), f)
	if err != nil {
		return fmt.Errorf("error rendering export: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("error writing export: %w", err)
	}
	return nil
}
