package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/buildcost/internal/app"
	"github.com/alexanderramin/buildcost/internal/report"
	"github.com/spf13/cobra"
)

func newReportCmd(s *state) *cobra.Command {
	var format, outPath, projectPath string

	cmd := &cobra.Command{
		Use:   "report [NAME]",
		Short: "Render a saved estimate, or a project document with --project, as text, CSV or XLSX",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == (projectPath != "") {
				return errors.New("give either a saved estimate NAME or --project FILE")
			}
			f := report.Format(format)
			if !f.Valid() {
				return fmt.Errorf("unknown report format %q (want text, csv or xlsx)", format)
			}
			if f == report.FormatXLSX && outPath == "" {
				return errors.New("xlsx reports need --out")
			}
			return nil
		},
		RunE: s.withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			ctx := cmd.Context()

			var rep *report.Report
			if projectPath != "" {
				doc, err := readProject(cmd, projectPath)
				if err != nil {
					return err
				}
				res, err := a.Estimates.Detailed(ctx, doc)
				if err != nil {
					return reportFailure(cmd, err, false)
				}
				rep = report.FromResult("", res)
			} else {
				saved, err := a.Saved.Load(ctx, args[0])
				if err != nil {
					return err
				}
				if rep, err = report.FromSaved(saved); err != nil {
					return err
				}
			}

			if outPath == "" {
				return report.Write(cmd.OutOrStdout(), rep, report.Format(format))
			}
			return writeReportFile(outPath, rep, report.Format(format))
		}),
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatText), "Output format: text, csv or xlsx")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to this file instead of stdout")
	cmd.Flags().StringVar(&projectPath, "project", "", "Estimate this project document instead of loading a saved one")
	return cmd
}

func writeReportFile(path string, rep *report.Report, f report.Format) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing report file: %w", cerr)
		}
	}()
	return report.Write(file, rep, f)
}
