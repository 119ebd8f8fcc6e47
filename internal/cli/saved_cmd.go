package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/buildcost/internal/app"
	"github.com/alexanderramin/buildcost/internal/cli/formatter"
	"github.com/alexanderramin/buildcost/internal/contract"
	"github.com/spf13/cobra"
)

func newSaveCmd(s *state) *cobra.Command {
	var resultPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "save NAME FILE",
		Short: "Estimate a project document and store it under NAME",
		Long: "Estimate a project document and store it under NAME, replacing any\n" +
			"estimate already saved there. With --result the given estimate JSON is\n" +
			"stored as-is instead of estimating the project.",
		Args: cobra.ExactArgs(2),
		RunE: s.withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			doc, err := readProject(cmd, args[1])
			if err != nil {
				return err
			}
			var result json.RawMessage
			if resultPath != "" {
				data, err := os.ReadFile(resultPath)
				if err != nil {
					return fmt.Errorf("reading result file: %w", err)
				}
				if !json.Valid(data) {
					return fmt.Errorf("%s: result is not valid JSON", resultPath)
				}
				result = data
			}

			saved, err := a.Saved.Save(cmd.Context(), args[0], doc, result)
			if err != nil {
				return reportFailure(cmd, err, asJSON)
			}
			resp := contract.NewSaveResponse(saved)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s %s\n",
				formatter.StyleGreen.Render(resp.Message),
				formatter.Dim("total"),
				formatter.Bold(formatter.Money(resp.Estimate.TotalCost)))
			return nil
		}),
	}

	cmd.Flags().StringVar(&resultPath, "result", "", "Store this estimate JSON instead of computing one")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the save response as JSON")
	return cmd
}

func newLoadCmd(s *state) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "load NAME",
		Short: "Show a saved estimate",
		Args:  cobra.ExactArgs(1),
		RunE: s.withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			saved, err := a.Saved.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			resp := contract.NewSavedEstimateResponse(saved)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSavedEstimate(resp))
			return nil
		}),
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stored project and result as JSON")
	return cmd
}

func newListCmd(s *state) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved estimates, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: s.withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			ctx := cmd.Context()
			list, err := a.Saved.List(ctx)
			if err != nil {
				return err
			}
			totals, err := a.Saved.TotalsByTrade(ctx)
			if err != nil {
				return err
			}
			resp := contract.NewListSavedResponse(list, totals)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSavedList(resp, s.deps.Now()))
			return nil
		}),
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the list as JSON")
	return cmd
}

func newDeleteCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a saved estimate",
		Args:  cobra.ExactArgs(1),
		RunE: s.withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			if err := a.Saved.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted estimate %s\n", args[0])
			return nil
		}),
	}
}
