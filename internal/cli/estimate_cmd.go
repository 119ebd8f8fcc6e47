package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/buildcost/internal/app"
	"github.com/alexanderramin/buildcost/internal/cli/formatter"
	"github.com/alexanderramin/buildcost/internal/contract"
	"github.com/alexanderramin/buildcost/internal/domain"
	"github.com/spf13/cobra"
)

func newEstimateCmd(s *state) *cobra.Command {
	var detailed, asJSON bool

	cmd := &cobra.Command{
		Use:   "estimate FILE",
		Short: "Estimate the cost of a project document (\"-\" reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: s.withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			doc, err := readProject(cmd, args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if !detailed {
				res, err := a.Estimates.Basic(ctx, doc)
				if err != nil {
					return reportFailure(cmd, err, asJSON)
				}
				resp := contract.NewBasicEstimateResponse(res)
				if asJSON {
					return writeJSON(out, resp)
				}
				fmt.Fprintln(out, formatter.FormatBasicEstimate(res.ProjectName, resp))
				return nil
			}

			res, err := a.Estimates.Detailed(ctx, doc)
			if err != nil {
				return reportFailure(cmd, err, asJSON)
			}
			resp := contract.NewDetailedEstimateResponse(res)
			if asJSON {
				return writeJSON(out, resp)
			}
			fmt.Fprintln(out, formatter.FormatDetailedEstimate(resp))
			return nil
		}),
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "Price rooms and trades line by line")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the API response shape as JSON")
	cmd.Flags().Int("workers", 0, "Rooms priced concurrently (default GOMAXPROCS)")
	return cmd
}

func newValidateCmd(s *state) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a project document without pricing it",
		Args:  cobra.ExactArgs(1),
		RunE: s.withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			doc, err := readProject(cmd, args[0])
			if err != nil {
				return err
			}
			resp := contract.NewValidationResponse(a.Estimates.Validate(cmd.Context(), doc))
			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), resp); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatValidation(resp))
			}
			if !resp.IsValid {
				return errInvalidProject
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the validation report as JSON")
	return cmd
}

// reportFailure prints the report of a project that failed validation and
// returns errInvalidProject; other errors pass through.
func reportFailure(cmd *cobra.Command, err error, asJSON bool) error {
	var failure *domain.ValidationFailure
	if !errors.As(err, &failure) {
		return err
	}
	resp := contract.NewValidationResponse(failure.Report)
	if asJSON {
		if werr := writeJSON(cmd.OutOrStdout(), resp); werr != nil {
			return werr
		}
	} else {
		fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatValidation(resp))
	}
	return errInvalidProject
}
