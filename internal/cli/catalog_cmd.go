package cli

import (
	"fmt"

	"github.com/alexanderramin/buildcost/internal/app"
	"github.com/alexanderramin/buildcost/internal/catalog"
	"github.com/alexanderramin/buildcost/internal/cli/formatter"
	"github.com/alexanderramin/buildcost/internal/contract"
	"github.com/spf13/cobra"
)

func newCatalogCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and check cost catalogs",
	}
	cmd.AddCommand(newCatalogShowCmd(s), newCatalogCheckCmd())
	return cmd
}

func newCatalogShowCmd(s *state) *cobra.Command {
	var trade string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the multipliers of the configured catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := s.loadConfig(cmd)
			if err != nil {
				return err
			}
			cat, err := app.LoadCatalog(cfg, logger)
			if err != nil {
				return err
			}

			resp := contract.NewCatalogResponse(cat)
			if trade != "" {
				var kept []contract.CatalogTrade
				for _, t := range resp.Trades {
					if t.Trade == trade {
						kept = append(kept, t)
					}
				}
				if len(kept) == 0 {
					return fmt.Errorf("unknown trade %q", trade)
				}
				resp.Trades = kept
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&trade, "trade", "", "Show only this trade")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	return cmd
}

func newCatalogCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Report structural problems in a catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			findings, err := catalog.CheckFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFindings(findings))
			if fatal := catalog.Fatal(findings); len(fatal) > 0 {
				return fmt.Errorf("catalog %s has %d errors", args[0], len(fatal))
			}
			return nil
		},
	}
}
