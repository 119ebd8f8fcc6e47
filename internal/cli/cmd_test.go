package cli

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/buildcost/internal/app"
	"github.com/alexanderramin/buildcost/internal/config"
	"github.com/alexanderramin/buildcost/internal/contract"
	"github.com/alexanderramin/buildcost/internal/estimator"
	"github.com/alexanderramin/buildcost/internal/report"
	"github.com/alexanderramin/buildcost/internal/repository"
	"github.com/alexanderramin/buildcost/internal/service"
	"github.com/alexanderramin/buildcost/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testState wires the command tree against one in-memory database shared by
// every command a test runs.
func testState(t *testing.T) *state {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &state{
		deps: Deps{
			Open:          testOpener(database),
			IsInteractive: func() bool { return false },
			Now:           func() time.Time { return fixedNow },
		},
		promptProject: func(*wizardAnswers) error { t.Fatal("unexpected wizard prompt"); return nil },
		confirmSave:   func(*saveAnswer) error { t.Fatal("unexpected save prompt"); return nil },
	}
}

func testOpener(database *sql.DB) Opener {
	return func(cfg *config.Config, logger *slog.Logger) (*app.App, error) {
		cat, err := app.LoadCatalog(cfg, logger)
		if err != nil {
			return nil, err
		}
		return app.New(cfg, logger, estimator.NewEngine(cat, cfg.EngineOptions()...), database), nil
	}
}

type result struct {
	stdout string
	stderr string
}

// executeCmd runs a fresh command tree and captures stdout and stderr.
func executeCmd(t *testing.T, s *state, args ...string) (result, error) {
	t.Helper()
	return executeCmdIn(t, s, nil, args...)
}

func executeCmdIn(t *testing.T, s *state, stdin []byte, args ...string) (result, error) {
	t.Helper()
	root := newRootCmd(s)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(bytes.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return result{stdout: out.String(), stderr: errOut.String()}, err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func sampleProjectFile(t *testing.T) string {
	t.Helper()
	body, err := testutil.SampleDetailedDocument().Marshal()
	require.NoError(t, err)
	return writeFile(t, "project.json", string(body))
}

func TestEstimateCmd(t *testing.T) {
	s := testState(t)
	path := sampleProjectFile(t)

	t.Run("basic", func(t *testing.T) {
		res, err := executeCmd(t, s, "estimate", path)
		require.NoError(t, err)
		assert.Contains(t, res.stdout, "$2,500,000.00")
		assert.Contains(t, res.stdout, "Luxury")
	})

	t.Run("detailed json", func(t *testing.T) {
		res, err := executeCmd(t, s, "estimate", "--detailed", "--json", path)
		require.NoError(t, err)
		var got contract.DetailedEstimateResponse
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
		assert.Equal(t, 237_000.0, got.TotalCost)
		assert.Len(t, got.Rooms, 2)
	})

	t.Run("detailed text", func(t *testing.T) {
		res, err := executeCmd(t, s, "estimate", "--detailed", "--workers", "2", path)
		require.NoError(t, err)
		assert.Contains(t, res.stdout, "$237,000.00")
		assert.Contains(t, res.stdout, "Primary Bath")
	})

	t.Run("stdin", func(t *testing.T) {
		res, err := executeCmdIn(t, s, []byte(`{"square_footage": 1000, "global_tier": "premium"}`), "estimate", "--json", "-")
		require.NoError(t, err)
		var got contract.BasicEstimateResponse
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
		assert.Equal(t, 350_000.0, got.TotalCost)
		assert.Equal(t, "Premium", got.GlobalTier)
	})

	t.Run("invalid project", func(t *testing.T) {
		bad := writeFile(t, "bad.json", `{"square_footage": -10}`)
		res, err := executeCmd(t, s, "estimate", bad)
		require.ErrorIs(t, err, errInvalidProject)
		assert.Contains(t, res.stderr, "Square footage must be a positive number, got -10")
		assert.Empty(t, res.stdout)
	})

	t.Run("invalid project json", func(t *testing.T) {
		bad := writeFile(t, "bad.json", `{"square_footage": -10}`)
		res, err := executeCmd(t, s, "estimate", "--json", bad)
		require.ErrorIs(t, err, errInvalidProject)
		var got contract.ValidationResponse
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
		assert.False(t, got.IsValid)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := executeCmd(t, s, "estimate", filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})
}

func TestEstimateCmd_CatalogFlag(t *testing.T) {
	s := testState(t)
	cat := writeFile(t, "catalog.yaml", `
version: test-1
trades:
  general_construction:
    unit_basis: per_sqft
    tiers: {Premium: 100, Luxury: 200, Ultra-Luxury: 300}
`)
	res, err := executeCmd(t, s, "estimate", "--catalog", cat, "--json", sampleProjectFile(t))
	require.NoError(t, err)
	var got contract.BasicEstimateResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, 1_000_000.0, got.TotalCost)
}

func TestValidateCmd(t *testing.T) {
	s := testState(t)

	res, err := executeCmd(t, s, "validate", sampleProjectFile(t))
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "Project is valid")

	bad := writeFile(t, "bad.json", `{"square_footage": 0}`)
	res, err = executeCmd(t, s, "validate", bad)
	require.ErrorIs(t, err, errInvalidProject)
	assert.Contains(t, res.stdout, "Project is invalid")
}

func TestSavedEstimateCommands(t *testing.T) {
	s := testState(t)
	path := sampleProjectFile(t)

	res, err := executeCmd(t, s, "save", "hillside", path)
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "Estimate saved as hillside")
	assert.Contains(t, res.stdout, "$237,000.00")

	res, err = executeCmd(t, s, "load", "hillside")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "HILLSIDE")
	assert.Contains(t, res.stdout, "Sample Residence")

	res, err = executeCmd(t, s, "load", "--json", "hillside")
	require.NoError(t, err)
	var loaded contract.SavedEstimateResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &loaded))
	assert.Equal(t, 237_000.0, loaded.TotalCost)

	res, err = executeCmd(t, s, "list")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "hillside")
	assert.Contains(t, res.stdout, "TOTALS BY TRADE")

	res, err = executeCmd(t, s, "list", "--json")
	require.NoError(t, err)
	var list contract.ListSavedResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &list))
	require.Len(t, list.Estimates, 1)
	assert.NotEmpty(t, list.TotalsByTrade)

	res, err = executeCmd(t, s, "delete", "hillside")
	require.NoError(t, err)
	assert.Equal(t, "Deleted estimate hillside\n", res.stdout)

	_, err = executeCmd(t, s, "load", "hillside")
	require.ErrorIs(t, err, repository.ErrNotFound)

	res, err = executeCmd(t, s, "list")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "No saved estimates.")
}

func TestSaveCmd_SuppliedResult(t *testing.T) {
	s := testState(t)
	resultPath := writeFile(t, "result.json", `{"total_cost": 1000, "categories": {"tile": 1000}}`)

	res, err := executeCmd(t, s, "save", "--result", resultPath, "--json", "supplied", sampleProjectFile(t))
	require.NoError(t, err)
	var got contract.SaveResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.True(t, got.Success)
	assert.Equal(t, 1000.0, got.Estimate.TotalCost)

	notJSON := writeFile(t, "result.txt", "total: 5")
	_, err = executeCmd(t, s, "save", "--result", notJSON, "other", sampleProjectFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "result is not valid JSON")
}

func TestSaveCmd_InvalidName(t *testing.T) {
	s := testState(t)
	_, err := executeCmd(t, s, "save", "a/b", sampleProjectFile(t))
	require.ErrorIs(t, err, service.ErrInvalidName)
}

func TestReportCmd(t *testing.T) {
	s := testState(t)
	path := sampleProjectFile(t)
	_, err := executeCmd(t, s, "save", "hillside", path)
	require.NoError(t, err)

	t.Run("saved as csv", func(t *testing.T) {
		res, err := executeCmd(t, s, "report", "hillside", "--format", "csv")
		require.NoError(t, err)
		records, err := csv.NewReader(strings.NewReader(res.stdout)).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, report.Header, records[0])
		assert.Equal(t, "237000.00", records[len(records)-1][len(report.Header)-1])
	})

	t.Run("project as text", func(t *testing.T) {
		res, err := executeCmd(t, s, "report", "--project", path)
		require.NoError(t, err)
		assert.Contains(t, res.stdout, "Estimate: Sample Residence")
	})

	t.Run("xlsx to file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "hillside.xlsx")
		_, err := executeCmd(t, s, "report", "hillside", "-f", "xlsx", "-o", out)
		require.NoError(t, err)

		f, err := excelize.OpenFile(out)
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, []string{report.SummarySheet, report.LinesSheet}, f.GetSheetList())
	})

	tests := []struct {
		name      string
		args      []string
		errSubstr string
	}{
		{"neither name nor project", []string{"report"}, "either a saved estimate NAME or --project"},
		{"both name and project", []string{"report", "hillside", "--project", path}, "either a saved estimate NAME or --project"},
		{"unknown format", []string{"report", "hillside", "--format", "pdf"}, `unknown report format "pdf"`},
		{"xlsx without out", []string{"report", "hillside", "--format", "xlsx"}, "xlsx reports need --out"},
		{"unknown estimate", []string{"report", "nope"}, "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCmd(t, s, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestCatalogShowCmd(t *testing.T) {
	s := testState(t)

	res, err := executeCmd(t, s, "catalog", "show")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "general_construction")
	assert.Contains(t, res.stdout, "cabinetry")

	res, err = executeCmd(t, s, "catalog", "show", "--trade", "tile", "--json")
	require.NoError(t, err)
	var got contract.CatalogResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	require.Len(t, got.Trades, 1)
	assert.Equal(t, "tile", got.Trades[0].Trade)
	assert.Equal(t, 38.0, got.Trades[0].Tiers["Luxury"])

	_, err = executeCmd(t, s, "catalog", "show", "--trade", "moat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown trade "moat"`)
}

func TestCatalogCheckCmd(t *testing.T) {
	s := testState(t)

	good := writeFile(t, "good.yaml", `
trades:
  general_construction:
    unit_basis: per_sqft
    tiers: {Premium: 1, Luxury: 2, Ultra-Luxury: 3}
`)
	res, err := executeCmd(t, s, "catalog", "check", good)
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "Catalog is valid")

	bad := writeFile(t, "bad.yaml", `
trades:
  tile:
    unit_basis: per_hour
    tiers: {Premium: 1}
`)
	res, err = executeCmd(t, s, "catalog", "check", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has 1 errors")
	assert.Contains(t, res.stdout, `unknown unit basis "per_hour"`)
	assert.Contains(t, res.stdout, "warnings")
}

func TestServeCmd_StopsWhenContextDone(t *testing.T) {
	s := testState(t)
	root := newRootCmd(s)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, root.ExecuteContext(ctx))
}

func TestConfigFileFlag(t *testing.T) {
	s := testState(t)
	cfgPath := writeFile(t, "buildcost.yaml", "log:\n  level: nonsense\n")

	_, err := executeCmd(t, s, "--config", cfgPath, "estimate", sampleProjectFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown level "nonsense"`)
}
