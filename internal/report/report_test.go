package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/alexanderramin/buildcost/internal/contract"
	"github.com/alexanderramin/buildcost/internal/domain"
	"github.com/alexanderramin/buildcost/internal/estimator"
	"github.com/alexanderramin/buildcost/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	res, err := estimator.NewEngine(nil).Run(context.Background(), testutil.SampleDetailedProject())
	require.NoError(t, err)
	return FromResult("", res)
}

func TestFromResult_UsesProjectNameAsTitle(t *testing.T) {
	r := sampleReport(t)
	assert.Equal(t, "Sample Residence", r.Title)
	assert.Equal(t, 237_000.0, r.Estimate.TotalCost)
}

func TestLines_RoomsThenGeneral(t *testing.T) {
	lines := sampleReport(t).Lines()
	require.NotEmpty(t, lines)

	var sum float64
	seenGeneral := false
	for i, l := range lines {
		sum += l.Cost
		if l.Room == GeneralRoom {
			seenGeneral = true
			assert.Empty(t, l.RoomID)
			continue
		}
		assert.False(t, seenGeneral, "room line %d after general lines", i)
	}
	assert.Equal(t, "room1", lines[0].RoomID)
	assert.Equal(t, "Primary Bath", lines[0].Room)
	assert.True(t, seenGeneral)
	assert.InDelta(t, 237_000.0, sum, 0.01)
}

func TestCategories_LargestFirst(t *testing.T) {
	cats := sampleReport(t).Categories()
	require.NotEmpty(t, cats)
	for i := 1; i < len(cats); i++ {
		assert.GreaterOrEqual(t, cats[i-1].Cost, cats[i].Cost)
	}
}

func TestWriteCSV_OneRowPerLinePlusTotal(t *testing.T) {
	r := sampleReport(t)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, r))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	lines := r.Lines()
	require.Len(t, records, len(lines)+2)
	assert.Equal(t, Header, records[0])

	last := records[len(records)-1]
	assert.Equal(t, TotalLabel, last[0])
	assert.Equal(t, "237000.00", last[len(last)-1])

	assert.Equal(t, lines[0].Trade, records[1][2])
}

func TestWriteXLSX_Sheets(t *testing.T) {
	r := sampleReport(t)
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, r))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, LinesSheet}, f.GetSheetList())

	rows, err := f.GetRows(LinesSheet)
	require.NoError(t, err)
	require.Len(t, rows, len(r.Lines())+2)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, TotalLabel, rows[len(rows)-1][0])

	total, err := f.GetCellValue(LinesSheet, "I"+strconv.Itoa(len(rows)), excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "237000", total)

	title, err := f.GetCellValue(SummarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Sample Residence", title)
}

func TestWriteText(t *testing.T) {
	r := sampleReport(t)
	r.Estimate.Warnings = []string{"Square footage is unusually high"}
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, r))

	out := buf.String()
	assert.Contains(t, out, "Estimate: Sample Residence")
	assert.Contains(t, out, "Tier:     Luxury\n")
	assert.Contains(t, out, "Total:    $237,000.00")
	assert.Contains(t, out, "Categories")
	assert.Contains(t, out, "Lines")
	assert.Contains(t, out, "  - Square footage is unusually high")
	assert.Contains(t, out, "Benchmarks (per sq ft)")
	assert.Regexp(t, `cabinetry\s+\$9\.00\s+\$40\.00\s+-77\.5%`, out)
}

func TestBenchmarks_SkipsTradesWithoutOne(t *testing.T) {
	r := sampleReport(t)
	r.Estimate.BenchmarkComparison = append(r.Estimate.BenchmarkComparison,
		contract.BenchmarkResponse{Category: "tile", Actual: 2})

	var names []string
	for _, b := range r.Benchmarks() {
		names = append(names, b.Category)
	}
	assert.Equal(t, []string{"cabinetry", "electrical", "hvac", "plumbing"}, names)
}

func TestFromSaved(t *testing.T) {
	res, err := estimator.NewEngine(nil).Run(context.Background(), testutil.SampleDetailedProject())
	require.NoError(t, err)
	body, err := json.Marshal(FromResult("", res).Estimate)
	require.NoError(t, err)

	saved := testutil.NewTestSavedEstimate("hillside", testutil.WithSavedDocument([]byte(`{}`), body))
	r, err := FromSaved(saved)
	require.NoError(t, err)
	assert.Equal(t, "hillside", r.Title)
	assert.Equal(t, 237_000.0, r.Estimate.TotalCost)
	assert.NotEmpty(t, r.Lines())
}

func TestFromSaved_TotalsOnlyResult(t *testing.T) {
	saved := testutil.NewTestSavedEstimate("thin", testutil.WithSavedCategories(map[domain.Trade]float64{"tile": 10, "hvac": 5}))
	saved.Result = []byte(`{"note": "computed elsewhere"}`)

	r, err := FromSaved(saved)
	require.NoError(t, err)
	assert.Equal(t, 15.0, r.Estimate.TotalCost)
	assert.Equal(t, map[string]float64{"tile": 10, "hvac": 5}, r.Estimate.Categories)
	assert.Empty(t, r.Lines())
	assert.Equal(t, "Luxury", r.Estimate.GlobalTier)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, r))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestFromSaved_MalformedResult(t *testing.T) {
	saved := testutil.NewTestSavedEstimate("broken")
	saved.Result = []byte(`{`)
	_, err := FromSaved(saved)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"broken"`)
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{999.5, "$999.50"},
		{1000, "$1,000.00"},
		{2_500_000, "$2,500,000.00"},
		{-1234.56, "-$1,234.56"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(tt.in))
	}
}

func TestFormat_Valid(t *testing.T) {
	assert.True(t, FormatXLSX.Valid())
	assert.False(t, Format("pdf").Valid())
}

func TestWrite_DispatchesByFormat(t *testing.T) {
	r := sampleReport(t)

	var text, csvOut bytes.Buffer
	require.NoError(t, Write(&text, r, FormatText))
	require.NoError(t, Write(&csvOut, r, FormatCSV))
	assert.Contains(t, text.String(), "Estimate: Sample Residence")
	assert.Contains(t, csvOut.String(), "Room ID,Room,Trade")

	err := Write(&bytes.Buffer{}, r, Format("pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown report format "pdf"`)
}
