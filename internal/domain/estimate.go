package domain

// LineItem is one priced (room, trade) pair.
type LineItem struct {
	RoomID     string
	Trade      Trade
	Tier       Tier
	Scope      Scope
	UnitBasis  UnitBasis
	Quantity   float64
	Multiplier float64
	Cost       float64
}

// RoomCost is the per-room part of an estimation result.
type RoomCost struct {
	Name          string
	Type          RoomType
	SquareFootage float64
	TotalCost     float64
	Trades        map[Trade]LineItem
}

// EstimationResult is the derived, immutable output of one estimation.
// Amounts are unrounded; rounding happens at presentation time.
type EstimationResult struct {
	ProjectName         string
	GlobalTier          Tier
	TierDerived         bool
	TotalCost           float64
	Categories          map[Trade]float64
	Rooms               map[string]RoomCost
	General             map[Trade]LineItem
	Lines               []LineItem
	PercentageBreakdown map[Trade]float64
	Warnings            []string
	RoomSquareFootage   float64
	CatalogVersion      string
	Benchmarks          []BenchmarkComparison
}

// GeneralTotal sums the cost of lines with no owning room.
func (r *EstimationResult) GeneralTotal() float64 {
	var total float64
	for _, trade := range SortedTrades(r.General) {
		total += r.General[trade].Cost
	}
	return total
}

// ValidationReport is the outcome of validating a project. Errors block
// estimation; warnings are informational.
type ValidationReport struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// BenchmarkComparison sets the cost per project square foot of one category
// against the reference cost for the effective tier. Benchmark is zero when
// the trade has none, and PercentageDiff is then zero too.
type BenchmarkComparison struct {
	Trade          Trade
	Actual         float64
	Benchmark      float64
	Difference     float64
	PercentageDiff float64
}
