package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// Header is the column layout shared by the CSV and XLSX renderings.
var Header = []string{"Room ID", "Room", "Trade", "Tier", "Scope", "Unit Basis", "Quantity", "Multiplier", "Cost"}

// TotalLabel marks the closing total row.
const TotalLabel = "TOTAL"

// WriteCSV writes one row per priced line followed by a total row.
func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, l := range r.Lines() {
		err := cw.Write([]string{
			l.RoomID,
			l.Room,
			l.Trade,
			l.Tier,
			l.Scope,
			l.UnitBasis,
			formatFloat(l.Quantity),
			formatFloat(l.Multiplier),
			strconv.FormatFloat(l.Cost, 'f', 2, 64),
		})
		if err != nil {
			return err
		}
	}
	total := make([]string, len(Header))
	total[0] = TotalLabel
	total[len(total)-1] = strconv.FormatFloat(r.Estimate.TotalCost, 'f', 2, 64)
	if err := cw.Write(total); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
