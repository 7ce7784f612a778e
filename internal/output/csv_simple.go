package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/lifeplan/internal/domain"
)

// CSVSummarizer writes one row per projected year with the headline series.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Age", "Income", "Expenses", "CashFlow", "Assets", "Liabilities", "NetWorth"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for y := 0; y <= result.Years(); y++ {
		row := []string{
			strconv.Itoa(y),
			strconv.Itoa(result.Ages[y]),
			result.Income[y].StringFixed(2),
			result.Expenses[y].StringFixed(2),
			result.CashFlow[y].StringFixed(2),
			result.Assets[y].StringFixed(2),
			result.Liabilities[y].StringFixed(2),
			result.NetWorth[y].StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
