package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/lifeplan/internal/domain"
)

// subtotalSeries are the balance sub-totals in column order.
var subtotalSeries = []domain.Series{
	domain.SeriesHomeValue,
	domain.SeriesCarValue,
	domain.SeriesMortgage,
	domain.SeriesCarLoan,
	domain.SeriesStudentLoan,
}

// CSVDetailedExporter writes every per-year array: headline series, balance
// sub-totals and one column per expense category.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(result *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Age", "Income", "Expenses", "CashFlow", "Assets", "Liabilities", "NetWorth"}
	for _, s := range subtotalSeries {
		header = append(header, string(s))
	}
	for _, c := range domain.Categories {
		header = append(header, string(c))
	}
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
		for _, s := range subtotalSeries {
			row = append(row, result.SeriesValues(s)[y].StringFixed(2))
		}
		for _, c := range domain.Categories {
			row = append(row, result.CategorySeries(c)[y].StringFixed(2))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
