package output

import (
	json "github.com/goccy/go-json"
	"github.com/rpgo/lifeplan/internal/domain"
)

// JSONFormatter serializes the projection result as pretty-printed JSON, with
// amounts rounded to cents.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	return json.MarshalIndent(result.Rounded(domain.MoneyPlaces), "", "  ")
}
