package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/lifeplan/internal/domain"
)

// ResolveFormatter looks up a formatter by name or alias. When assumptions is
// non-nil the verbose console formatter lists them.
func ResolveFormatter(format string, assumptions *domain.Assumptions) (Formatter, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	if v, ok := f.(ConsoleVerboseFormatter); ok && assumptions != nil {
		v.Assumptions = GenerateAssumptions(*assumptions)
		f = v
	}
	return f, nil
}

// GenerateReport writes result in the named format to w.
func GenerateReport(w io.Writer, result *domain.ProjectionResult, format string, assumptions *domain.Assumptions) error {
	f, err := ResolveFormatter(format, assumptions)
	if err != nil {
		return err
	}
	data, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}
