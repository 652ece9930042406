package describe

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/minetally/minetally/internal/domain"
	"github.com/minetally/minetally/internal/playerdata"
	"github.com/minetally/minetally/internal/utils"
)

// unknownField fills a template slot when the row does not carry a declared
// field, so a partially populated row still renders.
const unknownField = "unknown"

// Formatter renders statistic rows and totals as localized sentences.
// Number formatting (grouping, decimal separators) follows the configured
// language tag.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter creates a formatter for the given language.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

// TotalLine renders the aggregate sentence for one stat of a player, or
// ok=false when the stat has no descriptor.
func (f *Formatter) TotalLine(info *playerdata.PlayerInfo, stat domain.Stat) (string, bool) {
	desc, ok := DescriptorFor(stat)
	if !ok {
		return "", false
	}

	total := info.TotalValueRounded(stat, 2)
	if stat == domain.StatTimePlayed {
		return f.printer.Sprintf(desc.Total, minutesToString(total)), true
	}
	return f.printer.Sprintf(desc.Total, total), true
}

// RowLine renders the detailed sentence for one row, or ok=false when the
// stat has no descriptor.
func (f *Formatter) RowLine(stat domain.Stat, row domain.Row) (string, bool) {
	desc, ok := DescriptorFor(stat)
	if !ok {
		return "", false
	}

	args := make([]any, 0, len(desc.Fields)+1)
	if stat == domain.StatTimePlayed {
		args = append(args, minutesToString(row.Value()))
	} else {
		args = append(args, utils.RoundTo(row.Value(), 2))
	}

	for _, name := range desc.Fields {
		v, ok := row.Field(name)
		if !ok {
			v = unknownField
		}
		args = append(args, v)
	}

	return f.printer.Sprintf(desc.Row, args...), true
}

// PlayerSummary renders one total line per stat the store has data for, in
// declared stat order.
func (f *Formatter) PlayerSummary(info *playerdata.PlayerInfo) []string {
	lines := make([]string, 0, info.StatCount())
	for _, stat := range info.Stats() {
		if info.RowCount(stat) == 0 {
			continue
		}
		if line, ok := f.TotalLine(info, stat); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

// minutesToString renders a minute count as "Xd Yh Zm", omitting leading
// zero units.
func minutesToString(minutes float64) string {
	d := time.Duration(minutes) * time.Minute
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}
