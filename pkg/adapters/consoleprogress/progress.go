// Package consoleprogress reports conversion progress on the terminal.
package consoleprogress

import (
	"fmt"
	"os"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/user/vr180/pkg/ports"
)

const barWidth = 30

// Reporter implements ports.Progress. On a terminal it redraws a progress
// bar in place; otherwise it logs a line every logInterval frames.
type Reporter struct {
	logger      ports.Logger
	tty         bool
	logInterval int
}

// New creates a new Reporter.
func New(logger ports.Logger) *Reporter {
	return &Reporter{
		logger:      logger,
		tty:         isatty.IsTerminal(os.Stderr.Fd()),
		logInterval: 30,
	}
}

// Update reports that current of total frames have been processed.
func (r *Reporter) Update(current, total int) {
	if r.tty {
		r.drawBar(current, total)
		return
	}
	if current%r.logInterval == 0 {
		if total > 0 {
			r.logger.Info(l10n.F("Processed %d/%d frames", current, total))
		} else {
			r.logger.Info(l10n.F("Processed %d frames", current))
		}
	}
}

// Finish terminates the in-place bar line, if one was drawn.
func (r *Reporter) Finish() {
	if r.tty {
		fmt.Fprintln(os.Stderr)
	}
}

func (r *Reporter) drawBar(current, total int) {
	if total <= 0 {
		fmt.Fprintf(os.Stderr, "\r%d frames", current)
		return
	}
	if current > total {
		// The probe's frame count is an estimate; never show >100%.
		total = current
	}
	filled := current * barWidth / total
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)
	fmt.Fprintf(os.Stderr, "\r[%s] %d/%d", bar, current, total)
}

// Ensure Reporter implements ports.Progress
var _ ports.Progress = (*Reporter)(nil)
