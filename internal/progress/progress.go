// Package progress renders the pipeline's phase progress to a TTY
// (charmbracelet/bubbles' spinner frames + lipgloss), falling back to
// plain line-oriented slog output when stdout isn't a terminal
// (mattn/go-isatty), the convention the teacher's CLI entry points
// follow.
package progress

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Phase enumerates the orchestrator's fixed pipeline stages (spec §6),
// mirroring the teacher's ProgressPhase enum.
type Phase int

const (
	PhaseLoadProject Phase = iota
	PhaseExtractComponents
	PhaseExtractModules
	PhaseExtractRoutes
	PhaseAnalyzeEvents
	PhaseDiscoverServices
	PhaseAssembleGraph
	PhaseValidate
	PhaseSerialize
)

func (p Phase) String() string {
	switch p {
	case PhaseLoadProject:
		return "Loading project"
	case PhaseExtractComponents:
		return "Extracting components"
	case PhaseExtractModules:
		return "Extracting modules"
	case PhaseExtractRoutes:
		return "Extracting routes"
	case PhaseAnalyzeEvents:
		return "Analyzing events"
	case PhaseDiscoverServices:
		return "Discovering services"
	case PhaseAssembleGraph:
		return "Assembling graph"
	case PhaseValidate:
		return "Validating"
	case PhaseSerialize:
		return "Serializing"
	default:
		return "Unknown phase"
	}
}

var (
	phaseStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// Reporter reports phase transitions to the user.
type Reporter struct {
	tty   bool
	out   io.Writer
	frame int
}

// NewReporter builds a Reporter, TTY-gated via go-isatty the way the
// teacher's cmd/trace main gates its banner output.
func NewReporter() *Reporter {
	return &Reporter{tty: isatty.IsTerminal(os.Stdout.Fd()), out: os.Stdout}
}

// Start announces the beginning of a phase, prefixed with the next
// frame of bubbles' dot spinner to give the fixed pipeline a sense of
// motion without running a full interactive program loop.
func (r *Reporter) Start(p Phase) {
	if r.tty {
		glyph := spinner.Dot.Frames[r.frame%len(spinner.Dot.Frames)]
		r.frame++
		fmt.Fprintln(r.out, spinnerStyle.Render(glyph)+" "+phaseStyle.Render(p.String()))
		return
	}
	slog.Info("phase started", slog.String("phase", p.String()))
}

// Done announces a phase's completion with an item count.
func (r *Reporter) Done(p Phase, count int) {
	if r.tty {
		fmt.Fprintf(r.out, "  %s (%d)\n", lipgloss.NewStyle().Faint(true).Render("done"), count)
		return
	}
	slog.Info("phase completed", slog.String("phase", p.String()), slog.Int("count", count))
}
