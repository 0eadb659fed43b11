// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skillgap-analyzer/internal/roadmap"
	"github.com/jonathan/skillgap-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis outputs a human-readable summary of a skill gap analysis.
func (p *Printer) PrintAnalysis(a *types.SkillGapAnalysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target:     %s\n", a.TargetRole))
	sb.WriteString(fmt.Sprintf("Transition: %s\n", a.TransitionType))
	sb.WriteString(fmt.Sprintf("Gaps:       %d critical, %d nice-to-have\n",
		len(a.CriticalGaps), len(a.NiceToHaveGaps)))
	sb.WriteString(fmt.Sprintf("Progress:   %.0f%%", a.CompletionProgress))
	p.printBox("Skill Gap Analysis", sb.String())

	p.printGaps("Critical Gaps", a.CriticalGaps)
	p.printGaps("Nice-to-Have Gaps", a.NiceToHaveGaps)
	p.printTransferable(a.TransferableSkills)
	p.printRoadmap(a.PrioritizedRoadmap)
}

func (p *Printer) printGaps(title string, gaps []types.SkillGap) {
	if len(gaps) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(gaps), maxItemsToShow)
	for i := 0; i < count; i++ {
		g := gaps[i]
		sb.WriteString(fmt.Sprintf("• %s  priority %.1f, %.0f → %.0f, ~%.0fh",
			g.Name, g.PriorityScore, g.CurrentLevel, g.TargetLevel, g.TimeEstimateHours))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(gaps) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(gaps)-maxItemsToShow))
	}
	p.printBox(title, sb.String())
}

func (p *Printer) printTransferable(skills []types.TransferableSkill) {
	if len(skills) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(skills), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := skills[i]
		sb.WriteString(fmt.Sprintf("• %s  applies %.0f%%, confidence %.2f", s.Name, s.Applicability, s.Confidence))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(skills) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(skills)-maxItemsToShow))
	}
	p.printBox("Transferable Skills", sb.String())
}

func (p *Printer) printRoadmap(phases []types.RoadmapPhase) {
	if len(phases) == 0 {
		return
	}

	var sb strings.Builder
	for i, phase := range phases {
		sb.WriteString(roadmap.DescribePhase(phase))
		if i < len(phases)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("Roadmap (%d weeks total)", roadmap.TotalDurationWeeks(phases)), sb.String())
}

// PrintProgress outputs a progress report.
func (p *Printer) PrintProgress(r roadmap.Report) {
	content := fmt.Sprintf("Completion: %.0f%%\nClosed:     %d of %d gaps\n%s",
		r.CompletionProgress, r.ClosedGaps, r.TotalGaps, r.Message)
	p.printBox("Progress", content)
}
