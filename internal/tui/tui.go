package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/durok/internal/guide"
	"github.com/balkashynov/durok/internal/parser"
	"github.com/balkashynov/durok/internal/report"
	"github.com/balkashynov/durok/internal/session"
	"github.com/balkashynov/durok/internal/tracker"
)

// RunSessionTUI runs the interactive tracking screen and prints a summary on exit
func RunSessionTUI(s *session.Session, clock *tracker.LoopClock, answerer guide.Answerer, askTimeout time.Duration) error {
	model := NewSessionModel(s, clock, answerer, askTimeout)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	// Minutes accrued since the last pause are not logged
	if accrued := s.AccruedMinutes(); accrued > 0 {
		fmt.Printf("💡 %s on the running timer was not logged (pause to log time).\n", parser.FormatMinutes(accrued))
	}
	s.Reset()

	entries, err := s.Entries()
	if err != nil {
		return err
	}
	inputs := make([]parser.Input, 0, len(entries))
	for _, entry := range entries {
		inputs = append(inputs, entry.Input())
	}

	return report.WriteTotals(os.Stdout, report.FormatText,
		report.NewTotalsReport(s.Strategy(), inputs, s.Target()))
}
