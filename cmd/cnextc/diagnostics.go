package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	cnerrors "github.com/jlaustill/c-next/errors"
)

// diagnosticStyle renders one *errors.Error the way a terminal-attached
// invocation shows a compile failure: phase in one color, kind in another,
// detail in the default foreground. Plain text (no styling) when stderr
// isn't a terminal, so piped/CI output stays grep-friendly.
type diagnosticStyle struct {
	phase lipgloss.Style
	kind  lipgloss.Style
	plain bool
}

func newDiagnosticStyle() diagnosticStyle {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))
	return diagnosticStyle{
		phase: lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		kind:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		plain: !isTTY,
	}
}

func (s diagnosticStyle) render(err error) string {
	ce, ok := err.(*cnerrors.Error)
	if !ok {
		return err.Error()
	}
	if s.plain {
		return ce.Error()
	}

	path := ""
	if len(ce.Path) > 0 {
		path = " at " + joinPath(ce.Path)
	}
	detail := ""
	if ce.Detail != "" {
		detail = ": " + ce.Detail
	}
	return fmt.Sprintf("%s %s%s%s",
		s.phase.Render("["+string(ce.Phase)+"]"),
		s.kind.Render(string(ce.Kind)),
		path,
		detail,
	)
}

func joinPath(path []string) string {
	out := path[0]
	for _, p := range path[1:] {
		out += "." + p
	}
	return out
}
