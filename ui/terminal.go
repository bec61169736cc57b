package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/logrusorgru/aurora"
	runewidth "github.com/mattn/go-runewidth"
	indent "github.com/openconfig/goyang/pkg/indent"
	"golang.org/x/term"
)

const (
	indentUnit   = "  "
	promptPrefix = "> "
)

// TerminalUI colours its output only when out is a terminal, so piped
// output and log files stay plain.
type TerminalUI struct {
	indentLevel int
	out         io.Writer
	in          *bufio.Reader
	au          aurora.Aurora
	isTerminal  bool
}

func NewTerminalUI() *TerminalUI {
	return NewTerminalUIWithStreams(os.Stdout, os.Stdin)
}

func NewTerminalUIWithStreams(out io.Writer, in io.Reader) *TerminalUI {
	isTerminal := false
	if f, ok := out.(*os.File); ok {
		isTerminal = term.IsTerminal(int(f.Fd()))
	}
	return &TerminalUI{
		out:        out,
		in:         bufio.NewReader(in),
		au:         aurora.NewAurora(isTerminal),
		isTerminal: isTerminal,
	}
}

func (u *TerminalUI) prefix() string {
	return strings.Repeat(indentUnit, u.indentLevel)
}

func (u *TerminalUI) writeLine(line string) {
	fmt.Fprintf(u.out, "%s%s\n", u.prefix(), line)
}

func (u *TerminalUI) Info(format string, args ...any) {
	u.writeLine(fmt.Sprintf(format, args...))
}

func (u *TerminalUI) Success(format string, args ...any) {
	u.writeLine(u.au.Green(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Warn(format string, args ...any) {
	u.writeLine(u.au.Yellow(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Error(format string, args ...any) {
	u.writeLine(u.au.Red(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Critical(format string, args ...any) {
	u.writeLine(u.au.Bold(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) KeyValue(rows [][2]string) {
	maxLabel := 0
	for _, r := range rows {
		if len(r[0]) > maxLabel {
			maxLabel = len(r[0])
		}
	}
	p := u.prefix()
	for _, r := range rows {
		fmt.Fprintf(u.out, "%s%-*s  %s\n", p, maxLabel, r[0], r[1])
	}
}

// Table draws a box around rows. Cells may carry colours, widths are
// measured without them.
func (u *TerminalUI) Table(headers []string, rows [][]string) {
	ncols := len(headers)
	for _, r := range rows {
		if len(r) > ncols {
			ncols = len(r)
		}
	}
	if ncols == 0 {
		return
	}

	cellWidth := func(s string) int {
		return runewidth.StringWidth(ansi.Strip(s))
	}
	widths := make([]int, ncols)
	for _, r := range append([][]string{headers}, rows...) {
		for i, c := range r {
			if w := cellWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	border := func(s string) string {
		if !u.isTerminal {
			return s
		}
		return borderStyle.Render(s)
	}
	rule := func(l, m, r string) string {
		parts := make([]string, ncols)
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return border(l + strings.Join(parts, m) + r)
	}
	renderRow := func(cells []string) string {
		parts := make([]string, ncols)
		for i := 0; i < ncols; i++ {
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			parts[i] = " " + val + strings.Repeat(" ", widths[i]-cellWidth(val)) + " "
		}
		return border("│") + strings.Join(parts, border("│")) + border("│")
	}

	p := u.prefix()
	fmt.Fprintf(u.out, "%s%s\n", p, rule("┌", "┬", "┐"))
	if len(headers) > 0 {
		fmt.Fprintf(u.out, "%s%s\n", p, renderRow(headers))
		fmt.Fprintf(u.out, "%s%s\n", p, rule("├", "┼", "┤"))
	}
	for _, row := range rows {
		fmt.Fprintf(u.out, "%s%s\n", p, renderRow(row))
	}
	fmt.Fprintf(u.out, "%s%s\n", p, rule("└", "┴", "┘"))
}

func (u *TerminalUI) Spinner(msg string) func() {
	if !u.isTerminal {
		u.writeLine(msg)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(u.out))
	s.Prefix = u.prefix()
	s.Suffix = " " + msg
	s.Start()
	return func() {
		s.Stop()
		// the spinner leaves the cursor on the cleared line
		fmt.Fprintf(u.out, "\n")
	}
}

func (u *TerminalUI) Ask(validate func(string) error) string {
	for {
		fmt.Fprintf(u.out, "%s%s", u.prefix(), promptPrefix)
		text, _ := u.in.ReadString('\n')
		input := strings.TrimRight(text, "\r\n")
		if validate == nil {
			return input
		}
		err := validate(input)
		if err == nil {
			return input
		}
		u.Error("%s", err)
	}
}

func (u *TerminalUI) Confirm(prompt string, defaultYes bool) bool {
	options := "[Y/n]"
	if !defaultYes {
		options = "[y/N]"
	}
	u.Info("%s %s", prompt, options)
	input := strings.ToLower(strings.TrimSpace(u.Ask(func(s string) error {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "y", "yes", "n", "no":
			return nil
		}
		return fmt.Errorf("please enter y or n")
	})))
	if input == "" {
		return defaultYes
	}
	return input == "y" || input == "yes"
}

func (u *TerminalUI) Indent() UI {
	return &TerminalUI{
		indentLevel: u.indentLevel + 1,
		out:         u.out,
		in:          u.in,
		au:          u.au,
		isTerminal:  u.isTerminal,
	}
}

func (u *TerminalUI) Writer() io.Writer {
	if u.indentLevel == 0 {
		return u.out
	}
	return indent.NewWriter(u.out, u.prefix())
}
