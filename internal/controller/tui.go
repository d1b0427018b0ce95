package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "jsinline.dev/pkg/jsinline/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	refuseStyle = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("8"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for the prompt and for long lists. The
// rest of the output is shared with SimpleUI.
type TUI struct {
	*SimpleUI
	output io.Writer
	input  io.Reader
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{
		SimpleUI: NewSimpleUI(cmd),
		output:   cmd.OutOrStdout(),
		input:    cmd.InOrStdin(),
	}
}

// AskUserInput shows an editable text input filled with defaultValue.
// Escape or ctrl+c give no answer.
func (p *TUI) AskUserInput(ctx context.Context, defaultValue string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	program := tea.NewProgram(newPromptModel(defaultValue),
		tea.WithContext(ctx), tea.WithInput(p.input), tea.WithOutput(p.output))

	final, err := program.Run()
	if err != nil {
		return "", false, fmt.Errorf("prompt: %w", err)
	}

	prompt, ok := final.(promptModel)
	if !ok || prompt.cancelled {
		return "", false, nil
	}

	return strings.TrimSpace(prompt.input.Value()), true, nil
}

// DisplayTargets shows the targets, paging through them when they do not
// fit on screen.
func (p *TUI) DisplayTargets(ctx context.Context, targets []m.Target, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		return p.SimpleUI.DisplayTargets(ctx, targets, err)
	}

	model := newTargetListModel(targets)

	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	// If list is small, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// promptModel asks for a new name.
type promptModel struct {
	input     textinput.Model
	cancelled bool
}

func newPromptModel(defaultValue string) promptModel {
	input := textinput.New()
	input.Prompt = "New name: "
	input.SetValue(defaultValue)
	input.CursorEnd()
	input.Focus()

	return promptModel{input: input}
}

func (pm promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (pm promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // Other keys go to the text input.
		switch key.Type {
		case tea.KeyEnter:
			return pm, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			pm.cancelled = true
			return pm, tea.Quit
		}
	}

	var cmd tea.Cmd
	pm.input, cmd = pm.input.Update(msg)

	return pm, cmd
}

func (pm promptModel) View() string {
	return titleStyle.Render("Rename") + "\n\n" + pm.input.View() + "\n\n" +
		helpStyle.Render("enter: confirm | esc: cancel") + "\n"
}

// targetListModel is the Bubble Tea model listing inline targets.
type targetListModel struct {
	targets []m.Target
	height  int
	width   int
	offset  int // Current scroll offset
}

func newTargetListModel(targets []m.Target) targetListModel {
	return targetListModel{targets: targets}
}

func (tm targetListModel) Init() tea.Cmd {
	return nil
}

func (tm targetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		tm.height = msg.Height
		tm.width = msg.Width

		return tm, nil

	case tea.KeyMsg:
		return tm.handleKeyPress(msg)
	}

	return tm, nil
}

func (tm targetListModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return tm, tea.Quit
	case "down", "j":
		tm.offset = min(tm.offset+1, tm.maxOffset())
	case "up", "k":
		tm.offset = max(tm.offset-1, 0)
	case "g", "home":
		tm.offset = 0
	case "G", "end":
		tm.offset = tm.maxOffset()
	case "d", "pgdown":
		tm.offset = min(tm.offset+tm.itemsPerPage(), tm.maxOffset())
	case "u", "pgup":
		tm.offset = max(tm.offset-tm.itemsPerPage(), 0)
	}

	return tm, nil
}

// itemsPerPage calculates how many items can fit on screen. Title, summary
// and footer take 7 lines.
func (tm targetListModel) itemsPerPage() int {
	if tm.height == 0 {
		return 10
	}

	return max(tm.height-7, 1)
}

func (tm targetListModel) maxOffset() int {
	return max(len(tm.targets)-tm.itemsPerPage(), 0)
}

func (tm targetListModel) needsPagination() bool {
	return len(tm.targets) > tm.itemsPerPage() && tm.height > 0
}

func (tm targetListModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("jsinline: inline targets") + "\n\n")

	if len(tm.targets) == 0 {
		b.WriteString("  No inline targets found\n")
		return b.String()
	}

	visible := tm.targets
	start, end := 0, len(tm.targets)

	if tm.needsPagination() {
		start = min(tm.offset, tm.maxOffset())
		end = min(start+tm.itemsPerPage(), len(tm.targets))
		visible = tm.targets[start:end]
	}

	inlinable := 0

	for _, target := range tm.targets {
		if target.IsInlinable() {
			inlinable++
		}
	}

	for _, target := range visible {
		line := fmt.Sprintf("  %s:%s %-12s %-20s %3d ref(s)  %s",
			target.Path, target.Position, target.Kind, target.Name, target.References, verdictLabel(target))

		if target.IsInlinable() {
			b.WriteString(okStyle.Render(line) + "\n")
		} else {
			b.WriteString(refuseStyle.Render(line) + "\n")
		}
	}

	fmt.Fprintf(&b, "\n  Total: %d target(s), %d inlinable\n", len(tm.targets), inlinable)

	if tm.needsPagination() {
		perPage := tm.itemsPerPage()
		fmt.Fprintf(&b, "  Page %d/%d | Showing %d-%d of %d\n",
			start/perPage+1, (len(tm.targets)+perPage-1)/perPage, start+1, end, len(tm.targets))
		b.WriteString(helpStyle.Render("  ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit") + "\n")
	}

	return b.String()
}
