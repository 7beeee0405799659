package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"traduco.dev/pkg/traduco/internal/domain"
)

const (
	inputSource = iota
	inputReference
	inputStudent
	inputCount
)

var practiceLabels = [inputCount]string{
	"Source Text",
	"Reference Translation (optional)",
	"Your Translation",
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Faint(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

// practiceModel is the interactive student session: three text areas and an
// inline evaluation result. The elapsed time of a submission is measured
// from the previous evaluation (or session start), like the original tool's
// timer.
type practiceModel struct {
	ctx      context.Context
	workflow domain.Workflow
	user     string

	inputs   [inputCount]textarea.Model
	focus    int
	result   string
	started  time.Time
	quitting bool
}

func newPracticeModel(ctx context.Context, wf domain.Workflow, user string) practiceModel {
	pm := practiceModel{
		ctx:      ctx,
		workflow: wf,
		user:     user,
		started:  time.Now(),
	}

	for i := range pm.inputs {
		ta := textarea.New()
		ta.Placeholder = practiceLabels[i]
		ta.ShowLineNumbers = false
		ta.SetHeight(3)

		pm.inputs[i] = ta
	}

	pm.inputs[inputSource].Focus()

	return pm
}

func (pm practiceModel) Init() tea.Cmd {
	return textarea.Blink
}

func (pm practiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		for i := range pm.inputs {
			pm.inputs[i].SetWidth(msg.Width - 4)
		}

		return pm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			pm.quitting = true
			return pm, tea.Quit

		case "tab":
			return pm.cycleFocus(1), nil

		case "shift+tab":
			return pm.cycleFocus(-1), nil

		case "ctrl+s":
			pm.evaluate()
			return pm, nil
		}
	}

	var cmd tea.Cmd
	pm.inputs[pm.focus], cmd = pm.inputs[pm.focus].Update(msg)

	return pm, cmd
}

func (pm practiceModel) cycleFocus(step int) practiceModel {
	pm.inputs[pm.focus].Blur()
	pm.focus = (pm.focus + step + inputCount) % inputCount
	pm.inputs[pm.focus].Focus()

	return pm
}

func (pm *practiceModel) evaluate() {
	elapsed := time.Since(pm.started)

	eval, err := pm.workflow.Evaluate(pm.ctx, domain.EvaluateArgs{
		User:      pm.user,
		Source:    pm.inputs[inputSource].Value(),
		Reference: pm.inputs[inputReference].Value(),
		Student:   pm.inputs[inputStudent].Value(),
		Elapsed:   elapsed,
	})
	if err != nil {
		pm.result = fmt.Sprintf("evaluation failed: %v", err)
		return
	}

	pm.started = time.Now()
	pm.result = renderEvaluation(eval)
}

func renderEvaluation(eval domain.Evaluation) string {
	var b strings.Builder

	if len(eval.Segments) > 0 {
		b.WriteString(RenderAnnotated(eval.Segments, true))
		b.WriteString("\n\n")
	}

	for _, item := range eval.Feedback {
		fmt.Fprintf(&b, "  - %s\n", item.String())

		if item.Hint != "" {
			fmt.Fprintf(&b, "    hint: %s\n", item.Hint)
		}
	}

	if len(eval.Scores) > 0 {
		b.WriteString("\n")

		names := make([]string, 0, len(eval.Scores))
		for name := range eval.Scores {
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			fmt.Fprintf(&b, "  %s: %s\n", name, formatScore(eval.Scores[name]))
		}
	}

	fmt.Fprintf(&b, "\nPoints earned: %d\n", eval.Points)

	return b.String()
}

func (pm practiceModel) View() string {
	if pm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Adaptive Translation & Post-Editing"))
	b.WriteString("\n\n")

	for i := range pm.inputs {
		b.WriteString(labelStyle.Render(practiceLabels[i]))
		b.WriteString("\n")
		b.WriteString(pm.inputs[i].View())
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("tab: next field | ctrl+s: evaluate | esc: quit"))
	b.WriteString("\n")

	if pm.result != "" {
		b.WriteString("\n")
		b.WriteString(pm.result)
	}

	return b.String()
}

// RunPractice starts the interactive practice session and blocks until the
// student quits.
func RunPractice(ctx context.Context, wf domain.Workflow, user string, output io.Writer) error {
	pm := newPracticeModel(ctx, wf, user)

	// Seed input widths from the current terminal before the first
	// WindowSizeMsg arrives.
	if f, ok := output.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			for i := range pm.inputs {
				pm.inputs[i].SetWidth(width - 4)
			}
		}
	}

	program := tea.NewProgram(pm, tea.WithOutput(output), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("practice session: %w", err)
	}

	return nil
}
