package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/worktree-skill/installer/internal/agent"
	"github.com/worktree-skill/installer/internal/install"
)

// TeaPrompter runs a small bubbletea program per question.
type TeaPrompter struct {
	in   io.Reader
	out  io.Writer
	keys KeyMap
}

// NewTeaPrompter creates a prompter reading keys from in and drawing to out.
func NewTeaPrompter(in io.Reader, out io.Writer) *TeaPrompter {
	return &TeaPrompter{in: in, out: out, keys: DefaultKeyMap()}
}

// SelectTargets implements Prompter.
func (p *TeaPrompter) SelectTargets(specs []agent.TargetSpec) ([]string, error) {
	m, err := p.run(newChecklistModel("Select the AI agents to install the skill for:", targetOptions(specs), p.keys))
	if err != nil {
		return nil, err
	}
	cm := m.(checklistModel)
	if cm.cancelled {
		return nil, ErrCancelled
	}
	return cm.values(), nil
}

// SelectPath implements Prompter.
func (p *TeaPrompter) SelectPath(spec agent.TargetSpec) (agent.PathCandidate, error) {
	v, err := p.choose(fmt.Sprintf("Where should the skill be installed for %s?", spec.Name), pathOptions(spec.Paths), spec.DefaultChoice)
	if err != nil {
		return agent.PathCandidate{}, err
	}
	i, _ := strconv.Atoi(v)
	return spec.Paths[i], nil
}

// Confirm implements Prompter.
func (p *TeaPrompter) Confirm(question string, defaultYes bool) (bool, error) {
	cursor := 1
	if defaultYes {
		cursor = 0
	}
	v, err := p.choose(question, []SelectOption{{Value: "yes", Label: "Yes"}, {Value: "no", Label: "No"}}, cursor)
	if err != nil {
		return false, err
	}
	return v == "yes", nil
}

// ResolveConflict implements install.Resolver.
func (p *TeaPrompter) ResolveConflict(path, summary string) (install.Resolution, error) {
	v, err := p.choose(conflictQuestion(path, summary), conflictOptions(), 0)
	if err != nil {
		return "", err
	}
	return install.Resolution(v), nil
}

// ChooseDifferent implements install.Resolver.
func (p *TeaPrompter) ChooseDifferent(spec agent.TargetSpec) (agent.PathCandidate, error) {
	options := append(pathOptions(spec.Paths), SelectOption{Value: customValue, Label: customLabel})
	v, err := p.choose(fmt.Sprintf("Choose another location for %s:", spec.Name), options, 0)
	if err != nil {
		return agent.PathCandidate{}, err
	}
	if v != customValue {
		i, _ := strconv.Atoi(v)
		return spec.Paths[i], nil
	}

	m, err := p.run(newInputModel("Enter the file path:"))
	if err != nil {
		return agent.PathCandidate{}, err
	}
	im := m.(inputModel)
	if im.cancelled {
		return agent.PathCandidate{}, ErrCancelled
	}
	return CustomCandidate(im.value)
}

func (p *TeaPrompter) choose(title string, options []SelectOption, cursor int) (string, error) {
	m, err := p.run(newChoiceModel(title, options, cursor, p.keys))
	if err != nil {
		return "", err
	}
	cm := m.(choiceModel)
	if cm.cancelled {
		return "", ErrCancelled
	}
	return cm.options[cm.cursor].Value, nil
}

func (p *TeaPrompter) run(m tea.Model) (tea.Model, error) {
	final, err := tea.NewProgram(m, tea.WithInput(p.in), tea.WithOutput(p.out)).Run()
	if err != nil {
		return nil, fmt.Errorf("running prompt: %w", err)
	}
	return final, nil
}

// checklistModel is a multi-select list. Values are returned in the order
// they were ticked.
type checklistModel struct {
	title     string
	options   []SelectOption
	keys      KeyMap
	cursor    int
	order     []int
	err       string
	done      bool
	cancelled bool
}

func newChecklistModel(title string, options []SelectOption, keys KeyMap) checklistModel {
	return checklistModel{title: title, options: options, keys: keys}
}

func (m checklistModel) Init() tea.Cmd { return nil }

func (m checklistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(km, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, m.keys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(km, m.keys.Toggle):
		m.toggle(m.cursor)
		m.err = ""
	case key.Matches(km, m.keys.All):
		if len(m.order) == len(m.options) {
			m.order = nil
		} else {
			for i := range m.options {
				if !m.checked(i) {
					m.order = append(m.order, i)
				}
			}
		}
		m.err = ""
	case key.Matches(km, m.keys.Submit):
		if len(m.order) == 0 {
			m.err = "Please select at least one AI agent."
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *checklistModel) toggle(i int) {
	for n, j := range m.order {
		if j == i {
			m.order = append(m.order[:n:n], m.order[n+1:]...)
			return
		}
	}
	m.order = append(m.order, i)
}

func (m checklistModel) checked(i int) bool {
	for _, j := range m.order {
		if j == i {
			return true
		}
	}
	return false
}

func (m checklistModel) values() []string {
	values := make([]string, len(m.order))
	for n, i := range m.order {
		values[n] = m.options[i].Value
	}
	return values
}

func (m checklistModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(promptHeaderStyle.Render("?") + " " + promptQuestionStyle.Render(m.title) + "\n")
	for i, opt := range m.options {
		box := "[ ]"
		if m.checked(i) {
			box = promptCheckedStyle.Render("[x]")
		}
		if i == m.cursor {
			b.WriteString(promptSelectedStyle.Render("  > ") + box + " " + promptSelectedStyle.Render(opt.Label) + "\n")
		} else {
			b.WriteString("    " + box + " " + promptOptionStyle.Render(opt.Label) + "\n")
		}
	}
	if m.err != "" {
		b.WriteString(promptErrorStyle.Render("  "+m.err) + "\n")
	}
	b.WriteString(promptHintStyle.Render("  " + hint(m.keys.Up, m.keys.Down, m.keys.Toggle, m.keys.All, m.keys.Submit, m.keys.Cancel)))
	return b.String()
}

// choiceModel is a single-choice list.
type choiceModel struct {
	title     string
	options   []SelectOption
	keys      KeyMap
	cursor    int
	done      bool
	cancelled bool
}

func newChoiceModel(title string, options []SelectOption, cursor int, keys KeyMap) choiceModel {
	if cursor < 0 || cursor >= len(options) {
		cursor = 0
	}
	return choiceModel{title: title, options: options, cursor: cursor, keys: keys}
}

func (m choiceModel) Init() tea.Cmd { return nil }

func (m choiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(km, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, m.keys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(km, m.keys.Submit):
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m choiceModel) View() string {
	if m.cancelled {
		return ""
	}
	if m.done {
		return promptHeaderStyle.Render("?") + " " + promptQuestionStyle.Render(m.title) + " " +
			promptSelectedStyle.Render(m.options[m.cursor].Label) + "\n"
	}

	var b strings.Builder
	b.WriteString(promptHeaderStyle.Render("?") + " " + promptQuestionStyle.Render(m.title) + "\n")
	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(promptSelectedStyle.Render("  > "+opt.Label) + "\n")
		} else {
			b.WriteString(promptOptionStyle.Render("    "+opt.Label) + "\n")
		}
	}
	b.WriteString(promptHintStyle.Render("  Use arrow keys to navigate, Enter to select, Esc to cancel"))
	return b.String()
}

// inputModel reads one line of free text.
type inputModel struct {
	title     string
	input     textinput.Model
	value     string
	err       string
	done      bool
	cancelled bool
}

func newInputModel(title string) inputModel {
	ti := textinput.New()
	ti.Placeholder = ".my-agent/skills/git-worktree/SKILL.md"
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Focus()
	return inputModel{title: title, input: ti}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				m.err = "Path cannot be empty."
				return m, nil
			}
			m.value = value
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.cancelled {
		return ""
	}
	if m.done {
		return promptHeaderStyle.Render("?") + " " + promptQuestionStyle.Render(m.title) + " " +
			promptSelectedStyle.Render(m.value) + "\n"
	}

	var b strings.Builder
	b.WriteString(promptHeaderStyle.Render("?") + " " + promptQuestionStyle.Render(m.title) + "\n")
	b.WriteString("  " + m.input.View() + "\n")
	if m.err != "" {
		b.WriteString(promptErrorStyle.Render("  "+m.err) + "\n")
	}
	b.WriteString(promptHintStyle.Render("  Enter to confirm, Esc to cancel"))
	return b.String()
}
