// Package cli holds the terminal side of the installer: prompts, styled
// output and markdown rendering.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/worktree-skill/installer/internal/agent"
	"github.com/worktree-skill/installer/internal/install"
)

// ErrCancelled is returned when the operator aborts a prompt.
var ErrCancelled = fmt.Errorf("prompt cancelled: %w", context.Canceled)

// Prompter asks the operator which targets and paths to use.
type Prompter interface {
	// SelectTargets returns the chosen identifiers in selection order.
	SelectTargets(specs []agent.TargetSpec) ([]string, error)

	// SelectPath picks one of spec's candidates.
	SelectPath(spec agent.TargetSpec) (agent.PathCandidate, error)

	Confirm(question string, defaultYes bool) (bool, error)
}

// Interactive is a prompter that can also resolve install conflicts.
type Interactive interface {
	Prompter
	install.Resolver
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// SelectOption represents an option in a selection list.
type SelectOption struct {
	Value string // The value to return if selected
	Label string // The display label
}

// LinePrompter asks numbered questions line by line. It is used when
// stdin is not a terminal.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter reads answers from in and writes questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks a yes/no question with the given default.
// Returns true for yes, false for no.
func (p *LinePrompter) Confirm(prompt string, defaultYes bool) (bool, error) {
	suffix := "[y/N]"
	if defaultYes {
		suffix = "[Y/n]"
	}

	fmt.Fprintf(p.out, "%s %s ", prompt, suffix)

	response, err := p.readLine()
	if err != nil {
		return false, err
	}

	response = strings.ToLower(response)
	if response == "" {
		return defaultYes, nil
	}

	return response == "y" || response == "yes", nil
}

// Select displays a numbered list and asks the user to select an option.
// An empty answer picks defaultIndex; with a negative defaultIndex it
// cancels. Returns the selected option's Value, or ErrCancelled.
func (p *LinePrompter) Select(prompt string, options []SelectOption, defaultIndex int) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options provided")
	}
	if defaultIndex >= len(options) {
		defaultIndex = 0
	}

	p.printOptions(prompt, options)
	if defaultIndex >= 0 {
		fmt.Fprintf(p.out, "Enter number [%d] (or 'q' to cancel): ", defaultIndex+1)
	} else {
		fmt.Fprint(p.out, "Enter number (or 'q' to cancel): ")
	}

	response, err := p.readLine()
	if err != nil {
		return "", err
	}
	switch {
	case isQuit(response):
		return "", ErrCancelled
	case response == "" && defaultIndex >= 0:
		return options[defaultIndex].Value, nil
	case response == "":
		return "", ErrCancelled
	}

	num, err := strconv.Atoi(response)
	if err != nil || num < 1 || num > len(options) {
		return "", fmt.Errorf("invalid selection: %s", response)
	}

	return options[num-1].Value, nil
}

// MultiSelect is like Select but accepts a comma-separated list of numbers
// or "a" for all. An empty answer selects nothing.
func (p *LinePrompter) MultiSelect(prompt string, options []SelectOption) ([]string, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("no options provided")
	}

	p.printOptions(prompt, options)
	fmt.Fprint(p.out, "Enter numbers separated by commas, 'a' for all (or 'q' to cancel): ")

	response, err := p.readLine()
	if err != nil {
		return nil, err
	}
	if isQuit(response) {
		return nil, ErrCancelled
	}
	if response == "" {
		return nil, nil
	}
	if response == "a" || response == "all" {
		values := make([]string, len(options))
		for i, opt := range options {
			values[i] = opt.Value
		}
		return values, nil
	}

	var values []string
	seen := make(map[int]bool)
	for _, field := range strings.Split(response, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		num, err := strconv.Atoi(field)
		if err != nil || num < 1 || num > len(options) {
			return nil, fmt.Errorf("invalid selection: %s", field)
		}
		if seen[num] {
			continue
		}
		seen[num] = true
		values = append(values, options[num-1].Value)
	}
	return values, nil
}

// SelectTargets implements Prompter.
func (p *LinePrompter) SelectTargets(specs []agent.TargetSpec) ([]string, error) {
	return p.MultiSelect("Select the AI agents to install the skill for:", targetOptions(specs))
}

// SelectPath implements Prompter.
func (p *LinePrompter) SelectPath(spec agent.TargetSpec) (agent.PathCandidate, error) {
	v, err := p.Select(fmt.Sprintf("Where should the skill be installed for %s?", spec.Name), pathOptions(spec.Paths), spec.DefaultChoice)
	if err != nil {
		return agent.PathCandidate{}, err
	}
	i, _ := strconv.Atoi(v)
	return spec.Paths[i], nil
}

// ResolveConflict implements install.Resolver.
func (p *LinePrompter) ResolveConflict(path, summary string) (install.Resolution, error) {
	v, err := p.Select(conflictQuestion(path, summary), conflictOptions(), 0)
	if err != nil {
		return "", err
	}
	return install.Resolution(v), nil
}

// ChooseDifferent implements install.Resolver. Besides the target's own
// candidates the operator may type a custom path.
func (p *LinePrompter) ChooseDifferent(spec agent.TargetSpec) (agent.PathCandidate, error) {
	options := append(pathOptions(spec.Paths), SelectOption{Value: customValue, Label: customLabel})
	v, err := p.Select(fmt.Sprintf("Choose another location for %s:", spec.Name), options, 0)
	if err != nil {
		return agent.PathCandidate{}, err
	}
	if v != customValue {
		i, _ := strconv.Atoi(v)
		return spec.Paths[i], nil
	}

	fmt.Fprint(p.out, "Enter the file path: ")
	path, err := p.readLine()
	if err != nil {
		return agent.PathCandidate{}, err
	}
	return CustomCandidate(path)
}

func (p *LinePrompter) printOptions(prompt string, options []SelectOption) {
	fmt.Fprintln(p.out, prompt)
	fmt.Fprintln(p.out)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt.Label)
	}
	fmt.Fprintln(p.out)
}

func (p *LinePrompter) readLine() (string, error) {
	response, err := p.in.ReadString('\n')
	if err != nil && !(err == io.EOF && response != "") {
		if err == io.EOF {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("reading response: %w", err)
	}
	return strings.TrimSpace(response), nil
}

func isQuit(response string) bool {
	switch strings.ToLower(response) {
	case "q", "quit", "cancel":
		return true
	}
	return false
}

const (
	customValue = "custom"
	customLabel = "Enter a custom path"
)

// CustomCandidate turns an operator-typed path into a candidate. It is
// written as a plain file without auxiliary bundle files.
func CustomCandidate(path string) (agent.PathCandidate, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return agent.PathCandidate{}, fmt.Errorf("path cannot be empty")
	}
	return agent.PathCandidate{Path: path, Description: "Custom path"}, nil
}

func targetOptions(specs []agent.TargetSpec) []SelectOption {
	options := make([]SelectOption, len(specs))
	for i, spec := range specs {
		options[i] = SelectOption{Value: spec.ID, Label: fmt.Sprintf("%s - %s", spec.Name, spec.Description)}
	}
	return options
}

func pathOptions(paths []agent.PathCandidate) []SelectOption {
	options := make([]SelectOption, len(paths))
	for i, c := range paths {
		options[i] = SelectOption{Value: strconv.Itoa(i), Label: fmt.Sprintf("%s (%s)", c.Path, c.Description)}
	}
	return options
}

func conflictQuestion(path, summary string) string {
	return fmt.Sprintf("The skill already exists in %s [%s]. What would you like to do?", path, summary)
}

func conflictOptions() []SelectOption {
	return []SelectOption{
		{Value: string(install.ResolutionOverwrite), Label: "Overwrite file"},
		{Value: string(install.ResolutionSkip), Label: "Skip this agent"},
		{Value: string(install.ResolutionChooseDifferent), Label: "Choose different path"},
	}
}
