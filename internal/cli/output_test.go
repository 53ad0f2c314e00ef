package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/worktree-skill/installer/internal/agent"
	"github.com/worktree-skill/installer/internal/install"
)

func TestPrinter_List(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).List(agent.Builtin())
	out := buf.String()

	if strings.Contains(out, "\x1b[") {
		t.Error("List() should not emit escape codes to a non-terminal")
	}
	for _, spec := range agent.Builtin().All() {
		if !strings.Contains(out, spec.ID) {
			t.Errorf("List() missing id %s", spec.ID)
		}
		if n := strings.Count(out, spec.Name); n != 1 {
			t.Errorf("List() shows %q %d times, want 1", spec.Name, n)
		}
	}
}

func TestPrinter_Docs(t *testing.T) {
	reg, err := agent.NewRegistry(
		agent.TargetSpec{ID: "alpha", Name: "Alpha", Docs: "https://alpha.invalid/docs"},
		agent.TargetSpec{ID: "beta", Name: "Beta"},
	)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	var buf bytes.Buffer
	NewPrinter(&buf).Docs(reg)
	out := buf.String()

	if !strings.Contains(out, "Alpha: https://alpha.invalid/docs") {
		t.Errorf("Docs() missing alpha link:\n%s", out)
	}
	if strings.Contains(out, "Beta") {
		t.Errorf("Docs() should skip targets without docs:\n%s", out)
	}
}

func TestPrinter_Summary(t *testing.T) {
	outcomes := []install.Outcome{
		{Target: "alpha", Name: "Alpha Agent", Success: true, Path: "/work/.alpha/SKILL.md", Action: install.ActionWrite},
		{Target: "beta", Name: "Beta Agent", Path: "/work/.beta/rules.md", Reason: install.ReasonAlreadyExists},
		{Target: "madeup-agent", Reason: install.ReasonUnknownTarget},
	}

	var buf bytes.Buffer
	NewPrinter(&buf).Summary(outcomes)
	out := buf.String()

	for _, want := range []string{
		"Installation Complete!",
		"Successfully installed for 1 target(s):",
		"Alpha Agent: /work/.alpha/SKILL.md",
		"Skipped 2 target(s):",
		"Beta Agent: Skill already exists in /work/.beta/rules.md",
		"--force",
		`madeup-agent: Unknown target "madeup-agent"`,
		"Ask your AI agent about Git worktrees!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary() missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter_SummaryNothingInstalled(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Summary([]install.Outcome{{Target: "x", Reason: install.ReasonNoPaths}})
	out := buf.String()

	if strings.Contains(out, "Successfully installed") {
		t.Errorf("Summary() should not report installs:\n%s", out)
	}
	if strings.Contains(out, "Ask your AI agent") {
		t.Errorf("Summary() should not print next steps:\n%s", out)
	}
	if !strings.Contains(out, "Skipped 1 target(s):") {
		t.Errorf("Summary() missing skip count:\n%s", out)
	}
}

func TestPrinter_SummaryDryRun(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Summary([]install.Outcome{
		{Target: "alpha", Name: "Alpha Agent", Success: true, Path: "/w/a.md", Action: install.ActionDryRun},
	})
	out := buf.String()

	if !strings.Contains(out, "Would install for 1 target(s):") {
		t.Errorf("Summary() missing dry-run line:\n%s", out)
	}
	if strings.Contains(out, "Installation Complete!") {
		t.Errorf("dry run should not claim completion:\n%s", out)
	}
}

func TestPrinter_SummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Summary(nil)
	if !strings.Contains(buf.String(), "No targets selected.") {
		t.Errorf("Summary(nil) = %q", buf.String())
	}
}

func TestReasonText(t *testing.T) {
	tests := []struct {
		outcome install.Outcome
		want    string
	}{
		{install.Outcome{Reason: install.ReasonAlreadyExists, Path: "/p"}, "Skill already exists in /p (use --force to overwrite)"},
		{install.Outcome{Target: "zz", Reason: install.ReasonUnknownTarget}, `Unknown target "zz" (see --list)`},
		{install.Outcome{Reason: install.ReasonNoPaths}, "No installation paths configured"},
		{install.Outcome{Reason: install.ReasonSkipped}, "Skipped by user"},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome.Reason), func(t *testing.T) {
			if got := ReasonText(tt.outcome); got != tt.want {
				t.Errorf("ReasonText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := NewPrinter(&buf).JSON([]install.Outcome{
		{Target: "alpha", Success: true, Path: "/w/a.md", Action: install.ActionWrite},
		{Target: "zz", Reason: install.ReasonUnknownTarget},
	})
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var doc struct {
		Installed int `json:"installed"`
		Skipped   int `json:"skipped"`
		Outcomes  []struct {
			Target  string `json:"target"`
			Success bool   `json:"success"`
			Reason  string `json:"reason"`
		} `json:"outcomes"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if doc.Installed != 1 || doc.Skipped != 1 || len(doc.Outcomes) != 2 {
		t.Errorf("doc = %+v", doc)
	}
	if doc.Outcomes[1].Reason != "unknown-target" {
		t.Errorf("reason = %q, want unknown-target", doc.Outcomes[1].Reason)
	}
}

func TestPrinter_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf).JSON(nil); err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"outcomes": []`) {
		t.Errorf("empty outcomes should encode as an array: %s", buf.String())
	}
}

func TestPrinter_Help(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Help("git-worktree-skill [flags]", "      --install string   targets\n", agent.Builtin().All())
	out := buf.String()

	for _, want := range []string{"Usage:", "--install", "Targets:", "Examples:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Help() missing %q", want)
		}
	}
	for _, id := range agent.Builtin().IDs() {
		if !strings.Contains(out, id) {
			t.Errorf("Help() missing target %s", id)
		}
	}
}

func TestPrinter_PlanSkipsFailedRequests(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Plan([]install.Request{
		{ID: "alpha", Spec: agent.TargetSpec{Name: "Alpha Agent"}, Path: "/w/a.md"},
		{ID: "zz", Reason: install.ReasonUnknownTarget},
	})
	out := buf.String()

	if !strings.Contains(out, "Alpha Agent → /w/a.md") {
		t.Errorf("Plan() missing alpha:\n%s", out)
	}
	if strings.Contains(out, "zz") {
		t.Errorf("Plan() should omit failed requests:\n%s", out)
	}
}

func TestPrinter_Banner(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Banner()
	if !strings.Contains(buf.String(), Title) {
		t.Errorf("Banner() = %q", buf.String())
	}
}
