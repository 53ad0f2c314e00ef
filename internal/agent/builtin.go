package agent

// SkillPath is the skill-directory layout shared by every built-in target.
const SkillPath = "skills/{{name}}/SKILL.md"

// builtinTargets is the table of assistants supported out of the box.
// A display name never appears in another target's name or description.
var builtinTargets = []TargetSpec{
	{
		ID:          "claude-code",
		Name:        "Claude Code",
		Description: "Anthropic's agentic coding tool",
		Paths: []PathCandidate{
			{Path: ".claude/" + SkillPath, Scope: ScopeProject, Description: "Project skill (current directory)", Bundle: true},
			{Path: "~/.claude/" + SkillPath, Scope: ScopeGlobal, Description: "Personal skill (all projects)", Bundle: true},
		},
		Docs: "https://docs.anthropic.com/en/docs/claude-code/skills",
	},
	{
		ID:          "github-copilot",
		Name:        "GitHub Copilot",
		Description: "AI pair programmer for editors and github.com",
		Paths: []PathCandidate{
			{Path: ".github/" + SkillPath, Scope: ScopeProject, Description: "Repository skill", Bundle: true},
		},
		Docs: "https://docs.github.com/en/copilot/concepts/agents/about-agent-skills",
	},
	{
		ID:          "windsurf",
		Name:        "Windsurf",
		Description: "Codeium's agentic IDE",
		Paths: []PathCandidate{
			{Path: ".cascade/" + SkillPath, Scope: ScopeProject, Description: "Workspace skill", Bundle: true},
			{Path: "~/.codeium/windsurf/" + SkillPath, Scope: ScopeGlobal, Description: "Global skill", Bundle: true},
		},
		Docs: "https://docs.windsurf.com/windsurf/cascade/skills",
	},
	{
		ID:          "cline",
		Name:        "Cline",
		Description: "Autonomous coding agent for VS Code",
		Paths: []PathCandidate{
			{Path: ".cline/" + SkillPath, Scope: ScopeProject, Description: "Project skill", Bundle: true},
			{Path: "~/.cline/" + SkillPath, Scope: ScopeGlobal, Description: "Global skill", Bundle: true},
		},
		Docs: "https://docs.cline.bot",
	},
	{
		ID:          "cursor",
		Name:        "Cursor",
		Description: "AI-first code editor",
		Paths: []PathCandidate{
			{Path: ".cursor/" + SkillPath, Scope: ScopeProject, Description: "Project skill", Bundle: true},
			{Path: "~/.cursor/" + SkillPath, Scope: ScopeGlobal, Description: "Global skill", Bundle: true},
		},
		Docs: "https://docs.cursor.com/context/rules",
	},
	{
		ID:          "gemini-cli",
		Name:        "Gemini CLI",
		Description: "Google's AI agent in the terminal",
		Paths: []PathCandidate{
			{Path: ".gemini/" + SkillPath, Scope: ScopeProject, Description: "Project skill", Bundle: true},
			{Path: "~/.gemini/" + SkillPath, Scope: ScopeGlobal, Description: "Global skill", Bundle: true},
		},
		Docs: "https://github.com/google-gemini/gemini-cli",
	},
	{
		ID:          "roo-code",
		Name:        "Roo Code",
		Description: "Multi-mode coding agent for VS Code",
		Paths: []PathCandidate{
			{Path: ".roo/" + SkillPath, Scope: ScopeProject, Description: "Project skill", Bundle: true},
		},
		Docs: "https://docs.roocode.com",
	},
	{
		ID:          "codex",
		Name:        "Codex CLI",
		Description: "OpenAI's coding agent for the terminal",
		Paths: []PathCandidate{
			{Path: ".agents/" + SkillPath, Scope: ScopeProject, Description: "Repository skill", Bundle: true},
			{Path: "~/.codex/" + SkillPath, Scope: ScopeGlobal, Description: "User skill", Bundle: true},
		},
		Docs: "https://github.com/openai/codex",
	},
	{
		ID:          "opencode",
		Name:        "OpenCode",
		Description: "Open source AI agent for the terminal",
		Paths: []PathCandidate{
			{Path: ".opencode/" + SkillPath, Scope: ScopeProject, Description: "Project skill", Bundle: true},
			{Path: "~/.config/opencode/" + SkillPath, Scope: ScopeGlobal, Description: "Global skill", Bundle: true},
		},
		Docs: "https://opencode.ai/docs/skills",
	},
}

// Builtin returns a registry of the built-in targets.
func Builtin() *Registry {
	r, err := NewRegistry(builtinTargets...)
	if err != nil {
		panic("agent: invalid builtin table: " + err.Error())
	}
	return r
}
