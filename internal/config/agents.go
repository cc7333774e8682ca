package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
)

// ErrUnknownAgentType is returned when a type label isn't in the registry.
var ErrUnknownAgentType = errors.New("unknown agent type")

// AgentConfig is the static definition of a cognitive agent type.
// The built-in table can be adjusted (or extended) by an agents.toml
// overlay in the state root.
type AgentConfig struct {
	Type        string `toml:"-"`
	Name        string `toml:"name"`
	Description string `toml:"description"`

	// Duration is the default number of work steps (one per second).
	Duration int `toml:"duration"`

	// Geometry is the terminal window size as "COLSxROWS".
	Geometry string `toml:"geometry"`

	// X, Y position the window on screen (emulators that support it).
	X int `toml:"x"`
	Y int `toml:"y"`

	Priority int `toml:"priority"`

	// Script drives the canned progress output the agent prints.
	Script ScriptSpec `toml:"script"`
}

// ScriptSpec describes an agent's scripted output: a few startup lines,
// then Duration work lines built from the line template, then a wrap-up.
// The template may reference {a} and {b} (random picks from ChoicesA/B)
// and {n} (a random number below 1000).
type ScriptSpec struct {
	InitLines []string `toml:"init_lines"`
	Line      string   `toml:"line"`
	ChoicesA  []string `toml:"choices_a"`
	ChoicesB  []string `toml:"choices_b"`
	DoneLines []string `toml:"done_lines"`
}

// builtinAgents is the static agent table. Durations, geometry, and
// screen positions mirror the original orchestrator's defaults.
var builtinAgents = map[string]AgentConfig{
	"debug_assistant": {
		Type:        "debug_assistant",
		Name:        "Debug Assistant",
		Description: "Analyzes errors and provides debugging solutions",
		Duration:    20,
		Geometry:    "90x30",
		X:           50, Y: 50,
		Priority: 1,
		Script: ScriptSpec{
			InitLines: []string{
				"INITIALIZING DEBUG ANALYSIS...",
				"Loading error patterns database...",
				"Activating pattern recognition...",
				"Debug engine ready!",
			},
			Line:     "{a}: Analyzing error #{n}",
			ChoicesA: []string{"CRITICAL", "ERROR", "WARNING", "INFO"},
			DoneLines: []string{
				"DEBUG ANALYSIS COMPLETE!",
				"Recommendations generated",
			},
		},
	},
	"test_generator": {
		Type:        "test_generator",
		Name:        "Test Generator",
		Description: "Creates comprehensive test suites",
		Duration:    15,
		Geometry:    "85x28",
		X:           200, Y: 150,
		Priority: 1,
		Script: ScriptSpec{
			InitLines: []string{
				"INITIALIZING TEST FRAMEWORK...",
				"Loading testing patterns...",
				"Configuring coverage analysis...",
				"Test generator ready!",
			},
			Line:     "Creating {a} test for {b} module",
			ChoicesA: []string{"unit", "integration", "e2e", "performance", "security"},
			ChoicesB: []string{"auth", "api", "database", "ui", "utils"},
			DoneLines: []string{
				"TEST SUITE GENERATION COMPLETE!",
				"All critical paths tested",
			},
		},
	},
	"docs_writer": {
		Type:        "docs_writer",
		Name:        "Documentation Writer",
		Description: "Generates comprehensive documentation",
		Duration:    12,
		Geometry:    "80x25",
		X:           350, Y: 250,
		Priority: 2,
		Script: ScriptSpec{
			InitLines: []string{
				"INITIALIZING DOCUMENTATION ENGINE...",
				"Loading documentation templates...",
				"Analyzing codebase structure...",
				"Documentation writer ready!",
			},
			Line:     "Writing {a}: {b} section",
			ChoicesA: []string{"API", "README", "Tutorial", "Reference", "Guide"},
			ChoicesB: []string{"Overview", "Installation", "Usage", "Examples", "Troubleshooting"},
			DoneLines: []string{
				"DOCUMENTATION GENERATION COMPLETE!",
				"All sections written and formatted",
			},
		},
	},
	"code_reviewer": {
		Type:        "code_reviewer",
		Name:        "Code Reviewer",
		Description: "Performs comprehensive code reviews",
		Duration:    18,
		Geometry:    "95x32",
		X:           100, Y: 350,
		Priority: 1,
		Script: ScriptSpec{
			InitLines: []string{
				"INITIALIZING REVIEW SYSTEM...",
				"Loading quality metrics...",
				"Activating pattern analysis...",
				"Code reviewer ready!",
			},
			Line:     "Reviewing {b}: {a} ({n}%)",
			ChoicesA: []string{"Security", "Performance", "Maintainability", "Style", "Logic"},
			ChoicesB: []string{"auth.go", "api.go", "utils.go", "models.go", "views.go"},
			DoneLines: []string{
				"CODE REVIEW COMPLETE!",
				"Recommendations generated",
			},
		},
	},
	"security_auditor": {
		Type:        "security_auditor",
		Name:        "Security Auditor",
		Description: "Performs security analysis and vulnerability assessment",
		Duration:    25,
		Geometry:    "90x30",
		X:           450, Y: 100,
		Priority: 1,
		Script: ScriptSpec{
			InitLines: []string{
				"INITIALIZING SECURITY SCANNER...",
				"Loading vulnerability database...",
				"Activating threat detection...",
				"Security auditor ready!",
			},
			Line:     "Checking {a}: {b}",
			ChoicesA: []string{"SQL Injection", "XSS", "CSRF", "Auth Bypass", "Data Leak"},
			ChoicesB: []string{"SECURE", "VULNERABLE", "WARNING"},
			DoneLines: []string{
				"SECURITY AUDIT COMPLETE!",
				"Recommendations provided",
			},
		},
	},
}

// Registry maps agent type labels to their configurations.
// Immutable after load.
type Registry struct {
	agents map[string]AgentConfig
}

// LoadRegistry builds the registry from the built-in table, applying the
// agents.toml overlay at path if it exists. Overlay entries either adjust
// a built-in type (zero fields keep the built-in value) or define a new one.
func LoadRegistry(path string) (*Registry, error) {
	agents := make(map[string]AgentConfig, len(builtinAgents))
	for k, v := range builtinAgents {
		agents[k] = v
	}

	if path != "" {
		var overlay struct {
			Agents map[string]AgentConfig `toml:"agents"`
		}
		if _, err := toml.DecodeFile(path, &overlay); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		} else {
			for typ, over := range overlay.Agents {
				merged, ok := agents[typ]
				if !ok {
					merged = AgentConfig{Type: typ}
				}
				applyOverlay(&merged, over)
				if merged.Name == "" {
					return nil, fmt.Errorf("agent %q in %s: name is required for new types", typ, path)
				}
				agents[typ] = merged
			}
		}
	}

	return &Registry{agents: agents}, nil
}

// BuiltinRegistry returns the registry with no overlay applied.
func BuiltinRegistry() *Registry {
	r, _ := LoadRegistry("")
	return r
}

func applyOverlay(dst *AgentConfig, over AgentConfig) {
	if over.Name != "" {
		dst.Name = over.Name
	}
	if over.Description != "" {
		dst.Description = over.Description
	}
	if over.Duration > 0 {
		dst.Duration = over.Duration
	}
	if over.Geometry != "" {
		dst.Geometry = over.Geometry
	}
	if over.X != 0 {
		dst.X = over.X
	}
	if over.Y != 0 {
		dst.Y = over.Y
	}
	if over.Priority != 0 {
		dst.Priority = over.Priority
	}
	if len(over.Script.InitLines) > 0 {
		dst.Script.InitLines = over.Script.InitLines
	}
	if over.Script.Line != "" {
		dst.Script.Line = over.Script.Line
	}
	if len(over.Script.ChoicesA) > 0 {
		dst.Script.ChoicesA = over.Script.ChoicesA
	}
	if len(over.Script.ChoicesB) > 0 {
		dst.Script.ChoicesB = over.Script.ChoicesB
	}
	if len(over.Script.DoneLines) > 0 {
		dst.Script.DoneLines = over.Script.DoneLines
	}
}

// Get resolves an agent type label.
func (r *Registry) Get(agentType string) (AgentConfig, error) {
	cfg, ok := r.agents[agentType]
	if !ok {
		return AgentConfig{}, fmt.Errorf("%w: %q", ErrUnknownAgentType, agentType)
	}
	return cfg, nil
}

// Types returns all registered type labels, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.agents))
	for t := range r.agents {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
