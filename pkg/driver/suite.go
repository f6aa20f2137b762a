package driver

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ecmascript/engine-go/pkg/interpreter"
	"ecmascript/engine-go/pkg/parser"
	"ecmascript/engine-go/pkg/runtime"
)

// Suite is a yaml-described set of script cases with expected results.
type Suite struct {
	Name  string      `yaml:"name"`
	Cases []SuiteCase `yaml:"cases"`
}

// SuiteCase pairs a script with its expected rendering. Throws expects the
// display form of the uncaught value instead.
type SuiteCase struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Expect string `yaml:"expect"`
	Throws string `yaml:"throws,omitempty"`
}

// LoadSuite reads a yaml suite file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading suite %s: %w", path, err)
	}
	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parsing suite %s: %w", path, err)
	}
	return &suite, nil
}

// CaseResult reports one case's outcome.
type CaseResult struct {
	Name   string
	Passed bool
	Detail string
}

// Run evaluates every case in a fresh interpreter and compares rendered
// results against expectations.
func (s *Suite) Run() []CaseResult {
	results := make([]CaseResult, 0, len(s.Cases))
	for _, c := range s.Cases {
		results = append(results, runCase(c))
	}
	return results
}

func runCase(c SuiteCase) CaseResult {
	program, err := parser.ParseProgram(c.Source)
	if err != nil {
		return CaseResult{Name: c.Name, Detail: fmt.Sprintf("parse error: %s", err)}
	}
	value, err := interpreter.New().EvaluateProgram(program)
	if err != nil {
		thrown := runtime.Display(interpreter.ThrownValue(err))
		if c.Throws != "" && thrown == c.Throws {
			return CaseResult{Name: c.Name, Passed: true}
		}
		return CaseResult{Name: c.Name, Detail: fmt.Sprintf("uncaught %s", thrown)}
	}
	if c.Throws != "" {
		return CaseResult{Name: c.Name, Detail: "expected a throw"}
	}
	got := runtime.Display(value)
	if got != c.Expect {
		return CaseResult{Name: c.Name, Detail: fmt.Sprintf("got %q, want %q", got, c.Expect)}
	}
	return CaseResult{Name: c.Name, Passed: true}
}
