package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ecmascript/engine-go/pkg/ast"
	"ecmascript/engine-go/pkg/parser"
)

// Script is a parsed source file.
type Script struct {
	Path   string
	Source []byte
	AST    *ast.Program
}

// Program contains the entry script and any sibling scripts found next to it.
type Program struct {
	Entry   *Script
	Scripts []*Script
}

// Loader wires JavaScript source files into parsed scripts.
type Loader struct {
	parser *parser.ProgramParser
}

// NewLoader constructs a loader with a JavaScript parser.
func NewLoader() (*Loader, error) {
	p, err := parser.NewProgramParser()
	if err != nil {
		return nil, err
	}
	return &Loader{parser: p}, nil
}

// Close releases parser resources.
func (l *Loader) Close() {
	if l == nil || l.parser == nil {
		return
	}
	l.parser.Close()
}

// LoadScript parses a single source file.
func (l *Loader) LoadScript(path string) (*Script, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	program, err := l.parser.ParseProgram(source)
	if err != nil {
		return nil, &DiagnosticError{Diagnostic: Diagnostic{
			Severity: SeverityError,
			Message:  err.Error(),
			Location: DiagnosticLocation{Path: path, Line: 1, Column: 1},
		}}
	}
	return &Script{Path: path, Source: source, AST: program}, nil
}

// LoadProgram parses the entry script and every .js file in its directory,
// in stable name order with the entry first.
func (l *Loader) LoadProgram(entryPath string) (*Program, error) {
	entry, err := l.LoadScript(entryPath)
	if err != nil {
		return nil, err
	}
	program := &Program{Entry: entry, Scripts: []*Script{entry}}

	dir := filepath.Dir(entryPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".js") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if path == entryPath {
			continue
		}
		names = append(names, path)
	}
	sort.Strings(names)
	for _, path := range names {
		script, err := l.LoadScript(path)
		if err != nil {
			return nil, err
		}
		program.Scripts = append(program.Scripts, script)
	}
	return program, nil
}
