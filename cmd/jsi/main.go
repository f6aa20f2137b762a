package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"ecmascript/engine-go/pkg/interpreter"
	"ecmascript/engine-go/pkg/parser"
	"ecmascript/engine-go/pkg/runtime"
)

const appName = "jsi"

var log = commonlog.GetLogger(appName)

func main() {
	verbose := flag.Int("v", 0, "log verbosity (0-2)")
	configPath := flag.String("config", "", "path to a jsi.toml project file")
	flag.Usage = usage
	flag.Parse()

	commonlog.Configure(*verbose, nil)

	args := flag.Args()
	if len(args) == 0 {
		runREPL()
		return
	}

	switch args[0] {
	case "run":
		if len(args) < 2 {
			fail("run requires a script path")
		}
		runScript(args[1], *configPath)
	case "fetch-run":
		if len(args) < 2 {
			fail("fetch-run requires a repository URL")
		}
		entry := ""
		if len(args) > 2 {
			entry = args[2]
		}
		fetchAndRun(args[1], entry)
	case "repl":
		runREPL()
	default:
		// Bare path shorthand for run.
		runScript(args[0], *configPath)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: %s [flags] [command]

commands:
  repl                     start the interactive prompt (default)
  run <script.js>          evaluate a script file
  fetch-run <url> [entry]  clone a git repository and run its entry script

flags:
`, appName)
	flag.PrintDefaults()
}

func fail(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", appName, fmt.Sprintf(format, a...))
	os.Exit(1)
}

func runScript(path, configPath string) {
	entry := path
	if configPath != "" {
		project, err := LoadProject(configPath)
		if err != nil {
			fail("%s", err)
		}
		if resolved := project.ResolveEntry(path); resolved != "" {
			entry = resolved
		}
	}

	source, err := os.ReadFile(entry)
	if err != nil {
		fail("%s", err)
	}

	log.Infof("running %s", entry)
	result, err := evaluate(interpreter.New(), source)
	if err != nil {
		fail("%s", err)
	}
	if !runtime.IsNullOrUndefined(result) {
		fmt.Println(runtime.Display(result))
	}
}

func evaluate(interp *interpreter.Interpreter, source []byte) (runtime.Value, error) {
	p, err := parser.NewProgramParser()
	if err != nil {
		return nil, err
	}
	defer p.Close()

	program, err := p.ParseProgram(source)
	if err != nil {
		return nil, err
	}
	return interp.EvaluateProgram(program)
}
