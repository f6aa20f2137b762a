package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"ecmascript/engine-go/pkg/interpreter"
	"ecmascript/engine-go/pkg/parser"
	"ecmascript/engine-go/pkg/runtime"
)

const (
	historyFile = ".jsi_history"
	promptMain  = "js> "
	promptCont  = "... "
)

func runREPL() {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyPath = filepath.Join(home, historyFile)
		if f, err := os.Open(historyPath); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Println("jsi REPL. Ctrl+C cancels input, Ctrl+D exits.")

	interp := interpreter.New()
	p, err := parser.NewProgramParser()
	if err != nil {
		fail("%s", err)
	}
	defer p.Close()

	var pending string
	for {
		prompt := promptMain
		if pending != "" {
			prompt = promptCont
		}
		input, err := line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			pending = ""
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}
		if err != nil {
			fail("%s", err)
		}

		source := input
		if pending != "" {
			source = pending + "\n" + input
		}
		if strings.TrimSpace(source) == "" {
			continue
		}

		program, err := p.ParseProgram([]byte(source))
		if err != nil {
			// Incomplete input continues on the next line; a blank line
			// forces the error out.
			if input != "" {
				pending = source
				continue
			}
			pending = ""
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		pending = ""
		line.AppendHistory(strings.ReplaceAll(source, "\n", " "))

		result, err := interp.EvaluateProgram(program)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Uncaught", runtime.Display(interpreter.ThrownValue(err)))
			continue
		}
		if !runtime.IsNullOrUndefined(result) {
			fmt.Println(runtime.Display(result))
		}
	}

	if historyPath != "" {
		if f, err := os.Create(historyPath); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}
}
