package main

import (
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"

	"ecmascript/engine-go/pkg/interpreter"
	"ecmascript/engine-go/pkg/runtime"
)

// fetchAndRun clones a git repository into a scratch directory and evaluates
// its entry script. With no explicit entry it tries the jsi.toml entry, then
// the conventional index.js and main.js.
func fetchAndRun(url, entry string) {
	dir, err := os.MkdirTemp("", "jsi-fetch-*")
	if err != nil {
		fail("%s", err)
	}
	defer os.RemoveAll(dir)

	log.Infof("cloning %s", url)
	_, err = git.PlainClone(dir, false, &git.CloneOptions{
		URL:   url,
		Depth: 1,
	})
	if err != nil {
		fail("cloning %s: %s", url, err)
	}

	script, err := resolveFetchedEntry(dir, entry)
	if err != nil {
		fail("%s", err)
	}

	source, err := os.ReadFile(script)
	if err != nil {
		fail("%s", err)
	}
	log.Infof("running %s", script)
	result, err := evaluate(interpreter.New(), source)
	if err != nil {
		fail("%s", err)
	}
	if !runtime.IsNullOrUndefined(result) {
		fmt.Println(runtime.Display(result))
	}
}

func resolveFetchedEntry(dir, entry string) (string, error) {
	if entry != "" {
		return filepath.Join(dir, entry), nil
	}
	if project, err := LoadProject(filepath.Join(dir, "jsi.toml")); err == nil {
		if resolved := project.ResolveEntry(""); resolved != "" {
			return resolved, nil
		}
	}
	for _, candidate := range []string{"index.js", "main.js"} {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no entry script found in %s", dir)
}
