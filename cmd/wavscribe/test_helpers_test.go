package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wavscribe/internal/config"
	"wavscribe/internal/recognition"
	"wavscribe/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	inputDir   string
	outputDir  string
	configPath string
	stub       *testsupport.StubRecognizer
	deps       commandDeps
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("GOOGLE_SPEECH_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Chdir(base)

	stub := &testsupport.StubRecognizer{Text: "hello world"}
	env := &cliTestEnv{
		baseDir:    base,
		inputDir:   filepath.Join(base, "input_files"),
		outputDir:  filepath.Join(base, "output_files"),
		configPath: filepath.Join(base, "wavscribe-test.toml"),
		stub:       stub,
		deps: commandDeps{
			newRecognizer: func(config.Recognition) (recognition.Recognizer, error) { return stub, nil },
			lockDir:       t.TempDir(),
		},
	}
	return env
}

func (e *cliTestEnv) writeInput(t *testing.T, lang string) string {
	t.Helper()
	path := filepath.Join(e.inputDir, lang+".wav")
	testsupport.WriteSineWAV(t, path, 8000, 1, 0.5, 440, 6000)
	return path
}

func (e *cliTestEnv) writeConfig(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(e.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommandWithDeps(env.deps)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func runConfig(sections ...string) string {
	return fmt.Sprintln(strings.Join(sections, "\n"))
}
