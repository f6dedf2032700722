package support

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"
)

// RegisterCommonSteps wires the gherkin vocabulary shared by every
// feature file to tc's step methods.
func (tc *TestContext) RegisterCommonSteps(sc *godog.ScenarioContext) {
	sc.Given(`^a gold/noisy training corpus "([^"]*)" containing:$`, tc.aTrainingCorpusContaining)
	sc.Given(`^a dictionary "([^"]*)" containing:$`, tc.aDictionaryContaining)
	sc.Given(`^a text file "([^"]*)" containing "([^"]*)"$`, tc.aTextFileContaining)

	sc.When(`^I run "correctocr ([^"]*)"$`, tc.iRunCorrectocr)

	sc.Then(`^the command should succeed$`, tc.theCommandShouldSucceed)
	sc.Then(`^the command should fail$`, tc.theCommandShouldFail)
	sc.Then(`^the exit code should be (\d+)$`, tc.theExitCodeShouldBe)
	sc.Then(`^the output should contain "([^"]*)"$`, tc.theOutputShouldContain)
	sc.Then(`^a file "([^"]*)" should exist$`, tc.aFileShouldExist)
}

func (tc *TestContext) aTrainingCorpusContaining(name, content string) error {
	_, err := tc.WriteTempFile(name, content)
	return err
}

func (tc *TestContext) aDictionaryContaining(name, content string) error {
	_, err := tc.WriteTempFile(name, content)
	return err
}

func (tc *TestContext) aTextFileContaining(name, content string) error {
	_, err := tc.WriteTempFile(name, content)
	return err
}

// iRunCorrectocr runs the correctocr binary with rawArgs, substituting
// any bare filename argument that refers to a tracked temp file with
// its absolute path.
func (tc *TestContext) iRunCorrectocr(rawArgs string) error {
	args := tc.resolveArgs(strings.Fields(rawArgs))

	cmd := exec.CommandContext(context.Background(), tc.BinPath, args...) //nolint:gosec // args come from feature files
	cmd.Dir = tc.TempDir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	tc.LastOutput = stdout.String()
	tc.LastStderr = stderr.String()
	tc.LastErr = err
	if exitErr, ok := err.(*exec.ExitError); ok {
		tc.LastExitCode = exitErr.ExitCode()
	} else if err == nil {
		tc.LastExitCode = 0
	}
	return nil
}

// resolveArgs rewrites any argument matching a tracked temp file's base
// name to its absolute path, so feature files can refer to fixtures by
// their short name regardless of the scenario's temp directory.
func (tc *TestContext) resolveArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a
		for _, f := range tc.CreatedFiles {
			if strings.HasSuffix(f, "/"+a) || a == f {
				out[i] = f
				break
			}
		}
	}
	return out
}

func (tc *TestContext) theCommandShouldSucceed() error {
	if tc.LastErr != nil {
		return fmt.Errorf("expected success, got error: %v (stderr: %s)", tc.LastErr, tc.LastStderr)
	}
	return nil
}

func (tc *TestContext) theCommandShouldFail() error {
	if tc.LastErr == nil {
		return fmt.Errorf("expected failure, command succeeded with output: %s", tc.LastOutput)
	}
	return nil
}

func (tc *TestContext) theExitCodeShouldBe(expected int) error {
	if tc.LastExitCode != expected {
		return fmt.Errorf("expected exit code %d, got %d", expected, tc.LastExitCode)
	}
	return nil
}

func (tc *TestContext) theOutputShouldContain(substr string) error {
	combined := tc.LastOutput + tc.LastStderr
	if !strings.Contains(combined, substr) {
		return fmt.Errorf("expected output to contain %q, got: %s", substr, combined)
	}
	return nil
}

func (tc *TestContext) aFileShouldExist(name string) error {
	path := filepath.Join(tc.TempDir, name)
	for _, f := range tc.CreatedFiles {
		if strings.HasSuffix(f, "/"+name) {
			path = f
			break
		}
	}
	if !fileExists(path) {
		return fmt.Errorf("expected file %s to exist", path)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
