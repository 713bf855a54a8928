package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupAnalyze(t *testing.T) *bytes.Buffer {
	t.Setenv("PWD_DICTIONARY", "../../test/data/common-passwords.txt")
	t.Setenv("PWD_NO_COLOR", "true")

	t.Cleanup(func() {
		password, batchFile, showHash, interactive, secondOpinion = "", "", false, false, false
	})

	return &bytes.Buffer{}
}

func TestAnalyzeCommand_Password(t *testing.T) {
	out := setupAnalyze(t)
	password = "password"

	if err := analyzeCommand(out); err != nil {
		t.Fatalf("analyze should not fail: %s", err)
	}

	for _, want := range []string{"Password: password\n", "Estimated Crack Time: Instant (Exact dictionary match)\n"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Output should contain %q:\n%s", want, out)
		}
	}
}

func TestAnalyzeCommand_Batch(t *testing.T) {
	out := setupAnalyze(t)

	batchFile = filepath.Join(t.TempDir(), "batch.txt")
	if err := os.WriteFile(batchFile, []byte("  dragon  \nxK9#mQ2$vL7@pR4!\n"), 0o600); err != nil {
		t.Fatalf("Creating the batch file should not fail: %s", err)
	}

	if err := analyzeCommand(out); err != nil {
		t.Fatalf("analyze should not fail: %s", err)
	}

	for _, want := range []string{
		"Password: dragon\n",
		"Password: xK9#mQ2$vL7@pR4!\n",
		"Estimated Crack Time: Effectively uncrackable (current tech)\n",
		"2 passwords analyzed in ",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Output should contain %q:\n%s", want, out)
		}
	}
}

func TestAnalyzeCommand_BatchLongLine(t *testing.T) {
	out := setupAnalyze(t)

	batchFile = filepath.Join(t.TempDir(), "batch.txt")
	content := "password\n" + strings.Repeat("x", 70000) + "\ndragon\n"
	if err := os.WriteFile(batchFile, []byte(content), 0o600); err != nil {
		t.Fatalf("Creating the batch file should not fail: %s", err)
	}

	if err := analyzeCommand(out); err != nil {
		t.Fatalf("analyze should not fail on long lines: %s", err)
	}

	for _, want := range []string{
		"Password: dragon\n",
		"Estimated Crack Time: Minutes (Repeated character sequence)\n",
		"3 passwords analyzed in ",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Output should contain %q", want)
		}
	}
}

func TestAnalyzeCommand_NoColorWhenNotTerminal(t *testing.T) {
	out := setupAnalyze(t)
	t.Setenv("PWD_NO_COLOR", "false")
	password = "password"

	if err := analyzeCommand(out); err != nil {
		t.Fatalf("analyze should not fail: %s", err)
	}

	if strings.Contains(out.String(), "\033[") {
		t.Errorf("Output to a non terminal should not be colored:\n%q", out.String())
	}
	if !strings.Contains(out.String(), "Strength: Moderate\n") {
		t.Errorf("Output should contain the plain strength:\n%s", out)
	}
}

func TestColorEnabled(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatalf("Creating the output file should not fail: %s", err)
	}
	defer file.Close()

	cases := []struct {
		name    string
		out     io.Writer
		noColor bool
	}{
		{"buffer", &bytes.Buffer{}, false},
		{"regular file", file, false},
		{"disabled", os.Stdout, true},
	}

	for _, tc := range cases {
		if colorEnabled(tc.out, tc.noColor) {
			t.Errorf("%s: colors should be disabled", tc.name)
		}
	}
}

func TestPasswordFromArgs(t *testing.T) {
	cases := []struct {
		name        string
		password    string
		batch       string
		interactive bool
		args        []string
		want        string
		err         error
	}{
		{"argument", "", "", false, []string{"secret"}, "secret", nil},
		{"flag", "flagged", "", false, nil, "flagged", nil},
		{"argument and flag", "flagged", "", false, []string{"secret"}, "flagged", errAmbiguousArg},
		{"argument and batch", "", "batch.txt", false, []string{"secret"}, "", errAmbiguousArg},
		{"argument and interactive", "", "", true, []string{"secret"}, "", errAmbiguousArg},
	}

	for _, tc := range cases {
		setupAnalyze(t)
		password, batchFile, interactive = tc.password, tc.batch, tc.interactive

		err := passwordFromArgs(tc.args)
		if !errors.Is(err, tc.err) {
			t.Errorf("%s: error %v, want: %v", tc.name, err, tc.err)
		}
		if password != tc.want {
			t.Errorf("%s: password %q, want: %q", tc.name, password, tc.want)
		}
	}
}

func TestAnalyzeCommand_MissingBatch(t *testing.T) {
	out := setupAnalyze(t)
	batchFile = filepath.Join(t.TempDir(), "missing.txt")

	if err := analyzeCommand(out); err != nil {
		t.Fatalf("A missing batch file should not fail: %s", err)
	}

	if out.String() != "Batch file not found.\n" {
		t.Errorf("Output: %q, want: %q", out.String(), "Batch file not found.\n")
	}
}

func TestAnalyzeCommand_NoInput(t *testing.T) {
	out := setupAnalyze(t)

	if err := analyzeCommand(out); !errors.Is(err, errNoInput) {
		t.Errorf("analyze without input: %v, want: %v", err, errNoInput)
	}
}
