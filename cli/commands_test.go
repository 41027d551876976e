package cli

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/banksim/errors"
)

// getBinaryName returns the platform-specific binary name for tests
func getBinaryName() string {
	if runtime.GOOS == "windows" {
		return "banksim-test.exe"
	}
	return "banksim-test"
}

// cleanupBinary removes the test binary in a cross-platform way
func cleanupBinary(name string) {
	_ = os.Remove(name)
}

// runCommand parses args like the banksim binary does and runs the selected
// command, capturing its output.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var cmds Commands
	var stdout, stderr bytes.Buffer

	parser, err := kong.New(&cmds,
		kong.Name("banksim"),
		kong.Writers(&stdout, &stderr),
		kong.Exit(func(code int) { t.Fatalf("unexpected exit with code %d", code) }),
	)
	assert.NoError(t, err)

	ctx, err := parser.Parse(args)
	assert.NoError(t, err)

	err = ctx.Run(&cmds.Globals)
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.txt")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func assertExitCode(t *testing.T, err error, code int) {
	t.Helper()
	var cmdErr *CommandError
	ok := stdErrors.As(err, &cmdErr)
	assert.True(t, ok, "expected a *CommandError, got %v", err)
	assert.Equal(t, code, cmdErr.ExitCode())
}

const coverScenario = `O Arias Juan 2569
D 25690 1000
W 25690 1500
D 25691 1000
W 25690 1500
H 2569
`

func TestRunCmd(t *testing.T) {
	t.Run("PrintsReport", func(t *testing.T) {
		stdout, _, err := runCommand(t, "run", writeFile(t, coverScenario))
		assert.NoError(t, err)

		assert.Contains(t, stdout, "ERROR: Not enough funds to withdraw 1500 from Juan Arias Money Market")
		assert.Contains(t, stdout, "Processing Done. Final Balances")
		assert.Contains(t, stdout, "Juan Arias Account ID: 2569")
		assert.Contains(t, stdout, "    Prime Money Market: $500")
	})

	t.Run("IsTheDefaultCommand", func(t *testing.T) {
		stdout, _, err := runCommand(t, writeFile(t, "O Arias Juan 2569\n"))
		assert.NoError(t, err)
		assert.Contains(t, stdout, "Juan Arias Account ID: 2569")
	})

	t.Run("SkipsMalformedRecords", func(t *testing.T) {
		stdout, stderr, err := runCommand(t, "run", writeFile(t, "X 1\nO Arias Juan 2569\n"))
		assert.NoError(t, err)

		assert.Contains(t, stderr, "transactions.txt:1: unknown transaction code 'X'")
		assert.Contains(t, stderr, "1 malformed transaction(s) skipped")
		assert.Contains(t, stdout, "Juan Arias Account ID: 2569")
	})

	t.Run("MissingFile", func(t *testing.T) {
		var cmds Commands
		parser, err := kong.New(&cmds, kong.Writers(&bytes.Buffer{}, &bytes.Buffer{}))
		assert.NoError(t, err)

		_, err = parser.Parse([]string{"run", filepath.Join(t.TempDir(), "missing.txt")})
		assert.Error(t, err)
	})

	t.Run("WatchRejectsStdin", func(t *testing.T) {
		cmd := &RunCmd{File: FileOrStdin{Filename: stdinName}, Watch: true}
		err := cmd.Run(nil, &Globals{LogLevel: "disabled"})
		assert.EqualError(t, err, "--watch needs a file, not stdin")
	})

	t.Run("Telemetry", func(t *testing.T) {
		_, stderr, err := runCommand(t, "--telemetry", "run", writeFile(t, coverScenario))
		assert.NoError(t, err)

		assert.Contains(t, stderr, "run transactions.txt: ")
		assert.Contains(t, stderr, "loader.load ")
		assert.Contains(t, stderr, "simulation.run (6 transactions): ")
	})
}

func TestCheckCmd(t *testing.T) {
	t.Run("Passes", func(t *testing.T) {
		stdout, stderr, err := runCommand(t, "check", writeFile(t, "O Arias Juan 2569\nD 25690 1000\n"))
		assert.NoError(t, err)
		assert.Contains(t, stdout, "✓ Check passed")
		assert.Equal(t, "", stderr)
	})

	t.Run("ReportsProblemsInFileOrder", func(t *testing.T) {
		source := "O Arias Juan 2569\nW 25690 10\nD 25690 ten\n"
		stdout, stderr, err := runCommand(t, "check", writeFile(t, source))
		assertExitCode(t, err, 1)

		assert.NotContains(t, stdout, "Processing Done")

		refused := strings.Index(stderr, "transactions.txt:2: Not enough funds to withdraw 10 from Juan Arias Money Market")
		malformed := strings.Index(stderr, `transactions.txt:3: expected amount, got WORD "ten"`)
		assert.True(t, refused >= 0, "stderr: %s", stderr)
		assert.True(t, malformed > refused, "stderr: %s", stderr)
		assert.Contains(t, stderr, "2 error(s) found")
	})

	t.Run("JSON", func(t *testing.T) {
		source := "O Arias Juan 2569\nD 25690 ten\nD 30000 5\n"
		stdout, _, err := runCommand(t, "check", "--format", "json", writeFile(t, source))
		assertExitCode(t, err, 1)

		var got []errors.ErrorJSON
		assert.NoError(t, json.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, 2, len(got))

		assert.Equal(t, "*parser.ParseError", got[0].Type)
		assert.Equal(t, 2, got[0].Position.Line)
		assert.Equal(t, "*ledger.AccountNotFoundError", got[1].Type)
		assert.Equal(t, 3, got[1].Position.Line)
	})

	t.Run("JSONPasses", func(t *testing.T) {
		stdout, _, err := runCommand(t, "check", "--format=json", writeFile(t, "O Arias Juan 2569\n"))
		assert.NoError(t, err)
		assert.Equal(t, "[]\n", stdout)
	})
}

func TestFormatCmd(t *testing.T) {
	const unformatted = "O  Arias Juan   2569\nD 25690 1000\nT 25690   50 25691\n"
	const formatted = "O Arias Juan 2569\nD 25690 1000\nT 25690 50   25691\n"

	t.Run("WritesToStdout", func(t *testing.T) {
		path := writeFile(t, unformatted)
		stdout, _, err := runCommand(t, "format", path)
		assert.NoError(t, err)
		assert.Equal(t, formatted, stdout)

		content, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Equal(t, unformatted, string(content))
	})

	t.Run("NoAlign", func(t *testing.T) {
		stdout, _, err := runCommand(t, "format", "--no-align", "--spacing", "2", writeFile(t, unformatted))
		assert.NoError(t, err)
		assert.Equal(t, "O  Arias  Juan  2569\nD  25690  1000\nT  25690  50  25691\n", stdout)
	})

	t.Run("WriteWithYes", func(t *testing.T) {
		path := writeFile(t, unformatted)
		_, stderr, err := runCommand(t, "format", "--write", "--yes", path)
		assert.NoError(t, err)
		assert.Contains(t, stderr, "Formatted")

		content, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Equal(t, formatted, string(content))
	})

	t.Run("WriteAlreadyFormatted", func(t *testing.T) {
		path := writeFile(t, formatted)
		_, stderr, err := runCommand(t, "format", "-w", path)
		assert.NoError(t, err)
		assert.Contains(t, stderr, "is already formatted")
	})

	t.Run("WriteWithoutTerminal", func(t *testing.T) {
		if isTerminal() {
			t.Skip("stdin is a terminal")
		}
		path := writeFile(t, unformatted)
		_, _, err := runCommand(t, "format", "--write", path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "pass --yes")

		content, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Equal(t, unformatted, string(content))
	})

	t.Run("MalformedRecords", func(t *testing.T) {
		path := writeFile(t, "O Arias Juan 2569\nQ 1\n")
		stdout, stderr, err := runCommand(t, "format", "--write", "--yes", path)
		assertExitCode(t, err, 1)

		assert.Equal(t, "", stdout)
		assert.Contains(t, stderr, "unknown transaction code 'Q'")
		assert.Contains(t, stderr, "1 malformed transaction(s), not formatting")

		content, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Equal(t, "O Arias Juan 2569\nQ 1\n", string(content))
	})
}

func TestDoctorCmd(t *testing.T) {
	t.Run("Lex", func(t *testing.T) {
		stdout, _, err := runCommand(t, "doctor", "lex", writeFile(t, "D 25690 1000\n"))
		assert.NoError(t, err)

		lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
		assert.Equal(t, []string{
			`CODE       1:1    "D"`,
			`NUMBER     1:3    "25690"`,
			`NUMBER     1:9    "1000"`,
			`NEWLINE    1:13    "\n"`,
		}, lines)
	})

	t.Run("AST", func(t *testing.T) {
		stdout, stderr, err := runCommand(t, "doctor", "ast", writeFile(t, "O Arias Juan 2569\nZ\n"))
		assert.NoError(t, err)

		assert.Contains(t, stdout, "ast.Open")
		assert.Contains(t, stdout, `LastName: "Arias"`)
		assert.Contains(t, stderr, "unknown transaction code 'Z'")
	})
}

func TestFileOrStdin(t *testing.T) {
	stdin := FileOrStdin{Filename: stdinName, Contents: []byte("O Arias Juan 2569\n")}
	assert.True(t, stdin.IsStdin())
	assert.Equal(t, "<stdin>", stdin.GetAbsoluteFilename())
	content, err := stdin.GetSourceContent()
	assert.NoError(t, err)
	assert.Equal(t, "O Arias Juan 2569\n", string(content))

	path := writeFile(t, "D 25690 1\n")
	file := FileOrStdin{Filename: path}
	assert.False(t, file.IsStdin())
	assert.True(t, filepath.IsAbs(file.GetAbsoluteFilename()))
	content, err = file.GetSourceContent()
	assert.NoError(t, err)
	assert.Equal(t, "D 25690 1\n", string(content))
}

// TestStdinIntegration tests the full stdin functionality by running the compiled binary
func TestStdinIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the banksim binary")
	}

	binaryName := getBinaryName()
	cmd := exec.Command("go", "build", "-o", binaryName, "../cmd/banksim")
	assert.NoError(t, cmd.Run())
	defer cleanupBinary(binaryName)

	t.Run("RunStdin", func(t *testing.T) {
		runCmd := exec.Command("./"+binaryName, "run", "-")
		runCmd.Stdin = strings.NewReader(coverScenario)
		output, err := runCmd.Output()
		assert.NoError(t, err)
		assert.Contains(t, string(output), "Processing Done. Final Balances")
	})

	t.Run("RunStdinDefault", func(t *testing.T) {
		runCmd := exec.Command("./" + binaryName)
		runCmd.Stdin = strings.NewReader("O Arias Juan 2569\n")
		output, err := runCmd.Output()
		assert.NoError(t, err)
		assert.Contains(t, string(output), "Juan Arias Account ID: 2569")
	})

	t.Run("CheckStdinSuccess", func(t *testing.T) {
		checkCmd := exec.Command("./"+binaryName, "check", "-")
		checkCmd.Stdin = strings.NewReader("O Arias Juan 2569\n")
		output, err := checkCmd.CombinedOutput()
		assert.NoError(t, err)
		assert.Contains(t, string(output), "✓ Check passed")
	})

	t.Run("CheckStdinError", func(t *testing.T) {
		checkCmd := exec.Command("./"+binaryName, "check", "-")
		checkCmd.Stdin = strings.NewReader("D 25690 1000\n")
		output, err := checkCmd.CombinedOutput()
		assert.Error(t, err)

		var exitErr *exec.ExitError
		assert.True(t, stdErrors.As(err, &exitErr))
		assert.Equal(t, 1, exitErr.ExitCode())
		assert.Contains(t, string(output), "<stdin>:1: Account 2569 not found. Transaction refused.")
	})

	t.Run("FormatStdin", func(t *testing.T) {
		formatCmd := exec.Command("./"+binaryName, "format", "-")
		formatCmd.Stdin = strings.NewReader("D   25690 1000\n")
		output, err := formatCmd.Output()
		assert.NoError(t, err)
		assert.Equal(t, "D 25690 1000\n", string(output))
	})
}
