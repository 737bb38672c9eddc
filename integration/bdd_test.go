package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"obfuscate-logs/cmd"
	"obfuscate-logs/internal/config"

	msgs "github.com/cucumber/messages/go/v28"
	"github.com/go-bdd/gobdd"
)

func TestBDD(t *testing.T) {
	suite := gobdd.NewSuite(t,
		gobdd.WithFeaturesPath("features/*.feature"),
		gobdd.WithBeforeScenario(func(ctx gobdd.Context) {
			resetScenario()
		}),
	)

	suite.AddStep(`an empty log folder`, givenEmptyLogFolder)
	suite.AddStep(`a keyword file with:`, givenKeywordFile)
	suite.AddStep(`a file "(.*)" with lines:`, givenFileWithLines)
	suite.AddStep(`a binary file "(.*)" with header "(.*)"`, givenBinaryFile)
	suite.AddStep(`I obfuscate the folder with "(.*)"`, whenIObfuscateFolder)
	suite.AddStep(`I obfuscate the file "(.*)"`, whenIObfuscateFile)
	suite.AddStep(`I run the command "(.*)"`, whenIRunCommand)
	suite.AddStep(`the output should contain "(.*)"`, thenOutputShouldContain)
	suite.AddStep(`the file "(.*)" should contain "(.*)"`, thenFileShouldContain)
	suite.AddStep(`the file "(.*)" should not contain "(.*)"`, thenFileShouldNotContain)
	suite.AddStep(`the file "(.*)" should end with the binary tail`, thenFileEndsWithTail)

	suite.Run()

	if scenarioRoot != "" {
		os.RemoveAll(scenarioRoot)
	}
}

// binaryTail follows the ASCII header of generated binary files.
var binaryTail = []byte{0x80, 0x81, 0x00, 0xFF, 'h', 't', 't', 'p', ':', '/', '/', 'a', '.', 'b', 0xFE}

var (
	lastOutput   string
	scenarioRoot string
	logDir       string
	keywordFile  string
)

func resetScenario() {
	if scenarioRoot != "" {
		os.RemoveAll(scenarioRoot)
	}
	scenarioRoot, _ = os.MkdirTemp("", "obfuscate-logs-bdd-")
	logDir = filepath.Join(scenarioRoot, "logs")
	keywordFile = filepath.Join(scenarioRoot, "keywords", "obfuscate-logs.ini")
	os.MkdirAll(logDir, 0755)
	os.MkdirAll(filepath.Dir(keywordFile), 0755)

	os.Setenv(config.EnvConfigDir, filepath.Join(scenarioRoot, "config"))
	lastOutput = ""
}

func givenEmptyLogFolder(t gobdd.StepTest, ctx gobdd.Context) {
	if _, err := os.Stat(logDir); err != nil {
		t.Errorf("log folder missing: %v", err)
	}
}

func givenKeywordFile(t gobdd.StepTest, ctx gobdd.Context, table msgs.DataTable) {
	sections := map[string][]string{}
	var order []string
	// Skip header row
	for i := 1; i < len(table.Rows); i++ {
		row := table.Rows[i]
		section := row.Cells[0].Value
		if _, ok := sections[section]; !ok {
			order = append(order, section)
		}
		sections[section] = append(sections[section], row.Cells[1].Value+"="+row.Cells[2].Value)
	}

	var sb strings.Builder
	for _, s := range order {
		sb.WriteString("[" + s + "]\n")
		for _, kv := range sections[s] {
			sb.WriteString(kv + "\n")
		}
		sb.WriteString("\n")
	}
	if err := os.WriteFile(keywordFile, []byte(sb.String()), 0644); err != nil {
		t.Errorf("write keyword file: %v", err)
	}
}

func givenFileWithLines(t gobdd.StepTest, ctx gobdd.Context, name string, table msgs.DataTable) {
	var lines []string
	// Skip header row
	for i := 1; i < len(table.Rows); i++ {
		lines = append(lines, table.Rows[i].Cells[0].Value)
	}
	writeLogFile(t, name, []byte(strings.Join(lines, "\n")+"\n"))
}

func givenBinaryFile(t gobdd.StepTest, ctx gobdd.Context, name, header string) {
	data := append([]byte(header+"\n"), binaryTail...)
	writeLogFile(t, name, data)
}

func writeLogFile(t gobdd.StepTest, name string, data []byte) {
	path := filepath.Join(logDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Errorf("create folder for %s: %v", name, err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Errorf("write %s: %v", name, err)
	}
}

func whenIObfuscateFolder(t gobdd.StepTest, ctx gobdd.Context, flags string) {
	args := []string{logDir}
	args = append(args, strings.Fields(flags)...)
	execute(args)
}

func whenIObfuscateFile(t gobdd.StepTest, ctx gobdd.Context, name string) {
	execute([]string{filepath.Join(logDir, filepath.FromSlash(name))})
}

func whenIRunCommand(t gobdd.StepTest, ctx gobdd.Context, commandLine string) {
	execute(strings.Fields(commandLine))
}

func execute(args []string) {
	args = append(args, "--keywords", keywordFile)

	buf := new(bytes.Buffer)
	cmd.ResetFlags()
	cmd.SetOut(buf)
	cmd.SetArgs(args)

	// Execute exits on error; scenarios only drive successful runs.
	cmd.Execute()

	lastOutput = buf.String()
}

func thenOutputShouldContain(t gobdd.StepTest, ctx gobdd.Context, expected string) {
	if !strings.Contains(lastOutput, expected) {
		t.Errorf("expected output to contain %q, but got %q", expected, lastOutput)
	}
}

func readLogFile(t gobdd.StepTest, name string) string {
	data, err := os.ReadFile(filepath.Join(logDir, filepath.FromSlash(name)))
	if err != nil {
		t.Errorf("read %s: %v", name, err)
		return ""
	}
	return string(data)
}

func thenFileShouldContain(t gobdd.StepTest, ctx gobdd.Context, name, expected string) {
	if content := readLogFile(t, name); !strings.Contains(content, expected) {
		t.Errorf("expected %s to contain %q, but got %q", name, expected, content)
	}
}

func thenFileShouldNotContain(t gobdd.StepTest, ctx gobdd.Context, name, unexpected string) {
	if content := readLogFile(t, name); strings.Contains(content, unexpected) {
		t.Errorf("expected %s not to contain %q, but got %q", name, unexpected, content)
	}
}

func thenFileEndsWithTail(t gobdd.StepTest, ctx gobdd.Context, name string) {
	content := readLogFile(t, name)
	if !strings.HasSuffix(content, string(binaryTail)) {
		t.Errorf("expected %s to end with the untouched binary tail, got %q", name, content)
	}
}
