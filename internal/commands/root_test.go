package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "rabo2ofx-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "rabo2ofx")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/rabo2ofx")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

// workDir returns a fresh directory holding a copy of the fixture
// export. The binary resolves config and output paths against it.
func workDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	data, err := os.ReadFile("../../testdata/rabo_export.csv")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rabo_export.csv"), data, 0o644))
	return dir
}

func writeConfig(t *testing.T, dir, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rabo2ofx.yaml"), []byte(contents), 0o644))
}

func runRabo2ofx(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func readOutput(t *testing.T, dir string, parts ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(append([]string{dir}, parts...)...))
	require.NoError(t, err)
	return string(data)
}

func TestConvert_NoConfig(t *testing.T) {
	dir := workDir(t)

	out, err := runRabo2ofx(t, dir, "rabo_export.csv")
	require.NoError(t, err, out)

	assert.Contains(t, out, "           Output to ofx (GnuCash version)\n")
	assert.Contains(t, out, "TRANSACTIONS: 8\n")
	assert.Contains(t, out, "IN:           rabo_export.csv\n")
	assert.Contains(t, out, "OUT:          rabo_export.ofx\n")
	assert.Contains(t, out, "\tNL11RABO0101010101        5     0     5           0\n")
	// The two unconfigured accounts still dedupe the transfer pair
	// within the file, and the account count warning fires.
	assert.Contains(t, out, "\tNL22RABO0202020202        2     1     3           0\n")
	assert.Contains(t, out, "warning: it seems you have more accounts in your file(s)")

	ofxData := readOutput(t, dir, "ofx", "rabo_export.ofx")
	assert.Contains(t, ofxData, "<ACCTID>NL11RABO0101010101</ACCTID>")
	assert.Contains(t, ofxData, "<ACCTID>NL22RABO0202020202</ACCTID>")
	assert.Contains(t, ofxData, "<DTSTART>20170601</DTSTART>")
	assert.Contains(t, ofxData, "<DTEND>20230112</DTEND>")
}

func TestConvert_WithConfig(t *testing.T) {
	dir := workDir(t)
	writeConfig(t, dir, "accounts:\n  - NL11RABO0101010101\n  - NL22RABO0202020202\n")

	out, err := runRabo2ofx(t, dir, "rabo_export.csv")
	require.NoError(t, err, out)

	assert.Contains(t, out, "\tNL11RABO0101010101        5     0     5           0\n")
	assert.Contains(t, out, "\tNL22RABO0202020202        2     1     3           0\n")
	assert.NotContains(t, out, "warning:")

	ofxData := readOutput(t, dir, "ofx", "rabo_export.ofx")

	// The transfer leg kept on the first configured account.
	assert.Contains(t, ofxData, "<FITID>NL11RABO010101010170</FITID>")
	assert.Contains(t, ofxData, "<TRNAMT>-12.34</TRNAMT>")
	// Its reciprocal on the second account is suppressed.
	assert.NotContains(t, ofxData, "<TRNAMT>+12.34</TRNAMT>")

	// Old rows without a serial number fall back to the date+amount id.
	assert.Contains(t, ofxData, "<FITID>201706012000D0</FITID>")

	// Decoded ISO-8859-1 name and the historical ampersand rewrite.
	assert.Contains(t, ofxData, "<NAME>NL88HORE0606060606 Café Zuid</NAME>")
	assert.Contains(t, ofxData, "Gas &amp licht")
	assert.Contains(t, ofxData, "Premie zorgverzekeringbetalingskenmerk 1234567890123456")

	// ATM row has no counterparty at all.
	assert.Contains(t, ofxData, "<NAME></NAME>")
	assert.Contains(t, ofxData, "<TRNTYPE>ATM</TRNTYPE>")
}

func TestConvert_ForceDatePosted(t *testing.T) {
	dir := workDir(t)
	writeConfig(t, dir, `accounts:
  - NL11RABO0101010101
  - NL22RABO0202020202
overrides:
  force_date_posted: "true"
`)

	out, err := runRabo2ofx(t, dir, "rabo_export.csv")
	require.NoError(t, err, out)

	// Two rows on the first account have interest and transaction
	// dates that differ; the skipped transfer leg never counts.
	assert.Contains(t, out, "\tNL11RABO0101010101        5     0     5           2\n")
	assert.Contains(t, out, "\tNL22RABO0202020202        2     1     3           0\n")
	assert.Contains(t, out, "---- overrides        -----")
	assert.Contains(t, out, "force_date_posted = true")

	ofxData := readOutput(t, dir, "ofx", "rabo_export.ofx")
	assert.Contains(t, ofxData, "<DTPOSTED>20230110</DTPOSTED>")
	assert.NotContains(t, ofxData, "<DTPOSTED>20230109</DTPOSTED>")
}

func TestConvert_HomeBank(t *testing.T) {
	dir := workDir(t)
	writeConfig(t, dir, "accounts:\n  - NL11RABO0101010101\n  - NL22RABO0202020202\n")

	out, err := runRabo2ofx(t, dir, "--homebank", "rabo_export.csv")
	require.NoError(t, err, out)

	assert.Contains(t, out, "Output to ofx_hb (HomeBank version)")
	assert.Contains(t, out, "\tNL22RABO0202020202        3     0     3           0\n")

	ofxData := readOutput(t, dir, "ofx_hb", "rabo_export.ofx")
	assert.Contains(t, ofxData, "<TRNAMT>-12.34</TRNAMT>")
	assert.Contains(t, ofxData, "<TRNAMT>+12.34</TRNAMT>")
}

func TestConvert_DecimalComma(t *testing.T) {
	dir := workDir(t)

	out, err := runRabo2ofx(t, dir, "--comma", "rabo_export.csv")
	require.NoError(t, err, out)

	ofxData := readOutput(t, dir, "ofx", "rabo_export.ofx")
	assert.Contains(t, ofxData, "<TRNAMT>-12,34</TRNAMT>")
	assert.NotContains(t, ofxData, "<TRNAMT>-12.34</TRNAMT>")
}

func TestConvert_OutfileAndDirectory(t *testing.T) {
	dir := workDir(t)

	out, err := runRabo2ofx(t, dir, "-o", "january.ofx", "-d", "exports", "rabo_export.csv")
	require.NoError(t, err, out)

	assert.Contains(t, out, "           Output to exports (GnuCash version)\n")
	assert.Contains(t, out, "OUT:          january.ofx\n")
	assert.FileExists(t, filepath.Join(dir, "exports", "january.ofx"))
}

func TestConvert_NonCsvInputKeepsName(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile("../../testdata/rabo_export.csv")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "statement.txt"), data, 0o644))

	out, err := runRabo2ofx(t, dir, "statement.txt")
	require.NoError(t, err, out)

	// Only a csv extension is rewritten to .ofx; anything else keeps
	// its name, including in the output directory.
	assert.Contains(t, out, "OUT:          statement.txt\n")
	assert.FileExists(t, filepath.Join(dir, "ofx", "statement.txt"))
}

func TestConvert_MissingInput(t *testing.T) {
	dir := t.TempDir()

	out, err := runRabo2ofx(t, dir, "nope.csv")
	require.Error(t, err)
	assert.Contains(t, out, "nope.csv")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()

	out, err := runRabo2ofx(t, dir, "config", "init")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Wrote rabo2ofx.yaml")

	data := readOutput(t, dir, "rabo2ofx.yaml")
	assert.Contains(t, data, "accounts:")
	assert.Contains(t, data, "force_date_posted:")

	// A second init must not clobber the file.
	out, err = runRabo2ofx(t, dir, "config", "init")
	require.Error(t, err)
	assert.Contains(t, out, "already exists")
}

func TestConfigShow(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `accounts:
  - nl11rabo0101010101
  - NL22RABO0202020202
overrides:
  force_date_posted: "false"
`)

	out, err := runRabo2ofx(t, dir, "config")
	require.NoError(t, err, out)
	assert.Contains(t, out, "NL11RABO0101010101 Main account.")
	assert.Contains(t, out, "NL22RABO0202020202 Subordinate to all previous accounts.")
	assert.Contains(t, out, "force_date_posted = false")
}

func TestVersionFlag(t *testing.T) {
	out, err := runRabo2ofx(t, t.TempDir(), "--version")
	require.NoError(t, err, out)
	assert.Contains(t, out, "commit:")
}
