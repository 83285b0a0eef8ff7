package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/dual-count/internal/common"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliResult struct {
	err    error
	stdout string
	stderr string
}

// setupEnv points storage and logging at a temporary directory.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("DUALCOUNT_STORAGE_BACKEND", "sqlite")
	t.Setenv("DUALCOUNT_STORAGE_PATH", filepath.Join(dir, "dualcount.db"))
	t.Setenv("DUALCOUNT_LOGGING_FILE", filepath.Join(dir, "dualcount.log"))
	t.Setenv("DUALCOUNT_LOGGING_LEVEL", "error")
	return dir
}

func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()

	a := newApp()
	t.Cleanup(a.close)

	cmd := a.rootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := cmd.ExecuteContext(ctx)
	return cliResult{err: err, stdout: stdout.String(), stderr: stderr.String()}
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	res := runCLI(t, "", args...)
	require.NoError(t, res.err, "dualcount %s: %s", strings.Join(args, " "), res.stderr)
	return res.stdout
}

func TestAddAndSummary(t *testing.T) {
	setupEnv(t)

	out := mustRun(t, "add", "10")
	assert.Contains(t, out, "Added entry 0: 10 CAD")

	out = mustRun(t, "add", "--column", "right", "53.5")
	assert.Contains(t, out, "Added entry 1: 53.5 RMB")

	mustRun(t, "add", "lunch")

	out = mustRun(t, "summary")
	assert.Contains(t, out, "Entries: 3 (CAD 2, RMB 1)")
	assert.Contains(t, out, "Rate:    5.35 CAD per RMB")
	assert.Contains(t, out, "Totals:  CAD 20.00 | RMB 107.00")
}

func TestAdd_InvalidColumn(t *testing.T) {
	setupEnv(t)

	res := runCLI(t, "", "add", "--column", "middle", "1")
	require.Error(t, res.err)

	var userErr *common.UserError
	assert.ErrorAs(t, res.err, &userErr)
}

func TestSet(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantOut    string
		wantErr    error
		wantColumn string
	}{
		{
			name:       "keeps column",
			args:       []string{"set", "0", "20"},
			wantOut:    "Updated entry 0: 20 CAD",
			wantColumn: "Left",
		},
		{
			name:       "moves column",
			args:       []string{"set", "0", "--column", "right", "70"},
			wantOut:    "Updated entry 0: 70 RMB",
			wantColumn: "Right",
		},
		{
			name:    "unknown id",
			args:    []string{"set", "9", "1"},
			wantErr: common.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t)
			mustRun(t, "add", "10")

			res := runCLI(t, "", tt.args...)
			if tt.wantErr != nil {
				require.ErrorIs(t, res.err, tt.wantErr)
				return
			}
			require.NoError(t, res.err)
			assert.Contains(t, res.stdout, tt.wantOut)

			var summary map[string]any
			require.NoError(t, json.Unmarshal([]byte(mustRun(t, "summary", "--format", "json")), &summary))
			entries := summary["entries"].([]any)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantColumn, entries[0].(map[string]any)["column"])
		})
	}
}

func TestSet_InvalidID(t *testing.T) {
	setupEnv(t)

	res := runCLI(t, "", "set", "abc", "1")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), `invalid entry id "abc"`)
}

func TestRate(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantOut     string
		wantWarning bool
	}{
		{name: "number", text: "4.8", wantOut: "Rate set to 4.8 CAD per RMB"},
		{name: "garbage falls back", text: "abc", wantOut: "Rate set to 5.35 CAD per RMB", wantWarning: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t)
			mustRun(t, "rate", "2")

			res := runCLI(t, "", "rate", tt.text)
			require.NoError(t, res.err)
			assert.Contains(t, res.stdout, tt.wantOut)
			assert.Equal(t, tt.wantWarning, strings.Contains(res.stderr, "not a number"))
		})
	}
}

func TestSummary_Formats(t *testing.T) {
	setupEnv(t)
	mustRun(t, "add", "10")

	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "summary", "--format", "json")), &summary))
	assert.Equal(t, "53.50", summary["right_total"])
	assert.Equal(t, "5.35", summary["rate"])

	md := mustRun(t, "summary", "--format", "markdown")
	assert.Contains(t, md, "Dual Count")
	assert.Contains(t, md, "53.50")

	res := runCLI(t, "", "summary", "--format", "xml")
	require.ErrorIs(t, res.err, common.ErrInvalidConfig)
}

func TestSummary_CounterVariant(t *testing.T) {
	setupEnv(t)
	mustRun(t, "add", "10")
	mustRun(t, "add", "--column", "right", "3")

	out := mustRun(t, "--variant", "counter", "summary")
	assert.Contains(t, out, "Entries: 2 (CAD 1, RMB 1)")
	assert.NotContains(t, out, "Rate:")
}

func TestInvalidVariant(t *testing.T) {
	setupEnv(t)

	res := runCLI(t, "", "--variant", "triple", "summary")
	require.ErrorIs(t, res.err, common.ErrInvalidConfig)
}

func TestExport(t *testing.T) {
	dir := setupEnv(t)
	mustRun(t, "add", "10")
	mustRun(t, "add", "--column", "right", "10.7")

	path := filepath.Join(dir, "out.csv")
	res := runCLI(t, "", "export", "--output", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Exported 2 entries")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"id", "column", "description", "left", "right"}, records[0])
	assert.Equal(t, []string{"0", "Left", "10", "10.00", "53.50"}, records[1])
	assert.Equal(t, []string{"1", "Right", "10.7", "2.00", "10.70"}, records[2])

	stdout := mustRun(t, "export")
	assert.True(t, strings.HasPrefix(stdout, "id,column,description,left,right\n"))
}

const statementOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>CAD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>COFFEE SHOP
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>GROCERY STORE
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func writeStatement(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(statementOFX), 0600))
	return path
}

func TestImportOFX(t *testing.T) {
	dir := setupEnv(t)
	writeStatement(t, dir, "january.ofx")
	writeStatement(t, dir, "january-copy.ofx")

	res := runCLI(t, "", "import-ofx", "--column", "left", filepath.Join(dir, "*.ofx"))
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Added 2 entries (2 total)")
	assert.Contains(t, res.stderr, "2/2")

	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "summary", "--format", "json")), &summary))
	entries := summary["entries"].([]any)
	require.Len(t, entries, 2)
	assert.Equal(t, "25.50", entries[0].(map[string]any)["description"])
	assert.Equal(t, "125.00", entries[1].(map[string]any)["description"])
}

func TestImportOFX_SkipsEarlierImports(t *testing.T) {
	dir := setupEnv(t)
	path := writeStatement(t, dir, "january.ofx")

	assert.Contains(t, mustRun(t, "import-ofx", path), "Added 2 entries (2 total)")

	out := mustRun(t, "import-ofx", path)
	assert.Contains(t, out, "No new transactions found")
	assert.Contains(t, mustRun(t, "summary"), "Entries: 2")

	mustRun(t, "reset", "--force")
	assert.Contains(t, mustRun(t, "import-ofx", path), "Added 2 entries (2 total)")
}

func TestImportOFX_DryRun(t *testing.T) {
	dir := setupEnv(t)
	path := writeStatement(t, dir, "statement.qfx")

	out := mustRun(t, "import-ofx", "--dry-run", "--column", "right", path)
	assert.Contains(t, out, "2024-01-15  25.50 RMB  COFFEE SHOP")
	assert.Contains(t, out, "Dry run: 2 entries would be added")

	assert.Contains(t, mustRun(t, "summary"), "Entries: 0")
}

func TestImportOFX_NoFiles(t *testing.T) {
	dir := setupEnv(t)

	res := runCLI(t, "", "import-ofx", filepath.Join(dir, "missing-*.ofx"))
	require.ErrorIs(t, res.err, errNoFiles)
}

func TestCheckpointLifecycle(t *testing.T) {
	setupEnv(t)

	res := runCLI(t, "", "checkpoint", "create", "--tag", "empty")
	require.ErrorIs(t, res.err, common.ErrNotFound)

	mustRun(t, "add", "10")

	out := mustRun(t, "checkpoint", "create", "--tag", "before", "--description", "one entry")
	assert.Contains(t, out, "Created checkpoint before")
	assert.Contains(t, out, "Description: one entry")

	res = runCLI(t, "", "checkpoint", "create", "--tag", "before")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "already exists")

	out = mustRun(t, "checkpoint", "list")
	assert.Contains(t, out, "before")
	assert.Contains(t, out, "one entry")

	mustRun(t, "add", "20")
	assert.Contains(t, mustRun(t, "summary"), "Entries: 2")

	out = mustRun(t, "checkpoint", "restore", "before")
	assert.Contains(t, out, "Restored checkpoint before")
	assert.Contains(t, mustRun(t, "summary"), "Entries: 1")

	mustRun(t, "checkpoint", "delete", "before")
	assert.Contains(t, mustRun(t, "checkpoint", "list"), "No checkpoints found")

	res = runCLI(t, "", "checkpoint", "restore", "before")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "no such checkpoint")
}

func TestCheckpoint_RedisUnsupported(t *testing.T) {
	setupEnv(t)
	mr := miniredis.RunT(t)
	t.Setenv("DUALCOUNT_STORAGE_BACKEND", "redis")
	t.Setenv("DUALCOUNT_STORAGE_REDIS_ADDR", mr.Addr())

	mustRun(t, "add", "10")
	assert.Contains(t, mustRun(t, "summary"), "Entries: 1")

	res := runCLI(t, "", "checkpoint", "list")
	require.ErrorIs(t, res.err, common.ErrUnsupported)
}

func TestReset(t *testing.T) {
	tests := []struct {
		name      string
		stdin     string
		args      []string
		wantOut   string
		wantCount string
	}{
		{name: "declined", stdin: "n\n", args: []string{"reset"}, wantOut: "Reset canceled.", wantCount: "Entries: 1"},
		{name: "confirmed", stdin: "y\n", args: []string{"reset"}, wantOut: "Ledger reset", wantCount: "Entries: 0"},
		{name: "forced", args: []string{"reset", "--force"}, wantOut: "Ledger reset", wantCount: "Entries: 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t)
			mustRun(t, "add", "10")

			res := runCLI(t, tt.stdin, tt.args...)
			require.NoError(t, res.err)
			assert.Contains(t, res.stdout, tt.wantOut)
			assert.Contains(t, mustRun(t, "summary"), tt.wantCount)
		})
	}
}

func TestReset_AlreadyEmpty(t *testing.T) {
	setupEnv(t)

	out := mustRun(t, "reset")
	assert.Contains(t, out, "Nothing to reset")
}

func TestConfigFile(t *testing.T) {
	dir := setupEnv(t)
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ui:\n  left_currency: EUR\n  right_currency: JPY\n"), 0600))

	out := mustRun(t, "--config", cfgPath, "add", "3")
	assert.Contains(t, out, "Added entry 0: 3 EUR")
}

func TestRootRunsInteractiveLedger(t *testing.T) {
	dir := setupEnv(t)

	// "5", Enter, Ctrl+C.
	res := runCLI(t, "5\r\x03")
	require.NoError(t, res.err)

	assert.Contains(t, mustRun(t, "summary"), "Entries: 1 (CAD 1, RMB 0)")
	assert.FileExists(t, filepath.Join(dir, "dualcount.log"))
}

func TestVersion(t *testing.T) {
	setupEnv(t)
	assert.Equal(t, "dualcount version dev\n", mustRun(t, "version"))
}
