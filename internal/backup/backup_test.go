package backup

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

func writeLedger(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCreateNamingAndContent(t *testing.T) {
	dir := t.TempDir()
	src := writeLedger(t, dir, "ledger.csv", "a,b\n1,2\n")

	got, err := Create(src)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if filepath.Dir(got) != filepath.Join(dir, "backups") {
		t.Fatalf("backup dir=%s", filepath.Dir(got))
	}
	pattern := regexp.MustCompile(`^ledger_backup_\d{8}_\d{6}\.csv$`)
	if !pattern.MatchString(filepath.Base(got)) {
		t.Fatalf("backup name=%q", filepath.Base(got))
	}

	content, err := os.ReadFile(got)
	if err != nil || string(content) != "a,b\n1,2\n" {
		t.Fatalf("backup content=%q err=%v", content, err)
	}
}

func TestCreateMissingSource(t *testing.T) {
	if _, err := Create(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("missing source must fail")
	}
}

func TestRecentNewestFirstAndLimited(t *testing.T) {
	dir := t.TempDir()
	src := writeLedger(t, dir, "ledger.csv", "x\n")

	// fabricate backups with known timestamps
	bdir := filepath.Join(dir, "backups")
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	stamps := []string{"20240101_090000", "20240301_090000", "20240201_090000", "20240401_090000"}
	for _, s := range stamps {
		writeLedger(t, bdir, "ledger_backup_"+s+".csv", "x\n")
	}
	// unrelated files are ignored
	writeLedger(t, bdir, "other_backup_20240501_090000.csv", "x\n")
	writeLedger(t, bdir, "ledger_backup_20240501_090000.xlsx", "x\n")

	got, err := Recent(src, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len=%d, want 3", len(got))
	}
	wantOrder := []string{
		"ledger_backup_20240401_090000.csv",
		"ledger_backup_20240301_090000.csv",
		"ledger_backup_20240201_090000.csv",
	}
	for i, w := range wantOrder {
		if filepath.Base(got[i]) != w {
			t.Fatalf("got[%d]=%s, want %s", i, filepath.Base(got[i]), w)
		}
	}
}

func TestRecentNoBackupsYet(t *testing.T) {
	dir := t.TempDir()
	src := writeLedger(t, dir, "ledger.csv", "x\n")
	got, err := Recent(src, 3)
	if err != nil || got != nil {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestCreateThenRecent(t *testing.T) {
	dir := t.TempDir()
	src := writeLedger(t, dir, "ledger.csv", "v1\n")

	first, err := Create(src)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// same-second timestamps collide in the name, wait out the clock
	time.Sleep(1100 * time.Millisecond)
	writeLedger(t, dir, "ledger.csv", "v2\n")
	second, err := Create(src)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := Recent(src, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 || got[0] != second || got[1] != first {
		t.Fatalf("got %v, want [%s %s]", got, second, first)
	}
}
