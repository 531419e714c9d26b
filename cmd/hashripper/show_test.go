package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

// TestRunShowCmd tests listing and managing the potfile.
func TestRunShowCmd(t *testing.T) {
	t.Parallel()

	t.Run("no potfile yet", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "db")
		stdout, _, err := executeCommand(t, "show", "--db-dir", dbDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No potfile found") {
			t.Errorf("unexpected output\n%s", stdout)
		}
	})

	t.Run("lists recovered hashes and history", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		if _, _, err := executeCommand(t, env.crackArgs(md5Abc)...); err != nil {
			t.Fatalf("crack failed: %v", err)
		}
		if _, _, err := executeCommand(t, env.crackArgs(md5Missing)...); err != nil {
			t.Fatalf("crack failed: %v", err)
		}

		stdout, _, err := executeCommand(t, "show", "--db-dir", env.dbDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Recovered plaintexts (1)") || !strings.Contains(stdout, md5Abc) {
			t.Errorf("expected one recovered hash\n%s", stdout)
		}

		stdout, _, err = executeCommand(t, "show", "--db-dir", env.dbDir, md5Abc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "[+] "+md5Abc+"  MD5  abc") {
			t.Errorf("expected plaintext line\n%s", stdout)
		}
		if !strings.Contains(stdout, "Crack history (1 runs)") {
			t.Errorf("expected history\n%s", stdout)
		}

		stdout, _, err = executeCommand(t, "show", "--db-dir", env.dbDir, md5Missing)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "not recovered") || !strings.Contains(stdout, "NOT FOUND") {
			t.Errorf("expected not recovered with a NOT FOUND run\n%s", stdout)
		}
	})

	t.Run("reports and stored report", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		if _, _, err := executeCommand(t, env.crackArgs(sha1Abc)...); err != nil {
			t.Fatalf("crack failed: %v", err)
		}

		stdout, _, err := executeCommand(t, "show", "--db-dir", env.dbDir, "--reports", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var reports []struct {
			ID     int64
			Hash   string
			Status string
		}
		if err := json.Unmarshal([]byte(stdout), &reports); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if len(reports) != 1 || reports[0].Status != "CRACKED" || reports[0].Hash != sha1Abc {
			t.Fatalf("unexpected reports %+v", reports)
		}

		stdout, _, err = executeCommand(t, "show", "--db-dir", env.dbDir, "--markdown", "--id", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "# Hashripper Report") || !strings.Contains(stdout, sha1Abc) {
			t.Errorf("expected markdown report\n%s", stdout)
		}

		if _, _, err := executeCommand(t, "show", "--db-dir", env.dbDir, "--id", "99"); err == nil {
			t.Error("expected error for unknown report ID")
		}
	})

	t.Run("forget removes the plaintext", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		if _, _, err := executeCommand(t, env.crackArgs(md5Abc)...); err != nil {
			t.Fatalf("crack failed: %v", err)
		}

		stdout, _, err := executeCommand(t, "show", "--db-dir", env.dbDir, "--forget", strings.ToUpper(md5Abc))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Removed 1 stored plaintext(s)") {
			t.Errorf("unexpected output\n%s", stdout)
		}

		stdout, _, err = executeCommand(t, "show", "--db-dir", env.dbDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No recovered plaintexts") {
			t.Errorf("expected empty potfile\n%s", stdout)
		}
	})
}
