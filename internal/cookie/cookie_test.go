package cookie

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCookie(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "osu_session.cookie")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReload(t *testing.T) {
	jar := NewJar(writeCookie(t, "  session-value\n"))

	if got := jar.Session(); got != "" {
		t.Errorf("Expected empty session before Reload, got %q", got)
	}

	if err := jar.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if got := jar.Session(); got != "session-value" {
		t.Errorf("Expected trimmed session, got %q", got)
	}
}

func TestReloadPicksUpRotation(t *testing.T) {
	path := writeCookie(t, "old-session")
	jar := NewJar(path)
	if err := jar.Reload(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("new-session"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := jar.Reload(); err != nil {
		t.Fatal(err)
	}
	if got := jar.Session(); got != "new-session" {
		t.Errorf("Expected rotated session, got %q", got)
	}
}

func TestReloadDecodesDoubleEncoded(t *testing.T) {
	// Browser exports sometimes percent-encode the already-encoded value.
	jar := NewJar(writeCookie(t, "abc%253D%253Dxyz"))
	if err := jar.Reload(); err != nil {
		t.Fatal(err)
	}
	if got := jar.Session(); got != "abc%3D%3Dxyz" {
		t.Errorf("Expected one decode pass, got %q", got)
	}
}

func TestReloadLeavesSingleEncodedAlone(t *testing.T) {
	jar := NewJar(writeCookie(t, "abc%3D%3Dxyz"))
	if err := jar.Reload(); err != nil {
		t.Fatal(err)
	}
	if got := jar.Session(); got != "abc%3D%3Dxyz" {
		t.Errorf("Expected value unchanged, got %q", got)
	}
}

func TestReloadErrors(t *testing.T) {
	jar := NewJar(filepath.Join(t.TempDir(), "missing.cookie"))
	if err := jar.Reload(); err == nil {
		t.Error("Expected an error for a missing cookie file")
	}

	jar = NewJar(writeCookie(t, "   \n"))
	if err := jar.Reload(); err == nil {
		t.Error("Expected an error for an empty cookie file")
	}
}

func TestReloadKeepsOldSessionOnError(t *testing.T) {
	path := writeCookie(t, "good-session")
	jar := NewJar(path)
	if err := jar.Reload(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(""), 0600); err != nil {
		t.Fatal(err)
	}
	if err := jar.Reload(); err == nil {
		t.Error("Expected an error for the emptied file")
	}
	if got := jar.Session(); got != "good-session" {
		t.Errorf("Expected the previous session kept, got %q", got)
	}
}
