package store

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"mclauncher/internal/models"
)

func sha1Hex(b []byte) string {
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}

func TestLayout(t *testing.T) {
	root := t.TempDir()
	s := New(root)

	hash := "deadbeefcafe0123456789abcdef0123456789ab"
	p, err := s.AssetObjectPath(hash)
	if err != nil {
		t.Fatalf("AssetObjectPath error: %v", err)
	}
	if want := filepath.Join(root, "assets", "objects", "de", hash); p != want {
		t.Errorf("AssetObjectPath = %s, want %s", p, want)
	}
	p, err = s.AssetObjectPath(strings.ToUpper(hash))
	if err != nil || p != filepath.Join(root, "assets", "objects", "de", hash) {
		t.Errorf("AssetObjectPath should lowercase, got %s (%v)", p, err)
	}
	if got, want := s.AssetIndexPath("17"), filepath.Join(root, "assets", "indexes", "17.json"); got != want {
		t.Errorf("AssetIndexPath = %s, want %s", got, want)
	}
	if got, want := s.VersionJarPath("1.20.1"), filepath.Join(root, "versions", "1.20.1", "1.20.1.jar"); got != want {
		t.Errorf("VersionJarPath = %s, want %s", got, want)
	}
	if got := AssetObjectKey(strings.ToUpper(hash)); got != "de/"+hash {
		t.Errorf("AssetObjectKey = %s", got)
	}

	p, err = s.LibraryPath("com/mojang/logging/1.0.0/logging-1.0.0.jar")
	if err != nil {
		t.Fatalf("LibraryPath error: %v", err)
	}
	if want := filepath.Join(root, "libraries", "com", "mojang", "logging", "1.0.0", "logging-1.0.0.jar"); p != want {
		t.Errorf("LibraryPath = %s, want %s", p, want)
	}
	for _, bad := range []string{"", "/etc/passwd", "../outside.jar", "a/../../b.jar"} {
		if _, err := s.LibraryPath(bad); err == nil {
			t.Errorf("LibraryPath(%q) should fail", bad)
		}
	}
}

func TestAssetObjectPathRejectsBadHash(t *testing.T) {
	s := New(t.TempDir())
	for _, hash := range []string{
		"",
		"ab",
		"../../../outside",
		"../../../../../../../../../../../../../../../../../../../../tmp/x",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",
		"deadbeefcafe0123456789abcdef0123456789ab00",
	} {
		if p, err := s.AssetObjectPath(hash); err == nil {
			t.Errorf("AssetObjectPath(%q) = %s, want error", hash, p)
		}
	}
	if !IsSHA1(sha1Hex([]byte("x"))) {
		t.Error("IsSHA1 rejected a real digest")
	}
}

func TestCheckAndVerify(t *testing.T) {
	dir := t.TempDir()
	content := []byte("hello content store")
	hash := sha1Hex(content)
	path := filepath.Join(dir, "obj")

	if Check(path, hash, 0) != StatusMissing {
		t.Fatal("absent file should be missing")
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	if Check(path, hash, int64(len(content))) != StatusValid {
		t.Fatal("file should be valid")
	}
	if !Verify(path, strings.ToUpper(hash)) {
		t.Fatal("digest comparison should be case-insensitive")
	}
	if Check(path, hash, 3) != StatusCorrupt {
		t.Fatal("size mismatch should be corrupt")
	}
	if Check(path, "", 0) != StatusValid {
		t.Fatal("presence is enough without an expected digest")
	}

	content[0] ^= 0xff
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	if Check(path, hash, 0) != StatusCorrupt {
		t.Fatal("flipped byte should be corrupt")
	}
}

func TestHashFileLargerThanChunk(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789abcdef"), ChunkSize/8)
	path := filepath.Join(t.TempDir(), "big")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	got, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != sha1Hex(data) {
		t.Fatalf("HashFile = %s, want %s", got, sha1Hex(data))
	}
}

func TestWriteVerified(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "ab", "abcdef")
	good := []byte("verified payload")

	n, err := WriteVerified(dest, bytes.NewReader(good), sha1Hex(good), int64(len(good)))
	if err != nil {
		t.Fatalf("WriteVerified error: %v", err)
	}
	if n != int64(len(good)) {
		t.Fatalf("wrote %d bytes, want %d", n, len(good))
	}
	if !Verify(dest, sha1Hex(good)) {
		t.Fatal("committed object should verify")
	}
	if runtime.GOOS != "windows" {
		info, err := os.Stat(dest)
		if err != nil {
			t.Fatalf("Stat error: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0644 {
			t.Errorf("committed object mode = %o, want 644", perm)
		}
	}

	other := filepath.Join(dir, "ab", "other")
	_, err = WriteVerified(other, bytes.NewReader([]byte("tampered")), sha1Hex(good), 0)
	if !errors.Is(err, models.ErrIntegrityMismatch) {
		t.Fatalf("error = %v, want ErrIntegrityMismatch", err)
	}
	if _, err := os.Stat(other); !os.IsNotExist(err) {
		t.Fatal("mismatched object must not be renamed into place")
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "ab"))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temporary file %s left behind", e.Name())
		}
	}
}
