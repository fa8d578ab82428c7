// Package store owns the on-disk layout of the launcher's content and
// verifies objects against their expected SHA-1 digests.
package store

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mclauncher/internal/models"
)

// ChunkSize is the read size used when hashing files.
const ChunkSize = 32 * 1024

type Status int

const (
	StatusMissing Status = iota
	StatusCorrupt
	StatusValid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusCorrupt:
		return "corrupt"
	default:
		return "missing"
	}
}

/**
 * Content store rooted at the game directory
 * @description
 * - <root>/assets/indexes/<id>.json
 * - <root>/assets/objects/<hash[0:2]>/<hash>
 * - <root>/libraries/<resolved-path>
 * - <root>/versions/<id>/<id>.{json,jar}
 */
type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) AssetsDir() string {
	return filepath.Join(s.root, "assets")
}

func (s *Store) AssetIndexPath(id string) string {
	return filepath.Join(s.AssetsDir(), "indexes", id+".json")
}

// IsSHA1 reports whether s is a 40 character hex digest.
func IsSHA1(s string) bool {
	if len(s) != sha1.Size*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// AssetObjectPath buckets an object under the first two characters of its hash.
func (s *Store) AssetObjectPath(hash string) (string, error) {
	if !IsSHA1(hash) {
		return "", fmt.Errorf("invalid asset object hash '%s'", hash)
	}
	hash = strings.ToLower(hash)
	return filepath.Join(s.AssetsDir(), "objects", hash[:2], hash), nil
}

// AssetObjectKey is the "<hash[0:2]>/<hash>" suffix used by the remote object store.
// The hash must already satisfy IsSHA1.
func AssetObjectKey(hash string) string {
	hash = strings.ToLower(hash)
	return hash[:2] + "/" + hash
}

func (s *Store) LibrariesDir() string {
	return filepath.Join(s.root, "libraries")
}

/**
 * Map a resolved library path into the libraries root
 * @param {string} rel - Slash-separated path relative to the libraries root
 * @returns {string} Absolute local path
 * @returns {error} Error when the path is absolute or escapes the root
 */
func (s *Store) LibraryPath(rel string) (string, error) {
	if rel == "" || filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") {
		return "", fmt.Errorf("invalid library path '%s'", rel)
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("library path '%s' escapes the libraries root", rel)
	}
	return filepath.Join(s.LibrariesDir(), clean), nil
}

func (s *Store) VersionsDir() string {
	return filepath.Join(s.root, "versions")
}

func (s *Store) VersionDir(id string) string {
	return filepath.Join(s.VersionsDir(), id)
}

func (s *Store) VersionJSONPath(id string) string {
	return filepath.Join(s.VersionDir(id), id+".json")
}

func (s *Store) VersionJarPath(id string) string {
	return filepath.Join(s.VersionDir(id), id+".jar")
}

/**
 * Compute the SHA-1 digest of a file
 * @param {string} path - File to hash
 * @returns {string} Lowercase hex digest
 * @description
 * - Streams the file in ChunkSize reads, never buffering it whole
 */
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return HashReader(f)
}

// HashReader drains r and returns its lowercase hex SHA-1.
func HashReader(r io.Reader) (string, error) {
	h := sha1.New()
	buf := make([]byte, ChunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SameHash compares digests case-insensitively.
func SameHash(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

/**
 * Classify an object on disk
 * @param {string} path - Local path
 * @param {string} expected - Expected SHA-1; empty means only presence can be checked
 * @param {int64} size - Expected size; 0 means unknown
 * @returns {Status} missing, corrupt or valid
 */
func Check(path string, expected string, size int64) Status {
	st, err := os.Stat(path)
	if err != nil || st.IsDir() {
		return StatusMissing
	}
	if size > 0 && st.Size() != size {
		return StatusCorrupt
	}
	if expected == "" {
		return StatusValid
	}
	actual, err := HashFile(path)
	if err != nil || !SameHash(actual, expected) {
		return StatusCorrupt
	}
	return StatusValid
}

// Verify reports whether the file at path hashes to expected.
func Verify(path string, expected string) bool {
	return Check(path, expected, 0) == StatusValid
}

// CheckTask classifies a task's destination.
func CheckTask(t models.Task) Status {
	return Check(t.Dest, t.SHA1, t.Size)
}
