package store

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mclauncher/internal/models"
)

/**
 * Stream r into dest, accepting it only when it matches the expected digest
 * @param {string} dest - Final location
 * @param {io.Reader} r - Content stream
 * @param {string} expected - Expected SHA-1; empty accepts any content
 * @param {int64} size - Expected size; 0 means unknown
 * @returns {int64} Bytes written
 * @returns {error} ErrIntegrityMismatch wrapped on digest or size mismatch
 * @description
 * - Writes to a temporary sibling of dest in ChunkSize pieces
 * - Renames into place only after verification, so readers never observe
 *   a partial or corrupt object
 * - The temporary file is removed on every failure path
 */
func WriteVerified(dest string, r io.Reader, expected string, size int64) (int64, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("MkdirAll('%s') error: %v", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(dest)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp for '%s' error: %v", dest, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	hasher := sha1.New()
	buf := make([]byte, ChunkSize)
	n, err := io.CopyBuffer(tmp, io.TeeReader(r, hasher), buf)
	if err != nil {
		tmp.Close()
		return n, err
	}
	// CreateTemp opens 0600; committed objects are world readable
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return n, err
	}
	if err := tmp.Close(); err != nil {
		return n, err
	}

	if size > 0 && n != size {
		return n, fmt.Errorf("%w: '%s' size %d, expected %d", models.ErrIntegrityMismatch, dest, n, size)
	}
	actual := hex.EncodeToString(hasher.Sum(nil))
	if expected != "" && !SameHash(actual, expected) {
		return n, fmt.Errorf("%w: '%s' sha1 %s, expected %s", models.ErrIntegrityMismatch, dest, actual, expected)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return n, fmt.Errorf("rename '%s' error: %v", dest, err)
	}
	committed = true
	return n, nil
}

// WriteFileAtomic replaces path with data through a temporary sibling.
func WriteFileAtomic(path string, data []byte) error {
	_, err := WriteVerified(path, bytes.NewReader(data), "", 0)
	return err
}
