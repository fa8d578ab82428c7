package server

import (
	"net"
	"os"
	"path/filepath"
	"runtime"

	"mclauncher/internal/logger"
)

type ListenAddr struct {
	Network string
	Address string
}

/**
 * Test if unix sockets can be created on this system
 * @returns {bool} Always true outside Windows; on Windows a probe socket is created in the temp dir
 */
func IsUnixSocketSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	probe := filepath.Join(os.TempDir(), "mclauncher-probe.sock")
	os.Remove(probe)
	l, err := net.Listen("unix", probe)
	if err != nil {
		return false
	}
	l.Close()
	os.Remove(probe)
	return true
}

func prepareSocket(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

/**
 * Open a listener for every address
 * @param {[]ListenAddr} addrs - tcp or unix addresses
 * @returns {[]net.Listener} Listeners that could be opened, in order
 * @returns {error} Last failure; addresses that fail are logged and skipped
 * @description
 * - A stale unix socket file is removed and its directory created first
 * - Unix sockets are restricted to the current user (0600)
 */
func CreateListeners(addrs []ListenAddr) ([]net.Listener, error) {
	var listeners []net.Listener
	var lastErr error
	for _, addr := range addrs {
		if addr.Network == "unix" {
			if err := prepareSocket(addr.Address); err != nil {
				logger.Errorf("Failed to prepare socket '%s': %v", addr.Address, err)
				lastErr = err
				continue
			}
		}
		l, err := net.Listen(addr.Network, addr.Address)
		if err != nil {
			logger.Errorf("Failed to create listener on %s://%s: %v", addr.Network, addr.Address, err)
			lastErr = err
			continue
		}
		if addr.Network == "unix" {
			os.Chmod(addr.Address, 0o600)
		}
		listeners = append(listeners, l)
	}
	return listeners, lastErr
}
