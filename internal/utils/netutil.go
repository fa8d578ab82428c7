package utils

import (
	"net"
	"time"
)

/**
 * Check whether nothing is accepting connections on a TCP address
 * @param {string} address - host:port; an empty host means localhost
 * @returns {bool} true when the address can be used by a new listener
 */
func CheckPortAvailable(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return false
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port), time.Second)
	if err != nil {
		return true
	}
	conn.Close()
	return false
}
