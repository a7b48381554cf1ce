package server

import (
	"fmt"
	"net"
)

// Bind opens the IPv4 TCP listener for addr. A host of 0.0.0.0 listens on
// every interface; port 0 lets the kernel choose.
func Bind(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp4", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", addr, err)
	}
	return ln, nil
}
