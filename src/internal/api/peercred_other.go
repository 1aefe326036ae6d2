//go:build !linux

package api

import (
	"fmt"
	"net"
)

func peerCredentials(conn *net.UnixConn) (PeerCredentials, error) {
	return PeerCredentials{}, fmt.Errorf("peer credentials are not supported on this platform")
}
