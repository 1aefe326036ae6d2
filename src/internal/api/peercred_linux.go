//go:build linux

package api

import (
	"net"

	"golang.org/x/sys/unix"
)

// peerCredentials reads SO_PEERCRED from a connected unix socket.
func peerCredentials(conn *net.UnixConn) (PeerCredentials, error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return PeerCredentials{}, err
	}

	var ucred *unix.Ucred
	var credErr error
	if err := raw.Control(func(fd uintptr) {
		ucred, credErr = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	}); err != nil {
		return PeerCredentials{}, err
	}
	if credErr != nil {
		return PeerCredentials{}, credErr
	}

	return PeerCredentials{PID: ucred.Pid, UID: ucred.Uid, GID: ucred.Gid}, nil
}
