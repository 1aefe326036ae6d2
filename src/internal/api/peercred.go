package api

import (
	"context"
	"net"
	"os"
)

// PeerCredentials identifies the process on the other end of a unix socket.
type PeerCredentials struct {
	PID int32
	UID uint32
	GID uint32
}

type peerCredentialsKey struct{}

// ContextWithPeer attaches peer credentials to ctx.
func ContextWithPeer(ctx context.Context, cred PeerCredentials) context.Context {
	return context.WithValue(ctx, peerCredentialsKey{}, cred)
}

// PeerFromContext returns the credentials attached by ContextWithPeer.
func PeerFromContext(ctx context.Context) (PeerCredentials, bool) {
	cred, ok := ctx.Value(peerCredentialsKey{}).(PeerCredentials)
	return cred, ok
}

// connContext is used as http.Server.ConnContext.
func connContext(ctx context.Context, c net.Conn) context.Context {
	uc, ok := c.(*net.UnixConn)
	if !ok {
		return ctx
	}
	cred, err := peerCredentials(uc)
	if err != nil {
		return ctx
	}
	return ContextWithPeer(ctx, cred)
}

// isTrustedPeer allows root and the uid running the server.
func isTrustedPeer(cred PeerCredentials) bool {
	return cred.UID == 0 || int(cred.UID) == os.Getuid()
}
