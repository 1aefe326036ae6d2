package api

import (
	"net/http"
	"time"

	"github.com/maksimkurb/cgproxy/src/internal/log"
)

// JSONContentType middleware enforces JSON content type for requests with body.
func JSONContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			if r.ContentLength > 0 {
				ct := r.Header.Get("Content-Type")
				if ct != "application/json" && ct != "" {
					WriteInvalidRequest(w, "Content-Type must be application/json")
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Logger middleware logs all HTTP requests.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		if cred, ok := PeerFromContext(r.Context()); ok {
			log.Infof("%s %s - %d (%v) pid=%d uid=%d", r.Method, r.URL.Path, wrapped.statusCode, duration, cred.PID, cred.UID)
		} else {
			log.Infof("%s %s - %d (%v)", r.Method, r.URL.Path, wrapped.statusCode, duration)
		}
	})
}

// Recovery middleware recovers from panics and returns a 500 error.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Errorf("Panic recovered: %v", err)
				WriteInternalError(w, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// TrustedPeerOnly middleware rejects requests unless the peer is root or
// runs under the server's uid. The router applies it to routes that change
// the configuration.
func TrustedPeerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cred, ok := PeerFromContext(r.Context())
		if !ok {
			log.Warnf("Access denied: unknown peer for %s %s", r.Method, r.URL.Path)
			WriteForbidden(w, "Access denied: peer credentials unavailable")
			return
		}
		if !isTrustedPeer(cred) {
			log.Warnf("Access denied for uid %d (pid %d)", cred.UID, cred.PID)
			WriteForbidden(w, "Access denied: only root may modify the configuration")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
