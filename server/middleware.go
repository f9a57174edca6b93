package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/giygas/medicines-admin/config"
	"github.com/giygas/medicines-admin/handlers"
	"github.com/giygas/medicines-admin/logging"
)

type peerKey struct{}

// RealIPMiddleware sets RemoteAddr to the client IP, without port.
// X-Forwarded-For is only read when the peer is loopback, i.e. a reverse
// proxy on the same host. The socket host is kept for the rate limiter.
func RealIPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		peer := socketHost(r.RemoteAddr)
		r.RemoteAddr = peer

		if xff := r.Header.Get("X-Forwarded-For"); xff != "" && isLoopback(peer) {
			if idx := strings.Index(xff, ","); idx != -1 {
				xff = xff[:idx]
			}
			if client := strings.TrimSpace(xff); client != "" {
				r.RemoteAddr = client
			}
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), peerKey{}, peer)))
	})
}

// clientKey identifies the connection a request came in on. Forwarded
// headers are ignored so a client cannot choose its own bucket.
func clientKey(r *http.Request) string {
	if peer, ok := r.Context().Value(peerKey{}).(string); ok {
		return peer
	}
	return socketHost(r.RemoteAddr)
}

func socketHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// LocalOnlyMiddleware rejects clients outside loopback and private networks.
// The console has no authentication, so it must never face the internet.
func LocalOnlyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := socketHost(r.RemoteAddr)

		if isLoopback(host) {
			next.ServeHTTP(w, r)
			return
		}
		if ip := net.ParseIP(host); ip != nil && ip.IsPrivate() {
			next.ServeHTTP(w, r)
			return
		}

		logging.Warn("Non-local access blocked", "remote_addr", r.RemoteAddr, "user_agent", r.UserAgent())
		http.Error(w, "Access restricted to the local network", http.StatusForbidden)
	})
}

// RequestSizeMiddleware limits the size of request headers and body
func RequestSizeMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if contentLength := r.Header.Get("Content-Length"); contentLength != "" {
				if length, err := strconv.ParseInt(contentLength, 10, 64); err == nil && length > cfg.MaxRequestBody {
					logging.Warn("Request body too large",
						"content_length", length,
						"max_allowed", cfg.MaxRequestBody,
						"remote_addr", r.RemoteAddr)

					handlers.RespondWithError(w, http.StatusRequestEntityTooLarge,
						fmt.Sprintf("Request body too large. Maximum allowed size is %d bytes", cfg.MaxRequestBody))
					return
				}
			}

			// Rough estimate, keys plus values
			headerSize := int64(0)
			for key, values := range r.Header {
				headerSize += int64(len(key))
				for _, value := range values {
					headerSize += int64(len(value))
				}
			}

			if headerSize > cfg.MaxHeaderSize {
				logging.Warn("Request headers too large",
					"header_size", headerSize,
					"max_allowed", cfg.MaxHeaderSize,
					"remote_addr", r.RemoteAddr)

				handlers.RespondWithError(w, http.StatusRequestHeaderFieldsTooLarge,
					fmt.Sprintf("Request headers too large. Maximum allowed size is %d bytes", cfg.MaxHeaderSize))
				return
			}

			// Chunked bodies carry no Content-Length
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxRequestBody)
			}

			next.ServeHTTP(w, r)
		})
	}
}
