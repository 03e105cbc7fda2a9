package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

// ClientInfo summarizes the calling client for audit trail enrichment.
// It intentionally excludes the raw User-Agent string and IP address for
// data minimization; the summary is stable enough for log correlation.
type ClientInfo struct {
	Browser  string
	OS       string
	Platform string
}

// String renders the client info as a compact "browser/os/platform" label.
func (c ClientInfo) String() string {
	if c.Browser == "" && c.OS == "" && c.Platform == "" {
		return ""
	}
	return c.Browser + "/" + c.OS + "/" + c.Platform
}

type clientInfoKey struct{}

// ClientMetadata parses the User-Agent header and stores a ClientInfo summary
// in the request context for handlers that enrich audit entries.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("User-Agent")
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		ua := useragent.New(raw)
		browser, _ := ua.Browser()

		platform := "desktop"
		if ua.Mobile() {
			platform = "mobile"
		} else if ua.Bot() {
			platform = "bot"
		}

		info := ClientInfo{
			Browser:  normalizeLabel(browser),
			OS:       normalizeLabel(ua.OS()),
			Platform: platform,
		}

		ctx := context.WithValue(r.Context(), clientInfoKey{}, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientInfo retrieves the parsed client info from the context.
func GetClientInfo(ctx context.Context) ClientInfo {
	if info, ok := ctx.Value(clientInfoKey{}).(ClientInfo); ok {
		return info
	}
	return ClientInfo{}
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "unknown"
	}
	return s
}
