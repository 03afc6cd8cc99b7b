// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strings"
)

// SecureHeaders adds security headers to every response. The admin UI runs
// embedded in the Shopify admin, so framing is restricted with a CSP
// frame-ancestors list naming the shop and admin.shopify.com instead of
// X-Frame-Options. An empty shop allows same-origin framing only.
func SecureHeaders(shop string) func(http.Handler) http.Handler {
	ancestors := []string{"'self'"}
	if shop != "" {
		ancestors = append(ancestors, "https://"+shop, "https://admin.shopify.com")
	}
	csp := "frame-ancestors " + strings.Join(ancestors, " ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Content-Security-Policy", csp)
			h.Set("X-XSS-Protection", "0")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			next.ServeHTTP(w, r)
		})
	}
}
