package http

import (
	"net/http"

	"github.com/AlibekovAA/event-registration/internal/common/constants"
	"github.com/AlibekovAA/event-registration/internal/common/httpmetrics"
	"github.com/AlibekovAA/event-registration/internal/common/logger"
)

type BaseOptions struct {
	CORSOrigins    []string
	MaxRequestSize int64
}

func BuildBaseHandler(log *logger.Logger, opts BaseOptions, handler http.Handler) http.Handler {
	if opts.MaxRequestSize <= 0 {
		opts.MaxRequestSize = constants.DefaultMaxRequestSize
	}

	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(opts.MaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware
	csp := ContentSecurityPolicyMiddleware("")
	corsMiddleware := CORSMiddleware(opts.CORSOrigins)

	return securityHeaders(csp(corsMiddleware(traceID(recovery(maxRequestSize(metrics.Wrap(handler)))))))
}
