package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/app"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/buildinfo"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/httpjson"
)

const defaultRequestTimeout = 30 * time.Second

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, buildinfo.Current())
}

// writeAppError traduit une erreur applicative en réponse {"error","code"}.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	code := app.ErrorCode(err)
	status := http.StatusInternalServerError
	switch code {
	case app.CodeUnknownShow:
		status = http.StatusNotFound
	case app.CodeFetchFailed, app.CodeParseFailed:
		status = http.StatusBadGateway
	case app.CodeInvalidIndex:
		status = http.StatusBadRequest
	}
	if ctxErr := r.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		status = http.StatusGatewayTimeout
	}
	if status >= 500 {
		hlog.FromRequest(r).Warn().Err(err).Str("code", code).Msg("request failed")
	}
	httpjson.WriteCodedError(w, status, code, err.Error())
}

func accessLogFn(r *http.Request, status, size int, duration time.Duration) {
	logger := hlog.FromRequest(r)
	logger.Info().
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("http")
}
