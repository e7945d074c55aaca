// Health, status and control handlers for the engine.

package engine

import (
	"net/http"
	"strconv"
	"time"

	"github.com/getmockd/mockwatchlogs/pkg/httputil"
	"github.com/getmockd/mockwatchlogs/pkg/logstore"
	"github.com/getmockd/mockwatchlogs/pkg/requestlog"
)

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Status        string         `json:"status"`
	UptimeSeconds int            `json:"uptimeSeconds"`
	Store         logstore.Stats `json:"store"`
	RequestLog    int            `json:"requestLog"`
}

// handleHealth handles the liveness probe endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, StatusResponse{
		Status:        "ok",
		UptimeSeconds: s.Uptime(),
		Store:         s.Stats(),
		RequestLog:    s.RequestLogCount(),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	if err := s.Reset(); err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "reset_failed", err.Error())
		return
	}
	httputil.WriteOK(w, s.Stats())
}

// handleListRequests serves the request history. Query parameters: action,
// logGroupName, status, hasError, limit, offset.
func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := &requestlog.Filter{
		Action:       q.Get("action"),
		LogGroupName: q.Get("logGroupName"),
	}

	var err error
	if filter.StatusCode, err = intParam(q.Get("status")); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid_status", err.Error())
		return
	}
	if filter.Limit, err = intParam(q.Get("limit")); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid_limit", err.Error())
		return
	}
	if filter.Offset, err = intParam(q.Get("offset")); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid_offset", err.Error())
		return
	}
	if v := q.Get("hasError"); v != "" {
		hasError, err := strconv.ParseBool(v)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "invalid_has_error", err.Error())
			return
		}
		filter.HasError = &hasError
	}

	entries := s.RequestLogs(filter)
	httputil.WriteOK(w, map[string]any{
		"requests": entries,
		"count":    len(entries),
		"total":    s.RequestLogCount(),
	})
}

func (s *Server) handleClearRequests(w http.ResponseWriter, _ *http.Request) {
	s.ClearRequestLogs()
	httputil.WriteNoContent(w)
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
