package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/abhisek/learnloop/internal/agent"
	"github.com/go-chi/chi/v5/middleware"
)

// maxRequestBytes caps an agent request body.
const maxRequestBytes = 1 << 20

type successResp struct {
	Success  bool            `json:"success"`
	Response json.RawMessage `json:"response"`
}

type errResp struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errResp{Error: msg, Details: details})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.opts.Cache != nil {
		if err := s.opts.Cache.Ping(r.Context()); err != nil {
			s.logger.Warn("cache not ready", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "cache unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleAgent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "Could not read request", err.Error())
		return
	}

	var req agent.Request
	if err := json.Unmarshal(body, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "Request body must be JSON", err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeErr(w, http.StatusBadRequest, "message is required", "")
		return
	}
	rt, err := agent.ParseRequestType(string(req.RequestType))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "Unknown request type", err.Error())
		return
	}
	req.RequestType = rt
	if s.opts.AgentID != "" && req.AgentID != s.opts.AgentID {
		writeErr(w, http.StatusForbidden, "Unknown agent", req.AgentID)
		return
	}

	ctx := r.Context()
	log := s.logger.With("request_id", middleware.GetReqID(r.Context()), "request_type", req.RequestType)

	useCache := s.opts.Cache != nil && cacheable(req.RequestType)
	key := cacheKey(req)
	if useCache {
		payload, ok, err := s.opts.Cache.Get(ctx, key)
		if err != nil {
			log.Warn("cache read failed", "error", err)
		} else if ok {
			log.Debug("cache hit")
			writeJSON(w, http.StatusOK, successResp{Success: true, Response: payload})
			return
		}
	}

	payload, err := s.opts.Responder.Respond(ctx, req)
	if err != nil {
		status, msg := s.opts.Classify(err)
		log.Error("agent request failed", "status", status, "error", err)
		writeErr(w, status, msg, "")
		return
	}

	if useCache {
		if err := s.opts.Cache.Set(ctx, key, payload); err != nil {
			log.Warn("cache write failed", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, successResp{Success: true, Response: payload})
}
