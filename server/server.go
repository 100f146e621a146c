// Copyright 2024 The vvSQL Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server is the thin HTTP wrapper of spec.md §6 over the
// compiler core: it never contains pipeline logic itself, only request
// decoding, status-code mapping, and structured request logging.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/vvsql/vvsql/compiler"
	"github.com/vvsql/vvsql/emit"
	verrors "github.com/vvsql/vvsql/errors"
)

// Version can be set at build time (e.g. via -ldflags); it defaults to "dev".
var Version = "dev"

// Server holds the dependencies every handler needs.
type Server struct {
	Compiler   *compiler.Compiler
	DefaultURI string
	Log        *logrus.Logger
}

// New builds the chi router for the HTTP surface of spec.md §6.
func New(s *Server) http.Handler {
	if s.Log == nil {
		s.Log = logrus.New()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.Log))
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/query", s.handleQuery)
		r.Post("/parse", s.handleParse)
		r.Get("/health", s.handleHealth)
		r.Get("/version", s.handleVersion)
	})
	return r
}

type queryRequest struct {
	Query  string `json:"query"`
	Reader string `json:"reader"`
	Writer string `json:"writer"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "IOError", err.Error())
		return
	}

	connURI := req.Reader
	if connURI == "" {
		connURI = s.DefaultURI
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	res, err := s.Compiler.Compile(ctx, req.Query, connURI)
	if err != nil {
		writeCompileError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"specs":     res.Specs,
		"metadata":  res.Metadata,
		"documents": res.Documents,
	})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "IOError", err.Error())
		return
	}

	specs, _, err := s.Compiler.Parse(req.Query)
	if err != nil {
		writeCompileError(w, err)
		return
	}
	writeSuccess(w, specs)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{
		"version":        Version,
		"vegaLiteSchema": emit.SchemaURL,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   data,
	})
}

// writeCompileError maps a vvSQL errors.Error (or list) to an HTTP
// status and the {type, message} body of spec.md §6; every error kind
// reaches the client as 422 except malformed request I/O and backend
// failures, which surface as 400 and 502 respectively.
func writeCompileError(w http.ResponseWriter, err error) {
	kind, msg := "Error", err.Error()
	status := http.StatusUnprocessableEntity

	if list, ok := err.(*verrors.List); ok && list.Len() > 0 {
		err = list.Errs()[0]
	}
	if ke, ok := err.(interface{ Kind() verrors.Kind }); ok {
		kind = ke.Kind().String()
		switch ke.Kind() {
		case verrors.KindBackend:
			status = http.StatusBadGateway
		case verrors.KindIO:
			status = http.StatusBadRequest
		}
	}
	writeError(w, status, kind, msg)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, map[string]interface{}{
		"status": "error",
		"error": map[string]string{
			"type":    kind,
			"message": message,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   ww.Status(),
				"duration": time.Since(start).String(),
			}).Info("request handled")
		})
	}
}
