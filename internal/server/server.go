// Package server публикует инструменты калькулятора как JSON-эндпоинты HTTP
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cloud-ru/mcp-mutualfund-go/internal/metrics"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/tools"
)

// MaxBodyBytes - предельный размер тела запроса
const MaxBodyBytes = 64 << 10

// ServiceName - имя сервиса в ответе /health
const ServiceName = "mcp-mutualfund"

// ToolInfo описывает инструмент в ответе GET /api/v1/tools
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type errorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

// NewRouter создает маршрутизатор. Тело POST /api/v1/tools/{tool} - JSON-объект
// параметров, ответ - JSON-результат инструмента.
func NewRouter(handlers map[string]tools.ToolHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(metrics.Middleware)
	r.Use(requestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": ServiceName})
	})

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/tools", func(w http.ResponseWriter, r *http.Request) {
			list := make([]ToolInfo, 0, len(handlers))
			for _, name := range tools.Names() {
				if _, ok := handlers[name]; ok {
					list = append(list, ToolInfo{Name: name, Description: tools.Descriptions[name]})
				}
			}
			writeJSON(w, http.StatusOK, list)
		})

		r.Post("/tools/{tool}", func(w http.ResponseWriter, r *http.Request) {
			name := chi.URLParam(r, "tool")
			handler, ok := handlers[name]
			if !ok {
				writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown tool %q", name), Type: "not_found"})
				return
			}

			var params map[string]interface{}
			dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
			if err := dec.Decode(&params); err != nil || params == nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body must be a JSON object", Type: "validation"})
				return
			}

			result, err := handler(r.Context(), params)
			if err != nil {
				kind := tools.ErrorKind(err)
				writeJSON(w, statusFor(kind), errorResponse{Error: err.Error(), Type: kind})
				return
			}

			writeJSON(w, http.StatusOK, result)
		})
	})

	return r
}

func statusFor(kind string) int {
	switch kind {
	case "validation":
		return http.StatusBadRequest
	case "degenerate":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
