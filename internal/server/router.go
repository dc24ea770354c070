package server

import (
	"database/sql"
	"net/http"

	"hockeycap/internal/metrics"
	"hockeycap/internal/middleware"
	"hockeycap/internal/service"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// NewRouter mounts the connect service, the cap sheet exports, /metrics and
// /healthz behind request-id and metrics middleware.
func NewRouter(capServer *CapServer, teamSvc *service.TeamService, db *sql.DB, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	path, handler := NewCapServiceHandler(capServer)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})

	rpc := c.Handler(handler)
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "*")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		rpc.ServeHTTP(w, r)
	})
	mux.Handle("GET /export/{team}/{file}", c.Handler(ExportHandler(teamSvc)))
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /healthz", HealthHandler(db))

	withMetrics := middleware.Metrics(PathLabel)
	return middleware.RequestID(logger)(withMetrics(mux))
}
