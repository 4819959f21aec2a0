// File: backend/internal/api/router.go
package api

import (
	"net/http"

	"github.com/contactflow/backend/internal/config"
	"github.com/gorilla/mux"
)

func NewRouter(cfg *config.AppConfig) *mux.Router {
	router := mux.NewRouter()
	apiHandler := NewAPIHandler(cfg)

	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	router.HandleFunc("/ping", apiHandler.PingHandler).Methods(http.MethodGet, http.MethodOptions)

	apiV1 := router.PathPrefix("/api/v1").Subrouter()
	apiV1.Use(APIKeyAuthMiddleware(cfg.Server.APIKey))

	// Contact Extraction
	apiV1.HandleFunc("/extract/contact", apiHandler.ExtractContactHandler).Methods(http.MethodPost, http.MethodOptions)
	apiV1.HandleFunc("/extract/contact/stream", apiHandler.StreamExtractContactHandler).Methods(http.MethodGet, http.MethodOptions)

	// Configuration Management (Server Defaults)
	apiV1.HandleFunc("/config/crawler", apiHandler.GetCrawlerConfigHandler).Methods(http.MethodGet, http.MethodOptions)
	apiV1.HandleFunc("/config/crawler", apiHandler.UpdateCrawlerConfigHandler).Methods(http.MethodPut, http.MethodOptions)

	return router
}
