// File: backend/internal/api/config_handlers.go
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/contactflow/backend/internal/config"
)

// GetCrawlerConfigHandler retrieves the server default crawler configuration.
func (h *APIHandler) GetCrawlerConfigHandler(w http.ResponseWriter, r *http.Request) {
	h.configMutex.RLock()
	crawlerConfigJSON := config.ConvertCrawlerConfigToJSON(h.Config.Crawler)
	h.configMutex.RUnlock()
	respondWithJSON(w, http.StatusOK, crawlerConfigJSON)
}

// UpdateCrawlerConfigHandler replaces the server default crawler configuration
// and persists it. Fields left unset in the request fall back to defaults.
func (h *APIHandler) UpdateCrawlerConfigHandler(w http.ResponseWriter, r *http.Request) {
	var reqJSON config.CrawlerConfigJSON
	if err := json.NewDecoder(r.Body).Decode(&reqJSON); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error(), "invalid_input")
		return
	}
	defer r.Body.Close()

	updatedCrawlerConfig := config.ConvertJSONToCrawlerConfig(reqJSON)
	h.configMutex.Lock()
	h.Config.Crawler = updatedCrawlerConfig
	configToSave := *h.Config
	h.configMutex.Unlock()

	if err := config.Save(&configToSave, configToSave.GetLoadedFromPath()); err != nil {
		log.Printf("API Error: Failed to save updated crawler config: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to save crawler configuration", "internal_error")
		return
	}
	log.Printf("API: Updated server default crawler configuration.")
	respondWithJSON(w, http.StatusOK, config.ConvertCrawlerConfigToJSON(updatedCrawlerConfig))
}
