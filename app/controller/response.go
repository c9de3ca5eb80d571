package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"nk-catalog/service"
)

// errorResponse is the JSON body of a failed API request
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Error encoding JSON response: %v", err)
	}
}

func writeHTML(w http.ResponseWriter, status int, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Printf("❌ Error writing HTML response: %v", err)
	}
}

// errorStatus maps service errors to an HTTP status and a user-facing message
func errorStatus(err error) (int, string) {
	var apiErr *service.APIError
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return http.StatusNotFound, "Товар не найден"
	case errors.Is(err, service.ErrMissingName):
		return http.StatusUnprocessableEntity, "Отсутствует наименование товара"
	case errors.Is(err, service.ErrMissingTnved):
		return http.StatusUnprocessableEntity, "Отсутствует ТН ВЭД"
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusBadGateway, "Ошибка авторизации в МойСклад"
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, "Ошибка при загрузке данных: " + apiErr.Error()
	}
	return http.StatusInternalServerError, err.Error()
}

func writeError(w http.ResponseWriter, err error) {
	status, message := errorStatus(err)
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}
