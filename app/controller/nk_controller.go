package controller

import (
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"nk-catalog/service"
)

const defaultFeedsLimit = 50

// NKController handles HTTP requests for national catalog submissions
type NKController struct {
	submissions service.SubmissionServiceInterface
}

// NewNKController creates a new NKController
func NewNKController(submissions service.SubmissionServiceInterface) *NKController {
	return &NKController{
		submissions: submissions,
	}
}

// productIndex parses the {index} path value, writing a 400 when it is invalid
func productIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.PathValue("index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		log.Printf("❌ Invalid product index: %q", raw)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product index"})
		return 0, false
	}
	return index, true
}

// Send handles POST /send_to_nk/{index}
// Example response:
//
//	{"success": true, "feed_id": "123", "message": "Карточка \"Футболка\" отправлена в НК", "product_name": "Футболка"}
//
// A card rejected by the national catalog is reported with "success": false.
func (c *NKController) Send(w http.ResponseWriter, r *http.Request) {
	index, ok := productIndex(w, r)
	if !ok {
		return
	}
	log.Printf("📤 Send: product index=%d", index)

	result, err := c.submissions.Send(r.Context(), index)
	if err != nil {
		log.Printf("❌ Send: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Preview handles GET /nk_preview/{index}
func (c *NKController) Preview(w http.ResponseWriter, r *http.Request) {
	index, ok := productIndex(w, r)
	if !ok {
		return
	}

	preview, err := c.submissions.Preview(r.Context(), index)
	if err != nil {
		log.Printf("❌ Preview: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

// FeedStatus handles GET /check_feed_status/{feed_id}
func (c *NKController) FeedStatus(w http.ResponseWriter, r *http.Request) {
	feedID := strings.TrimSpace(r.PathValue("feed_id"))
	if feedID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "feed_id is required"})
		return
	}

	status, err := c.submissions.FeedStatus(r.Context(), feedID)
	if err != nil {
		log.Printf("❌ FeedStatus: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// DebugCategories handles GET /debug/categories/{tnved}
func (c *NKController) DebugCategories(w http.ResponseWriter, r *http.Request) {
	tnved := strings.TrimSpace(r.PathValue("tnved"))

	debug, err := c.submissions.DebugCategories(r.Context(), tnved)
	if err != nil {
		log.Printf("❌ DebugCategories: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, debug)
}

// Feeds handles GET /feeds?limit=50
// Lists the most recent submissions, newest first.
func (c *NKController) Feeds(w http.ResponseWriter, r *http.Request) {
	limit := defaultFeedsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	submissions, err := c.submissions.List(r.Context(), limit)
	if err != nil {
		log.Printf("❌ Feeds: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submissions)
}
