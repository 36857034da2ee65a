package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-api/internal/api/shared"
	"github.com/lingoflow/lingoflow-api/internal/service/review"
)

// ReviewHandler handles review session API requests.
type ReviewHandler struct {
	reviewService review.ReviewService
}

// NewReviewHandler creates a new ReviewHandler with the given dependencies.
func NewReviewHandler(reviewService review.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// GetQueue handles GET /api/review/queue.
func (h *ReviewHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	items, err := h.reviewService.GetQueue(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build review queue")
		return
	}

	if items == nil {
		items = []review.QueueItem{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"items": items,
		"total": len(items),
	})
}

// SubmitRating handles POST /api/review/{id}/rating.
func (h *ReviewHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	userID, entryID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req SubmitRatingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.reviewService.SubmitRating(r.Context(), userID, entryID, req.Rating)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// SubmitAnswer handles POST /api/review/{id}/answer.
func (h *ReviewHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, entryID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	recordID := uuid.Nil
	if req.RecordID != nil {
		recordID = *req.RecordID
	}

	result, err := h.reviewService.SubmitAnswer(r.Context(), userID, review.AnswerRequest{
		EntryID:          entryID,
		Answer:           req.Answer,
		RecordID:         recordID,
		IsFromErrorQueue: req.IsFromErrorQueue,
		ResponseTimeMs:   req.ResponseTimeMs,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
