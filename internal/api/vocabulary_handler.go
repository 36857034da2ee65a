package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-api/internal/api/shared"
	"github.com/lingoflow/lingoflow-api/internal/domain"
	"github.com/lingoflow/lingoflow-api/internal/service"
)

// VocabularyHandler handles vocabulary management API requests.
type VocabularyHandler struct {
	vocabularyService service.VocabularyService
}

// NewVocabularyHandler creates a new VocabularyHandler with the given
// dependencies.
func NewVocabularyHandler(vocabularyService service.VocabularyService) *VocabularyHandler {
	return &VocabularyHandler{vocabularyService: vocabularyService}
}

// Add handles POST /api/vocabulary. Accepts either a single word_id or a
// word_ids batch.
func (h *VocabularyHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AddVocabularyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	switch {
	case req.WordID != nil && *req.WordID != uuid.Nil:
		entry, err := h.vocabularyService.AddWord(r.Context(), userID, *req.WordID)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusCreated, entry)

	case len(req.WordIDs) > 0:
		entries, err := h.vocabularyService.AddWords(r.Context(), userID, req.WordIDs)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		if entries == nil {
			entries = []*domain.VocabularyEntry{}
		}
		shared.RespondWithJSON(w, r, http.StatusCreated, entries)

	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "Either word_id or word_ids is required")
	}
}

// List handles GET /api/vocabulary.
func (h *VocabularyHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	offset, limit := getPagination(r)

	entries, total, err := h.vocabularyService.ListVocabulary(r.Context(), userID, offset, limit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PageResponse{
		Items:  entries,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	})
}

// Remove handles DELETE /api/vocabulary/{id}.
func (h *VocabularyHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, entryID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.vocabularyService.RemoveEntry(r.Context(), userID, entryID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
