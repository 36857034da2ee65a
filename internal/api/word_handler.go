package api

import (
	"net/http"
	"strconv"

	"github.com/lingoflow/lingoflow-api/internal/api/shared"
	"github.com/lingoflow/lingoflow-api/internal/domain"
	"github.com/lingoflow/lingoflow-api/internal/service"
)

// defaultLearningBatch is how many unlearned words a learning session
// suggests when the client does not ask for a specific count.
const defaultLearningBatch = 10

// WordHandler handles word catalog API requests.
type WordHandler struct {
	wordService service.WordService
}

// NewWordHandler creates a new WordHandler with the given dependencies.
func NewWordHandler(wordService service.WordService) *WordHandler {
	return &WordHandler{wordService: wordService}
}

// List handles GET /api/words. Supports difficulty, offset, and limit
// query parameters.
func (h *WordHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	difficulty := domain.Difficulty(r.URL.Query().Get("difficulty"))
	offset, limit := getPagination(r)

	words, total, err := h.wordService.ListWords(r.Context(), difficulty, offset, limit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PageResponse{
		Items:  words,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	})
}

// Get handles GET /api/words/{id}.
func (h *WordHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, wordID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	word, err := h.wordService.GetWord(r.Context(), wordID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, word)
}

// Learning handles GET /api/words/learning: catalog words the user has
// not added yet, for starting a learning session.
func (h *WordHandler) Learning(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	difficulty := domain.Difficulty(r.URL.Query().Get("difficulty"))

	count := defaultLearningBatch
	if raw := r.URL.Query().Get("count"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= maxPageLimit {
			count = v
		}
	}

	words, err := h.wordService.SuggestWords(r.Context(), userID, difficulty, count)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, words)
}

// Example handles GET /api/words/{id}/example: the word's example
// sentence, generated on first request when the AI collaborator is
// configured.
func (h *WordHandler) Example(w http.ResponseWriter, r *http.Request) {
	_, wordID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	sentence, err := h.wordService.GetExampleSentence(r.Context(), wordID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"example_sentence": sentence,
	})
}
