package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingoflow/lingoflow-api/internal/api/shared"
	"github.com/lingoflow/lingoflow-api/internal/service/review"
)

// fakeReviewService records calls and returns canned results.
type fakeReviewService struct {
	queue      []review.QueueItem
	queueErr   error
	rating     *review.RatingResult
	ratingErr  error
	answer     *review.AnswerResult
	answerErr  error
	lastRating string
	lastAnswer review.AnswerRequest
}

var _ review.ReviewService = (*fakeReviewService)(nil)

func (f *fakeReviewService) GetQueue(ctx context.Context, userID uuid.UUID) ([]review.QueueItem, error) {
	return f.queue, f.queueErr
}

func (f *fakeReviewService) SubmitRating(
	ctx context.Context,
	userID, entryID uuid.UUID,
	rating string,
) (*review.RatingResult, error) {
	f.lastRating = rating
	return f.rating, f.ratingErr
}

func (f *fakeReviewService) SubmitAnswer(
	ctx context.Context,
	userID uuid.UUID,
	req review.AnswerRequest,
) (*review.AnswerResult, error) {
	f.lastAnswer = req
	return f.answer, f.answerErr
}

// newReviewRouter builds a router with the review routes mounted the way
// the server does.
func newReviewRouter(svc review.ReviewService) http.Handler {
	h := NewReviewHandler(svc)
	r := chi.NewRouter()
	r.Get("/api/review/queue", h.GetQueue)
	r.Post("/api/review/{id}/rating", h.SubmitRating)
	r.Post("/api/review/{id}/answer", h.SubmitAnswer)
	return r
}

// authedRequest builds a request carrying an authenticated user ID, as the
// auth middleware would.
func authedRequest(t *testing.T, method, target string, userID uuid.UUID, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func TestReviewHandlerGetQueue(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("returns queue items", func(t *testing.T) {
		t.Parallel()

		svc := &fakeReviewService{queue: []review.QueueItem{
			{EntryID: uuid.New(), Word: "ephemeral", Meaning: "lasting a very short time"},
		}}
		rr := httptest.NewRecorder()
		newReviewRouter(svc).ServeHTTP(rr, authedRequest(t, http.MethodGet, "/api/review/queue", userID, nil))

		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Items []review.QueueItem `json:"items"`
			Total int                `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, "ephemeral", resp.Items[0].Word)
	})

	t.Run("empty queue serializes as empty array", func(t *testing.T) {
		t.Parallel()

		svc := &fakeReviewService{}
		rr := httptest.NewRecorder()
		newReviewRouter(svc).ServeHTTP(rr, authedRequest(t, http.MethodGet, "/api/review/queue", userID, nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"items":[]`)
	})

	t.Run("missing auth context yields 401", func(t *testing.T) {
		t.Parallel()

		svc := &fakeReviewService{}
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/review/queue", nil)
		newReviewRouter(svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestReviewHandlerSubmitRating(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	entryID := uuid.New()

	t.Run("known rating returns a test question", func(t *testing.T) {
		t.Parallel()

		recordID := uuid.New()
		svc := &fakeReviewService{rating: &review.RatingResult{
			RecordID: recordID,
			NeedTest: true,
			Question: &review.Question{
				Word:    "ephemeral",
				Options: []string{"a", "b", "c", "d"},
			},
		}}

		rr := httptest.NewRecorder()
		req := authedRequest(t, http.MethodPost, "/api/review/"+entryID.String()+"/rating",
			userID, SubmitRatingRequest{Rating: "known"})
		newReviewRouter(svc).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "known", svc.lastRating)

		var resp review.RatingResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, recordID, resp.RecordID)
		assert.True(t, resp.NeedTest)
		require.NotNil(t, resp.Question)
		assert.Len(t, resp.Question.Options, 4)
	})

	t.Run("invalid rating value is rejected before the service", func(t *testing.T) {
		t.Parallel()

		svc := &fakeReviewService{}
		rr := httptest.NewRecorder()
		req := authedRequest(t, http.MethodPost, "/api/review/"+entryID.String()+"/rating",
			userID, SubmitRatingRequest{Rating: "mastered"})
		newReviewRouter(svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, svc.lastRating)
	})

	t.Run("unknown entry maps to 404", func(t *testing.T) {
		t.Parallel()

		svc := &fakeReviewService{ratingErr: review.ErrEntryNotFound}
		rr := httptest.NewRecorder()
		req := authedRequest(t, http.MethodPost, "/api/review/"+entryID.String()+"/rating",
			userID, SubmitRatingRequest{Rating: "unknown"})
		newReviewRouter(svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed entry id maps to 400", func(t *testing.T) {
		t.Parallel()

		svc := &fakeReviewService{}
		rr := httptest.NewRecorder()
		req := authedRequest(t, http.MethodPost, "/api/review/not-a-uuid/rating",
			userID, SubmitRatingRequest{Rating: "known"})
		newReviewRouter(svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestReviewHandlerSubmitAnswer(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	entryID := uuid.New()

	t.Run("forwards the full answer request", func(t *testing.T) {
		t.Parallel()

		next := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
		svc := &fakeReviewService{answer: &review.AnswerResult{
			Correct:       true,
			CorrectAnswer: "lasting a very short time",
			NextReviewAt:  &next,
		}}

		recordID := uuid.New()
		ms := 1200
		rr := httptest.NewRecorder()
		req := authedRequest(t, http.MethodPost, "/api/review/"+entryID.String()+"/answer",
			userID, SubmitAnswerRequest{
				Answer:         "lasting a very short time",
				RecordID:       &recordID,
				ResponseTimeMs: &ms,
			})
		newReviewRouter(svc).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, entryID, svc.lastAnswer.EntryID)
		assert.Equal(t, recordID, svc.lastAnswer.RecordID)
		assert.False(t, svc.lastAnswer.IsFromErrorQueue)
		require.NotNil(t, svc.lastAnswer.ResponseTimeMs)
		assert.Equal(t, 1200, *svc.lastAnswer.ResponseTimeMs)
	})

	t.Run("omitted record id forwards uuid.Nil", func(t *testing.T) {
		t.Parallel()

		svc := &fakeReviewService{answer: &review.AnswerResult{Correct: false}}
		rr := httptest.NewRecorder()
		req := authedRequest(t, http.MethodPost, "/api/review/"+entryID.String()+"/answer",
			userID, SubmitAnswerRequest{Answer: "something", IsFromErrorQueue: true})
		newReviewRouter(svc).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, uuid.Nil, svc.lastAnswer.RecordID)
		assert.True(t, svc.lastAnswer.IsFromErrorQueue)
	})

	t.Run("missing answer is rejected", func(t *testing.T) {
		t.Parallel()

		svc := &fakeReviewService{}
		rr := httptest.NewRecorder()
		req := authedRequest(t, http.MethodPost, "/api/review/"+entryID.String()+"/answer",
			userID, SubmitAnswerRequest{})
		newReviewRouter(svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, svc.lastAnswer.Answer)
	})
}
