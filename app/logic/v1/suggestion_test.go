package v1

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayline-services/assist/pkg/errors"
	"github.com/jayline-services/assist/pkg/types"
)

func newTestSuggestionLogic(suggestions *fakeSuggestionStore, posts *fakePostStore) *SuggestionLogic {
	return &SuggestionLogic{
		ctx:         context.Background(),
		suggestions: suggestions,
		posts:       posts,
		transaction: passthroughTransaction,
	}
}

func requireErrCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	ce, ok := err.(*errors.CustomizedError)
	require.True(t, ok, "expected CustomizedError, got %T", err)
	assert.Equal(t, code, ce.GetCode())
}

func TestCreateSuggestionValidatesArgs(t *testing.T) {
	l := newTestSuggestionLogic(newFakeSuggestionStore(), &fakePostStore{})

	_, err := l.Create(CreateSuggestionArgs{Question: "q", SuggestedTitle: "  ", SuggestedContent: "c"})
	requireErrCode(t, err, http.StatusBadRequest)
}

func TestCreateSuggestionDefaults(t *testing.T) {
	store := newFakeSuggestionStore()
	l := newTestSuggestionLogic(store, &fakePostStore{})

	created, err := l.Create(CreateSuggestionArgs{
		Question:         "how do I register for payroll taxes",
		SuggestedTitle:   "Payroll Tax Registration",
		SuggestedContent: "A walkthrough of KRA registration.",
	})
	require.NoError(t, err)

	assert.Equal(t, types.SUGGESTION_STATUS_PENDING, created.Status)
	assert.Equal(t, "anonymous", created.CreatedBy)
	require.NotNil(t, created.SourceURLs)
	assert.Empty(t, created.SourceURLs)
	assert.NotEmpty(t, created.ID)

	stored, err := store.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Payroll Tax Registration", stored.SuggestedTitle)
}

func TestListSuggestionsRejectsUnknownStatus(t *testing.T) {
	l := newTestSuggestionLogic(newFakeSuggestionStore(), &fakePostStore{})

	_, _, err := l.List("archived", types.DEFAULT_LIST_LIMIT, 0)
	requireErrCode(t, err, http.StatusBadRequest)
}

func TestReviewValidatesAction(t *testing.T) {
	l := newTestSuggestionLogic(newFakeSuggestionStore(), &fakePostStore{})

	_, err := l.Review("1", "archive", "admin")
	requireErrCode(t, err, http.StatusBadRequest)

	_, err = l.Review("", REVIEW_ACTION_ACCEPT, "admin")
	requireErrCode(t, err, http.StatusBadRequest)
}

func TestReviewUnknownSuggestion(t *testing.T) {
	l := newTestSuggestionLogic(newFakeSuggestionStore(), &fakePostStore{})

	_, err := l.Review("missing", REVIEW_ACTION_ACCEPT, "admin")
	requireErrCode(t, err, http.StatusNotFound)
}

func TestReviewReject(t *testing.T) {
	store := newFakeSuggestionStore()
	posts := &fakePostStore{}
	l := newTestSuggestionLogic(store, posts)

	created, err := l.Create(CreateSuggestionArgs{
		Question:         "q",
		SuggestedTitle:   "Title",
		SuggestedContent: "Content",
	})
	require.NoError(t, err)

	result, err := l.Review(created.ID, REVIEW_ACTION_REJECT, "editor")
	require.NoError(t, err)

	assert.Equal(t, types.SUGGESTION_STATUS_REJECTED, result.Suggestion.Status)
	assert.Nil(t, result.Post)
	assert.Empty(t, posts.created, "rejecting never creates a post")
}

func TestReviewAcceptCreatesDraftPost(t *testing.T) {
	store := newFakeSuggestionStore()
	posts := &fakePostStore{}
	l := newTestSuggestionLogic(store, posts)

	created, err := l.Create(CreateSuggestionArgs{
		Question:         "what does outsourced payroll cost",
		SuggestedTitle:   "Outsourced Payroll Costs",
		SuggestedContent: "A breakdown of typical pricing.",
		SourceURLs:       []string{"https://example.co.ke/payroll"},
	})
	require.NoError(t, err)

	result, err := l.Review(created.ID, REVIEW_ACTION_ACCEPT, "")
	require.NoError(t, err)

	assert.Equal(t, types.SUGGESTION_STATUS_ACCEPTED, result.Suggestion.Status)
	require.NotNil(t, result.Post)
	assert.Equal(t, types.POST_STATUS_DRAFT, result.Post.Status)
	assert.Equal(t, "Outsourced Payroll Costs", result.Post.Title)
	// empty reviewer falls back to admin
	assert.Equal(t, "admin", result.Post.CreatedBy)
	assert.Empty(t, result.PRUrl, "no github client configured")

	require.Len(t, posts.created, 1)
	assert.Equal(t, []string{"https://example.co.ke/payroll"}, []string(posts.created[0].SourceURLs))
}

func TestReviewAcceptOnlyOnce(t *testing.T) {
	store := newFakeSuggestionStore()
	posts := &fakePostStore{}
	l := newTestSuggestionLogic(store, posts)

	created, err := l.Create(CreateSuggestionArgs{
		Question:         "q",
		SuggestedTitle:   "Title",
		SuggestedContent: "Content",
	})
	require.NoError(t, err)

	_, err = l.Review(created.ID, REVIEW_ACTION_ACCEPT, "admin")
	require.NoError(t, err)

	// The pending guard makes the second review a 404 and no second post.
	_, err = l.Review(created.ID, REVIEW_ACTION_ACCEPT, "admin")
	requireErrCode(t, err, http.StatusNotFound)
	assert.Len(t, posts.created, 1)

	_, err = l.Review(created.ID, REVIEW_ACTION_REJECT, "admin")
	requireErrCode(t, err, http.StatusNotFound)
}

func TestDraftMarkdown(t *testing.T) {
	md := draftMarkdown(&types.Suggestion{
		SuggestedTitle:   "Hiring in Kenya",
		SuggestedContent: "Body text.",
		SourceURLs:       []string{"/a", "/b"},
	})

	assert.Contains(t, md, `title: "Hiring in Kenya"`)
	assert.Contains(t, md, "status: draft")
	assert.Contains(t, md, `sources: ["/a", "/b"]`)
	assert.Contains(t, md, "Body text.")
}
