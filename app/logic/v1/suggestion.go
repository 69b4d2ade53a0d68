package v1

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jayline-services/assist/app/core"
	"github.com/jayline-services/assist/app/store"
	"github.com/jayline-services/assist/pkg/errors"
	"github.com/jayline-services/assist/pkg/github"
	"github.com/jayline-services/assist/pkg/i18n"
	"github.com/jayline-services/assist/pkg/types"
	"github.com/jayline-services/assist/pkg/utils"
)

type ReviewAction string

const (
	REVIEW_ACTION_ACCEPT ReviewAction = "accept"
	REVIEW_ACTION_REJECT ReviewAction = "reject"
)

func (a ReviewAction) Valid() bool {
	return a == REVIEW_ACTION_ACCEPT || a == REVIEW_ACTION_REJECT
}

type SuggestionLogic struct {
	ctx  context.Context
	core *core.Core

	suggestions store.SuggestionStore
	posts       store.PostStore
	github      *github.Client
	transaction func(ctx context.Context, next func(ctx context.Context) error) error
}

func NewSuggestionLogic(ctx context.Context, core *core.Core) *SuggestionLogic {
	return &SuggestionLogic{
		ctx:         ctx,
		core:        core,
		suggestions: core.Store().SuggestionStore(),
		posts:       core.Store().PostStore(),
		github:      core.GitHub(),
		transaction: core.Store().Transaction,
	}
}

type CreateSuggestionArgs struct {
	Question         string   `json:"question" binding:"required"`
	SuggestedTitle   string   `json:"suggested_title" binding:"required"`
	SuggestedContent string   `json:"suggested_content" binding:"required"`
	SourceURLs       []string `json:"source_urls"`
	Confidence       float64  `json:"confidence"`
	CreatedBy        string   `json:"created_by"`
}

// Create records a visitor-submitted article proposal as pending review.
func (l *SuggestionLogic) Create(args CreateSuggestionArgs) (*types.Suggestion, error) {
	if strings.TrimSpace(args.Question) == "" || strings.TrimSpace(args.SuggestedTitle) == "" || strings.TrimSpace(args.SuggestedContent) == "" {
		return nil, errors.New("SuggestionLogic.Create.args.missing", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if args.CreatedBy == "" {
		args.CreatedBy = "anonymous"
	}
	if args.SourceURLs == nil {
		args.SourceURLs = []string{}
	}

	data := types.Suggestion{
		ID:               utils.GenUniqIDStr(),
		Question:         args.Question,
		SuggestedTitle:   args.SuggestedTitle,
		SuggestedContent: args.SuggestedContent,
		SourceURLs:       args.SourceURLs,
		Confidence:       args.Confidence,
		Status:           types.SUGGESTION_STATUS_PENDING,
		CreatedBy:        args.CreatedBy,
		CreatedAt:        time.Now().Unix(),
	}

	if err := l.suggestions.Create(l.ctx, data); err != nil {
		return nil, errors.New("SuggestionLogic.Create.SuggestionStore.Create", i18n.ERROR_INTERNAL, err).Code(http.StatusInternalServerError)
	}

	return &data, nil
}

func (l *SuggestionLogic) List(status types.SuggestionStatus, limit, offset uint64) ([]types.Suggestion, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, errors.New("SuggestionLogic.List.status.invalid", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	opts := types.ListSuggestionOptions{Status: status}

	list, err := l.suggestions.List(l.ctx, opts, limit, offset)
	if err != nil && err != sql.ErrNoRows {
		return nil, 0, errors.New("SuggestionLogic.List.SuggestionStore.List", i18n.ERROR_INTERNAL, err).Code(http.StatusInternalServerError)
	}

	total, err := l.suggestions.Total(l.ctx, opts)
	if err != nil {
		return nil, 0, errors.New("SuggestionLogic.List.SuggestionStore.Total", i18n.ERROR_INTERNAL, err).Code(http.StatusInternalServerError)
	}

	return list, total, nil
}

type ReviewResult struct {
	Suggestion *types.Suggestion `json:"suggestion"`
	Post       *types.Post       `json:"post,omitempty"`
	PRUrl      string            `json:"pr_url,omitempty"`
}

// Review settles a pending suggestion. Accepting creates a draft post in the
// same transaction as the status change, so a review either fully lands or
// not at all. The pending guard lives in the UPDATE itself, which keeps two
// concurrent reviews from both succeeding.
func (l *SuggestionLogic) Review(id string, action ReviewAction, reviewedBy string) (*ReviewResult, error) {
	if id == "" || !action.Valid() {
		return nil, errors.New("SuggestionLogic.Review.args.invalid", i18n.ERROR_SUGGESTION_INVALID_ACTION, nil).Code(http.StatusBadRequest)
	}
	if reviewedBy == "" {
		reviewedBy = "admin"
	}

	suggestion, err := l.suggestions.Get(l.ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("SuggestionLogic.Review.SuggestionStore.Get", i18n.ERROR_SUGGESTION_PROCESSED, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("SuggestionLogic.Review.SuggestionStore.Get", i18n.ERROR_INTERNAL, err).Code(http.StatusInternalServerError)
	}

	if action == REVIEW_ACTION_REJECT {
		moved, err := l.suggestions.UpdateStatusFromPending(l.ctx, id, types.SUGGESTION_STATUS_REJECTED)
		if err != nil {
			return nil, errors.New("SuggestionLogic.Review.SuggestionStore.UpdateStatusFromPending", i18n.ERROR_INTERNAL, err).Code(http.StatusInternalServerError)
		}
		if !moved {
			return nil, errors.New("SuggestionLogic.Review.reject.notpending", i18n.ERROR_SUGGESTION_PROCESSED, nil).Code(http.StatusNotFound)
		}

		suggestion.Status = types.SUGGESTION_STATUS_REJECTED
		return &ReviewResult{Suggestion: suggestion}, nil
	}

	post := types.Post{
		ID:         utils.GenUniqIDStr(),
		Title:      suggestion.SuggestedTitle,
		Content:    suggestion.SuggestedContent,
		Status:     types.POST_STATUS_DRAFT,
		SourceURLs: suggestion.SourceURLs,
		CreatedBy:  reviewedBy,
		CreatedAt:  time.Now().Unix(),
	}

	err = l.transaction(l.ctx, func(ctx context.Context) error {
		moved, err := l.suggestions.UpdateStatusFromPending(ctx, id, types.SUGGESTION_STATUS_ACCEPTED)
		if err != nil {
			return errors.New("SuggestionLogic.Review.SuggestionStore.UpdateStatusFromPending", i18n.ERROR_INTERNAL, err).Code(http.StatusInternalServerError)
		}
		if !moved {
			return errors.New("SuggestionLogic.Review.accept.notpending", i18n.ERROR_SUGGESTION_PROCESSED, nil).Code(http.StatusNotFound)
		}

		if err = l.posts.Create(ctx, post); err != nil {
			return errors.New("SuggestionLogic.Review.PostStore.Create", i18n.ERROR_INTERNAL, err).Code(http.StatusInternalServerError)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	suggestion.Status = types.SUGGESTION_STATUS_ACCEPTED
	result := &ReviewResult{
		Suggestion: suggestion,
		Post:       &post,
	}

	// The draft row above is the source of truth. The PR is a mirror, its
	// failure must not undo an accepted review.
	if l.github != nil {
		prURL, err := l.github.CreateDraftPR(l.ctx, github.DraftFile{
			Filename: utils.Slugify(suggestion.SuggestedTitle),
			Title:    suggestion.SuggestedTitle,
			Content:  draftMarkdown(suggestion),
		})
		if err != nil {
			slog.Error("failed to mirror accepted suggestion to github",
				slog.String("suggestion_id", id), slog.String("error", err.Error()))
		} else {
			result.PRUrl = prURL
		}
	}

	return result, nil
}

func draftMarkdown(suggestion *types.Suggestion) string {
	var sources strings.Builder
	for i, u := range suggestion.SourceURLs {
		if i > 0 {
			sources.WriteString(", ")
		}
		sources.WriteString(fmt.Sprintf("%q", u))
	}

	return fmt.Sprintf(`---
title: %q
date: %s
status: draft
sources: [%s]
---

%s
`, suggestion.SuggestedTitle, time.Now().UTC().Format(time.RFC3339), sources.String(), suggestion.SuggestedContent)
}
