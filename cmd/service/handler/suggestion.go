package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/jayline-services/assist/app/logic/v1"
	"github.com/jayline-services/assist/app/response"
	"github.com/jayline-services/assist/cmd/service/middleware"
	"github.com/jayline-services/assist/pkg/types"
	"github.com/jayline-services/assist/pkg/utils"
)

// CreateSuggestion records a visitor-submitted article proposal.
func (s *HttpSrv) CreateSuggestion(c *gin.Context) {
	var req v1.CreateSuggestionArgs
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	suggestion, err := v1.NewSuggestionLogic(c, s.Core).Create(req)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APICreated(c, suggestion)
}

type ListSuggestionsRequest struct {
	Status string `form:"status"`
	Limit  uint64 `form:"limit"`
	Offset uint64 `form:"offset"`
}

type ListSuggestionsResponse struct {
	List       []types.Suggestion `json:"list"`
	Pagination types.Pagination   `json:"pagination"`
}

// ListSuggestions is the admin review queue. Status defaults to pending,
// "all" lifts the filter.
func (s *HttpSrv) ListSuggestions(c *gin.Context) {
	var req ListSuggestionsRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	if req.Status == "" {
		req.Status = string(types.SUGGESTION_STATUS_PENDING)
	}
	if req.Status == "all" {
		req.Status = ""
	}
	if req.Limit == 0 {
		req.Limit = types.DEFAULT_LIST_LIMIT
	}

	list, total, err := v1.NewSuggestionLogic(c, s.Core).List(types.SuggestionStatus(req.Status), req.Limit, req.Offset)
	if err != nil {
		response.APIError(c, err)
		return
	}

	if list == nil {
		list = []types.Suggestion{}
	}

	response.APISuccess(c, ListSuggestionsResponse{
		List: list,
		Pagination: types.Pagination{
			Total:   total,
			Limit:   req.Limit,
			Offset:  req.Offset,
			HasMore: total > int64(req.Offset+req.Limit),
		},
	})
}

type ReviewSuggestionRequest struct {
	SuggestionID string `json:"suggestion_id" binding:"required"`
	Action       string `json:"action" binding:"required"`
	ReviewedBy   string `json:"reviewed_by"`
}

// ReviewSuggestion settles a pending suggestion as accepted or rejected.
func (s *HttpSrv) ReviewSuggestion(c *gin.Context) {
	var req ReviewSuggestionRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	if req.ReviewedBy == "" {
		if claims, ok := middleware.InjectTokenClaims(c); ok {
			req.ReviewedBy = claims.User
		}
	}

	result, err := v1.NewSuggestionLogic(c, s.Core).Review(req.SuggestionID, v1.ReviewAction(req.Action), req.ReviewedBy)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, result)
}
