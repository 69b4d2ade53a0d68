package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/jayline-services/assist/app/logic/v1"
	"github.com/jayline-services/assist/app/response"
	"github.com/jayline-services/assist/pkg/types"
	"github.com/jayline-services/assist/pkg/utils"
)

// GenerateDraft asks the blog agent to produce a draft post.
func (s *HttpSrv) GenerateDraft(c *gin.Context) {
	var req v1.GenerateDraftArgs
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	post, err := v1.NewPostLogic(c, s.Core).GenerateDraft(req)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, post)
}

type ListPostsRequest struct {
	Status    string `form:"status"`
	CreatedBy string `form:"created_by"`
	Limit     uint64 `form:"limit"`
	Offset    uint64 `form:"offset"`
}

type ListPostsResponse struct {
	List       []types.Post     `json:"list"`
	Pagination types.Pagination `json:"pagination"`
}

func (s *HttpSrv) ListPosts(c *gin.Context) {
	var req ListPostsRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	if req.Limit == 0 {
		req.Limit = types.DEFAULT_LIST_LIMIT
	}

	list, total, err := v1.NewPostLogic(c, s.Core).List(req.Status, req.CreatedBy, req.Limit, req.Offset)
	if err != nil {
		response.APIError(c, err)
		return
	}

	if list == nil {
		list = []types.Post{}
	}

	response.APISuccess(c, ListPostsResponse{
		List: list,
		Pagination: types.Pagination{
			Total:   total,
			Limit:   req.Limit,
			Offset:  req.Offset,
			HasMore: total > int64(req.Offset+req.Limit),
		},
	})
}

// Reindex triggers a full rebuild of the content index.
func (s *HttpSrv) Reindex(c *gin.Context) {
	report, err := v1.NewIndexLogic(c, s.Core).Reindex()
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, report)
}
