package comment

import (
	"github.com/gin-gonic/gin"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/handler"
	commentService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/comment"
)

// FavoriteHandler 收藏处理器
type FavoriteHandler struct {
	favoriteService *commentService.FavoriteService
}

// NewFavoriteHandler 创建收藏处理器
func NewFavoriteHandler(favoriteSvc *commentService.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteSvc}
}

// Add 收藏商品
// @Summary 收藏商品
// @Tags 收藏
// @Produce json
// @Security Bearer
// @Param listing_id path int true "商品ID"
// @Success 200 {object} response.Response
// @Router /api/v1/favorites/{listing_id} [post]
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}
	listingID, ok := handler.ParseParamID(c, "listing_id", "商品")
	if !ok {
		return
	}

	err := h.favoriteService.Add(c.Request.Context(), userID, listingID)
	handler.MustSucceedWithMessage(c, err, "已收藏", nil)
}

// Remove 取消收藏
// @Summary 取消收藏
// @Tags 收藏
// @Produce json
// @Security Bearer
// @Param listing_id path int true "商品ID"
// @Success 200 {object} response.Response
// @Router /api/v1/favorites/{listing_id} [delete]
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}
	listingID, ok := handler.ParseParamID(c, "listing_id", "商品")
	if !ok {
		return
	}

	err := h.favoriteService.Remove(c.Request.Context(), userID, listingID)
	handler.MustSucceedWithMessage(c, err, "已取消收藏", nil)
}

// ListMine 查询我的收藏
// @Summary 查询我的收藏
// @Tags 收藏
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/favorites [get]
func (h *FavoriteHandler) ListMine(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	favorites, total, err := h.favoriteService.ListByUser(c.Request.Context(), userID, p.GetOffset(), p.GetLimit())
	handler.MustSucceedPage(c, err, favorites, total, p.Page, p.PageSize)
}

// Check 查询商品是否已收藏
// @Summary 查询商品是否已收藏
// @Tags 收藏
// @Produce json
// @Security Bearer
// @Param listing_id path int true "商品ID"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Router /api/v1/favorites/{listing_id}/check [get]
func (h *FavoriteHandler) Check(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}
	listingID, ok := handler.ParseParamID(c, "listing_id", "商品")
	if !ok {
		return
	}

	favorited, err := h.favoriteService.IsFavorited(c.Request.Context(), userID, listingID)
	handler.MustSucceed(c, err, gin.H{"favorited": favorited})
}
