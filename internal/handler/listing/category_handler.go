package listing

import (
	"github.com/gin-gonic/gin"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/handler"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/response"
	listingService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/listing"
)

// CategoryHandler 分类处理器
type CategoryHandler struct {
	categoryService *listingService.CategoryService
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(categorySvc *listingService.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categorySvc}
}

// List 查询分类列表
// @Summary 查询分类列表
// @Tags 商品
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Category}
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	handler.MustSucceed(c, err, categories)
}

// GetBySlug 按标识查询分类
// @Summary 按标识查询分类
// @Tags 商品
// @Produce json
// @Param slug path string true "分类标识"
// @Success 200 {object} response.Response{data=models.Category}
// @Router /api/v1/categories/{slug} [get]
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, "无效的分类标识")
		return
	}

	category, err := h.categoryService.GetBySlug(c.Request.Context(), slug)
	handler.MustSucceed(c, err, category)
}

// Create 管理员创建分类
// @Summary 创建分类
// @Tags 管理后台
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body listingService.CreateCategoryRequest true "请求参数"
// @Success 201 {object} response.Response{data=models.Category}
// @Router /api/v1/admin/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req listingService.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req)
	if handler.HandleError(c, err) {
		return
	}
	response.Created(c, category)
}

// Update 管理员更新分类
// @Summary 更新分类
// @Tags 管理后台
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "分类ID"
// @Param request body listingService.UpdateCategoryRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Category}
// @Router /api/v1/admin/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, "分类")
	if !ok {
		return
	}

	var req listingService.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, &req)
	handler.MustSucceed(c, err, category)
}

// Delete 管理员删除分类
// @Summary 删除分类
// @Tags 管理后台
// @Produce json
// @Security Bearer
// @Param id path int true "分类ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c, "分类")
	if !ok {
		return
	}

	err := h.categoryService.Delete(c.Request.Context(), id)
	handler.MustSucceedWithMessage(c, err, "分类已删除", nil)
}
