package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.CategorySvc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]categoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, categoryResponse{ID: cat.ID, Name: cat.Name})
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) listCategoryProducts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.writeProducts(c, &id)
}

func (h *handlers) listProducts(c *gin.Context) {
	h.writeProducts(c, nil)
}

func (h *handlers) writeProducts(c *gin.Context, categoryID *int64) {
	products, err := h.deps.ProductSvc.List(c.Request.Context(), categoryID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponses(products))
}
