package httpserver

import (
	"net/http"

	cartsvc "foodexpress/internal/service/cart"
	"github.com/gin-gonic/gin"
)

func (h *handlers) viewCart(c *gin.Context) {
	lines, err := h.deps.CartSvc.View(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(lines))
}

func (h *handlers) addToCart(c *gin.Context) {
	var req cartsvc.AddInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := h.deps.CartSvc.Add(c.Request.Context(), currentUserID(c), req); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "product added to cart"})
}

func (h *handlers) updateCart(c *gin.Context) {
	var req cartsvc.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := h.deps.CartSvc.Update(c.Request.Context(), currentUserID(c), req); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "cart updated"})
}

func (h *handlers) clearCart(c *gin.Context) {
	if err := h.deps.CartSvc.Clear(c.Request.Context(), currentUserID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "cart cleared"})
}
