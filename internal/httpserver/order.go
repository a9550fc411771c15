package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createOrderRequest struct {
	DeliveryAddress string `json:"deliveryAddress"`
}

func (h *handlers) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	o, err := h.deps.OrderSvc.Create(c.Request.Context(), currentUserID(c), req.DeliveryAddress)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createOrderResponse{
		Msg:         "order created",
		OrderID:     o.ID,
		DeliveryFee: money(o.DeliveryFee),
		Status:      o.Status,
	})
}

func (h *handlers) payOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	steps, err := h.deps.OrderSvc.Pay(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payOrderResponse{
		Msg:           "payment accepted, order is on its way",
		OrderID:       id,
		DeliverySteps: steps,
	})
}

func (h *handlers) orderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.deps.OrderSvc.Status(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
