package handler

import (
	"net/http"
	"strconv"

	"flowershop/internal/domain/cart"
	"flowershop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderUC       *usecase.OrderUsecase
	fulfillmentUC *usecase.FulfillmentUsecase
}

func NewOrderHandler(orderUC *usecase.OrderUsecase, fulfillmentUC *usecase.FulfillmentUsecase) *OrderHandler {
	return &OrderHandler{orderUC: orderUC, fulfillmentUC: fulfillmentUC}
}

type OrderCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type OrderCreateRequest struct {
	Customer OrderCustomerRequest `json:"customer"`
	Items    []OrderItemRequest   `json:"items"`
	Notes    string               `json:"notes"`
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/orders")
	g.POST("", h.create)
	g.GET("/:id", h.detail)
	g.PATCH("/:id/status", h.updateStatus)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//二重送信防止キーはヘッダーから受け取る（bodyには入れない）
	idemKey := c.Request().Header.Get("X-Idempotency-Key")

	lines := make([]cart.Line, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, cart.Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	out, err := h.orderUC.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		Customer: usecase.CustomerInput{
			Name:    req.Customer.Name,
			Phone:   req.Customer.Phone,
			Email:   req.Customer.Email,
			Address: req.Customer.Address,
		},
		Lines:          lines,
		Notes:          req.Notes,
		IdempotencyKey: idemKey,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.orderUC.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 配達側ツールが叩くステータス更新
func (h *OrderHandler) updateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.fulfillmentUC.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		return writeError(c, err)
	}

	out, err := h.orderUC.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
