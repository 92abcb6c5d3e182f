package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"flowershop/internal/domain/model"
	"flowershop/internal/infra/cache"
	repo "flowershop/internal/repository"
)

// FulfillmentUsecase は配達側の注文ステータス更新。
// NEW → CONFIRMED → PREPARING → DELIVERING → COMPLETED を1段階ずつ。
// CANCELLED は終端以外からいつでも可。
type FulfillmentUsecase struct {
	tx    repo.TransactionManager
	cache cache.Cache
}

func NewFulfillmentUsecase(tx repo.TransactionManager, c cache.Cache) *FulfillmentUsecase {
	return &FulfillmentUsecase{tx: tx, cache: c}
}

// まだ店の中にある段階なら、キャンセルで在庫を戻す
func restoresStockOnCancel(s model.OrderStatus) bool {
	switch s {
	case model.OrderStatusNew, model.OrderStatusConfirmed, model.OrderStatusPreparing:
		return true
	}
	return false
}

func (u *FulfillmentUsecase) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := strings.TrimSpace(status)
	if !model.ValidOrderStatus(newStatus) {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	next := model.OrderStatus(newStatus)

	var restoredProducts []int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// すでに同じなら何もしない（200）
		if o.Status == next {
			return nil
		}
		if !o.Status.CanTransitionTo(next) {
			if o.Status.IsTerminal() {
				return NewHTTPError(http.StatusBadRequest, "cannot change "+strings.ToLower(string(o.Status))+" order")
			}
			return NewHTTPError(http.StatusBadRequest, "invalid transition "+string(o.Status)+" -> "+string(next))
		}

		// キャンセルのときだけ在庫戻し
		if next == model.OrderStatusCancelled && restoresStockOnCancel(o.Status) {
			items, err := r.OrderItems().ListByOrderID(ctx, orderID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			for _, it := range items {
				if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				if err := r.Inventory().CreateMovement(ctx, model.StockMovement{
					ProductID: it.ProductID,
					OrderID:   orderID,
					Delta:     it.Quantity,
					Reason:    model.StockMovementReasonCancel,
				}); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				restoredProducts = append(restoredProducts, it.ProductID)
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, next); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
	if err != nil {
		return err
	}

	//在庫が動いた商品のキャッシュを消す
	for _, productID := range restoredProducts {
		key := u.cache.GenerateKey("product", strconv.FormatInt(productID, 10))
		if err := u.cache.Del(ctx, key); err != nil {
			slog.Warn("product cache invalidation failed", "product_id", productID, "error", err.Error())
		}
	}

	return nil
}
