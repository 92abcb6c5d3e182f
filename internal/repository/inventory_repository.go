package repository

import (
	"context"

	"flowershop/internal/domain/model"
)

// 在庫の変更はすべてここを通す。products.stock を直接触るコードを作らない。
type InventoryRepository interface {
	// 在庫が足りるときだけ減算（1文の条件付きUPDATE）
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫戻し（キャンセルなど）
	IncreaseStock(ctx context.Context, productID int64, qty int64) error

	// 在庫移動の履歴作成
	CreateMovement(ctx context.Context, m model.StockMovement) error
}
