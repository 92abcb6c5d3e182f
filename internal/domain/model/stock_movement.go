package model

import "time"

type StockMovementReason string

const (
	//注文による減算。
	StockMovementReasonOrder StockMovementReason = "ORDER"
	//キャンセルによる在庫戻し。
	StockMovementReasonCancel StockMovementReason = "CANCEL"
)

// 在庫移動の履歴
// 在庫を動かすトランザクションと同じトランザクション内で必ず1行残す。
type StockMovement struct {
	ID        int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64               `gorm:"not null;index" json:"product_id"`
	OrderID   int64               `gorm:"not null;index" json:"order_id"`
	Delta     int64               `gorm:"not null" json:"delta"`
	Reason    StockMovementReason `gorm:"type:varchar(20);not null" json:"reason"`
	CreatedAt time.Time           `gorm:"not null;autoCreateTime" json:"created_at"`
}
