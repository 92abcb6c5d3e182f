package event

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// 注文確定イベントの明細
type OrderPlacedItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// 通知ワーカーが購読するイベント
type OrderPlaced struct {
	OrderID       int64             `json:"order_id"`
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	Items         []OrderPlacedItem `json:"items"`
	CreatedAt     time.Time         `json:"created_at"`
}

// Publisher は注文イベントの発行。失敗しても注文自体は成立済み。
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, evt OrderPlaced) error
	Close() error
}

// RABBITMQ_URL未設定のときに使う。
type noopPublisher struct{}

func NewNoopPublisher() Publisher {
	return &noopPublisher{}
}

func (n *noopPublisher) PublishOrderPlaced(ctx context.Context, evt OrderPlaced) error {
	return nil
}

func (n *noopPublisher) Close() error {
	return nil
}
