package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"flowershop/internal/domain/cart"
	"flowershop/internal/domain/model"
	"flowershop/internal/infra/cache"
	"flowershop/internal/infra/event"
	infraRepo "flowershop/internal/infra/repository"
	repo "flowershop/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValidationError は入力エラーの集合。DBに触る前に全部まとめて返す。
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func NewValidationError(messages []string) error {
	return &ValidationError{Messages: messages}
}

// 注文入力のバリデーション。validatorパッケージが実装する。
type OrderValidator interface {
	ValidateCreateOrder(in PlaceOrderInput) []string
}

// 同一idempotency_keyの同時INSERTで負けた側の印。
// 失敗したトランザクションの中では読み直せないため、一度ロールバックしてから読む。
var errDuplicateKey = errors.New("duplicate idempotency key")

type OrderUsecase struct {
	tx        repo.TransactionManager
	validator OrderValidator
	cache     cache.Cache
	publisher event.Publisher
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	validator OrderValidator,
	c cache.Cache,
	publisher event.Publisher,
) *OrderUsecase {
	return &OrderUsecase{tx: tx, validator: validator, cache: c, publisher: publisher}
}

type CustomerInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

type PlaceOrderInput struct {
	Customer       CustomerInput
	Lines          []cart.Line
	Notes          string
	IdempotencyKey string
}

type CustomerOutput struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   *string `json:"email"`
	Address string  `json:"address"`
}

type OrderItemOutput struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

type OrderOutput struct {
	ID              int64             `json:"id"`
	Status          string            `json:"status"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	DeliveryAddress string            `json:"delivery_address"`
	Notes           string            `json:"notes"`
	CreatedAt       time.Time         `json:"created_at"`
	Customer        CustomerOutput    `json:"customer"`
	Items           []OrderItemOutput `json:"items"`
}

// PlaceOrder は注文確定。
// 検証 → 1トランザクション内で（商品確認 → 顧客/注文/明細作成 → 在庫減算）→ commit。
// どこかで失敗したら全ロールバックで、部分的な行は一切残らない。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderOutput, error) {
	//DBに触る前に入力エラーを全部集める
	if msgs := u.validator.ValidateCreateOrder(in); len(msgs) > 0 {
		return OrderOutput{}, NewValidationError(msgs)
	}

	// 同一商品の行はここでまとまる
	lines := cart.FromLines(in.Lines).Lines()

	//行ごとには正でも、合算でint64が折り返すと負になる。合算後も正であること
	var mergedMsgs []string
	for _, l := range lines {
		if l.Quantity <= 0 {
			mergedMsgs = append(mergedMsgs, "quantity must be positive for product "+strconv.FormatInt(l.ProductID, 10))
		}
	}
	if len(mergedMsgs) > 0 {
		return OrderOutput{}, NewValidationError(mergedMsgs)
	}

	// 二重送信防止キー。クライアントが付けない場合はこちらで発行
	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" {
		key = uuid.NewString()
	}
	if len(key) > 255 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency key")
	}

	var out OrderOutput
	var replayed bool

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら同じ結果
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, key)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			replayed = true
			out, err = loadOrderOutput(ctx, r, existing)
			return err
		}

		//商品確認＋スナップショット価格で合計を計算
		type snapshot struct {
			product model.Product
			qty     int64
		}
		snapshots := make([]snapshot, 0, len(lines))
		total := decimal.Zero

		for _, l := range lines {
			p, err := r.Products().FindByID(ctx, l.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "product "+strconv.FormatInt(l.ProductID, 10)+" not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			//非公開商品は存在しない扱い
			if !p.IsActive {
				return NewHTTPError(http.StatusNotFound, "product "+strconv.FormatInt(l.ProductID, 10)+" not found")
			}

			snapshots = append(snapshots, snapshot{product: p, qty: l.Quantity})
			total = total.Add(p.Price.Mul(decimal.NewFromInt(l.Quantity)))
		}

		//顧客は注文のたびに作成（会員機能なし）
		var email *string
		if e := strings.TrimSpace(in.Customer.Email); e != "" {
			email = &e
		}
		customerID, err := r.Customers().Create(ctx, model.Customer{
			Name:    strings.TrimSpace(in.Customer.Name),
			Phone:   strings.TrimSpace(in.Customer.Phone),
			Email:   email,
			Address: strings.TrimSpace(in.Customer.Address),
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文作成（status=NEW、合計はサーバー計算）
		orderID, err := r.Orders().Create(ctx, model.Order{
			CustomerID:      customerID,
			Status:          model.OrderStatusNew,
			TotalAmount:     total,
			DeliveryAddress: strings.TrimSpace(in.Customer.Address),
			Notes:           strings.TrimSpace(in.Notes),
			IdempotencyKey:  key,
		})
		if err != nil {
			//同じキーが同時に入った場合は負け。失敗したトランザクション内では
			//もう読めないので、ロールバックしてから外で読み直す
			if infraRepo.IsUniqueViolation(err) {
				return errDuplicateKey
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細作成（価格・商品名はスナップショット）
		orderItems := make([]model.OrderItem, 0, len(snapshots))
		for _, s := range snapshots {
			orderItems = append(orderItems, model.OrderItem{
				ProductID:           s.product.ID,
				ProductNameSnapshot: s.product.Name,
				PriceSnapshot:       s.product.Price,
				Quantity:            s.qty,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//在庫減算。チェックと減算は1文（同時注文で在庫がマイナスにならない）
		for _, s := range snapshots {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, s.product.ID, s.qty)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				//1行でも足りなければ注文全体を失敗させる
				return NewHTTPError(http.StatusConflict, "insufficient stock for product \""+s.product.Name+"\"")
			}
			if err := r.Inventory().CreateMovement(ctx, model.StockMovement{
				ProductID: s.product.ID,
				OrderID:   orderID,
				Delta:     -s.qty,
				Reason:    model.StockMovementReasonOrder,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out, err = loadOrderOutput(ctx, r, o)
		return err
	})
	if errors.Is(err, errDuplicateKey) {
		//勝った側の注文を新しいトランザクションで読み直して返す
		replayed = true
		err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			existing, found, err2 := r.Orders().FindByIdempotencyKey(ctx, key)
			if err2 != nil || !found {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out, err2 = loadOrderOutput(ctx, r, existing)
			return err2
		})
	}
	if err != nil {
		return OrderOutput{}, err
	}

	//commit後の後処理。失敗しても注文は成立済みなのでログだけ残す
	//リプレイ時は在庫もイベントも動いていないので何もしない
	if !replayed {
		u.afterCommit(ctx, out)
	}

	return out, nil
}

// GetOrder は注文詳細（顧客・明細付き）。
func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out, err = loadOrderOutput(ctx, r, o)
		return err
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 注文＋顧客＋明細をまとめてレスポンス形に組み立てる。
func loadOrderOutput(ctx context.Context, r repo.TxRepos, o model.Order) (OrderOutput, error) {
	c, err := r.Customers().FindByID(ctx, o.CustomerID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Price:     it.PriceSnapshot,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		DeliveryAddress: o.DeliveryAddress,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		Customer: CustomerOutput{
			ID:      c.ID,
			Name:    c.Name,
			Phone:   c.Phone,
			Email:   c.Email,
			Address: c.Address,
		},
		Items: outItems,
	}, nil
}

// キャッシュ無効化とイベント発行。
func (u *OrderUsecase) afterCommit(ctx context.Context, out OrderOutput) {
	evtItems := make([]event.OrderPlacedItem, 0, len(out.Items))
	for _, it := range out.Items {
		key := u.cache.GenerateKey("product", strconv.FormatInt(it.ProductID, 10))
		if err := u.cache.Del(ctx, key); err != nil {
			slog.Warn("product cache invalidation failed", "product_id", it.ProductID, "error", err.Error())
		}

		evtItems = append(evtItems, event.OrderPlacedItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	if err := u.publisher.PublishOrderPlaced(ctx, event.OrderPlaced{
		OrderID:       out.ID,
		CustomerName:  out.Customer.Name,
		CustomerPhone: out.Customer.Phone,
		TotalAmount:   out.TotalAmount,
		Items:         evtItems,
		CreatedAt:     out.CreatedAt,
	}); err != nil {
		slog.Warn("order placed event publish failed", "order_id", out.ID, "error", err.Error())
	}
}
