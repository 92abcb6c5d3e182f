package validator

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"flowershop/internal/usecase"
)

var (
	// 10文字以上の数字・空白・ハイフン・括弧、先頭+可
	phoneRegex = regexp.MustCompile(`^\+?[0-9\s\-()]{10,}$`)

	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type orderValidator struct{}

// Usecaseは interface を依存注入
func NewOrderValidator() usecase.OrderValidator {
	return &orderValidator{}
}

// ValidateCreateOrder は注文入力を検証して、失敗メッセージを全部まとめて返す。
// DBには一切触らない。
func (v *orderValidator) ValidateCreateOrder(in usecase.PlaceOrderInput) []string {
	var messages []string

	// 氏名（2〜100文字）
	name := strings.TrimSpace(in.Customer.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		messages = append(messages, "name must be 2-100 characters")
	}

	// 電話番号
	if !phoneRegex.MatchString(strings.TrimSpace(in.Customer.Phone)) {
		messages = append(messages, "invalid phone format")
	}

	// email（任意。あれば形式チェック）
	if email := strings.TrimSpace(in.Customer.Email); email != "" {
		if !emailRegex.MatchString(email) {
			messages = append(messages, "invalid email format")
		}
	}

	// 住所（10〜500文字）
	address := strings.TrimSpace(in.Customer.Address)
	if n := utf8.RuneCountInString(address); n < 10 || n > 500 {
		messages = append(messages, "address must be 10-500 characters")
	}

	// 備考（任意、1000文字まで）
	if utf8.RuneCountInString(in.Notes) > 1000 {
		messages = append(messages, "notes must be at most 1000 characters")
	}

	// カート
	if len(in.Lines) == 0 {
		messages = append(messages, "cart must contain at least one item")
	}
	for _, l := range in.Lines {
		if l.ProductID <= 0 {
			messages = append(messages, "invalid product id "+strconv.FormatInt(l.ProductID, 10))
		}
		if l.Quantity <= 0 {
			messages = append(messages, "quantity must be positive for product "+strconv.FormatInt(l.ProductID, 10))
		}
	}

	return messages
}
