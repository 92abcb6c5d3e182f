package repository

import (
	"context"

	"flowershop/internal/domain/model"
)

type CustomerRepository interface {
	Create(ctx context.Context, c model.Customer) (int64, error)
	FindByID(ctx context.Context, id int64) (model.Customer, error)
}
