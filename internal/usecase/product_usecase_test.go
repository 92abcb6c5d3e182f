package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"flowershop/internal/domain/model"
	"flowershop/internal/infra/cache"
	repo "flowershop/internal/repository"
	"flowershop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

func (m *CategoryRepoMock) FindBySlug(ctx context.Context, slug string) (model.Category, error) {
	panic("not used in ProductUsecase tests")
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	panic("not used in ProductUsecase tests")
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *CacheMock) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *CacheMock) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *CacheMock) GenerateKey(operation string, key string) string {
	return operation + ":" + key
}

func TestProductUsecase_ListPublicProducts_InvalidPage(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), new(CategoryRepoMock), cache.NewNoopCache())

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: 0, Limit: 20})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Contains(t, he.Message, "invalid page")
}

func TestProductUsecase_ListPublicProducts_InvalidLimit(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), new(CategoryRepoMock), cache.NewNoopCache())

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 101})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Contains(t, he.Message, "invalid limit")
}

func TestProductUsecase_ListPublicProducts_Success(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(CategoryRepoMock), cache.NewNoopCache())

	in := usecase.ListProductsInput{Page: 1, Limit: 20, Q: "rose", Sort: "new"}
	q := repo.ProductListQuery{Page: 1, Limit: 20, Q: "rose", Sort: "new"}

	items := []model.Product{
		{ID: 1, Name: "Red Roses Bouquet", IsActive: true},
	}
	pRepo.On("ListPublic", mock.Anything, q).Return(items, int64(1), nil)

	out, err := uc.ListPublicProducts(ctx, in)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 20, out.Limit)
	assert.Equal(t, 1, len(out.Items))

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_GetProductDetail_NotFound_WhenInactive(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(CategoryRepoMock), cache.NewNoopCache())

	pRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, IsActive: false}, nil)

	_, err := uc.GetProductDetail(ctx, 1)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestProductUsecase_GetProductDetail_NotFound_WhenRepoNotFound(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(CategoryRepoMock), cache.NewNoopCache())

	pRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProductDetail(ctx, 99)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

// キャッシュヒット時はDBに行かない
func TestProductUsecase_GetProductDetail_CacheHit(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	c := new(CacheMock)
	uc := usecase.NewProductUsecase(pRepo, new(CategoryRepoMock), c)

	cached, _ := json.Marshal(model.Product{ID: 1, Name: "Red Roses Bouquet", IsActive: true})
	c.On("Get", mock.Anything, "product:1").Return(string(cached), nil)

	p, err := uc.GetProductDetail(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, "Red Roses Bouquet", p.Name)
	pRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// キャッシュミス時はDBから読んでTTL付きで載せる
func TestProductUsecase_GetProductDetail_CacheMissFillsCache(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	c := new(CacheMock)
	uc := usecase.NewProductUsecase(pRepo, new(CategoryRepoMock), c)

	c.On("Get", mock.Anything, "product:1").Return("", nil)
	pRepo.On("FindByID", mock.Anything, int64(1)).Return(
		model.Product{ID: 1, Name: "Red Roses Bouquet", IsActive: true}, nil)
	c.On("Set", mock.Anything, "product:1", mock.Anything, mock.Anything).Return(nil)

	p, err := uc.GetProductDetail(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	c.AssertExpectations(t)
}

func TestProductUsecase_ListCategories_Success(t *testing.T) {
	ctx := context.Background()

	cRepo := new(CategoryRepoMock)
	uc := usecase.NewProductUsecase(new(ProductRepoMock), cRepo, cache.NewNoopCache())

	cRepo.On("List", mock.Anything).Return([]model.Category{
		{ID: 1, Name: "Roses", Slug: "roses"},
		{ID: 2, Name: "Tulips", Slug: "tulips"},
	}, nil)

	out, err := uc.ListCategories(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(out))
}
