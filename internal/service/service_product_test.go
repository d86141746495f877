package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/internal/mock"
	"github.com/MKhiriev/go-drink-ledger/internal/store"
	"github.com/MKhiriev/go-drink-ledger/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestProductSvc(t *testing.T, ctrl *gomock.Controller) (ProductService, *mock.MockProductRepository) {
	t.Helper()
	repo := mock.NewMockProductRepository(ctrl)
	return NewProductService(repo, logger.Nop()), repo
}

func TestProductService_CreateProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestProductSvc(t, ctrl)

	repo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.Product) (models.Product, error) {
			assert.Equal(t, "Guaraná", p.Name)
			assert.Equal(t, models.ProductTypeOther, p.Type)
			p.ID = 4
			return p, nil
		},
	)

	product, err := svc.CreateProduct(context.Background(), models.Product{
		Name:  " Guaraná ",
		Price: decimal.RequireFromString("4.50"),
		Type:  "soda",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), product.ID)
}

func TestProductService_CreateProduct_FreeIsAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestProductSvc(t, ctrl)

	repo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(models.Product{ID: 1}, nil)

	_, err := svc.CreateProduct(context.Background(), models.Product{Name: "Water", Price: decimal.Zero})
	require.NoError(t, err)
}

func TestProductService_CreateProduct_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestProductSvc(t, ctrl)

	_, err := svc.CreateProduct(context.Background(), models.Product{Name: "", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.CreateProduct(context.Background(), models.Product{Name: "Coke", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrNegativePrice)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProductService_GetProduct_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestProductSvc(t, ctrl)

	repo.EXPECT().GetProduct(gomock.Any(), int64(7)).Return(models.Product{}, store.ErrProductNotFound)

	_, err := svc.GetProduct(context.Background(), 7)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestProductSvc(t, ctrl)

	name := " Monster Ultra "
	productType := models.ProductType("energy")
	repo.EXPECT().UpdateProduct(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.ProductUpdate) (models.Product, error) {
			assert.Equal(t, "Monster Ultra", *u.Name)
			assert.Equal(t, models.ProductTypeOther, *u.Type)
			return models.Product{ID: u.ID, Name: *u.Name}, nil
		},
	)

	product, err := svc.UpdateProduct(context.Background(), models.ProductUpdate{ID: 2, Name: &name, Type: &productType})
	require.NoError(t, err)
	assert.Equal(t, "Monster Ultra", product.Name)
}

func TestProductService_UpdateProduct_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestProductSvc(t, ctrl)

	_, err := svc.UpdateProduct(context.Background(), models.ProductUpdate{ID: 1})
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	blank := "  "
	_, err = svc.UpdateProduct(context.Background(), models.ProductUpdate{ID: 1, Name: &blank})
	assert.ErrorIs(t, err, ErrEmptyName)

	negative := decimal.RequireFromString("-0.01")
	_, err = svc.UpdateProduct(context.Background(), models.ProductUpdate{ID: 1, Price: &negative})
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestProductService_SetPrice(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestProductSvc(t, ctrl)

	repo.EXPECT().UpdateProduct(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.ProductUpdate) (models.Product, error) {
			assert.Nil(t, u.Name)
			assert.True(t, u.Price.Equal(decimal.RequireFromString("6")))
			return models.Product{ID: u.ID, Price: *u.Price}, nil
		},
	)

	product, err := svc.SetPrice(context.Background(), 3, decimal.RequireFromString("6.00"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), product.ID)

	_, err = svc.SetPrice(context.Background(), 3, decimal.NewFromInt(-2))
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestProductSvc(t, ctrl)

	repo.EXPECT().DeleteProduct(gomock.Any(), int64(1)).Return(nil)
	repo.EXPECT().DeleteProduct(gomock.Any(), int64(2)).Return(store.ErrProductNotFound)

	require.NoError(t, svc.DeleteProduct(context.Background(), 1))
	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), 2), ErrNotFound)
}
