package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/internal/store"
	"github.com/MKhiriev/go-drink-ledger/internal/validators"
	"github.com/MKhiriev/go-drink-ledger/models"
	"github.com/shopspring/decimal"
)

type productService struct {
	productRepository store.ProductRepository
	validator         validators.Validator

	logger *logger.Logger
}

func NewProductService(productRepository store.ProductRepository, logger *logger.Logger) ProductService {
	return &productService{
		productRepository: productRepository,
		validator:         validators.NewLedgerValidator(),
		logger:            logger,
	}
}

// CreateProduct validates and stores a catalog entry. Unknown categories
// are stored as "other".
func (p *productService) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	log := logger.FromContext(ctx)

	product.Name = strings.TrimSpace(product.Name)
	if err := p.validator.Validate(ctx, product); err != nil {
		log.Err(err).Str("func", "*productService.CreateProduct").Str("price", product.Price.String()).Msg("invalid product")
		return models.Product{}, mapValidationError(err)
	}
	product.Type = product.Type.Normalize()

	created, err := p.productRepository.CreateProduct(ctx, product)
	if err != nil {
		log.Err(err).Str("func", "*productService.CreateProduct").Msg("product creation failed")
		return models.Product{}, mapStoreError(err, nil)
	}

	return created, nil
}

func (p *productService) GetProduct(ctx context.Context, productID int64) (models.Product, error) {
	product, err := p.productRepository.GetProduct(ctx, productID)
	if err != nil {
		return models.Product{}, mapStoreError(err, ErrProductNotFound)
	}

	return product, nil
}

func (p *productService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := p.productRepository.ListProducts(ctx)
	if err != nil {
		return nil, mapStoreError(err, nil)
	}

	return products, nil
}

// UpdateProduct applies a partial update. Existing transactions keep the
// values frozen at purchase time.
func (p *productService) UpdateProduct(ctx context.Context, update models.ProductUpdate) (models.Product, error) {
	log := logger.FromContext(ctx)

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		update.Name = &name
	}
	if err := p.validator.Validate(ctx, update); err != nil {
		log.Err(err).Str("func", "*productService.UpdateProduct").Int64("product_id", update.ID).Msg("invalid product update")
		return models.Product{}, mapValidationError(err)
	}
	if update.Type != nil {
		productType := update.Type.Normalize()
		update.Type = &productType
	}

	product, err := p.productRepository.UpdateProduct(ctx, update)
	if err != nil {
		log.Err(err).Str("func", "*productService.UpdateProduct").Int64("product_id", update.ID).Msg("product update failed")
		return models.Product{}, mapStoreError(err, ErrProductNotFound)
	}

	return product, nil
}

// SetPrice is the inline price edit of the admin catalog.
func (p *productService) SetPrice(ctx context.Context, productID int64, price decimal.Decimal) (models.Product, error) {
	return p.UpdateProduct(ctx, models.ProductUpdate{ID: productID, Price: &price})
}

// DeleteProduct removes the catalog entry. Transactions and history keep
// their frozen copies.
func (p *productService) DeleteProduct(ctx context.Context, productID int64) error {
	if err := p.productRepository.DeleteProduct(ctx, productID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*productService.DeleteProduct").Int64("product_id", productID).Msg("product delete failed")
		return mapStoreError(err, ErrProductNotFound)
	}

	return nil
}
