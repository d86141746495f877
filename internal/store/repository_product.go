package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/models"
)

type productRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewProductRepository(db *DB, logger *logger.Logger) ProductRepository {
	logger.Debug().Msg("creating product repository")
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

func scanProduct(row rowScanner) (models.Product, error) {
	var product models.Product
	err := row.Scan(&product.ID, &product.Name, &product.Price, &product.Type, &product.Icon, &product.BorderColor)
	product.Type = product.Type.Normalize()
	return product, err
}

func (p *productRepository) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertProductQuery(p.db.builder, product)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanProduct(p.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*productRepository.CreateProduct").Msg("error inserting product")
		return models.Product{}, p.db.classify(ErrExecutingStatement, err)
	}

	return created, nil
}

func (p *productRepository) GetProduct(ctx context.Context, productID int64) (models.Product, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectProductByIDQuery(p.db.builder, productID)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	product, err := scanProduct(p.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*productRepository.GetProduct").Int64("product_id", productID).Msg("error selecting product")
		return models.Product{}, p.db.classify(ErrExecutingQuery, err)
	}

	return product, nil
}

func (p *productRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectProductsQuery(p.db.builder).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.ListProducts").Msg("error selecting products")
		return nil, p.db.classify(ErrExecutingQuery, err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		product, scanErr := scanProduct(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*productRepository.ListProducts").Msg("error scanning product row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return products, nil
}

// UpdateProduct writes the non-nil fields of update. An empty update
// returns the stored product unchanged.
func (p *productRepository) UpdateProduct(ctx context.Context, update models.ProductUpdate) (models.Product, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return p.GetProduct(ctx, update.ID)
	}

	query, args, err := buildUpdateProductQuery(p.db.builder, update)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	product, err := scanProduct(p.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*productRepository.UpdateProduct").Int64("product_id", update.ID).Msg("error updating product")
		return models.Product{}, p.db.classify(ErrExecutingStatement, err)
	}

	return product, nil
}

func (p *productRepository) DeleteProduct(ctx context.Context, productID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteProductQuery(p.db.builder, productID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := p.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.DeleteProduct").Int64("product_id", productID).Msg("error deleting product")
		return p.db.classify(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}
