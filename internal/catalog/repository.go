package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/urbanx-storefront/pkg/db/models"
	pkgerrors "github.com/angelmondragon/urbanx-storefront/pkg/errors"
)

// Repository serves the catalog from the products table.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Lookup(ctx context.Context, id string) (Product, error) {
	var row models.Product
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Product{}, ErrProductNotFound
		}
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return FromModel(row), nil
}

// ListAll returns every product ordered by catalog position.
func (r *Repository) ListAll(ctx context.Context) ([]Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).Order("position ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out, nil
}

// Upsert writes products in the given order, replacing rows that share an id.
// Every product is validated first; all problems are reported together and
// nothing is written when any product is invalid.
func (r *Repository) Upsert(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}
	var errs error
	rows := make([]models.Product, 0, len(products))
	for i, p := range products {
		if err := validateProduct(p); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("product %d: %w", i, err))
			continue
		}
		rows = append(rows, ToModel(p, i))
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid catalog products")
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&rows).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert products")
	}
	return nil
}

func validateProduct(p Product) error {
	var errs error
	if p.ID == "" {
		errs = multierr.Append(errs, errors.New("id is required"))
	}
	if p.Name == "" {
		errs = multierr.Append(errs, errors.New("name is required"))
	}
	if p.Price.IsNegative() {
		errs = multierr.Append(errs, errors.New("price must not be negative"))
	}
	if !p.Category.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("invalid category %q", p.Category))
	}
	for _, size := range p.Sizes {
		if !size.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("invalid size %q", size))
		}
	}
	return errs
}
