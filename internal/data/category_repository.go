package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const categoryColumns = `name, icon, description, sort_order`

// CategoryRepository handles database operations for categories.
type CategoryRepository struct {
	DB *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// FindByName finds a category by name.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*Category, error) {
	var category Category
	err := r.DB.GetContext(ctx, &category, "SELECT "+categoryColumns+" FROM categories WHERE name = ?", name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found is not an error
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

// GetAll retrieves all categories in display order.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]Category, error) {
	categories := []Category{}
	err := r.DB.SelectContext(ctx, &categories, "SELECT "+categoryColumns+" FROM categories ORDER BY sort_order, name")
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// Save creates a new category.
func (r *CategoryRepository) Save(ctx context.Context, category *Category) error {
	query := `INSERT INTO categories (name, icon, description, sort_order) VALUES (:name, :icon, :description, :sort_order)`
	if _, err := r.DB.NamedExecContext(ctx, query, category); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}
