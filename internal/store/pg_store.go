package store

import (
	"context"
	"errors"
	"fmt"

	caterrors "github.com/ankitjagtap00/Machine-test-ProductCat/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error codes used as the backstop for the check-then-write race:
// a unique index or FK constraint fires when two writers pass the
// application-level check concurrently.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PgCategoryStore implements CategoryStore using PostgreSQL as the data store.
type PgCategoryStore struct {
	db *pgxpool.Pool
}

// NewPgCategoryStore creates a new CategoryStore backed by a PostgreSQL connection pool.
func NewPgCategoryStore(dbp *pgxpool.Pool) *PgCategoryStore {
	return &PgCategoryStore{db: dbp}
}

// FindByID retrieves a category by its identifier.
// Returns ErrCategoryNotFound if no category exists with the given ID.
func (s *PgCategoryStore) FindByID(ctx context.Context, id int64) (*Category, error) {
	var c Category
	err := s.db.QueryRow(ctx,
		`SELECT id, name FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, caterrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}
	return &c, nil
}

// FindAll returns every category ordered by name ascending.
func (s *PgCategoryStore) FindAll(ctx context.Context) ([]Category, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

// FindPage returns one page of categories ordered by name ascending, plus the total count.
func (s *PgCategoryStore) FindPage(ctx context.Context, offset, limit int32) ([]Category, int64, error) {
	var total int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, name FROM categories ORDER BY name ASC OFFSET $1 LIMIT $2`,
		offset, limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories page: %w", err)
	}
	defer rows.Close()

	categories, err := scanCategories(rows)
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// NameExists reports whether a category other than excludeID has a case-insensitively equal name.
func (s *PgCategoryStore) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE LOWER(name) = LOWER($1) AND ($2::bigint <= 0 OR id <> $2)
		)`, name, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return exists, nil
}

// Exists reports whether a category with the given ID exists.
func (s *PgCategoryStore) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return exists, nil
}

// HasProducts reports whether any product references the category.
func (s *PgCategoryStore) HasProducts(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE category_id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category products: %w", err)
	}
	return exists, nil
}

// Create adds a new category. Returns ErrDuplicateName if the name is already taken.
func (s *PgCategoryStore) Create(ctx context.Context, name string) (*Category, error) {
	var c Category
	err := s.db.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, name`, name,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return nil, caterrors.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

// Update renames an existing category.
// Returns ErrCategoryNotFound if the row is absent and ErrDuplicateName on a name clash.
func (s *PgCategoryStore) Update(ctx context.Context, id int64, name string) (*Category, error) {
	var c Category
	err := s.db.QueryRow(ctx,
		`UPDATE categories SET name = $2 WHERE id = $1 RETURNING id, name`, id, name,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, caterrors.ErrCategoryNotFound
		}
		if isPgError(err, pgUniqueViolation) {
			return nil, caterrors.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &c, nil
}

// Delete removes a category by its ID.
// Returns ErrCategoryNotFound if the row is absent and ErrCategoryInUse if
// the FK constraint blocks the delete.
func (s *PgCategoryStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return caterrors.ErrCategoryInUse
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return caterrors.ErrCategoryNotFound
	}
	return nil
}

func scanCategories(rows pgx.Rows) ([]Category, error) {
	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category rows: %w", err)
	}
	return categories, nil
}

// PgProductStore implements ProductStore using PostgreSQL as the data store.
type PgProductStore struct {
	db *pgxpool.Pool
}

// NewPgProductStore creates a new ProductStore backed by a PostgreSQL connection pool.
func NewPgProductStore(dbp *pgxpool.Pool) *PgProductStore {
	return &PgProductStore{db: dbp}
}

// FindByID retrieves a product joined with its category name.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *PgProductStore) FindByID(ctx context.Context, id int64) (*ProductSummary, error) {
	var p ProductSummary
	err := s.db.QueryRow(ctx,
		`SELECT p.id, p.name, p.category_id, c.name
		 FROM products p
		 JOIN categories c ON c.id = p.category_id
		 WHERE p.id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.CategoryID, &p.CategoryName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, caterrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return &p, nil
}

// FindPage returns one page of the product-category join ordered by product
// name, plus the total product count.
func (s *PgProductStore) FindPage(ctx context.Context, offset, limit int32) ([]ProductSummary, int64, error) {
	var total int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT p.id, p.name, p.category_id, c.name
		 FROM products p
		 JOIN categories c ON c.id = p.category_id
		 ORDER BY p.name ASC OFFSET $1 LIMIT $2`,
		offset, limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products page: %w", err)
	}
	defer rows.Close()

	products := make([]ProductSummary, 0)
	for rows.Next() {
		var p ProductSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.CategoryName); err != nil {
			return nil, 0, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate product rows: %w", err)
	}
	return products, total, nil
}

// NameExists reports whether a product other than excludeID has a case-insensitively equal name.
func (s *PgProductStore) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM products
			WHERE LOWER(name) = LOWER($1) AND ($2::bigint <= 0 OR id <> $2)
		)`, name, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check product name: %w", err)
	}
	return exists, nil
}

// Create adds a new product.
// Returns ErrDuplicateName or ErrInvalidReference on constraint violations.
func (s *PgProductStore) Create(ctx context.Context, name string, categoryID int64) (*Product, error) {
	var p Product
	err := s.db.QueryRow(ctx,
		`INSERT INTO products (name, category_id) VALUES ($1, $2)
		 RETURNING id, name, category_id`,
		name, categoryID,
	).Scan(&p.ID, &p.Name, &p.CategoryID)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return nil, caterrors.ErrDuplicateName
		}
		if isPgError(err, pgForeignKeyViolation) {
			return nil, caterrors.ErrInvalidReference
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &p, nil
}

// Update modifies an existing product.
// Returns ErrProductNotFound if the row is absent, ErrDuplicateName or
// ErrInvalidReference on constraint violations.
func (s *PgProductStore) Update(ctx context.Context, id int64, name string, categoryID int64) (*Product, error) {
	var p Product
	err := s.db.QueryRow(ctx,
		`UPDATE products SET name = $2, category_id = $3 WHERE id = $1
		 RETURNING id, name, category_id`,
		id, name, categoryID,
	).Scan(&p.ID, &p.Name, &p.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, caterrors.ErrProductNotFound
		}
		if isPgError(err, pgUniqueViolation) {
			return nil, caterrors.ErrDuplicateName
		}
		if isPgError(err, pgForeignKeyViolation) {
			return nil, caterrors.ErrInvalidReference
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &p, nil
}

// Delete removes a product by its ID.
// Returns ErrProductNotFound if the row is absent.
func (s *PgProductStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return caterrors.ErrProductNotFound
	}
	return nil
}

// isPgError reports whether err is a PgError with the given SQLSTATE code.
func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
