package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type productRow struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID       int     `bun:"id,pk"`
	Name     string  `bun:"name,notnull"`
	Price    float64 `bun:"price,notnull"`
	Category string  `bun:"category,notnull"`
	InStock  bool    `bun:"in_stock,notnull"`
}

func (r productRow) product() Product {
	return Product{
		ID:       r.ID,
		Name:     r.Name,
		Price:    r.Price,
		Category: r.Category,
		InStock:  r.InStock,
	}
}

// PostgresStore keeps the catalog in a `products` table.
type PostgresStore struct {
	db *bun.DB
}

// OpenPostgresStore connects with dsn and creates the products table if missing.
func OpenPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	store := NewPostgresStore(bun.NewDB(sqldb, pgdialect.New()))
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*productRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create products table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) List(ctx context.Context) ([]Product, error) {
	var rows []productRow
	if err := s.listQuery(&rows).Scan(ctx); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, r.product())
	}
	return products, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int) (Product, error) {
	var row productRow
	err := s.getQuery(&row, id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, notFound(id)
	}
	if err != nil {
		return Product{}, fmt.Errorf("get product id=%d: %w", id, err)
	}
	return row.product(), nil
}

func (s *PostgresStore) Add(ctx context.Context, in NewProduct) (Product, error) {
	row := productRow{
		Name:     in.Name,
		Price:    in.Price,
		Category: in.Category,
		InStock:  in.InStock,
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx, "LOCK TABLE products IN SHARE ROW EXCLUSIVE MODE"); err != nil {
			return fmt.Errorf("lock products: %w", err)
		}

		var maxID int
		if err := tx.NewSelect().
			TableExpr("products").
			ColumnExpr("coalesce(max(id), 0)").
			Scan(ctx, &maxID); err != nil {
			return fmt.Errorf("read max id: %w", err)
		}

		row.ID = maxID + 1
		if _, err := tx.NewInsert().Model(&row).Exec(ctx); err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		return nil
	})
	if err != nil {
		return Product{}, err
	}
	return row.product(), nil
}

func (s *PostgresStore) Stats(ctx context.Context) (Stats, error) {
	var (
		count int
		avg   float64
	)
	if err := s.statsQuery().Scan(ctx, &count, &avg); err != nil {
		return Stats{}, fmt.Errorf("product stats: %w", err)
	}
	return Stats{TotalCount: count, AveragePrice: avg}, nil
}

func (s *PostgresStore) listQuery(rows *[]productRow) *bun.SelectQuery {
	return s.db.NewSelect().Model(rows).Order("p.id ASC")
}

func (s *PostgresStore) getQuery(row *productRow, id int) *bun.SelectQuery {
	return s.db.NewSelect().Model(row).Where("p.id = ?", id).Limit(1)
}

func (s *PostgresStore) statsQuery() *bun.SelectQuery {
	return s.db.NewSelect().
		TableExpr("products").
		ColumnExpr("count(*)").
		ColumnExpr("coalesce(avg(price), 0)")
}
