// Package sqlite provides the SQLite-backed domain.Repository of the ledger.
//
// WAL mode is enabled on Open so list queries from the gateway never block
// behind an in-flight order insert.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/ecommerce-gateway/internal/ledger-service/domain"

	// Pure-Go driver: no CGO, builds on Alpine.
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    -- NULL when the client sent no x-idempotency-key; UNIQUE ignores NULLs.
    idempotency_key  TEXT UNIQUE,
    request_id       TEXT    NOT NULL DEFAULT '',
    trace_id         TEXT    NOT NULL DEFAULT '',
    created_at       TEXT    NOT NULL
);

CREATE TABLE IF NOT EXISTS order_details (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id    INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    position    INTEGER NOT NULL,
    product_id  TEXT    NOT NULL,
    -- Decimal as TEXT, already rounded to the scale it is rendered with.
    price       TEXT    NOT NULL,
    quantity    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_order_details_order_id ON order_details(order_id, position);
`

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type Repository struct {
	db *sql.DB
}

var _ domain.Repository = (*Repository)(nil)

// Open opens (or creates) the database at path and applies the schema.
//
//	repo, err := sqlite.Open("./data/ledger.db")
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	// Single writer; queries inside a transaction must reuse the tx.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Create(ctx context.Context, o *domain.Order) (*domain.Order, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if o.IdempotencyKey != "" {
		var existing int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM orders WHERE idempotency_key = ?`, o.IdempotencyKey).Scan(&existing)
		switch {
		case err == nil:
			stored, err := getOrder(ctx, tx, existing)
			if err != nil {
				return nil, false, err
			}
			return stored, false, nil
		case !errors.Is(err, sql.ErrNoRows):
			return nil, false, fmt.Errorf("sqlite: lookup idempotency key: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (idempotency_key, request_id, trace_id, created_at) VALUES (?, ?, ?, ?)`,
		nullableString(o.IdempotencyKey), o.RequestID, o.TraceID, formatTime(o.CreatedAt),
	)
	if err != nil {
		return nil, false, fmt.Errorf("sqlite: insert order: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, false, fmt.Errorf("sqlite: order id: %w", err)
	}

	stored := *o
	stored.ID = orderID
	stored.Details = make([]domain.OrderDetail, len(o.Details))
	for i, d := range o.Details {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO order_details (order_id, position, product_id, price, quantity) VALUES (?, ?, ?, ?, ?)`,
			orderID, i, d.ProductID, d.Price.String(), d.Quantity,
		)
		if err != nil {
			return nil, false, fmt.Errorf("sqlite: insert detail %d of order %d: %w", i, orderID, err)
		}
		detailID, err := res.LastInsertId()
		if err != nil {
			return nil, false, fmt.Errorf("sqlite: detail id: %w", err)
		}
		d.ID = detailID
		stored.Details[i] = d
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("sqlite: commit order: %w", err)
	}
	return &stored, true, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return getOrder(ctx, r.db, id)
}

// List returns every order by ascending id with its details in insertion order.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	orders, byID, err := listOrders(ctx, r.db)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT order_id, id, product_id, price, quantity FROM order_details ORDER BY order_id, position`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list details: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var d domain.OrderDetail
		var price string
		if err := rows.Scan(&orderID, &d.ID, &d.ProductID, &price, &d.Quantity); err != nil {
			return nil, fmt.Errorf("sqlite: scan detail: %w", err)
		}
		if d.Price, err = parsePrice(price); err != nil {
			return nil, err
		}
		if o, ok := byID[orderID]; ok {
			o.Details = append(o.Details, d)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate details: %w", err)
	}
	return orders, nil
}

func listOrders(ctx context.Context, q querier) ([]*domain.Order, map[int64]*domain.Order, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, COALESCE(idempotency_key, ''), request_id, trace_id, created_at FROM orders ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	byID := map[int64]*domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, nil, err
		}
		o.Details = []domain.OrderDetail{}
		orders = append(orders, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("sqlite: iterate orders: %w", err)
	}
	return orders, byID, nil
}

func getOrder(ctx context.Context, q querier, id int64) (*domain.Order, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, COALESCE(idempotency_key, ''), request_id, trace_id, created_at FROM orders WHERE id = ?`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlite: order %d: %w", id, domain.ErrOrderNotFound)
	}
	if err != nil {
		return nil, err
	}

	details, err := getDetails(ctx, q, id)
	if err != nil {
		return nil, err
	}
	o.Details = details
	return o, nil
}

func getDetails(ctx context.Context, q querier, orderID int64) ([]domain.OrderDetail, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, product_id, price, quantity FROM order_details WHERE order_id = ? ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: details of order %d: %w", orderID, err)
	}
	defer rows.Close()

	details := []domain.OrderDetail{}
	for rows.Next() {
		var d domain.OrderDetail
		var price string
		if err := rows.Scan(&d.ID, &d.ProductID, &price, &d.Quantity); err != nil {
			return nil, fmt.Errorf("sqlite: scan detail: %w", err)
		}
		if d.Price, err = parsePrice(price); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate details: %w", err)
	}
	return details, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*domain.Order, error) {
	var o domain.Order
	var createdAt string
	if err := s.Scan(&o.ID, &o.IdempotencyKey, &o.RequestID, &o.TraceID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("sqlite: scan order: %w", err)
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	o.CreatedAt = t
	return &o, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("sqlite: parse price %q: %w", s, err)
	}
	return d, nil
}

// nullableString stores NULL for an empty key so the UNIQUE index ignores it.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
