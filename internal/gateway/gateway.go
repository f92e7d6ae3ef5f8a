// Package gateway is a generic table-scoped query client for the hosted data
// backend. Repositories describe reads and writes in terms of tables, filters
// and ordering; the gateway renders them into parameterized SQL and never
// interpolates values.
package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/XSAM/otelsql"
	"github.com/dlcastillo/storefront/internal/config"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	_ "github.com/lib/pq"
)

type Op string

const (
	OpEq  Op = "="
	OpNeq Op = "!="
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpIn  Op = "IN"
)

type Filter struct {
	Column string
	Op     Op
	Value  any
}

func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

func In(column string, values ...any) Filter {
	return Filter{Column: column, Op: OpIn, Value: values}
}

// Query describes a select against one table. Zero Limit means no limit.
type Query struct {
	Table      string
	Columns    []string
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
}

// Values holds the columns of an insert or update. Rendering is
// alphabetical by column so generated SQL is deterministic.
type Values map[string]any

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func checkIdent(name string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}

	return nil
}

// Querier is satisfied by both the client and an open transaction.
type Querier interface {
	Select(ctx context.Context, q Query) (*sql.Rows, error)
	SelectRow(ctx context.Context, q Query) (*sql.Row, error)
	Insert(ctx context.Context, table string, vals Values) error
	InsertReturning(ctx context.Context, table string, vals Values, returning ...string) (*sql.Row, error)
	Update(ctx context.Context, table string, vals Values, filters []Filter) (int64, error)
	Delete(ctx context.Context, table string, filters []Filter) (int64, error)
}

type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Client struct {
	db *sql.DB
}

func New(cfg *config.Gateway) (*Client, error) {

	db, err := otelsql.Open("postgres", cfg.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		return nil, fmt.Errorf("failed to open gateway connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to reach the data backend: %w", err)
	}

	return &Client{db: db}, nil
}

// NewWithDB wraps an existing connection; used by tests.
func NewWithDB(db *sql.DB) *Client {
	return &Client{db: db}
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) Select(ctx context.Context, q Query) (*sql.Rows, error) {
	return doSelect(ctx, c.db, q)
}

func (c *Client) SelectRow(ctx context.Context, q Query) (*sql.Row, error) {
	return doSelectRow(ctx, c.db, q)
}

func (c *Client) Insert(ctx context.Context, table string, vals Values) error {
	return doInsert(ctx, c.db, table, vals)
}

func (c *Client) InsertReturning(ctx context.Context, table string, vals Values, returning ...string) (*sql.Row, error) {
	return doInsertReturning(ctx, c.db, table, vals, returning)
}

func (c *Client) Update(ctx context.Context, table string, vals Values, filters []Filter) (int64, error) {
	return doUpdate(ctx, c.db, table, vals, filters)
}

func (c *Client) Delete(ctx context.Context, table string, filters []Filter) (int64, error) {
	return doDelete(ctx, c.db, table, filters)
}

// Tx is one atomic write against the backend. Checkout relies on this so an
// order row can never be committed without its items.
type Tx struct {
	tx *sql.Tx
}

func (t *Tx) Select(ctx context.Context, q Query) (*sql.Rows, error) {
	return doSelect(ctx, t.tx, q)
}

func (t *Tx) SelectRow(ctx context.Context, q Query) (*sql.Row, error) {
	return doSelectRow(ctx, t.tx, q)
}

func (t *Tx) Insert(ctx context.Context, table string, vals Values) error {
	return doInsert(ctx, t.tx, table, vals)
}

func (t *Tx) InsertReturning(ctx context.Context, table string, vals Values, returning ...string) (*sql.Row, error) {
	return doInsertReturning(ctx, t.tx, table, vals, returning)
}

func (t *Tx) Update(ctx context.Context, table string, vals Values, filters []Filter) (int64, error) {
	return doUpdate(ctx, t.tx, table, vals, filters)
}

func (t *Tx) Delete(ctx context.Context, table string, filters []Filter) (int64, error) {
	return doDelete(ctx, t.tx, table, filters)
}

func (c *Client) InTx(ctx context.Context, fn func(tx *Tx) error) error {

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&Tx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func doSelect(ctx context.Context, ex executor, q Query) (*sql.Rows, error) {

	query, args, err := BuildSelect(q)
	if err != nil {
		return nil, err
	}

	return ex.QueryContext(ctx, query, args...)
}

func doSelectRow(ctx context.Context, ex executor, q Query) (*sql.Row, error) {

	q.Limit = 1

	query, args, err := BuildSelect(q)
	if err != nil {
		return nil, err
	}

	return ex.QueryRowContext(ctx, query, args...), nil
}

func doInsert(ctx context.Context, ex executor, table string, vals Values) error {

	query, args, err := BuildInsert(table, vals, nil)
	if err != nil {
		return err
	}

	_, err = ex.ExecContext(ctx, query, args...)

	return err
}

func doInsertReturning(ctx context.Context, ex executor, table string, vals Values, returning []string) (*sql.Row, error) {

	query, args, err := BuildInsert(table, vals, returning)
	if err != nil {
		return nil, err
	}

	return ex.QueryRowContext(ctx, query, args...), nil
}

func doUpdate(ctx context.Context, ex executor, table string, vals Values, filters []Filter) (int64, error) {

	query, args, err := BuildUpdate(table, vals, filters)
	if err != nil {
		return 0, err
	}

	result, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func doDelete(ctx context.Context, ex executor, table string, filters []Filter) (int64, error) {

	query, args, err := BuildDelete(table, filters)
	if err != nil {
		return 0, err
	}

	result, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func BuildSelect(q Query) (string, []any, error) {

	if err := checkIdent(q.Table); err != nil {
		return "", nil, err
	}

	columns := "*"

	if len(q.Columns) > 0 {
		for _, col := range q.Columns {
			if err := checkIdent(col); err != nil {
				return "", nil, err
			}
		}
		columns = strings.Join(q.Columns, ", ")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", columns, q.Table)

	args, err := appendWhere(&sb, q.Filters, 0)
	if err != nil {
		return "", nil, err
	}

	if q.OrderBy != "" {
		if err := checkIdent(q.OrderBy); err != nil {
			return "", nil, err
		}
		direction := "ASC"
		if q.Descending {
			direction = "DESC"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s", q.OrderBy, direction)
	}

	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}

	return sb.String(), args, nil
}

func BuildInsert(table string, vals Values, returning []string) (string, []any, error) {

	if err := checkIdent(table); err != nil {
		return "", nil, err
	}

	if len(vals) == 0 {
		return "", nil, fmt.Errorf("insert into %s with no values", table)
	}

	columns := sortedColumns(vals)

	args := make([]any, 0, len(columns))
	placeholders := make([]string, 0, len(columns))

	for i, col := range columns {
		if err := checkIdent(col); err != nil {
			return "", nil, err
		}
		args = append(args, vals[col])
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	if len(returning) > 0 {
		for _, col := range returning {
			if err := checkIdent(col); err != nil {
				return "", nil, err
			}
		}
		fmt.Fprintf(&sb, " RETURNING %s", strings.Join(returning, ", "))
	}

	return sb.String(), args, nil
}

func BuildUpdate(table string, vals Values, filters []Filter) (string, []any, error) {

	if err := checkIdent(table); err != nil {
		return "", nil, err
	}

	if len(vals) == 0 {
		return "", nil, fmt.Errorf("update of %s with no values", table)
	}

	if len(filters) == 0 {
		return "", nil, fmt.Errorf("unfiltered update of %s rejected", table)
	}

	columns := sortedColumns(vals)

	var sb strings.Builder
	fmt.Fprintf(&sb, "UPDATE %s SET ", table)

	args := make([]any, 0, len(columns)+len(filters))

	for i, col := range columns {
		if err := checkIdent(col); err != nil {
			return "", nil, err
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s = $%d", col, i+1)
		args = append(args, vals[col])
	}

	filterArgs, err := appendWhere(&sb, filters, len(args))
	if err != nil {
		return "", nil, err
	}

	return sb.String(), append(args, filterArgs...), nil
}

func BuildDelete(table string, filters []Filter) (string, []any, error) {

	if err := checkIdent(table); err != nil {
		return "", nil, err
	}

	if len(filters) == 0 {
		return "", nil, fmt.Errorf("unfiltered delete of %s rejected", table)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "DELETE FROM %s", table)

	args, err := appendWhere(&sb, filters, 0)
	if err != nil {
		return "", nil, err
	}

	return sb.String(), args, nil
}

func appendWhere(sb *strings.Builder, filters []Filter, offset int) ([]any, error) {

	if len(filters) == 0 {
		return nil, nil
	}

	args := make([]any, 0, len(filters))

	for i, f := range filters {
		if err := checkIdent(f.Column); err != nil {
			return nil, err
		}

		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}

		if f.Op == OpIn {
			values, ok := f.Value.([]any)
			if !ok || len(values) == 0 {
				return nil, fmt.Errorf("IN filter on %s needs a non-empty value list", f.Column)
			}

			placeholders := make([]string, 0, len(values))
			for _, v := range values {
				args = append(args, v)
				placeholders = append(placeholders, fmt.Sprintf("$%d", offset+len(args)))
			}
			fmt.Fprintf(sb, "%s IN (%s)", f.Column, strings.Join(placeholders, ", "))
			continue
		}

		switch f.Op {
		case OpEq, OpNeq, OpGt, OpGte, OpLt, OpLte:
		default:
			return nil, fmt.Errorf("unsupported filter op %q", f.Op)
		}

		args = append(args, f.Value)
		fmt.Fprintf(sb, "%s %s $%d", f.Column, f.Op, offset+len(args))
	}

	return args, nil
}

func sortedColumns(vals Values) []string {

	columns := make([]string, 0, len(vals))
	for col := range vals {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	return columns
}
