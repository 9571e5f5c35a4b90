// Package xpgx is a thin layer over pgxpool that runs squirrel builders.
package xpgx

import (
	"context"
	"fmt"
	sq "github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/logger"
	"time"
)

type Pool interface {
	Execx(ctx context.Context, query sq.Sqlizer) (pgconn.CommandTag, error)
	Queryx(ctx context.Context, query sq.Sqlizer) (pgx.Rows, error)
	Ping(ctx context.Context) error
	Close()
}

type pool struct {
	*pgxpool.Pool
}

// Connect opens a pool and pings it, retrying a few times while the database comes up.
func Connect(ctx context.Context, dsn string) (Pool, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("xpgx.Connect: %w", err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(2*time.Second), 5), ctx)
	err = backoff.Retry(func() error {
		if err := p.Ping(ctx); err != nil {
			logger.Warnf(ctx, "postgres ping: %s", err.Error())
			return err
		}
		return nil
	}, b)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("xpgx.Connect: %w", err)
	}

	return &pool{p}, nil
}

func (p *pool) Execx(ctx context.Context, query sq.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("xpgx.Execx: %w", err)
	}
	return p.Exec(ctx, sql, args...)
}

func (p *pool) Queryx(ctx context.Context, query sq.Sqlizer) (pgx.Rows, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("xpgx.Queryx: %w", err)
	}
	return p.Query(ctx, sql, args...)
}

// Getx scans exactly one row into T by column name. No rows yields pgx.ErrNoRows.
func Getx[T any](ctx context.Context, p Pool, query sq.Sqlizer) (T, error) {
	rows, err := p.Queryx(ctx, query)
	if err != nil {
		var zero T
		return zero, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
}

// Selectx scans every row into T by column name.
func Selectx[T any](ctx context.Context, p Pool, query sq.Sqlizer) ([]T, error) {
	rows, err := p.Queryx(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}
