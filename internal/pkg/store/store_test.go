package store

import (
	"context"
	"errors"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

var errStop = errors.New("stop")

// recordingPool captures the statements it is asked to run.
type recordingPool struct {
	sql  []string
	args [][]interface{}
	err  error
}

func (p *recordingPool) record(query sq.Sqlizer) {
	sql, args, _ := query.ToSql()
	p.sql = append(p.sql, sql)
	p.args = append(p.args, args)
}

func (p *recordingPool) Execx(_ context.Context, query sq.Sqlizer) (pgconn.CommandTag, error) {
	p.record(query)
	return pgconn.CommandTag{}, p.err
}

func (p *recordingPool) Queryx(_ context.Context, query sq.Sqlizer) (pgx.Rows, error) {
	p.record(query)
	return nil, p.err
}

func (p *recordingPool) Ping(context.Context) error { return nil }
func (p *recordingPool) Close()                     {}

func TestListAwardDocuments_Query(t *testing.T) {
	pool := &recordingPool{err: errStop}
	s := NewStore(pool)

	prefix, ym := "2506_", "2025-06"
	_, err := s.ListAwardDocuments(context.Background(), ListAwardDocumentsOpts{
		Collection: "school",
		IDPrefix:   &prefix,
		YearMonth:  &ym,
	})
	assert.ErrorIs(t, err, errStop)

	require.Len(t, pool.sql, 1)
	assert.Equal(t,
		"SELECT collection, id, data, updated_at FROM documents WHERE collection = $1 AND (id LIKE $2 OR data->>'연월' = $3) ORDER BY id",
		pool.sql[0])
	assert.Equal(t, []interface{}{"school", `2506\_%`, "2025-06"}, pool.args[0])
}

func TestGetAwardDocument_NotFound(t *testing.T) {
	pool := &recordingPool{err: pgx.ErrNoRows}
	s := NewStore(pool)

	_, err := s.GetAwardDocument(context.Background(), "school", "2506_가람초")
	assert.ErrorIs(t, err, constants.ErrDBNotFound)
	assert.Contains(t, pool.sql[0], "WHERE (collection = $1 AND id = $2)")
}

func TestPutAwardDocument_Upsert(t *testing.T) {
	pool := &recordingPool{}
	s := NewStore(pool)

	err := s.PutAwardDocument(context.Background(), "school", domain.AwardDocument{ID: "2506_가람초", OrderingParty: "가람초"})
	require.NoError(t, err)

	require.Len(t, pool.sql, 1)
	assert.Contains(t, pool.sql[0], "INSERT INTO documents (collection,id,data) VALUES ($1,$2,$3)")
	assert.Contains(t, pool.sql[0], "on conflict (collection, id)")
	assert.Equal(t, "school", pool.args[0][0])
	assert.Equal(t, "2506_가람초", pool.args[0][1])
	assert.Contains(t, string(pool.args[0][2].([]byte)), `"발주처":"가람초"`)
}

func TestPrefixPattern(t *testing.T) {
	assert.Equal(t, `2506\_%`, prefixPattern("2506_"))
	assert.Equal(t, `a\%b\\c%`, prefixPattern(`a%b\c`))
}
