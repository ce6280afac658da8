/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */


package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	errFakeRowScanMismatch    = errors.New("fake row scan mismatch")
	errFakeRowUnsupportedDest = errors.New("unsupported destination type")
	errFakeQueryUnexpected    = errors.New("unexpected query")
	errFakeQueryFailed        = errors.New("query failed")
)

type fakeRows struct {
	rows   [][]any
	idx    int
	err    error
	closed bool
}

func (r *fakeRows) Close()                                     { r.closed = true }
func (r *fakeRows) Err() error                                 { return r.err }
func (*fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (*fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (*fakeRows) RawValues() [][]byte                          { return nil }
func (*fakeRows) Conn() *pgx.Conn                              { return nil }
func (r *fakeRows) Values() ([]any, error)                     { return r.rows[r.idx-1], nil }
func (r *fakeRows) Scan(dest ...any) error                     { return assignFakeValues(r.rows[r.idx-1], dest) }

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}

	r.idx++

	return true
}

func assignFakeValues(values, dest []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("%w: dest=%d values=%d", errFakeRowScanMismatch, len(dest), len(values))
	}

	for i, d := range dest {
		switch ptr := d.(type) {
		case *string:
			val, _ := values[i].(string)
			*ptr = val
		case *[]string:
			val, _ := values[i].([]string)
			*ptr = val
		case *sql.NullString:
			val, ok := values[i].(string)
			*ptr = sql.NullString{String: val, Valid: ok}
		case *sql.NullFloat64:
			val, ok := values[i].(float64)
			*ptr = sql.NullFloat64{Float64: val, Valid: ok}
		case *sql.NullTime:
			val, ok := values[i].(time.Time)
			*ptr = sql.NullTime{Time: val, Valid: ok}
		default:
			return fmt.Errorf("%w: %T", errFakeRowUnsupportedDest, d)
		}
	}

	return nil
}

type fakeQuery struct {
	sql  string
	args []any
}

type fakeQuerier struct {
	results map[string]*fakeRows
	fail    map[string]error
	calls   []fakeQuery
}

func (q *fakeQuerier) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	q.calls = append(q.calls, fakeQuery{sql: query, args: args})

	if err, ok := q.fail[query]; ok {
		return nil, err
	}

	rows, ok := q.results[query]
	if !ok {
		return nil, errFakeQueryUnexpected
	}

	return rows, nil
}

type fakeMigrationExec struct {
	applied  []string
	executed []string
	args     [][]any
}

func (f *fakeMigrationExec) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.executed = append(f.executed, query)
	f.args = append(f.args, args)

	return pgconn.CommandTag{}, nil
}

func (f *fakeMigrationExec) Query(context.Context, string, ...any) (pgx.Rows, error) {
	rows := &fakeRows{}
	for _, v := range f.applied {
		rows.rows = append(rows.rows, []any{v})
	}

	return rows, nil
}
