package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/talentflow/internal/content/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
)

type table struct {
	name   string
	urlCol string
}

var tables = map[entity.Kind]table{
	entity.KindIndustry: {name: "industries", urlCol: "link_url"},
	entity.KindPartner:  {name: "partners", urlCol: "website_url"},
}

func tableOf(kind entity.Kind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, fmt.Errorf("content: unknown kind %q", kind)
	}
	return t, nil
}

func (t table) columns() string {
	return "id, name, description, image_url, " + t.urlCol + ", active, created_at, updated_at"
}

func scanEntry(kind entity.Kind, row pgx.Row) (entity.Entry, error) {
	e := entity.Entry{Kind: kind}
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.ImageURL, &e.URL, &e.Active, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (s *DB) ListEntries(ctx context.Context, kind entity.Kind) (_ []entity.Entry, err error) {
	ctx, span := s.startSpan(ctx, "ListEntries")
	defer func() { s.endSpan(span, err) }()

	t, err := tableOf(kind)
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.Query(ctx, "SELECT "+t.columns()+" FROM "+t.name+" ORDER BY created_at, id")
	if err != nil {
		return nil, s.mapError(err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Entry, error) {
		return scanEntry(kind, row)
	})

	return entries, s.mapError(err)
}

func (s *DB) GetEntry(ctx context.Context, kind entity.Kind, id int64) (_ *entity.Entry, err error) {
	ctx, span := s.startSpan(ctx, "GetEntry")
	defer func() { s.endSpan(span, err) }()

	t, err := tableOf(kind)
	if err != nil {
		return nil, err
	}

	e, err := scanEntry(kind, s.conn.QueryRow(ctx, "SELECT "+t.columns()+" FROM "+t.name+" WHERE id = $1", id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return &e, nil
}

func (s *DB) CreateEntry(ctx context.Context, e entity.Entry) (err error) {
	ctx, span := s.startSpan(ctx, "CreateEntry")
	defer func() { s.endSpan(span, err) }()

	t, err := tableOf(e.Kind)
	if err != nil {
		return err
	}

	_, err = s.conn.Exec(ctx,
		"INSERT INTO "+t.name+" ("+t.columns()+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		e.ID, e.Name, e.Description, e.ImageURL, e.URL, e.Active, e.CreatedAt, e.UpdatedAt,
	)

	return s.mapError(err)
}

func (s *DB) UpdateEntry(ctx context.Context, e entity.Entry) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateEntry")
	defer func() { s.endSpan(span, err) }()

	t, err := tableOf(e.Kind)
	if err != nil {
		return err
	}

	tag, err := s.conn.Exec(ctx,
		"UPDATE "+t.name+" SET name = $2, description = $3, image_url = $4, "+t.urlCol+" = $5, active = $6, updated_at = $7 WHERE id = $1",
		e.ID, e.Name, e.Description, e.ImageURL, e.URL, e.Active, e.UpdatedAt,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) DeleteEntry(ctx context.Context, kind entity.Kind, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteEntry")
	defer func() { s.endSpan(span, err) }()

	t, err := tableOf(kind)
	if err != nil {
		return err
	}

	tag, err := s.conn.Exec(ctx, "DELETE FROM "+t.name+" WHERE id = $1", id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
