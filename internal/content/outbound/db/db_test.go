package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/talentflow/internal/content/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/testkit"
)

func TestDB_Entries(t *testing.T) {
	conn := testkit.Postgres(t, "../../../../migrations/0001_init.up.sql", "testdata/fixtures.sql")
	s := NewDB(conn, instrument.NewNoop())
	ctx := context.Background()

	list, err := s.ListEntries(ctx, entity.KindIndustry)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "https://talentflow.pt/hotelaria", list[0].URL)

	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	p := entity.Entry{ID: 20, Kind: entity.KindPartner, Name: "Hotel Atlântico", URL: "https://atlantico.pt", Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.CreateEntry(ctx, p))

	p.Active = false
	require.NoError(t, s.UpdateEntry(ctx, p))
	got, err := s.GetEntry(ctx, entity.KindPartner, 20)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, "https://atlantico.pt", got.URL)

	_, err = s.GetEntry(ctx, entity.KindIndustry, 20)
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	require.NoError(t, s.DeleteEntry(ctx, entity.KindPartner, 20))
	assert.ErrorIs(t, s.DeleteEntry(ctx, entity.KindPartner, 20), goerror.ErrNotFound)
}

func TestDB_Options(t *testing.T) {
	conn := testkit.Postgres(t, "../../../../migrations/0001_init.up.sql", "testdata/fixtures.sql")
	s := NewDB(conn, instrument.NewNoop())
	ctx := context.Background()

	opts, err := s.GetOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cozinheiro", "Rececionista"}, opts[entity.OptionFunctions])

	require.NoError(t, s.SaveOptions(ctx, entity.Options{
		entity.OptionFunctions: {"Barman"},
		entity.OptionGeoAreas:  {},
	}))

	opts, err = s.GetOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Barman"}, opts[entity.OptionFunctions])
	assert.Empty(t, opts[entity.OptionGeoAreas])
	assert.NotContains(t, opts, entity.OptionCompetences)
}
