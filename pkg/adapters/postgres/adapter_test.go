package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlsh/pkg/adapter"
)

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  adapter.Config
		want string
	}{
		{
			name: "defaults",
			cfg:  adapter.Config{Database: "shop"},
			want: "host=localhost port=5432 dbname=shop sslmode=disable",
		},
		{
			name: "full config",
			cfg: adapter.Config{
				Host:     "db.internal",
				Port:     5433,
				Database: "shop",
				Username: "app",
				Password: "secret",
			},
			want: "host=db.internal port=5433 dbname=shop sslmode=disable user=app password=secret",
		},
		{
			name: "sslmode option",
			cfg: adapter.Config{
				Database: "shop",
				Options:  map[string]any{"sslmode": "require"},
			},
			want: "host=localhost port=5432 dbname=shop sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildPostgresDSN(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableType(t *testing.T) {
	assert.Equal(t, "BASE TABLE", tableType(adapter.KindTable))
	assert.Equal(t, "VIEW", tableType(adapter.KindView))
}

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	a := New(nil)
	a.DB = db
	return a, mock
}

func TestListRelations(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery("SELECT table_name FROM information_schema.tables").
		WithArgs("VIEW").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("daily_sales"))

	got, err := a.ListRelations(context.Background(), adapter.KindView)
	require.NoError(t, err)
	assert.Equal(t, []string{"daily_sales"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListColumns(t *testing.T) {
	a, mock := newMockAdapter(t)

	rows := sqlmock.NewRows([]string{"table_name", "column_name"}).
		AddRow("orders", "id").
		AddRow("orders", "total").
		AddRow("users", "id")
	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("BASE TABLE").
		WillReturnRows(rows)

	got, err := a.ListColumns(context.Background(), adapter.KindTable)
	require.NoError(t, err)
	assert.Equal(t, []adapter.ColumnRow{
		{Relation: "orders", Column: "id"},
		{Relation: "orders", Column: "total"},
		{Relation: "users", Column: "id"},
	}, got)
}

func TestListFunctions(t *testing.T) {
	a, mock := newMockAdapter(t)

	rows := sqlmock.NewRows([]string{"nspname", "proname"}).
		AddRow("public", "refresh_totals").
		AddRow("audit", "log_change")
	mock.ExpectQuery("FROM pg_proc").WillReturnRows(rows)

	got, err := a.ListFunctions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []adapter.FunctionRow{
		{Schema: "public", Name: "refresh_totals"},
		{Schema: "audit", Name: "log_change"},
	}, got)
}
