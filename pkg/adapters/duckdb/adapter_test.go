package duckdb

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlsh/pkg/adapter"
)

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	a := New(nil)
	a.DB = db
	return a, mock
}

func TestListRelationsTablesAndViews(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery("duckdb_tables").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("orders").AddRow("users"))
	mock.ExpectQuery("duckdb_views").
		WillReturnRows(sqlmock.NewRows([]string{"view_name"}).AddRow("daily_sales"))

	tables, err := a.ListRelations(context.Background(), adapter.KindTable)
	require.NoError(t, err)
	assert.Equal(t, []string{"orders", "users"}, tables)

	views, err := a.ListRelations(context.Background(), adapter.KindView)
	require.NoError(t, err)
	assert.Equal(t, []string{"daily_sales"}, views)
}

func TestListDatabases(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery("duckdb_databases").
		WillReturnRows(sqlmock.NewRows([]string{"database_name"}).AddRow("memory").AddRow("warehouse"))

	got, err := a.ListDatabases(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"memory", "warehouse"}, got)
}

func TestListColumnsMapsPairs(t *testing.T) {
	a, mock := newMockAdapter(t)

	rows := sqlmock.NewRows([]string{"table_name", "column_name"}).
		AddRow("orders", "id").
		AddRow("orders", "total")
	mock.ExpectQuery("information_schema.columns").
		WithArgs("BASE TABLE").
		WillReturnRows(rows)

	got, err := a.ListColumns(context.Background(), adapter.KindTable)
	require.NoError(t, err)
	assert.Equal(t, []adapter.ColumnRow{
		{Relation: "orders", Column: "id"},
		{Relation: "orders", Column: "total"},
	}, got)
}

func TestListFunctionsIncludesSchema(t *testing.T) {
	a, mock := newMockAdapter(t)

	rows := sqlmock.NewRows([]string{"schema_name", "function_name"}).
		AddRow("main", "strftime").
		AddRow("main", "sum")
	mock.ExpectQuery("duckdb_functions").WillReturnRows(rows)

	got, err := a.ListFunctions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []adapter.FunctionRow{
		{Schema: "main", Name: "strftime"},
		{Schema: "main", Name: "sum"},
	}, got)
}
