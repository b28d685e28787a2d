package sqlite

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

func TestListRelationsFiltersInternals(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery("FROM sqlite_master").
		WithArgs("table").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("orders").AddRow("users"))

	got, err := a.ListRelations(context.Background(), adapter.KindTable)
	require.NoError(t, err)
	assert.Equal(t, []string{"orders", "users"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListColumnsMapsPairs(t *testing.T) {
	a, mock := newMockAdapter(t)

	rows := sqlmock.NewRows([]string{"name", "name"}).
		AddRow("orders", "id").
		AddRow("orders", "total").
		AddRow("users", "email")
	mock.ExpectQuery("pragma_table_info").
		WithArgs("table").
		WillReturnRows(rows)

	got, err := a.ListColumns(context.Background(), adapter.KindTable)
	require.NoError(t, err)
	assert.Equal(t, []adapter.ColumnRow{
		{Relation: "orders", Column: "id"},
		{Relation: "orders", Column: "total"},
		{Relation: "users", Column: "email"},
	}, got)
}

func TestListFunctionsReportsMainSchema(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery("pragma_function_list").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("abs").AddRow("lower"))

	got, err := a.ListFunctions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []adapter.FunctionRow{
		{Schema: "main", Name: "abs"},
		{Schema: "main", Name: "lower"},
	}, got)
}

func TestListDatabases(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery("pragma_database_list").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("main").AddRow("archive"))

	got, err := a.ListDatabases(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "archive"}, got)
}
