package catalog

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minimart-assistant/internal/common/logger"
)

func newMockProvider(t *testing.T) (*PostgresProvider, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresProvider(db, nil, logger.NewTestLogger(t)), mock
}

func storeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "display_name"}).
		AddRow("st-acacia", "99 Speedmart Acacia").
		AddRow("st-desa-jati", "99 Speedmart Desa Jati")
}

func itemColumns() []string {
	return []string{"id", "store_id", "name", "sku", "qty", "reorder_threshold"}
}

func TestPostgresProvider_ListStores(t *testing.T) {
	provider, mock := newMockProvider(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectStores)).WillReturnRows(storeRows())

	stores, err := provider.ListStores(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "st-acacia", stores[0].ID)
	assert.Equal(t, "99 Speedmart Desa Jati", stores[1].DisplayName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProvider_ListItemsByStore(t *testing.T) {
	provider, mock := newMockProvider(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectItemsByStore)).
		WithArgs("st-acacia").
		WillReturnRows(sqlmock.NewRows(itemColumns()).
			AddRow("it-1", "st-acacia", "Oil Packet 1KG", "OIL-1KG", 3, 5).
			AddRow("it-2", "st-acacia", "Rice 5KG", "RICE-5KG", 20, 4))

	items, err := provider.ListItemsByStore(context.Background(), "st-acacia")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Oil Packet 1KG", items[0].Name)
	assert.Equal(t, 3, items[0].Qty)
	assert.Equal(t, 5, items[0].ReorderThreshold)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProvider_FindItemsByName_SQLFallback(t *testing.T) {
	provider, mock := newMockProvider(t)

	// Needle is lowercased and trimmed before hitting the LIKE scan.
	mock.ExpectQuery(regexp.QuoteMeta(selectItemsByNameLike)).
		WithArgs("oil packet").
		WillReturnRows(sqlmock.NewRows(itemColumns()).
			AddRow("it-1", "st-acacia", "Oil Packet 1KG", "OIL-1KG", 3, 5))

	items, err := provider.FindItemsByName(context.Background(), "  Oil Packet ")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "it-1", items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProvider_Snapshot(t *testing.T) {
	provider, mock := newMockProvider(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectStores)).WillReturnRows(storeRows())
	mock.ExpectQuery(regexp.QuoteMeta(selectAllItems)).
		WillReturnRows(sqlmock.NewRows(itemColumns()).
			AddRow("it-1", "st-acacia", "Oil Packet 1KG", "OIL-1KG", 3, 5).
			AddRow("it-4", "st-desa-jati", "Oil Packet 1KG", "OIL-1KG", 12, 5))

	snap, err := provider.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Stores, 2)
	assert.Len(t, snap.ItemsFor("st-acacia"), 1)
	assert.Len(t, snap.ItemsFor("st-desa-jati"), 1)
	assert.Len(t, snap.AllItems(), 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProvider_SnapshotQueryError(t *testing.T) {
	provider, mock := newMockProvider(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectStores)).
		WillReturnError(errors.New("connection refused"))

	snap, err := provider.Snapshot(context.Background())
	assert.Nil(t, snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list stores")
}
