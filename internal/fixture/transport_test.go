package fixture

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marineaxis/marine-axis-admin/infra/marineaxis"
)

type vesselRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func decodeRows(t *testing.T, raw json.RawMessage) []vesselRow {
	t.Helper()
	var rows []vesselRow
	require.NoError(t, json.Unmarshal(raw, &rows))
	return rows
}

func TestTransport_CreateAssignsIDAndTimestamps(t *testing.T) {
	tr := NewTransport()

	data, err := tr.Create(context.Background(), "vessels", map[string]string{"name": "Selene", "type": "yacht"})
	require.NoError(t, err)

	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &obj))
	assert.NotEmpty(t, obj["id"])
	assert.NotEmpty(t, obj["created_at"])
	assert.NotEmpty(t, obj["updated_at"])
	assert.Equal(t, 1, tr.Len("vessels"))
}

func TestTransport_ListFiltersAndPaginates(t *testing.T) {
	tr := NewTransport()
	for _, v := range []map[string]string{
		{"name": "Selene", "type": "yacht"},
		{"name": "Boreas", "type": "sailboat"},
		{"name": "Calypso", "type": "yacht"},
		{"name": "Nereid", "type": "yacht"},
	} {
		_, err := tr.Seed("vessels", v)
		require.NoError(t, err)
	}

	result, err := tr.List(context.Background(), "vessels", 1, 2, map[string]string{"type": "yacht"})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total, "total counts all matches, not the page")

	rows := decodeRows(t, result.Items)
	require.Len(t, rows, 2)
	assert.Equal(t, "Selene", rows[0].Name, "insertion order is server order")
	assert.Equal(t, "Calypso", rows[1].Name)

	result, err = tr.List(context.Background(), "vessels", 2, 2, map[string]string{"type": "yacht"})
	require.NoError(t, err)
	rows = decodeRows(t, result.Items)
	require.Len(t, rows, 1)
	assert.Equal(t, "Nereid", rows[0].Name)
}

func TestTransport_ListPageBeyondEnd(t *testing.T) {
	tr := NewTransport()
	_, err := tr.Seed("jobs", map[string]string{"title": "Hull cleaning"})
	require.NoError(t, err)

	result, err := tr.List(context.Background(), "jobs", 9, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Len(t, decodeRows(t, result.Items), 0)
}

func TestTransport_UpdateMergesPatch(t *testing.T) {
	tr := NewTransport()
	id, err := tr.Seed("vessels", map[string]string{"name": "Selene", "type": "yacht"})
	require.NoError(t, err)

	data, err := tr.Update(context.Background(), "vessels", id, map[string]string{"name": "Selene II"})
	require.NoError(t, err)

	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &obj))
	assert.Equal(t, "Selene II", obj["name"])
	assert.Equal(t, "yacht", obj["type"], "unpatched fields survive")
	assert.Equal(t, id, obj["id"], "id is immutable")
}

func TestTransport_DeleteRemovesFromOrder(t *testing.T) {
	tr := NewTransport()
	first, err := tr.Seed("vessels", map[string]string{"name": "A"})
	require.NoError(t, err)
	_, err = tr.Seed("vessels", map[string]string{"name": "B"})
	require.NoError(t, err)

	require.NoError(t, tr.Delete(context.Background(), "vessels", first))

	result, err := tr.List(context.Background(), "vessels", 1, 10, nil)
	require.NoError(t, err)
	rows := decodeRows(t, result.Items)
	require.Len(t, rows, 1)
	assert.Equal(t, "B", rows[0].Name)
}

func TestTransport_NotFoundIsServerError(t *testing.T) {
	tr := NewTransport()

	_, err := tr.Get(context.Background(), "vessels", "missing")
	var apiErr *marineaxis.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, marineaxis.KindServer, apiErr.Kind)
	assert.Equal(t, 404, apiErr.StatusCode)

	assert.Error(t, tr.Delete(context.Background(), "vessels", "missing"))
	_, err = tr.Update(context.Background(), "vessels", "missing", map[string]string{})
	assert.Error(t, err)
}
