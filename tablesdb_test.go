package tskit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesDBRoundTrip(t *testing.T) {
	tc := twoTreeTables()
	s0 := tc.AddSite(1, "A")
	tc.AddMutation(s0, 3, "T")
	s1 := tc.AddSite(7, "")
	tc.AddMutation(s1, 5, "CAT")
	stamp := Time(time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC))
	tc.AddProvenance(stamp, `{"software": "msprime"}`)

	path := filepath.Join(t.TempDir(), "tables.db")
	db, err := OpenTablesDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Save(tc))
	require.NoError(t, db.Close())

	db, err = OpenTablesDB(path)
	require.NoError(t, err)
	defer db.Close()
	loaded, err := db.Load()
	require.NoError(t, err)

	assert.Equal(t, tc.SequenceLength, loaded.SequenceLength)
	assert.Equal(t, tc.Nodes, loaded.Nodes)
	assert.Equal(t, tc.Edges, loaded.Edges)
	assert.Equal(t, tc.Sites, loaded.Sites)
	assert.Equal(t, tc.Mutations, loaded.Mutations)
	require.Len(t, loaded.Provenances, 1)
	assert.True(t, time.Time(stamp).Equal(time.Time(loaded.Provenances[0].Timestamp)))
	assert.Equal(t, `{"software": "msprime"}`, loaded.Provenances[0].Record)

	ts, err := NewTreeSequence(loaded)
	require.NoError(t, err)
	vr, err := ts.NewVariantReader(nil, Options{})
	require.NoError(t, err)
	vv := readAll(t, vr)
	require.Len(t, vv, 2)
	assert.Equal(t, []int{1, 1, 0}, vv[0].Genotypes.Codes())
	assert.Equal(t, []Allele{"", "CAT"}, vv[1].Alleles)
}

func TestTablesDBSaveReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.db")
	db, err := OpenTablesDB(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Save(twoTreeTables()))
	require.NoError(t, db.Save(threeSampleTables()))

	loaded, err := db.Load()
	require.NoError(t, err)
	assert.Len(t, loaded.Nodes, 5)
	assert.Len(t, loaded.Edges, 4)
}

func TestTablesDBEmpty(t *testing.T) {
	db, err := OpenTablesDB(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Load()
	assert.Error(t, err)
	assert.Contains(t, []string{"sqlite", "sqlite3"}, WhichSQLiteDriver())
}

func TestTimeScan(t *testing.T) {
	var tm Time
	require.NoError(t, tm.Scan(int64(86400)))
	assert.Equal(t, "1970-01-02T00:00:00Z", tm.String())

	require.NoError(t, tm.Scan([]byte("2020-05-06 07:08:09")))
	assert.Equal(t, "2020-05-06T07:08:09Z", tm.String())

	assert.Error(t, tm.Scan(3.5))
}
