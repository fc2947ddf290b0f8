package tskit

import (
	"strings"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
)

const tablesSchema = `
CREATE TABLE IF NOT EXISTS metadata (sequence_length REAL NOT NULL);
CREATE TABLE IF NOT EXISTS node (id INTEGER PRIMARY KEY, flags INTEGER NOT NULL, time REAL NOT NULL);
CREATE TABLE IF NOT EXISTS edge (id INTEGER PRIMARY KEY, left_coord REAL NOT NULL, right_coord REAL NOT NULL, parent INTEGER NOT NULL, child INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS site (id INTEGER PRIMARY KEY, position REAL NOT NULL, ancestral_state TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS mutation (id INTEGER PRIMARY KEY, site INTEGER NOT NULL, node INTEGER NOT NULL, derived_state TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS provenance (id INTEGER PRIMARY KEY, timestamp INTEGER NOT NULL, record TEXT NOT NULL);
`

// TablesDB stores a table collection in a SQLite database, one SQL table per
// tree sequence table. Row order is the id column.
type TablesDB struct {
	DB   *sqlx.DB
	Path string
}

// The row types conform to the SQL tables and can be scanned with sqlx.
type nodeRecord struct {
	ID    int64   `db:"id"`
	Flags uint32  `db:"flags"`
	Time  float64 `db:"time"`
}

type edgeRecord struct {
	ID     int64   `db:"id"`
	Left   float64 `db:"left_coord"`
	Right  float64 `db:"right_coord"`
	Parent NodeID  `db:"parent"`
	Child  NodeID  `db:"child"`
}

type siteRecord struct {
	ID             int64   `db:"id"`
	Position       float64 `db:"position"`
	AncestralState Allele  `db:"ancestral_state"`
}

type mutationRecord struct {
	ID           int64  `db:"id"`
	Site         int32  `db:"site"`
	Node         NodeID `db:"node"`
	DerivedState Allele `db:"derived_state"`
}

type provenanceRecord struct {
	ID        int64  `db:"id"`
	Timestamp Time   `db:"timestamp"`
	Record    string `db:"record"`
}

// WhichSQLiteDriver names the database/sql driver in use: "sqlite3" with cgo,
// "sqlite" without.
func WhichSQLiteDriver() string {
	return whichSQLiteDriver
}

// OpenTablesDB opens (creating if needed) the tables database at path.
func OpenTablesDB(path string) (*TablesDB, error) {
	// URI filenames have to begin with 'file:'; see
	// https://www.sqlite.org/c3ref/open.html . It seems that sqlite3 permitted
	// URI filenames without the file: prefix, but that is not standard.
	uri := path
	if !strings.HasPrefix(uri, "file:") {
		uri = "file:" + uri
	}

	db, err := connectSQLite(uri)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if _, err := db.Exec(tablesSchema); err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}

	return &TablesDB{DB: db, Path: path}, nil
}

func (t *TablesDB) Close() error {
	return t.DB.Close()
}

// Load reads the stored tables. The result still has to pass
// NewTreeSequence before it can be read.
func (t *TablesDB) Load() (*TableCollection, error) {
	tc := &TableCollection{}

	if err := t.DB.Get(&tc.SequenceLength, "SELECT sequence_length FROM metadata LIMIT 1"); err != nil {
		return nil, pfx.Err(err)
	}

	var nodes []nodeRecord
	if err := t.DB.Select(&nodes, "SELECT id, flags, time FROM node ORDER BY id"); err != nil {
		return nil, pfx.Err(err)
	}
	for _, n := range nodes {
		tc.AddNode(n.Flags, n.Time)
	}

	var edges []edgeRecord
	if err := t.DB.Select(&edges, "SELECT id, left_coord, right_coord, parent, child FROM edge ORDER BY id"); err != nil {
		return nil, pfx.Err(err)
	}
	for _, e := range edges {
		tc.AddEdge(e.Left, e.Right, e.Parent, e.Child)
	}

	var sites []siteRecord
	if err := t.DB.Select(&sites, "SELECT id, position, ancestral_state FROM site ORDER BY id"); err != nil {
		return nil, pfx.Err(err)
	}
	for _, s := range sites {
		tc.AddSite(s.Position, string(s.AncestralState))
	}

	var mutations []mutationRecord
	if err := t.DB.Select(&mutations, "SELECT id, site, node, derived_state FROM mutation ORDER BY id"); err != nil {
		return nil, pfx.Err(err)
	}
	for _, m := range mutations {
		tc.AddMutation(m.Site, m.Node, string(m.DerivedState))
	}

	var provenances []provenanceRecord
	if err := t.DB.Select(&provenances, "SELECT id, timestamp, record FROM provenance ORDER BY id"); err != nil {
		return nil, pfx.Err(err)
	}
	for _, p := range provenances {
		tc.AddProvenance(p.Timestamp, p.Record)
	}

	return tc, nil
}

// Save replaces the stored tables with tc in a single transaction.
func (t *TablesDB) Save(tc *TableCollection) error {
	tx, err := t.DB.Beginx()
	if err != nil {
		return pfx.Err(err)
	}
	defer tx.Rollback()

	for _, table := range []string{"metadata", "node", "edge", "site", "mutation", "provenance"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return pfx.Err(err)
		}
	}

	if _, err := tx.Exec("INSERT INTO metadata (sequence_length) VALUES (?)", tc.SequenceLength); err != nil {
		return pfx.Err(err)
	}

	for i, n := range tc.Nodes {
		if _, err := tx.NamedExec("INSERT INTO node (id, flags, time) VALUES (:id, :flags, :time)",
			nodeRecord{ID: int64(i), Flags: n.Flags, Time: n.Time}); err != nil {
			return pfx.Err(err)
		}
	}
	for i, e := range tc.Edges {
		if _, err := tx.NamedExec("INSERT INTO edge (id, left_coord, right_coord, parent, child) VALUES (:id, :left_coord, :right_coord, :parent, :child)",
			edgeRecord{ID: int64(i), Left: e.Left, Right: e.Right, Parent: e.Parent, Child: e.Child}); err != nil {
			return pfx.Err(err)
		}
	}
	for i, s := range tc.Sites {
		if _, err := tx.NamedExec("INSERT INTO site (id, position, ancestral_state) VALUES (:id, :position, :ancestral_state)",
			siteRecord{ID: int64(i), Position: s.Position, AncestralState: s.AncestralState}); err != nil {
			return pfx.Err(err)
		}
	}
	for i, m := range tc.Mutations {
		if _, err := tx.NamedExec("INSERT INTO mutation (id, site, node, derived_state) VALUES (:id, :site, :node, :derived_state)",
			mutationRecord{ID: int64(i), Site: m.Site, Node: m.Node, DerivedState: m.DerivedState}); err != nil {
			return pfx.Err(err)
		}
	}
	for i, p := range tc.Provenances {
		if _, err := tx.NamedExec("INSERT INTO provenance (id, timestamp, record) VALUES (:id, :timestamp, :record)",
			provenanceRecord{ID: int64(i), Timestamp: p.Timestamp, Record: p.Record}); err != nil {
			return pfx.Err(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
