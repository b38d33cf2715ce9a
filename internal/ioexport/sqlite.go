package ioexport

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/gnames/gnuuid"
	"github.com/toc2me/polcat/pkg/polarity"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
	source TEXT NOT NULL,
	event_id TEXT NOT NULL,
	origin_time TEXT NOT NULL,
	latitude REAL NOT NULL,
	longitude REAL NOT NULL,
	depth_km REAL NOT NULL,
	horz_uncert_km REAL NOT NULL,
	vert_uncert_km REAL NOT NULL,
	magnitude REAL NOT NULL,
	PRIMARY KEY (source, event_id)
);
CREATE TABLE IF NOT EXISTS picks (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	event_id TEXT NOT NULL,
	ordinal INTEGER NOT NULL,
	sta_code TEXT NOT NULL,
	network TEXT NOT NULL,
	station TEXT NOT NULL,
	location TEXT NOT NULL,
	channel TEXT NOT NULL,
	p_polarity REAL NOT NULL,
	sr_dist_km REAL,
	takeoff REAL,
	azimuth REAL,
	takeoff_uncertainty REAL,
	azimuth_uncertainty REAL,
	event_id2 TEXT,
	origin_latitude REAL,
	origin_longitude REAL,
	origin_depth_km REAL
);
CREATE INDEX IF NOT EXISTS picks_event_idx ON picks (source, event_id);
`

const insertEvent = `
INSERT OR IGNORE INTO events
	(source, event_id, origin_time, latitude, longitude, depth_km,
	 horz_uncert_km, vert_uncert_km, magnitude)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertPick = `
INSERT OR IGNORE INTO picks
	(id, source, event_id, ordinal, sta_code, network, station, location,
	 channel, p_polarity, sr_dist_km, takeoff, azimuth, takeoff_uncertainty,
	 azimuth_uncertainty, event_id2, origin_latitude, origin_longitude,
	 origin_depth_km)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SQLite stores decoded catalogs in a SQLite database. Storing the same
// file again adds no rows.
type SQLite struct {
	db   *sql.DB
	path string
}

// Stored counts rows added by one Export call.
type Stored struct {
	Events int64
	Picks  int64
}

// OpenSQLite opens or creates the database and its tables.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, ExportSQLiteError(path, err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, ExportSQLiteError(path, err)
	}
	if _, err = db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, ExportSQLiteError(path, err)
	}
	return &SQLite{db: db, path: path}, nil
}

// PickID returns a deterministic identifier of a pick, made from its
// source file, event and position within the file.
func PickID(source, eventID string, ordinal int) string {
	key := strings.Join(
		[]string{source, eventID, strconv.Itoa(ordinal)}, "|",
	)
	return gnuuid.New(key).String()
}

// Export stores events and picks of a catalog in one transaction.
func (s *SQLite) Export(
	ctx context.Context,
	cat *polarity.Catalog,
) (Stored, error) {
	var res Stored
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return res, ExportSQLiteError(s.path, err)
	}
	defer tx.Rollback()

	res.Events, err = s.insertEvents(ctx, tx, cat)
	if err != nil {
		return res, ExportSQLiteError(s.path, err)
	}
	res.Picks, err = s.insertPicks(ctx, tx, cat)
	if err != nil {
		return res, ExportSQLiteError(s.path, err)
	}

	if err = tx.Commit(); err != nil {
		return res, ExportSQLiteError(s.path, err)
	}
	return res, nil
}

func (s *SQLite) insertEvents(
	ctx context.Context,
	tx *sql.Tx,
	cat *polarity.Catalog,
) (int64, error) {
	stmt, err := tx.PrepareContext(ctx, insertEvent)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var res int64
	for _, v := range cat.Events {
		r, err := stmt.ExecContext(ctx,
			cat.Path, v.EventID, v.OriginTime.UTC().Format(CatalogTimeLayout),
			v.Latitude, v.Longitude, v.DepthKm,
			v.HorizontalUncertaintyKm, v.VerticalUncertaintyKm, v.Magnitude,
		)
		if err != nil {
			return res, err
		}
		n, _ := r.RowsAffected()
		res += n
	}
	return res, nil
}

func (s *SQLite) insertPicks(
	ctx context.Context,
	tx *sql.Tx,
	cat *polarity.Catalog,
) (int64, error) {
	stmt, err := tx.PrepareContext(ctx, insertPick)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var res int64
	for i, v := range cat.Picks {
		r, err := stmt.ExecContext(ctx,
			PickID(cat.Path, v.EventID, i), cat.Path, v.EventID, i,
			v.StationKey, v.Network, v.Station, v.Location, v.Channel,
			v.PPolarity, v.SourceReceiverDistanceKm, v.TakeoffDeg,
			v.AzimuthDeg, v.TakeoffUncertaintyDeg, v.AzimuthUncertaintyDeg,
			v.AltEventID, v.OriginLatitude, v.OriginLongitude,
			v.OriginDepthKm,
		)
		if err != nil {
			return res, err
		}
		n, _ := r.RowsAffected()
		res += n
	}
	return res, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
