// Package syncer runs the per-table transfer loop.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"tablesync/adapters"
	"tablesync/config"
	"tablesync/core"
	"tablesync/core/format"
)

// Connector opens a gateway for a configured connection.
type Connector func(conn config.Connection) (core.Gateway, error)

// Syncer processes the configured table list strictly one table at a time.
// A skip condition (empty table, empty file, missing file) logs and moves on;
// any other failure aborts the remaining tables.
type Syncer struct {
	cfg   *config.Config
	codec format.Codec

	log     *Logger
	now     func() time.Time
	connect Connector
}

func New(cfg *config.Config, opts ...Option) (*Syncer, error) {
	codec, err := format.New(string(cfg.Format))
	if err != nil {
		return nil, fmt.Errorf("format.New: %w", err)
	}

	s := &Syncer{
		cfg:   cfg,
		codec: codec,
		log:   NewLogger(os.Stdout),
		now:   time.Now,
		connect: func(conn config.Connection) (core.Gateway, error) {
			return adapters.Connect(conn.Type, conn.URL)
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// FilePath derives the per-table file path:
// <folder>/<table>_<YYYYMMDD>.<extension>, dated with the run's current day.
func (s *Syncer) FilePath(table string) string {
	name := fmt.Sprintf("%s_%s.%s", table, s.now().Format("20060102"), s.codec.Extension())
	return filepath.Join(s.cfg.Folder, name)
}

// Run processes every configured table once.
func (s *Syncer) Run(ctx context.Context) error {
	runID := uuid.New().String()

	s.log.Infof("run %s: mode=%s format=%s tables=%d",
		runID, s.cfg.Mode, s.cfg.Format, len(s.cfg.Tables))

	gateway, err := s.connect(s.cfg.ActiveConnection())
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer gateway.Close()

	var results []tableResult

	for _, table := range s.cfg.Tables {
		path := s.FilePath(table)

		var res tableResult
		switch s.cfg.Mode {
		case config.ModeImport:
			res, err = s.importTable(ctx, gateway, table, path)
		default:
			res, err = s.exportTable(ctx, gateway, table, path)
		}
		if err != nil {
			s.log.Errorf("%s: %s", table, err)
			return fmt.Errorf("table %q: %w", table, err)
		}

		s.log.Infof("%s: %s", table, res.status)
		results = append(results, res)
	}

	s.log.Infof("run %s finished\n%s", runID, renderSummary(results))
	return nil
}

func (s *Syncer) exportTable(ctx context.Context, gateway core.Gateway, table, path string) (tableResult, error) {
	buf, err := gateway.Export(ctx, table)
	if err != nil {
		return tableResult{}, err
	}

	if buf.IsEmpty() {
		return tableResult{table: table, status: "skipped: table is empty"}, nil
	}

	err = s.codec.Write(path, buf)
	if err != nil {
		return tableResult{}, err
	}

	return tableResult{
		table:  table,
		rows:   buf.Len(),
		status: fmt.Sprintf("exported %d rows to %s", buf.Len(), path),
	}, nil
}

func (s *Syncer) importTable(ctx context.Context, gateway core.Gateway, table, path string) (tableResult, error) {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return tableResult{table: table, status: fmt.Sprintf("skipped: %s is missing", path)}, nil
	}
	if err != nil {
		return tableResult{}, fmt.Errorf("%w: %v", core.ErrFileAccess, err)
	}

	buf, err := s.codec.Read(path)
	if err != nil {
		return tableResult{}, err
	}

	if buf.IsEmpty() {
		return tableResult{table: table, status: fmt.Sprintf("skipped: %s is empty", path)}, nil
	}

	// destination mirrors the file exactly: wipe first, then load
	err = gateway.Truncate(ctx, table)
	if err != nil {
		return tableResult{}, err
	}

	err = gateway.BulkWrite(ctx, table, buf)
	if err != nil {
		return tableResult{}, err
	}

	return tableResult{
		table:  table,
		rows:   buf.Len(),
		status: fmt.Sprintf("imported %d rows from %s", buf.Len(), path),
	}, nil
}
