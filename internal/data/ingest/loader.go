// Package ingest bulk-loads ingredient reference data from JSON or CSV
// fixture files into the database.
package ingest

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	recipesrepo "github.com/foodgram/foodgram-backend/internal/data/repos/recipes"
	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

const (
	defaultBatchSize = 500
	defaultWorkers   = 4
)

type Loader struct {
	log       *logger.Logger
	ingRepo   recipesrepo.IngredientRepo
	batchSize int
	workers   int
}

func NewLoader(log *logger.Logger, ingRepo recipesrepo.IngredientRepo) *Loader {
	return &Loader{
		log:       log.With("component", "IngredientLoader"),
		ingRepo:   ingRepo,
		batchSize: defaultBatchSize,
		workers:   defaultWorkers,
	}
}

// LoadFile parses the file by extension (.json or .csv) and inserts its
// rows. Returns the number of rows actually inserted; rows whose
// (name, measurement_unit) pair already exists are skipped.
func (l *Loader) LoadFile(ctx context.Context, path string, r io.Reader) (int64, error) {
	var (
		rows []*types.Ingredient
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		rows, err = ParseJSON(r)
	case ".csv":
		rows, err = ParseCSV(r)
	default:
		return 0, fmt.Errorf("unsupported file extension %q (want .json or .csv)", filepath.Ext(path))
	}
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return l.Load(ctx, rows)
}

// Load inserts ingredients in concurrent batches.
func (l *Loader) Load(ctx context.Context, rows []*types.Ingredient) (int64, error) {
	rows, err := normalize(rows)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	var inserted atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for start := 0; start < len(rows); start += l.batchSize {
		end := start + l.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]
		g.Go(func() error {
			n, err := l.ingRepo.CreateBatch(gctx, nil, batch)
			if err != nil {
				return fmt.Errorf("insert batch of %d: %w", len(batch), err)
			}
			inserted.Add(n)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return inserted.Load(), err
	}
	l.log.Info("Loaded ingredients", "parsed", len(rows), "inserted", inserted.Load())
	return inserted.Load(), nil
}

// ParseJSON reads a fixture of the form
// [{"name": "...", "measurement_unit": "..."}, ...].
func ParseJSON(r io.Reader) ([]*types.Ingredient, error) {
	var raw []struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	rows := make([]*types.Ingredient, 0, len(raw))
	for _, item := range raw {
		rows = append(rows, &types.Ingredient{Name: item.Name, MeasurementUnit: item.MeasurementUnit})
	}
	return rows, nil
}

// ParseCSV reads headerless "name,measurement_unit" rows. A leading
// "name,measurement_unit" header row is tolerated and skipped.
func ParseCSV(r io.Reader) ([]*types.Ingredient, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	var rows []*types.Ingredient
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		if line == 1 && strings.EqualFold(record[0], "name") && strings.EqualFold(record[1], "measurement_unit") {
			continue
		}
		rows = append(rows, &types.Ingredient{Name: record[0], MeasurementUnit: record[1]})
	}
	return rows, nil
}

// normalize trims whitespace, rejects rows with empty fields and drops
// in-file duplicates so a single fixture never conflicts with itself.
func normalize(rows []*types.Ingredient) ([]*types.Ingredient, error) {
	type key struct{ name, unit string }
	seen := make(map[key]bool, len(rows))
	out := make([]*types.Ingredient, 0, len(rows))
	for i, row := range rows {
		name := strings.TrimSpace(row.Name)
		unit := strings.TrimSpace(row.MeasurementUnit)
		if name == "" || unit == "" {
			return nil, fmt.Errorf("row %d: name and measurement_unit are required", i+1)
		}
		k := key{name: name, unit: unit}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, &types.Ingredient{Name: name, MeasurementUnit: unit})
	}
	return out, nil
}
