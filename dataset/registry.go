package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"
	"golang.org/x/sync/singleflight"

	"github.com/pivolan/claims_analyzer/domain/models"
)

var (
	ErrNotFound      = errors.New("dataset not found")
	ErrIngestTimeout = errors.New("ingestion timed out")
)

// Registry owns dataset metadata and the per-dataset Table cache. Tables
// are immutable once loaded; concurrent first loads for the same dataset
// id collapse into a single parse.
type Registry struct {
	dir string

	mu     sync.RWMutex
	tables map[string]*Table
	sf     singleflight.Group
}

// NewRegistry opens (and creates if needed) a metadata directory.
func NewRegistry(dir string) (*Registry, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Registry{dir: dir, tables: map[string]*Table{}}, nil
}

// datasetID derives a reproducible, collision-resistant dataset id from
// the (owner, filename, timestamp) tuple.
func datasetID(userID, filename string, ts time.Time) string {
	return MD5String(fmt.Sprintf("%s_%s_%d", userID, filename, ts.UnixNano()))[:16]
}

// Ingest stages a source file, unpacks archives, parses it into a typed
// Table, profiles it and persists the metadata. A failed or timed-out
// ingest registers nothing. The context bounds parsing of large sources.
func (r *Registry) Ingest(ctx context.Context, sourcePath, userID, filename string) (*models.DatasetMeta, error) {
	if filename == "" {
		filename = filepath.Base(sourcePath)
	}

	stagePath, err := r.stage(sourcePath, filename)
	if err != nil {
		return nil, fmt.Errorf("stage source: %w", err)
	}
	if unpacked, err := unpackArchive(stagePath); err != nil {
		return nil, fmt.Errorf("unpack archive: %w", err)
	} else if unpacked != "" {
		stagePath = unpacked
	}

	table, err := LoadTable(ctx, stagePath)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrIngestTimeout
		}
		return nil, fmt.Errorf("process csv: %w", err)
	}

	now := time.Now()
	id := datasetID(userID, filename, now)
	meta := &models.DatasetMeta{
		ID:          id,
		UserID:      userID,
		Filename:    filename,
		Filepath:    stagePath,
		Rows:        table.NumRows(),
		Columns:     table.NumColumns(),
		ColumnsInfo: BuildProfile(table),
		CreatedAt:   now,
	}
	if info, err := os.Stat(stagePath); err == nil {
		meta.SizeMB = float64(info.Size()) / (1024 * 1024)
	}

	if err := r.writeMeta(meta); err != nil {
		return nil, fmt.Errorf("save metadata: %w", err)
	}

	r.mu.Lock()
	r.tables[id] = table
	r.mu.Unlock()

	log.Printf("ingested dataset %s (%s): %d rows, %d columns", id, filename, meta.Rows, meta.Columns)
	return meta, nil
}

// stage copies the source into a fresh upload directory so the original
// file can disappear without breaking later reloads.
func (r *Registry) stage(sourcePath, filename string) (string, error) {
	src, err := os.Open(sourcePath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	uid := uuid.NewV4()
	dir := filepath.Join(r.dir, "uploads", uid.String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	destPath := filepath.Join(dir, filename)
	dst, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return destPath, nil
}

func (r *Registry) metaPath(id string) string {
	return filepath.Join(r.dir, id+".json")
}

func (r *Registry) writeMeta(meta *models.DatasetMeta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.metaPath(meta.ID), data, 0644)
}

// Meta returns the persisted dataset profile, owner-scoped.
func (r *Registry) Meta(id, userID string) (*models.DatasetMeta, error) {
	data, err := os.ReadFile(r.metaPath(id))
	if err != nil {
		return nil, ErrNotFound
	}
	meta := &models.DatasetMeta{}
	if err := json.Unmarshal(data, meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if meta.UserID != userID {
		return nil, ErrNotFound
	}
	return meta, nil
}

// List returns all datasets of one owner, newest first.
func (r *Registry) List(userID string) ([]models.DatasetSummary, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}
	var out []models.DatasetSummary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		meta, err := r.Meta(id, userID)
		if err != nil {
			continue
		}
		out = append(out, models.DatasetSummary{
			ID:        meta.ID,
			Filename:  meta.Filename,
			Rows:      meta.Rows,
			Columns:   meta.Columns,
			CreatedAt: meta.CreatedAt,
			SizeMB:    roundToTwo(meta.SizeMB),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Invalidate drops a cached table; the next query reloads from disk.
func (r *Registry) Invalidate(id string) {
	r.mu.Lock()
	delete(r.tables, id)
	r.mu.Unlock()
}

// Dataset returns the loaded Table for a dataset, owner-scoped. The
// first access after a restart reparses the source file; concurrent
// first accesses share one parse.
func (r *Registry) Dataset(id, userID string) (*Table, error) {
	meta, err := r.Meta(id, userID)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	table, ok := r.tables[id]
	r.mu.RUnlock()
	if ok {
		return table, nil
	}

	loaded, err, _ := r.sf.Do(id, func() (interface{}, error) {
		r.mu.RLock()
		cached, ok := r.tables[id]
		r.mu.RUnlock()
		if ok {
			return cached, nil
		}
		table, err := LoadTable(context.Background(), meta.Filepath)
		if err != nil {
			return nil, fmt.Errorf("reload dataset %s: %w", id, err)
		}
		r.mu.Lock()
		r.tables[id] = table
		r.mu.Unlock()
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return loaded.(*Table), nil
}

// view loads a dataset and applies a (normalized) filter set.
func (r *Registry) view(id, userID string, filters FilterSet) (*View, error) {
	table, err := r.Dataset(id, userID)
	if err != nil {
		return nil, err
	}
	v := NewView(table)
	if len(filters) > 0 {
		v = v.Filter(NormalizeFilters(filters))
	}
	return v, nil
}

// Preview returns the first rows of a dataset in source column order.
func (r *Registry) Preview(id, userID string, rowLimit int) (*models.PreviewResult, error) {
	table, err := r.Dataset(id, userID)
	if err != nil {
		return nil, err
	}
	if rowLimit <= 0 {
		rowLimit = DefaultPageSize
	}
	page := NewView(table).ProjectTable(table.ColumnNames(), 1, rowLimit)
	return &models.PreviewResult{
		Columns:   page.Columns,
		Rows:      page.Data,
		TotalRows: table.NumRows(),
	}, nil
}

func (r *Registry) Aggregate(id, userID string, filters FilterSet, groupField, valueField, agg, sortBy string, limit int) (models.SeriesResult, error) {
	v, err := r.view(id, userID, filters)
	if err != nil {
		return models.SeriesResult{}, err
	}
	order := SortByValue
	if SortBy(sortBy) == SortByLabel {
		order = SortByLabel
	}
	return v.GroupAggregate(groupField, valueField, ParseAggregator(agg), order, limit), nil
}

func (r *Registry) TopN(id, userID string, filters FilterSet, groupField, valueField string, limit int) (models.SeriesResult, error) {
	v, err := r.view(id, userID, filters)
	if err != nil {
		return models.SeriesResult{}, err
	}
	return v.TopN(groupField, valueField, limit), nil
}

func (r *Registry) Distribution(id, userID string, filters FilterSet, field string) (models.SeriesResult, error) {
	v, err := r.view(id, userID, filters)
	if err != nil {
		return models.SeriesResult{}, err
	}
	return v.ValueCounts(field), nil
}

func (r *Registry) Histogram(id, userID string, filters FilterSet, field string, bins BinSpec) (models.SeriesResult, error) {
	v, err := r.view(id, userID, filters)
	if err != nil {
		return models.SeriesResult{}, err
	}
	if len(bins.Labels) != len(bins.Uppers)+1 {
		bins = AgeBins
	}
	return v.Histogram(field, bins), nil
}

// TablePage returns one page of the claims table view.
func (r *Registry) TablePage(id, userID string, filters FilterSet, page, pageSize int) (*models.TableResult, error) {
	v, err := r.view(id, userID, filters)
	if err != nil {
		return nil, err
	}
	result := v.ProjectTable(ClaimsTableColumns, page, pageSize)
	return &result, nil
}

func (r *Registry) FilterOptions(id, userID string) (map[string][]string, error) {
	table, err := r.Dataset(id, userID)
	if err != nil {
		return nil, err
	}
	return FilterOptions(table), nil
}

func (r *Registry) Chart(id, userID string, filters FilterSet, req ChartRequest) (*models.ChartResult, error) {
	v, err := r.view(id, userID, filters)
	if err != nil {
		return nil, err
	}
	return BuildChart(v, req)
}

// Dashboard computes the full claims report suite.
func (r *Registry) Dashboard(id, userID string, filters FilterSet) (*models.DashboardReport, error) {
	v, err := r.view(id, userID, filters)
	if err != nil {
		return nil, err
	}
	report := BuildDashboard(v)
	return &report, nil
}

// Summary computes the deep numeric summary of one column.
func (r *Registry) Summary(id, userID string, filters FilterSet, field string) (*models.NumberStats, error) {
	v, err := r.view(id, userID, filters)
	if err != nil {
		return nil, err
	}
	return ColumnSummary(v, field), nil
}
