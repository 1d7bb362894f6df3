package pipeline

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	charmlog "github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/fileseg/fileseg/internal/chunker"
	"github.com/fileseg/fileseg/internal/fileio"
	"github.com/fileseg/fileseg/internal/logging"
	"github.com/fileseg/fileseg/internal/scanner"
	"github.com/fileseg/fileseg/internal/security"
	"github.com/fileseg/fileseg/internal/storage"
	"github.com/fileseg/fileseg/pkg/types"
)

// Pipeline coordinates the ingestion flow: discover -> read -> chunk -> store
type Pipeline struct {
	engine     *chunker.Engine
	store      storage.Storage
	policy     *security.Config
	thresholds types.Thresholds
	log        *charmlog.Logger

	// Worker pool configuration
	workers int

	lock IngestLock
}

// Config contains configuration for an ingestion run
type Config struct {
	Workers   int      // Number of concurrent workers (default: runtime.NumCPU())
	BatchSize int      // Number of files to commit per transaction (default: 20)
	Patterns  []string // Glob patterns to include (default: all regular files)
	Force     bool     // Re-ingest files even when the content hash is unchanged
}

// Statistics contains statistics about an ingestion run
type Statistics struct {
	FilesIngested int
	FilesSkipped  int
	FilesFailed   int
	ChunksCreated int
	Duration      time.Duration
	ErrorMessages []string
}

// New creates a Pipeline with the given chunking engine and storage. policy
// may be nil, in which case no path policy is enforced.
func New(engine *chunker.Engine, store storage.Storage, policy *security.Config) *Pipeline {
	return &Pipeline{
		engine:     engine,
		store:      store,
		policy:     policy,
		thresholds: types.DefaultThresholds(),
		log:        logging.Nop(),
		workers:    runtime.NumCPU(),
	}
}

// WithThresholds overrides the size classification thresholds used for reads.
func (p *Pipeline) WithThresholds(thresholds types.Thresholds) *Pipeline {
	p.thresholds = thresholds
	return p
}

// WithLogger attaches a logger for ingestion progress and failures.
func (p *Pipeline) WithLogger(logger *charmlog.Logger) *Pipeline {
	p.log = logger
	return p
}

// IngestDirectory ingests every matching file under rootPath.
func (p *Pipeline) IngestDirectory(ctx context.Context, rootPath string, config *Config) (*Statistics, error) {
	if !p.lock.TryAcquire() {
		return nil, fmt.Errorf("ingestion already in progress: %w", types.ErrConcurrency)
	}
	defer p.lock.Release()

	if config == nil {
		config = &Config{}
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	p.workers = config.Workers

	startTime := time.Now()
	stats := &Statistics{
		ErrorMessages: make([]string, 0),
	}

	files, err := p.discoverFiles(rootPath, config)
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}

	p.log.Info("ingestion started", "root", rootPath, "files", len(files), "workers", p.workers)

	if err := p.ingestFiles(ctx, files, config, stats); err != nil {
		return nil, fmt.Errorf("failed to ingest files: %w", err)
	}

	stats.Duration = time.Since(startTime)
	p.log.Info("ingestion finished",
		"ingested", stats.FilesIngested,
		"skipped", stats.FilesSkipped,
		"failed", stats.FilesFailed,
		"chunks", stats.ChunksCreated,
		"duration", stats.Duration)
	return stats, nil
}

// IngestFile ingests a single file, outside of any batch.
func (p *Pipeline) IngestFile(ctx context.Context, path string, force bool) (*storage.Document, error) {
	if p.policy != nil {
		validated, err := p.policy.ValidatePath(path)
		if err != nil {
			return nil, err
		}
		path = validated
	}

	tx, err := p.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	doc, _, err := p.ingestOne(ctx, tx, path, force)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return doc, nil
}

// discoverFiles finds all candidate files under rootPath
func (p *Pipeline) discoverFiles(rootPath string, config *Config) ([]string, error) {
	sc, err := scanner.NewDirectoryScanner(config.Patterns...)
	if err != nil {
		return nil, err
	}

	files, err := sc.Scan(rootPath)
	if err != nil {
		return nil, err
	}

	if p.policy == nil {
		return files, nil
	}

	// Filter out files the path policy rejects rather than failing the run.
	allowed := files[:0]
	for _, f := range files {
		if _, err := p.policy.ValidatePath(f); err == nil {
			allowed = append(allowed, f)
		}
	}
	return allowed, nil
}

// ingestFiles ingests a set of files concurrently in batched transactions
func (p *Pipeline) ingestFiles(ctx context.Context, files []string, config *Config, stats *Statistics) error {
	// Create worker pool with semaphore
	semaphore := make(chan struct{}, p.workers)

	// Track progress with atomic counters
	var (
		ingested int32
		skipped  int32
		failed   int32
		chunks   int32
	)

	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = 20
	}

	// Use errgroup for concurrent processing with error propagation
	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex // Protect stats.ErrorMessages

	for i := 0; i < len(files); i += batchSize {
		end := i + batchSize
		if end > len(files) {
			end = len(files)
		}
		batch := files[i:end]

		g.Go(func() error {
			return p.ingestBatch(gctx, batch, config.Force, semaphore, &ingested, &skipped, &failed, &chunks, &mu, stats)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	stats.FilesIngested = int(ingested)
	stats.FilesSkipped = int(skipped)
	stats.FilesFailed = int(failed)
	stats.ChunksCreated = int(chunks)

	return nil
}

// ingestBatch ingests a batch of files within a single transaction
func (p *Pipeline) ingestBatch(ctx context.Context, files []string, force bool,
	semaphore chan struct{}, ingested, skipped, failed, chunks *int32,
	mu *sync.Mutex, stats *Statistics) error {

	tx, err := p.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case semaphore <- struct{}{}:
			// Acquire semaphore
		}

		doc, chunkCount, err := p.ingestOne(ctx, tx, filePath, force)
		<-semaphore // Release semaphore

		if err != nil {
			atomic.AddInt32(failed, 1)
			p.log.Warn("file ingestion failed", "path", filePath, "err", err)
			mu.Lock()
			stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", filePath, err))
			mu.Unlock()
			// Continue with other files
			continue
		}
		if doc == nil {
			atomic.AddInt32(skipped, 1)
			continue
		}

		atomic.AddInt32(ingested, 1)
		atomic.AddInt32(chunks, int32(chunkCount))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ingestOne reads, chunks, and stores a single file. It returns (nil, 0, nil)
// when the file is unchanged and was skipped.
func (p *Pipeline) ingestOne(ctx context.Context, store storage.Storage, path string, force bool) (*storage.Document, int, error) {
	reader, err := fileio.OpenReaderWith(path, p.thresholds)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = reader.Close() }()

	content, err := reader.ReadString()
	if err != nil {
		return nil, 0, err
	}
	size, class := reader.Info()
	hash := sha256.Sum256([]byte(content))

	existing, err := store.GetDocument(ctx, path)
	if err != nil && err != storage.ErrNotFound {
		return nil, 0, err
	}
	if existing != nil && existing.ContentHash == hash && !force {
		return nil, 0, nil
	}

	docChunks, err := p.engine.ChunkDocument(content, path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to chunk file: %w", err)
	}

	doc := &storage.Document{
		SourcePath:  path,
		ContentHash: hash,
		SizeBytes:   size,
		SizeClass:   class,
		Strategy:    p.engine.Config().Strategy,
		ChunkCount:  len(docChunks),
	}
	if info, err := os.Stat(path); err == nil {
		doc.ModTime = info.ModTime()
	}
	if err := store.UpsertDocument(ctx, doc); err != nil {
		return nil, 0, err
	}

	// Replace any chunks from a previous ingestion of this document.
	if existing != nil {
		if err := store.DeleteChunksByDocument(ctx, doc.ID); err != nil {
			return nil, 0, fmt.Errorf("failed to delete old chunks: %w", err)
		}
	}

	for i := range docChunks {
		record := storage.NewChunkRecord(doc.ID, docChunks[i])
		if err := store.InsertChunk(ctx, record); err != nil {
			return nil, 0, fmt.Errorf("failed to store chunk: %w", err)
		}
	}

	return doc, len(docChunks), nil
}
