// ABOUTME: Registry service combining backend store and validation
// ABOUTME: Read-modify-write for the App Registry and org documents

package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mkearney/huntstore/internal/logger"
	"github.com/mkearney/huntstore/internal/metrics"
	"github.com/mkearney/huntstore/pkg/appdata"
	"github.com/mkearney/huntstore/pkg/backend"
	"github.com/mkearney/huntstore/pkg/orgdata"
	"github.com/mkearney/huntstore/pkg/schema"
	"github.com/mkearney/huntstore/pkg/validation"
)

const (
	cacheExpiration      = 10 * time.Minute
	cacheCleanupInterval = 30 * time.Minute
)

// Service is the document-kind-specific facade over the backend store. It
// holds no locks across store calls; correctness under concurrent writers
// relies entirely on the backend's etag comparison.
type Service struct {
	store    backend.Store
	validate *validation.Service
	log      *logger.Logger
	metrics  *metrics.Metrics

	// cache maps key@etag to the validated document for that exact content,
	// so a hot re-read skips re-validation. Etags identify content, so a
	// hit can never be stale. Cached documents are shared; callers mutate
	// through the pure helpers, which clone.
	cache *gocache.Cache

	// wb tracks in-flight post-migration write-backs.
	wb sync.WaitGroup
}

// NewService creates the facade. log and m may be nil.
func NewService(store backend.Store, validate *validation.Service, log *logger.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:    store,
		validate: validate,
		log:      log,
		metrics:  m,
		cache:    gocache.New(cacheExpiration, cacheCleanupInterval),
	}
}

// LoadApp reads and validates the App Registry. It never fails: a missing
// key, unreadable bytes or unrecoverable validation failure all degrade to an
// empty default document with no etag, so first-run behavior is seamless. A
// document migrated during the load is written back to storage best-effort,
// off the caller's path.
func (s *Service) LoadApp(ctx context.Context) (*appdata.Document, string) {
	rec, err := s.get(ctx, AppKey)
	if err != nil {
		if !errors.Is(err, backend.ErrNotFound) {
			s.log.Warn("App registry unreadable, using default").Err(err).Send()
		}
		return appdata.NewDocument(time.Now()), ""
	}

	if cached, ok := s.cacheGet(AppKey, rec.Etag); ok {
		return cached.(*appdata.Document), rec.Etag
	}

	var raw map[string]any
	if err := json.Unmarshal(rec.Bytes, &raw); err != nil {
		s.log.Warn("App registry is not valid JSON, using default").Err(err).Send()
		return appdata.NewDocument(time.Now()), ""
	}

	res := s.validate.Validate(schema.KindApp, raw, validation.DefaultOptions())
	if !res.Success {
		s.log.Warn("App registry failed validation, using default").
			Int("errors", len(res.Errors)).Send()
		return appdata.NewDocument(time.Now()), ""
	}

	doc := res.Data.(*appdata.Document)
	if res.MigrationApplied {
		s.writeBack(AppKey, doc, rec.Etag)
	}

	s.cacheSet(AppKey, rec.Etag, doc)
	return doc, rec.Etag
}

// LoadOrg reads and validates one organization's document. Unlike LoadApp it
// propagates every failure: an org is expected to exist once referenced, and
// fabricating org data would mask real data loss.
func (s *Service) LoadOrg(ctx context.Context, orgSlug string) (*orgdata.Document, string, error) {
	key := OrgKey(orgSlug)

	rec, err := s.get(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("load org %s: %w", orgSlug, err)
	}

	if cached, ok := s.cacheGet(key, rec.Etag); ok {
		return cached.(*orgdata.Document), rec.Etag, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(rec.Bytes, &raw); err != nil {
		return nil, "", fmt.Errorf("load org %s: %w", orgSlug, err)
	}

	res := s.validate.Validate(schema.KindOrg, raw, validation.DefaultOptions())
	if !res.Success {
		return nil, "", &ValidationError{Kind: schema.KindOrg, Key: key, Errors: res.Errors}
	}

	doc := res.Data.(*orgdata.Document)
	if res.MigrationApplied {
		s.writeBack(key, doc, rec.Etag)
	}

	s.cacheSet(key, rec.Etag, doc)
	return doc, rec.Etag, nil
}

// UpsertApp validates strictly and writes the App Registry with the caller's
// expected etag. The document's updatedAt is stamped first. A concurrency
// conflict from the backend surfaces unchanged for the caller to re-load,
// reapply and retry.
func (s *Service) UpsertApp(ctx context.Context, doc *appdata.Document, expectedEtag string) (string, error) {
	doc.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.upsert(ctx, schema.KindApp, AppKey, doc, expectedEtag)
}

// UpsertOrg mirrors UpsertApp for one organization's document.
func (s *Service) UpsertOrg(ctx context.Context, doc *orgdata.Document, orgSlug string, expectedEtag string) (string, error) {
	doc.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.upsert(ctx, schema.KindOrg, OrgKey(orgSlug), doc, expectedEtag)
}

// ListOrgSlugs returns the slug of every stored organization document.
func (s *Service) ListOrgSlugs(ctx context.Context) ([]string, error) {
	start := time.Now()
	keys, err := s.store.List(ctx, OrgPrefix)
	s.recordOp("list", start, err)
	if err != nil {
		return nil, fmt.Errorf("list orgs: %w", err)
	}

	slugs := make([]string, 0, len(keys))
	for _, key := range keys {
		if slug := SlugFromKey(key); slug != "" {
			slugs = append(slugs, slug)
		}
	}
	return slugs, nil
}

// Flush blocks until all queued post-migration write-backs have finished.
// Called on shutdown; tests use it to observe write-back effects.
func (s *Service) Flush() {
	s.wb.Wait()
}

func (s *Service) upsert(ctx context.Context, kind schema.Kind, key string, doc any, expectedEtag string) (string, error) {
	bytes, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("upsert %s: %w", key, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return "", fmt.Errorf("upsert %s: %w", key, err)
	}

	res := s.validate.Validate(kind, raw, validation.StrictOptions())
	if !res.Success {
		return "", &ValidationError{Kind: kind, Key: key, Errors: res.Errors}
	}

	start := time.Now()
	etag, err := s.store.Put(ctx, key, bytes, expectedEtag)
	s.recordOp("put", start, err)
	if err != nil {
		if errors.Is(err, backend.ErrConflict) {
			s.metrics.RecordConflict()
		}
		return "", fmt.Errorf("upsert %s: %w", key, err)
	}

	s.cacheSet(key, etag, doc)
	return etag, nil
}

func (s *Service) get(ctx context.Context, key string) (backend.Record, error) {
	start := time.Now()
	rec, err := s.store.Get(ctx, key)
	s.recordOp("get", start, err)
	return rec, err
}

// writeBack persists a migrated document using the etag observed at read
// time, detached from the caller. Losing the race to a concurrent writer is
// fine: that writer holds newer data, and the next load migrates again.
func (s *Service) writeBack(key string, doc any, etag string) {
	bytes, err := json.Marshal(doc)
	if err != nil {
		s.log.LogWriteBack(key, err)
		return
	}

	s.wb.Add(1)
	go func() {
		defer s.wb.Done()

		_, err := s.store.Put(context.Background(), key, bytes, etag)
		s.log.LogWriteBack(key, err)
		if err != nil {
			s.metrics.RecordWriteBack("failure")
			return
		}
		s.metrics.RecordWriteBack("success")
	}()
}

func (s *Service) cacheGet(key, etag string) (any, bool) {
	v, ok := s.cache.Get(key + "@" + etag)
	if ok {
		s.metrics.RecordCacheHit()
		return v, true
	}
	s.metrics.RecordCacheMiss()
	return nil, false
}

func (s *Service) cacheSet(key, etag string, doc any) {
	s.cache.Set(key+"@"+etag, doc, gocache.DefaultExpiration)
}

func (s *Service) recordOp(op string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordBackendOp(op, status, time.Since(start))
}
