package v1

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/pgvector/pgvector-go"

	"github.com/jayline-services/assist/pkg/ai"
	"github.com/jayline-services/assist/pkg/sqlstore"
	"github.com/jayline-services/assist/pkg/types"
	"github.com/jayline-services/assist/pkg/utils"
)

func TestMain(m *testing.M) {
	utils.SetupIDWorker(1)
	os.Exit(m.Run())
}

type fakeAIDriver struct {
	embedQuery func(content []string) (ai.EmbeddingResult, error)
	embedDoc   func(title string, content []string) (ai.EmbeddingResult, error)
	generate   func(msgs []ai.Message, opts *ai.GenerateOptions) (ai.GenerateResponse, error)
	overLimit  func(msgs []ai.Message) bool

	embedQueryCalls int
	embedDocCalls   int
	generateCalls   int
}

func (f *fakeAIDriver) EmbeddingForQuery(_ context.Context, content []string) (ai.EmbeddingResult, error) {
	f.embedQueryCalls++
	if f.embedQuery == nil {
		return ai.EmbeddingResult{Data: [][]float32{make([]float32, 4)}}, nil
	}
	return f.embedQuery(content)
}

func (f *fakeAIDriver) EmbeddingForDocument(_ context.Context, title string, content []string) (ai.EmbeddingResult, error) {
	f.embedDocCalls++
	if f.embedDoc == nil {
		return ai.EmbeddingResult{Data: [][]float32{make([]float32, 4)}}, nil
	}
	return f.embedDoc(title, content)
}

func (f *fakeAIDriver) Generate(_ context.Context, msgs []ai.Message, opts *ai.GenerateOptions) (ai.GenerateResponse, error) {
	f.generateCalls++
	if f.generate == nil {
		return ai.GenerateResponse{Received: []string{"generated answer"}}, nil
	}
	return f.generate(msgs, opts)
}

func (f *fakeAIDriver) MsgIsOverLimit(msgs []ai.Message) bool {
	if f.overLimit == nil {
		return false
	}
	return f.overLimit(msgs)
}

type fakeDocumentStore struct {
	sqlstore.SqlCommons

	match     func(threshold float64, limit uint64) ([]types.MatchResult, error)
	upsertErr func(doc types.Document) error

	upserted       []types.Document
	deleteAllCalls int
	// ops records call ordering so tests can assert the wipe happens
	// before any insert.
	ops []string
}

func (f *fakeDocumentStore) Upsert(_ context.Context, data types.Document) error {
	if f.upsertErr != nil {
		if err := f.upsertErr(data); err != nil {
			return err
		}
	}
	f.upserted = append(f.upserted, data)
	f.ops = append(f.ops, "upsert")
	return nil
}

func (f *fakeDocumentStore) BatchUpsert(_ context.Context, datas []*types.Document) error {
	for _, d := range datas {
		f.upserted = append(f.upserted, *d)
	}
	f.ops = append(f.ops, "batch_upsert")
	return nil
}

func (f *fakeDocumentStore) Match(_ context.Context, _ pgvector.Vector, threshold float64, limit uint64) ([]types.MatchResult, error) {
	if f.match == nil {
		return nil, nil
	}
	return f.match(threshold, limit)
}

func (f *fakeDocumentStore) DeleteAll(_ context.Context) error {
	f.deleteAllCalls++
	f.ops = append(f.ops, "delete_all")
	return nil
}

func (f *fakeDocumentStore) List(_ context.Context, _ types.GetDocumentsOptions, _, _ uint64) ([]types.Document, error) {
	return f.upserted, nil
}

func (f *fakeDocumentStore) Total(_ context.Context, _ types.GetDocumentsOptions) (int64, error) {
	return int64(len(f.upserted)), nil
}

type fakeSuggestionStore struct {
	sqlstore.SqlCommons

	mu   sync.Mutex
	rows map[string]*types.Suggestion
}

func newFakeSuggestionStore() *fakeSuggestionStore {
	return &fakeSuggestionStore{rows: make(map[string]*types.Suggestion)}
}

func (f *fakeSuggestionStore) Create(_ context.Context, data types.Suggestion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[data.ID] = &data
	return nil
}

func (f *fakeSuggestionStore) Get(_ context.Context, id string) (*types.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *row
	return &cp, nil
}

func (f *fakeSuggestionStore) List(_ context.Context, opts types.ListSuggestionOptions, _, _ uint64) ([]types.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.Suggestion
	for _, row := range f.rows {
		if opts.Status != "" && row.Status != opts.Status {
			continue
		}
		out = append(out, *row)
	}
	return out, nil
}

func (f *fakeSuggestionStore) Total(_ context.Context, opts types.ListSuggestionOptions) (int64, error) {
	list, _ := f.List(context.Background(), opts, types.NO_PAGINATION, 0)
	return int64(len(list)), nil
}

func (f *fakeSuggestionStore) UpdateStatusFromPending(_ context.Context, id string, status types.SuggestionStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.Status != types.SUGGESTION_STATUS_PENDING {
		return false, nil
	}
	row.Status = status
	return true, nil
}

type fakePostStore struct {
	sqlstore.SqlCommons

	createErr error
	created   []types.Post
}

func (f *fakePostStore) Create(_ context.Context, data types.Post) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, data)
	return nil
}

func (f *fakePostStore) Get(_ context.Context, id string) (*types.Post, error) {
	for i := range f.created {
		if f.created[i].ID == id {
			cp := f.created[i]
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakePostStore) List(_ context.Context, opts types.ListPostOptions, _, _ uint64) ([]types.Post, error) {
	var out []types.Post
	for _, row := range f.created {
		if opts.Status != "" && row.Status != opts.Status {
			continue
		}
		if opts.CreatedBy != "" && row.CreatedBy != opts.CreatedBy {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakePostStore) Total(_ context.Context, opts types.ListPostOptions) (int64, error) {
	list, _ := f.List(context.Background(), opts, types.NO_PAGINATION, 0)
	return int64(len(list)), nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]string)}
}

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *memCache) SetEx(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Expire(_ context.Context, _ string, _ time.Duration) error {
	return nil
}

func passthroughTransaction(ctx context.Context, next func(ctx context.Context) error) error {
	return next(ctx)
}
