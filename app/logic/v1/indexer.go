package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"

	"github.com/jayline-services/assist/app/core"
	"github.com/jayline-services/assist/app/core/srv"
	"github.com/jayline-services/assist/app/store"
	"github.com/jayline-services/assist/pkg/chunk"
	"github.com/jayline-services/assist/pkg/errors"
	"github.com/jayline-services/assist/pkg/i18n"
	"github.com/jayline-services/assist/pkg/types"
	"github.com/jayline-services/assist/pkg/utils"
)

// PageDocument is one extracted source of site content before chunking.
type PageDocument struct {
	Title    string
	Content  string
	URL      string
	Metadata map[string]any
}

type IndexLogic struct {
	ctx  context.Context
	core *core.Core

	aiDriver srv.AIDriver
	docs     store.DocumentStore
	metrics  *core.Metrics

	contentDir string
	baseURL    string
}

func NewIndexLogic(ctx context.Context, core *core.Core) *IndexLogic {
	return &IndexLogic{
		ctx:        ctx,
		core:       core,
		aiDriver:   core.Srv().AI(),
		docs:       core.Store().DocumentStore(),
		metrics:    core.Metrics(),
		contentDir: core.Cfg().Site.ContentDir,
		baseURL:    core.Cfg().Site.BaseURL,
	}
}

type IndexReport struct {
	Pages         int `json:"pages"`
	TotalChunks   int `json:"total_chunks"`
	IndexedChunks int `json:"indexed_chunks"`
	FailedChunks  int `json:"failed_chunks"`
}

// Reindex rebuilds the whole search index: collect page sources plus the
// static company documents, chunk them, wipe the table and write everything
// back. A failing chunk is logged and skipped so one bad page never aborts
// the run.
func (l *IndexLogic) Reindex() (*IndexReport, error) {
	documents, err := l.collectPageDocuments()
	if err != nil {
		return nil, err
	}
	documents = append(documents, staticDocuments(l.baseURL)...)

	var chunks []types.Document
	for _, doc := range documents {
		pieces, err := chunk.Split(doc.Content, chunk.Options{})
		if err != nil {
			return nil, errors.New("IndexLogic.Reindex.chunk.Split", i18n.ERROR_INTERNAL, err).Code(http.StatusInternalServerError)
		}

		for i, piece := range pieces {
			meta := make(map[string]any, len(doc.Metadata)+1)
			for k, v := range doc.Metadata {
				meta[k] = v
			}
			meta["totalChunks"] = len(pieces)
			rawMeta, _ := json.Marshal(meta)

			chunks = append(chunks, types.Document{
				ID:         utils.GenUniqIDStr(),
				Title:      doc.Title,
				Content:    piece,
				URL:        doc.URL,
				ChunkIndex: i,
				Metadata:   rawMeta,
			})
		}
	}

	slog.Info("reindexing site content",
		slog.Int("pages", len(documents)), slog.Int("chunks", len(chunks)))

	if err = l.docs.DeleteAll(l.ctx); err != nil {
		return nil, errors.New("IndexLogic.Reindex.DocumentStore.DeleteAll", i18n.ERROR_INTERNAL, err).Code(http.StatusInternalServerError)
	}

	report := &IndexReport{
		Pages:       len(documents),
		TotalChunks: len(chunks),
	}

	for i := range chunks {
		if err := l.indexChunk(&chunks[i]); err != nil {
			slog.Error("failed to index chunk",
				slog.String("title", chunks[i].Title),
				slog.Int("chunk_index", chunks[i].ChunkIndex),
				slog.String("error", err.Error()))
			report.FailedChunks++
			continue
		}
		report.IndexedChunks++
	}

	l.metrics.SetIndexedDocuments(float64(report.IndexedChunks))

	return report, nil
}

func (l *IndexLogic) indexChunk(doc *types.Document) error {
	res, err := l.aiDriver.EmbeddingForDocument(l.ctx, doc.Title, []string{doc.Content})
	if err != nil {
		return fmt.Errorf("failed to embed chunk, %w", err)
	}
	if len(res.Data) == 0 {
		return fmt.Errorf("embedding response carried no vectors")
	}

	doc.Embedding = pgvector.NewVector(res.Data[0])
	doc.UpdatedAt = time.Now().Unix()

	if err = l.docs.Upsert(l.ctx, *doc); err != nil {
		return fmt.Errorf("failed to upsert chunk, %w", err)
	}
	return nil
}

// collectPageDocuments walks the configured content directory and extracts
// prose from every page source file. A missing directory just yields no
// pages, the static documents still get indexed.
func (l *IndexLogic) collectPageDocuments() ([]PageDocument, error) {
	contentDir := l.contentDir
	if contentDir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(contentDir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("content directory not found, indexing static content only", slog.String("dir", contentDir))
			return nil, nil
		}
		return nil, errors.New("IndexLogic.collectPageDocuments.ReadDir", i18n.ERROR_INTERNAL, err).Code(http.StatusInternalServerError)
	}

	var documents []PageDocument
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tsx") {
			continue
		}

		path := filepath.Join(contentDir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			slog.Error("failed to read page source", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}

		text := chunk.ExtractPageText(string(raw))
		if text == "" {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".tsx")
		pageURL := "/" + strings.ToLower(name)
		if name == "Home" {
			pageURL = "/"
		}

		meta := map[string]any{
			"type":      "page",
			"component": name,
		}
		if info, err := entry.Info(); err == nil {
			meta["lastModified"] = info.ModTime().UTC().Format(time.RFC3339)
		}

		documents = append(documents, PageDocument{
			Title:    fmt.Sprintf("%s Page - Jay Line Services", name),
			Content:  text,
			URL:      l.baseURL + pageURL,
			Metadata: meta,
		})
	}

	return documents, nil
}

// staticDocuments always get indexed, even when no page sources are around.
// They carry the company facts the assistant is most often asked about.
func staticDocuments(baseURL string) []PageDocument {
	return []PageDocument{
		{
			Title:    "Jay Line Services - Company Overview",
			Content:  `Jay Line Services is a leading provider of comprehensive human resource solutions, manpower services, and financial consultancy in Kenya. With over 15 years of experience, we have successfully served 100+ corporate clients and completed 500+ successful placements. Our services include staff recruitment, HR consultancy, payroll management, executive search, manpower supply, training and development, and soft financing solutions.`,
			URL:      baseURL + "/about",
			Metadata: map[string]any{"type": "company_info"},
		},
		{
			Title:    "Contact Information - Jay Line Services",
			Content:  `Contact Jay Line Services at +254 722 311 490 or +254 734 271 863. Email us at info@jaylineservice.co.ke. Our office is located at Beliani Annex, Ground Floor, Along Kangundo Road, P.O. Box 5322-00100, Nairobi, Kenya. Business hours are Monday-Friday 8:00 AM - 6:00 PM, Saturday 9:00 AM - 2:00 PM.`,
			URL:      baseURL + "/contact",
			Metadata: map[string]any{"type": "contact_info"},
		},
	}
}
