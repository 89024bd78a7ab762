package repository

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-pkgz/lgr"
	"github.com/jmoiron/sqlx"

	"github.com/hanstudy/ingest/pkg/domain"
)

// ArticleRepository is the ingestion sink. Articles are unique by identity within a source,
// a known identity with changed title or body is updated, unchanged one is counted as deduped.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// articleRow is the database shape of an ingested article
type articleRow struct {
	SourceKey    string `db:"source_key"`
	SourceType   string `db:"source_type"`
	Identity     string `db:"identity"`
	SourceGUID   string `db:"source_guid"`
	SourceURL    string `db:"source_url"`
	CanonicalURL string `db:"canonical_url"`
	Title        string `db:"title"`
	Summary      string `db:"summary"`
	BodyText     string `db:"body_text"`
	BodyHTML     string `db:"body_html"`
	Section      string `db:"section"`
	Tags         string `db:"tags"`
	Author       string `db:"author"`
	PublishedAt  int64  `db:"published_at"`
	ContentHash  string `db:"content_hash"`
}

// ingestOutcome is what happened to one article
type ingestOutcome int

const (
	outcomeInserted ingestOutcome = iota
	outcomeUpdated
	outcomeDeduped
)

// Ingest stores a batch of articles. Per-article failures are counted and reported in the result,
// the error is returned only for a request that can't be processed at all.
func (r *ArticleRepository) Ingest(ctx context.Context, req domain.IngestRequest) (domain.IngestResult, error) {
	if req.SourceKey == "" {
		return domain.IngestResult{}, errors.New("ingest: empty source key")
	}

	res := domain.IngestResult{Fetched: len(req.Articles)}
	for _, a := range req.Articles {
		outcome, err := r.ingestOne(ctx, req, a)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", a.Identity(), err))
			lgr.Printf("[WARN] failed to store article %s of %s: %v", a.Identity(), req.SourceKey, err)
			continue
		}
		switch outcome {
		case outcomeInserted:
			res.Inserted++
		case outcomeUpdated:
			res.Updated++
		case outcomeDeduped:
			res.Deduped++
		}
	}
	lgr.Printf("[DEBUG] ingested %s: fetched %d, inserted %d, updated %d, deduped %d, failed %d",
		req.SourceKey, res.Fetched, res.Inserted, res.Updated, res.Deduped, res.Failed)
	return res, nil
}

func (r *ArticleRepository) ingestOne(ctx context.Context, req domain.IngestRequest, a domain.Article) (ingestOutcome, error) {
	if a.SourceURL == "" || a.Title == "" {
		return 0, errors.New("missing url or title")
	}
	row, err := toArticleRow(req, a)
	if err != nil {
		return 0, err
	}

	var outcome ingestOutcome
	err = newRetrier().Do(ctx, func() error {
		var storedHash string
		err := r.db.GetContext(ctx, &storedHash,
			"SELECT content_hash FROM articles WHERE source_key = ? AND identity = ?", row.SourceKey, row.Identity)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			_, err = r.db.NamedExecContext(ctx, `
				INSERT INTO articles (source_key, source_type, identity, source_guid, source_url, canonical_url, title, summary,
					body_text, body_html, section, tags, author, published_at, content_hash)
				VALUES (:source_key, :source_type, :identity, :source_guid, :source_url, :canonical_url, :title, :summary,
					:body_text, :body_html, :section, :tags, :author, :published_at, :content_hash)`, row)
			if err != nil {
				return lockOrCritical(fmt.Errorf("insert article: %w", err))
			}
			outcome = outcomeInserted
			return nil
		case err != nil:
			return lockOrCritical(fmt.Errorf("get article: %w", err))
		case storedHash == row.ContentHash:
			outcome = outcomeDeduped
			return nil
		}

		_, err = r.db.NamedExecContext(ctx, `
			UPDATE articles
			SET source_url = :source_url, canonical_url = :canonical_url, title = :title, summary = :summary,
			    body_text = :body_text, body_html = :body_html, section = :section, tags = :tags, author = :author,
			    published_at = :published_at, content_hash = :content_hash, updated_at = CURRENT_TIMESTAMP
			WHERE source_key = :source_key AND identity = :identity`, row)
		if err != nil {
			return lockOrCritical(fmt.Errorf("update article: %w", err))
		}
		outcome = outcomeUpdated
		return nil
	}, errCritical)
	return outcome, unwrapCritical(err)
}

// CountArticles returns number of stored articles of the source
func (r *ArticleRepository) CountArticles(ctx context.Context, key string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles WHERE source_key = ?", key); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

func toArticleRow(req domain.IngestRequest, a domain.Article) (articleRow, error) {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return articleRow{}, fmt.Errorf("marshal tags: %w", err)
	}
	return articleRow{
		SourceKey:    req.SourceKey,
		SourceType:   string(req.SourceType),
		Identity:     a.Identity(),
		SourceGUID:   a.SourceGUID,
		SourceURL:    a.SourceURL,
		CanonicalURL: a.CanonicalURL,
		Title:        a.Title,
		Summary:      a.Summary,
		BodyText:     a.BodyText,
		BodyHTML:     a.BodyHTML,
		Section:      a.Section,
		Tags:         string(tagsJSON),
		Author:       a.Author,
		PublishedAt:  a.PublishedAt,
		ContentHash:  contentHash(a),
	}, nil
}

// contentHash is sha256 of title and body text
func contentHash(a domain.Article) string {
	h := sha256.New()
	h.Write([]byte(a.Title))
	h.Write([]byte{0})
	h.Write([]byte(a.BodyText))
	return hex.EncodeToString(h.Sum(nil))
}
