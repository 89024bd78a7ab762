package domain

// Article is the normalized shape every puller adapter produces and the ingestion sink consumes.
// SourceURL and Title are always non-empty, adapters drop items missing either.
type Article struct {
	SourceGUID   string   `json:"sourceGuid,omitempty"`
	SourceURL    string   `json:"sourceUrl"`
	CanonicalURL string   `json:"canonicalUrl,omitempty"`
	Title        string   `json:"title"`
	Summary      string   `json:"summary,omitempty"`
	BodyText     string   `json:"bodyText,omitempty"`
	BodyHTML     string   `json:"bodyHtml,omitempty"`
	Section      string   `json:"section,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Author       string   `json:"author,omitempty"`
	PublishedAt  int64    `json:"publishedAt,omitempty"` // epoch ms, 0 if unknown
}

// Identity returns the dedup identity of the article, guid if present, source url otherwise
func (a Article) Identity() string {
	if a.SourceGUID != "" {
		return a.SourceGUID
	}
	return a.SourceURL
}

// IngestRequest is a batch of articles handed to the ingestion sink for one poll cycle
type IngestRequest struct {
	SourceKey  string
	SourceType SourceType
	Articles   []Article
}

// IngestResult reports what the sink did with a batch
type IngestResult struct {
	Fetched  int      `json:"fetched"`
	Inserted int      `json:"inserted"`
	Updated  int      `json:"updated"`
	Deduped  int      `json:"deduped"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}
