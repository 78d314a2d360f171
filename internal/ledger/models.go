package ledger

import "time"

// PostStatus represents the publication state of a backlink post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Article is one published article record. Records are append-only: the
// pipeline never mutates an article after it lands in the ledger.
type Article struct {
	ID                int64
	Slug              string
	Title             string
	CategoryID        int64
	CategorySlug      string
	CategoryName      string
	Content           string
	MetaDescription   string
	Keywords          []string
	Tags              []string
	URL               string
	ReadTime          int
	WordCount         int
	Excerpt           string
	RelatedSlugs      []string
	ImagePlaceholders []string
	DatePublished     time.Time
	DateModified      time.Time
}

// BacklinkPost records one external draft created for an article.
type BacklinkPost struct {
	ID          string
	ArticleSlug string
	Platform    string
	PostRef     string
	Title       string
	PostedAt    time.Time
	TargetURL   string
	Status      PostStatus
}

// ResolvedImage is one image placed into an article, either downloaded from
// a stock provider or a local fallback placeholder.
type ResolvedImage struct {
	Filename            string `json:"filename"`
	URL                 string `json:"url"`
	AltText             string `json:"alt_text"`
	Title               string `json:"title"`
	Source              string `json:"source"`
	Photographer        string `json:"photographer"`
	PhotographerURL     string `json:"photographer_url,omitempty"`
	AttributionRequired bool   `json:"attribution_required"`
	Width               int    `json:"width"`
	Height              int    `json:"height"`
}

// ImageSet is the cached image resolution result for one article.
type ImageSet struct {
	ArticleSlug string
	Images      []ResolvedImage
	SearchTerms []string
	ProcessedAt time.Time
}
