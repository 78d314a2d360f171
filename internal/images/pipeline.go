// Package images resolves, downloads, and substitutes stock images for
// articles. Resolution results are cached in the ledger per article slug so
// reprocessing an article never repeats a search.
package images

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"moneypress/internal/config"
	"moneypress/internal/ledger"
	"moneypress/internal/logging"
	"moneypress/internal/services/pixabay"
	"moneypress/internal/services/unsplash"
	"moneypress/internal/textutil"
)

const (
	minSourceWidth  = 1200
	minSourceHeight = 800
	minAspect       = 1.2
	maxAspect       = 2.0
	altTextMax      = 125
	fallbackWidth   = 1200
	fallbackHeight  = 800
)

// PhotoSearcher is the Unsplash operation the pipeline needs.
type PhotoSearcher interface {
	SearchPhotos(ctx context.Context, query string, perPage int) ([]unsplash.Photo, error)
}

// ImageSearcher is the Pixabay operation the pipeline needs.
type ImageSearcher interface {
	SearchImages(ctx context.Context, query string, perPage int) ([]pixabay.Image, error)
}

// candidate is a provider result before it is turned into a ledger record.
type candidate struct {
	id                  string
	source              string
	url                 string
	downloadURL         string
	altText             string
	photographer        string
	photographerURL     string
	width               int
	height              int
	attributionRequired bool
}

// Pipeline resolves article images. Either searcher may be nil when its
// credentials are not configured; with both nil every slot is filled with a
// fallback record.
type Pipeline struct {
	store    *ledger.Store
	unsplash PhotoSearcher
	pixabay  ImageSearcher
	cfg      *config.Config
	logger   *slog.Logger

	httpClient *http.Client
	sleep      func(time.Duration)
}

// NewPipeline constructs an image pipeline.
func NewPipeline(store *ledger.Store, uns PhotoSearcher, pix ImageSearcher, cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		store:      store,
		unsplash:   uns,
		pixabay:    pix,
		cfg:        cfg,
		logger:     logger,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		sleep:      time.Sleep,
	}
}

// Process resolves the image set for an article. The operation is idempotent
// per slug: a cached set is returned without any provider traffic.
func (p *Pipeline) Process(ctx context.Context, article *ledger.Article) (*ledger.ImageSet, error) {
	cached, err := p.store.ImageSetBySlug(ctx, article.Slug)
	if err != nil {
		return nil, fmt.Errorf("images: load cache: %w", err)
	}
	if cached != nil {
		p.logger.Info("images already processed", slog.String(logging.FieldArticle, article.Slug))
		if err := p.applyImages(ctx, article, cached); err != nil {
			return nil, err
		}
		return cached, nil
	}

	terms := searchTerms(article)
	candidates := p.searchAndSelect(ctx, terms)

	resolved := make([]ledger.ResolvedImage, 0, len(candidates))
	for i, cand := range candidates {
		n := i + 1
		filename := fmt.Sprintf("%s-%d.jpg", article.Slug, n)
		url := "/static/images/" + filename
		if cand.source == "fallback" {
			filename = fmt.Sprintf("placeholder-%d.jpg", n)
			url = "/static/images/" + filename
		} else if err := p.download(ctx, cand, filename); err != nil {
			p.logger.Warn("image download failed",
				slog.String(logging.FieldArticle, article.Slug),
				slog.String("filename", filename),
				logging.Error(err))
		}

		resolved = append(resolved, ledger.ResolvedImage{
			Filename:            filename,
			URL:                 url,
			AltText:             altText(cand, article.CategoryName),
			Title:               article.CategoryName + " - " + article.Title,
			Source:              cand.source,
			Photographer:        cand.photographer,
			PhotographerURL:     cand.photographerURL,
			AttributionRequired: cand.attributionRequired,
			Width:               cand.width,
			Height:              cand.height,
		})
	}

	set := &ledger.ImageSet{
		ArticleSlug: article.Slug,
		Images:      resolved,
		SearchTerms: terms,
		ProcessedAt: time.Now().UTC(),
	}
	if err := p.store.SaveImageSet(ctx, set); err != nil {
		return nil, fmt.Errorf("images: save set: %w", err)
	}

	if err := p.applyImages(ctx, article, set); err != nil {
		return nil, err
	}

	p.logger.Info("processed article images",
		slog.String(logging.FieldArticle, article.Slug),
		slog.Int("count", len(resolved)))
	return set, nil
}

// applyImages substitutes the resolved set into any remaining [IMAGE:]
// markers and persists the rewritten content. Content without markers is
// left untouched, which makes repeat runs no-ops.
func (p *Pipeline) applyImages(ctx context.Context, article *ledger.Article, set *ledger.ImageSet) error {
	if !strings.Contains(article.Content, "[IMAGE:") {
		return nil
	}
	content := SubstitutePlaceholders(article.Content, set.Images)
	if content == article.Content {
		return nil
	}
	if err := p.store.UpdateArticleContent(ctx, article.Slug, content); err != nil {
		return fmt.Errorf("images: update content: %w", err)
	}
	article.Content = content
	return nil
}

// searchAndSelect walks the terms in order, Unsplash before Pixabay, until
// the per-article target is met. Provider errors degrade to empty results;
// any shortfall is filled with fallback records.
func (p *Pipeline) searchAndSelect(ctx context.Context, terms []string) []candidate {
	target := p.cfg.Images.PerArticle
	perPage := p.cfg.Images.SearchPerPage
	delay := time.Duration(p.cfg.Images.SearchDelayMS) * time.Millisecond

	var selected []candidate
	for _, term := range terms {
		if len(selected) >= target {
			break
		}

		if p.unsplash != nil {
			photos, err := p.unsplash.SearchPhotos(ctx, term, perPage)
			if err != nil {
				p.logger.Warn("unsplash search failed", slog.String("term", term), logging.Error(err))
			}
			for _, photo := range photos {
				if len(selected) >= target {
					break
				}
				if suitable(photo) {
					selected = append(selected, fromUnsplash(photo))
				}
			}
		}

		if len(selected) < target && p.pixabay != nil {
			hits, err := p.pixabay.SearchImages(ctx, term, perPage)
			if err != nil {
				p.logger.Warn("pixabay search failed", slog.String("term", term), logging.Error(err))
			}
			for _, hit := range hits {
				if len(selected) >= target {
					break
				}
				selected = append(selected, fromPixabay(hit))
			}
		}

		p.sleep(delay)
	}

	for len(selected) < target {
		selected = append(selected, fallbackCandidate(len(selected)+1))
	}
	return selected[:target]
}

// suitable applies the Unsplash acceptance rule: large enough and reasonably
// landscape. Pixabay results are pre-filtered by the search parameters.
func suitable(photo unsplash.Photo) bool {
	if photo.Width < minSourceWidth || photo.Height < minSourceHeight {
		return false
	}
	aspect := float64(photo.Width) / float64(photo.Height)
	return aspect >= minAspect && aspect <= maxAspect
}

func fromUnsplash(photo unsplash.Photo) candidate {
	return candidate{
		id:                  photo.ID,
		source:              "unsplash",
		url:                 photo.URLs.Regular,
		downloadURL:         photo.URLs.Full,
		altText:             photo.AltDescription,
		photographer:        photo.User.Name,
		photographerURL:     photo.User.Links.HTML,
		width:               photo.Width,
		height:              photo.Height,
		attributionRequired: true,
	}
}

func fromPixabay(image pixabay.Image) candidate {
	return candidate{
		id:           fmt.Sprintf("%d", image.ID),
		source:       "pixabay",
		url:          image.WebformatURL,
		downloadURL:  image.FullHDURL,
		altText:      strings.ReplaceAll(image.Tags, ",", " "),
		photographer: image.User,
		width:        image.ImageWidth,
		height:       image.ImageHeight,
	}
}

func fallbackCandidate(n int) candidate {
	return candidate{
		id:           fmt.Sprintf("fallback_%d", n),
		source:       "fallback",
		url:          fmt.Sprintf("/static/images/placeholder-%d.jpg", n),
		altText:      "Financial planning and money management illustration",
		photographer: "MoneyPress",
		width:        fallbackWidth,
		height:       fallbackHeight,
	}
}

// altText builds accessible alt text from the source description and the
// article's category, clamped for screen readers.
func altText(cand candidate, categoryName string) string {
	text := fmt.Sprintf("Financial illustration for %s advice and tips", categoryName)
	if cand.altText != "" {
		text = fmt.Sprintf("%s - %s guide", cand.altText, categoryName)
	}
	text = strings.Join(strings.Fields(text), " ")
	return textutil.Clamp(text, altTextMax)
}

// download streams one provider image to the images directory, skipping
// files that already exist.
func (p *Pipeline) download(ctx context.Context, cand candidate, filename string) error {
	url := cand.downloadURL
	if url == "" {
		url = cand.url
	}
	if url == "" {
		return fmt.Errorf("no download url")
	}

	path := filepath.Join(p.cfg.Paths.ImagesDir, filename)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("http %d", resp.StatusCode)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("write file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}

	p.logger.Info("downloaded image", slog.String("filename", filename))
	return nil
}
