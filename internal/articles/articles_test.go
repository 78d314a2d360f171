package articles

import (
	"context"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"moneypress/internal/catalog"
	"moneypress/internal/config"
	"moneypress/internal/ledger"
	"moneypress/internal/services/openai"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
	opts     []openai.GenerateOptions
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, opts openai.GenerateOptions) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func openTestStore(t *testing.T) *ledger.Store {
	t.Helper()
	store, err := ledger.OpenPath(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Categories: []catalog.Category{
			{ID: 1, Name: "Credit Cards", Slug: "credit-cards", CompareURL: "https://example.com/compare/cards", BestURL: "https://example.com/best/cards"},
			{ID: 2, Name: "Personal Loans", Slug: "personal-loans"},
		},
		Groups: []catalog.TopicGroup{
			{CategoryID: 1, Topics: []string{"Best Credit Cards 2025", "How APR Works"}},
			{CategoryID: 2, Topics: []string{"Personal Loan Basics"}},
		},
	}
}

func TestExtractKeywords(t *testing.T) {
	content := "Credit credit credit score score budget budget budget budget with this that"
	keywords := extractKeywords(content)

	if len(keywords) < 3 {
		t.Fatalf("keywords = %v", keywords)
	}
	if keywords[0] != "budget" || keywords[1] != "credit" || keywords[2] != "score" {
		t.Errorf("keywords = %v, want budget, credit, score first", keywords)
	}
	for _, kw := range keywords {
		if stopWords[kw] {
			t.Errorf("stop word %q survived extraction", kw)
		}
	}
}

func TestExtractKeywordsCap(t *testing.T) {
	var b strings.Builder
	for _, w := range []string{"alpha", "bravo", "chart", "delta", "eagle", "fraud", "grape", "hotel", "index", "jolly", "karma", "lemon"} {
		b.WriteString(w + " ")
	}
	if got := extractKeywords(b.String()); len(got) != maxKeywords {
		t.Fatalf("got %d keywords, want %d", len(got), maxKeywords)
	}
}

func TestGenerateTags(t *testing.T) {
	category := &catalog.Category{Name: "Credit Cards", Slug: "credit-cards"}
	keywords := []string{"credit", "card", "rewards", "annual", "interest", "balance", "points"}

	tags := generateTags(category, keywords)

	if tags[0] != "Credit Cards" {
		t.Errorf("first tag = %q, want category name", tags[0])
	}
	// "card" is too short to qualify; five longer keywords then two fixed tags.
	want := []string{"Credit Cards", "credit", "rewards", "annual", "interest", "balance", "Credit", "APR"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("tags = %v, want %v", tags, want)
		}
	}
}

func TestGenerateTagsDeduplicates(t *testing.T) {
	category := &catalog.Category{Name: "Loans", Slug: "no-fixed-tags"}
	tags := generateTags(category, []string{"loans", "Loans", "loans"})
	seen := map[string]bool{}
	for _, tag := range tags {
		if seen[tag] {
			t.Fatalf("duplicate tag %q in %v", tag, tags)
		}
		seen[tag] = true
	}
}

func TestInjectImagePlaceholders(t *testing.T) {
	content := "<article>\n<p>Intro paragraph.</p>\n" +
		"<h2>One</h2><p>First.</p><p>More.</p>" +
		"<h2>Two</h2><p>Second.</p>" +
		"<h2>Three</h2><p>Third.</p>" +
		"<h2>Four</h2><p>Fourth.</p>" +
		"\n</article>"

	out := injectImagePlaceholders(content)

	if got := strings.Count(out, "[IMAGE:"); got != 2 {
		t.Fatalf("placeholder count = %d, want 2\n%s", got, out)
	}
	for _, name := range []string{"financial-guide-2.jpg", "financial-guide-4.jpg"} {
		if !strings.Contains(out, name) {
			t.Errorf("missing placeholder %s", name)
		}
	}
	// Placeholder lands after the section's first paragraph.
	if idx := strings.Index(out, "financial-guide-2.jpg"); idx < strings.Index(out, "<h2>Two</h2>") {
		t.Error("placeholder 2 inserted before its section")
	}
}

func TestInjectImagePlaceholdersSkipsSectionWithoutParagraph(t *testing.T) {
	content := "<article><h2>One</h2><p>First.</p><h2>Two</h2><ul><li>x</li></ul></article>"
	out := injectImagePlaceholders(content)
	if strings.Contains(out, "[IMAGE:") {
		t.Fatalf("unexpected placeholder in %s", out)
	}
}

func TestAddInternalLink(t *testing.T) {
	recent := []*ledger.Article{
		{Title: "How APR Works Today", URL: "https://example.com/credit-cards/how-apr-works"},
	}
	content := "<p>Understanding how apr works helps. Also how apr works matters.</p>"

	out := addInternalLink(content, recent)

	if got := strings.Count(out, "<a href="); got != 1 {
		t.Fatalf("link count = %d, want 1\n%s", got, out)
	}
	if !strings.Contains(out, `<a href="https://example.com/credit-cards/how-apr-works">how apr works</a>`) {
		t.Fatalf("unexpected link markup:\n%s", out)
	}
}

func TestAddInternalLinkSkipsAlreadyLinked(t *testing.T) {
	recent := []*ledger.Article{
		{Title: "How APR Works", URL: "https://example.com/a"},
	}
	content := `<p>See how apr works at <a href="https://example.com/a">the guide</a>.</p>`
	if out := addInternalLink(content, recent); strings.Count(out, "https://example.com/a") != 1 {
		t.Fatalf("article linked twice:\n%s", out)
	}
}

func TestFindRelatedSlugs(t *testing.T) {
	published := []*ledger.Article{
		{Slug: "a", Title: "A", CategorySlug: "credit-cards"},
		{Slug: "b", Title: "B", CategorySlug: "credit-cards"},
		{Slug: "c", Title: "C", CategorySlug: "mortgages"},
		{Slug: "d", Title: "D", CategorySlug: "mortgages"},
	}
	related := findRelatedSlugs("credit-cards", "New Topic", published)
	if len(related) != 2 {
		t.Fatalf("related = %v", related)
	}
	if related[0] != "a" || related[1] != "c" {
		t.Fatalf("related = %v, want [a c]", related)
	}
}

func TestSelectorPicksFirstUnwrittenTopic(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	if err := store.AddArticle(ctx, &ledger.Article{Slug: "best-credit-cards-2025", Title: "Best Credit Cards 2025", CategorySlug: "credit-cards"}); err != nil {
		t.Fatalf("seed article: %v", err)
	}

	selector := NewSelector(store, testCatalog(), &fakeGenerator{}, "gpt-4o-mini", nil)
	category, topic, err := selector.NextTopic(ctx)
	if err != nil {
		t.Fatalf("NextTopic: %v", err)
	}
	if category == nil || category.Slug != "credit-cards" || topic != "How APR Works" {
		t.Fatalf("got %v / %q", category, topic)
	}
}

func TestSelectorFallsBackToVariation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	for _, title := range []string{"Best Credit Cards 2025", "How APR Works", "Personal Loan Basics"} {
		article := &ledger.Article{Slug: strings.ToLower(strings.ReplaceAll(title, " ", "-")), Title: title, CategorySlug: "credit-cards"}
		if err := store.AddArticle(ctx, article); err != nil {
			t.Fatalf("seed article: %v", err)
		}
	}

	ai := &fakeGenerator{response: "\"Smart Credit Moves for 2025\""}
	selector := NewSelector(store, testCatalog(), ai, "gpt-4o-mini", nil)
	category, topic, err := selector.NextTopic(ctx)
	if err != nil {
		t.Fatalf("NextTopic: %v", err)
	}
	if category == nil {
		t.Fatal("expected a category from variation")
	}
	if topic != "Smart Credit Moves for 2025" {
		t.Fatalf("topic = %q, want wrapping quotes stripped", topic)
	}
	if len(ai.opts) != 1 || ai.opts[0].MaxTokens != 100 || ai.opts[0].Temperature != 0.8 {
		t.Fatalf("opts = %+v", ai.opts)
	}
}

func TestSelectorVariationErrorMeansNothingThisCycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	for _, title := range []string{"Best Credit Cards 2025", "How APR Works", "Personal Loan Basics"} {
		article := &ledger.Article{Slug: strings.ToLower(strings.ReplaceAll(title, " ", "-")), Title: title, CategorySlug: "credit-cards"}
		if err := store.AddArticle(ctx, article); err != nil {
			t.Fatalf("seed article: %v", err)
		}
	}

	ai := &fakeGenerator{err: context.DeadlineExceeded}
	selector := NewSelector(store, testCatalog(), ai, "gpt-4o-mini", nil)
	category, topic, err := selector.NextTopic(ctx)
	if err != nil {
		t.Fatalf("NextTopic: %v", err)
	}
	if category != nil || topic != "" {
		t.Fatalf("got %v / %q, want nothing this cycle", category, topic)
	}
}

func TestAssemblerGenerate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	cfg := config.Default()
	cfg.Site.BaseURL = "https://example.com"

	response := "<h2>Why It Matters</h2><p>Choosing wisely saves money money money.</p>" +
		"<h2>How To Compare</h2><p>Compare rates rates rates carefully.</p><p>Extra detail.</p>"
	ai := &fakeGenerator{response: response}
	assembler := NewAssembler(store, ai, &cfg, nil)
	assembler.rng = rand.New(rand.NewSource(1))

	category := &catalog.Category{ID: 1, Name: "Credit Cards", Slug: "credit-cards", CompareURL: "https://example.com/compare", BestURL: "https://example.com/best"}
	article, err := assembler.Generate(ctx, category, "Best Credit Cards 2025")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if article.Slug != "best-credit-cards-2025" {
		t.Errorf("slug = %q", article.Slug)
	}
	if article.URL != "https://example.com/credit-cards/best-credit-cards-2025" {
		t.Errorf("url = %q", article.URL)
	}
	if !strings.HasPrefix(article.Content, "<article>") {
		t.Errorf("content not wrapped:\n%s", article.Content)
	}
	if got := strings.Count(article.Content, "[IMAGE:"); got != 1 {
		t.Errorf("placeholder count = %d, want 1 (two h2 sections)\n%s", got, article.Content)
	}
	if len(article.ImagePlaceholders) != 1 || article.ImagePlaceholders[0] != "financial-guide-2.jpg" {
		t.Errorf("placeholders = %v", article.ImagePlaceholders)
	}
	if article.ReadTime != 1 {
		t.Errorf("read time = %d, want 1", article.ReadTime)
	}
	if article.WordCount == 0 {
		t.Error("word count = 0")
	}
	if len(article.MetaDescription) > metaDescriptionMax {
		t.Errorf("meta description too long: %d", len(article.MetaDescription))
	}
	if article.Tags[0] != "Credit Cards" {
		t.Errorf("tags = %v", article.Tags)
	}
	if len(ai.prompts) != 1 {
		t.Fatalf("prompts = %d, want 1", len(ai.prompts))
	}
	prompt := ai.prompts[0]
	if !strings.Contains(prompt, "Best Credit Cards 2025") || !strings.Contains(prompt, "Credit Cards") {
		t.Errorf("prompt not filled:\n%s", prompt)
	}
	// The ledger is empty so the related link falls back to the category page.
	if !strings.Contains(prompt, "https://example.com/credit-cards") {
		t.Errorf("related fallback missing:\n%s", prompt)
	}
}

func TestAssemblerSuffixesCollidingSlug(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	cfg := config.Default()
	cfg.Site.BaseURL = "https://example.com"

	now := time.Now().UTC()
	existing := &ledger.Article{
		Slug:          "best-credit-cards-2025",
		Title:         "Best Credit Cards 2025",
		CategoryID:    1,
		CategorySlug:  "credit-cards",
		CategoryName:  "Credit Cards",
		Content:       "<article><p>Existing.</p></article>",
		URL:           "https://example.com/credit-cards/best-credit-cards-2025",
		DatePublished: now,
		DateModified:  now,
	}
	if err := store.AddArticle(ctx, existing); err != nil {
		t.Fatalf("AddArticle: %v", err)
	}

	ai := &fakeGenerator{response: "<h2>Overview</h2><p>Fresh take on card picks.</p>"}
	assembler := NewAssembler(store, ai, &cfg, nil)
	assembler.rng = rand.New(rand.NewSource(1))

	category := &catalog.Category{ID: 1, Name: "Credit Cards", Slug: "credit-cards", CompareURL: "https://example.com/compare", BestURL: "https://example.com/best"}
	// A distinct title that slugifies to the occupied slug.
	article, err := assembler.Generate(ctx, category, "Best Credit Cards 2025!")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if article.Slug != "best-credit-cards-2025-2" {
		t.Fatalf("slug = %q, want best-credit-cards-2025-2", article.Slug)
	}
	if !strings.HasSuffix(article.URL, "/credit-cards/best-credit-cards-2025-2") {
		t.Errorf("url = %q", article.URL)
	}
	if err := store.AddArticle(ctx, article); err != nil {
		t.Fatalf("AddArticle after collision: %v", err)
	}

	third, err := assembler.Generate(ctx, category, "Best Credit Cards 2025?")
	if err != nil {
		t.Fatalf("Generate third: %v", err)
	}
	if third.Slug != "best-credit-cards-2025-3" {
		t.Fatalf("third slug = %q, want best-credit-cards-2025-3", third.Slug)
	}
}

func TestStructuredData(t *testing.T) {
	article := &ledger.Article{
		Title:           "Best Credit Cards 2025",
		MetaDescription: "Pick the right card.",
		URL:             "https://example.com/credit-cards/best-credit-cards-2025",
	}
	data := StructuredData(article, "Example Finance", "https://example.com/logo.png")

	if data["@type"] != "Article" || data["headline"] != article.Title {
		t.Fatalf("data = %v", data)
	}
	publisher := data["publisher"].(map[string]any)
	logo := publisher["logo"].(map[string]any)
	if logo["url"] != "https://example.com/logo.png" {
		t.Fatalf("logo = %v", logo)
	}
}
