// Package platforms holds the backlink platform clients. The platform set
// is closed (Medium, Dev.to, Blogger); each client posts drafts only, and
// publication is a manual step on the platform itself.
package platforms

import (
	"context"
	"strings"

	"moneypress/internal/config"
)

// Platform name constants as stored in the ledger and configured in rotation.
const (
	NameMedium  = "medium"
	NameDevTo   = "dev_to"
	NameBlogger = "blogger"
)

// Draft is the platform-agnostic post content. Body is markdown for Medium
// and Dev.to, HTML for Blogger; the backlink formatter produces the right
// flavor before handing the draft over.
type Draft struct {
	Title string
	Body  string
	Tags  []string
}

// PostRef identifies a created post. URL may be empty when the platform
// only returns an id.
type PostRef struct {
	ID  string
	URL string
}

// Ref returns the post id, falling back to the URL. Ledger records store
// whichever the platform provided.
func (r *PostRef) Ref() string {
	if r == nil {
		return ""
	}
	if r.ID != "" {
		return r.ID
	}
	return r.URL
}

// Client creates draft posts on one external platform.
type Client interface {
	Name() string
	CreateDraft(ctx context.Context, draft Draft) (*PostRef, error)
}

// Configured returns the clients whose credentials are present and not
// placeholders, in the configured rotation order. An empty result means
// backlink posting is disabled.
func Configured(cfg *config.Config) []Client {
	var clients []Client
	for _, name := range cfg.Platforms.Rotation {
		switch name {
		case NameMedium:
			if credentialSet(cfg.Platforms.Medium.APIKey) {
				clients = append(clients, NewMedium(cfg.Platforms.Medium.APIKey))
			}
		case NameDevTo:
			if credentialSet(cfg.Platforms.DevTo.APIKey) {
				clients = append(clients, NewDevTo(cfg.Platforms.DevTo.APIKey))
			}
		case NameBlogger:
			if credentialSet(cfg.Platforms.Blogger.APIKey) && credentialSet(cfg.Platforms.Blogger.BlogID) {
				clients = append(clients, NewBlogger(cfg.Platforms.Blogger.APIKey, cfg.Platforms.Blogger.BlogID))
			}
		}
	}
	return clients
}

func credentialSet(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && !strings.HasPrefix(value, config.PlaceholderCredential)
}

func truncateTags(tags []string, max int) []string {
	if len(tags) <= max {
		return tags
	}
	return tags[:max]
}
