// Package catalog reads the category and topic backlog files that drive
// content generation. Both files are read-only JSON maintained by hand; the
// pipeline never writes to them.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

// Category describes one content vertical on the site.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	CompareURL  string `json:"compare_url,omitempty"`
	BestURL     string `json:"best_url,omitempty"`
	Description string `json:"description,omitempty"`
}

// TopicGroup is the ordered topic backlog for one category.
type TopicGroup struct {
	CategoryID int64    `json:"category_id"`
	Topics     []string `json:"topics"`
}

// Catalog is the loaded category/topic backlog.
type Catalog struct {
	Categories []Category
	Groups     []TopicGroup

	byID map[int64]*Category
}

type categoriesFile struct {
	Categories []Category `json:"categories"`
}

type topicsFile struct {
	Topics []TopicGroup `json:"topics"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Load reads and validates the backlog files. Structural problems (missing
// files, bad JSON, missing required fields, duplicate ids) are errors;
// cosmetic problems (empty backlogs, odd slugs, groups without topics) are
// returned as warnings so callers can surface them without refusing to run.
func Load(categoriesPath, topicsPath string) (*Catalog, []string, error) {
	var warnings []string

	raw, err := os.ReadFile(categoriesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read categories: %w", err)
	}
	var cats categoriesFile
	if err := json.Unmarshal(raw, &cats); err != nil {
		return nil, nil, fmt.Errorf("parse categories: %w", err)
	}
	if len(cats.Categories) == 0 {
		warnings = append(warnings, "no categories defined")
	}

	byID := make(map[int64]*Category, len(cats.Categories))
	for i := range cats.Categories {
		category := &cats.Categories[i]
		if category.ID == 0 {
			return nil, nil, fmt.Errorf("category %d missing id", i+1)
		}
		if category.Name == "" {
			return nil, nil, fmt.Errorf("category %d missing name", i+1)
		}
		if category.Slug == "" {
			return nil, nil, fmt.Errorf("category %d missing slug", i+1)
		}
		if !slugPattern.MatchString(category.Slug) {
			warnings = append(warnings, fmt.Sprintf("category %q has non-standard slug %q", category.Name, category.Slug))
		}
		if _, dup := byID[category.ID]; dup {
			return nil, nil, fmt.Errorf("duplicate category id %d", category.ID)
		}
		byID[category.ID] = category
	}

	raw, err = os.ReadFile(topicsPath)
	if err != nil {
		if os.IsNotExist(err) {
			warnings = append(warnings, "topics file not found, generation limited to topic variations")
			return &Catalog{Categories: cats.Categories, byID: byID}, warnings, nil
		}
		return nil, nil, fmt.Errorf("read topics: %w", err)
	}
	var topics topicsFile
	if err := json.Unmarshal(raw, &topics); err != nil {
		return nil, nil, fmt.Errorf("parse topics: %w", err)
	}

	for i, group := range topics.Topics {
		if group.CategoryID == 0 {
			return nil, nil, fmt.Errorf("topic group %d missing category_id", i+1)
		}
		if len(group.Topics) == 0 {
			warnings = append(warnings, fmt.Sprintf("topic group %d has no topics", i+1))
		}
		if _, known := byID[group.CategoryID]; !known {
			warnings = append(warnings, fmt.Sprintf("topic group %d references unknown category %d", i+1, group.CategoryID))
		}
	}

	return &Catalog{
		Categories: cats.Categories,
		Groups:     topics.Topics,
		byID:       byID,
	}, warnings, nil
}

// CategoryByID returns the category for an id, or nil when unknown.
func (c *Catalog) CategoryByID(id int64) *Category {
	if c == nil {
		return nil
	}
	return c.byID[id]
}

// CategoryBySlug returns the category for a slug, or nil when unknown.
func (c *Catalog) CategoryBySlug(slug string) *Category {
	if c == nil {
		return nil
	}
	for i := range c.Categories {
		if c.Categories[i].Slug == slug {
			return &c.Categories[i]
		}
	}
	return nil
}
