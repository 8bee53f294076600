// Package site defines the Item record served by the sites collection endpoint
// and its wire decoding.
package site

import (
	"encoding/json"
	"fmt"
	"net/url"

	"sitedeck/internal/jsonutil"
)

// Item is a single entry in the sites collection.
type Item struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Href       string `json:"href"`
	EditHref   string `json:"editHref"`
	BucketName string `json:"bucketName,omitempty"`
}

// DisplayName returns the label used in prompts and notifications.
// Falls back to the ID when the item has no title.
func (i Item) DisplayName() string {
	if i.Title != "" {
		return i.Title
	}
	return i.ID
}

// DefaultEditHref returns the edit route for a site ID.
func DefaultEditHref(id string) string {
	return "/sites/" + id
}

// ResolveLink resolves a possibly relative route against the service base URL.
func ResolveLink(baseURL, ref string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse link %q: %w", ref, err)
	}
	return base.ResolveReference(r).String(), nil
}

// EditURL returns the absolute URL of the item's edit flow.
func (i Item) EditURL(baseURL string) (string, error) {
	ref := i.EditHref
	if ref == "" {
		ref = DefaultEditHref(i.ID)
	}
	return ResolveLink(baseURL, ref)
}

// wireItem accepts both the flat shape and the document shape
// ({"_id": ..., "content": {"title": ...}}) returned by older services.
type wireItem struct {
	ID         string `json:"id"`
	DocID      string `json:"_id"`
	Title      string `json:"title"`
	Href       string `json:"href"`
	EditHref   string `json:"editHref"`
	BucketName string `json:"bucketName"`
	Content    *struct {
		Title string `json:"title"`
	} `json:"content"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Item) UnmarshalJSON(data []byte) error {
	var w wireItem
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	id := w.ID
	if id == "" {
		id = w.DocID
	}
	title := w.Title
	if title == "" && w.Content != nil {
		title = w.Content.Title
	}
	editHref := w.EditHref
	if editHref == "" && id != "" {
		editHref = DefaultEditHref(id)
	}
	*i = Item{
		ID:         id,
		Title:      title,
		Href:       w.Href,
		EditHref:   editHref,
		BucketName: w.BucketName,
	}
	return nil
}

// Collection is the envelope of GET /api/sites.
type Collection struct {
	Sites []Item `json:"sites"`
}

// DecodeCollection decodes a collection response body.
// A missing or null "sites" field decodes to an empty, non-nil slice.
func DecodeCollection(data []byte) ([]Item, error) {
	var c Collection
	if err := jsonutil.UnmarshalWithContext(data, &c, "decode sites"); err != nil {
		return nil, err
	}
	if c.Sites == nil {
		return []Item{}, nil
	}
	for idx, it := range c.Sites {
		if it.ID == "" {
			return nil, fmt.Errorf("decode sites: item %d has no id", idx)
		}
	}
	return c.Sites, nil
}
