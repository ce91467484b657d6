// Package markup extracts listing catalogs from product page HTML.
//
// Items are elements carrying the "product-item" class with their facet
// attributes in data-* attributes. On offers pages, items are grouped in
// <section data-category="..."> elements whose first h2 or h3 is the title.
package markup

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/utafrali/storefront-listing/internal/domain"
	apperrors "github.com/utafrali/storefront-listing/pkg/errors"
	"github.com/utafrali/storefront-listing/pkg/slug"
)

const itemClass = "product-item"

// Source describes where a listing's markup lives and how to interpret it.
type Source struct {
	Key      string
	Kind     domain.Kind
	Language string
}

// ParseFile parses the markup file at path.
func ParseFile(path string, src Source) (*domain.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open markup %s: %w", path, err)
	}
	defer f.Close()

	c, err := Parse(f, src)
	if err != nil {
		return nil, fmt.Errorf("parse markup %s: %w", path, err)
	}
	return c, nil
}

// Parse reads an HTML document and returns its catalog in document order.
func Parse(r io.Reader, src Source) (*domain.Catalog, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	p := &parser{
		catalog: &domain.Catalog{
			Key:      src.Key,
			Kind:     src.Kind,
			Language: src.Language,
		},
		sectionIdx: -1,
		ids:        make(map[string]struct{}),
	}
	if err := p.walk(doc); err != nil {
		return nil, err
	}
	return p.catalog, nil
}

type parser struct {
	catalog    *domain.Catalog
	sectionIdx int
	ids        map[string]struct{}
}

func (p *parser) walk(n *html.Node) error {
	if n.Type == html.ElementNode {
		if n.DataAtom == atom.Section {
			if category, ok := attr(n, "data-category"); ok {
				return p.section(n, category)
			}
		}
		if hasClass(n, itemClass) {
			return p.item(n)
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := p.walk(child); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) section(n *html.Node, category string) error {
	outer := p.sectionIdx

	p.catalog.Sections = append(p.catalog.Sections, domain.Section{
		Category: category,
		Title:    heading(n),
	})
	p.sectionIdx = len(p.catalog.Sections) - 1

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := p.walk(child); err != nil {
			return err
		}
	}

	p.sectionIdx = outer
	return nil
}

func (p *parser) item(n *html.Node) error {
	name, _ := attr(n, "data-name")
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.InvalidInput(fmt.Sprintf("product item #%d has no data-name", len(p.catalog.Items)+1))
	}

	it := domain.Item{
		Name:     name,
		Position: len(p.catalog.Items),
	}
	it.ID, _ = attr(n, "data-id")
	if it.ID == "" {
		it.ID = slug.Generate(name)
		// Items with the same name share a slug; the position keeps them apart.
		if _, taken := p.ids[it.ID]; taken {
			it.ID = fmt.Sprintf("%s-%d", it.ID, it.Position)
		}
	}
	p.ids[it.ID] = struct{}{}
	it.Month, _ = attr(n, "data-month")
	it.Category, _ = attr(n, "data-category")
	it.Style, _ = attr(n, "data-style")

	if raw, ok := attr(n, "data-price"); ok && strings.TrimSpace(raw) != "" {
		price, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return apperrors.InvalidInput(fmt.Sprintf("product %q: invalid data-price %q", name, raw))
		}
		it.Price = price
	}

	if p.sectionIdx >= 0 {
		s := &p.catalog.Sections[p.sectionIdx]
		it.Section = s.Category
		s.ItemIDs = append(s.ItemIDs, it.ID)
	}

	p.catalog.Items = append(p.catalog.Items, it)
	return nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// heading returns the text of the first h2 or h3 below n.
func heading(n *html.Node) string {
	var found *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		for c := n.FirstChild; c != nil && found == nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.H2 || c.DataAtom == atom.H3) {
				found = c
				return
			}
			find(c)
		}
	}
	find(n)
	if found == nil {
		return ""
	}
	return strings.Join(strings.Fields(text(found)), " ")
}

func text(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(text(c))
	}
	return b.String()
}
