// Package render applies a listing decision to the HTML page: hidden
// classes on items and sections, row classes, the counter label and the
// pager control classes.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"slices"
	"strings"

	"github.com/gorilla/schema"

	"github.com/utafrali/storefront-listing/internal/domain"
	"github.com/utafrali/storefront-listing/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders listing pages. It is safe for concurrent use.
type Renderer struct {
	tmpl    *template.Template
	encoder *schema.Encoder
}

// New parses the embedded page templates.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, encoder: schema.NewEncoder()}, nil
}

type facet struct {
	ID     string
	Name   string
	Values []string
}

type control struct {
	domain.PageControl
	Href string
}

type pageData struct {
	Lang        string
	Title       string
	Action      string
	State       domain.FacetState
	Selected    url.Values
	Facets      []facet
	SortOptions []string
	Layout      domain.RowLayout
	RowClass    string
	Counter     template.HTML
	Items       []domain.ItemView
	Sections    []domain.SectionView
	Unsectioned []domain.ItemView
	Pager       *domain.PagerState
	Controls    []control
	GridHref    string
	ListHref    string
}

// Page renders the listing page for p. action is the path the page is
// served from; every link on the page points back to it.
func (r *Renderer) Page(action string, p *service.Page) ([]byte, error) {
	res := p.Result
	state := res.State

	selected := url.Values{}
	if err := r.encoder.Encode(state, selected); err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}

	data := pageData{
		Lang:        "es",
		Title:       title(res.Kind),
		Action:      action,
		State:       state,
		Selected:    selected,
		Facets:      facets(res),
		SortOptions: p.SortOptions,
		Layout:      p.Layout,
		RowClass:    strings.Join(p.Layout.RowClasses, " "),
		// Counter markup is built from integers only.
		Counter:  template.HTML(res.Counter),
		Items:    res.Items,
		Sections: res.Sections,
		Pager:    p.Pager,
	}
	if len(res.Sections) > 0 {
		data.Unsectioned = unsectioned(res)
	}

	var err error
	if data.GridHref, err = r.eventHref(action, state, p.Pager, domain.EventView, domain.ViewGrid); err != nil {
		return nil, err
	}
	if data.ListHref, err = r.eventHref(action, state, p.Pager, domain.EventView, domain.ViewList); err != nil {
		return nil, err
	}
	for _, c := range p.Controls {
		href := "#"
		if !c.Disabled && !c.Active {
			if href, err = r.eventHref(action, state, p.Pager, domain.EventPage, c.Label); err != nil {
				return nil, err
			}
		}
		data.Controls = append(data.Controls, control{PageControl: c, Href: href})
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "listing", data); err != nil {
		return nil, fmt.Errorf("render listing %s: %w", res.Listing, err)
	}
	return buf.Bytes(), nil
}

// eventHref builds a link that replays the current state plus one event.
func (r *Renderer) eventHref(action string, state domain.FacetState, ps *domain.PagerState, event, value string) (string, error) {
	q := url.Values{}
	if err := r.encoder.Encode(state, q); err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	if ps != nil {
		if err := r.encoder.Encode(*ps, q); err != nil {
			return "", fmt.Errorf("encode pager: %w", err)
		}
	}
	q.Set("event", event)
	q.Set("value", value)
	return action + "?" + q.Encode(), nil
}

// unsectioned returns the items, in display order, that no section holds.
func unsectioned(res *domain.Result) []domain.ItemView {
	held := make(map[string]struct{}, len(res.Items))
	for _, sv := range res.Sections {
		for _, iv := range sv.Items {
			held[iv.ID] = struct{}{}
		}
	}

	var out []domain.ItemView
	for _, iv := range res.Items {
		if _, ok := held[iv.ID]; !ok {
			out = append(out, iv)
		}
	}
	return out
}

func title(kind domain.Kind) string {
	if kind == domain.KindOffers {
		return "Ofertas"
	}
	return "Novedades"
}

// facets lists the select controls of a listing kind with the distinct
// values found in the catalog, in document order.
func facets(res *domain.Result) []facet {
	items := slices.Clone(res.Items)
	slices.SortStableFunc(items, func(a, b domain.ItemView) int { return a.Position - b.Position })

	distinct := func(get func(domain.Item) string) []string {
		seen := make(map[string]struct{})
		var out []string
		for _, iv := range items {
			v := get(iv.Item)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
		return out
	}

	if res.Kind == domain.KindOffers {
		return []facet{
			{ID: "filterCategory", Name: "category", Values: distinct(func(it domain.Item) string { return it.Category })},
			{ID: "filterStyle", Name: "style", Values: distinct(func(it domain.Item) string { return it.Style })},
		}
	}
	return []facet{
		{ID: "filterMonth", Name: "month", Values: distinct(func(it domain.Item) string { return it.Month })},
	}
}
