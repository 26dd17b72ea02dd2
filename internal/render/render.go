package render

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"net/url"
	"strings"
	"time"

	"systemet/internal/model"
)

const (
	DefaultTitle          = "Systemet"
	DefaultProductBaseURL = "https://systembolaget.se"
	DefaultPageLength     = 25

	TableID = "productsTable"

	jqueryURL     = "https://code.jquery.com/jquery-3.6.0.min.js"
	dataTablesJS  = "https://cdn.datatables.net/1.13.4/js/jquery.dataTables.min.js"
	dataTablesCSS = "https://cdn.datatables.net/1.13.4/css/jquery.dataTables.min.css"
)

// Columns are the table headers, in the order cells are written.
var Columns = []string{
	"Article Number",
	"Name",
	"Name 2",
	"Brewery",
	"APK",
	"Price",
	"Volume",
	"Alcohol %",
	"Category 1",
	"Category 2",
	"Category 3",
	"Country",
	"Launch Date",
}

// SortColumn is the initial sort column: APK, descending.
var SortColumn = columnIndex("APK")

//go:embed templates/page.html.tmpl
var templates embed.FS

type Options struct {
	Title          string
	ProductBaseURL string
	PageLength     int
	// LanguageURL points the widget at a translation plugin, e.g. the Swedish one.
	LanguageURL string
	// GeneratedAt stamps statically generated pages. Zero for live pages.
	GeneratedAt time.Time
}

type Renderer struct {
	opts    Options
	baseURL string
	tmpl    *template.Template
}

// widgetOptions is handed to DataTable() as-is.
type widgetOptions struct {
	PageLength int               `json:"pageLength"`
	Order      [][2]any          `json:"order"`
	Language   map[string]string `json:"language,omitempty"`
}

type page struct {
	Title         string
	TableID       string
	Columns       []string
	Products      []model.Product
	GeneratedAt   string
	StylesheetURL string
	JQueryURL     string
	ScriptURL     string
	Widget        widgetOptions
}

func New(opts Options) (*Renderer, error) {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.ProductBaseURL == "" {
		opts.ProductBaseURL = DefaultProductBaseURL
	}
	if opts.PageLength <= 0 {
		opts.PageLength = DefaultPageLength
	}

	u, err := url.Parse(opts.ProductBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("product base url must be an absolute http(s) url: %q", opts.ProductBaseURL)
	}

	r := &Renderer{
		opts:    opts,
		baseURL: strings.TrimRight(opts.ProductBaseURL, "/"),
	}
	r.tmpl, err = template.New("page.html.tmpl").
		Funcs(template.FuncMap{"productLink": r.productLink}).
		ParseFS(templates, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return r, nil
}

// Render writes the complete page for products. A nil or empty slice gives
// a table with headers and no rows.
func (r *Renderer) Render(w io.Writer, products []model.Product) error {
	p := page{
		Title:         r.opts.Title,
		TableID:       TableID,
		Columns:       Columns,
		Products:      products,
		StylesheetURL: dataTablesCSS,
		JQueryURL:     jqueryURL,
		ScriptURL:     dataTablesJS,
		Widget: widgetOptions{
			PageLength: r.opts.PageLength,
			Order:      [][2]any{{SortColumn, "desc"}},
		},
	}
	if r.opts.LanguageURL != "" {
		p.Widget.Language = map[string]string{"url": r.opts.LanguageURL}
	}
	if !r.opts.GeneratedAt.IsZero() {
		p.GeneratedAt = r.opts.GeneratedAt.Format("2006-01-02 15:04:05")
	}
	return r.tmpl.Execute(w, p)
}

// ProductURL is the outbound link for p: the base URL joined with the raw
// article number.
func (r *Renderer) ProductURL(p model.Product) string {
	return r.baseURL + "/" + p.Number.String()
}

// productLink builds the anchor by hand. html/template would percent-encode
// the article number inside href; it must only be entity-escaped.
func (r *Renderer) productLink(p model.Product) template.HTML {
	return template.HTML(`<a href="` + html.EscapeString(r.ProductURL(p)) + `" target="_blank">` +
		html.EscapeString(p.Number.String()) + `</a>`)
}

func columnIndex(name string) int {
	for i, c := range Columns {
		if c == name {
			return i
		}
	}
	panic("render: unknown column " + name)
}
