package newsml

import (
	"fmt"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"

	"aacrawler/internal/models"
)

// Output settings for created_at.
const (
	CreatedAtLayout = "02.01.2006 15:04:05"
	CreatedAtOffset = 3 * time.Hour
	// ImageFormat is the rendition requested for related images.
	ImageFormat = "web"
	// ContentLang is the xml:lang accepted for category and city names.
	ContentLang = "tr"
)

// Field names of the extraction table.
const (
	FieldTitle     = "title"
	FieldSummary   = "summary"
	FieldContent   = "content"
	FieldCreatedAt = "created_at"
	FieldCategory  = "category"
	FieldCity      = "city"
	FieldImages    = "images"
)

const nitfBody = `//n:newsItem/n:contentSet/n:inlineXML/*[local-name()='nitf']/*[local-name()='body']`

// FieldQueries is the extraction table used by Mapper.
var FieldQueries = []QuerySpec{
	{Name: FieldTitle, Expr: `//n:newsItem/n:contentMeta/n:headline`},
	{Name: FieldSummary, Expr: nitfBody + `/*[local-name()='body.head']/*[local-name()='abstract']`},
	{Name: FieldContent, Expr: nitfBody + `/*[local-name()='body.content']`},
	{Name: FieldCreatedAt, Expr: `//n:newsItem/n:itemMeta/n:versionCreated`},
	{Name: FieldCategory, Expr: `//n:subject/n:name`, Lang: ContentLang, Mode: All},
	{Name: FieldCity, Expr: `//n:contentMeta/n:located[@type="cptype:city"]/n:name`, Lang: ContentLang, Mode: All},
	{Name: FieldImages, Expr: `//n:newsItem/n:itemMeta/n:link[@rel="irel:seeAlso"]`},
}

// versionCreated layouts, tried in order. Values without a zone are UTC;
// values with an offset keep it.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Mapper converts NewsML documents to articles. It is stateless after
// construction and safe for concurrent use.
type Mapper struct {
	baseURL string
	queries map[string]*Query
}

// NewMapper compiles the extraction table. baseURL prefixes derived links.
func NewMapper(baseURL string) *Mapper {
	queries := make(map[string]*Query, len(FieldQueries))
	for _, spec := range FieldQueries {
		q := MustCompile(spec)
		queries[q.Name()] = q
	}

	return &Mapper{
		baseURL: strings.TrimRight(baseURL, "/"),
		queries: queries,
	}
}

// DocumentLink returns the public link of a document rendition. It is never fetched.
func (m *Mapper) DocumentLink(id, format string) string {
	return fmt.Sprintf("%s/document/%s/%s", m.baseURL, id, format)
}

// ToArticle maps doc to an Article. Missing optional elements yield empty
// fields; an unreadable versionCreated is reported as ErrMalformedDocument.
func (m *Mapper) ToArticle(doc *xmlquery.Node) (models.Article, error) {
	createdAt, err := FormatCreatedAt(m.queries[FieldCreatedAt].Text(doc))
	if err != nil {
		return models.Article{}, err
	}

	article := models.Article{
		Title:     m.queries[FieldTitle].Text(doc),
		Summary:   m.queries[FieldSummary].Text(doc),
		Content:   m.queries[FieldContent].Markup(doc),
		CreatedAt: createdAt,
		Category:  m.queries[FieldCategory].Text(doc),
		City:      m.queries[FieldCity].Text(doc),
		Images:    []string{},
	}

	if ref := m.queries[FieldImages].Attr(doc, "residref"); ref != "" {
		article.Images = append(article.Images, m.DocumentLink(ref, ImageFormat))
	}

	return article, nil
}

// FormatCreatedAt converts a versionCreated value to the article timestamp:
// the wall clock of the value, in its own offset, shifted by CreatedAtOffset
// and rendered with CreatedAtLayout. An empty value yields "".
func FormatCreatedAt(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.Add(CreatedAtOffset).Format(CreatedAtLayout), nil
		}
	}

	return "", fmt.Errorf("%w: invalid versionCreated %q", ErrMalformedDocument, value)
}
