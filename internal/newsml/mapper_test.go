package newsml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://api.example.com"

const minimalItem = `<?xml version="1.0" encoding="UTF-8"?>
<newsMessage xmlns="http://iptc.org/std/nar/2006-10-01/">
  <itemSet>
    <newsItem guid="urn:newsml:aa.com.tr:20240101:1">
      <itemMeta>
        <versionCreated>2024-01-01T12:00:00Z</versionCreated>
      </itemMeta>
      <contentMeta>
        <headline>Hello</headline>
      </contentMeta>
    </newsItem>
  </itemSet>
</newsMessage>`

const fullItem = `<?xml version="1.0" encoding="UTF-8"?>
<newsMessage xmlns="http://iptc.org/std/nar/2006-10-01/">
  <itemSet>
    <newsItem guid="urn:newsml:aa.com.tr:20240315:42">
      <itemMeta>
        <versionCreated>2024-03-15T22:30:15+00:00</versionCreated>
        <link rel="irel:seeAlso" residref="pict:987654"/>
        <link rel="irel:seeAlso" residref="pict:111111"/>
      </itemMeta>
      <contentMeta>
        <located type="cptype:city">
          <name xml:lang="en">Istanbul</name>
          <name xml:lang="tr">İstanbul</name>
        </located>
        <subject type="cpnat:abstract">
          <name xml:lang="en">Economy</name>
          <name xml:lang="tr">Ekonomi</name>
        </subject>
        <headline>Markets &amp; rates</headline>
      </contentMeta>
      <contentSet>
        <inlineXML contenttype="application/nitf+xml">
          <nitf>
            <body>
              <body.head>
                <abstract>  Short abstract.  </abstract>
              </body.head>
              <body.content><p>First paragraph.</p><p>Second paragraph.</p></body.content>
            </body>
          </nitf>
        </inlineXML>
      </contentSet>
    </newsItem>
  </itemSet>
</newsMessage>`

func TestMapper_ToArticle_Minimal(t *testing.T) {
	doc, err := ParseString(minimalItem)
	require.NoError(t, err)

	article, err := NewMapper(testBaseURL).ToArticle(doc)
	require.NoError(t, err)

	assert.Equal(t, "Hello", article.Title)
	assert.Equal(t, "01.01.2024 15:00:00", article.CreatedAt)
	assert.Empty(t, article.Summary)
	assert.Empty(t, article.Content)
	assert.Empty(t, article.Category)
	assert.Empty(t, article.City)
	assert.NotNil(t, article.Images)
	assert.Empty(t, article.Images)
}

func TestMapper_ToArticle_Full(t *testing.T) {
	doc, err := ParseString(fullItem)
	require.NoError(t, err)

	m := NewMapper(testBaseURL)

	article, err := m.ToArticle(doc)
	require.NoError(t, err)

	assert.Equal(t, "Markets & rates", article.Title)
	assert.Equal(t, "Short abstract.", article.Summary)
	assert.Contains(t, article.Content, "<p>First paragraph.</p>")
	assert.Contains(t, article.Content, "<p>Second paragraph.</p>")
	assert.Equal(t, "16.03.2024 01:30:15", article.CreatedAt)
	assert.Equal(t, "Ekonomi", article.Category)
	assert.Equal(t, "İstanbul", article.City)
	assert.Equal(t, []string{testBaseURL + "/document/pict:987654/web"}, article.Images)
}

func TestMapper_ToArticle_NoTurkishName(t *testing.T) {
	const item = `<newsItem xmlns="http://iptc.org/std/nar/2006-10-01/">
  <contentMeta>
    <located type="cptype:city"><name xml:lang="en">Ankara</name></located>
    <located type="cptype:country"><name xml:lang="tr">Türkiye</name></located>
    <subject><name xml:lang="de">Sport</name></subject>
    <headline>Only foreign names</headline>
  </contentMeta>
</newsItem>`

	doc, err := ParseString(item)
	require.NoError(t, err)

	article, err := NewMapper(testBaseURL).ToArticle(doc)
	require.NoError(t, err)

	assert.Equal(t, "Only foreign names", article.Title)
	assert.Empty(t, article.City)
	assert.Empty(t, article.Category)
	assert.Empty(t, article.CreatedAt)
}

func TestMapper_ToArticle_LinkWithoutResidref(t *testing.T) {
	const item = `<newsItem xmlns="http://iptc.org/std/nar/2006-10-01/">
  <itemMeta><link rel="irel:seeAlso" href="http://example.com"/></itemMeta>
</newsItem>`

	doc, err := ParseString(item)
	require.NoError(t, err)

	article, err := NewMapper(testBaseURL).ToArticle(doc)
	require.NoError(t, err)
	assert.Empty(t, article.Images)
}

func TestMapper_ToArticle_WrongNamespace(t *testing.T) {
	const item = `<newsItem xmlns="urn:other"><contentMeta><headline>x</headline></contentMeta></newsItem>`

	doc, err := ParseString(item)
	require.NoError(t, err)

	article, err := NewMapper(testBaseURL).ToArticle(doc)
	require.NoError(t, err)
	assert.Empty(t, article.Title)
}

func TestMapper_ToArticle_InvalidTimestamp(t *testing.T) {
	const item = `<newsItem xmlns="http://iptc.org/std/nar/2006-10-01/">
  <itemMeta><versionCreated>yesterday</versionCreated></itemMeta>
</newsItem>`

	doc, err := ParseString(item)
	require.NoError(t, err)

	_, err = NewMapper(testBaseURL).ToArticle(doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedDocument))
}

func TestFormatCreatedAt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"2024-01-01T12:00:00Z", "01.01.2024 15:00:00"},
		{"2024-01-01T12:00:00+03:00", "01.01.2024 15:00:00"},
		{"2024-03-15T10:00:00+03:00", "15.03.2024 13:00:00"},
		{"2024-03-15T23:30:00-05:00", "16.03.2024 02:30:00"},
		{"2024-12-31T22:15:00.250Z", "01.01.2025 01:15:00"},
		{"2024-06-01T08:00:00", "01.06.2024 11:00:00"},
		{"2024-06-01 08:00:00", "01.06.2024 11:00:00"},
	}

	for _, tt := range tests {
		got, err := FormatCreatedAt(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestMapper_DocumentLink(t *testing.T) {
	m := NewMapper("https://api.example.com/")
	assert.Equal(t, "https://api.example.com/document/abc/web", m.DocumentLink("abc", "web"))
}

func TestParse_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"not xml at all",
		"<newsItem><unclosed></newsItem>",
	}

	for _, in := range inputs {
		_, err := ParseString(in)
		assert.ErrorIs(t, err, ErrMalformedDocument, "input %q", in)
	}
}

func TestQuery_Modes(t *testing.T) {
	doc, err := ParseString(fullItem)
	require.NoError(t, err)

	all := MustCompile(QuerySpec{Name: "names", Expr: `//n:subject/n:name`, Mode: All})
	nodes := all.Eval(doc)
	require.Len(t, nodes, 2)
	assert.Equal(t, "Ekonomi", nodes[1].InnerText())

	first := MustCompile(QuerySpec{Name: "name", Expr: `//n:subject/n:name`})
	assert.Equal(t, "Economy", first.Text(doc))

	_, err = Compile(QuerySpec{Name: "broken", Expr: `//n:subject[`})
	assert.Error(t, err)
}
