package integration

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aacrawler/internal/config"
	"aacrawler/internal/crawler"
	"aacrawler/internal/formatter"
	"aacrawler/internal/normalizer"
)

// fixtureAPI serves the search envelope and NewsML documents from ../fixtures.
// Documents without a fixture file answer 404. A wrong account gets an
// envelope with code 401, as the live API reports it.
func fixtureAPI(t *testing.T) *httptest.Server {
	t.Helper()

	fixtures := filepath.Join("..", "fixtures")

	search, err := os.ReadFile(filepath.Join(fixtures, "search.json"))
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "reporter" || pass != "secret" {
			_, _ = w.Write([]byte(`{"response":{"success":false,"code":401,"message":"Unauthorized"}}`))

			return
		}

		if r.URL.Path == "/abone/search" {
			_, _ = w.Write(search)

			return
		}

		id := strings.Split(strings.TrimPrefix(r.URL.Path, "/abone/document/"), "/")[0]
		name := strings.ReplaceAll(id, ":", "_") + ".xml"

		body, err := os.ReadFile(filepath.Join(fixtures, name))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)

			return
		}

		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newClient(t *testing.T, srv *httptest.Server, creds config.Credentials) *crawler.Client {
	t.Helper()

	client, err := crawler.NewClient(srv.URL,
		crawler.WithHTTPClient(srv.Client()),
		crawler.WithCredentials(creds),
		crawler.WithPacer(crawler.Unpaced()),
	)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	return client
}

func TestPipeline_CrawlNormalizeFormat(t *testing.T) {
	srv := fixtureAPI(t)
	client := newClient(t, srv, config.Credentials{UserName: "reporter", Password: "secret"})

	// 1. Crawl
	articles, report, err := client.CrawlWithStats(context.Background(), map[string]string{config.FilterLimit: "3"})
	if err != nil {
		t.Fatalf("CrawlWithStats failed: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(articles))
	}

	if report.Stats.Skipped != 1 {
		t.Errorf("Expected 1 skipped document, got %d", report.Stats.Skipped)
	}

	first := articles[0]
	if first.Title != "Merkez Bankası faiz kararını açıkladı" {
		t.Errorf("Unexpected first title %q", first.Title)
	}

	if first.CreatedAt != "16.03.2024 01:30:15" {
		t.Errorf("Expected created_at 16.03.2024 01:30:15, got %s", first.CreatedAt)
	}

	wantImage := srv.URL + "/document/aa:picture:20240315:33445566/web"
	if len(first.Images) != 1 || first.Images[0] != wantImage {
		t.Errorf("Expected image %s, got %v", wantImage, first.Images)
	}

	if first.Summary != "" {
		t.Errorf("Expected empty abstract, got %q", first.Summary)
	}

	if articles[1].Content != "Festival programı açıklandı." {
		t.Errorf("Unexpected plain content %q", articles[1].Content)
	}

	// 2. Normalize
	normalized, err := normalizer.NewProcessor(60).Process(articles)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if !strings.HasPrefix(normalized[0].Summary, "Merkez Bankası politika faizini") {
		t.Errorf("Summary not derived from content: %q", normalized[0].Summary)
	}

	if normalized[0].City != "İstanbul" || normalized[0].Category != "Ekonomi" {
		t.Errorf("Names not title-cased: %q %q", normalized[0].City, normalized[0].Category)
	}

	if normalized[1].Summary != "Festival üç gün sürecek." {
		t.Errorf("Existing summary replaced: %q", normalized[1].Summary)
	}

	// 3. Format
	table := formatter.NewTableFormatter(0).ArticlesTable(normalized)
	if !strings.Contains(table, "| İzmir ") {
		t.Errorf("Table missing city:\n%s", table)
	}
}

func TestPipeline_WrongCredentials(t *testing.T) {
	srv := fixtureAPI(t)
	client := newClient(t, srv, config.Credentials{UserName: "reporter", Password: "wrong"})

	_, err := client.Crawl(context.Background(), nil)
	if err == nil {
		t.Fatal("Expected authentication error")
	}

	if !errors.Is(err, crawler.ErrAuthentication) {
		t.Errorf("Expected ErrAuthentication, got %v", err)
	}
}
