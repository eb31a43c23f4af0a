package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"medium-digest/internal/resilience/circuitbreaker"
	"medium-digest/internal/usecase/fetch"
	"medium-digest/internal/utils/text"

	"github.com/PuerkitoBio/goquery"
)

// minArticleLength is the minimum number of characters the extracted text
// must have to count as a real article. Paywalled or member-only pages
// typically render only a teaser shorter than this.
const minArticleLength = 50

// MediumFetcher implements fetch.ArticleFetcher by walking the structure
// Medium renders its articles with. It looks for the article element (falling
// back to the legacy postArticle container), then collects headings,
// paragraphs, and list items in document order.
//
// Thread safety: MediumFetcher is safe for concurrent use.
type MediumFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         ContentFetchConfig
}

// NewMediumFetcher creates a MediumFetcher with the given configuration.
func NewMediumFetcher(config ContentFetchConfig) *MediumFetcher {
	return &MediumFetcher{
		client:         newHTTPClient(config),
		circuitBreaker: circuitbreaker.New(circuitbreaker.ArticleFetchConfig()),
		config:         config,
	}
}

// FetchContent fetches the page and extracts the article text.
//
// The fetch process:
//  1. Validates the URL for security (SSRF prevention)
//  2. Executes the HTTP request through the circuit breaker
//  3. Parses the HTML and walks the article structure
//  4. Returns the extracted text joined with blank lines
func (f *MediumFetcher) FetchContent(ctx context.Context, urlStr string) (string, error) {
	if err := validateURL(urlStr, f.config.DenyPrivateIPs); err != nil {
		return "", err
	}

	result, err := f.circuitBreaker.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, urlStr)
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

func (f *MediumFetcher) doFetch(ctx context.Context, urlStr string) (interface{}, error) {
	htmlBytes, _, err := fetchHTML(ctx, f.client, f.config, urlStr)
	if err != nil {
		return "", err
	}

	text, err := ExtractArticleText(htmlBytes)
	if err != nil {
		return "", err
	}
	return text, nil
}

// ExtractArticleText parses HTML and extracts the readable article text.
//
// Extraction rules:
//   - The article body is the first <article> element, or failing that the
//     first element with the postArticle class (Medium's older layout).
//   - Headings, paragraphs, and list items are collected in document order.
//   - Headings are prefixed with their level, e.g. "[H2] Section title",
//     so the structure survives into the plain text.
//   - Blocks are joined with blank lines.
//
// Returns fetch.ErrNoArticleFound when no article container exists, and
// fetch.ErrContentTooShort when the collected text is too short to be a
// real article.
func ExtractArticleText(htmlBytes []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBytes))
	if err != nil {
		return "", fmt.Errorf("%w: HTML parse failed: %v", fetch.ErrNoArticleFound, err)
	}

	container := doc.Find("article").First()
	if container.Length() == 0 {
		container = doc.Find("div.postArticle").First()
	}
	if container.Length() == 0 {
		return "", fetch.ErrNoArticleFound
	}

	var blocks []string
	container.Find("h1, h2, h3, h4, h5, h6, p, li").Each(func(_ int, s *goquery.Selection) {
		block := strings.TrimSpace(s.Text())
		if block == "" {
			return
		}
		tag := goquery.NodeName(s)
		switch tag {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			blocks = append(blocks, "["+strings.ToUpper(tag)+"] "+block)
		default:
			blocks = append(blocks, block)
		}
	})

	result := strings.Join(blocks, "\n\n")
	if n := text.CountRunes(result); n <= minArticleLength {
		return "", fmt.Errorf("%w: got %d characters", fetch.ErrContentTooShort, n)
	}

	return result, nil
}
