package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// MaxContentChars caps the excerpt returned by a deep scan.
const MaxContentChars = 3000

// ErrInvalidURL is returned for URLs that are not public http(s) pages.
var ErrInvalidURL = errors.New("invalid article url")

// Article is the main text of one page.
type Article struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	ScrapedAt   time.Time `json:"scrapedAt"`
}

// StatusError reports a non-2xx answer from the article host.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("article host error: %d", e.StatusCode)
}

// ArticleExtractor fetches pages and pulls out their main content.
type ArticleExtractor struct {
	client       *resty.Client
	allowPrivate bool
	now          func() time.Time
}

func NewArticleExtractor(timeout time.Duration) *ArticleExtractor {
	e := &ArticleExtractor{now: time.Now}
	dialer := &net.Dialer{Timeout: timeout, Control: e.checkDial}
	e.client = resty.New().
		SetTimeout(timeout).
		SetTransport(&http.Transport{
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: timeout,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
		}).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5), resty.RedirectPolicyFunc(e.checkRedirect)).
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; geointel/1.0)").
		SetHeader("Accept", "text/html,application/xhtml+xml")
	return e
}

// Extract downloads rawURL and returns its title, description and a
// bounded excerpt of the body text.
func (e *ArticleExtractor) Extract(ctx context.Context, rawURL string) (*Article, error) {
	if err := e.checkURL(rawURL); err != nil {
		return nil, err
	}

	resp, err := e.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("error loading page: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, &StatusError{StatusCode: resp.StatusCode()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}
	doc.Find("script, style, nav, footer, aside, form").Remove()

	return &Article{
		URL:         rawURL,
		Title:       extractTitle(doc),
		Description: extractDescription(doc),
		Content:     truncate(extractContent(doc), MaxContentChars),
		ScrapedAt:   e.now().UTC(),
	}, nil
}

func (e *ArticleExtractor) checkURL(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrInvalidURL, u.Scheme)
	}
	if e.allowPrivate {
		return nil
	}

	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return fmt.Errorf("%w: local host", ErrInvalidURL)
	}
	if ip := net.ParseIP(host); ip != nil && nonPublic(ip) {
		return fmt.Errorf("%w: non-public address", ErrInvalidURL)
	}
	return nil
}

func (e *ArticleExtractor) checkRedirect(req *http.Request, _ []*http.Request) error {
	return e.checkURL(req.URL.String())
}

// checkDial runs on the resolved address of every connection, so hostnames
// and redirect targets that point inward are refused too.
func (e *ArticleExtractor) checkDial(_, address string, _ syscall.RawConn) error {
	if e.allowPrivate {
		return nil
	}
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if ip := net.ParseIP(host); ip == nil || nonPublic(ip) {
		return fmt.Errorf("%w: non-public address %s", ErrInvalidURL, host)
	}
	return nil
}

func nonPublic(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsUnspecified() || ip.IsMulticast()
}

var contentSelectors = []string{
	"article p",
	".article-body p",
	".article p",
	".content p",
	".post-content p",
	".entry-content p",
	"main p",
	"#content p",
	"p",
}

// extractContent takes paragraphs from the first selector that yields at
// least three of them, or the best selector seen otherwise.
func extractContent(doc *goquery.Document) string {
	var best []string
	for _, selector := range contentSelectors {
		var paragraphs []string
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.Join(strings.Fields(s.Text()), " ")
			if len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) > len(best) {
			best = paragraphs
		}
		if len(best) >= 3 {
			break
		}
	}
	return strings.Join(best, "\n\n")
}

func extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		return CleanText(og)
	}
	for _, selector := range []string{"h1", "title", ".article-title", ".headline", ".entry-title"} {
		if title := CleanText(doc.Find(selector).First().Text()); title != "" {
			return title
		}
	}
	return ""
}

func extractDescription(doc *goquery.Document) string {
	for _, selector := range []string{`meta[name="description"]`, `meta[property="og:description"]`} {
		if d, ok := doc.Find(selector).Attr("content"); ok && strings.TrimSpace(d) != "" {
			return CleanText(d)
		}
	}
	return ""
}

// truncate keeps at most max runes, marking a cut with an ellipsis.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
