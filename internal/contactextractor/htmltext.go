// File: backend/internal/contactextractor/htmltext.go
package contactextractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// CleanHTMLToText parses HTML content and extracts clean, searchable text.
// Unlike a generic article extractor it keeps footer and nav content:
// contact information lives there more often than anywhere else.
func CleanHTMLToText(htmlBody string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlBody))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			trimmedData := strings.TrimSpace(n.Data)
			if trimmedData != "" {
				sb.WriteString(trimmedData)
				sb.WriteString(" ")
			}
		} else if n.Type == html.ElementNode &&
			(n.Data == "script" || n.Data == "style" || n.Data == "noscript" || n.Data == "head" || n.Data == "title") {
			return
		} else if n.Type == html.ElementNode && n.Data == "br" {
			sb.WriteString(" ")
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}

		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "li", "article", "section", "header", "footer", "address", "td", "tr":
				sb.WriteString(" ")
			}
		}
	}

	extract(doc)

	return strings.Join(strings.Fields(sb.String()), " "), nil
}

// contextualSelectors lists the DOM regions whose tag/class/microdata
// suggests contact or footer content. Scanned in addition to the page text.
var contextualSelectors = []string{
	"address",
	"footer",
	"[itemtype*='PostalAddress']",
	"[itemprop='address']",
	"[itemprop='telephone']",
	"[itemprop='email']",
	".vcard",
	"[class*='contact']",
	"[id*='contact']",
	"[class*='footer']",
	"[class*='address']",
	"[class*='direccion']",
	"[class*='location']",
}

// maxContextualRegions caps the number of region texts returned so a
// class-soup page cannot blow up the scan.
const maxContextualRegions = 40

// ContextualRegions returns the text of each contact-suggestive DOM region.
// Returns nil when the HTML cannot be parsed; the plain-text scan still runs.
func ContextualRegions(htmlBody string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var regions []string
	for _, selector := range contextualSelectors {
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := strings.Join(strings.Fields(sel.Text()), " ")
			if len(text) < 8 || len(text) > 4000 || seen[text] {
				return true
			}
			seen[text] = true
			regions = append(regions, text)
			return len(regions) < maxContextualRegions
		})
		if len(regions) >= maxContextualRegions {
			break
		}
	}
	return regions
}

// AnchorTargets collects mailto:, tel: and external link targets from the
// page. Social profiles and contact details are frequently only present as
// hrefs, never as visible text.
type AnchorTargets struct {
	Mailtos []string
	Tels    []string
	Hrefs   []string
}

func CollectAnchorTargets(htmlBody string) AnchorTargets {
	var targets AnchorTargets
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return targets
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		switch {
		case strings.HasPrefix(strings.ToLower(href), "mailto:"):
			addr := strings.SplitN(href[len("mailto:"):], "?", 2)[0]
			if addr != "" {
				targets.Mailtos = append(targets.Mailtos, addr)
			}
		case strings.HasPrefix(strings.ToLower(href), "tel:"):
			num := href[len("tel:"):]
			if num != "" {
				targets.Tels = append(targets.Tels, num)
			}
		default:
			targets.Hrefs = append(targets.Hrefs, href)
		}
	})
	return targets
}
