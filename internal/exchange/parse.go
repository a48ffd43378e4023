package exchange

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"

	"github.com/familytrip/tripboard/internal/domain"
)

var numberRE = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParseRate extracts the rate from an HTML page: the first number inside the
// first element whose class attribute contains classToken. Thousands
// separators are stripped. Anything that does not yield a positive decimal
// returns an error wrapping domain.ErrRateUnparsable.
func ParseRate(r io.Reader, classToken string) (decimal.Decimal, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: parse html: %v", domain.ErrRateUnparsable, err)
	}
	node := findByClass(doc, classToken)
	if node == nil {
		return decimal.Decimal{}, fmt.Errorf("%w: no element with class %q", domain.ErrRateUnparsable, classToken)
	}
	text := textContent(node)
	match := numberRE.FindString(text)
	if match == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: no number in %q", domain.ErrRateUnparsable, strings.TrimSpace(text))
	}
	rate, err := decimal.NewFromString(strings.ReplaceAll(match, ",", ""))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", domain.ErrRateUnparsable, err)
	}
	if !rate.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: rate %s is not positive", domain.ErrRateUnparsable, rate)
	}
	return rate, nil
}

// findByClass returns the first element in document order carrying token in
// its class list.
func findByClass(n *html.Node, token string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key != "class" {
				continue
			}
			for _, c := range strings.Fields(a.Val) {
				if c == token {
					return n
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, token); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
