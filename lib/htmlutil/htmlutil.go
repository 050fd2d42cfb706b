package htmlutil

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText normalizes scraped text: strips non-printable runes, trims and
// collapses inner whitespace runs to a single space.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

// ParseInt parses scraped numeric text such as "1,234" or "+56".
func ParseInt(s string) (int, error) {
	s = strings.ReplaceAll(CleanText(s), ",", "")
	s = strings.TrimPrefix(s, "+")
	return strconv.Atoi(s)
}

// ParseFloat parses scraped numeric text such as "1,234.5" or "-12.3%".
func ParseFloat(s string) (float64, error) {
	s = strings.ReplaceAll(CleanText(s), ",", "")
	s = strings.TrimPrefix(s, "+")
	s = strings.TrimSuffix(s, "%")
	return strconv.ParseFloat(s, 64)
}
