package handlers_test_suite

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// parseHTML parses the provided HTML payload into a goquery document for assertions.
func parseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}
