// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package links extracts academic links from free text. It recognizes
// scholarly URLs by a domain allow-list, normalizes bare DOIs to resolver
// URLs, and ranks direct PDF links ahead of everything else.
package links

import (
	"regexp"
	"sort"
	"strings"
)

// doiBase is the canonical DOI resolver prefix.
const doiBase = "https://doi.org/"

// urlPattern matches bare URLs in free text. Trailing punctuation is
// stripped separately because prose often closes a sentence or
// parenthetical right after a link.
var urlPattern = regexp.MustCompile(`https?://[^\s,;)]+`)

// doiPattern matches DOI-shaped substrings: "10.1145/1234567.1234568".
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[-._;()/:A-Za-z0-9]+`)

// academicKeywords is the allow-list used to classify a URL as scholarly.
// Matching is a lowercase substring test, as publishers spread content
// across many subdomain and path variants.
var academicKeywords = []string{
	"arxiv",
	"ieee",
	"springer",
	"elsevier",
	"sciencedirect",
	"nature.com",
	"pubmed",
	"ncbi.nlm.nih.gov",
	"acm.org",
	"researchgate",
	"doi",
}

// IsAcademic reports whether a URL looks like it points to scholarly
// content: it matches an allow-listed keyword or ends in ".pdf".
func IsAcademic(rawURL string) bool {
	low := strings.ToLower(rawURL)
	if strings.HasSuffix(low, ".pdf") {
		return true
	}
	for _, kw := range academicKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}

// Extract returns the academic links found in text: allow-listed URLs plus
// canonicalized DOIs, deduplicated and ranked. It never fails; text with
// no matches yields a nil slice.
func Extract(text string) []string {
	if text == "" {
		return nil
	}

	var found []string
	for _, u := range urlPattern.FindAllString(text, -1) {
		u = strings.TrimRight(u, ").,;")
		if u != "" && IsAcademic(u) {
			found = append(found, u)
		}
	}

	for _, d := range doiPattern.FindAllString(text, -1) {
		found = append(found, doiBase+strings.TrimRight(d, ").,;"))
	}

	return Rank(Dedupe(found))
}

// Dedupe removes duplicate entries preserving first-seen order.
func Dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	var out []string
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// Rank sorts links in place so that PDF links come first, then
// arXiv-hosted links, with discovery order as the tie-break.
func Rank(urls []string) []string {
	sort.SliceStable(urls, func(i, j int) bool {
		return rank(urls[i]) < rank(urls[j])
	})
	return urls
}

func rank(u string) int {
	low := strings.ToLower(u)
	switch {
	case strings.Contains(low, ".pdf"):
		return 0
	case strings.Contains(low, "arxiv"):
		return 1
	default:
		return 2
	}
}

// FilterAcademic returns the subset of urls that pass IsAcademic,
// preserving order.
func FilterAcademic(urls []string) []string {
	var out []string
	for _, u := range urls {
		if IsAcademic(u) {
			out = append(out, u)
		}
	}
	return out
}
