// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting "links" and "meta" blocks are delivered in the API
// response envelope (first/last/prev/next links plus current_page, per_page,
// total and friends).
package pagination

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
)

const (
	// DefaultPerPage is the number of items per page if not specified.
	DefaultPerPage = 15
	// MaxPerPage is the upper bound for items per page to prevent system abuse.
	MaxPerPage = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// MaxPage keeps (MaxPage-1)*MaxPerPage well inside a SQL bigint OFFSET.
	MaxPage = math.MaxInt32

	// ParamPage is the query parameter carrying the page number.
	ParamPage = "page"
	// ParamPerPage is the query parameter carrying the page size.
	ParamPerPage = "per_page"
)

// Params holds the validated page and page size of a list request.
type Params struct {
	Page    int
	PerPage int
}

// Default returns the first page with the default page size.
func Default() Params {
	return Params{Page: DefaultPage, PerPage: DefaultPerPage}
}

// Offset returns the SQL OFFSET value derived from [Page] and [PerPage].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// Links holds navigation URLs for a paginated response.
type Links struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	CurrentPage int    `json:"current_page"`
	From        *int   `json:"from"`
	LastPage    int    `json:"last_page"`
	Path        string `json:"path"`
	PerPage     int    `json:"per_page"`
	To          *int   `json:"to"`
	Total       int    `json:"total"`
}

// Page bundles the links and meta blocks for one response.
type Page struct {
	Links Links
	Meta  Meta
}

// New builds the links and meta blocks for a page of count items out of total.
//
// base is the absolute request URL; its query string is preserved in the
// links with only the page parameter replaced.
func New(base *url.URL, params Params, total, count int) Page {
	lastPage := 1
	if params.PerPage > 0 && total > 0 {
		lastPage = (total + params.PerPage - 1) / params.PerPage
	}

	path := *base
	path.RawQuery = ""
	path.Fragment = ""

	meta := Meta{
		CurrentPage: params.Page,
		LastPage:    lastPage,
		Path:        path.String(),
		PerPage:     params.PerPage,
		Total:       total,
	}

	if count > 0 {
		from := params.Offset() + 1
		to := params.Offset() + count
		meta.From = &from
		meta.To = &to
	}

	links := Links{
		First: pageURL(base, 1),
		Last:  pageURL(base, lastPage),
	}
	if params.Page > 1 {
		prev := pageURL(base, params.Page-1)
		links.Prev = &prev
	}
	if params.Page < lastPage {
		next := pageURL(base, params.Page+1)
		links.Next = &next
	}

	return Page{Links: links, Meta: meta}
}

// RequestURL reconstructs the absolute URL of an incoming request.
func RequestURL(request *http.Request) *url.URL {
	scheme := "http"
	if request.TLS != nil {
		scheme = "https"
	}
	if forwarded := request.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}

	return &url.URL{
		Scheme:   scheme,
		Host:     request.Host,
		Path:     request.URL.Path,
		RawQuery: request.URL.RawQuery,
	}
}

// pageURL returns base with the page parameter set to page.
func pageURL(base *url.URL, page int) string {
	target := *base
	query := target.Query()
	query.Set(ParamPage, strconv.Itoa(page))
	target.RawQuery = query.Encode()
	target.Fragment = ""
	return target.String()
}
