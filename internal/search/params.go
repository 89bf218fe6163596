package search

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"bookhub/internal/rules"
	"bookhub/internal/shared"
)

// ParamsFromValues reads the recognised query parameters. Malformed numbers
// are reported as field errors rather than silently dropped.
func ParamsFromValues(v url.Values) (Params, error) {
	var p Params
	verr := &shared.ValidationError{}

	if s := strings.TrimSpace(v.Get("author")); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			verr.Add("author", "Select a valid choice.")
		} else {
			p.Author = &id
		}
	}

	// year is the short alias used by the list filter form
	year := strings.TrimSpace(v.Get("publication_year"))
	if year == "" {
		year = strings.TrimSpace(v.Get("year"))
	}
	if year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			verr.Add("publication_year", "Enter a whole number.")
		} else {
			p.PublicationYear = &y
		}
	}

	p.Tag = strings.TrimSpace(v.Get("tag"))
	p.Search = v.Get("search")
	p.Q = v.Get("q")
	if len(p.Q) > rules.MaxSearchLength {
		verr.Add("q", fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", rules.MaxSearchLength, len(p.Q)))
	}
	p.Ordering = v.Get("ordering")

	if s := v.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			verr.Add("page", "Invalid page.")
		} else {
			p.Page = n
		}
	}
	if s := v.Get("page_size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			verr.Add("page_size", "Invalid page size.")
		} else {
			p.PageSize = n
		}
	}

	if verr.HasErrors() {
		verr.Sort()
		return p, verr
	}
	return p, nil
}
