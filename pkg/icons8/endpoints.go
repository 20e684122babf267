package icons8

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultCatalogURL is the paginated icon search endpoint
	DefaultCatalogURL = "https://api-icons.icons8.com/siteApi/icons/v1/latest"

	// DefaultImageURL serves rendered PNGs by icon id
	DefaultImageURL = "https://img.icons8.com/"

	// PageSize is the number of icons requested per catalog page
	PageSize = 100

	DefaultLanguage = "en-US"
	DefaultSortBy   = "mostDownloaded"
)

// CatalogQuery holds the parameters of one catalog page request
type CatalogQuery struct {
	Amount    int
	Offset    int
	IncludeAI bool
	Language  string
	SortBy    string
	Style     string
	Term      string
}

// CatalogURL builds the request URL for a catalog page.
// Parameters are emitted in a fixed order so that identical queries produce
// byte-identical URLs, which the response cache relies on. Empty style and
// term are omitted.
func CatalogURL(base string, q CatalogQuery) string {
	var b strings.Builder
	b.WriteString(base)
	if strings.Contains(base, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}

	writeParam(&b, "amount", strconv.Itoa(q.Amount), true)
	writeParam(&b, "offset", strconv.Itoa(q.Offset), false)
	writeParam(&b, "ai", strconv.FormatBool(q.IncludeAI), false)
	writeParam(&b, "language", q.Language, false)
	writeParam(&b, "sortBy", q.SortBy, false)
	if q.Style != "" {
		writeParam(&b, "style", q.Style, false)
	}
	if q.Term != "" {
		writeParam(&b, "term", q.Term, false)
	}
	return b.String()
}

func writeParam(b *strings.Builder, key, value string, first bool) {
	if !first {
		b.WriteByte('&')
	}
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(value))
}

// ImageURL builds the PNG download URL for an icon at the given pixel size
func ImageURL(base, id string, size int) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + "?size=" + strconv.Itoa(size) + "&id=" + url.QueryEscape(id) + "&format=png"
}
