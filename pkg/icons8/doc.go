// Package icons8 talks to the Icons8 catalog and image endpoints.
//
// It contains the wire models for catalog pages, strict decoding that rejects
// pages or icons missing required fields, deterministic URL builders and a
// single-attempt HTTP client:
//
//	client := icons8.NewClient(30*time.Second, "icons8dl/1.0", log)
//
//	url := icons8.CatalogURL(icons8.DefaultCatalogURL, icons8.CatalogQuery{
//	    Amount:    icons8.PageSize,
//	    Offset:    0,
//	    IncludeAI: true,
//	    Language:  icons8.DefaultLanguage,
//	    SortBy:    icons8.DefaultSortBy,
//	    Style:     "ios",
//	})
//	body, page, err := client.FetchPage(ctx, url)
//
//	img, err := client.OpenImage(ctx, icons8.ImageURL(icons8.DefaultImageURL, page.Icons[0].ID, 512))
//
// Errors are *errors.Error values from icons8dl/pkg/errors, typed as network,
// timeout, http_status, parsing or schema.
package icons8
