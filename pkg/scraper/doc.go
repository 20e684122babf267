// Package scraper drives a complete icon download run.
//
// A run is strictly phased: the catalog is paged sequentially until exhausted,
// then every icon receives a file name in one pass over the target directory,
// and only then are the images downloaded by a bounded worker pool. Progress is
// reported through an Observer whose calls never overlap.
//
//	s, err := scraper.NewFromConfig(cfg, log)
//	report, err := s.DownloadIcons(ctx, catalog.Filter{Style: "ios"}, observer)
//	fmt.Println(report.Succeeded, report.Failed)
package scraper
