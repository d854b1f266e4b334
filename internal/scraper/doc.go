// Package scraper fetches real stevner from the published terminliste and
// attaches them to range records, so ranges with an actual calendar skip
// synthetic generation.
//
// The terminliste is an HTML page; parsing is best-effort and a scrape
// failure never fails a dataset load.
package scraper
