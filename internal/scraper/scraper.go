package scraper

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkleiven/stevnekart/internal/event"
	"github.com/mkleiven/stevnekart/internal/localdate"
	"github.com/mkleiven/stevnekart/internal/skytebane"
)

const (
	TerminlisteURL = "https://terminliste.dfs-data.no/stevner"
	UserAgent      = "stevnekart/1.0 (github.com/mkleiven/stevnekart)"
	Timeout        = 30 * time.Second
)

// Scraper fetches and parses the terminliste.
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a Scraper for the default terminliste URL.
func New() *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url: TerminlisteURL,
	}
}

// NewWithURL creates a Scraper for a specific terminliste URL.
func NewWithURL(url string) *Scraper {
	s := New()
	s.url = url
	return s
}

// FetchStevner fetches the terminliste and returns real stevner keyed by
// range identifier.
func (s *Scraper) FetchStevner() (map[string][]*event.Event, error) {
	req, err := http.NewRequest("GET", s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching terminliste: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return s.parseStevner(resp.Body)
}

// Terminliste lines look like:
//
//	12.04.2026 - Feltstevne Mysen - MYS - 23/60
//
// date, title, range code, and an optional "attendees/capacity" tail.
var stevneLinePattern = regexp.MustCompile(
	`^(\d{1,2}\.\d{1,2}\.\d{4})\s*-\s*(.+?)\s*-\s*([A-ZÆØÅ0-9]{2,8})(?:\s*-\s*(\d+)\s*/\s*(\d+))?$`)

// parseStevner extracts stevner from terminliste HTML.
func (s *Scraper) parseStevner(r io.Reader) (map[string][]*event.Event, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	today := localdate.Today()
	byBane := make(map[string][]*event.Event)
	seen := make(map[string]bool)

	add := func(line string) {
		matches := stevneLinePattern.FindStringSubmatch(line)
		if matches == nil {
			return
		}

		date := parseTerminDate(matches[1])
		if date.IsZero() {
			return
		}
		title := strings.TrimSpace(matches[2])
		baneID := matches[3]

		evt := &event.Event{
			ID:       event.GenerateID(baneID, line),
			Name:     title,
			Date:     date.String(),
			RsvpOpen: date.After(today),
		}
		if matches[4] != "" {
			attendees, _ := strconv.Atoi(matches[4])
			capacity, _ := strconv.Atoi(matches[5])
			if attendees > capacity {
				attendees = capacity
			}
			evt.Attendees = attendees
			evt.MaxAttendees = capacity
			if attendees >= capacity {
				evt.RsvpOpen = false
			}
		}

		if seen[evt.ID] {
			return
		}
		seen[evt.ID] = true
		byBane[baneID] = append(byBane[baneID], evt)
	}

	// Strategy 1: table rows, joining cells with the separator the line
	// pattern expects.
	doc.Find("tr").Each(func(i int, row *goquery.Selection) {
		var cells []string
		row.Find("td").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) >= 3 {
			add(strings.Join(cells, " - "))
		}
	})

	// Strategy 2: plain text lines anywhere in the document, for the
	// list-based layout the terminliste occasionally ships.
	for _, line := range strings.Split(doc.Text(), "\n") {
		add(strings.TrimSpace(line))
	}

	return byBane, nil
}

// parseTerminDate parses the terminliste's dd.mm.yyyy form.
func parseTerminDate(s string) localdate.Date {
	t, err := time.ParseInLocation("2.1.2006", s, time.Local)
	if err != nil {
		return localdate.Date{}
	}
	return localdate.FromTime(t)
}

// Attach merges scraped stevner into raw range records that have none of
// their own. Call before normalization so attached ranges skip the
// synthetic generator.
func Attach(ranges []*skytebane.Range, byBane map[string][]*event.Event) {
	for _, r := range ranges {
		if r == nil || len(r.Events) > 0 {
			continue
		}
		if stevner, ok := byBane[r.ID]; ok && len(stevner) > 0 {
			r.Events = stevner
		}
	}
}
