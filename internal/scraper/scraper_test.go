package scraper

import (
	"strings"
	"testing"

	"github.com/mkleiven/stevnekart/internal/event"
	"github.com/mkleiven/stevnekart/internal/localdate"
	"github.com/mkleiven/stevnekart/internal/skytebane"
)

const tableHTML = `<html><body>
<table>
<tr><th>Dato</th><th>Stevne</th><th>Lag</th><th>Påmeldt</th></tr>
<tr><td>12.04.2030</td><td>Feltstevne Mysen</td><td>MYS</td><td>23/60</td></tr>
<tr><td>3.5.2030</td><td>Banestevne Askim</td><td>ASK</td><td>60/60</td></tr>
<tr><td>ikke en dato</td><td>Uten dato</td><td>XXX</td><td></td></tr>
</table>
</body></html>`

const listHTML = `<html><body><pre>
12.04.2030 - Feltstevne Mysen - MYS
01.06.2030 - Klubbmesterskap - MYS - 5/40
</pre></body></html>`

func TestParseStevner_Table(t *testing.T) {
	byBane, err := New().parseStevner(strings.NewReader(tableHTML))
	if err != nil {
		t.Fatalf("parseStevner() error = %v", err)
	}

	mys := byBane["MYS"]
	if len(mys) != 1 {
		t.Fatalf("MYS got %d stevner, want 1", len(mys))
	}
	if mys[0].Name != "Feltstevne Mysen" {
		t.Errorf("Name = %q", mys[0].Name)
	}
	if mys[0].Date != "2030-04-12" {
		t.Errorf("Date = %q, want 2030-04-12", mys[0].Date)
	}
	if mys[0].Attendees != 23 || mys[0].MaxAttendees != 60 {
		t.Errorf("attendees = %d/%d, want 23/60", mys[0].Attendees, mys[0].MaxAttendees)
	}
	if !mys[0].RsvpOpen {
		t.Errorf("future stevne with free capacity should have open rsvp")
	}

	ask := byBane["ASK"]
	if len(ask) != 1 {
		t.Fatalf("ASK got %d stevner, want 1", len(ask))
	}
	if ask[0].RsvpOpen {
		t.Errorf("full stevne (60/60) should have closed rsvp")
	}

	if _, ok := byBane["XXX"]; ok {
		t.Errorf("row with unparseable date should be skipped")
	}
}

func TestParseStevner_PlainLines(t *testing.T) {
	byBane, err := New().parseStevner(strings.NewReader(listHTML))
	if err != nil {
		t.Fatalf("parseStevner() error = %v", err)
	}

	mys := byBane["MYS"]
	if len(mys) != 2 {
		t.Fatalf("MYS got %d stevner, want 2", len(mys))
	}
	if mys[0].ID == mys[1].ID {
		t.Errorf("duplicate IDs for distinct stevner")
	}
}

func TestParseStevner_InvariantHolds(t *testing.T) {
	byBane, err := New().parseStevner(strings.NewReader(tableHTML))
	if err != nil {
		t.Fatalf("parseStevner() error = %v", err)
	}
	for id, stevner := range byBane {
		for _, evt := range stevner {
			if evt.Attendees < 0 || evt.Attendees > evt.MaxAttendees {
				t.Errorf("%s: attendees %d outside [0, %d]", id, evt.Attendees, evt.MaxAttendees)
			}
			if localdate.Parse(evt.Date).IsZero() {
				t.Errorf("%s: unparseable date %q", id, evt.Date)
			}
		}
	}
}

func TestAttach(t *testing.T) {
	existing := []*event.Event{{ID: "keep", Name: "Banestevne"}}
	ranges := []*skytebane.Range{
		{ID: "MYS"},
		{ID: "ASK", Events: existing},
		{ID: "NIL"},
	}
	byBane := map[string][]*event.Event{
		"MYS": {{ID: "m1"}},
		"ASK": {{ID: "a1"}},
	}

	Attach(ranges, byBane)

	if len(ranges[0].Events) != 1 || ranges[0].Events[0].ID != "m1" {
		t.Errorf("MYS events = %+v, want scraped stevner", ranges[0].Events)
	}
	if len(ranges[1].Events) != 1 || ranges[1].Events[0].ID != "keep" {
		t.Errorf("ASK pre-populated events were replaced")
	}
	if len(ranges[2].Events) != 0 {
		t.Errorf("NIL got events from nowhere")
	}
}
