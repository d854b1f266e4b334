// Package cli implements the stevnekart command line interface.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkleiven/stevnekart/internal/calendar"
	"github.com/mkleiven/stevnekart/internal/dataset"
	"github.com/mkleiven/stevnekart/internal/filter"
	"github.com/mkleiven/stevnekart/internal/notifier"
	"github.com/mkleiven/stevnekart/internal/scraper"
	"github.com/mkleiven/stevnekart/internal/skytebane"
	"github.com/mkleiven/stevnekart/internal/spatial"
	"github.com/mkleiven/stevnekart/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagFrom       string
	flagTo         string
	flagNear       string
	flagRadiusKm   float64
	flagFormat     string
	flagDataDir    string
	flagDatasetURL string
	flagOffline    bool
	flagNoScrape   bool
	flagVerbose    bool

	flagTweet bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stevnekart",
		Short: "List skytebaner and their stevner for a date interval",
		Long: `Loads the skytterlag dataset, attaches real or synthetic stevner to each
range, and lists the ranges visible for the selected date interval. The same
filtering drives the map markers served by stevnekart-server.`,
		RunE: runList,
	}

	cmd.PersistentFlags().StringVar(&flagFrom, "from", "", "Start of the date interval (YYYY-MM-DD, empty = unbounded)")
	cmd.PersistentFlags().StringVar(&flagTo, "to", "", "End of the date interval, inclusive (YYYY-MM-DD, empty = unbounded)")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "~/.local/share/stevnekart", "Data directory for cached dataset and snapshots")
	cmd.PersistentFlags().StringVar(&flagDatasetURL, "dataset-url", dataset.DefaultURL, "URL of the range dataset")
	cmd.PersistentFlags().BoolVar(&flagOffline, "offline", false, "Use the cached dataset instead of fetching")
	cmd.PersistentFlags().BoolVar(&flagNoScrape, "no-terminliste", false, "Skip scraping the terminliste for real stevner")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.Flags().StringVar(&flagNear, "near", "", "Only ranges near this point (\"lat,long\")")
	cmd.Flags().Float64Var(&flagRadiusKm, "radius-km", 50, "Radius for --near in kilometers")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, json or geojson")

	cmd.AddCommand(newNyeCmd())
	cmd.AddCommand(newICSCmd())

	return cmd
}

// runList is the root command logic
func runList(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON && format != FormatGeoJSON {
		return fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'geojson')", flagFormat)
	}

	f := &filter.Filter{From: flagFrom, To: flagTo}
	if err := f.Validate(); err != nil {
		return err
	}

	ranges, _, err := loadRanges()
	if err != nil {
		return err
	}

	if flagNear != "" {
		ranges, err = nearSubset(ranges, flagNear, flagRadiusKm)
		if err != nil {
			return err
		}
	}

	result := &OutputResult{
		CheckedAt: time.Now().UTC(),
		Filter:    f.String(),
		Baner:     make([]*BaneResult, 0, len(ranges)),
	}
	for _, r := range ranges {
		b := &BaneResult{
			ID:         r.ID,
			Name:       r.Name,
			Lat:        r.Lat,
			Long:       r.Long,
			Categories: r.Categories,
			Visible:    f.RangeVisible(r),
			Stevner:    f.Apply(r.Events),
		}
		if b.Visible {
			result.VisibleCount++
		}
		result.Baner = append(result.Baner, b)
	}
	result.ranges = ranges
	result.dateFilter = f

	return WriteOutput(os.Stdout, result, format, flagVerbose)
}

// loadRanges returns the normalized dataset plus the storage it was cached
// in. Offline mode reads the cache; otherwise the dataset is fetched,
// enriched from the terminliste, normalized and cached.
func loadRanges() ([]*skytebane.Range, *storage.Storage, error) {
	store, err := storage.New(flagDataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing storage: %w", err)
	}

	if flagOffline {
		ranges, err := store.LoadRanges()
		if err != nil {
			return nil, nil, err
		}
		return ranges, store, nil
	}

	if flagVerbose {
		fmt.Fprintf(os.Stderr, "Fetching dataset from %s\n", flagDatasetURL)
	}
	raw, err := dataset.NewWithURL(flagDatasetURL).Fetch()
	if err != nil {
		return nil, nil, fmt.Errorf("loading dataset: %w", err)
	}

	if !flagNoScrape {
		byBane, err := scraper.New().FetchStevner()
		if err != nil {
			// A failed scrape never fails the load.
			fmt.Fprintf(os.Stderr, "Warning: terminliste scrape failed: %v\n", err)
		} else {
			scraper.Attach(raw, byBane)
		}
	}

	ranges := skytebane.Normalize(raw)

	if err := store.SaveRanges(ranges); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: caching dataset failed: %v\n", err)
	}
	if flagVerbose {
		fmt.Fprintf(os.Stderr, "Loaded %d ranges\n", len(ranges))
	}
	return ranges, store, nil
}

// nearSubset keeps the ranges within radiusKm of a "lat,long" point.
func nearSubset(ranges []*skytebane.Range, near string, radiusKm float64) ([]*skytebane.Range, error) {
	parts := strings.Split(near, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid --near value: %q (want \"lat,long\")", near)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid --near latitude: %q", parts[0])
	}
	long, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid --near longitude: %q", parts[1])
	}
	if radiusKm <= 0 {
		return nil, fmt.Errorf("--radius-km must be positive")
	}

	var nearby []*skytebane.Range
	for _, r := range ranges {
		if spatial.WithinRadius(r.Lat, r.Long, lat, long, radiusKm) {
			nearby = append(nearby, r)
		}
	}
	return nearby, nil
}

// newNyeCmd creates the "nye" subcommand: report stevner that appeared
// since the previous run.
func newNyeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nye",
		Short: "Show stevner added since the last run",
		RunE:  runNye,
	}
	cmd.Flags().BoolVar(&flagTweet, "tweet", false, "Post new stevner to Twitter (credentials from environment)")
	return cmd
}

func runNye(cmd *cobra.Command, args []string) error {
	ranges, store, err := loadRanges()
	if err != nil {
		return err
	}

	previous, err := store.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	current := storage.BuildSnapshot(ranges)
	fresh := storage.Diff(previous, current)

	if err := store.SaveSnapshot(current); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	if len(fresh) == 0 {
		fmt.Println("Ingen nye stevner.")
		return nil
	}

	fmt.Printf("%d nye stevner:\n", len(fresh))
	for _, st := range fresh {
		fmt.Printf("  %s  %s (%s)\n", st.Event.Date, st.Event.Name, st.BaneName)
	}

	var n notifier.Notifier
	if flagTweet {
		n, err = notifier.NewTwitterNotifier()
		if err != nil {
			return err
		}
	} else {
		n = notifier.NewDryRunNotifier()
	}
	return n.Notify(fresh)
}

// newICSCmd creates the "ics" subcommand: export one stevne as iCalendar.
func newICSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ics <bane-id> <stevne-id>",
		Short: "Export a stevne as an iCalendar (.ics) entry",
		Args:  cobra.ExactArgs(2),
		RunE:  runICS,
	}
}

func runICS(cmd *cobra.Command, args []string) error {
	baneID, stevneID := args[0], args[1]

	ranges, _, err := loadRanges()
	if err != nil {
		return err
	}

	r := skytebane.FindByID(ranges, baneID)
	if r == nil {
		return fmt.Errorf("unknown bane: %s", baneID)
	}
	for _, evt := range r.Events {
		if evt.ID == stevneID {
			fmt.Print(calendar.GenerateICS(r, evt))
			return nil
		}
	}
	return fmt.Errorf("unknown stevne %s for bane %s", stevneID, baneID)
}
