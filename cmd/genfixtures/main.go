// Command genfixtures runs raw spots through the feed pipeline and writes the
// detail and summary projections as JSON fixtures for client tests. A fixed
// clock makes lastInterval windows reproducible.
//
// Usage:
//
//	go run ./cmd/genfixtures \
//	  -in data/mock/spots_260107.json \
//	  -cq-zones data/cqzones.geojson \
//	  -now 2026-01-07T14:45:00Z -interval 60 \
//	  -detail-out data/mock/spots_detail.json \
//	  -summary-out data/mock/spots_summary.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/psws-spot-service/internal/domain"
	"github.com/couchcryptid/psws-spot-service/internal/feed"
	"github.com/couchcryptid/psws-spot-service/internal/observability"
	"github.com/couchcryptid/psws-spot-service/internal/zone"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	in := flag.String("in", "", "JSON array of raw spots")
	cqZones := flag.String("cq-zones", "data/cqzones.geojson", "CQ zone boundary dataset")
	cqProperty := flag.String("cq-property", "cq_zone_number", "CQ zone id property")
	receiver := flag.String("receiver", "FN21ni", "receiver grid locator")
	nowFlag := flag.String("now", "2026-01-07T14:45:00Z", "fixed current time (RFC 3339)")
	interval := flag.String("interval", "60", "lastInterval in minutes; empty for all spots")
	limit := flag.Int("limit", 0, "keep only the most recent N spots (0 keeps all)")
	detailOut := flag.String("detail-out", "", "output path for the detail projection")
	summaryOut := flag.String("summary-out", "", "output path for the summary projection")
	flag.Parse()

	if *in == "" || *detailOut == "" || *summaryOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -in, -detail-out, -summary-out")
	}

	now, err := time.Parse(time.RFC3339, *nowFlag)
	if err != nil {
		return fmt.Errorf("parse -now: %w", err)
	}
	domain.SetClock(clockwork.NewFakeClockAt(now))
	defer domain.SetClock(nil)

	raw, err := readSpots(*in)
	if err != nil {
		return err
	}
	log.Printf("loaded %s raw spots", humanize.Comma(int64(len(raw))))

	ix, err := zone.LoadFile(*cqZones, *cqProperty)
	if err != nil {
		return fmt.Errorf("load cq zones: %w", err)
	}

	metrics := observability.NewMetricsForTesting()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	enricher, err := domain.NewEnricher(*receiver, domain.Zones{CQ: ix}, metrics, logger)
	if err != nil {
		return err
	}

	app := feed.New(fixtureStore(raw), enricher, metrics, logger, 0)
	req := feed.FeedRequest{WindowRequest: domain.WindowRequest{LastInterval: *interval}, Limit: *limit}

	ctx := context.Background()
	detail, err := app.FetchDetailSpots(ctx, req)
	if err != nil {
		return err
	}
	summary, err := app.FetchSummarySpots(ctx, req)
	if err != nil {
		return err
	}

	if err := writeJSON(*detailOut, detail); err != nil {
		return err
	}
	if err := writeJSON(*summaryOut, summary); err != nil {
		return err
	}
	log.Printf("wrote %s detail and %s summary spots", humanize.Comma(int64(len(detail))), humanize.Comma(int64(len(summary))))

	printBreakdown(os.Stdout, summary)
	return nil
}

func readSpots(path string) ([]domain.RawSpot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var spots []domain.RawSpot
	if err := json.Unmarshal(data, &spots); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return spots, nil
}

// fixtureStore is an in-memory domain.SpotStore with the same window and
// ordering semantics as the SQL stores.
type fixtureStore []domain.RawSpot

func (s fixtureStore) FindSpots(_ context.Context, q domain.SpotQuery) ([]domain.RawSpot, error) {
	var out []domain.RawSpot
	for _, spot := range s {
		if q.Window.Matches(spot.Date, spot.Time) {
			out = append(out, spot)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Time > out[j].Time
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s fixtureStore) Ping(context.Context) error { return nil }

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// printBreakdown prints spot counts per region and band, the same grouping
// the table view renders.
func printBreakdown(w io.Writer, spots []domain.SummarySpot) {
	counts := make(map[string]map[string]int)
	for _, s := range spots {
		if counts[s.Region] == nil {
			counts[s.Region] = make(map[string]int)
		}
		counts[s.Region][s.Band]++
	}

	regions := make([]string, 0, len(counts))
	for r := range counts {
		regions = append(regions, r)
	}
	sort.Strings(regions)

	fmt.Fprintln(w, "\nSpots by region and band:")
	for _, r := range regions {
		bands := make([]string, 0, len(counts[r]))
		for b := range counts[r] {
			bands = append(bands, b)
		}
		sort.Strings(bands)
		for _, b := range bands {
			fmt.Fprintf(w, "  %-16s %-6s %s\n", r, b, humanize.Comma(int64(counts[r][b])))
		}
	}
}
