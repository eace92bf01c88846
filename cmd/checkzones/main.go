// Command checkzones validates a zone boundary dataset before it is deployed.
// It samples the center of every Maidenhead square and reports points covered
// by more than one zone (resolution then depends on dataset order), points
// covered by none, and zones that no sample reached.
//
// Usage:
//
//	go run ./cmd/checkzones -zones data/cqzones.geojson -property cq_zone_number
//	go run ./cmd/checkzones -zones data/countries.geojson -property name -precision 6
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/couchcryptid/psws-spot-service/internal/domain"
	"github.com/couchcryptid/psws-spot-service/internal/zone"
)

// maxListed caps the detail lines printed per phase.
const maxListed = 20

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	source := flag.String("zones", "", "GeoJSON boundary dataset (path or http(s) URL)")
	property := flag.String("property", "cq_zone_number", "feature property holding the zone id")
	precision := flag.Int("precision", 4, "locator length to sample: 4 or 6")
	fullCoverage := flag.Bool("full-coverage", false, "fail when any sample falls outside every zone")
	flag.Parse()

	if *source == "" || (*precision != 4 && *precision != 6) {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*source, *property, *precision, *fullCoverage))
}

func run(source, property string, precision int, fullCoverage bool) int {
	fmt.Println("=== Zone Dataset Check ===")
	fmt.Println()

	ix, err := zone.Open(context.Background(), source, property, time.Minute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load %s: %v\n", source, err)
		return 1
	}
	fmt.Printf("Loaded %s zones, %s vertices from %s\n",
		humanize.Comma(int64(ix.Len())), humanize.Comma(int64(ix.Vertices())), source)

	s := survey(ix, precision)

	phases := []*phase{
		checkUniqueIDs(ix.IDs()),
		checkOverlaps(s),
		checkCoverage(s, fullCoverage),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Samples: %s total, %s covered, %s uncovered, %s overlapping\n",
		humanize.Comma(int64(s.total)),
		humanize.Comma(int64(s.total-len(s.gaps))),
		humanize.Comma(int64(len(s.gaps))),
		humanize.Comma(int64(len(s.overlaps))),
	)
	if unreached := s.unreached(ix.IDs()); len(unreached) > 0 {
		fmt.Printf("Zones with no sample inside (try -precision 6): %s\n", strings.Join(unreached, ", "))
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == maxListed {
				fmt.Printf("  ... %s more\n", humanize.Comma(int64(len(p.errors)-maxListed)))
				break
			}
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll checks passed.")
		return 0
	}
	fmt.Println("\nCheck FAILED.")
	return 1
}

// surveyResult is the outcome of sampling every cell center.
type surveyResult struct {
	total    int
	hits     map[string]int      // zone id -> samples resolved to it
	overlaps map[string][]string // grid -> every containing zone id
	gaps     []string            // grids outside every zone
}

func (s surveyResult) unreached(ids []string) []string {
	var out []string
	for _, id := range ids {
		if s.hits[id] == 0 {
			out = append(out, id)
		}
	}
	return out
}

func survey(ix *zone.Index, precision int) surveyResult {
	s := surveyResult{
		hits:     make(map[string]int),
		overlaps: make(map[string][]string),
	}
	for _, grid := range locators(precision) {
		c, err := domain.LocateGrid(grid)
		if err != nil {
			continue
		}
		s.total++

		ids := ix.ResolveAll(c.Lat, c.Lon)
		switch len(ids) {
		case 0:
			s.gaps = append(s.gaps, grid)
		case 1:
			s.hits[ids[0]]++
		default:
			s.hits[ids[0]]++
			s.overlaps[grid] = ids
		}
	}
	return s
}

// locators enumerates every locator of the given length in field order.
func locators(precision int) []string {
	var out []string
	for f1 := 'A'; f1 <= 'R'; f1++ {
		for f2 := 'A'; f2 <= 'R'; f2++ {
			for s1 := '0'; s1 <= '9'; s1++ {
				for s2 := '0'; s2 <= '9'; s2++ {
					square := string([]rune{f1, f2, s1, s2})
					if precision < 6 {
						out = append(out, square)
						continue
					}
					for u1 := 'a'; u1 <= 'x'; u1++ {
						for u2 := 'a'; u2 <= 'x'; u2++ {
							out = append(out, square+string([]rune{u1, u2}))
						}
					}
				}
			}
		}
	}
	return out
}

func checkUniqueIDs(ids []string) *phase {
	p := &phase{name: "Zone ids unique"}
	seen := make(map[string]int, len(ids))
	for i, id := range ids {
		if first, ok := seen[id]; ok {
			p.errorf("id %q used by features %d and %d", id, first, i)
			continue
		}
		seen[id] = i
	}
	return p
}

func checkOverlaps(s surveyResult) *phase {
	p := &phase{name: "Zones disjoint at sampled centers"}
	grids := make([]string, 0, len(s.overlaps))
	for g := range s.overlaps {
		grids = append(grids, g)
	}
	sort.Strings(grids)
	for _, g := range grids {
		ids := s.overlaps[g]
		p.errorf("%s is inside zones %s (resolves to %s)", g, strings.Join(ids, ", "), ids[0])
	}
	return p
}

func checkCoverage(s surveyResult, required bool) *phase {
	p := &phase{name: "Full coverage"}
	if !required {
		p.name = "Full coverage (not required)"
		return p
	}
	for _, g := range s.gaps {
		p.errorf("%s is outside every zone", g)
	}
	return p
}
