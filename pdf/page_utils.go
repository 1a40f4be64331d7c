package pdf

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var whitespace = regexp.MustCompile(`\s`)

// PageRange is an inclusive run of 1-based page numbers.
type PageRange struct {
	First, Last int
}

// ParsePageRanges parses a page specification into its ranges without
// expanding them. Supports formats: "1", "1,3", "1-5", "1,3-5,7"
func ParsePageRanges(pages string) ([]PageRange, error) {
	pages = whitespace.ReplaceAllString(pages, "")
	if pages == "" {
		return nil, fmt.Errorf("%w: empty page specification", ErrInvalidPageRange)
	}

	var ranges []PageRange
	for _, part := range strings.Split(pages, ",") {
		start, end, err := parsePagePart(part)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, PageRange{First: start, Last: end})
	}
	return ranges, nil
}

// ParsePageSpecifier parses a page specification and returns a sorted,
// de-duplicated list of page numbers. Every range is checked against
// totalPages before it is expanded.
func ParsePageSpecifier(pages string, totalPages int) ([]int, error) {
	ranges, err := ParsePageRanges(pages)
	if err != nil {
		return nil, err
	}
	for _, r := range ranges {
		if err := ValidatePageNumbers([]int{r.First, r.Last}, totalPages); err != nil {
			return nil, err
		}
	}

	var pageList []int
	for _, r := range ranges {
		for i := r.First; i <= r.Last; i++ {
			pageList = append(pageList, i)
		}
	}

	sort.Ints(pageList)
	deduped := pageList[:0]
	for i, page := range pageList {
		if i == 0 || page != pageList[i-1] {
			deduped = append(deduped, page)
		}
	}
	return deduped, nil
}

// parsePagePart parses "3" or "1-5".
func parsePagePart(part string) (int, int, error) {
	first, last, isRange := strings.Cut(part, "-")
	start, err := strconv.Atoi(first)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid page number %q", ErrInvalidPageRange, first)
	}
	if !isRange {
		return start, start, nil
	}
	end, err := strconv.Atoi(last)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid end page %q", ErrInvalidPageRange, last)
	}
	if start > end {
		return 0, 0, fmt.Errorf("%w: start > end (%d > %d)", ErrInvalidPageRange, start, end)
	}
	return start, end, nil
}

// ValidatePageNumbers checks if all page numbers are valid for a given total number of pages
func ValidatePageNumbers(pages []int, totalPages int) error {
	for _, page := range pages {
		if page < 1 {
			return fmt.Errorf("%w: page numbers must be positive, got %d", ErrInvalidPageRange, page)
		}
		if page > totalPages {
			return fmt.Errorf("%w: page %d exceeds total pages (%d)", ErrInvalidPageRange, page, totalPages)
		}
	}
	return nil
}

// ComplementRanges returns the runs of pages in 1..totalPages not listed
// in removed.
func ComplementRanges(removed []int, totalPages int) []PageRange {
	drop := make(map[int]bool, len(removed))
	for _, p := range removed {
		drop[p] = true
	}
	var keep []PageRange
	for p := 1; p <= totalPages; p++ {
		if drop[p] {
			continue
		}
		if n := len(keep); n > 0 && keep[n-1].Last == p-1 {
			keep[n-1].Last = p
		} else {
			keep = append(keep, PageRange{First: p, Last: p})
		}
	}
	return keep
}

// pagesToRanges collapses ascending consecutive pages into runs, keeping
// the selection order.
func pagesToRanges(pages []int) []PageRange {
	var ranges []PageRange
	for _, p := range pages {
		if n := len(ranges); n > 0 && ranges[n-1].Last == p-1 {
			ranges[n-1].Last = p
		} else {
			ranges = append(ranges, PageRange{First: p, Last: p})
		}
	}
	return ranges
}
