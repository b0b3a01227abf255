package list

import (
	"sort"
	"strings"
	"time"

	"github.com/easyshopbd/easyshop/internal/model"
)

// Merge flattens many lists' organized content into one renumbered
// sequence. Unlike Organize it preserves multiplicity: an item ordered by
// two families appears twice. Existing numeral prefixes are stripped
// before renumbering so the output counts 1..N with no gaps.
func Merge(contents []string) []string {
	var merged []string
	n := 0
	for _, content := range contents {
		for _, line := range Normalize(content) {
			n++
			merged = append(merged, BengaliNumber(n)+". "+StripNumberPrefix(line))
		}
	}
	return merged
}

// MergeLists is Merge over the organized content of lists, in list order.
// Lists without organized content contribute nothing.
func MergeLists(lists []model.MarketList) []string {
	contents := make([]string, 0, len(lists))
	for _, ml := range lists {
		contents = append(contents, ml.OrganizedContent)
	}
	return Merge(contents)
}

// Group is one partition of lists for the staff views, labeled by owner.
type Group struct {
	OwnerID   int64
	OwnerName string
	Lists     []model.MarketList
}

// GroupByOwner partitions lists per owning family and sorts the groups by
// display name, case-insensitively, falling back to owner id so the order
// is total. Lists inside a group keep their incoming order.
func GroupByOwner(lists []model.MarketList, displayName func(ownerID int64) string) []Group {
	byOwner := make(map[int64]*Group)
	var order []int64
	for _, ml := range lists {
		g, ok := byOwner[ml.OwnerID]
		if !ok {
			g = &Group{OwnerID: ml.OwnerID, OwnerName: displayName(ml.OwnerID)}
			byOwner[ml.OwnerID] = g
			order = append(order, ml.OwnerID)
		}
		g.Lists = append(g.Lists, ml)
	}

	groups := make([]Group, 0, len(order))
	for _, id := range order {
		groups = append(groups, *byOwner[id])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		a := strings.ToLower(groups[i].OwnerName)
		b := strings.ToLower(groups[j].OwnerName)
		if a != b {
			return a < b
		}
		return groups[i].OwnerID < groups[j].OwnerID
	})
	return groups
}

// DateGroup is one calendar day's worth of lists.
type DateGroup struct {
	Date   string // YYYY-MM-DD in loc
	Groups []Group
}

// GroupByDate partitions lists by the calendar date of their creation in
// loc, newest date first, with each day's lists grouped per owner.
func GroupByDate(lists []model.MarketList, loc *time.Location, displayName func(ownerID int64) string) []DateGroup {
	byDate := make(map[string][]model.MarketList)
	var dates []string
	for _, ml := range lists {
		day := ml.CreatedAt.In(loc).Format("2006-01-02")
		if _, ok := byDate[day]; !ok {
			dates = append(dates, day)
		}
		byDate[day] = append(byDate[day], ml)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	groups := make([]DateGroup, 0, len(dates))
	for _, day := range dates {
		groups = append(groups, DateGroup{
			Date:   day,
			Groups: GroupByOwner(byDate[day], displayName),
		})
	}
	return groups
}
