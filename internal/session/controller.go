package session

import (
	"github.com/dotcommander/compfinder/internal/dataset"
	"github.com/dotcommander/compfinder/internal/scoring"
)

// View is one render of the current state: the ranked, filtered records of
// the selected level.
type View struct {
	Level    string                `json:"level"`
	Mode     scoring.SortMode      `json:"mode"`
	MinOwned int                   `json:"min_owned"`
	MaxOwned int                   `json:"max_owned"` // upper bound of MinOwned at this level
	Owned    []string              `json:"owned"`
	Records  []scoring.ScoreRecord `json:"records"`
	Count    int                   `json:"count"`
}

// Controller owns the mutable session state and mediates every change to it.
// It is not safe for concurrent use.
type Controller struct {
	ds       *dataset.Dataset
	owned    *scoring.OwnedSet
	level    string
	mode     scoring.SortMode
	minOwned int
	search   string
}

// NewController starts a session on ds with nothing owned, the first level
// selected and the default sort mode.
func NewController(ds *dataset.Dataset) *Controller {
	c := &Controller{
		ds:    ds,
		owned: scoring.NewOwnedSet(),
		mode:  scoring.DefaultSortMode,
	}
	if levels := dataset.ListLevels(ds); len(levels) > 0 {
		c.level = levels[0]
	}
	return c
}

// Dataset returns the dataset of the session.
func (c *Controller) Dataset() *dataset.Dataset { return c.ds }

// Levels returns the level keys in numeric order.
func (c *Controller) Levels() []string { return dataset.ListLevels(c.ds) }

// Level returns the selected level key.
func (c *Controller) Level() string { return c.level }

// Mode returns the sort mode.
func (c *Controller) Mode() scoring.SortMode { return c.mode }

// MinOwned returns the minimum-overlap threshold.
func (c *Controller) MinOwned() int { return c.minOwned }

// Search returns the unit picker query.
func (c *Controller) Search() string { return c.search }

// Own marks unit as owned.
func (c *Controller) Own(unit string) { c.owned.Add(unit) }

// Disown marks unit as not owned.
func (c *Controller) Disown(unit string) { c.owned.Remove(unit) }

// Toggle flips ownership of unit and reports whether it is now owned.
func (c *Controller) Toggle(unit string) bool { return c.owned.Toggle(unit) }

// IsOwned reports whether unit is owned.
func (c *Controller) IsOwned(unit string) bool { return c.owned.Has(unit) }

// Clear replaces the owned set with an empty one and resets the search.
func (c *Controller) Clear() {
	c.owned = scoring.NewOwnedSet()
	c.search = ""
}

// OwnedUnits returns the owned units in catalog order.
func (c *Controller) OwnedUnits() []string { return c.owned.Sorted() }

// SelectLevel switches to level id and resets the threshold. An id absent
// from the dataset is kept and yields an empty view.
func (c *Controller) SelectLevel(id string) {
	c.level = id
	c.minOwned = 0
}

// SetSortMode sets the ranking mode. Unknown modes rank like closest.
func (c *Controller) SetSortMode(mode scoring.SortMode) { c.mode = mode }

// SetMinOwned sets the threshold clamped to [0, MaxTeamSize()] and returns
// the value in effect.
func (c *Controller) SetMinOwned(n int) int {
	c.minOwned = clamp(n, 0, c.MaxTeamSize())
	return c.minOwned
}

// MaxTeamSize returns the longest team at the selected level.
func (c *Controller) MaxTeamSize() int {
	longest := 0
	for _, comp := range dataset.SelectLevel(c.ds, c.level) {
		longest = max(longest, len(comp.Team))
	}
	return longest
}

// SetSearch sets the unit picker query.
func (c *Controller) SetSearch(query string) { c.search = query }

// PickerUnits returns the catalog units that match the search query.
func (c *Controller) PickerUnits() []string {
	return dataset.SearchUnits(c.ds.Units(), c.search)
}

// View scores every comp at the selected level, drops those below the
// threshold and ranks the rest.
func (c *Controller) View() View {
	// Threshold bound follows the level, as the slider maximum does.
	maxOwned := c.MaxTeamSize()
	if c.minOwned > maxOwned {
		c.minOwned = maxOwned
	}

	comps := dataset.SelectLevel(c.ds, c.level)
	records := scoring.ScoreAll(c.level, comps, c.owned)
	records = scoring.Filter(records, c.minOwned)
	records = scoring.Rank(records, c.mode)

	return View{
		Level:    c.level,
		Mode:     c.mode,
		MinOwned: c.minOwned,
		MaxOwned: maxOwned,
		Owned:    c.owned.Sorted(),
		Records:  records,
		Count:    len(records),
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
