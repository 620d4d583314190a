package session

import (
	"testing"

	"github.com/dotcommander/compfinder/internal/dataset"
	"github.com/dotcommander/compfinder/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func newTestDataset() *dataset.Dataset {
	return dataset.New(map[string][]dataset.Comp{
		"2": {
			{Team: []string{"A", "B", "C"}, BronzeCount: intPtr(1)},
			{Team: []string{"C", "D"}, BronzeCount: intPtr(3)},
			{Team: []string{"A", "E", "F", "G"}},
		},
		"3":  {{Team: []string{"A", "D"}}},
		"10": {{Team: []string{"H"}}},
	})
}

func teamsOf(v View) [][]string {
	out := make([][]string, 0, len(v.Records))
	for _, r := range v.Records {
		out = append(out, r.Team)
	}
	return out
}

func TestNewController_Defaults(t *testing.T) {
	c := NewController(newTestDataset())

	assert.Equal(t, "2", c.Level())
	assert.Equal(t, scoring.SortClosest, c.Mode())
	assert.Equal(t, 0, c.MinOwned())
	assert.Empty(t, c.OwnedUnits())
	assert.Equal(t, []string{"2", "3", "10"}, c.Levels())

	v := c.View()
	assert.Equal(t, 3, v.Count)
	assert.Equal(t, 4, v.MaxOwned)
}

func TestNewController_EmptyDataset(t *testing.T) {
	c := NewController(dataset.New(nil))
	assert.Equal(t, "", c.Level())

	v := c.View()
	assert.Equal(t, 0, v.Count)
	assert.NotNil(t, v.Records)
	assert.Empty(t, c.PickerUnits())
}

func TestController_OwnershipDrivesView(t *testing.T) {
	c := NewController(newTestDataset())
	c.Own("A")
	c.Own("B")

	v := c.View()
	require.Equal(t, 3, v.Count)
	assert.Equal(t, []string{"A", "B", "C"}, v.Records[0].Team)
	assert.Equal(t, 2, v.Records[0].OwnedCount)
	assert.Equal(t, []string{"A", "B"}, v.Owned)

	c.Disown("B")
	v = c.View()
	// A,B,C and A,E,F,G both own one; fewer missing wins.
	assert.Equal(t, [][]string{{"A", "B", "C"}, {"A", "E", "F", "G"}, {"C", "D"}}, teamsOf(v))

	assert.True(t, c.Toggle("C"))
	assert.True(t, c.IsOwned("C"))
	assert.False(t, c.Toggle("C"))
	assert.False(t, c.IsOwned("C"))
}

func TestController_SortModes(t *testing.T) {
	c := NewController(newTestDataset())
	c.Own("A")

	c.SetSortMode(scoring.SortBronze)
	assert.Equal(t, []string{"C", "D"}, c.View().Records[0].Team)

	c.SetSortMode(scoring.SortMissing)
	assert.Equal(t, [][]string{{"A", "B", "C"}, {"C", "D"}, {"A", "E", "F", "G"}}, teamsOf(c.View()))

	c.SetSortMode("bogus")
	assert.Equal(t, [][]string{{"A", "B", "C"}, {"A", "E", "F", "G"}, {"C", "D"}}, teamsOf(c.View()))
}

func TestController_SetMinOwnedClamps(t *testing.T) {
	c := NewController(newTestDataset())

	assert.Equal(t, 0, c.SetMinOwned(-2))
	assert.Equal(t, 4, c.SetMinOwned(99))
	assert.Equal(t, 2, c.SetMinOwned(2))

	c.Own("A")
	c.Own("E")
	v := c.View()
	require.Equal(t, 1, v.Count)
	assert.Equal(t, []string{"A", "E", "F", "G"}, v.Records[0].Team)
}

func TestController_FilterNoneReach(t *testing.T) {
	c := NewController(newTestDataset())
	c.Own("A")
	c.SetMinOwned(4)

	v := c.View()
	assert.Equal(t, 0, v.Count)
	assert.Empty(t, v.Records)
}

func TestController_SelectLevelResetsThreshold(t *testing.T) {
	c := NewController(newTestDataset())
	c.SetMinOwned(3)

	c.SelectLevel("3")
	assert.Equal(t, "3", c.Level())
	assert.Equal(t, 0, c.MinOwned())
	assert.Equal(t, 2, c.MaxTeamSize())
	assert.Equal(t, 1, c.View().Count)
}

func TestController_SelectMissingLevel(t *testing.T) {
	c := NewController(newTestDataset())
	c.SelectLevel("99")

	v := c.View()
	assert.Equal(t, "99", v.Level)
	assert.Equal(t, 0, v.Count)
	assert.Equal(t, 0, v.MaxOwned)
}

func TestController_ClearRebuildsSet(t *testing.T) {
	c := NewController(newTestDataset())
	c.Own("A")
	c.Own("D")
	c.SetSearch("a")

	c.Clear()
	assert.Empty(t, c.OwnedUnits())
	assert.Equal(t, "", c.Search())
	assert.Equal(t, 0, c.View().Records[0].OwnedCount)
}

func TestController_PickerUnits(t *testing.T) {
	c := NewController(newTestDataset())
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G", "H"}, c.PickerUnits())

	c.SetSearch(" h ")
	assert.Equal(t, []string{"H"}, c.PickerUnits())
}
