package listing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 { return &v }

func sqlOf(q Query) []string {
	out := make([]string, len(q.Conditions))
	for i, c := range q.Conditions {
		out[i] = c.SQL
	}
	return out
}

func findCondition(q Query, prefix string) (Condition, bool) {
	for _, c := range q.Conditions {
		if strings.HasPrefix(c.SQL, prefix) {
			return c, true
		}
	}
	return Condition{}, false
}

func TestBuildProviderQuery_AlwaysActiveOnly(t *testing.T) {
	q := BuildProviderQuery(ProviderFilter{})

	require.Len(t, q.Conditions, 1)
	assert.Equal(t, "is_active = ?", q.Conditions[0].SQL)
	assert.Equal(t, []any{true}, q.Conditions[0].Args)
	assert.Equal(t, defaultOrder, q.Order)
}

func TestBuildProviderQuery_ServiceTypeSentinel(t *testing.T) {
	for _, v := range []string{"all", "All", "ALL", "", "  "} {
		q := BuildProviderQuery(ProviderFilter{ServiceType: v})
		_, ok := findCondition(q, "service_type")
		assert.False(t, ok, "value %q must not filter by service type", v)
	}

	q := BuildProviderQuery(ProviderFilter{ServiceType: "Plumber"})
	c, ok := findCondition(q, "service_type")
	require.True(t, ok)
	assert.Equal(t, []any{"plumber"}, c.Args)
}

func TestBuildProviderQuery_LocationIsEscapedSubstring(t *testing.T) {
	q := BuildProviderQuery(ProviderFilter{Location: "Nai_100%"})

	c, ok := findCondition(q, "location ILIKE")
	require.True(t, ok)
	assert.Equal(t, []any{`%Nai\_100\%%`}, c.Args)
}

func TestBuildProviderQuery_PriceBoundsUseMinPrice(t *testing.T) {
	q := BuildProviderQuery(ProviderFilter{MinPrice: float(100), MaxPrice: float(1000)})

	low, ok := findCondition(q, "min_price >=")
	require.True(t, ok)
	assert.Equal(t, []any{100.0}, low.Args)

	high, ok := findCondition(q, "min_price <=")
	require.True(t, ok)
	assert.Equal(t, []any{1000.0}, high.Args)
}

func TestBuildProviderQuery_MaxPriceIncludesCheaperProvider(t *testing.T) {
	// исполнитель с ценой 500-2000 и запрос maxPrice=1000: 500 <= 1000
	providerMin := 500.0
	q := BuildProviderQuery(ProviderFilter{MaxPrice: float(1000)})

	c, ok := findCondition(q, "min_price <=")
	require.True(t, ok)
	bound := c.Args[0].(float64)
	assert.True(t, providerMin <= bound)
}

func TestBuildProviderQuery_SkillsAnyMatch(t *testing.T) {
	q := BuildProviderQuery(ProviderFilter{Skills: []string{"Wiring, solar ", "", "plumbing"}})

	c, ok := findCondition(q, "(array_to_string(skills")
	require.True(t, ok)
	assert.Equal(t, 3, strings.Count(c.SQL, "ILIKE"))
	assert.Contains(t, c.SQL, " OR ")
	assert.Equal(t, []any{"%Wiring%", "%solar%", "%plumbing%"}, c.Args)
}

func TestBuildProviderQuery_Verified(t *testing.T) {
	q := BuildProviderQuery(ProviderFilter{Verified: "true"})
	c, ok := findCondition(q, "verification_is_verified")
	require.True(t, ok)
	assert.Equal(t, []any{true}, c.Args)

	q = BuildProviderQuery(ProviderFilter{Verified: "maybe"})
	_, ok = findCondition(q, "verification_is_verified")
	assert.False(t, ok)
}

func TestBuildProviderQuery_SearchAcrossFields(t *testing.T) {
	q := BuildProviderQuery(ProviderFilter{Search: "  solar "})

	c, ok := findCondition(q, "(name ILIKE")
	require.True(t, ok)
	for _, col := range []string{"business_name", "description", "skills", "location"} {
		assert.Contains(t, c.SQL, col)
	}
	require.Len(t, c.Args, 5)
	for _, a := range c.Args {
		assert.Equal(t, "%solar%", a)
	}
}

func TestBuildProviderQuery_MinRating(t *testing.T) {
	q := BuildProviderQuery(ProviderFilter{MinRating: float(4.5)})
	c, ok := findCondition(q, "rating_average >=")
	require.True(t, ok)
	assert.Equal(t, []any{4.5}, c.Args)
}

func TestProviderFilter_Applied(t *testing.T) {
	f := ProviderFilter{ServiceType: "all", Skills: []string{"a,b"}, Sort: "bogus", Verified: "x"}.Applied()

	assert.Empty(t, f.ServiceType)
	assert.Empty(t, f.Verified)
	assert.Equal(t, []string{"a", "b"}, f.Skills)
	assert.Equal(t, SortRating, f.Sort)
}

func TestProviderFilter_SortByAlias(t *testing.T) {
	q := BuildProviderQuery(ProviderFilter{SortBy: "price_low"})
	assert.Equal(t, "min_price ASC NULLS LAST", q.Order)

	q = BuildProviderQuery(ProviderFilter{Sort: "online", SortBy: "price_low"})
	assert.Equal(t, "is_online DESC, last_seen DESC", q.Order)

	f := ProviderFilter{SortBy: "price-high"}.Applied()
	assert.Equal(t, SortPriceHigh, f.Sort)
	assert.Empty(t, f.SortBy)
}

func TestBuildTalentQuery_RatingOrder(t *testing.T) {
	q := BuildTalentQuery(TalentFilter{Sort: "rating"})
	assert.Equal(t, "rating_average DESC, verified DESC", q.Order)
}

func TestBuildTalentQuery(t *testing.T) {
	t.Run("category sentinel", func(t *testing.T) {
		q := BuildTalentQuery(TalentFilter{Category: "All"})
		assert.Empty(t, q.Conditions)
	})

	t.Run("category exact", func(t *testing.T) {
		q := BuildTalentQuery(TalentFilter{Category: "Skilled Trades"})
		require.Len(t, q.Conditions, 1)
		assert.Equal(t, "category = ?", q.Conditions[0].SQL)
		assert.Equal(t, []any{"Skilled Trades"}, q.Conditions[0].Args)
	})

	t.Run("q wins over search", func(t *testing.T) {
		q := BuildTalentQuery(TalentFilter{Q: "beads", Search: "wood"})
		require.Len(t, q.Conditions, 1)
		assert.Contains(t, q.Conditions[0].SQL, "plainto_tsquery")
		assert.Equal(t, []any{"beads"}, q.Conditions[0].Args)
	})

	t.Run("location and verified", func(t *testing.T) {
		q := BuildTalentQuery(TalentFilter{Location: "Lagos", Verified: "true"})
		assert.ElementsMatch(t, []string{"location_full ILIKE ?", "verified = ?"}, sqlOf(q))
	})
}

func TestOrders(t *testing.T) {
	tests := []struct {
		key      string
		provider string
		talent   string
	}{
		{"", defaultOrder, talentDefaultOrder},
		{"rating", defaultOrder, talentDefaultOrder},
		{"reviews", "rating_count DESC, rating_average DESC", "rating_count DESC, rating_average DESC"},
		{"recent", "created_at DESC", "created_at DESC"},
		{"verified", "verification_is_verified DESC, rating_average DESC", "verified DESC, rating_average DESC"},
		{"name", "name ASC", "name ASC"},
		{"price_low", "min_price ASC NULLS LAST", talentDefaultOrder},
		{"Price-High", "min_price DESC NULLS LAST", talentDefaultOrder},
		{"experience", "stats_completed_jobs DESC, rating_average DESC", talentDefaultOrder},
		{"online", "is_online DESC, last_seen DESC", talentDefaultOrder},
		{"unknown", defaultOrder, talentDefaultOrder},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.provider, ProviderOrder(tt.key))
			assert.Equal(t, tt.talent, TalentOrder(tt.key))
		})
	}
}
