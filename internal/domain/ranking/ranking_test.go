package ranking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestRank_DesempatePorClave(t *testing.T) {
	ranks := Rank([]Entry{
		{Key: "B", Amount: d(100)},
		{Key: "A", Amount: d(100)},
		{Key: "C", Amount: d(300)},
	})
	assert.Equal(t, map[string]int{"C": 1, "A": 2, "B": 3}, ranks)
}

func TestShare(t *testing.T) {
	assert.True(t, Share(d(1), d(3)).Equal(decimal.RequireFromString("33.3")))
	assert.True(t, Share(d(2), d(3)).Equal(decimal.RequireFromString("66.7")))
	assert.True(t, Share(d(5), d(0)).IsZero())
	assert.True(t, Total([]Entry{{Amount: d(2)}, {Amount: d(3)}}).Equal(d(5)))
}

func TestMargin(t *testing.T) {
	assert.True(t, Margin(d(25), d(100)).Equal(d(25)))
	assert.True(t, Margin(d(25), d(0)).IsZero())
	assert.True(t, Margin(d(25), d(-10)).IsZero())
}

func TestCompare(t *testing.T) {
	cases := []struct {
		name      string
		prev, cur int
		latest    bool
		want      Movement
		closedNow bool
	}{
		{"nueva", 0, 3, false, Movement{Status: StatusNew, Label: "新店", Class: "store-new"}, false},
		{"cerrada", 2, 0, false, Movement{Status: StatusClosed, Label: "閉店", Class: "store-closed"}, false},
		{"cerrada en el último año", 2, 0, true, Movement{}, true},
		{"sube", 5, 2, false, Movement{Status: StatusUp, Icon: "↑3", Class: "rank-up"}, false},
		{"baja", 1, 4, false, Movement{Status: StatusDown, Icon: "↓3", Class: "rank-down"}, false},
		{"igual", 2, 2, true, Movement{Status: StatusSame, Icon: "→", Class: "rank-same"}, false},
		{"sin datos", 0, 0, false, Movement{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, closed := Compare(tc.prev, tc.cur, tc.latest)
			assert.Equal(t, tc.want, m)
			assert.Equal(t, tc.closedNow, closed)
		})
	}
}

func TestGap(t *testing.T) {
	gap, class, icon := Gap(5, 2)
	assert.Equal(t, 3, gap)
	assert.Equal(t, "gap-up", class)
	assert.Equal(t, "売5位 ↗", icon)

	gap, class, icon = Gap(1, 4)
	assert.Equal(t, -3, gap)
	assert.Equal(t, "gap-down", class)
	assert.Equal(t, "売1位 ↘", icon)

	_, class, icon = Gap(2, 2)
	assert.Equal(t, "gap-same", class)
	assert.Equal(t, "-", icon)
}

func date(y, m, dd int) time.Time { return time.Date(y, time.Month(m), dd, 0, 0, 0, 0, time.UTC) }

func TestLatestPerYear(t *testing.T) {
	dates := []time.Time{date(2023, 3, 31), date(2023, 12, 31), date(2024, 3, 15), date(2024, 3, 31), date(2024, 6, 30)}

	all := LatestPerYear(dates, 0)
	assert.Equal(t, []Bucket{{Year: 2023, Date: date(2023, 12, 31)}, {Year: 2024, Date: date(2024, 6, 30)}}, all)

	march := LatestPerYear(dates, 3)
	assert.Equal(t, []Bucket{{Year: 2023, Month: 3, Date: date(2023, 3, 31)}, {Year: 2024, Month: 3, Date: date(2024, 3, 31)}}, march)

	assert.Empty(t, LatestPerYear(dates, 7))
	assert.Equal(t, []int{2023, 2024}, Years(dates))
	assert.Equal(t, map[int][]int{2023: {3, 12}, 2024: {3, 6}}, MonthsByYear(dates))
}

func TestSortYear(t *testing.T) {
	years := []int{2022, 2023, 2024}

	assert.Equal(t, 2024, SortYear(2024, years, map[int]int{2022: 10, 2023: 10, 2024: 5}, 10), "la mitad alcanza")
	assert.Equal(t, 2023, SortYear(2024, years, map[int]int{2022: 8, 2023: 9, 2024: 1}, 10), "pocos datos: año con más grupos")
	assert.Equal(t, 2023, SortYear(2024, years, map[int]int{2022: 9, 2023: 9, 2024: 1}, 10), "empate: el más reciente")
	assert.Equal(t, 2024, SortYear(2024, years, map[int]int{}, 10), "sin datos en ningún año")
}

func TestEffectiveRank(t *testing.T) {
	years := []int{2022, 2023, 2024}
	assert.Equal(t, 2, EffectiveRank(map[int]int{2024: 2}, 2024, years))
	assert.Equal(t, 4, EffectiveRank(map[int]int{2022: 1, 2023: 4}, 2024, years))
	assert.Equal(t, NoRank, EffectiveRank(map[int]int{}, 2024, years))
}
