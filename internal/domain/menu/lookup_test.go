package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func catalog() []*Item {
	return []*Item{
		{Name: "チキンカレー", Ingredients: "鶏肉,玉ねぎ,スパイス", Allergens: "なし", Halal: true},
		{Name: "ビーフカレー", Ingredients: "牛肉,玉ねぎ,スパイス", Allergens: "牛肉アレルギー", Halal: false},
		{Name: "野菜カレー", Ingredients: "ジャガイモ,ニンジン,玉ねぎ,スパイス", Allergens: "なし", Halal: true},
	}
}

func TestFindExact(t *testing.T) {
	items := catalog()

	item := FindExact("チキンカレー", items)
	if assert.NotNil(t, item) {
		assert.Equal(t, "鶏肉,玉ねぎ,スパイス", item.Ingredients)
	}

	assert.Nil(t, FindExact("ラーメン", items))
	assert.Nil(t, FindExact("", items))
}

func TestFindFuzzy(t *testing.T) {
	items := catalog()

	tests := []struct {
		name     string
		query    string
		want     string
		wantOK   bool
	}{
		{name: "single character edit", query: "チキンカレ", want: "チキンカレー", wantOK: true},
		{name: "exact name", query: "野菜カレー", want: "野菜カレー", wantOK: true},
		{name: "below threshold", query: "寿司", wantOK: false},
		{name: "empty query", query: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindFuzzy(tt.query, items)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSimilarityBounds(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("abc", "abc"))
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("ab", "xy"))

	// One edit out of six runes.
	score := Similarity("チキンカレ", "チキンカレー")
	assert.InDelta(t, 5.0/6.0, score, 1e-9)
}

func TestContainsAnyNamePrefersLongestName(t *testing.T) {
	items := []*Item{
		{Name: "カレー"},
		{Name: "チキンカレー"},
	}

	name, ok := ContainsAnyName("チキンカレーの材料を教えて", items)
	assert.True(t, ok)
	assert.Equal(t, "チキンカレー", name)

	name, ok = ContainsAnyName("カレーはありますか", items)
	assert.True(t, ok)
	assert.Equal(t, "カレー", name)

	_, ok = ContainsAnyName("おすすめはなんですか", items)
	assert.False(t, ok)
}

func TestFilterHalal(t *testing.T) {
	halal := FilterHalal(catalog())
	assert.Len(t, halal, 2)
	assert.Equal(t, "チキンカレー", halal[0].Name)
	assert.Equal(t, "野菜カレー", halal[1].Name)
}
