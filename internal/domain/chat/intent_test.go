package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intents
	}{
		{name: "reservation japanese", text: "予約できますか", want: Intents{Reservation: true}},
		{name: "reservation romanized", text: "I want a reservation", want: Intents{Reservation: true}},
		{name: "dietary japanese", text: "ハラール対応はありますか", want: Intents{Dietary: true}},
		{name: "dietary romanized lowercase", text: "do you have halal options", want: Intents{Dietary: true}},
		{name: "dietary romanized mixed case", text: "Halal menu?", want: Intents{Dietary: true}},
		{name: "both intents", text: "ハラールの席を予約したい", want: Intents{Reservation: true, Dietary: true}},
		{name: "embedded in longer text", text: "明日の夜に予約をお願いしたいのですが", want: Intents{Reservation: true}},
		{name: "no intent", text: "チキンカレーの材料は？", want: Intents{}},
		{name: "empty", text: "", want: Intents{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}
