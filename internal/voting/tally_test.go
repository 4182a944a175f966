package voting

import (
	"reflect"
	"testing"
)

func TestTally(t *testing.T) {
	counts, order := Tally([]string{"a", "b", "a", "c", "a", "b"})

	want := map[string]int{"a": 3, "b": 2, "c": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("counts = %v, want %v", counts, want)
	}
	if !reflect.DeepEqual(order, []string{"a", "b", "c"}) {
		t.Errorf("order = %v, want [a b c]", order)
	}
}

func TestTallyEmpty(t *testing.T) {
	counts, order := Tally(nil)
	if len(counts) != 0 || len(order) != 0 {
		t.Errorf("expected empty tally, got counts=%v order=%v", counts, order)
	}
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name  string
		votes []string
		want  string
		ok    bool
	}{
		{
			name:  "unique strict maximum wins",
			votes: []string{"a", "b", "b", "b", "c", "c"}, // a:1 b:3 c:2
			want:  "b",
			ok:    true,
		},
		{
			name:  "tie at the maximum yields no winner",
			votes: []string{"a", "a", "a", "b", "b", "b", "c"}, // a:3 b:3 c:1
			want:  "",
			ok:    false,
		},
		{
			name:  "strict leader after an early tie wins",
			votes: []string{"a", "a", "b", "b", "c", "c", "c"}, // a:2 b:2 c:3
			want:  "c",
			ok:    true,
		},
		{
			name:  "single voter",
			votes: []string{"a"},
			want:  "a",
			ok:    true,
		},
		{
			name:  "no votes",
			votes: nil,
			want:  "",
			ok:    false,
		},
		{
			name:  "three-way tie",
			votes: []string{"a", "b", "c"},
			want:  "",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Winner(tt.votes)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Winner(%v) = (%q, %v), want (%q, %v)", tt.votes, got, ok, tt.want, tt.ok)
			}
		})
	}
}
