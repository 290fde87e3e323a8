package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{
			name: "disjoint spans",
			a:    Span{File: 1, Start: 10, End: 20},
			b:    Span{File: 1, Start: 30, End: 40},
			want: Span{File: 1, Start: 10, End: 40},
		},
		{
			name: "nested span",
			a:    Span{File: 1, Start: 10, End: 40},
			b:    Span{File: 1, Start: 15, End: 20},
			want: Span{File: 1, Start: 10, End: 40},
		},
		{
			name: "other file ignored",
			a:    Span{File: 1, Start: 10, End: 20},
			b:    Span{File: 2, Start: 0, End: 50},
			want: Span{File: 1, Start: 10, End: 20},
		},
		{
			name: "empty receiver takes other",
			a:    Span{File: 1},
			b:    Span{File: 1, Start: 4, End: 8},
			want: Span{File: 1, Start: 4, End: 8},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Fatalf("Cover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanString(t *testing.T) {
	sp := Span{File: 3, Start: 7, End: 12}
	if got := sp.String(); got != "3:7-12" {
		t.Fatalf("String() = %q", got)
	}
	if sp.Len() != 5 {
		t.Fatalf("Len() = %d", sp.Len())
	}
}
