package ir

import (
	"testing"

	"jlower/internal/source"
	"jlower/internal/types"
)

func TestCountLit(t *testing.T) {
	in := types.NewInterner()
	sp := source.Span{File: 1, Start: 2, End: 5}
	e, err := CountLit(in, 3, sp)
	if err != nil {
		t.Fatalf("CountLit: %v", err)
	}
	lit, ok := e.Data.(LiteralData)
	if !ok || lit.Kind != LiteralInt || lit.IntValue != 3 || lit.Text != "3" {
		t.Fatalf("CountLit(3) = %+v", e.Data)
	}
	if e.Type != in.Builtins().Int || e.Span != sp {
		t.Fatalf("CountLit(3) type/span = %d/%v", e.Type, e.Span)
	}
}

func TestCountLitRejectsOverflow(t *testing.T) {
	in := types.NewInterner()
	if _, err := CountLit(in, 1<<31, source.Span{}); err == nil {
		t.Fatal("expected an error for a count beyond int32")
	}
	if _, err := CountLit(in, -1<<31, source.Span{}); err != nil {
		t.Fatalf("min int32 rejected: %v", err)
	}
}
