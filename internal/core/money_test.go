package core

import (
	"encoding/json"
	"testing"
)

func TestParseSignedCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"-123,45", -12345, true},
		{"+5", 500, true},
		{"12.345", 1234, true}, // rounds down
		{"12.346", 1235, true}, // rounds up
		{"1 234,56", 123456, true},
		{"", 0, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseSignedCents(tc.in)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestMoneyMarshalJSON(t *testing.T) {
	cases := []struct {
		m    Money
		want string
	}{
		{Money{Cents: 123456}, "1234.56"},
		{Money{Cents: -5}, "-0.05"},
		{Money{}, "0.00"},
	}
	for i, tc := range cases {
		b, err := json.Marshal(tc.m)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if string(b) != tc.want {
			t.Fatalf("case %d: expected %s, got %s", i, tc.want, b)
		}
	}
}

func TestMoneyUnmarshalJSON(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`-123.45`), &m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Cents != -12345 {
		t.Fatalf("expected -12345, got %d", m.Cents)
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(33.3333); got != 33.33 {
		t.Fatalf("expected 33.33, got %v", got)
	}
	if got := Round2(66.666); got != 66.67 {
		t.Fatalf("expected 66.67, got %v", got)
	}
}
