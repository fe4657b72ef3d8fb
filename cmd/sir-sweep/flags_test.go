package main

import (
	"flag"
	"io"
	"testing"
)

func TestFloatListParsesCommaSeparatedValues(t *testing.T) {
	list := floatList{1}
	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(&list, "betas", "")
	if err := fs.Parse([]string{"-betas", "0.1, 0.25,,2"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []float64{0.1, 0.25, 2}
	if len(list) != len(want) {
		t.Fatalf("list = %v, want %v", list, want)
	}
	for i := range want {
		if list[i] != want[i] {
			t.Fatalf("list = %v, want %v", list, want)
		}
	}
	if got := list.String(); got != "0.1,0.25,2" {
		t.Fatalf("String() = %q", got)
	}
}

func TestFloatListRejectsBadValues(t *testing.T) {
	for _, in := range []string{"", "abc", "0.1,-1", "NaN"} {
		var list floatList
		if err := list.Set(in); err == nil {
			t.Fatalf("Set(%q) succeeded, want error", in)
		}
	}
}

func TestAttackRate(t *testing.T) {
	var r scenarioResult
	if r.attackRate() != 0 {
		t.Fatal("empty result should have zero attack rate")
	}
	r.res.Final.Susceptible = 25
	r.res.Final.Recovered = 75
	if got := r.attackRate(); got != 0.75 {
		t.Fatalf("attackRate() = %v, want 0.75", got)
	}
}
