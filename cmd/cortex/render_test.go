package main

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
)

func TestParseResponseIndices(t *testing.T) {
	r := parseResponse(atom.TypeMultipleChoice, "1, 3")
	if !reflect.DeepEqual(r.Indices, []int{1, 3}) {
		t.Errorf("indices: %v", r.Indices)
	}
}

func TestParseResponseList(t *testing.T) {
	r := parseResponse(atom.TypeOrderedListRecall, "Physical, Data Link, Network")
	want := []string{"Physical", "Data Link", "Network"}
	if !reflect.DeepEqual(r.List, want) {
		t.Errorf("list: %v", r.List)
	}
}

func TestParseResponseMapping(t *testing.T) {
	r := parseResponse(atom.TypeMatching, "1=b, 2=a")
	want := map[int]int{0: 1, 1: 0}
	if !reflect.DeepEqual(r.Mapping, want) {
		t.Errorf("mapping: %v", r.Mapping)
	}
}

func TestParseResponseCoefficients(t *testing.T) {
	r := parseResponse(atom.TypeEquationBalancing, "CH4=1, O2=2")
	want := map[string]int{"CH4": 1, "O2": 2}
	if !reflect.DeepEqual(r.Coefficients, want) {
		t.Errorf("coefficients: %v", r.Coefficients)
	}
}

func TestParseResponseFadedParsons(t *testing.T) {
	r := parseResponse(atom.TypeFadedParsons, "2,1 / if=Gi0/1")
	if !reflect.DeepEqual(r.Indices, []int{2, 1}) {
		t.Errorf("indices: %v", r.Indices)
	}
	if r.Blanks["if"] != "Gi0/1" {
		t.Errorf("blanks: %v", r.Blanks)
	}
}

func TestShowChoicesKeyFeature(t *testing.T) {
	a := atom.New(atom.TypeKeyFeature, "Which symptoms point at a duplex mismatch?", "")
	a.Payload = []byte(`{"options":["Late collisions","Port err-disabled","CRC errors","Interface up"],"key":[0,2],"required_count":2}`)
	var buf bytes.Buffer
	showChoices(&buf, a, nil)
	out := buf.String()
	for _, want := range []string{"1. Late collisions", "3. CRC errors", "4. Interface up"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShowChoicesEquationCompounds(t *testing.T) {
	a := atom.New(atom.TypeEquationBalancing, "Balance the combustion of methane.", "")
	a.Payload = []byte(`{"coefficients":{"CH4":1,"O2":2,"CO2":1,"H2O":2}}`)
	var buf bytes.Buffer
	showChoices(&buf, a, nil)
	if got := buf.String(); got != "  compounds: CH4, CO2, H2O, O2\n" {
		t.Errorf("output: %q", got)
	}
}

func TestParseResponseConfidence(t *testing.T) {
	r := parseResponse(atom.TypeConfidenceSlider, "110 @ 80")
	if r.Text != "110" || r.Confidence != 80 {
		t.Errorf("response: %+v", r)
	}
}
