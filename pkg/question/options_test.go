package question_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/appform-io/formkit/pkg/question"
)

func TestParseOptionsStaticList(t *testing.T) {
	src, err := question.ParseOptions(json.RawMessage(`[
		{"label": "First year", "value": "1"},
		{"label": "Second year", "value": 2}
	]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []question.Option{
		{Label: "First year", Value: "1"},
		{Label: "Second year", Value: "2"},
	}
	if diff := cmp.Diff(want, src.Static); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOptionsRemoteDataset(t *testing.T) {
	src, err := question.ParseOptions(json.RawMessage(`{"data": "schools"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if src.Remote == nil || src.Remote.Data != question.RemoteDataSchools {
		t.Fatalf("expected schools marker, got %+v", src.Remote)
	}
}

func TestParseOptionsUnknownDataset(t *testing.T) {
	if _, err := question.ParseOptions(json.RawMessage(`{"data": "planets"}`)); err == nil {
		t.Fatal("expected error for unknown dataset")
	}
}

func TestParseOptionsYearRequiresBounds(t *testing.T) {
	if _, err := question.ParseOptions(json.RawMessage(`{"data": "year"}`)); err == nil {
		t.Fatal("year without bounds must be rejected")
	}
	if _, err := question.ParseOptions(json.RawMessage(`{"data": "year", "min": 2030, "max": 2026}`)); err == nil {
		t.Fatal("inverted year bounds must be rejected")
	}
}

func TestYearOptionsExpansion(t *testing.T) {
	src, err := question.ParseOptions(json.RawMessage(`{"data": "year", "min": 2026, "max": 2028}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []question.Option{
		{Label: "2026", Value: "2026"},
		{Label: "2027", Value: "2027"},
		{Label: "2028", Value: "2028"},
	}
	if diff := cmp.Diff(want, src.Remote.YearOptions()); diff != "" {
		t.Fatalf("year options mismatch (-want +got):\n%s", diff)
	}
}
