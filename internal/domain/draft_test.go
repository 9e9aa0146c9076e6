package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mergeFixture struct {
	Name    string      `json:"name"`
	Nested  mergeNested `json:"nested"`
	Targets []string    `json:"targets"`
	Extra   float64     `json:"extra"`
}

type mergeNested struct {
	Kept    string `json:"kept"`
	Changed int    `json:"changed"`
}

func defaultFixture() mergeFixture {
	return mergeFixture{
		Name:    "default",
		Nested:  mergeNested{Kept: "keep-me", Changed: 1},
		Targets: []string{"a", "b"},
		Extra:   0.5,
	}
}

func TestDecodeDraftMergesObjects(t *testing.T) {
	out := defaultFixture()
	DecodeDraft([]byte(`{"name":"stored","nested":{"changed":9}}`), &out)

	assert.Equal(t, "stored", out.Name)
	assert.Equal(t, 9, out.Nested.Changed)
	// untouched nested keys survive from the defaults
	assert.Equal(t, "keep-me", out.Nested.Kept)
	assert.Equal(t, []string{"a", "b"}, out.Targets)
}

func TestDecodeDraftReplacesArrays(t *testing.T) {
	out := defaultFixture()
	DecodeDraft([]byte(`{"targets":["x"]}`), &out)

	assert.Equal(t, []string{"x"}, out.Targets)
}

func TestDecodeDraftIgnoresMalformedPayload(t *testing.T) {
	out := defaultFixture()
	DecodeDraft([]byte(`{"name":`), &out)

	assert.Equal(t, defaultFixture(), out)
}

func TestDecodeDraftFallsBackOnTypeMismatch(t *testing.T) {
	out := defaultFixture()
	// a field that changed type across schema versions
	DecodeDraft([]byte(`{"extra":"not-a-number"}`), &out)

	assert.Equal(t, defaultFixture(), out)
}

func TestDecodeDraftUnknownKeysIgnored(t *testing.T) {
	out := defaultFixture()
	DecodeDraft([]byte(`{"retired_field":true,"name":"stored"}`), &out)

	assert.Equal(t, "stored", out.Name)
}
