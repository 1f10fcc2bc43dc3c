package splitemit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitc/internal/item"
	"splitc/internal/splitparse"
	"splitc/internal/splitplan"
	"splitc/internal/splitsource"
	"splitc/internal/splittestutil"
)

func TestBucketRendersPreludeAndItemsWithBlankLineSpacing(t *testing.T) {
	source := []byte("struct A;\nstruct B;\n")
	src, err := splitsource.New(source)
	require.NoError(t, err)

	b := &splitplan.Bucket{
		Category: item.CategoryDataType,
		Filename: "lib_types",
		Prelude:  "use crate::prelude::*;",
		Items: []item.Item{
			{Name: "A", BodySpan: splitsource.Span{Start: 0, End: 9}},
			{Name: "B", BodySpan: splitsource.Span{Start: 10, End: 19}},
		},
	}

	got, err := Bucket(src, b, 1)
	require.NoError(t, err)
	assert.Equal(t, "use crate::prelude::*;\n\nstruct A;\n\nstruct B;\n", got)
}

func TestBucketRenderingMatchesGolden(t *testing.T) {
	source := []byte("struct A;\nstruct B;\n")
	src, err := splitsource.New(source)
	require.NoError(t, err)

	b := &splitplan.Bucket{
		Filename: "lib_types",
		Prelude:  "use crate::prelude::*;",
		Items: []item.Item{
			{Name: "A", BodySpan: splitsource.Span{Start: 0, End: 9}},
			{Name: "B", BodySpan: splitsource.Span{Start: 10, End: 19}},
		},
	}

	got, err := Bucket(src, b, 1)
	require.NoError(t, err)

	fixture := &splittestutil.Fixture{Name: "bucket_render", ExpectedDir: "../../testdata/fixtures/bucket_render/expected"}
	splittestutil.CompareGolden(t, fixture, "rendered", got)
}

func TestBucketRejectsOutOfBoundsSpan(t *testing.T) {
	src, err := splitsource.New([]byte("struct A;\n"))
	require.NoError(t, err)

	b := &splitplan.Bucket{
		Items: []item.Item{{Name: "A", BodySpan: splitsource.Span{Start: 0, End: 100}}},
	}

	_, err = Bucket(src, b, 1)
	assert.Error(t, err)
}

func TestShimRendersModDeclsThenReexportsThenItems(t *testing.T) {
	source := []byte("use std::env;\n")
	src, err := splitsource.New(source)
	require.NoError(t, err)

	useItem := item.Item{Name: "use std::env", BodySpan: splitsource.Span{Start: 0, End: 13}}
	typeItem := item.Item{Name: "Thing", Visibility: item.VisibilityPublic}

	plan := splitplan.Plan{
		Buckets: []*splitplan.Bucket{
			{Filename: "lib_types", Items: []item.Item{typeItem}},
		},
		Shim: splitplan.Shim{
			Filename:    "lib",
			ModuleDecls: []string{"lib_types"},
			Reexports:   []item.Item{typeItem},
			Items:       []item.Item{useItem},
		},
	}

	got, err := Shim(src, splitparse.Result{}, plan, 1)
	require.NoError(t, err)
	assert.Equal(t, "mod lib_types;\n\npub use crate::lib_types::Thing;\n\nuse std::env;\n", got)
}

func TestFinalizeAlwaysEndsWithExactlyOneNewline(t *testing.T) {
	assert.Equal(t, "\n", finalize(""))
	assert.Equal(t, "a\n", finalize("a"))
	assert.Equal(t, "a\n", finalize("a\n\n\n"))
}
