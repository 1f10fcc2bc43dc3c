package splitplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitc/internal/item"
	"splitc/internal/splitoptions"
)

func bucketFilenames(p Plan) []string {
	var names []string
	for _, b := range p.Buckets {
		names = append(names, b.Filename)
	}
	return names
}

func TestBuildGroupsByCategoryAndCoLocatesImpl(t *testing.T) {
	items := []item.Item{
		{Kind: item.KindUseImport, Name: "use std::env", Category: item.CategoryImports},
		{Kind: item.KindStruct, Name: "Document", Category: item.CategoryDataType, Visibility: item.VisibilityPublic},
		{Kind: item.KindImplBlock, Name: "Document", Category: item.CategoryImplBlock},
		{Kind: item.KindFunction, Name: "helper", Category: item.CategoryHelper, Visibility: item.VisibilityPublic},
	}

	plan, warnings := Build(items, "lib", nil, splitoptions.Default())
	require.Empty(t, warnings)

	assert.Equal(t, []string{"lib_types", "lib_helpers"}, bucketFilenames(plan))

	var typesBucket *Bucket
	for _, b := range plan.Buckets {
		if b.Filename == "lib_types" {
			typesBucket = b
		}
	}
	require.NotNil(t, typesBucket)
	assert.Len(t, typesBucket.Items, 2, "struct and its impl block co-locate in the same bucket")
}

func TestBuildPreservesSourceOrderAcrossInterleavedTypesAndImpls(t *testing.T) {
	items := []item.Item{
		{Kind: item.KindStruct, Name: "ArgumentParser", Category: item.CategoryDataType, Visibility: item.VisibilityPublic},
		{Kind: item.KindImplBlock, Name: "ArgumentParser", Category: item.CategoryImplBlock},
		{Kind: item.KindStruct, Name: "FileProcessor", Category: item.CategoryDataType, Visibility: item.VisibilityPublic},
		{Kind: item.KindImplBlock, Name: "FileProcessor", Category: item.CategoryImplBlock},
		{Kind: item.KindStruct, Name: "Document", Category: item.CategoryDataType, Visibility: item.VisibilityPublic},
		{Kind: item.KindImplBlock, Name: "Document", Category: item.CategoryImplBlock},
	}

	plan, _ := Build(items, "lib", nil, splitoptions.Default())

	require.Len(t, plan.Buckets, 1)
	typesBucket := plan.Buckets[0]
	require.Len(t, typesBucket.Items, 6)

	var gotNames []string
	for _, it := range typesBucket.Items {
		gotNames = append(gotNames, it.Name)
	}
	wantNames := []string{"ArgumentParser", "ArgumentParser", "FileProcessor", "FileProcessor", "Document", "Document"}
	assert.Equal(t, wantNames, gotNames, "bucket must preserve interleaved struct/impl source order, not group all structs before all impls")
}

func TestBuildKeepsImportsAndConstantsInShim(t *testing.T) {
	items := []item.Item{
		{Kind: item.KindUseImport, Name: "use std::env", Category: item.CategoryImports},
		{Kind: item.KindConst, Name: "MAX", Category: item.CategoryConstants},
		{Kind: item.KindStruct, Name: "Thing", Category: item.CategoryDataType, Visibility: item.VisibilityPublic},
	}

	plan, _ := Build(items, "lib", nil, splitoptions.Default())

	assert.Len(t, plan.Shim.Items, 2)
	assert.Equal(t, "use std::env", plan.Shim.Items[0].Name)
	assert.Equal(t, "MAX", plan.Shim.Items[1].Name)
	assert.Equal(t, []string{"lib_types"}, plan.Shim.ModuleDecls)
}

func TestBuildKeepsEntryPointInShimOnlyWhenStemIsMain(t *testing.T) {
	items := []item.Item{
		{Kind: item.KindFunction, Name: "main", Category: item.CategoryEntryPoint, Auxiliary: item.Auxiliary{IsMain: true}},
	}

	mainPlan, _ := Build(items, "main", nil, splitoptions.Default())
	assert.Len(t, mainPlan.Shim.Items, 1)
	assert.Empty(t, mainPlan.Buckets)

	libPlan, _ := Build(items, "lib", nil, splitoptions.Default())
	assert.Empty(t, libPlan.Shim.Items)
	require.Len(t, libPlan.Buckets, 1)
	assert.Equal(t, "lib_entry", libPlan.Buckets[0].Filename)
}

func TestBuildResolvesFilenameCollisions(t *testing.T) {
	items := []item.Item{
		{Kind: item.KindStruct, Name: "Thing", Category: item.CategoryDataType, Visibility: item.VisibilityPublic},
	}

	plan, warnings := Build(items, "lib", []string{"lib_types"}, splitoptions.Default())

	require.Len(t, warnings, 1)
	assert.Equal(t, "lib_types", warnings[0].OriginalName)
	assert.Equal(t, "lib_types_1", warnings[0].ResolvedName)
	assert.Equal(t, []string{"lib_types_1"}, bucketFilenames(plan))
}

func TestBuildForcesSingletonRareCategoryToShimWhenNoFallbackExists(t *testing.T) {
	items := []item.Item{
		{Kind: item.KindMacroDef, Name: "only_macro", Category: item.CategoryMacros},
	}

	plan, _ := Build(items, "lib", nil, splitoptions.Default())

	require.Len(t, plan.Shim.Items, 1)
	assert.Equal(t, "only_macro", plan.Shim.Items[0].Name)
	assert.Empty(t, plan.Buckets)
}

func TestBuildMergesSingletonRareCategoryIntoFallbackBucket(t *testing.T) {
	items := []item.Item{
		{Kind: item.KindStruct, Name: "Thing", Category: item.CategoryDataType, Visibility: item.VisibilityPublic},
		{Kind: item.KindMacroDef, Name: "only_macro", Category: item.CategoryMacros},
	}

	plan, _ := Build(items, "lib", nil, splitoptions.Default())

	require.Len(t, plan.Buckets, 1)
	assert.Equal(t, "lib_types", plan.Buckets[0].Filename)
	assert.Len(t, plan.Buckets[0].Items, 2)
}

func TestBuildMergedRareSingletonKeepsItsSourcePositionNotAlwaysLast(t *testing.T) {
	items := []item.Item{
		{Kind: item.KindMacroDef, Name: "only_macro", Category: item.CategoryMacros},
		{Kind: item.KindStruct, Name: "Thing", Category: item.CategoryDataType, Visibility: item.VisibilityPublic},
	}

	plan, _ := Build(items, "lib", nil, splitoptions.Default())

	require.Len(t, plan.Buckets, 1)
	typesBucket := plan.Buckets[0]
	require.Len(t, typesBucket.Items, 2)
	assert.Equal(t, "only_macro", typesBucket.Items[0].Name, "macro preceded Thing in source, so it must merge in ahead of it, not after")
	assert.Equal(t, "Thing", typesBucket.Items[1].Name)
}

func TestBuildReexportsOnlyPublicByDefault(t *testing.T) {
	items := []item.Item{
		{Kind: item.KindStruct, Name: "Public", Category: item.CategoryDataType, Visibility: item.VisibilityPublic},
		{Kind: item.KindStruct, Name: "private", Category: item.CategoryDataType, Visibility: item.VisibilityPrivate},
	}

	plan, _ := Build(items, "lib", nil, splitoptions.Default())
	require.Len(t, plan.Shim.Reexports, 1)
	assert.Equal(t, "Public", plan.Shim.Reexports[0].Name)

	opts := splitoptions.Default()
	opts.ReexportPrivate = true
	plan, _ = Build(items, "lib", nil, opts)
	assert.Len(t, plan.Shim.Reexports, 2)
}
