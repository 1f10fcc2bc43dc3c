// Package splitcore wires the four pipeline stages — splitparse, classify,
// splitplan, splitemit — into the single entry point the CLI and any other
// caller drives a split run through.
package splitcore

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"splitc/internal/classify"
	"splitc/internal/item"
	"splitc/internal/splitcache"
	"splitc/internal/splitemit"
	"splitc/internal/splitlog"
	"splitc/internal/splitoptions"
	"splitc/internal/splitoutput"
	"splitc/internal/splitparse"
	"splitc/internal/splitplan"
	"splitc/internal/splitsource"
	"splitc/internal/splitterrors"
)

// RunResult is Split's output: the files it would write, in deterministic
// order, plus every diagnostic collected along the way.
type RunResult struct {
	RunID       string
	Files       []splitoutput.FileOutput
	Diagnostics []splitoutput.Diagnostic
}

// logger is the package-level sink for Split's stage-transition tracing.
// It defaults to discarding everything; SetLogger lets the CLI point it at
// a real handler once, at startup.
var logger = splitlog.NewDiscard()

// SetLogger replaces the logger Split uses to trace stage transitions.
func SetLogger(l *slog.Logger) {
	logger = l
}

// cache is the package-level parse-result cache. Nil (the default) means
// every Split call re-parses; SetCache lets the CLI point it at a
// directory-backed splitcache.Cache once, at startup.
var cache *splitcache.Cache

// SetCache replaces the cache Split consults before running stage A.
func SetCache(c *splitcache.Cache) {
	cache = c
}

// parseOrCache runs stage A, consulting cache first when one is set and
// storing a fresh result back into it on a miss.
func parseOrCache(ctx context.Context, src *splitsource.Text, source []byte) (splitparse.Result, error) {
	if cache != nil {
		key := splitcache.Key(source)
		if items, head, tail, ok, err := cache.Get(key); err == nil && ok {
			return splitparse.Result{Items: items, HeadTrivia: head, TailTrivia: tail}, nil
		}
		parsed, err := splitparse.Parse(ctx, src)
		if err != nil {
			return splitparse.Result{}, err
		}
		_ = cache.Put(key, parsed.Items, parsed.HeadTrivia, parsed.TailTrivia)
		return parsed, nil
	}
	return splitparse.Parse(ctx, src)
}

// Split runs the full pipeline over source, named stem in its original
// directory, producing a RunResult. existingNames lists the stems already
// present in the target directory so the Planner can avoid filename
// collisions. The returned error, when non-nil, is always a
// *splitterrors.SplitError.
func Split(ctx context.Context, source []byte, stem string, existingNames []string, opts splitoptions.Options) (RunResult, error) {
	runID := uuid.New().String()
	log := logger.With("runId", runID, "stem", stem)
	log.Debug("split started")

	if err := ctx.Err(); err != nil {
		return RunResult{}, splitterrors.Wrap(splitterrors.InternalError, "context cancelled before parsing began", err)
	}

	src, err := splitsource.New(source)
	if err != nil {
		return RunResult{}, splitterrors.Wrap(splitterrors.InvalidSource, "source failed validation", err)
	}

	parsed, err := parseOrCache(ctx, src, source)
	if err != nil {
		return RunResult{}, splitterrors.Wrap(splitterrors.ParseError, "parsing failed", err)
	}
	log.Debug("parsed", "items", itemCount(parsed.Items))

	if err := ctx.Err(); err != nil {
		return RunResult{}, splitterrors.Wrap(splitterrors.InternalError, "context cancelled after parsing", err)
	}

	classified, classifyWarnings := classify.Classify(parsed.Items, classify.DefaultDocPrefixRules())
	log.Debug("classified", "warnings", len(classifyWarnings))

	if err := ctx.Err(); err != nil {
		return RunResult{}, splitterrors.Wrap(splitterrors.InternalError, "context cancelled after classification", err)
	}

	plan, collisionWarnings := splitplan.Build(classified, stem, existingNames, opts)
	log.Debug("planned", "buckets", len(plan.Buckets), "collisions", len(collisionWarnings))

	if err := ctx.Err(); err != nil {
		return RunResult{}, splitterrors.Wrap(splitterrors.InternalError, "context cancelled after planning", err)
	}

	var diagnostics []splitoutput.Diagnostic
	for _, w := range classifyWarnings {
		diagnostics = append(diagnostics, splitoutput.Diagnostic{
			Code:     string(splitterrors.ClassificationFallthrough),
			Severity: splitoutput.SeverityWarning,
			Message:  "item classified as Other, no rule matched",
			ItemName: w.ItemName,
		})
	}
	for _, w := range collisionWarnings {
		diagnostics = append(diagnostics, splitoutput.Diagnostic{
			Code:     string(splitterrors.PlanCollision),
			Severity: splitoutput.SeverityWarning,
			Message:  "generated filename " + w.OriginalName + " collided, renamed to " + w.ResolvedName,
			ItemName: w.ResolvedName,
		})
	}

	var files []splitoutput.FileOutput

	if opts.EmitShim {
		shimText, err := splitemit.Shim(src, parsed, plan, opts.BlankLinesBetweenItems)
		if err != nil {
			return RunResult{}, splitterrors.Wrap(splitterrors.EmitInvariantViolation, "rendering shim failed", err)
		}
		files = append(files, splitoutput.FileOutput{Filename: plan.Shim.Filename + ".rs", Content: shimText})
	}

	for _, b := range plan.Buckets {
		text, err := splitemit.Bucket(src, b, opts.BlankLinesBetweenItems)
		if err != nil {
			return RunResult{}, splitterrors.Wrap(splitterrors.EmitInvariantViolation, "rendering bucket "+b.Filename+" failed", err)
		}
		files = append(files, splitoutput.FileOutput{Filename: b.Filename + ".rs", Content: text})
	}

	splitoutput.MultiFieldSort(&diagnostics, []splitoutput.SortCriteria{
		{Field: "Code"}, {Field: "ItemName"},
	})

	log.Debug("split finished", "files", len(files), "diagnostics", len(diagnostics))

	return RunResult{
		RunID:       runID,
		Files:       files,
		Diagnostics: diagnostics,
	}, nil
}

// itemCount is a small helper used by Split's "parsed" debug log line.
func itemCount(items []item.Item) int {
	return len(items)
}
