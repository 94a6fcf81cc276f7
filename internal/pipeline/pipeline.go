// Package pipeline wires the organization stages together: discover,
// cluster, refine, enrich, name, merge, extract, plan. Stages run
// strictly sequentially; only per-record enrichment fans out.
package pipeline

import (
	"context"

	"github.com/felixgeelhaar/shotsort/internal/catalog"
	"github.com/felixgeelhaar/shotsort/internal/cluster"
	"github.com/felixgeelhaar/shotsort/internal/config"
	"github.com/felixgeelhaar/shotsort/internal/keywords"
	"github.com/felixgeelhaar/shotsort/internal/merger"
	"github.com/felixgeelhaar/shotsort/internal/namer"
	"github.com/felixgeelhaar/shotsort/internal/observe"
	"github.com/felixgeelhaar/shotsort/internal/ocr"
	"github.com/felixgeelhaar/shotsort/internal/similarity"
)

type Pipeline struct {
	opts   config.Options
	obs    *observe.Observer
	namer  *namer.Namer
	engine ocr.Engine        // nil when no OCR service is configured
	hasher similarity.Hasher
}

func New(opts config.Options, obs *observe.Observer, n *namer.Namer, engine ocr.Engine, hasher similarity.Hasher) *Pipeline {
	if hasher == nil {
		hasher = similarity.PerceptionHasher{}
	}
	return &Pipeline{
		opts:   opts,
		obs:    obs,
		namer:  n,
		engine: engine,
		hasher: hasher,
	}
}

// BuildPlan runs every stage up to (but excluding) execution and
// returns the final organization plan. The union of plan members and
// uncategorized records equals the discovered catalog exactly.
func (p *Pipeline) BuildPlan(ctx context.Context) (*catalog.Plan, error) {
	ctx, span := p.obs.StartSpan(ctx, "pipeline.build_plan")
	defer span.End()

	records, err := catalog.Scan(p.opts.TargetDir, p.opts.Patterns, func(path string, err error) {
		p.obs.Warn("skipping unreadable entry "+path, err)
	})
	if err != nil {
		return nil, err
	}
	p.obs.Log().Info().Int("count", len(records)).Str("dir", p.opts.TargetDir).Msg("discovered screenshots")

	sessions := cluster.ByTime(records, p.opts.SessionGap)
	p.obs.Log().Info().Int("sessions", len(sessions)).Msg("time-based clustering")

	if p.opts.EnableSimilarity {
		_, span := p.obs.StartSpan(ctx, "pipeline.refine")
		similarity.EnrichHashes(records, p.hasher, p.opts.Workers, func(path string, err error) {
			p.obs.Warn("could not hash "+path, err)
		})
		sessions = similarity.Refine(sessions, p.opts.SimilarityThreshold)
		span.End()
		p.obs.Log().Info().Int("sessions", len(sessions)).Msg("similarity refinement")
	}

	if p.opts.SmartNames {
		_, span := p.obs.StartSpan(ctx, "pipeline.enrich_text")
		p.enrichText(ctx, records)
		span.End()
	}

	p.namer.NameAll(ctx, sessions, p.opts.SmartNames)

	if p.opts.EnableMerge {
		_, span := p.obs.StartSpan(ctx, "pipeline.merge")
		sessions = merger.Merge(ctx, sessions, merger.Config{
			Threshold: p.opts.MergeThreshold,
			MaxGap:    p.opts.MergeMaxGap,
		}, p.namer)
		// Merged sessions whose keyword path produced nothing fall back
		// to the timestamp default.
		p.namer.FillDefaults(sessions)
		span.End()
		p.obs.Log().Info().Int("sessions", len(sessions)).Msg("keyword merging")
	}

	sessions, uncategorized := ExtractUncategorized(sessions)

	return &catalog.Plan{
		Root:          p.opts.TargetDir,
		Sessions:      sessions,
		Uncategorized: uncategorized,
	}, nil
}

// enrichText extracts OCR text per record and derives each record's
// keyword set. Without a configured engine every record simply ends up
// keyword-less and naming falls through to timestamps.
func (p *Pipeline) enrichText(ctx context.Context, records []*catalog.Record) {
	if p.engine == nil {
		p.obs.Warn("no OCR service configured, smart names degrade to timestamps", nil)
		return
	}

	ocr.Enrich(ctx, records, p.engine, p.opts.Workers, func(path string, err error) {
		p.obs.Warn("OCR failed for "+path, err)
	})
	for _, r := range records {
		if r.Text != "" {
			r.Keywords = keywords.Tokenize(r.Text)
		}
	}
}

// ExtractUncategorized removes size-1 sessions from the list and
// collects their lone members. Runs after merging, so a singleton that
// merging could have grown is never flagged.
func ExtractUncategorized(sessions []*catalog.Session) ([]*catalog.Session, []*catalog.Record) {
	var kept []*catalog.Session
	var uncategorized []*catalog.Record

	for _, s := range sessions {
		if s.Count() == 1 {
			uncategorized = append(uncategorized, s.Records[0])
			continue
		}
		kept = append(kept, s)
	}

	return kept, uncategorized
}
