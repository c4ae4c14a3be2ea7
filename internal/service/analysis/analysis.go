// Package analysis orchestrates commit loading, timeline layout, and
// derived metrics behind a single service facade shared by the CLI and
// the MCP server.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/chronocode/chrono/internal/analyzer"
	"github.com/chronocode/chrono/internal/cache"
	"github.com/chronocode/chrono/internal/store"
	"github.com/chronocode/chrono/internal/timeline"
	"github.com/chronocode/chrono/internal/vcs"
	"github.com/chronocode/chrono/pkg/config"
	"github.com/chronocode/chrono/pkg/models"
)

// Service orchestrates timeline and metric operations.
type Service struct {
	config   *config.Config
	commits  store.CommitStore
	analyses store.AnalysisStore
	cache    *cache.Cache
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithCommitStore sets the commit source (for testing).
func WithCommitStore(cs store.CommitStore) Option {
	return func(s *Service) {
		s.commits = cs
	}
}

// WithAnalysisStore sets the analysis document store.
func WithAnalysisStore(as store.AnalysisStore) Option {
	return func(s *Service) {
		s.analyses = as
	}
}

// WithOpener sets the VCS opener used by the default commit store.
func WithOpener(opener vcs.Opener) Option {
	return func(s *Service) {
		s.commits = store.NewGitStore(
			store.WithOpener(opener),
			store.WithDays(s.config.Analysis.Days),
		)
	}
}

// New creates a new analysis service.
func New(opts ...Option) *Service {
	s := &Service{
		config: config.LoadOrDefault(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.commits == nil {
		s.commits = store.NewGitStore(store.WithDays(s.config.Analysis.Days))
	}
	if s.analyses == nil {
		s.analyses = store.NewFileStore(s.config.Analysis.File)
	}
	if s.cache == nil {
		c, err := cache.New(s.config.Cache.Dir, s.config.Cache.TTL, s.config.Cache.Enabled)
		if err != nil {
			c, _ = cache.New("", 0, false)
		}
		s.cache = c
	}
	return s
}

// Config returns the active configuration.
func (s *Service) Config() *config.Config {
	return s.config
}

// LoadCommits returns the repository's commit history.
func (s *Service) LoadCommits(ctx context.Context, repoPath string) ([]models.Commit, error) {
	return s.commits.LoadCommits(ctx, repoPath)
}

// LoadAnalyses returns stored commit analyses matching the filter.
func (s *Service) LoadAnalyses(ctx context.Context, filter store.AnalysisFilter) ([]models.CommitAnalysis, error) {
	return s.analyses.LoadAnalyses(ctx, filter)
}

// GenerateAnalyses classifies the repository's commits and persists the
// result, replacing any previous analyses for the repository.
func (s *Service) GenerateAnalyses(ctx context.Context, repoPath string, gen *store.Generator) ([]models.CommitAnalysis, error) {
	commits, err := s.commits.LoadCommits(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	if gen == nil {
		gen = store.NewGenerator()
	}
	analyses, err := gen.Generate(ctx, commits)
	if err != nil {
		return nil, err
	}

	repoName := ""
	if len(commits) > 0 {
		repoName = commits[0].RepoName
	}
	if repoName != "" {
		if err := s.analyses.SaveAnalyses(ctx, repoName, analyses); err != nil {
			return nil, err
		}
	}
	return analyses, nil
}

// ResolveThreshold returns the clustering threshold from an explicit
// value, a preset name, or the configuration, in that order.
func (s *Service) ResolveThreshold(value float64, preset string) (float64, error) {
	if value > 0 {
		return value, nil
	}
	if preset != "" {
		v, ok := timeline.ThresholdPreset(preset)
		if !ok {
			return 0, fmt.Errorf("unknown threshold preset %q", preset)
		}
		return v, nil
	}
	if s.config.Timeline.Threshold > 0 {
		return s.config.Timeline.Threshold, nil
	}
	if v, ok := timeline.ThresholdPreset(s.config.Timeline.ThresholdPreset); ok {
		return v, nil
	}
	v, _ := timeline.ThresholdPreset("normal")
	return v, nil
}

// TimelineOptions configures a timeline layout request.
type TimelineOptions struct {
	// Threshold is the clustering distance in percentage points. Zero
	// falls back to Preset, then to the configuration.
	Threshold float64
	// Preset names a threshold preset (tight, normal, loose, very_loose).
	Preset string
}

// Timeline builds the positioned, clustered layout for a repository.
func (s *Service) Timeline(ctx context.Context, repoPath string, opts TimelineOptions) (models.TimelineLayout, error) {
	threshold, err := s.ResolveThreshold(opts.Threshold, opts.Preset)
	if err != nil {
		return models.TimelineLayout{}, err
	}

	commits, err := s.commits.LoadCommits(ctx, repoPath)
	if err != nil {
		return models.TimelineLayout{}, err
	}

	analyses, err := s.analysesFor(ctx, commits)
	if err != nil {
		return models.TimelineLayout{}, err
	}

	// The layout embeds attached analyses, so the cached entry is only
	// valid while the analysis document is unchanged. The snapshot key
	// covers commits and threshold; the document hash guards the rest.
	key := cache.SnapshotKey("timeline", commits,
		strconv.FormatFloat(threshold, 'f', -1, 64))
	hash := analysesDigest(analyses)
	if data, ok := s.cache.GetWithHash(key, hash); ok {
		var layout models.TimelineLayout
		if err := json.Unmarshal(data, &layout); err == nil {
			return layout, nil
		}
	}

	r := timeline.NewDateRange(commits)
	positioned := timeline.PositionCommits(commits, analyses, r)
	layout, err := timeline.BuildClusters(positioned, threshold)
	if err != nil {
		return models.TimelineLayout{}, err
	}
	layout.Range = r

	if data, err := json.Marshal(layout); err == nil {
		_ = s.cache.SetWithHash(key, hash, data)
	}
	return layout, nil
}

// analysesDigest hashes the analysis records a layout was derived from.
// Serving is keyed on it, so regenerating analyses refreshes cached
// layouts without waiting for TTL expiry.
func analysesDigest(analyses []models.CommitAnalysis) string {
	data, err := json.Marshal(analyses)
	if err != nil {
		return ""
	}
	return cache.HashBytes(data)
}

// Buckets partitions the repository's commits into period buckets.
func (s *Service) Buckets(ctx context.Context, repoPath, granularity string) (map[string][]models.Commit, error) {
	if granularity == "" {
		granularity = s.config.Timeline.Granularity
	}
	g, err := timeline.ParseGranularity(granularity)
	if err != nil {
		return nil, err
	}

	commits, err := s.commits.LoadCommits(ctx, repoPath)
	if err != nil {
		return nil, err
	}

	key := cache.SnapshotKey("buckets", commits, string(g))
	if data, ok := s.cache.Get(key); ok {
		var buckets map[string][]models.Commit
		if err := json.Unmarshal(data, &buckets); err == nil {
			return buckets, nil
		}
	}

	buckets, err := timeline.BucketByPeriod(commits, g)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(buckets); err == nil {
		_ = s.cache.Set(key, data)
	}
	return buckets, nil
}

// GroupsOptions configures an analysis grouping request.
type GroupsOptions struct {
	// GroupBy selects the grouping dimension (type, author, date). Empty
	// falls back to the configuration.
	GroupBy string
	// Author keeps only analyses of commits by the named author.
	Author string
	// Types keeps only analyses of the named types.
	Types []string
}

// Groups aggregates the repository's analyses by type, author, or date,
// optionally narrowed to an author and/or set of types first.
func (s *Service) Groups(ctx context.Context, repoPath string, opts GroupsOptions) (models.GroupedAnalyses, error) {
	groupBy := opts.GroupBy
	if groupBy == "" {
		groupBy = s.config.Timeline.GroupBy
	}

	commits, err := s.commits.LoadCommits(ctx, repoPath)
	if err != nil {
		return models.GroupedAnalyses{}, err
	}
	if len(commits) == 0 {
		return timeline.GroupAnalyses(nil, nil, models.GroupBy(groupBy))
	}
	analyses, err := s.analyses.LoadAnalyses(ctx, store.AnalysisFilter{
		RepoName: commits[0].RepoName,
		Author:   opts.Author,
		Types:    opts.Types,
	})
	if err != nil {
		return models.GroupedAnalyses{}, err
	}

	return timeline.GroupAnalyses(analyses, commits, models.GroupBy(groupBy))
}

// Impact builds the hierarchical file-impact tree for a repository.
func (s *Service) Impact(ctx context.Context, repoPath string) (*models.ImpactAnalysis, error) {
	commits, err := s.commits.LoadCommits(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	return analyzer.NewImpactAnalyzer().Analyze(repoNameOf(commits, repoPath), commits), nil
}

// Complexity scores every commit on size and scope.
func (s *Service) Complexity(ctx context.Context, repoPath string) (*models.ComplexityAnalysis, error) {
	commits, err := s.commits.LoadCommits(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	analyses, err := s.analysesFor(ctx, commits)
	if err != nil {
		return nil, err
	}
	return analyzer.NewComplexityAnalyzer().Analyze(repoNameOf(commits, repoPath), commits, analyses), nil
}

// Themes partitions the commit sequence into thematic development phases.
func (s *Service) Themes(ctx context.Context, repoPath string) (*models.ThemeAnalysis, error) {
	commits, err := s.commits.LoadCommits(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	var opts []analyzer.ThemesOption
	if s.config.Analysis.MaxThemes > 0 {
		opts = append(opts, analyzer.WithMaxThemes(s.config.Analysis.MaxThemes))
	}
	return analyzer.NewThemesAnalyzer(opts...).Analyze(repoNameOf(commits, repoPath), commits), nil
}

// Focus derives per-author activity and focus distributions.
func (s *Service) Focus(ctx context.Context, repoPath string) (*models.FocusAnalysis, error) {
	commits, err := s.commits.LoadCommits(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	return analyzer.NewFocusAnalyzer().Analyze(repoNameOf(commits, repoPath), commits), nil
}

// analysesFor loads stored analyses scoped to the commits' repository.
func (s *Service) analysesFor(ctx context.Context, commits []models.Commit) ([]models.CommitAnalysis, error) {
	if len(commits) == 0 {
		return nil, nil
	}
	return s.analyses.LoadAnalyses(ctx, store.AnalysisFilter{RepoName: commits[0].RepoName})
}

func repoNameOf(commits []models.Commit, repoPath string) string {
	if len(commits) > 0 {
		return commits[0].RepoName
	}
	return filepath.Base(repoPath)
}
