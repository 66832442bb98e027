package matching

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"carbon-scribe/project-portal/methodology-engine/internal/methodology"
	"carbon-scribe/project-portal/methodology-engine/pkg/geospatial"
)

var (
	// ErrMethodologyNotFound is returned when a methodology id is not in the catalog
	ErrMethodologyNotFound = errors.New("methodology not found")

	// ErrInvalidBoundary is returned when a project boundary is not valid GeoJSON
	ErrInvalidBoundary = errors.New("invalid project boundary")
)

// Service hosts the methodology engine for the portal: it normalises
// descriptors coming from the onboarding forms, caches results and logs.
type Service struct {
	matcher     *methodology.Matcher
	cache       *ResultCache
	defaultMode methodology.Mode
	logger      *zap.Logger
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithCacheTTL enables result caching. A ttl <= 0 disables it.
func WithCacheTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		if s.cache != nil {
			s.cache.Close()
			s.cache = nil
		}
		if ttl > 0 {
			s.cache = NewResultCache(ttl)
		}
	}
}

// WithDefaultMode sets the mode used when a request does not name one
func WithDefaultMode(mode methodology.Mode) ServiceOption {
	return func(s *Service) {
		s.defaultMode = mode
	}
}

// NewService creates a new matching service
func NewService(matcher *methodology.Matcher, logger *zap.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		matcher:     matcher,
		defaultMode: methodology.ModeDiscovery,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the result cache
func (s *Service) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}

// ResolveMode parses a requested mode, falling back to the service default
func (s *Service) ResolveMode(requested string) (methodology.Mode, error) {
	if requested == "" {
		return s.defaultMode, nil
	}
	return methodology.ParseMode(requested)
}

// Prepare derives the land area from the GeoJSON boundary when the form did
// not supply one. An explicit land area always wins.
func (s *Service) Prepare(project methodology.ProjectDescriptor) (methodology.ProjectDescriptor, error) {
	if project.LandArea != nil || project.Boundary == "" {
		return project, nil
	}

	hectares, err := geospatial.AreaHectares(project.Boundary)
	if err != nil {
		return project, fmt.Errorf("%w: %v", ErrInvalidBoundary, err)
	}
	project.LandArea = &hectares

	s.logger.Debug("Derived land area from boundary", zap.Float64("hectares", hectares))
	return project, nil
}

// Match returns the ranked methodology matches for a project
func (s *Service) Match(ctx context.Context, project methodology.ProjectDescriptor, mode string) ([]methodology.MethodologyMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved, err := s.ResolveMode(mode)
	if err != nil {
		return nil, err
	}

	key := s.cacheKey("match", resolved, project)
	if cached, ok := s.lookup(key); ok {
		return copyMatches(cached.([]methodology.MethodologyMatch)), nil
	}

	prepared, err := s.Prepare(project)
	if err != nil {
		return nil, err
	}

	matches, err := s.matcher.MatchMethodologies(prepared, resolved)
	if err != nil {
		return nil, err
	}
	s.store(key, copyMatches(matches))

	s.logger.Info("Methodologies matched",
		zap.String("project_type", prepared.ProjectType),
		zap.String("country", prepared.Country),
		zap.String("mode", string(resolved)),
		zap.Int("matches", len(matches)))

	return matches, nil
}

// Assess returns the per-standard feasibility rollup for a project
func (s *Service) Assess(ctx context.Context, project methodology.ProjectDescriptor) (map[string]methodology.FeasibilityResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := s.cacheKey("feasibility", methodology.ModePrecise, project)
	if cached, ok := s.lookup(key); ok {
		return copyFeasibility(cached.(map[string]methodology.FeasibilityResult)), nil
	}

	prepared, err := s.Prepare(project)
	if err != nil {
		return nil, err
	}

	results := s.matcher.AssessFeasibility(prepared)
	s.store(key, copyFeasibility(results))

	overall := results[methodology.OverallKey]
	s.logger.Info("Feasibility assessed",
		zap.String("project_type", prepared.ProjectType),
		zap.String("country", prepared.Country),
		zap.Bool("eligible", overall.Eligible),
		zap.Int("score", overall.Score))

	return results, nil
}

// ListMethodologies returns the catalog, optionally filtered by standard
func (s *Service) ListMethodologies(ctx context.Context, standard string) ([]methodology.Methodology, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalog := s.matcher.Catalog()
	if standard == "" {
		return catalog.All(), nil
	}

	std, err := methodology.ParseStandard(standard)
	if err != nil {
		return nil, err
	}
	return catalog.ByStandard(std), nil
}

// GetMethodology looks up a single methodology
func (s *Service) GetMethodology(ctx context.Context, id string) (*methodology.Methodology, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, ok := s.matcher.Catalog().ByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMethodologyNotFound, id)
	}
	return &m, nil
}

func (s *Service) lookup(key string) (any, bool) {
	if s.cache == nil || key == "" {
		return nil, false
	}
	value, ok := s.cache.Get(key)
	if ok {
		s.logger.Debug("Result cache hit", zap.String("key", key))
	}
	return value, ok
}

func (s *Service) store(key string, value any) {
	if s.cache != nil && key != "" {
		s.cache.Set(key, value)
	}
}

// cacheKey hashes the canonical JSON of the request. It returns "" when
// caching is off or the descriptor cannot be encoded, e.g. a NaN land area.
func (s *Service) cacheKey(kind string, mode methodology.Mode, project methodology.ProjectDescriptor) string {
	if s.cache == nil {
		return ""
	}
	payload, err := json.Marshal(struct {
		Kind    string                        `json:"kind"`
		Mode    methodology.Mode              `json:"mode"`
		Project methodology.ProjectDescriptor `json:"project"`
	}{kind, mode, project})
	if err != nil {
		s.logger.Debug("Skipping result cache", zap.Error(err))
		return ""
	}
	sum := sha256.Sum256(payload)
	return kind + ":" + hex.EncodeToString(sum[:])
}

func copyMatches(in []methodology.MethodologyMatch) []methodology.MethodologyMatch {
	out := make([]methodology.MethodologyMatch, len(in))
	for i, m := range in {
		m.Improvements = append([]string{}, m.Improvements...)
		m.Requirements = append([]string{}, m.Requirements...)
		m.Exclusions = append([]string{}, m.Exclusions...)
		out[i] = m
	}
	return out
}

func copyFeasibility(in map[string]methodology.FeasibilityResult) map[string]methodology.FeasibilityResult {
	out := make(map[string]methodology.FeasibilityResult, len(in))
	for key, r := range in {
		r.Improvements = append([]string{}, r.Improvements...)
		r.Requirements = append([]string{}, r.Requirements...)
		r.Exclusions = append([]string{}, r.Exclusions...)
		r.EligibleMethodologies = append([]string{}, r.EligibleMethodologies...)
		out[key] = r
	}
	return out
}
