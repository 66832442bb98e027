package matching

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carbon-scribe/project-portal/methodology-engine/internal/methodology"
)

// roughly 100 hectares at the equator
const plotBoundary = `{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[0.008983,0],[0.008983,0.009044],[0,0.009044],[0,0]]]}}`

func testCatalog(t *testing.T) *methodology.Catalog {
	t.Helper()
	catalog, err := methodology.NewCatalog([]methodology.Methodology{
		{
			ID:           "VM-TEST",
			Name:         "Test Forestry",
			Standard:     methodology.StandardVerra,
			ProjectTypes: []string{"forestry"},
			Countries:    []string{"us", "ec"},
			MinScale:     50,
			MaxScale:     100000,
			Requirements: []string{"Monitoring plan"},
		},
		{
			ID:           "GS-TEST",
			Name:         "Test Cookstoves",
			Standard:     methodology.StandardGoldStandard,
			ProjectTypes: []string{"cookstoves"},
			Countries:    []string{"ke"},
		},
	})
	require.NoError(t, err)
	return catalog
}

func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	service := NewService(methodology.NewMatcher(testCatalog(t)), zap.NewNop(), opts...)
	t.Cleanup(service.Close)
	return service
}

func hectares(v float64) *float64 { return &v }

func TestServiceMatch(t *testing.T) {
	service := newTestService(t)
	project := methodology.ProjectDescriptor{ProjectType: "forestry", Country: "us", LandArea: hectares(150)}

	matches, err := service.Match(context.Background(), project, "")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "VM-TEST", matches[0].MethodologyID)
	assert.Equal(t, 70.0, matches[0].MatchScore)

	precise, err := service.Match(context.Background(), project, "precise")
	require.NoError(t, err)
	assert.Equal(t, 78.0, precise[0].MatchScore)

	_, err = service.Match(context.Background(), project, "fuzzy")
	assert.ErrorIs(t, err, methodology.ErrInvalidMode)
}

func TestServiceDefaultMode(t *testing.T) {
	service := newTestService(t, WithDefaultMode(methodology.ModePrecise))
	project := methodology.ProjectDescriptor{ProjectType: "forestry", Country: "us", LandArea: hectares(150)}

	matches, err := service.Match(context.Background(), project, "")
	require.NoError(t, err)
	assert.Equal(t, 78.0, matches[0].MatchScore)
}

func TestServiceDerivesAreaFromBoundary(t *testing.T) {
	service := newTestService(t)
	project := methodology.ProjectDescriptor{ProjectType: "forestry", Country: "ec", Boundary: plotBoundary}

	prepared, err := service.Prepare(project)
	require.NoError(t, err)
	require.NotNil(t, prepared.LandArea)
	assert.InDelta(t, 100, *prepared.LandArea, 2)
	assert.Nil(t, project.LandArea, "caller's descriptor is not modified")

	matches, err := service.Match(context.Background(), project, "discovery")
	require.NoError(t, err)
	assert.Equal(t, 70.0, matches[0].MatchScore)

	explicit := project
	explicit.LandArea = hectares(10)
	prepared, err = service.Prepare(explicit)
	require.NoError(t, err)
	assert.Equal(t, 10.0, *prepared.LandArea)
}

func TestServiceRejectsInvalidBoundary(t *testing.T) {
	service := newTestService(t)
	project := methodology.ProjectDescriptor{ProjectType: "forestry", Boundary: `{"type":"Feature"`}

	_, err := service.Match(context.Background(), project, "")
	assert.ErrorIs(t, err, ErrInvalidBoundary)

	_, err = service.Assess(context.Background(), project)
	assert.ErrorIs(t, err, ErrInvalidBoundary)
}

func TestServiceAssess(t *testing.T) {
	service := newTestService(t)
	project := methodology.ProjectDescriptor{ProjectType: "forestry", Country: "us", LandArea: hectares(150), MonitoringPlan: boolPtr(true)}

	results, err := service.Assess(context.Background(), project)
	require.NoError(t, err)

	assert.True(t, results["verra"].Eligible)
	assert.Equal(t, 80, results["verra"].Score)
	assert.False(t, results["climateactionreserve"].Eligible)
	assert.Equal(t, 80, results[methodology.OverallKey].Score)
}

func TestServiceCacheReturnsCopies(t *testing.T) {
	service := newTestService(t, WithCacheTTL(time.Minute))
	project := methodology.ProjectDescriptor{ProjectType: "forestry", Country: "us", LandArea: hectares(10)}

	first, err := service.Match(context.Background(), project, "")
	require.NoError(t, err)
	require.NotEmpty(t, first[0].Improvements)
	assert.Equal(t, 1, service.cache.Size())

	first[0].Improvements[0] = "tampered"
	first[0].MatchScore = 99

	second, err := service.Match(context.Background(), project, "")
	require.NoError(t, err)
	assert.Equal(t, "Increase project scale to at least 50 hectares", second[0].Improvements[0])
	assert.NotEqual(t, 99.0, second[0].MatchScore)

	results, err := service.Assess(context.Background(), project)
	require.NoError(t, err)
	results["verra"] = methodology.FeasibilityResult{}
	again, err := service.Assess(context.Background(), project)
	require.NoError(t, err)
	assert.Equal(t, "Verra", again["verra"].Standard)
	assert.Equal(t, 2, service.cache.Size())
}

func TestServiceNonFiniteAreaBypassesCache(t *testing.T) {
	service := newTestService(t, WithCacheTTL(time.Minute))
	project := methodology.ProjectDescriptor{ProjectType: "forestry", Country: "us", LandArea: hectares(math.NaN())}

	matches, err := service.Match(context.Background(), project, "")
	require.NoError(t, err)
	assert.False(t, matches[0].Eligibility)
	assert.Equal(t, 0, service.cache.Size())

	_, err = service.Assess(context.Background(), project)
	require.NoError(t, err)
	assert.Equal(t, 0, service.cache.Size())
}

func TestServiceCacheDisabled(t *testing.T) {
	service := newTestService(t, WithCacheTTL(0))
	assert.Nil(t, service.cache)

	_, err := service.Match(context.Background(), methodology.ProjectDescriptor{}, "")
	require.NoError(t, err)
}

func TestServiceCatalogAccess(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	all, err := service.ListMethodologies(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	gold, err := service.ListMethodologies(ctx, "goldstandard")
	require.NoError(t, err)
	require.Len(t, gold, 1)
	assert.Equal(t, "GS-TEST", gold[0].ID)

	_, err = service.ListMethodologies(ctx, "plan vivo")
	assert.ErrorIs(t, err, methodology.ErrUnknownStandard)

	m, err := service.GetMethodology(ctx, "VM-TEST")
	require.NoError(t, err)
	assert.Equal(t, "Test Forestry", m.Name)

	_, err = service.GetMethodology(ctx, "nope")
	assert.ErrorIs(t, err, ErrMethodologyNotFound)
}

func TestServiceHonoursCancelledContext(t *testing.T) {
	service := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Match(ctx, methodology.ProjectDescriptor{}, "")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = service.Assess(ctx, methodology.ProjectDescriptor{})
	assert.ErrorIs(t, err, context.Canceled)
}

func boolPtr(v bool) *bool { return &v }
