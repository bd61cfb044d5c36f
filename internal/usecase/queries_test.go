package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
	"github.com/fairyhunter13/skills-gap-navigator/internal/domain/mocks"
	"github.com/fairyhunter13/skills-gap-navigator/internal/usecase"
)

func TestFetchJobMarketAnalysis_Success(t *testing.T) {
	t.Parallel()
	completer := &mocks.MockCompleter{}
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return assertPrefix(p, "Analyze the current job market trends and identify emerging skills gaps in Austin focusing on renewable energy.")
	})).Return("```json\n{\"jobTrends\":[{\"trendName\":\"Solar\",\"trendDescription\":\"Growing\"}],\"skillsGaps\":[]}\n```", nil).Once()

	svc := usecase.NewQueryService(completer)
	got, err := svc.FetchJobMarketAnalysis(context.Background(), "  Austin ", "renewable energy")
	require.NoError(t, err)
	require.Len(t, got.JobTrends, 1)
	assert.Equal(t, "Solar", got.JobTrends[0].Name)
	assert.Empty(t, got.SkillsGaps)
	completer.AssertExpectations(t)
}

func TestFetchJobMarketAnalysis_NoAreaOmitsFocus(t *testing.T) {
	t.Parallel()
	completer := &mocks.MockCompleter{}
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return assertPrefix(p, "Analyze the current job market trends and identify emerging skills gaps in Denver.\n")
	})).Return(`{"jobTrends":[],"skillsGaps":[]}`, nil).Once()

	_, err := usecase.NewQueryService(completer).FetchJobMarketAnalysis(context.Background(), "Denver", "")
	require.NoError(t, err)
	completer.AssertExpectations(t)
}

func TestFetchJobMarketAnalysis_EmptyCommunity(t *testing.T) {
	t.Parallel()
	completer := &mocks.MockCompleter{}
	_, err := usecase.NewQueryService(completer).FetchJobMarketAnalysis(context.Background(), " \t", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Contains(t, err.Error(), usecase.MsgCommunityRequired)
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestFetchJobMarketAnalysis_StructureError(t *testing.T) {
	t.Parallel()
	completer := &mocks.MockCompleter{}
	completer.On("Complete", mock.Anything, mock.Anything).Return(`{"jobTrends": []}`, nil).Once()

	_, err := usecase.NewQueryService(completer).FetchJobMarketAnalysis(context.Background(), "Austin", "")
	require.Error(t, err)
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, domain.KindStructure, apiErr.Kind)
	assert.Equal(t, "Received invalid data structure for job market analysis.", apiErr.Message)
	assert.Equal(t, "Expected 'jobTrends' and 'skillsGaps' arrays.", apiErr.Details)
}

func TestFetchJobMarketAnalysis_ParseError(t *testing.T) {
	t.Parallel()
	completer := &mocks.MockCompleter{}
	completer.On("Complete", mock.Anything, mock.Anything).Return("Sorry, I cannot help with that.", nil).Once()

	_, err := usecase.NewQueryService(completer).FetchJobMarketAnalysis(context.Background(), "Austin", "")
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, domain.KindParse, apiErr.Kind)
	assert.Contains(t, apiErr.Details, "Response was: Sorry, I cannot help with that....")
}

func TestFetchJobMarketAnalysis_TransportErrorPassesThrough(t *testing.T) {
	t.Parallel()
	completer := &mocks.MockCompleter{}
	want := domain.NewAPIError(domain.KindConfig, domain.MsgNotConfigured, "")
	completer.On("Complete", mock.Anything, mock.Anything).Return("", want).Once()

	_, err := usecase.NewQueryService(completer).FetchJobMarketAnalysis(context.Background(), "Austin", "")
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Same(t, want, apiErr)
}

func TestFetchJobMarketAnalysis_PlainErrorBecomesTransport(t *testing.T) {
	t.Parallel()
	completer := &mocks.MockCompleter{}
	completer.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("dial tcp: refused")).Once()

	_, err := usecase.NewQueryService(completer).FetchJobMarketAnalysis(context.Background(), "Austin", "")
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, domain.KindTransport, apiErr.Kind)
	assert.Equal(t, "dial tcp: refused", apiErr.Details)
}

func TestFetchLearningPathways(t *testing.T) {
	t.Parallel()
	completer := &mocks.MockCompleter{}
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return assertPrefix(p, `For an individual in Austin looking to acquire skills in "Solar PV"`)
	})).Return(`{"onlineCourses":[{"courseName":"Advanced Solar PV Bootcamp","platform":"Udemy","description":"d"}],"mentorshipPrograms":[],"apprenticeships":[]}`, nil).Once()

	got, err := usecase.NewQueryService(completer).FetchLearningPathways(context.Background(), "Austin", "Solar PV")
	require.NoError(t, err)
	require.Len(t, got.OnlineCourses, 1)
	assert.Equal(t, "Udemy", got.OnlineCourses[0].Platform)
	completer.AssertExpectations(t)
}

func TestFetchLearningPathways_MissingArray(t *testing.T) {
	t.Parallel()
	completer := &mocks.MockCompleter{}
	completer.On("Complete", mock.Anything, mock.Anything).Return(`{"onlineCourses":[],"mentorshipPrograms":null,"apprenticeships":[]}`, nil).Once()

	_, err := usecase.NewQueryService(completer).FetchLearningPathways(context.Background(), "Austin", "Solar PV")
	apiErr := domain.AsAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, domain.KindStructure, apiErr.Kind)
	assert.Equal(t, "Expected 'onlineCourses', 'mentorshipPrograms', and 'apprenticeships' arrays.", apiErr.Details)
}

func TestFetchEmployerSuggestions(t *testing.T) {
	t.Parallel()
	completer := &mocks.MockCompleter{}
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return assertPrefix(p, `For someone in Austin with demonstrated skills in "Solar PV"`)
	})).Return(`{"employerSuggestions":[{"sectorOrCompanyType":"Utilities","reasoning":"Grid work"}]}`, nil).Once()

	got, err := usecase.NewQueryService(completer).FetchEmployerSuggestions(context.Background(), "Austin", "Solar PV")
	require.NoError(t, err)
	require.Len(t, got.Suggestions, 1)
	assert.Equal(t, "Utilities", got.Suggestions[0].SectorOrCompanyType)
}

func TestFetchEmployerSuggestions_EmptySkill(t *testing.T) {
	t.Parallel()
	completer := &mocks.MockCompleter{}
	_, err := usecase.NewQueryService(completer).FetchEmployerSuggestions(context.Background(), "Austin", " ")
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestQueryService_NilCompleter(t *testing.T) {
	t.Parallel()
	_, err := usecase.QueryService{}.FetchJobMarketAnalysis(context.Background(), "Austin", "")
	assert.Equal(t, domain.KindConfig, domain.AsAPIError(err).Kind)
}

func assertPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
