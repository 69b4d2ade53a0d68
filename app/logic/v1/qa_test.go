package v1

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayline-services/assist/pkg/ai"
	"github.com/jayline-services/assist/pkg/errors"
	"github.com/jayline-services/assist/pkg/types"
)

func newTestQALogic(drv *fakeAIDriver, docs *fakeDocumentStore) *QALogic {
	return &QALogic{
		ctx:      context.Background(),
		aiDriver: drv,
		docs:     docs,
		cache:    newMemCache(),
	}
}

func TestAnswerRequiresQuery(t *testing.T) {
	drv := &fakeAIDriver{}
	l := newTestQALogic(drv, &fakeDocumentStore{})

	_, err := l.Answer("   ", 0)
	require.Error(t, err)

	ce, ok := err.(*errors.CustomizedError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ce.GetCode())
	assert.Zero(t, drv.embedQueryCalls)
}

func TestAnswerClampsMaxSources(t *testing.T) {
	var seenLimit uint64
	docs := &fakeDocumentStore{
		match: func(threshold float64, limit uint64) ([]types.MatchResult, error) {
			seenLimit = limit
			assert.Equal(t, float64(MatchThreshold), threshold)
			return nil, nil
		},
	}
	l := newTestQALogic(&fakeAIDriver{}, docs)

	_, err := l.Answer("what services do you offer", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(DefaultMaxSources), seenLimit)

	_, err = l.Answer("what services do you offer", MaxSourcesLimit+1)
	require.NoError(t, err)
	assert.Equal(t, uint64(DefaultMaxSources), seenLimit)
}

func TestAnswerAbstainsWithoutMatches(t *testing.T) {
	drv := &fakeAIDriver{}
	l := newTestQALogic(drv, &fakeDocumentStore{})

	result, err := l.Answer("do you repair bicycles", 0)
	require.NoError(t, err)

	assert.Equal(t, AbstainAnswer, result.Answer)
	assert.Equal(t, 0.0, result.Confidence)
	require.NotNil(t, result.Sources)
	assert.Empty(t, result.Sources)
	assert.Zero(t, drv.generateCalls, "no generation without evidence")
}

func TestAnswerBuildsNumberedContext(t *testing.T) {
	longContent := strings.Repeat("b", 300)
	docs := &fakeDocumentStore{
		match: func(_ float64, _ uint64) ([]types.MatchResult, error) {
			return []types.MatchResult{
				{Title: "Staffing", Content: "We recruit and place staff.", URL: "/services", Similarity: 0.9},
				{Title: "Payroll", Content: longContent, URL: "/payroll", Similarity: 0.8},
			}, nil
		},
	}

	var userPrompt string
	drv := &fakeAIDriver{
		generate: func(msgs []ai.Message, opts *ai.GenerateOptions) (ai.GenerateResponse, error) {
			require.Len(t, msgs, 2)
			userPrompt = msgs[1].Content
			assert.Equal(t, answerMaxTokens, opts.MaxTokens)
			assert.Equal(t, float32(answerTemperature), opts.Temperature)
			return ai.GenerateResponse{Received: []string{"We provide staffing and payroll services [1]."}}, nil
		},
	}
	l := newTestQALogic(drv, docs)

	result, err := l.Answer("what do you do", 0)
	require.NoError(t, err)

	assert.Contains(t, userPrompt, "[1] Staffing: We recruit and place staff.")
	assert.Contains(t, userPrompt, "\n\n[2] Payroll: ")
	assert.Contains(t, userPrompt, "Question: what do you do")

	assert.Equal(t, "We provide staffing and payroll services [1].", result.Answer)
	// avg(0.9, 0.8) * 1.2 caps at 1.0
	assert.Equal(t, 1.0, result.Confidence)

	require.Len(t, result.Sources, 2)
	assert.Equal(t, strings.Repeat("b", SourcePreviewLen)+"...", result.Sources[1].Content)
	assert.Equal(t, "/services", result.Sources[0].URL)
}

func TestAnswerConfidenceRounding(t *testing.T) {
	docs := &fakeDocumentStore{
		match: func(_ float64, _ uint64) ([]types.MatchResult, error) {
			return []types.MatchResult{
				{Title: "A", Content: "a", Similarity: 0.72},
				{Title: "B", Content: "b", Similarity: 0.74},
			}, nil
		},
	}
	l := newTestQALogic(&fakeAIDriver{}, docs)

	result, err := l.Answer("payroll deadlines", 0)
	require.NoError(t, err)

	// avg 0.73 * 1.2 = 0.876, rounded to two decimals
	assert.Equal(t, 0.88, result.Confidence)
}

func TestAnswerCachesResult(t *testing.T) {
	docs := &fakeDocumentStore{
		match: func(_ float64, _ uint64) ([]types.MatchResult, error) {
			return []types.MatchResult{{Title: "A", Content: "a", Similarity: 0.9}}, nil
		},
	}
	drv := &fakeAIDriver{}
	l := newTestQALogic(drv, docs)

	first, err := l.Answer("What Services Do You Offer", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, drv.embedQueryCalls)

	// Case-insensitive hit, the whole pipeline is skipped.
	second, err := l.Answer("what services do you offer", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, drv.embedQueryCalls)
	assert.Equal(t, 1, drv.generateCalls)
	assert.Equal(t, first.Answer, second.Answer)
	assert.Equal(t, first.Confidence, second.Confidence)
}

func TestAnswerFallbackWhenModelReturnsNothing(t *testing.T) {
	docs := &fakeDocumentStore{
		match: func(_ float64, _ uint64) ([]types.MatchResult, error) {
			return []types.MatchResult{{Title: "A", Content: "a", Similarity: 0.9}}, nil
		},
	}
	drv := &fakeAIDriver{
		generate: func([]ai.Message, *ai.GenerateOptions) (ai.GenerateResponse, error) {
			return ai.GenerateResponse{}, nil
		},
	}
	l := newTestQALogic(drv, docs)

	result, err := l.Answer("leave policy", 0)
	require.NoError(t, err)
	assert.Equal(t, "Unable to generate response", result.Answer)
}

func TestAnswerDropsWeakestSourcesOverBudget(t *testing.T) {
	docs := &fakeDocumentStore{
		match: func(_ float64, _ uint64) ([]types.MatchResult, error) {
			return []types.MatchResult{
				{Title: "First", Content: "best match", Similarity: 0.95},
				{Title: "Second", Content: "good match", Similarity: 0.85},
				{Title: "Third", Content: "weak match", Similarity: 0.75},
			}, nil
		},
	}
	drv := &fakeAIDriver{
		overLimit: func(msgs []ai.Message) bool {
			return strings.Contains(msgs[1].Content, "[3]")
		},
	}
	l := newTestQALogic(drv, docs)

	result, err := l.Answer("recruitment process", 0)
	require.NoError(t, err)

	require.Len(t, result.Sources, 2)
	assert.Equal(t, "First", result.Sources[0].Title)
	assert.Equal(t, "Second", result.Sources[1].Title)
}

func TestApplyEscalationPolicy(t *testing.T) {
	l := newTestQALogic(&fakeAIDriver{}, &fakeDocumentStore{})

	confident := &types.QAResult{
		Answer:     "direct answer",
		Sources:    []types.QASource{{Title: "A", Similarity: 0.6}},
		Confidence: 0.6,
	}
	out := l.ApplyEscalationPolicy("any question", confident)
	assert.Equal(t, "direct answer", out.Answer)
	assert.Len(t, out.Sources, 1)
	assert.Equal(t, 0.6, out.Confidence)
	assert.False(t, out.CallSupport)

	borderline := &types.QAResult{
		Answer:     "weak answer",
		Sources:    []types.QASource{{Title: "A", Similarity: 0.59}},
		Confidence: 0.59,
	}
	out = l.ApplyEscalationPolicy("salary surveys", borderline)
	assert.Contains(t, out.Answer, fmt.Sprintf("%q", "salary surveys"))
	assert.Contains(t, out.Answer, "+254 722 311 490")
	// escalated responses drop their evidence and report zero confidence,
	// which also turns on the call-support affordance
	require.NotNil(t, out.Sources)
	assert.Empty(t, out.Sources)
	assert.Equal(t, 0.0, out.Confidence)
	assert.True(t, out.CallSupport)
	// the input is never mutated
	assert.Equal(t, "weak answer", borderline.Answer)
	assert.Len(t, borderline.Sources, 1)
	assert.Equal(t, 0.59, borderline.Confidence)

	low := &types.QAResult{Answer: "guess", Confidence: 0.3}
	out = l.ApplyEscalationPolicy("salary surveys", low)
	assert.True(t, out.CallSupport)
	assert.Equal(t, 0.0, out.Confidence)
}
