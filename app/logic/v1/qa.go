package v1

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/samber/lo"

	"github.com/jayline-services/assist/app/core"
	"github.com/jayline-services/assist/app/core/srv"
	"github.com/jayline-services/assist/app/store"
	"github.com/jayline-services/assist/pkg/ai"
	"github.com/jayline-services/assist/pkg/errors"
	"github.com/jayline-services/assist/pkg/i18n"
	"github.com/jayline-services/assist/pkg/types"
	"github.com/jayline-services/assist/pkg/utils"
)

const (
	// MatchThreshold is the minimum cosine similarity a chunk needs to count
	// as evidence for an answer.
	MatchThreshold = 0.7
	// ConfidenceBoost is applied to the average similarity before capping at
	// 1.0, so strong matches read as near certain.
	ConfidenceBoost = 1.2

	DefaultMaxSources = 5
	MaxSourcesLimit   = 10

	// SourcePreviewLen is how much chunk text the client sees per source.
	SourcePreviewLen = 200

	answerMaxTokens   = 500
	answerTemperature = 0.3

	answerCacheTTL = time.Minute * 10

	// EscalationConfidenceThreshold is where the chat surface stops trusting
	// the generated answer and hands over to live support.
	EscalationConfidenceThreshold = 0.6
	// CallSupportConfidenceThreshold is where the client should surface the
	// call-us action instead of article suggestions.
	CallSupportConfidenceThreshold = 0.3
)

const (
	AbstainAnswer = "I don't have enough information to answer that question. Please contact Jay Line Services directly at +254 722 311 490 or info@jaylineservice.co.ke for assistance."

	escalationAnswerFormat = "I don't have enough specific information to answer that question confidently. For the best assistance with %q, I'd recommend connecting with our live support team who can provide personalized help.\n\nYou can reach us at:\n+254 722 311 490\ninfo@jaylineservice.co.ke\n\nOur team is available Monday-Friday 8:00 AM - 6:00 PM, Saturday 9:00 AM - 2:00 PM."
)

type QALogic struct {
	ctx  context.Context
	core *core.Core

	aiDriver srv.AIDriver
	docs     store.DocumentStore
	cache    types.Cache
	metrics  *core.Metrics
}

func NewQALogic(ctx context.Context, core *core.Core) *QALogic {
	return &QALogic{
		ctx:      ctx,
		core:     core,
		aiDriver: core.Srv().AI(),
		docs:     core.Store().DocumentStore(),
		cache:    core.Cache(),
		metrics:  core.Metrics(),
	}
}

// Answer runs the retrieval pipeline: embed the query, fetch matching chunks,
// build the numbered context block and generate a cited answer. Confidence is
// min(avgSimilarity * ConfidenceBoost, 1.0), rounded to two decimals.
func (l *QALogic) Answer(query string, maxSources uint64) (*types.QAResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("QALogic.Answer.query.empty", i18n.ERROR_QA_QUERY_REQUIRED, nil).Code(http.StatusBadRequest)
	}
	if maxSources == 0 || maxSources > MaxSourcesLimit {
		maxSources = DefaultMaxSources
	}

	cacheKey := l.answerCacheKey(query, maxSources)
	if cached, err := l.cache.Get(l.ctx, cacheKey); err == nil && cached != "" {
		var result types.QAResult
		if err = json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
	}

	embedRes, err := l.aiDriver.EmbeddingForQuery(l.ctx, []string{query})
	if err != nil {
		return nil, errors.New("QALogic.Answer.AI.EmbeddingForQuery", i18n.ERROR_QA_SEARCH_FAILED, err).Code(http.StatusInternalServerError)
	}
	if len(embedRes.Data) == 0 {
		return nil, errors.New("QALogic.Answer.AI.EmbeddingForQuery.empty", i18n.ERROR_QA_SEARCH_FAILED, fmt.Errorf("embedding response carried no vectors")).Code(http.StatusInternalServerError)
	}

	matches, err := l.docs.Match(l.ctx, pgvector.NewVector(embedRes.Data[0]), MatchThreshold, maxSources)
	if err != nil {
		return nil, errors.New("QALogic.Answer.DocumentStore.Match", i18n.ERROR_QA_SEARCH_FAILED, err).Code(http.StatusInternalServerError)
	}

	if len(matches) == 0 {
		l.metrics.QAAbstainInc()
		return &types.QAResult{
			Answer:     AbstainAnswer,
			Sources:    []types.QASource{},
			Confidence: 0.0,
		}, nil
	}

	matches = l.fitContextBudget(query, matches)

	contextBlock := strings.Join(lo.Map(matches, func(doc types.MatchResult, i int) string {
		return fmt.Sprintf("[%d] %s: %s", i+1, doc.Title, doc.Content)
	}), "\n\n")

	msgs := []ai.Message{
		ai.SystemMessage(ai.PROMPT_QA_SYSTEM_EN),
		ai.UserMessage(fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextBlock, query)),
	}

	timer := l.metrics.AIRequestTimer("qa_answer")
	genRes, err := l.aiDriver.Generate(l.ctx, msgs, &ai.GenerateOptions{
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	timer.ObserveDuration()
	if err != nil {
		l.metrics.AIErrorInc("qa_answer")
		return nil, errors.New("QALogic.Answer.AI.Generate", i18n.ERROR_QA_GENERATE_FAILED, err).Code(http.StatusInternalServerError)
	}

	answer := genRes.Message()
	if answer == "" {
		answer = "Unable to generate response"
	}

	avgSimilarity := lo.SumBy(matches, func(doc types.MatchResult) float64 {
		return doc.Similarity
	}) / float64(len(matches))
	confidence := math.Min(avgSimilarity*ConfidenceBoost, 1.0)

	result := &types.QAResult{
		Answer: answer,
		Sources: lo.Map(matches, func(doc types.MatchResult, _ int) types.QASource {
			return types.QASource{
				Title:      doc.Title,
				Content:    utils.TruncateContent(doc.Content, SourcePreviewLen),
				URL:        doc.URL,
				Similarity: doc.Similarity,
			}
		}),
		Confidence: math.Round(confidence*100) / 100,
	}

	if raw, err := json.Marshal(result); err == nil {
		l.cache.SetEx(l.ctx, cacheKey, string(raw), answerCacheTTL)
	}

	return result, nil
}

// AnswerForChat is Answer plus the escalation policy the chat widget applies.
func (l *QALogic) AnswerForChat(query string, maxSources uint64) (*types.QAResult, error) {
	result, err := l.Answer(query, maxSources)
	if err != nil {
		return nil, err
	}

	return l.ApplyEscalationPolicy(query, result), nil
}

// ApplyEscalationPolicy swaps low confidence answers for the live support
// handoff. The escalated response carries no sources and reports confidence
// 0.0, which puts it under the call-support gate as well.
func (l *QALogic) ApplyEscalationPolicy(query string, result *types.QAResult) *types.QAResult {
	if result.Confidence >= EscalationConfidenceThreshold {
		return result
	}

	l.metrics.QAEscalateInc()

	out := *result
	out.Answer = fmt.Sprintf(escalationAnswerFormat, query)
	out.Sources = []types.QASource{}
	out.Confidence = 0.0
	out.CallSupport = out.Confidence <= CallSupportConfidenceThreshold
	return &out
}

// fitContextBudget drops the weakest sources until the prompt fits the model
// request limit. The best match always stays.
func (l *QALogic) fitContextBudget(query string, matches []types.MatchResult) []types.MatchResult {
	for len(matches) > 1 {
		contextBlock := strings.Join(lo.Map(matches, func(doc types.MatchResult, i int) string {
			return fmt.Sprintf("[%d] %s: %s", i+1, doc.Title, doc.Content)
		}), "\n\n")

		msgs := []ai.Message{
			ai.SystemMessage(ai.PROMPT_QA_SYSTEM_EN),
			ai.UserMessage(fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextBlock, query)),
		}
		if !l.aiDriver.MsgIsOverLimit(msgs) {
			break
		}
		matches = matches[:len(matches)-1]
	}
	return matches
}

func (l *QALogic) answerCacheKey(query string, maxSources uint64) string {
	return fmt.Sprintf("jayline:qa:%x:%d", md5.Sum([]byte(strings.ToLower(query))), maxSources)
}
