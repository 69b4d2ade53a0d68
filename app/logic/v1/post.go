package v1

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

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
	topicMaxTokens   = 100
	topicTemperature = 0.7

	contentMaxTokens   = 2500
	contentTemperature = 0.3

	metadataMaxTokens   = 300
	metadataTemperature = 0.1

	// wordsPerMinute feeds the fallback reading time estimate.
	wordsPerMinute = 200

	fallbackTopic    = "HR Best Practices in Kenya"
	fallbackCategory = "HR Insights"

	aiAgentAuthor = "ai-agent"
)

type PostLogic struct {
	ctx  context.Context
	core *core.Core

	aiDriver srv.AIDriver
	posts    store.PostStore
	metrics  *core.Metrics
}

func NewPostLogic(ctx context.Context, core *core.Core) *PostLogic {
	return &PostLogic{
		ctx:      ctx,
		core:     core,
		aiDriver: core.Srv().AI(),
		posts:    core.Store().PostStore(),
		metrics:  core.Metrics(),
	}
}

type GenerateDraftArgs struct {
	Topic          string   `json:"topic"`
	Keywords       []string `json:"keywords"`
	TargetAudience string   `json:"target_audience"`
	ContentType    string   `json:"content_type"`
	ScheduledFor   string   `json:"scheduled_for"`
}

// PostMetadata is the SEO block stored alongside a generated draft.
type PostMetadata struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Keywords     []string `json:"keywords"`
	Category     string   `json:"category"`
	ReadingTime  int      `json:"readingTime"`
	Difficulty   string   `json:"difficulty"`
	ScheduledFor string   `json:"scheduledFor,omitempty"`
	GeneratedAt  string   `json:"generatedAt"`
}

// GenerateDraft produces a full blog draft: topic when the caller left it
// empty, then the article body, then SEO metadata. Metadata generation is
// best effort, a bad model response falls back to derived values.
func (l *PostLogic) GenerateDraft(args GenerateDraftArgs) (*types.Post, error) {
	if args.TargetAudience == "" {
		args.TargetAudience = "HR professionals and business owners in Kenya"
	}
	if args.ContentType == "" {
		args.ContentType = "guide"
	}

	topic := strings.TrimSpace(args.Topic)
	if topic == "" {
		var err error
		if topic, err = l.generateTopic(); err != nil {
			return nil, err
		}
	}

	content, err := l.generateContent(topic, args)
	if err != nil {
		return nil, err
	}

	metadata := l.generateMetadata(topic, content, args)

	rawMetadata, err := json.Marshal(metadata)
	if err != nil {
		return nil, errors.New("PostLogic.GenerateDraft.metadata.marshal", i18n.ERROR_INTERNAL, err).Code(http.StatusInternalServerError)
	}

	post := types.Post{
		ID:         utils.GenUniqIDStr(),
		Title:      metadata.Title,
		Content:    content,
		Status:     types.POST_STATUS_DRAFT,
		SourceURLs: []string{"AI Generated"},
		CreatedBy:  aiAgentAuthor,
		Metadata:   rawMetadata,
		CreatedAt:  time.Now().Unix(),
	}

	if err = l.posts.Create(l.ctx, post); err != nil {
		return nil, errors.New("PostLogic.GenerateDraft.PostStore.Create", i18n.ERROR_INTERNAL, err).Code(http.StatusInternalServerError)
	}

	return &post, nil
}

func (l *PostLogic) List(status, createdBy string, limit, offset uint64) ([]types.Post, int64, error) {
	opts := types.ListPostOptions{Status: status, CreatedBy: createdBy}

	list, err := l.posts.List(l.ctx, opts, limit, offset)
	if err != nil && err != sql.ErrNoRows {
		return nil, 0, errors.New("PostLogic.List.PostStore.List", i18n.ERROR_INTERNAL, err).Code(http.StatusInternalServerError)
	}

	total, err := l.posts.Total(l.ctx, opts)
	if err != nil {
		return nil, 0, errors.New("PostLogic.List.PostStore.Total", i18n.ERROR_INTERNAL, err).Code(http.StatusInternalServerError)
	}

	return list, total, nil
}

func (l *PostLogic) generateTopic() (string, error) {
	timer := l.metrics.AIRequestTimer("blog_topic")
	res, err := l.aiDriver.Generate(l.ctx, []ai.Message{
		ai.SystemMessage(ai.PROMPT_BLOG_TOPIC_SYSTEM_EN),
		ai.UserMessage(ai.PROMPT_BLOG_TOPIC_USER_EN),
	}, &ai.GenerateOptions{
		MaxTokens:   topicMaxTokens,
		Temperature: topicTemperature,
	})
	timer.ObserveDuration()
	if err != nil {
		l.metrics.AIErrorInc("blog_topic")
		return "", errors.New("PostLogic.generateTopic.AI.Generate", i18n.ERROR_QA_GENERATE_FAILED, err).Code(http.StatusInternalServerError)
	}

	topic := strings.TrimSpace(res.Message())
	if topic == "" {
		topic = fallbackTopic
	}
	return topic, nil
}

func (l *PostLogic) generateContent(topic string, args GenerateDraftArgs) (string, error) {
	var keywordLine string
	if len(args.Keywords) > 0 {
		keywordLine = fmt.Sprintf("Focus keywords: %s\n\n", strings.Join(args.Keywords, ", "))
	}

	userPrompt := fmt.Sprintf(`Write a comprehensive blog post about: %q

%sStructure the content with:
1. Engaging introduction
2. Main sections with clear headings
3. Practical tips and actionable advice
4. Conclusion with key takeaways
5. Call-to-action mentioning Jay Line Services

Aim for 1500-2000 words. Use markdown formatting for headings and structure.`, topic, keywordLine)

	timer := l.metrics.AIRequestTimer("blog_content")
	res, err := l.aiDriver.Generate(l.ctx, []ai.Message{
		ai.SystemMessage(fmt.Sprintf(ai.PROMPT_BLOG_CONTENT_SYSTEM_EN, args.TargetAudience, args.ContentType)),
		ai.UserMessage(userPrompt),
	}, &ai.GenerateOptions{
		MaxTokens:   contentMaxTokens,
		Temperature: contentTemperature,
	})
	timer.ObserveDuration()
	if err != nil {
		l.metrics.AIErrorInc("blog_content")
		return "", errors.New("PostLogic.generateContent.AI.Generate", i18n.ERROR_QA_GENERATE_FAILED, err).Code(http.StatusInternalServerError)
	}

	return res.Message(), nil
}

func (l *PostLogic) generateMetadata(topic, content string, args GenerateDraftArgs) PostMetadata {
	metadata := PostMetadata{
		Title:       topic,
		Description: fmt.Sprintf("Learn about %s with expert insights from Jay Line Services.", strings.ToLower(topic)),
		Keywords:    args.Keywords,
		Category:    fallbackCategory,
		ReadingTime: int(math.Ceil(float64(len(strings.Fields(content))) / wordsPerMinute)),
		Difficulty:  "intermediate",
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if len(metadata.Keywords) == 0 {
		metadata.Keywords = []string{"HR", "Kenya", "business"}
	}
	if args.ScheduledFor != "" {
		metadata.ScheduledFor = args.ScheduledFor
	}

	preview := utils.TruncateContent(content, 500)
	userPrompt := fmt.Sprintf(`Generate metadata for this blog post content:

Title: %s
Content: %s

Return JSON with: title, description (max 160 chars), keywords (array of 5-8 terms), category, readingTime (minutes), difficulty (beginner/intermediate/advanced)`, topic, preview)

	res, err := l.aiDriver.Generate(l.ctx, []ai.Message{
		ai.SystemMessage(ai.PROMPT_BLOG_METADATA_SYSTEM_EN),
		ai.UserMessage(userPrompt),
	}, &ai.GenerateOptions{
		MaxTokens:   metadataMaxTokens,
		Temperature: metadataTemperature,
	})
	if err != nil {
		slog.Warn("metadata generation failed, using fallback", slog.String("error", err.Error()))
		return metadata
	}

	var generated PostMetadata
	if err = json.Unmarshal([]byte(res.Message()), &generated); err != nil {
		slog.Warn("metadata response was not valid json, using fallback", slog.String("error", err.Error()))
		return metadata
	}

	if generated.Title != "" {
		metadata.Title = generated.Title
	}
	if generated.Description != "" {
		metadata.Description = generated.Description
	}
	if len(generated.Keywords) > 0 {
		metadata.Keywords = generated.Keywords
	}
	if generated.Category != "" {
		metadata.Category = generated.Category
	}
	if generated.ReadingTime > 0 {
		metadata.ReadingTime = generated.ReadingTime
	}
	if generated.Difficulty != "" {
		metadata.Difficulty = generated.Difficulty
	}

	return metadata
}
