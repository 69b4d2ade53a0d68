package v1

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayline-services/assist/pkg/ai"
)

func newTestPostLogic(drv *fakeAIDriver, posts *fakePostStore) *PostLogic {
	return &PostLogic{
		ctx:      context.Background(),
		aiDriver: drv,
		posts:    posts,
	}
}

func TestGenerateDraftWithTopic(t *testing.T) {
	content := strings.TrimSpace(strings.Repeat("word ", 400))

	var contentPrompt string
	drv := &fakeAIDriver{
		generate: func(msgs []ai.Message, opts *ai.GenerateOptions) (ai.GenerateResponse, error) {
			switch opts.MaxTokens {
			case contentMaxTokens:
				contentPrompt = msgs[1].Content
				assert.Equal(t, float32(contentTemperature), opts.Temperature)
				return ai.GenerateResponse{Received: []string{content}}, nil
			case metadataMaxTokens:
				return ai.GenerateResponse{Received: []string{"not json at all"}}, nil
			}
			t.Fatalf("unexpected generate call with max tokens %d", opts.MaxTokens)
			return ai.GenerateResponse{}, nil
		},
	}
	posts := &fakePostStore{}
	l := newTestPostLogic(drv, posts)

	post, err := l.GenerateDraft(GenerateDraftArgs{
		Topic:    "Remote Hiring in Kenya",
		Keywords: []string{"remote", "hiring"},
	})
	require.NoError(t, err)

	assert.Contains(t, contentPrompt, `"Remote Hiring in Kenya"`)
	assert.Contains(t, contentPrompt, "Focus keywords: remote, hiring")
	assert.Contains(t, contentPrompt, "Jay Line Services")

	assert.Equal(t, "draft", post.Status)
	assert.Equal(t, aiAgentAuthor, post.CreatedBy)
	assert.Equal(t, []string{"AI Generated"}, []string(post.SourceURLs))
	assert.Equal(t, content, post.Content)

	// Bad metadata JSON falls back to derived values.
	var meta PostMetadata
	require.NoError(t, json.Unmarshal(post.Metadata, &meta))
	assert.Equal(t, "Remote Hiring in Kenya", meta.Title)
	assert.Equal(t, fallbackCategory, meta.Category)
	assert.Equal(t, "intermediate", meta.Difficulty)
	assert.Equal(t, []string{"remote", "hiring"}, meta.Keywords)
	// 400 words at 200 wpm
	assert.Equal(t, 2, meta.ReadingTime)
	assert.NotEmpty(t, meta.GeneratedAt)

	require.Len(t, posts.created, 1)
	assert.Equal(t, post.ID, posts.created[0].ID)
}

func TestGenerateDraftMergesModelMetadata(t *testing.T) {
	drv := &fakeAIDriver{
		generate: func(msgs []ai.Message, opts *ai.GenerateOptions) (ai.GenerateResponse, error) {
			switch opts.MaxTokens {
			case contentMaxTokens:
				return ai.GenerateResponse{Received: []string{"Short body."}}, nil
			case metadataMaxTokens:
				return ai.GenerateResponse{Received: []string{
					`{"title":"A Better Title","description":"Concise summary.","readingTime":7,"difficulty":"beginner"}`,
				}}, nil
			}
			return ai.GenerateResponse{}, nil
		},
	}
	posts := &fakePostStore{}
	l := newTestPostLogic(drv, posts)

	post, err := l.GenerateDraft(GenerateDraftArgs{Topic: "Staff Onboarding", ScheduledFor: "2026-09-01"})
	require.NoError(t, err)

	var meta PostMetadata
	require.NoError(t, json.Unmarshal(post.Metadata, &meta))
	assert.Equal(t, "A Better Title", meta.Title)
	assert.Equal(t, "Concise summary.", meta.Description)
	assert.Equal(t, 7, meta.ReadingTime)
	assert.Equal(t, "beginner", meta.Difficulty)
	// fields the model left out keep their fallbacks
	assert.Equal(t, fallbackCategory, meta.Category)
	assert.Equal(t, []string{"HR", "Kenya", "business"}, meta.Keywords)
	assert.Equal(t, "2026-09-01", meta.ScheduledFor)

	// the generated title becomes the post title
	assert.Equal(t, "A Better Title", post.Title)
}

func TestGenerateDraftPicksTopicWhenMissing(t *testing.T) {
	drv := &fakeAIDriver{
		generate: func(msgs []ai.Message, opts *ai.GenerateOptions) (ai.GenerateResponse, error) {
			switch opts.MaxTokens {
			case topicMaxTokens:
				assert.Equal(t, float32(topicTemperature), opts.Temperature)
				return ai.GenerateResponse{Received: []string{"  Statutory Deductions Explained \n"}}, nil
			case contentMaxTokens:
				assert.Contains(t, msgs[1].Content, `"Statutory Deductions Explained"`)
				return ai.GenerateResponse{Received: []string{"Body."}}, nil
			case metadataMaxTokens:
				return ai.GenerateResponse{Received: []string{"{}"}}, nil
			}
			return ai.GenerateResponse{}, nil
		},
	}
	l := newTestPostLogic(drv, &fakePostStore{})

	post, err := l.GenerateDraft(GenerateDraftArgs{})
	require.NoError(t, err)
	assert.Equal(t, "Statutory Deductions Explained", post.Title)
	assert.Equal(t, 3, drv.generateCalls)
}

func TestGenerateDraftTopicFallback(t *testing.T) {
	drv := &fakeAIDriver{
		generate: func(msgs []ai.Message, opts *ai.GenerateOptions) (ai.GenerateResponse, error) {
			switch opts.MaxTokens {
			case topicMaxTokens:
				return ai.GenerateResponse{}, nil
			case contentMaxTokens:
				return ai.GenerateResponse{Received: []string{"Body."}}, nil
			case metadataMaxTokens:
				return ai.GenerateResponse{Received: []string{"{}"}}, nil
			}
			return ai.GenerateResponse{}, nil
		},
	}
	l := newTestPostLogic(drv, &fakePostStore{})

	post, err := l.GenerateDraft(GenerateDraftArgs{})
	require.NoError(t, err)
	assert.Equal(t, fallbackTopic, post.Title)
}
