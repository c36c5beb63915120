package gemini

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks/quill-api/internal/config"
	"github.com/quillworks/quill-api/internal/generation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompt.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewGeminiGenerator_Validation(t *testing.T) {
	t.Parallel()

	validTemplate := writeTemplate(t, "Write about {{.Topic}}")

	tests := []struct {
		name      string
		logger    *slog.Logger
		cfg       config.LLMConfig
		wantErrIs error
	}{
		{
			name:   "missing API key",
			logger: testLogger(),
			cfg: config.LLMConfig{
				ModelName:          "gemini-2.0-flash",
				PromptTemplatePath: validTemplate,
			},
			wantErrIs: generation.ErrInvalidConfig,
		},
		{
			name:   "missing model name",
			logger: testLogger(),
			cfg: config.LLMConfig{
				APIKey:             "test-key",
				PromptTemplatePath: validTemplate,
			},
			wantErrIs: generation.ErrInvalidConfig,
		},
		{
			name:   "missing template path",
			logger: testLogger(),
			cfg: config.LLMConfig{
				APIKey:    "test-key",
				ModelName: "gemini-2.0-flash",
			},
			wantErrIs: generation.ErrInvalidConfig,
		},
		{
			name:   "template file does not exist",
			logger: testLogger(),
			cfg: config.LLMConfig{
				APIKey:             "test-key",
				ModelName:          "gemini-2.0-flash",
				PromptTemplatePath: "/nonexistent/prompt.tmpl",
			},
			wantErrIs: generation.ErrInvalidConfig,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gen, err := NewGeminiGenerator(context.Background(), tc.logger, tc.cfg)
			assert.Nil(t, gen)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErrIs)
		})
	}
}

func TestNewGeminiGenerator_NilLogger(t *testing.T) {
	t.Parallel()

	gen, err := NewGeminiGenerator(context.Background(), nil, config.LLMConfig{})
	assert.Nil(t, gen)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logger cannot be nil")
}

func TestNewGeminiGenerator_MalformedTemplate(t *testing.T) {
	t.Parallel()

	badTemplate := writeTemplate(t, "Write about {{.Topic")

	gen, err := NewGeminiGenerator(context.Background(), testLogger(), config.LLMConfig{
		APIKey:             "test-key",
		ModelName:          "gemini-2.0-flash",
		PromptTemplatePath: badTemplate,
	})
	assert.Nil(t, gen)
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestCreatePrompt(t *testing.T) {
	t.Parallel()

	tmpl := template.Must(template.New("blog_post").Parse("Write a post about {{.Topic}}."))
	g := &GeminiGenerator{
		logger:         testLogger(),
		promptTemplate: tmpl,
	}

	t.Run("renders topic into template", func(t *testing.T) {
		t.Parallel()
		prompt, err := g.createPrompt(context.Background(), "Go concurrency")
		require.NoError(t, err)
		assert.Equal(t, "Write a post about Go concurrency.", prompt)
	})

	t.Run("rejects empty topic", func(t *testing.T) {
		t.Parallel()
		_, err := g.createPrompt(context.Background(), "")
		assert.ErrorIs(t, err, ErrEmptyTopic)
	})
}

func TestCoerceOutput(t *testing.T) {
	t.Parallel()

	g := &GeminiGenerator{logger: testLogger()}
	ctx := context.Background()

	t.Run("plain prose is used as-is", func(t *testing.T) {
		t.Parallel()
		result := g.coerceOutput(ctx, "A post about Go.")
		assert.Equal(t, "A post about Go.", result.Text())
	})

	t.Run("JSON object with answer key yields the answer", func(t *testing.T) {
		t.Parallel()
		result := g.coerceOutput(ctx, `{"answer": "The content.", "model": "x"}`)
		assert.Equal(t, "The content.", result.Text())
	})

	t.Run("other JSON values are stringified", func(t *testing.T) {
		t.Parallel()
		result := g.coerceOutput(ctx, `{"body": "text"}`)
		assert.Contains(t, result.Text(), `"body"`)
	})
}
