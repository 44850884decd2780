package lint_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/engine/lint"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

func TestDetectStreamingMissingHeaders(t *testing.T) {
	src := `client = OpenAI(api_key=key)
response = client.chat.completions.create(
    model="gpt-3.5-turbo",
    stream=True,
)
for chunk in response:
    yield chunk`

	issues := lint.DetectStreaming("app.py", toLines(src))
	require.Len(t, issues, 2)

	require.Equal(t, types.SeverityWarning, issues[0].Severity)
	require.Equal(t, 4, issues[0].Line)
	require.Contains(t, issues[0].Message, "SSE headers")

	require.Equal(t, types.SeverityInfo, issues[1].Severity)
	require.Contains(t, issues[1].Message, "flush")
}

func TestDetectStreamingWithHeadersAndFlush(t *testing.T) {
	src := `client = OpenAI(api_key=key)
response = client.chat.completions.create(
    model="gpt-3.5-turbo",
    stream=True,
)
headers["Content-Type"] = "text/event-stream"
headers["X-Accel-Buffering"] = "no"
for chunk in response:
    yield chunk
    sys.stdout.flush()`

	require.Empty(t, lint.DetectStreaming("app.py", toLines(src)))
}

func TestDetectStreamingNotEnabled(t *testing.T) {
	src := `client = OpenAI(api_key=key)
response = client.chat.completions.create(model="gpt-3.5-turbo")`

	require.Nil(t, lint.DetectStreaming("app.py", toLines(src)))
}

func TestDetectStreamingCommentedOut(t *testing.T) {
	src := `client = OpenAI(api_key=key)
# stream=True would enable streaming here
response = client.chat.completions.create(model="gpt-3.5-turbo")`

	require.Nil(t, lint.DetectStreaming("app.py", toLines(src)))
}

func TestDetectStreamingJavaScript(t *testing.T) {
	src := `const client = new OpenAI();
const response = await client.chat.completions.create({
  model: 'gpt-3.5-turbo',
  stream: true,
});`

	issues := lint.DetectStreaming("app.ts", toLines(src))
	require.Len(t, issues, 2)
	require.Equal(t, 4, issues[0].Line)
}
