package lint_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/engine/lint"
)

func toLines(src string) []string {
	return strings.Split(src, "\n")
}

func TestCallsProviderAPI(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want bool
	}{
		{
			name: "openai python",
			src: `client = OpenAI(api_key=key)
response = client.chat.completions.create(model="gpt-3.5-turbo")`,
			want: true,
		},
		{
			name: "anthropic js",
			src: `const anthropic = new Anthropic();
const msg = await anthropic.messages.create({});`,
			want: true,
		},
		{
			name: "gemini python",
			src:  `model = genai.GenerativeModel("gemini-pro")`,
			want: true,
		},
		{
			name: "no provider calls",
			src: `def add(a, b):
    return a + b`,
			want: false,
		},
		{
			name: "signature only in comment",
			src:  `# example: client.chat.completions.create(...)`,
			want: false,
		},
		{
			name: "signature only in string",
			src:  `doc = "call chat.completions.create to get a reply"`,
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, lint.CallsProviderAPI(toLines(tc.src)))
		})
	}
}

func TestFirstCallLine(t *testing.T) {
	src := `import openai

client = OpenAI(api_key=key)
response = client.chat.completions.create(model="gpt-3.5-turbo")`
	require.Equal(t, 3, lint.FirstCallLine(toLines(src)))

	require.Equal(t, 0, lint.FirstCallLine(toLines("x = 1\ny = 2")))
}
