package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"hockeycap/internal/config"
	"hockeycap/internal/domain"
)

type fakeGenerator struct {
	text   string
	err    error
	model  string
	prompt string
	config *genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = cfg
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}},
		}},
	}, nil
}

func TestNew_WithoutKeyIsDisabled(t *testing.T) {
	a, err := New(&config.Config{GeminiModel: "gemini-2.5-flash"}, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, a.Enabled())

	_, err = a.AskCBAExpert(context.Background(), "What is LTIR?")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, _, err = a.SearchPlayer(context.Background(), "Connor McDavid")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAskCBAExpert(t *testing.T) {
	gen := &fakeGenerator{text: "  LTIR lets a team exceed the ceiling.  "}
	a := NewWithGenerator(gen, "gemini-2.5-flash", zerolog.Nop())

	answer, err := a.AskCBAExpert(context.Background(), "What is LTIR?")
	require.NoError(t, err)
	assert.Equal(t, "LTIR lets a team exceed the ceiling.", answer)

	assert.Equal(t, "gemini-2.5-flash", gen.model)
	assert.Equal(t, "What is LTIR?", gen.prompt)
	require.NotNil(t, gen.config.Temperature)
	assert.InDelta(t, 0.3, *gen.config.Temperature, 1e-6)
	require.NotNil(t, gen.config.SystemInstruction)
	assert.Contains(t, gen.config.SystemInstruction.Parts[0].Text, "Collective Bargaining Agreement")
}

func TestAskCBAExpert_EmptyAnswer(t *testing.T) {
	a := NewWithGenerator(&fakeGenerator{text: "   "}, "m", zerolog.Nop())
	answer, err := a.AskCBAExpert(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, answer)
}

func TestAskCBAExpert_Error(t *testing.T) {
	boom := errors.New("quota exceeded")
	a := NewWithGenerator(&fakeGenerator{err: boom}, "m", zerolog.Nop())
	_, err := a.AskCBAExpert(context.Background(), "q")
	assert.ErrorIs(t, err, boom)
}

func TestSearchPlayer_Found(t *testing.T) {
	gen := &fakeGenerator{text: `{"found":true,"player":{"name":"Connor McDavid","position":"C","age":27,"capHit":12500000,"contractLength":8,"contractYear":8,"expiryStatus":"UFA","clause":"NMC","team":"EDM"}}`}
	a := NewWithGenerator(gen, "m", zerolog.Nop())

	c, found, err := a.SearchPlayer(context.Background(), "McDavid")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "application/json", gen.config.ResponseMIMEType)
	assert.Contains(t, gen.prompt, "McDavid")

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Connor McDavid", c.Name)
	assert.Equal(t, domain.PositionCenter, c.Position)
	assert.Equal(t, int64(12_500_000), c.CapHit)
	assert.Equal(t, int64(12_500_000), c.AAV, "aav defaults to cap hit")
	assert.Equal(t, domain.ClauseNoMovement, c.Clause)
	assert.Equal(t, "edm", c.TeamID)
	assert.True(t, c.IsSigned)
}

func TestSearchPlayer_NotFound(t *testing.T) {
	tests := map[string]string{
		"not found":        `{"found":false}`,
		"found no player":  `{"found":true}`,
		"unparsable":       `sorry, I cannot help`,
		"unknown position": `{"found":true,"player":{"name":"X","position":"Striker","age":20,"capHit":1}}`,
		"missing name":     `{"found":true,"player":{"position":"D","age":20,"capHit":1}}`,
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			a := NewWithGenerator(&fakeGenerator{text: text}, "m", zerolog.Nop())
			_, found, err := a.SearchPlayer(context.Background(), "someone")
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}
