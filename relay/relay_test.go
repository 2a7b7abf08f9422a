package relay

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"file-aggregator/apierror"
	"file-aggregator/gemini"
	"file-aggregator/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) StreamGenerate(ctx context.Context, prompt string, gen gemini.GenerationConfig) (<-chan gemini.Chunk, error) {
	args := m.Called(ctx, prompt, gen)
	ch, _ := args.Get(0).(<-chan gemini.Chunk)
	return ch, args.Error(1)
}

type recordingSink struct {
	events []models.StreamEvent
	failAt int
}

func (s *recordingSink) Send(event models.StreamEvent) error {
	if s.failAt > 0 && len(s.events)+1 == s.failAt {
		return errors.New("client gone")
	}
	s.events = append(s.events, event)
	return nil
}

func feed(chunks ...gemini.Chunk) <-chan gemini.Chunk {
	ch := make(chan gemini.Chunk, len(chunks))
	for _, chunk := range chunks {
		ch <- chunk
	}
	close(ch)
	return ch
}

func terminalCount(events []models.StreamEvent) int {
	n := 0
	for _, event := range events {
		if event.Terminal() {
			n++
		}
	}
	return n
}

func TestOpen_EmptyInput(t *testing.T) {
	generator := &mockGenerator{}
	r := New(generator)

	for _, input := range []string{"", "   \n\t"} {
		chunks, err := r.Open(context.Background(), input)

		assert.Nil(t, chunks)
		assert.Equal(t, apierror.KindBadRequest, apierror.KindOf(err))
	}
	generator.AssertNotCalled(t, "StreamGenerate", mock.Anything, mock.Anything, mock.Anything)
}

func TestOpen_NoGenerator(t *testing.T) {
	chunks, err := New(nil).Open(context.Background(), "build a thing")

	assert.Nil(t, chunks)
	assert.Equal(t, apierror.KindUnavailable, apierror.KindOf(err))
}

func TestOpen_EmptyInputCheckedBeforeConfiguration(t *testing.T) {
	_, err := New(nil).Open(context.Background(), "")
	assert.Equal(t, apierror.KindBadRequest, apierror.KindOf(err))
}

func TestOpen_BuildsPromptAndParameters(t *testing.T) {
	generator := &mockGenerator{}
	stream := feed()
	generator.On("StreamGenerate", mock.Anything,
		mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "Request:\nadd caching\n")
		}),
		gemini.GenerationConfig{Temperature: 0.7, MaxOutputTokens: 1000},
	).Return(stream, nil)

	chunks, err := New(generator).Open(context.Background(), "add caching")

	require.NoError(t, err)
	assert.Equal(t, stream, chunks)
	generator.AssertExpectations(t)
}

func TestOpen_UpstreamFailure(t *testing.T) {
	generator := &mockGenerator{}
	generator.On("StreamGenerate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &gemini.StatusError{Code: 403, Message: "API key not valid"})

	chunks, err := New(generator).Open(context.Background(), "x")

	assert.Nil(t, chunks)
	assert.Equal(t, apierror.KindUpstream, apierror.KindOf(err))
	var statusErr *gemini.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 403, statusErr.Code)
}

func TestForward(t *testing.T) {
	testCases := []struct {
		name     string
		chunks   []gemini.Chunk
		outcome  Outcome
		expected []models.StreamEvent
	}{
		{
			name:    "fragments then done",
			chunks:  []gemini.Chunk{{Text: "a"}, {Text: "b"}, {Text: "c"}},
			outcome: OutcomeDone,
			expected: []models.StreamEvent{
				models.TextEvent("a"), models.TextEvent("b"), models.TextEvent("c"), models.DoneEvent(),
			},
		},
		{
			name:     "empty stream",
			outcome:  OutcomeDone,
			expected: []models.StreamEvent{models.DoneEvent()},
		},
		{
			name:    "failure after partial output",
			chunks:  []gemini.Chunk{{Text: "a"}, {Err: errors.New("upstream reset")}},
			outcome: OutcomeError,
			expected: []models.StreamEvent{
				models.TextEvent("a"), models.ErrorEvent("upstream reset"),
			},
		},
		{
			name:     "failure first",
			chunks:   []gemini.Chunk{{Err: errors.New("quota")}},
			outcome:  OutcomeError,
			expected: []models.StreamEvent{models.ErrorEvent("quota")},
		},
		{
			name:    "nothing after error",
			chunks:  []gemini.Chunk{{Err: errors.New("first")}, {Text: "late"}, {Err: errors.New("second")}},
			outcome: OutcomeError,
			expected: []models.StreamEvent{models.ErrorEvent("first")},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			sink := &recordingSink{}

			outcome := Forward(context.Background(), feed(testCase.chunks...), sink)

			assert.Equal(t, testCase.outcome, outcome)
			assert.Equal(t, testCase.expected, sink.events)
			assert.Equal(t, 1, terminalCount(sink.events))
			assert.True(t, sink.events[len(sink.events)-1].Terminal())
		})
	}
}

func TestForward_ClientGone(t *testing.T) {
	sink := &recordingSink{failAt: 2}

	outcome := Forward(context.Background(), feed(gemini.Chunk{Text: "a"}, gemini.Chunk{Text: "b"}, gemini.Chunk{Text: "c"}), sink)

	assert.Equal(t, OutcomeCanceled, outcome)
	assert.Equal(t, []models.StreamEvent{models.TextEvent("a")}, sink.events)
}

func TestForward_ContextCanceled(t *testing.T) {
	ch := make(chan gemini.Chunk)
	ctx, cancel := context.WithCancel(context.Background())
	sink := &recordingSink{}

	done := make(chan Outcome)
	go func() {
		done <- Forward(ctx, ch, sink)
	}()

	ch <- gemini.Chunk{Text: "a"}
	cancel()

	select {
	case outcome := <-done:
		assert.Equal(t, OutcomeCanceled, outcome)
	case <-time.After(5 * time.Second):
		t.Fatal("Forward did not return after cancel")
	}
	assert.Equal(t, []models.StreamEvent{models.TextEvent("a")}, sink.events)
}
