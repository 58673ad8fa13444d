package navigation

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organo/internal/domain"
	"organo/internal/voice"
)

type memoryHistory struct {
	mu   sync.Mutex
	cmds []domain.Command
}

func (m *memoryHistory) InsertCommand(cmd domain.Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cmds = append(m.cmds, cmd)
	return nil
}

func (m *memoryHistory) ListCommands(int) ([]domain.Command, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Command(nil), m.cmds...), nil
}

func TestHandle_Navigation(t *testing.T) {
	history := &memoryHistory{}
	var moves []domain.Screen
	svc := New(nil, history, NavigatorFunc(func(_ domain.Command, screen domain.Screen) {
		moves = append(moves, screen)
	}), nil)
	svc.SetTopics([]string{"Estructura", "Burocracia"})
	ctx := context.Background()

	cmd, ok := svc.Handle(ctx, "Ir a TEMAS")
	require.True(t, ok)
	assert.Equal(t, voice.Navigate(voice.ScreenTopics), cmd.Intent)
	assert.Equal(t, voice.ScreenHome, cmd.Screen)
	assert.Equal(t, voice.ScreenTopics, svc.Current())

	cmd, ok = svc.Handle(ctx, "abrir burocracia")
	require.True(t, ok)
	assert.Equal(t, voice.IntentOpenTopic, cmd.Intent)
	assert.Equal(t, "Burocracia", cmd.Topic)
	assert.Equal(t, voice.ScreenTopic, svc.Current())
	assert.Equal(t, "Burocracia", svc.Topic())

	_, ok = svc.Handle(ctx, "volver")
	require.True(t, ok)
	assert.Equal(t, voice.ScreenTopics, svc.Current())

	_, ok = svc.Handle(ctx, "al inicio")
	require.True(t, ok)
	assert.Equal(t, []domain.Screen{voice.ScreenHome}, svc.Stack())

	assert.Equal(t, []domain.Screen{voice.ScreenTopics, voice.ScreenTopic, voice.ScreenTopics, voice.ScreenHome}, moves)
	assert.Len(t, history.cmds, 4)
}

func TestHandle_Unmatched(t *testing.T) {
	history := &memoryHistory{}
	svc := New(nil, history, nil, nil)
	ctx := context.Background()

	cmd, ok := svc.Handle(ctx, "buenos días")
	assert.False(t, ok)
	assert.False(t, cmd.Matched())
	assert.Equal(t, "buenos dias", cmd.Normalized)
	assert.Equal(t, voice.ScreenHome, svc.Current())
	assert.Len(t, history.cmds, 1, "unmatched commands are still recorded")

	_, ok = svc.Handle(ctx, "   ")
	assert.False(t, ok)
	assert.Len(t, history.cmds, 1, "blank transcripts are not recorded")
}

func TestHandle_BackAtRootStaysHome(t *testing.T) {
	svc := New(nil, nil, nil, nil)

	_, ok := svc.Handle(context.Background(), "atrás")

	assert.True(t, ok)
	assert.Equal(t, []domain.Screen{voice.ScreenHome}, svc.Stack())
}

func TestHandle_OpenTopicNeedsKnownTitle(t *testing.T) {
	svc := New(nil, nil, nil, nil)
	svc.SetTopics([]string{"Estructura"})
	_, ok := svc.Handle(context.Background(), "temas")
	require.True(t, ok)

	cmd, ok := svc.Handle(context.Background(), "abrir adhocracia")

	assert.False(t, ok)
	assert.Empty(t, cmd.Intent)
	assert.Equal(t, voice.ScreenTopics, svc.Current())
}

func TestNew_ConfiguredSetsOverrideDefaults(t *testing.T) {
	svc := New(map[domain.Screen][]domain.KeywordSet{
		voice.ScreenHome: {{Intent: voice.Navigate(voice.ScreenExam), Keywords: []string{"evaluación"}}},
	}, nil, nil, nil)

	_, ok := svc.Handle(context.Background(), "temas")
	assert.False(t, ok, "home defaults are replaced")

	_, ok = svc.Handle(context.Background(), "quiero la evaluacion")
	require.True(t, ok)
	assert.Equal(t, voice.ScreenExam, svc.Current())

	_, ok = svc.Handle(context.Background(), "volver")
	assert.True(t, ok, "other screens keep their defaults")
	assert.Equal(t, voice.ScreenHome, svc.Current())
}

func TestHandle_CommandWordAloneDoesNotOpenTopic(t *testing.T) {
	svc := New(nil, nil, nil, nil)
	_, ok := svc.Handle(context.Background(), "temas")
	require.True(t, ok)
	svc.SetTopics([]string{"Sistemas de información", "Diversificación"})

	for _, said := range []string{"tema", "abrir"} {
		cmd, ok := svc.Handle(context.Background(), said)
		assert.False(t, ok, said)
		assert.Empty(t, cmd.Topic, said)
	}
	assert.Equal(t, voice.ScreenTopics, svc.Current())

	cmd, ok := svc.Handle(context.Background(), "ver sistemas de informacion")
	require.True(t, ok)
	assert.Equal(t, "Sistemas de información", cmd.Topic)
}

func TestHandleUtterance_RecordsOneRowPerUtterance(t *testing.T) {
	history := &memoryHistory{}
	svc := New(nil, history, nil, nil)
	ctx := context.Background()

	_, ok := svc.HandleUtterance(ctx, voice.Utterance{Text: "hola", Latest: "hola", Final: true})
	assert.False(t, ok)
	_, ok = svc.HandleUtterance(ctx, voice.Utterance{Text: "hola tem", Latest: "tem", Final: false})
	assert.False(t, ok)
	cmd, ok := svc.HandleUtterance(ctx, voice.Utterance{Text: "hola temas", Latest: "temas", Final: true})
	require.True(t, ok)
	assert.Equal(t, "temas", cmd.Transcript)
	assert.Equal(t, "hola temas", cmd.Normalized)

	rows, err := history.ListCommands(0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "hola", rows[0].Transcript)
	assert.False(t, rows[0].Matched())
	assert.Equal(t, "temas", rows[1].Transcript)
	assert.Equal(t, voice.Navigate(voice.ScreenTopics), rows[1].Intent)
}

func TestHandleUtterance_RecordsMatchedInterim(t *testing.T) {
	history := &memoryHistory{}
	svc := New(nil, history, nil, nil)

	_, ok := svc.HandleUtterance(context.Background(), voice.Utterance{Text: "temas", Latest: "temas", Final: false})
	require.True(t, ok)

	rows, err := history.ListCommands(0)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestHandle_ExamScreenHasNoSubmitCommand(t *testing.T) {
	svc := New(nil, nil, nil, nil)
	_, ok := svc.Handle(context.Background(), "examen")
	require.True(t, ok)

	_, ok = svc.Handle(context.Background(), "entregar")

	assert.False(t, ok)
	assert.Equal(t, voice.ScreenExam, svc.Current())
}
