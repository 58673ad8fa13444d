package voice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"organo/internal/domain"
	"organo/internal/voice"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"ÁRBOL  ", "arbol"},
		{"", ""},
		{"   ", ""},
		{"Organización Burocrática", "organizacion burocratica"},
		{"  Atrás ", "atras"},
		{"Pingüino", "pinguino"},
		{"estructura", "estructura"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, voice.Normalize(c.in), "Normalize(%q)", c.in)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	once := voice.Normalize("  Teoría de la CONTINGENCIA ")
	assert.Equal(t, once, voice.Normalize(once))
}

func TestMatchIntent_FirstSetWins(t *testing.T) {
	sets := []domain.KeywordSet{
		{Intent: "back", Keywords: []string{"volver", "atras"}},
		{Intent: "home", Keywords: []string{"inicio", "home"}},
	}

	got, ok := voice.MatchIntent(voice.Normalize("volver al inicio"), sets)

	assert.True(t, ok)
	assert.Equal(t, domain.Intent("back"), got)
}

func TestMatchIntent_OrderSensitive(t *testing.T) {
	sets := []domain.KeywordSet{
		{Intent: "home", Keywords: []string{"inicio", "home"}},
		{Intent: "back", Keywords: []string{"volver", "atras"}},
	}

	got, ok := voice.MatchIntent("volver al inicio", sets)

	assert.True(t, ok)
	assert.Equal(t, domain.Intent("home"), got)
}

func TestMatchIntent_RepeatedInputSameResult(t *testing.T) {
	sets := voice.DefaultKeywordSets()[voice.ScreenHome]
	first, ok1 := voice.MatchIntent("ir al examen", sets)
	second, ok2 := voice.MatchIntent("ir al examen", sets)

	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
	assert.Equal(t, voice.Navigate(voice.ScreenExam), first)
}

func TestMatchIntent_KeywordsAreNormalized(t *testing.T) {
	sets := []domain.KeywordSet{{Intent: "back", Keywords: []string{"Atrás"}}}

	got, ok := voice.MatchIntent("ir atras", sets)

	assert.True(t, ok)
	assert.Equal(t, domain.Intent("back"), got)
}

func TestMatchIntent_TextInsideKeyword(t *testing.T) {
	sets := []domain.KeywordSet{{Intent: "exam", Keywords: []string{"examen final"}}}

	got, ok := voice.MatchIntent("examen", sets)

	assert.True(t, ok)
	assert.Equal(t, domain.Intent("exam"), got)
}

func TestMatchIntent_NoMatch(t *testing.T) {
	sets := []domain.KeywordSet{{Intent: "back", Keywords: []string{"volver"}}}

	_, ok := voice.MatchIntent("buenos dias", sets)
	assert.False(t, ok)

	_, ok = voice.MatchIntent("", sets)
	assert.False(t, ok, "empty text never matches")

	_, ok = voice.MatchIntent("volver", []domain.KeywordSet{{Intent: "x", Keywords: []string{"", "  "}}})
	assert.False(t, ok, "blank keywords never match")
}

func TestLookupTopic(t *testing.T) {
	titles := []string{"Estructura Funcional", "Organización Matricial", "Burocracia"}

	got, ok := voice.LookupTopic(voice.Normalize("abrir organizacion matricial"), titles)
	assert.True(t, ok)
	assert.Equal(t, "Organización Matricial", got)

	got, ok = voice.LookupTopic("burocracia", titles)
	assert.True(t, ok)
	assert.Equal(t, "Burocracia", got)

	_, ok = voice.LookupTopic("adhocracia", titles)
	assert.False(t, ok)

	// Fragments of a title do not select it.
	_, ok = voice.LookupTopic("tema", []string{"Sistemas de información"})
	assert.False(t, ok)
	_, ok = voice.LookupTopic("ver", []string{"Diversificación"})
	assert.False(t, ok)
}

func TestTarget(t *testing.T) {
	s, ok := voice.Target(voice.Navigate(voice.ScreenTopics))
	assert.True(t, ok)
	assert.Equal(t, voice.ScreenTopics, s)

	_, ok = voice.Target(voice.IntentBack)
	assert.False(t, ok)
	_, ok = voice.Target("navigate:")
	assert.False(t, ok)
}
