package voice

import (
	"strings"

	"organo/internal/domain"
)

// Intents understood by the navigation service. Navigation targets are
// spelled "navigate:<screen>".
const (
	IntentBack      domain.Intent = "back"
	IntentOpenTopic domain.Intent = "open_topic"
	IntentStop      domain.Intent = "stop"
)

const navigatePrefix = "navigate:"

// Screens known to the client.
const (
	ScreenHome     domain.Screen = "home"
	ScreenSubjects domain.Screen = "subjects"
	ScreenTopics   domain.Screen = "topics"
	ScreenTopic    domain.Screen = "topic"
	ScreenExam     domain.Screen = "exam"
)

// Navigate returns the intent that moves to screen.
func Navigate(screen domain.Screen) domain.Intent {
	return domain.Intent(navigatePrefix + string(screen))
}

// Target returns the screen a navigation intent points to.
func Target(intent domain.Intent) (domain.Screen, bool) {
	screen, ok := strings.CutPrefix(string(intent), navigatePrefix)
	if !ok || screen == "" {
		return "", false
	}
	return domain.Screen(screen), true
}

var backKeywords = domain.KeywordSet{Intent: IntentBack, Keywords: []string{"volver", "atrás", "regresar"}}

// DefaultKeywordSets are the built-in Spanish commands per screen, in
// priority order.
func DefaultKeywordSets() map[domain.Screen][]domain.KeywordSet {
	return map[domain.Screen][]domain.KeywordSet{
		ScreenHome: {
			backKeywords,
			{Intent: Navigate(ScreenSubjects), Keywords: []string{"asignaturas", "materias"}},
			{Intent: Navigate(ScreenTopics), Keywords: []string{"temas"}},
			{Intent: Navigate(ScreenExam), Keywords: []string{"examen", "prueba"}},
			{Intent: IntentStop, Keywords: []string{"dejar de escuchar", "detener"}},
		},
		ScreenSubjects: {
			backKeywords,
			{Intent: Navigate(ScreenHome), Keywords: []string{"inicio", "home"}},
			{Intent: Navigate(ScreenTopics), Keywords: []string{"temas"}},
			{Intent: IntentStop, Keywords: []string{"dejar de escuchar", "detener"}},
		},
		ScreenTopics: {
			backKeywords,
			{Intent: Navigate(ScreenHome), Keywords: []string{"inicio", "home"}},
			{Intent: IntentOpenTopic, Keywords: []string{"abrir", "tema", "ver"}},
			{Intent: IntentStop, Keywords: []string{"dejar de escuchar", "detener"}},
		},
		ScreenTopic: {
			backKeywords,
			{Intent: Navigate(ScreenHome), Keywords: []string{"inicio", "home"}},
			{Intent: Navigate(ScreenExam), Keywords: []string{"examen", "prueba"}},
			{Intent: IntentStop, Keywords: []string{"dejar de escuchar", "detener"}},
		},
		ScreenExam: {
			backKeywords,
			{Intent: Navigate(ScreenHome), Keywords: []string{"inicio", "home"}},
			{Intent: IntentStop, Keywords: []string{"dejar de escuchar", "detener"}},
		},
	}
}
