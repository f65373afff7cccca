package coach

import (
	"math/rand/v2"
	"strings"
)

// Topics is the fixed catalog used when the child asks for a random
// dictation topic (or gives none).
var Topics = []string{
	"Tiere",
	"Schule",
	"Familie",
	"Essen und Jause",
	"Farben",
	"Zahlen",
	"Wetter",
	"Sport",
	"Spielplatz",
	"Kleidung",
	"Körper",
	"Natur",
}

var randomTopicMarkers = []string{"pick random", "random", "zufällig"}

// ResolveTopic normalizes free text into a dictation topic. Empty input
// and random-topic requests pick uniformly from Topics; everything else
// passes through trimmed.
func ResolveTopic(raw string) string {
	topic := strings.TrimSpace(raw)
	if topic == "" {
		return Topics[rand.IntN(len(Topics))]
	}

	lower := strings.ToLower(topic)
	for _, marker := range randomTopicMarkers {
		if strings.Contains(lower, marker) {
			return Topics[rand.IntN(len(Topics))]
		}
	}
	return topic
}
