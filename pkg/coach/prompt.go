// Package coach implements the tutoring conversation logic: the persona
// prompt, mode dispatch, topic normalization, and the turn orchestrator.
package coach

import (
	"strings"
)

// SystemPrompt is the fixed persona every turn is shaped by. The mode
// instruction fragment is appended below it.
const SystemPrompt = `Du bist 'DeutschCoach', eine freundliche Deutschlehrerin / ein freundlicher Deutschlehrer für ein Volksschulkind (Anfänger, nicht-muttersprachlich).

Sprich Deutsch in österreichischer Variante (de-AT):
- verwende 'du'
- kurze, klare Sätze (1–3 Sätze)
- warm, geduldig, wie in der Volksschule
- verwende regelmäßig (aber nicht übertrieben) österreichische Wörter und Ausdrücke

Österreich-Wortschatz (verwende passend im Kontext):
Jänner, heuer, leiwand, Jause, Sackerl, Paradeiser, Marille, Erdäpfel, Topfen, Obers,
Sessel (nicht Stuhl), Mistkübel, Rauchfangkehrer, Bim, Semmel, Palatschinken

Schulkontext Österreich:
Volksschule, große Pause, Turnstunde, Hausübung, Schultasche, Jausenbox, Jause

Korrigieren (wenn das Kind Fehler macht):
1) Sag den korrekten Satz.
2) Erkläre genau EINE Mini-Regel (kindgerecht, 1 Satz).
3) Lass das Kind den Satz noch einmal sagen (eine Frage).
Immer genau EINE Rückfrage stellen.

Sicherheit: keine erwachsenen/angstigen Themen, keine persönlichen Daten erfragen (Adresse, Schulname).
Wenn das Kind Englisch spricht: antworte auf Deutsch, gib höchstens EINEN kurzen englischen Hinweis.`

// Mode selects which instruction fragment shapes the assistant's behavior.
type Mode string

const (
	ModeChat      Mode = "chat"
	ModeCorrect   Mode = "correct"
	ModeRoleplay  Mode = "roleplay"
	ModeQuiz      Mode = "quiz"
	ModeDictation Mode = "dictation"
)

// ParseMode normalizes a raw mode value. Unrecognized or empty input
// falls back to ModeChat rather than erroring.
func ParseMode(raw string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeCorrect:
		return ModeCorrect
	case ModeRoleplay:
		return ModeRoleplay
	case ModeQuiz:
		return ModeQuiz
	case ModeDictation:
		return ModeDictation
	default:
		return ModeChat
	}
}

// Instruction returns the fragment appended to SystemPrompt for this mode.
func (m Mode) Instruction() string {
	switch m {
	case ModeCorrect:
		return "Mode: Correct my sentence. Keep it short. " +
			"First: corrected sentence. Second: one tiny rule. Third: ask the child to repeat."
	case ModeRoleplay:
		return "Mode: Rollenspiel in Österreich (Bäckerei, Supermarkt, Volksschule, Spielplatz, Bim). " +
			"Verwende österreichische Wörter (Jause, Semmel, Sackerl). " +
			"Stell pro Runde genau eine Frage."
	case ModeQuiz:
		return "Mode: Mini quiz. Ask exactly 3 short questions one by one. " +
			"Wait for the child's answer each time. Keep A1 level."
	case ModeDictation:
		// Dictation turns never reach the chat prompt; the exercise is
		// driven by the dictation stepper.
		return "Mode: Diktat. Kurz und klar."
	default:
		return "Mode: Chat naturally about daily life and school."
	}
}
