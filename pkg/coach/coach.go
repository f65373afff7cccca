package coach

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Shivsankar1987/deutschcoach/pkg/coach/dictation"
	"github.com/Shivsankar1987/deutschcoach/pkg/coach/session"
	"github.com/Shivsankar1987/deutschcoach/pkg/core"
	"github.com/Shivsankar1987/deutschcoach/pkg/core/chat"
	"github.com/Shivsankar1987/deutschcoach/pkg/core/voice/stt"
	"github.com/Shivsankar1987/deutschcoach/pkg/core/voice/tts"
)

// DefaultMinAudioBytes rejects empty/near-empty recordings. Kept low to
// be forgiving for short mobile recordings.
const DefaultMinAudioBytes = 500

// Config tunes the orchestrator.
type Config struct {
	MinAudioBytes   int
	TranscribeModel string
	ChatModel       string
	Temperature     float32
	TTSModel        string
	TTSVoice        string

	// StrictTTS makes a synthesis failure fail the whole turn instead of
	// degrading to an empty audio field.
	StrictTTS bool

	// UpstreamTimeout bounds each collaborator call. Zero disables the bound.
	UpstreamTimeout time.Duration
}

// Coach orchestrates a tutoring turn: transcription, mode-shaped
// completion, history upkeep, and reply synthesis.
type Coach struct {
	cfg        Config
	stt        stt.Provider
	chat       chat.Provider
	tts        tts.Provider
	sessions   *session.Store
	dictations *dictation.Store
	logger     *slog.Logger
}

// New creates a Coach with fresh in-memory stores.
func New(cfg Config, sttProvider stt.Provider, chatProvider chat.Provider, ttsProvider tts.Provider, maxTurns int, logger *slog.Logger) *Coach {
	if cfg.MinAudioBytes <= 0 {
		cfg.MinAudioBytes = DefaultMinAudioBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Coach{
		cfg:        cfg,
		stt:        sttProvider,
		chat:       chatProvider,
		tts:        ttsProvider,
		sessions:   session.NewStore(maxTurns),
		dictations: dictation.NewStore(),
		logger:     logger,
	}
}

// Sessions exposes the conversation store.
func (c *Coach) Sessions() *session.Store { return c.sessions }

// Dictations exposes the dictation store.
func (c *Coach) Dictations() *dictation.Store { return c.dictations }

// TalkRequest is one spoken client turn.
type TalkRequest struct {
	SessionID string
	Mode      string
	Audio     []byte
	Filename  string
}

// TalkResult is the outcome of a talk turn. For a dictation start,
// DictationReady is set and Reply/Audio stay empty.
type TalkResult struct {
	SessionID      string
	Transcript     string
	Reply          string
	Audio          []byte
	DictationReady bool
	Topic          string
	Status         string
}

// Talk runs one full turn. The session history is only mutated after the
// completion collaborator succeeded; dictation starts never touch it.
func (c *Coach) Talk(ctx context.Context, req TalkRequest) (*TalkResult, error) {
	if len(req.Audio) < c.cfg.MinAudioBytes {
		return nil, core.NewInvalidRequestErrorWithParam(
			"Audio too short/empty. Bitte etwas länger sprechen und noch einmal probieren.", "audio")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	transcript, err := c.transcribe(ctx, req)
	if err != nil {
		c.logger.Warn("transcription failed", "session_id", sessionID, "error", err)
		return nil, core.NewInvalidRequestError(
			"Transkription fehlgeschlagen. Bitte noch einmal probieren.")
	}

	mode := ParseMode(req.Mode)
	if mode == ModeDictation {
		return c.startDictation(ctx, sessionID, transcript)
	}

	messages := make([]chat.Message, 0, 2+c.sessions.Len(sessionID))
	messages = append(messages, chat.Message{
		Role:    chat.RoleSystem,
		Content: SystemPrompt + "\n" + mode.Instruction(),
	})
	messages = append(messages, c.sessions.Snapshot(sessionID)...)
	messages = append(messages, chat.Message{Role: chat.RoleUser, Content: transcript})

	reply, err := c.complete(ctx, messages)
	if err != nil {
		return nil, err
	}

	c.sessions.AppendTurn(sessionID, transcript, reply)

	audio, err := c.synthesize(ctx, reply)
	if err != nil {
		if c.cfg.StrictTTS {
			return nil, err
		}
		c.logger.Warn("synthesis failed, returning text-only reply",
			"session_id", sessionID, "error", err)
		audio = nil
	}

	return &TalkResult{
		SessionID:  sessionID,
		Transcript: transcript,
		Reply:      reply,
		Audio:      audio,
	}, nil
}

func (c *Coach) startDictation(ctx context.Context, sessionID, transcript string) (*TalkResult, error) {
	topic := ResolveTopic(transcript)

	raw, err := c.complete(ctx, []chat.Message{
		{Role: chat.RoleUser, Content: dictation.GenerationPrompt(topic)},
	})
	if err != nil {
		return nil, err
	}

	items := dictation.BuildItems(raw)
	c.dictations.Start(sessionID, topic, items)

	return &TalkResult{
		SessionID:      sessionID,
		Transcript:     transcript,
		DictationReady: true,
		Topic:          topic,
		Status:         fmt.Sprintf("Diktat zum Thema %q ist bereit. Drücke 'Weiter' für das erste Wort!", topic),
	}, nil
}

// DictationStep is the outcome of one dictation/next call.
type DictationStep struct {
	SessionID  string
	Done       bool
	Status     string
	Audio      []byte
	RevealText string
}

// DictationNext advances the exercise cursor and synthesizes the revealed
// item. Past the end it is an idempotent terminal read without synthesis.
func (c *Coach) DictationNext(ctx context.Context, sessionID string) (*DictationStep, error) {
	step, err := c.dictations.Advance(sessionID)
	if err != nil {
		return nil, core.NewInvalidRequestError(
			"Kein Diktat aktiv. Starte zuerst ein Diktat (Modus 'dictation').")
	}

	if !step.Revealed {
		return &DictationStep{
			SessionID: sessionID,
			Done:      true,
			Status:    "Diktat fertig! Super gemacht!",
		}, nil
	}

	status := fmt.Sprintf("Eintrag %d von %d. Höre gut zu und schreibe!", step.Index+1, dictation.ItemCount)
	if step.Done {
		status = "Letzter Eintrag! Höre gut zu und schreibe!"
	}

	audio, err := c.synthesize(ctx, step.Item)
	if err != nil {
		if c.cfg.StrictTTS {
			return nil, err
		}
		c.logger.Warn("dictation synthesis failed", "session_id", sessionID, "error", err)
		audio = nil
	}

	return &DictationStep{
		SessionID:  sessionID,
		Done:       step.Done,
		Status:     status,
		Audio:      audio,
		RevealText: step.Item,
	}, nil
}

// Reset clears both stores for the session. Unknown ids are a no-op.
func (c *Coach) Reset(sessionID string) {
	c.sessions.Delete(sessionID)
	c.dictations.Delete(sessionID)
}

func (c *Coach) transcribe(ctx context.Context, req TalkRequest) (string, error) {
	ctx, cancel := c.boundCtx(ctx)
	defer cancel()

	t, err := c.stt.Transcribe(ctx, bytes.NewReader(req.Audio), stt.TranscribeOptions{
		Model:    c.cfg.TranscribeModel,
		Filename: req.Filename,
	})
	if err != nil {
		return "", err
	}
	return t.Text, nil
}

func (c *Coach) complete(ctx context.Context, messages []chat.Message) (string, error) {
	ctx, cancel := c.boundCtx(ctx)
	defer cancel()

	return c.chat.Complete(ctx, messages, chat.CompleteOptions{
		Model:       c.cfg.ChatModel,
		Temperature: c.cfg.Temperature,
	})
}

func (c *Coach) synthesize(ctx context.Context, text string) ([]byte, error) {
	ctx, cancel := c.boundCtx(ctx)
	defer cancel()

	s, err := c.tts.Synthesize(ctx, text, tts.SynthesizeOptions{
		Model: c.cfg.TTSModel,
		Voice: c.cfg.TTSVoice,
	})
	if err != nil {
		return nil, err
	}
	return s.Audio, nil
}

func (c *Coach) boundCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.UpstreamTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.cfg.UpstreamTimeout)
}
