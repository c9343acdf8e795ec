package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"
	"golang.org/x/text/language"

	"github.com/lexi-app/lexi/internal/config"
	"github.com/lexi-app/lexi/internal/i18n"
	"github.com/lexi-app/lexi/internal/matchgame"
	"github.com/lexi-app/lexi/internal/review"
	"github.com/lexi-app/lexi/internal/speech"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// speechFlags are the per-command audio overrides.
type speechFlags struct {
	mute bool
	rate float64
}

// registerSpeechFlags attaches the shared audio flags to a command's
// flag set.
func registerSpeechFlags(flags *pflag.FlagSet, opts *speechFlags) {
	flags.BoolVar(&opts.mute, "mute", false, "disable audio cues")
	flags.Float64Var(&opts.rate, "rate", 0, "narration speed override (0 uses the configured rate)")
}

// newSynthesizer resolves the text-to-speech engine. Sessions degrade
// to silent mode when none is available.
func newSynthesizer(cfg *config.Config, mute bool) speech.Synthesizer {
	if mute {
		return speech.NullSynthesizer{}
	}
	synth, err := speech.NewCommandSynthesizer(cfg.Speech.SynthesizerCommand, slog.Default())
	if err != nil {
		slog.Warn("audio cues disabled", slog.Any("error", err))
		return speech.NullSynthesizer{}
	}
	return synth
}

func newRecognizer(cfg *config.Config) speech.Recognizer {
	if cfg.Speech.RecognizerCommand == "" {
		return speech.NullRecognizer{}
	}
	return speech.NewCommandRecognizer(cfg.Speech.RecognizerCommand, slog.Default())
}

func newTranslator(cfg *config.Config) (*i18n.Translator, error) {
	translator, err := i18n.New(cfg.UI.Language, "en")
	if err != nil {
		return nil, fmt.Errorf("i18n.New(%s) > %w", cfg.UI.Language, err)
	}
	return translator, nil
}

func speechLanguage(cfg *config.Config) (language.Tag, error) {
	tag, err := language.Parse(cfg.Speech.Language)
	if err != nil {
		return language.Und, fmt.Errorf("language.Parse(%s) > %w", cfg.Speech.Language, err)
	}
	return tag, nil
}

// speechRate picks the command-line override over the configured rate.
func speechRate(cfg *config.Config, override float64) float64 {
	if override > 0 {
		return override
	}
	return cfg.Speech.Rate
}

func reviewConfig(cfg *config.Config, tag language.Tag, rate float64) review.Config {
	return review.Config{
		CountdownTicks: cfg.Review.CountdownTicks,
		TickInterval:   cfg.Review.TickInterval,
		FeedbackDelay:  cfg.Review.FeedbackDelay,
		AudioDelay:     cfg.Review.AudioDelay,
		FuzzyThreshold: cfg.Review.FuzzyThreshold,
		XPReward:       cfg.Review.XPReward,
		XPPenalty:      cfg.Review.XPPenalty,
		Language:       tag,
		SpeechRate:     rate,
	}
}

func matchConfig(cfg *config.Config) matchgame.Config {
	return matchgame.Config{
		PageSize:       cfg.Match.PageSize,
		ScoreIncrement: cfg.Match.ScoreIncrement,
		XPReward:       cfg.Match.XPReward,
		XPPenalty:      cfg.Match.XPPenalty,
	}
}
