package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Review ReviewConfig `mapstructure:"review"`
	Match  MatchConfig  `mapstructure:"match"`
	Speech SpeechConfig `mapstructure:"speech"`
	Data   DataConfig   `mapstructure:"data"`
	UI     UIConfig     `mapstructure:"ui"`
}

type ReviewConfig struct {
	CountdownTicks int           `mapstructure:"countdown_ticks" validate:"gte=1"`
	TickInterval   time.Duration `mapstructure:"tick_interval" validate:"gt=0"`
	FeedbackDelay  time.Duration `mapstructure:"feedback_delay" validate:"gte=0"`
	AudioDelay     time.Duration `mapstructure:"audio_delay" validate:"gte=0"`
	FuzzyThreshold int           `mapstructure:"fuzzy_threshold" validate:"gte=0"`
	XPReward       int           `mapstructure:"xp_reward" validate:"gte=0"`
	XPPenalty      int           `mapstructure:"xp_penalty" validate:"gte=0"`
}

type MatchConfig struct {
	PageSize       int `mapstructure:"page_size" validate:"gte=1"`
	ScoreIncrement int `mapstructure:"score_increment" validate:"gte=0"`
	XPReward       int `mapstructure:"xp_reward" validate:"gte=0"`
	XPPenalty      int `mapstructure:"xp_penalty" validate:"gte=0"`
}

type SpeechConfig struct {
	Language           string  `mapstructure:"language" validate:"required,bcp47_language_tag"`
	Rate               float64 `mapstructure:"rate" validate:"gt=0,lte=2"`
	SynthesizerCommand string  `mapstructure:"synthesizer_command"`
	RecognizerCommand  string  `mapstructure:"recognizer_command"`
}

type DataConfig struct {
	DecksDirectory   string `mapstructure:"decks_directory"`
	StoriesDirectory string `mapstructure:"stories_directory"`
	PairsFile        string `mapstructure:"pairs_file" validate:"omitempty,file"`
}

type UIConfig struct {
	Language string `mapstructure:"language" validate:"required,bcp47_language_tag"`
}

func Load(configFile string) (*Config, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("newValidator() > %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lexi")
	}

	v.SetDefault("review.countdown_ticks", 10)
	v.SetDefault("review.tick_interval", "1s")
	v.SetDefault("review.feedback_delay", "1500ms")
	v.SetDefault("review.audio_delay", "500ms")
	v.SetDefault("review.fuzzy_threshold", 2)
	v.SetDefault("review.xp_reward", 10)
	v.SetDefault("review.xp_penalty", 2)
	v.SetDefault("match.page_size", 5)
	v.SetDefault("match.score_increment", 10)
	v.SetDefault("match.xp_reward", 10)
	v.SetDefault("match.xp_penalty", 2)
	v.SetDefault("speech.language", "fr")
	v.SetDefault("speech.rate", 0.8)
	v.SetDefault("data.decks_directory", filepath.Join("data", "decks"))
	v.SetDefault("data.stories_directory", filepath.Join("data", "stories"))
	v.SetDefault("ui.language", "en")

	// Speech commands and languages can be overridden per machine
	// without touching the config file.
	envBindings := [][2]string{
		{"speech.synthesizer_command", "LEXI_SPEECH_SYNTHESIZER"},
		{"speech.recognizer_command", "LEXI_SPEECH_RECOGNIZER"},
		{"speech.language", "LEXI_SPEECH_LANGUAGE"},
		{"ui.language", "LEXI_UI_LANGUAGE"},
	}
	for _, binding := range envBindings {
		if err := v.BindEnv(binding[0], binding[1]); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", binding[1], err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(trans))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
