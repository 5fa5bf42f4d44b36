package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	LLM         LLMConfig
	Speech      SpeechConfig
	RecordsPath string
	Audio       AudioConfig
}

type LLMConfig struct {
	// Provider is "groq", "gemini", or "fake" (offline).
	Provider string
	Model    string
	APIKey   string
}

type SpeechConfig struct {
	APIKey string
	Model  string
}

type AudioConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8081", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:        *port,
		Env:         env,
		LLM:         loadLLMConfig(),
		Speech:      loadSpeechConfig(),
		RecordsPath: firstNonEmpty(strings.TrimSpace(os.Getenv("MEDICAL_HISTORY_PATH")), "data/medical_history.json"),
		Audio:       loadAudioConfig(env),
	}, nil
}

func loadLLMConfig() LLMConfig {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	if provider == "" {
		provider = "groq"
	}
	model := strings.TrimSpace(os.Getenv("LLM_MODEL"))
	if model == "" {
		switch provider {
		case "gemini":
			model = "gemini-2.0-flash"
		default:
			model = "llama-3.3-70b-versatile"
		}
	}
	return LLMConfig{
		Provider: provider,
		Model:    model,
		APIKey:   strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
	}
}

func loadSpeechConfig() SpeechConfig {
	return SpeechConfig{
		APIKey: strings.TrimSpace(os.Getenv("ELEVENLABS_API_KEY")),
		Model:  firstNonEmpty(strings.TrimSpace(os.Getenv("ELEVENLABS_MODEL")), "scribe_v2"),
	}
}

func loadAudioConfig(env string) AudioConfig {
	endpoint := resolveAudioEndpoint(env)
	return AudioConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("AUDIO_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("AUDIO_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("AUDIO_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("AUDIO_S3_BUCKET")), "mediscribe-audio"),
		UseSSL:    resolveAudioUseSSL(env),
	}
}

func resolveAudioEndpoint(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return strings.TrimSpace(os.Getenv("AUDIO_MINIO_ENDPOINT"))
	}
	return strings.TrimSpace(os.Getenv("AUDIO_S3_ENDPOINT"))
}

func resolveAudioUseSSL(env string) bool {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return false
	}
	raw := strings.TrimSpace(os.Getenv("AUDIO_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
