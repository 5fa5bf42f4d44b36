package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mediscribe/internal/clinical"
	"mediscribe/internal/gateway/config"
	"mediscribe/internal/gateway/handler"
	"mediscribe/internal/gateway/middleware"
	"mediscribe/internal/gateway/server"
	"mediscribe/internal/llm"
	"mediscribe/internal/recordstore"
	"mediscribe/internal/transcribe"
	"mediscribe/internal/transcribe/audiostore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	llmClient, err := buildLLMClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("init completion client: %v", err)
	}
	llmClient = llm.Wrap(llmClient,
		llm.WithLogging(nil),
		llm.RateLimitFromEnv("LLM", "GROQ", "GEMINI"),
	)
	defer llmClient.Close()

	records := recordstore.NewFromEnv(cfg.RecordsPath)
	defer records.Close()

	pipeline := clinical.NewPipeline(llmClient, records)
	structurer := &clinical.Structurer{LLM: llmClient}

	speech, err := transcribe.NewClient(cfg.Speech.APIKey, cfg.Speech.Model)
	if err != nil {
		// Dictation upload stays disabled; note extraction still works.
		log.Printf("speech-to-text disabled: %v", err)
		speech = nil
	}

	var audio *audiostore.Store
	if cfg.Audio.Enabled {
		audio, err = audiostore.New(audiostore.Config{
			Endpoint:  cfg.Audio.Endpoint,
			Region:    cfg.Audio.Region,
			AccessKey: cfg.Audio.AccessKey,
			SecretKey: cfg.Audio.SecretKey,
			Bucket:    cfg.Audio.Bucket,
			UseSSL:    cfg.Audio.UseSSL,
		})
		if err != nil {
			log.Printf("audio store disabled: %v", err)
			audio = nil
		}
	}

	svc := handler.New(pipeline, structurer, speech, audio)
	srv := server.New(cfg.Port, middleware.CORS(handler.BuildMux(svc)))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server: %v", err)
		}
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}

func buildLLMClient(ctx context.Context, cfg config.LLMConfig) (llm.Client, error) {
	switch cfg.Provider {
	case "groq":
		return llm.NewGroqClient(cfg.APIKey, cfg.Model)
	case "gemini":
		return llm.NewGeminiClient(ctx, cfg.Model)
	case "fake":
		return llm.NewFakeClient(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
