// Package main is the entry point for the tranx translation Lambda function.
package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/viper"

	"codeberg.org/snonux/tranx/internal/config"
	"codeberg.org/snonux/tranx/internal/handler"
	"codeberg.org/snonux/tranx/internal/logutil"
	"codeberg.org/snonux/tranx/internal/translation"
)

func main() {
	v := viper.New()
	if err := config.Init(v, ""); err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg, err := config.Load(v)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Lambda collects stderr, so never log to a file here
	if _, err := logutil.Setup(cfg.LogEnable, ""); err != nil {
		log.Fatalf("logging: %v", err)
	}

	translator, err := translation.NewProvider(cfg.TranslationConfig())
	if err != nil {
		log.Fatalf("translation: %v", err)
	}
	log.Printf("lambda: using %s translator, default target %s", translator.Name(), cfg.TargetLanguage)

	h := handler.New(translator, cfg.TargetLanguage)
	lambda.Start(func(ctx context.Context, event json.RawMessage) (interface{}, error) {
		return handleRequest(ctx, h, event)
	})
}

func handleRequest(ctx context.Context, h *handler.Handler, event json.RawMessage) (interface{}, error) {
	// Warmup detection (MUST be first - before any other processing)
	if warmup, ok := IsWarmupEvent(event); ok {
		return HandleWarmup(ctx, warmup)
	}

	// Parse the request and delegate to the handler
	var req handler.Request
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, err
	}

	return h.Handle(ctx, req)
}
