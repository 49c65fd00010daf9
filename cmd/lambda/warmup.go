package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

const (
	// WarmupSource identifies scheduled warmup events
	WarmupSource = "warmup"

	// WarmupDelay keeps warmed instances busy long enough to overlap
	WarmupDelay = 75 * time.Millisecond
)

// WarmupEvent is the scheduled event payload that keeps instances warm
type WarmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

// WarmupResponse is the response returned by warmup operations
type WarmupResponse struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
}

// IsWarmupEvent checks if the event is a warmup event
func IsWarmupEvent(event json.RawMessage) (*WarmupEvent, bool) {
	var warmup WarmupEvent
	if err := json.Unmarshal(event, &warmup); err != nil {
		return nil, false
	}
	if warmup.Source != WarmupSource {
		return nil, false
	}
	if warmup.Concurrency < 0 {
		warmup.Concurrency = 0
	}
	return &warmup, true
}

// invoker abstracts the Lambda client for self-invocation
type invoker interface {
	Invoke(ctx context.Context, params *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

// newInvoker is replaced in tests
var newInvoker = func(ctx context.Context) (invoker, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return lambdasdk.NewFromConfig(cfg), nil
}

// HandleWarmup answers a warmup event and asynchronously invokes this
// function Concurrency more times.
func HandleWarmup(ctx context.Context, warmup *WarmupEvent) (*WarmupResponse, error) {
	instancesWarmed := 1

	if warmup.Concurrency > 0 {
		if err := selfInvoke(ctx, warmup.Concurrency); err != nil {
			log.Printf("warmup: self invoke failed: %v", err)
		} else {
			instancesWarmed += warmup.Concurrency
		}
	}

	time.Sleep(WarmupDelay)

	return &WarmupResponse{Status: "warm", InstancesWarmed: instancesWarmed}, nil
}

func selfInvoke(ctx context.Context, count int) error {
	client, err := newInvoker(ctx)
	if err != nil {
		return err
	}

	// Child invocations carry concurrency 0 so they do not recurse
	payload, err := json.Marshal(WarmupEvent{Source: WarmupSource})
	if err != nil {
		return err
	}
	functionName := os.Getenv("AWS_LAMBDA_FUNCTION_NAME")

	var (
		wg        sync.WaitGroup
		errMu     sync.Mutex
		invokeErr error
	)
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := client.Invoke(ctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(functionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})
			if err != nil {
				errMu.Lock()
				if invokeErr == nil {
					invokeErr = err
				}
				errMu.Unlock()
			}
		}()
	}

	wg.Wait()
	return invokeErr
}
