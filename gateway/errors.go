package gateway

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-reading-cache/provider"
)

var (
	// ErrRemoteGeneration is matched by every failed or unusable provider
	// response. Such results are never cached.
	ErrRemoteGeneration = errors.New("gateway: remote generation failed")

	// ErrConfigurationMissing is returned by provider-bound operations when no
	// API key is configured.
	ErrConfigurationMissing = provider.ErrConfigurationMissing

	errEmptyResponse = errors.New("empty response")
)

// RemoteGenerationError reports which operation's provider call failed.
type RemoteGenerationError struct {
	Op  string
	Err error
}

func (e *RemoteGenerationError) Error() string {
	return fmt.Sprintf("gateway: %s: remote generation failed: %v", e.Op, e.Err)
}

func (e *RemoteGenerationError) Unwrap() error {
	return e.Err
}

// Is makes every RemoteGenerationError match ErrRemoteGeneration.
func (e *RemoteGenerationError) Is(target error) bool {
	return target == ErrRemoteGeneration
}
