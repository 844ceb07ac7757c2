package aws

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/yacchi/utsuwa/bind"
)

// ParameterStoreSource loads raw data from an AWS Systems Manager
// Parameter Store parameter. Subscriptions poll the parameter and push
// new data only when its version advances.
type ParameterStoreSource struct {
	name         string
	withDecrypt  bool
	pollInterval time.Duration
	cfg          clientConfig
	client       *ssm.Client

	clientInit    sync.Once
	clientInitErr error
}

// Ensure ParameterStoreSource implements the bind interfaces.
var _ bind.Source = (*ParameterStoreSource)(nil)
var _ bind.WatchableSource = (*ParameterStoreSource)(nil)

// ParameterStoreOption configures a ParameterStoreSource.
// It implements the Option interface.
type ParameterStoreOption func(*ParameterStoreSource)

// awsSourceOption implements the Option interface.
func (ParameterStoreOption) awsSourceOption() {}

// WithParameterStoreClient sets a custom SSM client for Parameter Store.
// This overrides WithAWSConfig for the SSM client.
func WithParameterStoreClient(client *ssm.Client) ParameterStoreOption {
	return func(s *ParameterStoreSource) {
		s.client = client
	}
}

// WithDecryption enables decryption for SecureString parameters.
// Default is false.
func WithDecryption(decrypt bool) ParameterStoreOption {
	return func(s *ParameterStoreSource) {
		s.withDecrypt = decrypt
	}
}

// WithPollInterval sets how often subscriptions poll the parameter
// version. Default is bind.DefaultPollInterval.
func WithPollInterval(interval time.Duration) ParameterStoreOption {
	return func(s *ParameterStoreSource) {
		s.pollInterval = interval
	}
}

// NewParameterStoreSource creates an SSM Parameter Store source for the given parameter name.
//
// Example:
//
//	src := aws.NewParameterStoreSource("/app/config")
//	src := aws.NewParameterStoreSource("/app/secrets", aws.WithDecryption(true))
//	src := aws.NewParameterStoreSource("/app/config", aws.WithAWSConfig(cfg))
//	src := aws.NewParameterStoreSource("/app/config", aws.WithParameterStoreClient(customClient))
func NewParameterStoreSource(name string, opts ...Option) *ParameterStoreSource {
	s := &ParameterStoreSource{
		name: name,
	}

	for _, opt := range opts {
		switch o := opt.(type) {
		case ClientOption:
			o(&s.cfg)
		case ParameterStoreOption:
			o(s)
		}
	}

	return s
}

// ensureClient creates a default SSM client if one was not provided.
func (s *ParameterStoreSource) ensureClient(ctx context.Context) error {
	if s.client != nil {
		return nil
	}

	s.clientInit.Do(func() {
		cfg, err := loadAWSConfig(ctx, &s.cfg)
		if err != nil {
			s.clientInitErr = err
			return
		}
		s.client = ssm.NewFromConfig(cfg)
	})
	return s.clientInitErr
}

func (s *ParameterStoreSource) getParameter(ctx context.Context) (version int64, value []byte, err error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	if err := s.ensureClient(ctx); err != nil {
		return 0, nil, err
	}

	result, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(s.name),
		WithDecryption: aws.Bool(s.withDecrypt),
	})
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get parameter %q: %w", s.name, err)
	}

	if result.Parameter == nil {
		return 0, nil, fmt.Errorf("parameter %q not found", s.name)
	}
	if result.Parameter.Value == nil {
		return 0, nil, fmt.Errorf("parameter %q has no value", s.name)
	}

	return result.Parameter.Version, []byte(*result.Parameter.Value), nil
}

// Load implements the bind.Source interface.
func (s *ParameterStoreSource) Load(ctx context.Context) ([]byte, error) {
	_, value, err := s.getParameter(ctx)
	return value, err
}

// Name returns the SSM parameter name.
func (s *ParameterStoreSource) Name() string {
	return s.name
}

// String implements the bind.Source interface.
func (s *ParameterStoreSource) String() string {
	return "ssm:" + s.name
}

// Subscribe implements the bind.WatchableSource interface.
// It polls the parameter on the configured interval and pushes the new
// value only when the parameter version advances, so unchanged
// parameters cost one GetParameter call per poll and no reload.
func (s *ParameterStoreSource) Subscribe(ctx context.Context, notify bind.NotifyFunc) (bind.StopFunc, error) {
	interval := s.pollInterval
	if interval <= 0 {
		interval = bind.DefaultPollInterval
	}

	subCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)

		// Version state lives here so each subscription detects changes
		// independently.
		var lastVersion int64
		var hasVersion bool

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-subCtx.Done():
				return
			case <-ticker.C:
				version, value, err := s.getParameter(subCtx)
				if err != nil {
					if subCtx.Err() != nil {
						return
					}
					notify(nil, err)
					continue
				}
				if hasVersion && version == lastVersion {
					continue
				}
				lastVersion = version
				hasVersion = true
				notify(value, nil)
			}
		}
	}()

	stop := func(ctx context.Context) error {
		cancel()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	}

	return stop, nil
}
