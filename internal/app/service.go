package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/semaphore"

	"biomelink/internal/domain"
	"biomelink/internal/telemetry"
)

// Request holds the resolved inputs for one connect attempt.
type Request struct {
	// Override is an explicit binary path; empty means none.
	Override string
	// Root is the project root searched for node_modules.
	Root string
	// Platform selects the prebuilt binary package.
	Platform domain.PlatformKey
	// TmpDir is forced into the discovery process environment.
	TmpDir string
}

// Activation adds the activation gates in front of a connect attempt.
type Activation struct {
	Request
	// Enable switches the integration on.
	Enable bool
	// RequireConfiguration demands a biome.json under Root.
	RequireConfiguration bool
}

// Service orchestrates locate -> discover -> bridge.
type Service struct {
	locator  domain.Locator
	launcher domain.Launcher
	bridge   *Bridge
	finder   domain.ConfigFinder
	logger   domain.Logger

	// inFlight admits one connect attempt at a time.
	inFlight *semaphore.Weighted
}

// NewService creates the application service with all dependencies injected.
func NewService(
	loc domain.Locator,
	la domain.Launcher,
	dl domain.Dialer,
	cf domain.ConfigFinder,
	lg domain.Logger,
) *Service {
	return &Service{
		locator:  loc,
		launcher: la,
		bridge:   NewBridge(dl, lg),
		finder:   cf,
		logger:   lg,
		inFlight: semaphore.NewWeighted(1),
	}
}

// Activate applies the enable and project-configuration gates, then connects.
// ErrDisabled and ErrNoProjectConfig are returned before any process or socket
// is touched.
func (s *Service) Activate(ctx context.Context, a Activation) (*domain.Transport, error) {
	if !a.Enable {
		return nil, domain.ErrDisabled
	}
	if a.RequireConfiguration {
		path, found, err := s.finder.FindConfig(a.Root)
		if err != nil {
			return nil, fmt.Errorf("find project configuration: %w", err)
		}
		if !found {
			return nil, fmt.Errorf("%w under %s", domain.ErrNoProjectConfig, a.Root)
		}
		s.logger.Debug("project configuration found", "path", path)
	}
	return s.Connect(ctx, a.Request)
}

// Connect runs the full pipeline and returns a ready transport. A second call
// while one is running fails with ErrConnectInProgress.
func (s *Service) Connect(ctx context.Context, req Request) (transport *domain.Transport, err error) {
	if !s.inFlight.TryAcquire(1) {
		return nil, domain.ErrConnectInProgress
	}
	defer s.inFlight.Release(1)

	id := uuid.NewString()
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "connect",
		attribute.String("biomelink.activation", id),
		attribute.String("biomelink.platform", req.Platform.String()),
	)
	defer func() {
		kind := domain.Kind(err)
		telemetry.EndSpan(span, kind, err)
		telemetry.RecordConnect(ctx, kind, time.Since(start))
		if err != nil {
			s.logger.Error("connect failed", "activation", id, "kind", kind, "err", err)
		}
	}()

	s.logger.Info("connecting", "activation", id, "root", req.Root, "platform", req.Platform.String())

	command, err := s.locate(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("binary resolved", "activation", id, "path", command)

	endpoint, err := s.discover(ctx, command, req.TmpDir)
	if err != nil {
		return nil, err
	}

	transport, err = s.open(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	s.logger.Info("connected", "activation", id, "endpoint", endpoint, "elapsed", time.Since(start).String())
	return transport, nil
}

// Locate resolves the binary without launching it.
func (s *Service) Locate(req Request) (string, error) {
	return s.locate(context.Background(), req)
}

// Discover resolves the binary and runs discovery without connecting.
func (s *Service) Discover(ctx context.Context, req Request) (command, endpoint string, err error) {
	command, err = s.locate(ctx, req)
	if err != nil {
		return "", "", err
	}
	endpoint, err = s.discover(ctx, command, req.TmpDir)
	if err != nil {
		return command, "", err
	}
	return command, endpoint, nil
}

func (s *Service) locate(ctx context.Context, req Request) (path string, err error) {
	_, span := telemetry.StartSpan(ctx, "locate")
	defer func() { telemetry.EndSpan(span, domain.Kind(err), err) }()

	path, found, err := s.locator.Locate(req.Override, req.Root, req.Platform)
	if err != nil {
		return "", fmt.Errorf("locate biome: %w", err)
	}
	if !found {
		if req.Override != "" {
			s.logger.Warn("binary override does not exist", "path", req.Override)
		}
		return "", fmt.Errorf("%w: no override and no node_modules install under %s", domain.ErrBinaryNotFound, req.Root)
	}
	return path, nil
}

func (s *Service) discover(ctx context.Context, command, tmpDir string) (endpoint string, err error) {
	ctx, span := telemetry.StartSpan(ctx, "discover", attribute.String("biomelink.command", command))
	defer func() { telemetry.EndSpan(span, domain.Kind(err), err) }()

	return s.launcher.Discover(ctx, command, tmpDir)
}

func (s *Service) open(ctx context.Context, endpoint string) (t *domain.Transport, err error) {
	ctx, span := telemetry.StartSpan(ctx, "bridge", attribute.String("biomelink.endpoint", endpoint))
	defer func() { telemetry.EndSpan(span, domain.Kind(err), err) }()

	return s.bridge.Open(ctx, endpoint)
}
