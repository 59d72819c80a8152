package exec

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/viant/afs/url"
	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
	rssh "github.com/viant/gosh/runner/ssh"
	"github.com/viant/scy/cred/secret"
	"golang.org/x/crypto/ssh"

	"github.com/viant/slotor/model/types"
)

const name = "exec"

// Host identifies the machine a command body runs on.
type Host struct {
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`                 // bash://localhost/ or ssh://host:22/
	Credentials string `json:"credentials,omitempty" yaml:"credentials,omitempty"` // secret resource holding SSH credentials
}

// Input configures an exec body.
type Input struct {
	Host         *Host             `json:"host,omitempty" yaml:"host,omitempty"`
	Workdir      string            `json:"workdir,omitempty" yaml:"workdir,omitempty"`
	Env          map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
	Commands     []string          `json:"commands,omitempty" yaml:"commands,omitempty"`
	Every        time.Duration     `json:"every,omitempty" yaml:"every,omitempty"` // 0 runs the commands once
	TimeoutMs    int               `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty"`
	AbortOnError *bool             `json:"abortOnError,omitempty" yaml:"abortOnError,omitempty"`
	Writer       io.Writer         `json:"-" yaml:"-"` // combined output destination, defaults to stdout
}

// Init fills in host defaults.
func (i *Input) Init() {
	if i.Host == nil {
		i.Host = &Host{}
	}
	if i.Host.URL == "" {
		i.Host.URL = "bash://localhost/"
	}
}

// Service builds bodies that run shell commands, locally or over SSH.
// Sessions are cached per host so successive generations of a slot reuse the
// underlying shell.
type Service struct {
	sessions map[string]*sessionInfo
	mux      sync.Mutex
}

type sessionInfo struct {
	service *gosh.Service
}

// New creates a new exec factory
func New() *Service {
	return &Service{
		sessions: make(map[string]*sessionInfo),
	}
}

// Name returns the factory name
func (s *Service) Name() string {
	return name
}

// Signature returns the factory signature
func (s *Service) Signature() types.Signature {
	return types.Signature{
		Name:  name,
		Input: reflect.TypeOf(&Input{}),
	}
}

// New builds a body that executes input.Commands on the target host. With
// input.Every set the whole command list reruns at that interval until the
// context is cancelled; otherwise it runs once and the body returns.
func (s *Service) New(ctx context.Context, in interface{}) (types.Body, error) {
	input, ok := in.(*Input)
	if !ok {
		return nil, types.NewInvalidInputError(in)
	}
	input.Init()
	if len(input.Commands) == 0 {
		return nil, fmt.Errorf("exec body requires at least one command")
	}

	return func(ctx context.Context) error {
		if input.Every <= 0 {
			return s.runOnce(ctx, input)
		}
		ticker := time.NewTicker(input.Every)
		defer ticker.Stop()
		for {
			if err := s.runOnce(ctx, input); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
	}, nil
}

// runOnce executes the command list in order, writing combined output to the
// configured writer.
func (s *Service) runOnce(ctx context.Context, input *Input) error {
	session, err := s.getSession(ctx, input.Host, input.Env)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	if input.Workdir != "" {
		if _, _, err := session.service.Run(ctx, fmt.Sprintf("cd %s", input.Workdir)); err != nil {
			return fmt.Errorf("failed to change directory: %w", err)
		}
	}

	abortOnError := true
	if input.AbortOnError != nil {
		abortOnError = *input.AbortOnError
	}
	writer := input.Writer
	if writer == nil {
		writer = os.Stdout
	}

	timeoutDuration := time.Duration(input.TimeoutMs) * time.Millisecond
	if timeoutDuration == 0 {
		timeoutDuration = time.Minute
	}

	for _, cmd := range input.Commands {
		stdout, stderr, status := s.executeCommand(ctx, session, cmd, timeoutDuration)
		if stdout != "" {
			fmt.Fprintln(writer, stdout)
		}
		if abortOnError && status != 0 {
			if stderr == "" {
				stderr = stdout
			}
			return fmt.Errorf("command %q exited with status %v: %s", cmd, status, strings.TrimSpace(stderr))
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// executeCommand runs a single command and returns its output
func (s *Service) executeCommand(ctx context.Context, session *sessionInfo, command string, duration time.Duration) (string, string, int) {
	started := time.Now()
	stdout, status, err := session.service.Run(ctx, command, runner.WithTimeout(int(duration.Milliseconds())))
	elapsed := time.Since(started)
	if elapsed > duration && err == nil {
		err = fmt.Errorf("command %v timed out after: %s", command, elapsed)
	}

	if status == 0 && err == nil {
		return stdout, "", status
	}
	if stdout == "" && err != nil {
		stdout = err.Error()
	}
	return "", stdout, status
}

// getSession retrieves an existing session or creates a new one
func (s *Service) getSession(ctx context.Context, host *Host, env map[string]string) (*sessionInfo, error) {
	sessionID := host.URL

	s.mux.Lock()
	defer s.mux.Unlock()

	if session, ok := s.sessions[sessionID]; ok {
		return session, nil
	}

	var service *gosh.Service
	var err error

	envOptions := []runner.Option{}
	if len(env) > 0 {
		envOptions = append(envOptions, runner.WithEnvironment(env))
	}
	if url.Host(host.URL) == "localhost" {
		service, err = gosh.New(ctx, local.New(envOptions...))
	} else {
		config, cfgErr := s.getSSHConfig(ctx, host)
		if cfgErr != nil {
			return nil, fmt.Errorf("failed to get SSH config: %w", cfgErr)
		}
		sshHost := url.Host(host.URL)
		if !strings.Contains(sshHost, ":") {
			sshHost += ":22"
		}
		service, err = gosh.New(ctx, rssh.New(sshHost, config, envOptions...))
	}
	if err != nil {
		return nil, err
	}
	session := &sessionInfo{
		service: service,
	}
	s.sessions[sessionID] = session
	return session, nil
}

// getSSHConfig creates an SSH config from the host's secrets
func (s *Service) getSSHConfig(ctx context.Context, host *Host) (*ssh.ClientConfig, error) {
	credentials := host.Credentials
	if credentials == "" {
		credentials = "localhost"
	}
	secrets := secret.New()
	generic, err := secrets.GetCredentials(ctx, credentials)
	if err != nil {
		return nil, err
	}
	return generic.SSH.Config(ctx)
}

// Close releases all sessions held by this service
func (s *Service) Close(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	var errs []string
	for id, session := range s.sessions {
		if err := session.service.Close(); err != nil {
			errs = append(errs, fmt.Sprintf("failed to close session %s: %v", id, err))
		}
	}
	s.sessions = make(map[string]*sessionInfo)
	if len(errs) > 0 {
		return fmt.Errorf("errors closing sessions: %s", strings.Join(errs, "; "))
	}

	return nil
}
