package common

import (
	"io"

	"github.com/erth-network/anml-cli/cli/service"
)

const (
	EnvFileFlag  = "env-file"
	LogLevelFlag = "log-level"
	VerboseFlag  = "verbose"
	QuietFlag    = "quiet"
)

type GlobalFlags struct {
	EnvFile  string
	LogLevel string
	Verbose  bool
	Quiet    bool

	// EnvFileExplicit is set when --env-file was given; the file must then exist.
	EnvFileExplicit bool
}

// Runtime is shared by every command of one invocation. Configuration and Operations
// are created on first use so that usage errors never touch the environment.
type Runtime struct {
	Flags  GlobalFlags
	Stdout io.Writer
	Stderr io.Writer

	factory OperationsFactory
	cfg     *service.Config
	ops     Operations
}

func NewRuntime(stdout, stderr io.Writer, factory OperationsFactory) *Runtime {
	return &Runtime{
		Flags:   GlobalFlags{EnvFile: service.DefaultEnvFile, LogLevel: "info"},
		Stdout:  stdout,
		Stderr:  stderr,
		factory: factory,
	}
}

func (r *Runtime) Config() (service.Config, error) {
	if r.cfg != nil {
		return *r.cfg, nil
	}
	cfg, err := service.LoadConfig(r.Flags.EnvFile, r.Flags.EnvFileExplicit)
	if err != nil {
		return service.Config{}, err
	}
	r.cfg = &cfg
	return cfg, nil
}

// Output is where operation results go. Quiet mode discards them.
func (r *Runtime) Output() io.Writer {
	if r.Flags.Quiet {
		return io.Discard
	}
	return r.Stdout
}

func (r *Runtime) Operations() (Operations, error) {
	if r.ops != nil {
		return r.ops, nil
	}
	cfg, err := r.Config()
	if err != nil {
		return nil, err
	}
	ops, err := r.factory(cfg, r.Output())
	if err != nil {
		return nil, err
	}
	r.ops = ops
	return ops, nil
}
