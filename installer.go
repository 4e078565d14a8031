package boardagent

import (
	"context"
	"net"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// InstallStatus classifies one dependency-bootstrap attempt.
type InstallStatus string

const (
	// InstallSkipped means no network was reachable; no process was launched.
	InstallSkipped InstallStatus = "skipped"
	// InstallSucceeded means the install command exited 0.
	InstallSucceeded InstallStatus = "succeeded"
	// InstallFailed means the command exited non-zero or failed to launch.
	InstallFailed InstallStatus = "failed"
)

// Installer state, observable via State.
const (
	installerIdle int32 = iota
	installerInstalling
	installerDone
)

// InstallOutcome is the terminal result of one bootstrap attempt, with the
// captured process output kept for diagnostics.
type InstallOutcome struct {
	Status InstallStatus
	Stdout string
	Stderr string
	Err    error
}

// Installer bootstraps the project template package through an external
// package manager. It is policy only: whether to run (network reachability)
// and what to run; process mechanics live in the CommandRunner.
type Installer struct {
	runner CommandRunner
	online func() bool
	bin    string
	pkg    string

	state atomic.Int32
}

// NewInstaller builds an installer over runner. Binary and package default
// from the environment (EnvInstallerBin, EnvTemplatePackage).
func NewInstaller(runner CommandRunner) *Installer {
	return &Installer{
		runner: runner,
		online: networkAvailable,
		bin:    EnvString(EnvInstallerBin, DefaultInstallerBin),
		pkg:    EnvString(EnvTemplatePackage, DefaultTemplatePackage),
	}
}

// State returns "idle", "installing" or "done".
func (i *Installer) State() string {
	switch i.state.Load() {
	case installerInstalling:
		return "installing"
	case installerDone:
		return "done"
	default:
		return "idle"
	}
}

// Install runs one bootstrap attempt synchronously. No retry: a failed
// attempt stays failed until the host triggers another run.
func (i *Installer) Install(ctx context.Context) InstallOutcome {
	i.state.Store(installerInstalling)
	defer i.state.Store(installerDone)

	if i.online != nil && !i.online() {
		log.Info().Str("package", i.pkg).Msg("no network, template install skipped")
		return InstallOutcome{Status: InstallSkipped}
	}

	result, err := i.runner.Run(ctx, i.bin, "new", "install", i.pkg)
	outcome := InstallOutcome{
		Stdout: result.Stdout,
		Stderr: result.Stderr,
		Err:    err,
	}
	if err == nil && result.Success() {
		outcome.Status = InstallSucceeded
		log.Info().Str("package", i.pkg).Msg("template package installed")
		return outcome
	}
	outcome.Status = InstallFailed
	log.Warn().Err(err).
		Str("package", i.pkg).
		Int("exit_code", result.ExitCode).
		Msg("template package install failed")
	return outcome
}

// Start runs Install on its own goroutine and returns a buffered channel the
// host may ignore. Failures and panics are contained here; nothing from this
// path is allowed back into host startup.
func (i *Installer) Start(ctx context.Context) <-chan InstallOutcome {
	done := make(chan InstallOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("template install panicked")
				done <- InstallOutcome{Status: InstallFailed}
			}
		}()
		done <- i.Install(ctx)
	}()
	return done
}

// networkAvailable reports whether any non-loopback interface is up with at
// least one address. A local check only; no packets are sent.
func networkAvailable() bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err == nil && len(addrs) > 0 {
			return true
		}
	}
	return false
}
