package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"
)

const statusProbeTimeout = 500 * time.Millisecond

// pinger is satisfied by remote stores that can report reachability.
type pinger interface {
	Ping(ctx context.Context) error
}

// probeMode re-checks remote availability so the prompt reflects outages
// and recoveries that happened after startup.
func (a *App) probeMode(ctx context.Context) Mode {
	p, ok := a.remote.(pinger)
	if !ok {
		return ModeLocal
	}
	ctx, cancel := context.WithTimeout(ctx, statusProbeTimeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return ModeLocal
	}
	return ModeOnline
}

func (a *App) getStatus() string {
	ctx := context.Background()
	a.Mode = a.probeMode(ctx)
	s := string(a.Mode)
	if email, ok := a.currentEmail(ctx); ok {
		s = email + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) currentEmail(ctx context.Context) (string, bool) {
	if !a.sessions.IsActive(ctx) {
		return "", false
	}
	user, err := a.sessions.CurrentUser(ctx, a.remote, a.directory)
	if err != nil || user == nil {
		return "", false
	}
	return user.Email, true
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to libmatch (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
