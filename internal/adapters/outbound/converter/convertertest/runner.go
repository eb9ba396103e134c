package convertertest

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/camelgen/camelgen/internal/domain"
)

// FakeRunner implements domain.CommandRunner by emulating the converter in
// process. Set ExitCode to simulate a failing converter and Fragment to have
// it leave a build fragment behind.
type FakeRunner struct {
	ExitCode int
	Stderr   string
	Fragment string

	mu    sync.Mutex
	calls []domain.Command
}

func (f *FakeRunner) Run(ctx context.Context, cmd domain.Command) (domain.CommandOutput, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return domain.CommandOutput{ExitCode: -1}, err
	}
	if f.ExitCode != 0 {
		return domain.CommandOutput{ExitCode: f.ExitCode, Stderr: []byte(f.Stderr)}, nil
	}

	written, err := Emulate(cmd.Args)
	if err != nil {
		return domain.CommandOutput{ExitCode: 1, Stderr: []byte(err.Error())}, nil
	}
	if f.Fragment != "" {
		if err := os.WriteFile(filepath.Join(cmd.Dir, domain.FragmentFileName), []byte(f.Fragment), 0644); err != nil {
			return domain.CommandOutput{ExitCode: -1}, err
		}
	}

	var stdout []byte
	for _, w := range written {
		stdout = append(stdout, []byte("Generated "+w+"\n")...)
	}
	return domain.CommandOutput{Stdout: stdout}, nil
}

// Calls returns the commands run so far.
func (f *FakeRunner) Calls() []domain.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Command, len(f.calls))
	copy(out, f.calls)
	return out
}
