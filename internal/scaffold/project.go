package scaffold

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// EntryFile is where the generated component is written inside the project.
const EntryFile = "src/App.js"

// Artifact is the project the session is building. It is complete once both
// the code and the name are set.
type Artifact struct {
	Code string
	Name string
}

func (a *Artifact) Complete() bool {
	return a != nil && a.Code != "" && a.Name != ""
}

// Status records which external steps already succeeded. Both flags only move
// from false to true.
type Status struct {
	Created               bool
	DependenciesInstalled bool
}

// Commands names the package-manager invocations. "%s" in Create args is
// replaced by the project name.
type Commands struct {
	Create  []string
	Install []string
	Start   []string
}

// DefaultCommands uses yarn.
func DefaultCommands() Commands {
	return Commands{
		Create:  []string{"yarn", "create", "react-app", "%s"},
		Install: []string{"yarn", "install"},
		Start:   []string{"yarn", "start"},
	}
}

// Scaffolder turns an Artifact into a running project under Root.
type Scaffolder struct {
	Root     string
	Runner   Runner
	Commands Commands
	Timeout  time.Duration
	Log      *zap.Logger
}

func (s *Scaffolder) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// ProjectDir is the directory the project named name lives in.
func (s *Scaffolder) ProjectDir(name string) string {
	return filepath.Join(s.Root, name)
}

// Run creates the project (unless already created), writes the entry file,
// installs dependencies (unless already installed) and starts it. The
// returned report lists each step's output. Any failing step aborts the run
// and its error is returned as is.
func (s *Scaffolder) Run(ctx context.Context, a *Artifact, st *Status) (string, error) {
	if !a.Complete() {
		return "", errors.New("scaffold: project artifact is incomplete")
	}
	if err := validateProjectName(a.Name); err != nil {
		return "", err
	}
	cmds := s.Commands
	if len(cmds.Create) == 0 {
		cmds = DefaultCommands()
	}
	var rep report

	if st.Created {
		rep.add("Creation", Result{Stdout: "Project already created."})
	} else {
		res, err := s.run(ctx, s.Root, expand(cmds.Create, a.Name))
		if err != nil {
			return "", err
		}
		st.Created = true
		rep.add("Creation", res)
	}

	dir := s.ProjectDir(a.Name)
	if err := writeEntry(dir, a.Code); err != nil {
		return "", err
	}

	if st.DependenciesInstalled {
		rep.add("Installation", Result{Stdout: "Dependencies already installed."})
	} else {
		res, err := s.run(ctx, dir, cmds.Install)
		if err != nil {
			return "", err
		}
		st.DependenciesInstalled = true
		rep.add("Installation", res)
	}

	res, err := s.run(ctx, dir, cmds.Start)
	if err != nil {
		return "", err
	}
	rep.add("Starting", res)
	return rep.String(), nil
}

func (s *Scaffolder) run(ctx context.Context, dir string, argv []string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New("scaffold: empty command")
	}
	runner := s.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	cmd := Command{Dir: dir, Name: argv[0], Args: argv[1:], Timeout: s.Timeout}
	s.logger().Info("running command", zap.String("cmd", cmd.String()), zap.String("dir", dir))
	start := time.Now()
	res, err := runner.Run(ctx, cmd)
	s.logger().Debug("command finished",
		zap.String("cmd", cmd.String()),
		zap.Int("exit", res.ExitCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err),
	)
	return res, err
}

func expand(args []string, name string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = strings.ReplaceAll(a, "%s", name)
	}
	return out
}

func writeEntry(dir, code string) error {
	p := filepath.Join(dir, filepath.FromSlash(EntryFile))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("scaffold: mkdir %s: %w", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, []byte(code), 0o644); err != nil {
		return fmt.Errorf("scaffold: write %s: %w", EntryFile, err)
	}
	return nil
}

// validateProjectName keeps the project inside Root.
func validateProjectName(name string) error {
	if name == "." || name == ".." {
		return fmt.Errorf("scaffold: invalid project name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("scaffold: project name must be a single path segment")
	}
	if path.Clean(name) != name {
		return fmt.Errorf("scaffold: invalid project name %q", name)
	}
	return nil
}

type report struct {
	b strings.Builder
}

func (r *report) add(step string, res Result) {
	if r.b.Len() > 0 {
		r.b.WriteByte('\n')
	}
	fmt.Fprintf(&r.b, "%s result: %s\n", step, strings.TrimSpace(res.Stdout))
	fmt.Fprintf(&r.b, "%s error: %s\n", step, strings.TrimSpace(res.Stderr))
}

func (r *report) String() string {
	return strings.TrimRight(r.b.String(), "\n")
}
