package compiler

import (
	"strings"
)

// ShellCommand is one build tool invocation
type ShellCommand struct {
	Path string
	Args []string

	// Dirs must exist before the command runs
	Dirs []string
}

func (c *ShellCommand) String() string {
	return strings.TrimSpace(c.Path + " " + strings.Join(c.Args, " "))
}

// Request describes the script to build and where its outputs go
type Request struct {
	Name    string
	Source  string
	Dest    string
	Scratch string
	Options []string

	// Deps carries the script's declared build-deps. No strategy reads it yet.
	Deps []string
}

// Strategy turns a request into a build tool invocation
type Strategy interface {
	Command(req Request) (*ShellCommand, error)
}

// NativeCompiler invokes a single-file compiler: tool -o dest source
type NativeCompiler struct {
	Tool string
}

func (n NativeCompiler) Command(req Request) (*ShellCommand, error) {
	return &ShellCommand{
		Path: n.Tool,
		Args: []string{"-o", req.Dest, req.Source},
	}, nil
}

// PackageBuild invokes a compiler that needs an output directory for
// intermediate files: tool opts... -outputdir scratch -o dest source
type PackageBuild struct {
	Tool string
}

func (p PackageBuild) Command(req Request) (*ShellCommand, error) {
	var args []string
	args = append(args, req.Options...)
	args = append(args, "-outputdir", req.Scratch)
	args = append(args, "-o", req.Dest)
	args = append(args, req.Source)

	return &ShellCommand{
		Path: p.Tool,
		Args: args,
		Dirs: []string{req.Scratch},
	}, nil
}

// GoBuild compiles a single-file Go program: tool build opts... -o dest source
type GoBuild struct {
	Tool string
}

func (g GoBuild) Command(req Request) (*ShellCommand, error) {
	args := []string{"build"}
	args = append(args, req.Options...)
	args = append(args, "-o", req.Dest, req.Source)

	return &ShellCommand{
		Path: g.Tool,
		Args: args,
	}, nil
}
