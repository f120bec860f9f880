package app

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/kk-code-lab/fxplorer/internal/logger"
	statepkg "github.com/kk-code-lab/fxplorer/internal/state"
)

// openerEnv overrides the detected opener, e.g. FXPLORER_OPENER="code -r".
const openerEnv = "FXPLORER_OPENER"

var errNoOpener = errors.New("no program to open files with")

// commandOpener hands files to an external program without waiting for it.
type commandOpener struct {
	argv   []string
	logger logger.Logger
	start  func(*exec.Cmd) error
}

func (o *commandOpener) Open(path string) error {
	if len(o.argv) == 0 {
		return errNoOpener
	}
	args := append(append([]string(nil), o.argv[1:]...), path)
	cmd := exec.Command(o.argv[0], args...)
	start := o.start
	if start == nil {
		start = (*exec.Cmd).Start
	}
	if err := start(cmd); err != nil {
		return err
	}
	if cmd.Process != nil {
		go func() {
			if err := cmd.Wait(); err != nil {
				o.logger.Debugf("opener %s exited: %v", o.argv[0], err)
			}
		}()
	}
	o.logger.Debugf("opened %s with %s", path, o.argv[0])
	return nil
}

func detectOpener(log logger.Logger) statepkg.Opener {
	log = logger.OrNop(log)
	argv, ok := detectOpenerInternal(runtime.GOOS, os.Getenv, exec.LookPath)
	if !ok {
		log.Warnf("no opener found; files cannot be opened")
	}
	return &commandOpener{argv: argv, logger: log}
}

func detectOpenerInternal(goos string, getenv func(string) string, lookPath func(string) (string, error)) ([]string, bool) {
	if args := parseCommandLine(getenv(openerEnv)); len(args) > 0 {
		if resolved, ok := resolveExecutable(args[0], lookPath); ok {
			args[0] = resolved
			return args, true
		}
	}

	var defaults [][]string
	switch strings.ToLower(goos) {
	case "windows":
		defaults = [][]string{{"rundll32", "url.dll,FileProtocolHandler"}}
	case "darwin":
		defaults = [][]string{{"open"}}
	default:
		defaults = [][]string{{"xdg-open"}, {"gio", "open"}}
	}

	for _, def := range defaults {
		if resolved, ok := resolveExecutable(def[0], lookPath); ok {
			return append([]string{resolved}, def[1:]...), true
		}
	}
	return nil, false
}

// parseCommandLine splits cmd on unquoted whitespace. Single and double
// quotes group words; there are no escapes.
func parseCommandLine(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	inSingle := false
	inDouble := false

	for _, r := range cmd {
		switch {
		case r == '\'' && !inDouble:
			inSingle = !inSingle
		case r == '"' && !inSingle:
			inDouble = !inDouble
		case !inSingle && !inDouble && unicode.IsSpace(r):
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}

	if len(args) > 0 {
		args[0] = expandUserPath(args[0])
	}
	return args
}

func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}
	return filepath.Join(home, path[2:])
}

func resolveExecutable(cmd string, lookPath func(string) (string, error)) (string, bool) {
	if cmd == "" {
		return "", false
	}
	path, err := lookPath(cmd)
	if err != nil || path == "" {
		return "", false
	}
	return path, true
}
