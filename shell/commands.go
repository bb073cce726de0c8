package shell

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/domino14/hangman/automatic"
	"github.com/domino14/hangman/config"
	"github.com/domino14/hangman/display"
)

type handler func(*ShellController, *shellcmd) (*Response, error)

var handlers map[string]handler

var commands = []string{"play", "batch", "baseline", "random", "summary", "cache", "display", "set", "help", "exit"}

func init() {
	handlers = map[string]handler{
		"play":     (*ShellController).play,
		"batch":    (*ShellController).batch,
		"baseline": (*ShellController).baseline,
		"random":   (*ShellController).random,
		"summary":  (*ShellController).summary,
		"cache":    (*ShellController).cache,
		"display":  (*ShellController).display,
		"set":      (*ShellController).set,
		"help":     (*ShellController).help,
		"exit":     func(*ShellController, *shellcmd) (*Response, error) { return nil, io.EOF },
	}
}

// settable are the config keys the set command may change.
var settable = []string{
	config.ConfigMaxIncorrect, config.ConfigSmallPoolSize, config.ConfigPassStore,
	config.ConfigSpoolDir, config.ConfigThreads, config.ConfigProgress,
}

func (sc *ShellController) playSecrets(cmd *shellcmd, secrets []string) (*Response, error) {
	if len(secrets) == 0 {
		return nil, fmt.Errorf("%s: no words to play", cmd.cmd)
	}
	if t, ok := cmd.options["threads"]; ok {
		n, err := strconv.Atoi(t)
		if err != nil {
			return nil, err
		}
		sc.session.Config().Set(config.ConfigThreads, n)
	}
	run, err := sc.session.PlayAll(sc.ctx, secrets)
	if run != nil {
		sc.lastRun = run.Summary
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	secrets := cmd.args
	if len(secrets) == 0 {
		secrets = []string{automatic.DefaultSecret}
	}
	return sc.playSecrets(cmd, automatic.NormalizeSecrets(secrets))
}

func (sc *ShellController) batch(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, fmt.Errorf("usage: batch <file>")
	}
	secrets, err := automatic.ReadBatch(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return sc.playSecrets(cmd, secrets)
}

func (sc *ShellController) baseline(cmd *shellcmd) (*Response, error) {
	return sc.playSecrets(cmd, automatic.Baseline)
}

func (sc *ShellController) random(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 1 || len(cmd.args) > 2 {
		return nil, fmt.Errorf("usage: random <n> [length]")
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	length := 0
	if len(cmd.args) == 2 {
		if length, err = strconv.Atoi(cmd.args[1]); err != nil {
			return nil, err
		}
	}
	secrets := automatic.RandomSecrets(sc.session.Corpus(), n, length, nil)
	if len(secrets) == 0 {
		return nil, fmt.Errorf("no dictionary words of length %d", length)
	}
	return sc.playSecrets(cmd, secrets)
}

func (sc *ShellController) summary(cmd *shellcmd) (*Response, error) {
	if sc.lastRun == nil || sc.lastRun.Count() == 0 {
		return msg("no games played yet"), nil
	}
	if len(cmd.args) == 1 {
		f, err := os.Create(cmd.args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := sc.lastRun.WriteYAML(f); err != nil {
			return nil, err
		}
		return msg("wrote summary to " + cmd.args[0]), nil
	}
	hist, err := sc.lastRun.Histogram(10)
	if err != nil {
		return nil, err
	}
	return msg(sc.lastRun.String() + "\n" + hist), nil
}

func (sc *ShellController) cache(cmd *shellcmd) (*Response, error) {
	c := sc.session.Cache()
	if len(cmd.args) == 1 && cmd.args[0] == "clear" {
		c.Reset()
		return msg("frequency cache cleared"), nil
	}
	if len(cmd.args) > 0 {
		return nil, fmt.Errorf("usage: cache [clear]")
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d lengths cached", c.Len())
	for _, l := range c.Lengths() {
		e, _ := c.Get(l)
		fmt.Fprintf(&sb, "\n%3d: %d words, %d letters", l, e.Size, e.Tally.Size())
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) display(cmd *shellcmd) (*Response, error) {
	d := sc.session.Display()
	if len(cmd.args) == 0 {
		return msg("display is " + d.Level().String()), nil
	}
	lvl, err := display.ParseLevel(cmd.args[0])
	if err != nil {
		return nil, err
	}
	d.SetLevel(lvl)
	return msg("display set to " + lvl.String()), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	cfg := sc.session.Config()
	if len(cmd.args) == 0 {
		var sb strings.Builder
		for _, k := range settable {
			fmt.Fprintf(&sb, "%-16s %v\n", k, cfg.Get(k))
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	if len(cmd.args) != 2 {
		return nil, fmt.Errorf("usage: set <key> <value>")
	}
	key, val := cmd.args[0], cmd.args[1]
	if !slices.Contains(settable, key) {
		return nil, fmt.Errorf("%s cannot be set from the shell", key)
	}
	cfg.Set(key, val)
	return msg("set " + key + " to " + val), nil
}
