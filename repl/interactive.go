package repl

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"monkey/internal/config"
	"monkey/internal/parser"
)

// StartInteractive runs the REPL on the terminal with line editing and
// history. Inputs that end too early are continued on the next line.
func StartInteractive(cfg *config.Config) {
	if cfg == nil {
		cfg = config.Default()
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(cfg.HistoryFile)
			if err != nil {
				log.Warningf("could not write history: %s", err)
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	session := NewSession(os.Stdout, cfg)
	session.Suggestions = true
	ln.SetCompleter(session.Complete)
	log.Debug("interactive session started")

	for {
		input, ok := readInput(ln, cfg.Prompt, CONTINUE)
		if !ok {
			os.Stdout.WriteString("\n")
			return
		}
		if strings.TrimSpace(input) == "" {
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		if !session.Handle(input) {
			return
		}
	}
}

// readInput collects lines until they parse, or until the parse fails
// somewhere other than at the end of the text.
func readInput(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !NeedsMore(src) {
			return src, true
		}
	}
}

// NeedsMore reports whether src only failed to parse because it stopped
// early, like an open brace at the end of a line.
func NeedsMore(src string) bool {
	res := parser.ParseSource(src)
	if len(res.ScanErrors) > 0 {
		return false
	}
	return res.ParseErrors.Incomplete(len(src))
}
