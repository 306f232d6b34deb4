// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"monkey/internal/lsp"
)

const lsName = "monkey"

var (
	version = "0.1.0"
	handler protocol.Handler
)

var log = commonlog.GetLogger("monkey.lsp.main")

func main() {
	verbosity := flag.Int("verbosity", 1, "log verbosity")
	logFile := flag.String("log-file", "", "write logs to this file instead of stderr")
	debug := flag.Bool("debug", false, "log every LSP message")
	flag.Parse()

	var path *string
	if *logFile != "" {
		path = logFile
	}
	commonlog.Configure(*verbosity, path)

	monkeyHandler := lsp.NewHandler(version)

	handler = protocol.Handler{
		Initialize:                     monkeyHandler.Initialize,
		Initialized:                    monkeyHandler.Initialized,
		Shutdown:                       monkeyHandler.Shutdown,
		SetTrace:                       monkeyHandler.SetTrace,
		TextDocumentDidOpen:            monkeyHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           monkeyHandler.TextDocumentDidClose,
		TextDocumentDidChange:          monkeyHandler.TextDocumentDidChange,
		TextDocumentCompletion:         monkeyHandler.TextDocumentCompletion,
		TextDocumentHover:              monkeyHandler.TextDocumentHover,
		TextDocumentDocumentSymbol:     monkeyHandler.TextDocumentDocumentSymbol,
		TextDocumentSemanticTokensFull: monkeyHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, *debug)

	log.Info("starting Monkey LSP server")

	if err := s.RunStdio(); err != nil {
		log.Errorf("LSP server stopped: %s", err)
		os.Exit(1)
	}
}
