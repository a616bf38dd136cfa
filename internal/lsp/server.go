// Package lsp exposes the index to editors over the language server
// protocol: backlinks as textDocument/references, tag listing as a workspace
// command, and cache invalidation driven by save and watched-file events.
package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"tangent/internal/search"
)

const lsName = "tangent"

var version = "0.1.0"

// CommandTags lists the distinct tags of the workspace.
const CommandTags = "tangent.tags"

type Server struct {
	engine  *search.Engine
	handler *protocol.Handler
}

func NewServer(engine *search.Engine) *server.Server {
	ls := &Server{engine: engine}

	ls.handler = &protocol.Handler{
		Initialize:                     ls.initialize,
		Initialized:                    ls.initialized,
		Shutdown:                       ls.shutdown,
		SetTrace:                       ls.setTrace,
		TextDocumentDidOpen:            ls.textDocumentDidOpen,
		TextDocumentDidSave:            ls.textDocumentDidSave,
		TextDocumentDidClose:           ls.textDocumentDidClose,
		TextDocumentReferences:         ls.textDocumentReferences,
		WorkspaceDidChangeWatchedFiles: ls.workspaceDidChangeWatchedFiles,
		WorkspaceExecuteCommand:        ls.workspaceExecuteCommand,
	}

	return server.NewServer(ls.handler, lsName, false)
}
