package lsp

import (
	"context"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var log = commonlog.GetLogger("tangent.lsp")

func (ls *Server) initialize(
	glspCtx *glsp.Context,
	params *protocol.InitializeParams,
) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindNone
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}
	capabilities.ReferencesProvider = true
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{CommandTags},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func (ls *Server) initialized(
	glspCtx *glsp.Context,
	params *protocol.InitializedParams,
) error {
	// Warm rebuild of the whole index so the first query doesn't pay for it.
	go func() {
		docs, err := ls.engine.HydrateCache(context.Background())
		if err != nil {
			log.Errorf("failed to hydrate cache: %s", err.Error())
			return
		}
		log.Infof("hydrated cache with %d notes", len(docs))
	}()
	return nil
}

func (ls *Server) shutdown(glspCtx *glsp.Context) error {
	log.Info("server shutting down")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(glspCtx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(
	glspCtx *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	ls.engine.UpdateCacheFor(path)
	return nil
}

func (ls *Server) textDocumentDidSave(
	glspCtx *glsp.Context,
	params *protocol.DidSaveTextDocumentParams,
) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	ls.engine.UpdateCacheFor(path)
	return nil
}

func (ls *Server) textDocumentDidClose(
	glspCtx *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	// The entry stays cached; only deletion evicts it.
	return nil
}

func (ls *Server) textDocumentReferences(
	glspCtx *glsp.Context,
	params *protocol.ReferenceParams,
) ([]protocol.Location, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	hits, err := ls.engine.SearchBacklinksFor(context.Background(), noteBasename(path))
	if err != nil {
		return nil, err
	}

	locations := make([]protocol.Location, 0, len(hits))
	for _, hit := range hits {
		locations = append(locations, protocol.Location{
			URI:   pathToURI(hit.Path),
			Range: toProtocolRange(hit.Range),
		})
	}
	return locations, nil
}

func (ls *Server) workspaceDidChangeWatchedFiles(
	glspCtx *glsp.Context,
	params *protocol.DidChangeWatchedFilesParams,
) error {
	for _, change := range params.Changes {
		path, err := uriToPath(change.URI)
		if err != nil {
			log.Warningf("ignoring unparsable URI %s: %s", change.URI, err.Error())
			continue
		}

		switch change.Type {
		case protocol.FileChangeTypeDeleted:
			ls.engine.ClearCacheFor(path)
		case protocol.FileChangeTypeCreated, protocol.FileChangeTypeChanged:
			ls.engine.UpdateCacheFor(path)
		}
	}
	return nil
}

func (ls *Server) workspaceExecuteCommand(
	glspCtx *glsp.Context,
	params *protocol.ExecuteCommandParams,
) (any, error) {
	switch params.Command {
	case CommandTags:
		return ls.engine.DistinctTags(context.Background())
	default:
		log.Warningf("unknown command: %s", params.Command)
		return nil, nil
	}
}
