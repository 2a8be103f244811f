package retrieval

import "context"

// TextIndex is the text-search engine adapter the core consumes (spec
// §6). The core specifies only this narrow interface; the engine
// itself is an external collaborator.
type TextIndex interface {
	Search(ctx context.Context, req Request) (Response, error)
}
