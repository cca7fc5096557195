package results

import (
	"context"

	"github.com/matzehuels/coalition/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)

// Options selects and configures a sink backend.
type Options struct {
	Backend    string
	Dir        string
	SQLitePath string
	Mongo      MongoConfig
}

// Open creates the sink named by opts.Backend. An empty backend means file.
func Open(ctx context.Context, opts Options) (Sink, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFileSink(opts.Dir)
	case BackendSQLite:
		return NewSQLiteSink(opts.SQLitePath)
	case BackendMongo:
		return NewMongoSink(ctx, opts.Mongo)
	case BackendNone:
		return NullSink{}, nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown results backend %q", opts.Backend)
	}
}
