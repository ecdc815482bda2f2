package reader

import (
	"context"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/vegasq/thresh/internal/logging"
	"github.com/vegasq/thresh/table"
)

// Loader turns sources into tables
type Loader struct {
	stdin  io.Reader
	logger *slog.Logger
}

// Option configures a Loader
type Option func(*Loader)

// WithStdin sets the stream read for the standard input sentinels
func WithStdin(r io.Reader) Option {
	return func(l *Loader) { l.stdin = r }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a Loader. Without WithStdin, standard input sources fail.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logging.WithComponent("reader")
	}
	return l
}

// Load reads one source into a table carrying the source alias and path
func (l *Loader) Load(src Source) (*table.Table, error) {
	if err := table.ValidateAlias(src.Alias); err != nil {
		return nil, err
	}

	format, compression := Detect(src.Path)
	rc, err := l.open(src, compression)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	opts := []table.Option{table.WithAlias(src.Alias), table.WithName(src.Path)}

	var content *table.Content
	switch format {
	case FormatJSON:
		content, err = parseJSON(rc)
		opts = append(opts, table.NamespaceOnly())
	case FormatParquet:
		content, err = parseParquet(rc)
	case FormatCSV:
		content, err = parseText(rc, ',')
	default:
		content, err = parseText(rc, 0)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", src.Path)
	}

	tbl, err := table.New(content, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", src.Path)
	}

	l.logger.Debug("loaded table", "name", src.Path, "alias", src.Alias, "columns", tbl.Len(), "rows", tbl.Rows())
	return tbl, nil
}

// LoadAll loads every source concurrently. Tables are returned in the order
// of sources; the first failure cancels the rest.
func (l *Loader) LoadAll(ctx context.Context, sources []Source) ([]*table.Table, error) {
	stdin := 0
	for _, src := range sources {
		if IsStdin(src.Path) {
			stdin++
		}
	}
	if stdin > 1 {
		return nil, errors.Wrap(ErrUnsupportedInput, "standard input can only be read once")
	}

	tables := make([]*table.Table, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tbl, err := l.Load(src)
			if err != nil {
				return err
			}
			tables[i] = tbl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}
