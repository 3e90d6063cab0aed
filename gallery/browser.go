package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Browser opens city images and remembers the current one per city.
// Progress messages go to out, one line each; failures are also logged.
type Browser struct {
	lib    *Library
	opener Opener
	out    io.Writer
	log    *zap.Logger

	mu     sync.Mutex
	cursor map[string]int
}

// NewBrowser wires a Library to an Opener. A nil out discards messages and a
// nil log is replaced by a no-op logger.
func NewBrowser(lib *Library, opener Opener, out io.Writer, log *zap.Logger) *Browser {
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Browser{
		lib:    lib,
		opener: opener,
		out:    out,
		log:    log,
		cursor: make(map[string]int),
	}
}

// Current returns the cursor for city (0 when never set).
func (b *Browser) Current(city string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.cursor[city]
}

// Open shows image i (0-based) of city. On success the cursor moves to i.
func (b *Browser) Open(ctx context.Context, city string, i int) error {
	path, err := b.lib.Path(city, i)
	if err != nil {
		b.printf("Invalid image index.\n")

		return err
	}
	if err := b.opener.Open(ctx, path); err != nil {
		b.log.Warn("open image", zap.String("city", city), zap.String("path", path), zap.Error(err))
		b.printf("Failed to open image (%v). Path:\n  %s\n", err, path)

		return fmt.Errorf("%w: %s: %v", ErrOpenFailed, path, err)
	}

	b.mu.Lock()
	b.cursor[city] = i
	b.mu.Unlock()
	b.log.Debug("opened image", zap.String("city", city), zap.Int("index", i))
	b.printf("Opened image #%d\n", i+1)

	return nil
}

// OpenCurrent shows the image under the cursor, wrapping a stale cursor first.
func (b *Browser) OpenCurrent(ctx context.Context, city string) error {
	files, err := b.lib.Images(city)
	if err != nil {
		b.printf("No images configured for this city.\n")

		return err
	}

	b.mu.Lock()
	cur := WrapIndex(b.cursor[city], len(files))
	b.cursor[city] = cur
	b.mu.Unlock()

	return b.Open(ctx, city, cur)
}

// Next advances the cursor with wrap-around and opens that image.
func (b *Browser) Next(ctx context.Context, city string) error { return b.step(ctx, city, 1) }

// Prev moves the cursor back with wrap-around and opens that image.
func (b *Browser) Prev(ctx context.Context, city string) error { return b.step(ctx, city, -1) }

// step moves the cursor before opening, so a failed open still advances.
func (b *Browser) step(ctx context.Context, city string, delta int) error {
	files, err := b.lib.Images(city)
	if err != nil {
		return err
	}

	b.mu.Lock()
	cur := WrapIndex(b.cursor[city]+delta, len(files))
	b.cursor[city] = cur
	b.mu.Unlock()

	b.printf("Current image: #%d\n", cur+1)

	return b.OpenCurrent(ctx, city)
}

// OpenAll opens every image of city in order. It keeps going after a
// failure and returns all failures joined.
func (b *Browser) OpenAll(ctx context.Context, city string) error {
	files, err := b.lib.Images(city)
	if err != nil {
		b.printf("No images configured for this city.\n")

		return err
	}

	b.printf("Opening all images (%d)...\n", len(files))
	var errs []error
	for i := range files {
		if err := b.Open(ctx, city, i); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// PrintList writes the numbered file URIs of city, flagging missing files.
func (b *Browser) PrintList(city string) error {
	entries, err := b.lib.List(city)
	if err != nil {
		b.printf("No images listed for city '%s'.\n", city)

		return err
	}

	b.printf("Images for city '%s' (%d):\n", city, len(entries))
	for _, e := range entries {
		suffix := ""
		if e.Missing {
			suffix = "   [missing file]"
		}
		b.printf("  %d) %s%s\n", e.Index+1, e.URI, suffix)
	}
	b.printf("Keys: 1..9 open specific | ]/[ next/prev | O open current | A open all | L list again\n")

	return nil
}

func (b *Browser) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(b.out, format, args...)
}
