package mailbox

import (
	"context"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch delivers messages created in the mailbox directory after the call.
// The returned channel closes when ctx is canceled or the watcher fails.
func (mb *Mailbox) Watch(ctx context.Context) (<-chan *Message, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(mb.dir); err != nil {
		watcher.Close()
		return nil, err
	}

	out := make(chan *Message)
	go func() {
		defer close(out)
		defer watcher.Close()

		// A message file appears once via Create and is written whole, so
		// Create is the delivery signal; Write events on the same path are
		// duplicates from partial flushes and are ignored.
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Create == 0 {
					continue
				}
				if !strings.HasSuffix(event.Name, ".md") {
					continue
				}
				m, err := mb.Read(event.Name)
				if err != nil {
					continue
				}
				select {
				case out <- m:
				case <-ctx.Done():
					return
				}
			case <-watcher.Errors:
				// Keep watching; transient errors are not fatal.
			}
		}
	}()

	return out, nil
}
