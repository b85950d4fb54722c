// Package rodhost mounts sandbox documents into a headless Chrome page
// driven over CDP.
package rodhost

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/soletra/backdrop-backend/internal/sandbox"
)

// Host is a single Chrome page serving one mounted document. The page
// script reports its outcome through the sandbox binding; the report is
// translated into host events.
type Host struct {
	log     *slog.Logger
	browser *rod.Browser
	page    *rod.Page
	owns    bool

	events  chan sandbox.HostEvent
	cancel  context.CancelFunc
	dispose sync.Once
}

// New connects to the browser at controlURL, or launches a local one when
// the URL is empty, and opens a blank page.
func New(logger *slog.Logger, controlURL string) (*Host, error) {
	b := rod.New()
	owns := controlURL == ""
	if controlURL != "" {
		b = b.ControlURL(controlURL)
	}
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("create page: %w", err)
	}

	return &Host{
		log:     logger.With("adapter", "rodhost"),
		browser: b,
		page:    page,
		owns:    owns,
		events:  make(chan sandbox.HostEvent, 4),
	}, nil
}

// Factory returns a sandbox.HostFactory that opens a fresh page per
// render.
func Factory(logger *slog.Logger, controlURL string) sandbox.HostFactory {
	return func() (sandbox.Host, error) {
		return New(logger, controlURL)
	}
}

// Mount registers the outcome binding, starts listening for the page
// script's report, and sets the document content.
func (h *Host) Mount(ctx context.Context, doc string) error {
	if err := (proto.RuntimeAddBinding{Name: sandbox.BindingName}).Call(h.page); err != nil {
		h.log.Warn("addBinding failed (may already exist)", slog.String("error", err.Error()))
	}

	var listenCtx context.Context
	listenCtx, h.cancel = context.WithCancel(ctx)
	go h.listen(listenCtx)

	if err := h.page.SetDocumentContent(doc); err != nil {
		return fmt.Errorf("set document content: %w", err)
	}
	return nil
}

// listen receives the script's report via Runtime.bindingCalled and
// forwards it as a host event. Only the first report counts; the page
// sends exactly one under normal operation. The events channel closes
// when listening stops, so a watcher blocked on a page that never
// reports is released once the host is disposed.
func (h *Host) listen(ctx context.Context) {
	defer close(h.events)
	h.page.Context(ctx).EachEvent(func(e *proto.RuntimeBindingCalled) bool {
		if e.Name != sandbox.BindingName {
			return false
		}

		var report struct {
			OK      bool   `json:"ok"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal([]byte(e.Payload), &report); err != nil {
			h.log.Warn("parse binding payload", slog.String("error", err.Error()))
			h.push(sandbox.HostEvent{Kind: sandbox.HostErrored, Details: "unreadable script report"})
			return true
		}

		if report.OK {
			h.push(sandbox.HostEvent{Kind: sandbox.HostLoaded})
		} else {
			h.push(sandbox.HostEvent{Kind: sandbox.HostErrored, Details: report.Message})
		}
		return true
	})()
}

func (h *Host) push(ev sandbox.HostEvent) {
	select {
	case h.events <- ev:
	default:
	}
}

// Events delivers the script report for the mounted document.
func (h *Host) Events() <-chan sandbox.HostEvent { return h.events }

// Dispose stops listening and closes the page, plus the browser when this
// host launched it.
func (h *Host) Dispose() {
	h.dispose.Do(func() {
		if h.cancel != nil {
			h.cancel()
		} else {
			// Never mounted, so no listener owns the channel.
			close(h.events)
		}
		if err := h.page.Close(); err != nil {
			h.log.Warn("close page", slog.String("error", err.Error()))
		}
		if h.owns {
			if err := h.browser.Close(); err != nil {
				h.log.Warn("close browser", slog.String("error", err.Error()))
			}
		}
	})
}
