package sandbox

import "context"

// BindingName is the callback the rendered document invokes to report the
// script outcome back to the host page.
const BindingName = "__backdropHost"

// HostEventKind is the raw signal a host reports while a document is
// mounted.
type HostEventKind int

const (
	HostLoaded HostEventKind = iota
	HostErrored
)

// HostEvent is a single signal from a mounted host.
type HostEvent struct {
	Kind    HostEventKind
	Details string
}

// Host is one isolated page a document can be mounted into. A host serves
// a single mount; the renderer disposes it before mounting the next
// document.
type Host interface {
	// Mount sets the page content and starts reporting events.
	Mount(ctx context.Context, doc string) error
	// Events delivers signals observed after Mount. Implementations
	// must close the channel once the host stops reporting, at the
	// latest after Dispose; watchers rely on the close to shut down.
	Events() <-chan HostEvent
	// Dispose releases the page. Safe to call more than once.
	Dispose()
}

// HostFactory creates a fresh host per render.
type HostFactory func() (Host, error)
