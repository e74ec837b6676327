package waveform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cwbudde/algo-wavepreview/internal/metrics"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics records selections and outcomes into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithObserver registers fn to receive every published state, in publish
// order. fn runs on the goroutine that changed the state and must not call
// back into the Controller.
func WithObserver(fn func(RenderState)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

// Controller owns one preview surface and its decoder. The host calls Select
// when a file is picked and Clear when the user resets the preview; the most
// recent of those calls always wins.
type Controller struct {
	mu sync.Mutex
	// notifyMu keeps observer calls in publish order without holding mu.
	notifyMu sync.Mutex

	newDecoder func() (Decoder, error)
	decoder    Decoder

	surface  Surface
	viewport Viewport
	state    RenderState

	selection uint64 // Incremented on every Select and Clear, used to drop stale decode results
	cancel    context.CancelFunc

	log       *slog.Logger
	metrics   *metrics.Metrics
	observers []func(RenderState)
}

// NewController creates a controller drawing on s. newDecoder is called once,
// on the first Select; if it fails (or is nil) the controller falls back to
// Unavailable for the rest of its life.
func NewController(newDecoder func() (Decoder, error), s Surface, v Viewport, opts ...Option) *Controller {
	c := &Controller{
		newDecoder: newDecoder,
		surface:    s,
		viewport:   v,
		log:        slog.Default(),
		state: RenderState{
			Phase:   PhaseEmpty,
			Message: DefaultPlaceholder,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.surface.Clear(c.viewport)
	return c
}

// State returns the current snapshot.
func (c *Controller) State() RenderState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Viewport returns the dimensions used for the next render.
func (c *Controller) Viewport() Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

// SetViewport changes the dimensions used by subsequent selections. Decoded
// audio is not retained, so an existing preview is left as drawn.
func (c *Controller) SetViewport(v Viewport) error {
	if err := v.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = v
	return nil
}

// Select makes src the authoritative selection and starts decoding it in the
// background. Any earlier selection still decoding is cancelled and its
// result, if it arrives anyway, is discarded. The returned channel is closed
// once this selection has settled or been superseded.
func (c *Controller) Select(ctx context.Context, src AudioSource) <-chan struct{} {
	done := make(chan struct{})

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.selection++
	id := c.selection
	dctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	dec := c.decoderLocked()
	v := c.viewport
	c.metrics.Selected()
	c.log.Debug("waveform selection", "selection", id, "source", src.Name, "bytes", src.Size)

	c.surface.Clear(v)
	c.commit(RenderState{
		Phase:     PhasePending,
		Selection: id,
		Source:    src.Name,
		Message:   PendingMessage,
	})

	go c.run(dctx, cancel, id, dec, src, v, done)
	return done
}

// Clear drops the current preview (and any decode in flight) and shows the
// default placeholder.
func (c *Controller) Clear() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.selection++
	c.surface.Clear(c.viewport)
	c.commit(RenderState{
		Phase:     PhaseEmpty,
		Selection: c.selection,
		Message:   DefaultPlaceholder,
	})
}

func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, id uint64, dec Decoder, src AudioSource, v Viewport, done chan<- struct{}) {
	defer close(done)
	defer cancel()

	start := time.Now()
	decoded, err := dec.Decode(ctx, src)
	elapsed := time.Since(start)
	if err == nil && decoded == nil {
		err = fmt.Errorf("%w: decoder returned no audio", ErrDecodeFailure)
	}

	c.mu.Lock()
	if id != c.selection {
		c.mu.Unlock()
		c.metrics.Dropped()
		c.log.Debug("dropping superseded decode", "selection", id, "source", src.Name)
		return
	}
	c.cancel = nil

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		c.log.Info("waveform selection cancelled", "selection", id, "source", src.Name, "error", err)
		c.metrics.Settled(PhaseEmpty.String())
		c.surface.Clear(v)
		c.commit(RenderState{
			Phase:     PhaseEmpty,
			Selection: id,
			Message:   DefaultPlaceholder,
		})
		return
	}

	c.metrics.ObserveDecode(elapsed)
	if err != nil {
		reason := FailureReason(err)
		c.log.Warn("waveform decode failed", "selection", id, "source", src.Name, "error", err, "elapsed", elapsed)
		c.metrics.Settled(PhaseFailed.String())
		c.commit(RenderState{
			Phase:     PhaseFailed,
			Selection: id,
			Source:    src.Name,
			Message:   reason,
			Err:       err,
		})
		return
	}

	env := BuildEnvelope(decoded.FirstChannel(), v.Width)
	path := EmitPath(env, v)
	meta := FormatMetadata(decoded, src.Size)
	Draw(c.surface, v, path)

	c.log.Info("waveform rendered",
		"selection", id,
		"source", src.Name,
		"columns", len(env),
		"metadata", meta.String(),
		"elapsed", elapsed,
	)
	c.metrics.Settled(PhaseRendered.String())
	c.commit(RenderState{
		Phase:     PhaseRendered,
		Selection: id,
		Source:    src.Name,
		Envelope:  env,
		Path:      path,
		Metadata:  meta,
		Message:   meta.String(),
	})
}

// decoderLocked constructs the decoder on first use. c.mu must be held.
func (c *Controller) decoderLocked() Decoder {
	if c.decoder != nil {
		return c.decoder
	}
	var (
		d   Decoder
		err error
	)
	if c.newDecoder != nil {
		d, err = c.newDecoder()
	}
	if err != nil || d == nil {
		c.log.Warn("audio decoding unavailable, previews disabled", "error", err)
		d = Unavailable{}
	}
	c.decoder = d
	return d
}

// commit stores st and hands it to observers. c.mu must be held on entry and
// is released before observers run.
func (c *Controller) commit(st RenderState) {
	c.state = st
	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()
	for _, fn := range c.observers {
		fn(st)
	}
}
