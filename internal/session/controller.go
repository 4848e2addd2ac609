package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/alexanderramin/planify/internal/domain"
	"github.com/alexanderramin/planify/internal/export"
	"github.com/alexanderramin/planify/internal/planapi"
)

// Renderer draws a Model. Render is called with the controller's lock held,
// so implementations must not call back into the Controller.
type Renderer interface {
	Render(m Model)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Model)

func (f RendererFunc) Render(m Model) { f(m) }

// SnapshotPersister saves the form snapshot after a successful submission.
type SnapshotPersister interface {
	Persist(ctx context.Context, snap domain.FormSnapshot) error
}

// PDFExporter writes a plan to a PDF file.
type PDFExporter interface {
	WriteFile(dir, subject, text string) (*export.PDFResult, error)
}

// Controller owns one form session: the submission state machine, its hint
// timers, the generated plan and the export actions. Construct one per
// process.
type Controller struct {
	gen       planapi.Generator
	def       domain.FormDefinition
	clock     Clock
	renderer  Renderer
	forms     SnapshotPersister
	clipboard export.Clipboard
	pdf       PDFExporter
	exportDir string
	logger    *slog.Logger

	mu      sync.Mutex
	model   Model
	seq     uint64
	timers  []Timer
	subject string
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock that schedules hint timers.
func WithClock(c Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

// WithRenderer sets the initial renderer.
func WithRenderer(r Renderer) Option {
	return func(ctl *Controller) { ctl.renderer = r }
}

// WithFormStore persists the submitted snapshot after a success.
func WithFormStore(p SnapshotPersister) Option {
	return func(ctl *Controller) { ctl.forms = p }
}

// WithFormDefinition sets the enum options submissions are validated against.
func WithFormDefinition(def domain.FormDefinition) Option {
	return func(ctl *Controller) { ctl.def = def }
}

// WithClipboard replaces the system clipboard.
func WithClipboard(c export.Clipboard) Option {
	return func(ctl *Controller) { ctl.clipboard = c }
}

// WithPDFExporter sets the PDF writer and the directory it writes into.
func WithPDFExporter(p PDFExporter, dir string) Option {
	return func(ctl *Controller) {
		ctl.pdf = p
		ctl.exportDir = dir
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(ctl *Controller) { ctl.logger = l }
}

// NewController creates a Controller in the idle state.
func NewController(gen planapi.Generator, opts ...Option) *Controller {
	c := &Controller{
		gen:       gen,
		def:       domain.DefaultFormDefinition(),
		clock:     SystemClock{},
		clipboard: export.SystemClipboard{},
		pdf:       export.NewPDFWriter(export.DefaultLayout()),
		exportDir: ".",
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the current session model.
func (c *Controller) Model() Model {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}

// SetRenderer replaces the renderer. The TUI installs itself after the
// controller is built.
func (c *Controller) SetRenderer(r Renderer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderer = r
}

// Submit runs one submission to settlement and returns the sanitized plan.
// Validation failures return a *domain.ValidationError without any network
// call. Submit blocks until the request settles; the model is rendered at
// every transition along the way.
func (c *Controller) Submit(ctx context.Context, snap domain.FormSnapshot) (string, error) {
	c.mu.Lock()
	if c.model.Loading() {
		c.mu.Unlock()
		return "", ErrSubmissionInFlight
	}
	if err := snap.Validate(c.def); err != nil {
		c.dispatchLocked(ValidationFailed{Message: err.Error()})
		c.mu.Unlock()
		return "", err
	}
	if err := domain.ValidateHours(snap.Time); err != nil {
		c.dispatchLocked(ValidationFailed{Message: err.Error()})
		c.mu.Unlock()
		return "", err
	}

	c.seq++
	seq := c.seq
	c.dispatchLocked(SubmitStarted{Seq: seq})
	c.timers = []Timer{
		c.clock.AfterFunc(WakingAfter, func() { c.dispatch(HintElapsed{Seq: seq, Stage: HintWaking}) }),
		c.clock.AfterFunc(StillWakingAfter, func() { c.dispatch(HintElapsed{Seq: seq, Stage: HintStillWaking}) }),
	}
	c.mu.Unlock()

	resp, err := c.gen.Generate(ctx, snap)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimersLocked()

	if err != nil {
		c.logger.Warn("study plan request failed", "seq", seq, "error", err)
		c.dispatchLocked(Failed{Seq: seq, Message: failureMessage(err)})
		return "", err
	}

	plan := domain.SanitizePlan(resp.Plan)
	if plan == "" {
		c.logger.Warn("study plan response was empty", "seq", seq, "request_id", resp.RequestID, "server_error", resp.ServerError)
		msg := GenericErrorMessage
		if resp.ServerError != "" {
			msg = resp.ServerError
		}
		c.dispatchLocked(Failed{Seq: seq, Message: msg})
		return "", ErrEmptyPlan
	}

	c.subject = snap.Subject
	c.dispatchLocked(Succeeded{Seq: seq, Plan: plan})

	if c.forms != nil {
		if err := c.forms.Persist(ctx, snap); err != nil {
			c.logger.Warn("persisting form after success", "error", err)
		}
	}
	return plan, nil
}

// CopyPlan copies the held plan to the clipboard. Without a plan it does
// nothing and returns export.ErrNoPlan. Clipboard failures are reported on
// the status line and returned, never fatal.
func (c *Controller) CopyPlan() error {
	plan := c.Model().Plan
	if plan == "" {
		return export.ErrNoPlan
	}

	if err := c.clipboard.WriteAll(plan); err != nil {
		c.dispatch(Notice{Kind: StatusError, Message: fmt.Sprintf("Could not copy the study plan: %v", err)})
		return err
	}
	c.dispatch(Notice{Kind: StatusSuccess, Message: "Study plan copied to clipboard."})
	return nil
}

// ExportPDF writes the held plan to a PDF named after the submitted subject.
// Without a plan it reports an inline error and writes nothing.
func (c *Controller) ExportPDF() (*export.PDFResult, error) {
	c.mu.Lock()
	plan, subject, dir := c.model.Plan, c.subject, c.exportDir
	c.mu.Unlock()

	if plan == "" {
		c.dispatch(Notice{Kind: StatusError, Message: "Generate a study plan before exporting."})
		return nil, export.ErrNoPlan
	}

	res, err := c.pdf.WriteFile(dir, subject, plan)
	if err != nil {
		c.dispatch(Notice{Kind: StatusError, Message: fmt.Sprintf("Could not export PDF: %v", err)})
		return nil, err
	}
	c.dispatch(Notice{Kind: StatusSuccess, Message: fmt.Sprintf("Saved %s (%d %s).", res.Path, res.Pages, pluralPages(res.Pages))})
	return res, nil
}

// Notify replaces the status line, e.g. after a theme toggle or form reset.
func (c *Controller) Notify(kind StatusKind, msg string) {
	c.dispatch(Notice{Kind: kind, Message: msg})
}

func (c *Controller) dispatch(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatchLocked(ev)
}

func (c *Controller) dispatchLocked(ev Event) {
	next := Reduce(c.model, ev)
	if next == c.model {
		return
	}
	c.model = next
	if c.renderer != nil {
		c.renderer.Render(next)
	}
}

func (c *Controller) stopTimersLocked() {
	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = nil
}

func failureMessage(err error) string {
	if msg, ok := planapi.ServerMessage(err); ok {
		return msg
	}
	return GenericErrorMessage
}

func pluralPages(n int) string {
	if n == 1 {
		return "page"
	}
	return "pages"
}
