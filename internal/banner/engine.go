package banner

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrInvalidMethod is matched by every *InvalidMethodError.
var ErrInvalidMethod = errors.New("invalid method")

// InvalidMethodError reports a dispatch to a method the engine does not have.
type InvalidMethodError struct {
	Method string
}

func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("method %q does not exist on classification banner", e.Method)
}

func (e *InvalidMethodError) Is(target error) bool {
	return target == ErrInvalidMethod
}

// Method names accepted by Engine.Call.
const (
	MethodInit = "init"
	MethodShow = "show"
	MethodHide = "hide"
	MethodSet  = "set"
)

// Call is one boundary invocation of the engine, as decoded from JSON or
// markup attributes. An empty Method means init.
type Call struct {
	Method  string   `json:"method,omitempty"`
	Options *Options `json:"options,omitempty"`
	Level   Level    `json:"level,omitempty"`
}

// Engine owns the banners of one document and the settings they were drawn
// from. It is not safe for concurrent use.
type Engine struct {
	doc      *Document
	renderer *Renderer
	settings Settings
	logger   *slog.Logger
}

// NewEngine returns an engine for doc holding the default settings. Nothing
// is rendered until Init or Set.
func NewEngine(doc *Document, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		doc:      doc,
		renderer: NewRenderer(logger),
		settings: Defaults(),
		logger:   logger,
	}
}

// Document returns the document the engine draws into.
func (e *Engine) Document() *Document {
	return e.doc
}

// Settings returns the current settings.
func (e *Engine) Settings() Settings {
	return e.settings
}

// Init resolves opts against the defaults and renders.
func (e *Engine) Init(opts Options) {
	e.settings = Resolve(Defaults(), opts)
	e.renderer.Render(e.doc, e.settings)
}

// Set changes only the level of the current settings and renders.
func (e *Engine) Set(level Level) {
	e.settings = Resolve(e.settings, Options{}.WithLevel(level))
	e.renderer.Render(e.doc, e.settings)
}

// Show reveals every banner.
func (e *Engine) Show() {
	SetHidden(e.doc, false)
}

// Hide hides every banner.
func (e *Engine) Hide() {
	SetHidden(e.doc, true)
}

// Call dispatches c by method name. Unknown names fail with
// *InvalidMethodError and leave the document untouched.
func (e *Engine) Call(c Call) error {
	switch c.Method {
	case "", MethodInit:
		var opts Options
		if c.Options != nil {
			opts = *c.Options
		}
		e.Init(opts)
	case MethodShow:
		e.Show()
	case MethodHide:
		e.Hide()
	case MethodSet:
		e.Set(c.Level)
	default:
		e.logger.Error("banner: invalid method", "method", c.Method)
		return &InvalidMethodError{Method: c.Method}
	}
	return nil
}

// CallAll validates every call, then runs them in order. A single invalid
// method rejects the whole chain before any mutation.
func (e *Engine) CallAll(calls []Call) error {
	for _, c := range calls {
		if !ValidMethod(c.Method) {
			return &InvalidMethodError{Method: c.Method}
		}
	}
	for _, c := range calls {
		if err := e.Call(c); err != nil {
			return err
		}
	}
	return nil
}

// ValidMethod reports whether Call accepts method.
func ValidMethod(method string) bool {
	switch method {
	case "", MethodInit, MethodShow, MethodHide, MethodSet:
		return true
	}
	return false
}
