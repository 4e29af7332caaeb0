package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/totpwidget/core/handler"
	"github.com/dmitrymomot/totpwidget/core/i18n"
	"github.com/dmitrymomot/totpwidget/core/logger"
	"github.com/dmitrymomot/totpwidget/core/response"
	"github.com/dmitrymomot/totpwidget/internal/web/widget"
	"github.com/dmitrymomot/totpwidget/middleware"
	"github.com/dmitrymomot/totpwidget/pkg/base32"
	"github.com/dmitrymomot/totpwidget/pkg/totp"
)

// DefaultMaxRetries is the refresh retry ceiling handed to the widget script.
const DefaultMaxRetries = 3

// Handler serves codes for secrets taken from the request path.
type Handler struct {
	engine       *totp.Engine
	now          func() time.Time
	log          *slog.Logger
	translations *i18n.I18n
	maxRetries   int
	assetsPath   string
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock replaces the wall clock. Tests use it to pin the time.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// WithLogger sets the logger for rejected secrets. Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithTranslations sets the page strings. Without it the embedded locales
// are loaded with English as the default.
func WithTranslations(tr *i18n.I18n) Option {
	return func(h *Handler) {
		h.translations = tr
	}
}

// WithMaxRetries sets how many times the page retries a failed refresh.
func WithMaxRetries(n int) Option {
	return func(h *Handler) {
		if n >= 0 {
			h.maxRetries = n
		}
	}
}

// WithAssetsPath sets the URL prefix of the widget assets.
func WithAssetsPath(p string) Option {
	return func(h *Handler) {
		if p != "" {
			h.assetsPath = p
		}
	}
}

// New creates a Handler around engine.
// Panics if the embedded locales cannot be loaded and none were given.
func New(engine *totp.Engine, opts ...Option) *Handler {
	if engine == nil {
		panic("web: engine is required")
	}

	h := &Handler{
		engine:     engine,
		now:        time.Now,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxRetries: DefaultMaxRetries,
		assetsPath: widget.DefaultAssetsPath,
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.translations == nil {
		tr, err := widget.Translations(i18n.DefaultLang)
		if err != nil {
			panic(fmt.Sprintf("web: load translations: %v", err))
		}
		h.translations = tr
	}

	return h
}

// Translations returns the page strings the handler renders with.
func (h *Handler) Translations() *i18n.I18n {
	return h.translations
}

// result is one evaluation of a request.
type result struct {
	secret string
	now    int64
	code   totp.Code
}

// resolve reads the clock once and computes the code for r's secret.
// Errors are *MissingSecretError, *base32.InvalidCharacterError or
// *totp.CodeGenerationError, the latter also for secrets that decode to no
// bytes at all ("====", "A").
func (h *Handler) resolve(r *http.Request) (result, error) {
	res := result{
		secret: Secret(r),
		now:    h.now().Unix(),
	}
	if res.secret == "" {
		return res, &MissingSecretError{Origin: Origin(r)}
	}

	key, err := base32.Decode(res.secret)
	if err != nil {
		return res, err
	}

	res.code, err = h.engine.Compute(key, res.now)
	return res, err
}

// Code serves the code for the secret in the request path, as JSON when
// ?format=json is set and as the widget page otherwise.
func (h *Handler) Code(ctx handler.Context) handler.Response {
	r := ctx.Request()
	res, err := h.resolve(r)
	if err != nil {
		h.logRejected(ctx, err)
	} else {
		h.log.DebugContext(ctx, "code served", logger.Event("code_served"), logger.Counter(res.code.Counter))
	}

	if wantsJSON(r) {
		return h.json(res, err)
	}
	return h.page(ctx, r, res, err)
}

type tokenBody struct {
	Token      string `json:"token"`
	Remaining  int64  `json:"remaining"`
	ServerTime int64  `json:"serverTime"`
}

type usageBody struct {
	Error   string `json:"error"`
	Usage   string `json:"usage"`
	Example string `json:"example"`
}

type invalidBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *Handler) json(res result, err error) handler.Response {
	var resp handler.Response

	var missing *MissingSecretError
	switch {
	case err == nil:
		resp = response.JSON(tokenBody{
			Token:      res.code.Value,
			Remaining:  res.code.Remaining,
			ServerTime: res.now,
		})
	case errors.As(err, &missing):
		resp = response.JSONWithStatus(usageBody{
			Error:   missing.Error(),
			Usage:   missing.Usage(),
			Example: missing.Example(),
		}, http.StatusBadRequest)
	default:
		resp = response.JSONWithStatus(invalidBody{
			Error:   msgInvalidSecret,
			Message: err.Error(),
		}, http.StatusBadRequest)
	}

	return response.NoStore(response.WithCORS(resp, "*"))
}

func (h *Handler) page(ctx context.Context, r *http.Request, res result, err error) handler.Response {
	tr, ok := middleware.GetTranslator(ctx)
	if !ok {
		tr = i18n.NewTranslator(h.translations, h.translations.Match(r.Header.Get("Accept-Language")), widget.Namespace)
	}

	props := widget.Props{
		Lang:       tr.Language(),
		Messages:   tr.Messages(),
		Origin:     Origin(r),
		AssetsPath: h.assetsPath,
		Secret:     res.secret,
		Remaining:  h.engine.Remaining(res.now),
		ServerTime: res.now,
		TimeStep:   h.engine.TimeStep(),
		MaxRetries: h.maxRetries,
	}

	status := http.StatusOK
	var missing *MissingSecretError
	switch {
	case err == nil:
		props.Code = res.code.Value
		props.Remaining = res.code.Remaining
	case errors.As(err, &missing):
		// Landing page.
	default:
		// Rejected secrets still get the page, but with 400 so scripted
		// callers can tell them from a served code.
		status = http.StatusBadRequest
		props.Error = tr.T("error.invalid")
		props.Detail = err.Error()
	}

	return response.NoStore(response.TemplWithStatus(widget.Page(props), status))
}

func (h *Handler) logRejected(ctx context.Context, err error) {
	var (
		missing *MissingSecretError
		invalid *base32.InvalidCharacterError
		genErr  *totp.CodeGenerationError
	)
	switch {
	case errors.As(err, &missing):
		h.log.DebugContext(ctx, "request without secret", logger.Event("missing_secret"))
	case errors.As(err, &invalid):
		h.log.DebugContext(ctx, "secret rejected", logger.Event("invalid_secret"), slog.Int("position", invalid.Pos))
	case errors.Is(err, totp.ErrEmptyKey):
		h.log.DebugContext(ctx, "secret rejected", logger.Event("empty_key"))
	case errors.As(err, &genErr):
		h.log.ErrorContext(ctx, "code generation failed", logger.Event("code_generation_failed"), logger.Error(genErr.Err))
	default:
		h.log.ErrorContext(ctx, "unexpected error", logger.Error(err))
	}
}

// SelfTest checks the engine against the RFC 4226 reference value for counter 1.
func (h *Handler) SelfTest(context.Context) error {
	const want = "287082"
	// Digits other than 6 produce a different value for the same key.
	if h.engine.Digits() != totp.DefaultDigits {
		return nil
	}

	got, err := h.engine.HOTP([]byte("12345678901234567890"), 1)
	if err != nil {
		return fmt.Errorf("self test: %w", err)
	}
	if got != want {
		return fmt.Errorf("self test: HOTP(counter=1) = %s, want %s", got, want)
	}
	return nil
}
