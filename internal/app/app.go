// Package app wires the relay's HTTP front door: it parses inbound chat
// requests, sequences identity resolution, conversation augmentation and the
// upstream completion call, and streams the upstream bytes back to the
// caller as they arrive.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"copilot-agent/internal/agent"
	"copilot-agent/internal/auth"
	"copilot-agent/internal/billing"
	"copilot-agent/internal/github"
	"copilot-agent/internal/logview"
	"copilot-agent/pkg/models"
)

// Greeting is the static body served to unauthenticated GET / checks.
const Greeting = "Hello! I'm the SOLID reviewer agent. POST a Copilot chat payload to this endpoint to get a design review."

// TokenHeader is the request header carrying the delegated credential.
const TokenHeader = "X-GitHub-Token"

// IdentityResolver resolves the acting user for a delegated token.
type IdentityResolver interface {
	CurrentUser(ctx context.Context, token string) (*models.Identity, error)
}

// CompletionRelay forwards an augmented conversation to the upstream
// streaming completion API and hands back the raw response body.
type CompletionRelay interface {
	Complete(ctx context.Context, token string, req models.CompletionRequest) (io.ReadCloser, error)
}

// App is the relay application: the router plus every collaborator a
// request passes through. All state is per-request; App itself is immutable
// after New.
type App struct {
	Router *http.ServeMux

	log     *logrus.Logger
	view    *logview.Presenter
	gate    *auth.Gate
	github  IdentityResolver
	relay   CompletionRelay
	billing *billing.Reporter
}

// New creates and wires a relay application from the given configuration.
func New(cfg *Config, log *logrus.Logger) *App {
	a := &App{
		Router:  http.NewServeMux(),
		log:     log,
		view:    logview.New(logview.ParseMode(cfg.LogMode), log),
		gate:    auth.NewGate(cfg.SessionSecret, cfg.DisableAuth),
		github:  github.NewClient(cfg.GitHubAPIURL),
		relay:   agent.NewService(cfg.CompletionURL),
		billing: billing.NewReporter(cfg.StripeAPIKey, cfg.StripeSubscriptionItem, log),
	}

	a.initializeRoutes()
	return a
}

func (a *App) initializeRoutes() {
	a.Router.HandleFunc("/", a.handleRoot)
}

// LogMode reports the effective request presentation mode, after fallback
// for unrecognized configuration values.
func (a *App) LogMode() logview.Mode {
	return a.view.Mode()
}

// handleRoot dispatches the single external route: GET serves the greeting,
// POST runs the relay pipeline. The mux "/" pattern matches every path, so
// anything but the root itself is rejected here.
func (a *App) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		a.writeError(w, "not found", "invalid_request_error", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.handleGreeting(w, r)
	case http.MethodPost:
		a.handleChat(w, r)
	default:
		a.writeError(w, "method not allowed", "invalid_request_error", http.StatusMethodNotAllowed)
	}
}

// handleGreeting serves the unauthenticated health/info check. It never
// contacts any upstream service.
func (a *App) handleGreeting(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(Greeting))
}

// handleChat runs the relay pipeline. The steps are strictly sequential and
// every failure before the first streamed byte is surfaced as a JSON error
// response; after that, a failure just ends the stream.
func (a *App) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := a.gate.Authorize(r); err != nil {
		a.writeError(w, err.Error(), "authentication_error", http.StatusUnauthorized)
		return
	}

	token := r.Header.Get(TokenHeader)
	if token == "" {
		a.writeError(w, "missing "+TokenHeader+" header", "authentication_error", http.StatusUnauthorized)
		return
	}

	var chat models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&chat); err != nil {
		a.writeError(w, "invalid request body: "+err.Error(), "invalid_request_error", http.StatusBadRequest)
		return
	}
	if len(chat.Messages) == 0 {
		a.writeError(w, "messages must contain at least one turn", "invalid_request_error", http.StatusBadRequest)
		return
	}

	identity, err := a.github.CurrentUser(ctx, token)
	if err != nil {
		status := http.StatusBadGateway
		kind := "upstream_error"
		if errors.Is(err, github.ErrMissingCredential) {
			status = http.StatusUnauthorized
			kind = "authentication_error"
		}
		a.log.WithError(err).Warn("identity resolution failed")
		a.writeError(w, err.Error(), kind, status)
		return
	}

	a.view.LogRequest(&chat, *identity)

	turns := agent.Augment(identity.Login, chat.Messages)

	stream, err := a.relay.Complete(ctx, token, agent.BuildCompletionRequest(&chat, turns))
	if err != nil {
		a.log.WithError(err).Warn("completion relay failed")
		a.writeError(w, err.Error(), "upstream_error", http.StatusBadGateway)
		return
	}
	defer stream.Close()

	// From here on the response is committed; errors can only truncate it.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	written, err := copyFlush(w, stream)
	entry := a.log.WithFields(logrus.Fields{"user": identity.Login, "bytes": written})
	if err != nil {
		entry.WithError(err).Warn("stream truncated")
	} else {
		entry.Debug("stream complete")
	}

	a.billing.RecordRequest(identity.Login)
}

// copyFlush copies src to dst, flushing after every chunk so bytes reach
// the caller as they arrive from upstream instead of when the stream ends.
func copyFlush(dst http.ResponseWriter, src io.Reader) (int64, error) {
	flusher, _ := dst.(http.Flusher)
	buf := make([]byte, 32*1024)

	var written int64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			wn, writeErr := dst.Write(buf[:n])
			written += int64(wn)
			if flusher != nil {
				flusher.Flush()
			}
			if writeErr != nil {
				return written, writeErr
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				return written, nil
			}
			return written, readErr
		}
	}
}

// writeError emits a JSON error body. Only called before any stream bytes
// have been written.
func (a *App) writeError(w http.ResponseWriter, message, kind string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{"message": message, "type": kind},
	})
}
