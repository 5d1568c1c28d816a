// Package logview renders inbound requests on the console. It is
// presentation-only: the relay pipeline hands it the parsed request and the
// resolved identity and never depends on anything it does. This is the one
// place that looks inside reference payloads.
package logview

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"copilot-agent/pkg/models"
)

// Mode selects how much of each request is printed. It is chosen once at
// process start and never changes.
type Mode string

const (
	// ModeQuiet prints nothing per request.
	ModeQuiet Mode = "quiet"
	// ModeCompact prints one line per request.
	ModeCompact Mode = "compact"
	// ModeFull prints every turn and its references.
	ModeFull Mode = "full"
)

// ParseMode maps a configuration string onto a Mode, falling back to
// ModeCompact for anything unrecognized.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(s)) {
	case ModeQuiet:
		return ModeQuiet
	case ModeFull:
		return ModeFull
	default:
		return ModeCompact
	}
}

// Presenter formats parsed requests per the configured mode.
type Presenter struct {
	mode Mode
	log  *logrus.Logger
}

// New creates a Presenter writing through the given logger.
func New(mode Mode, log *logrus.Logger) *Presenter {
	return &Presenter{mode: mode, log: log}
}

// Mode returns the presentation mode the Presenter was built with.
func (p *Presenter) Mode() Mode {
	return p.mode
}

// LogRequest prints the parsed request according to the presentation mode.
func (p *Presenter) LogRequest(req *models.ChatRequest, identity models.Identity) {
	switch p.mode {
	case ModeQuiet:
		return
	case ModeFull:
		p.logFull(req, identity)
	default:
		p.log.WithFields(logrus.Fields{
			"user":   identity.Login,
			"turns":  len(req.Messages),
			"thread": req.CopilotThreadID,
		}).Info("chat request")
	}
}

func (p *Presenter) logFull(req *models.ChatRequest, identity models.Identity) {
	header := color.New(color.FgCyan, color.Bold)
	roleStyle := color.New(color.FgYellow)
	refStyle := color.New(color.FgGreen)

	p.log.Info(header.Sprintf("chat request from @%s (%d turns)", identity.Login, len(req.Messages)))

	for i, turn := range req.Messages {
		content := turn.Content
		if runes := []rune(content); len(runes) > 120 {
			content = string(runes[:120]) + "…"
		}
		p.log.Infof("  [%d] %s %s", i, roleStyle.Sprint(turn.Role+":"), content)

		for _, ref := range turn.CopilotReferences {
			p.log.Infof("      %s %s", refStyle.Sprint("ref:"), describeReference(ref))
		}
	}
}

// describeReference renders one reference for display. Unknown types are
// shown rather than dropped so new client reference kinds stay visible.
func describeReference(ref models.Reference) string {
	suffix := ""
	if ref.IsImplicit {
		suffix = " (implicit)"
	}

	payload, err := ref.Payload()
	if err != nil {
		return fmt.Sprintf("%s %s%s", ref.Type, ref.ID, suffix)
	}

	switch data := payload.(type) {
	case *models.RepositoryData:
		return fmt.Sprintf("repository %s/%s%s", data.OwnerLogin, data.Name, suffix)
	case *models.FileData:
		return fmt.Sprintf("file %s (%s)%s", data.Path, data.Language, suffix)
	case *models.SelectionData:
		return fmt.Sprintf("selection %d:%d-%d:%d%s",
			data.Start.Line, data.Start.Col, data.End.Line, data.End.Col, suffix)
	default:
		return fmt.Sprintf("%s %s%s", ref.Type, ref.ID, suffix)
	}
}
