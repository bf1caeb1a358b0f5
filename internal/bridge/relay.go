package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"tg-turfbot/internal/logger"
	"tg-turfbot/internal/models"
)

// Default formatting applied when a user has no profile of their own.
const (
	DefaultPreset = "**Attacker:** {attacker}\n**Begin:** {begin}\n**Zonename:** {zonename}\n**Zonenumber:** {zonenumber}"
	defaultIntro  = "✨ Incoming turf report:"
)

// Store is the persistence surface for relay profiles and presets.
type Store interface {
	GetProfile(userID int64) (*models.BridgeProfile, error)
	SaveProfile(profile *models.BridgeProfile) error
	SavePreset(preset *models.BridgePreset) error
	GetPresets(userID int64) ([]*models.BridgePreset, error)
}

// Relay forwards messages captured from an external account to an
// outgoing webhook, turning recognized turf reports into the user's
// preferred format along the way.
type Relay struct {
	store      Store
	httpClient *http.Client

	webhookURL string
	intro      string
}

// NewRelay builds the relay. webhookURL is the fallback delivery target
// for users whose profile does not carry one; intro overrides the
// default report introduction when non-empty.
func NewRelay(store Store, webhookURL, intro string) *Relay {
	if intro == "" {
		intro = defaultIntro
	}
	return &Relay{
		store:      store,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		webhookURL: webhookURL,
		intro:      intro,
	}
}

var placeholderPattern = regexp.MustCompile(`\{[a-z_]+\}`)

// Format renders the relayed message body for the given user. Turf
// reports go through the user's format (or the default preset), plain
// messages are passed through prefixed with the sender.
func (r *Relay) Format(userID int64, sender, msg string) string {
	profile, err := r.store.GetProfile(userID)
	if err != nil {
		logger.Warningf("Error loading relay profile for %d: %v", userID, err)
	}

	intro := r.intro
	format := DefaultPreset
	if profile != nil {
		if profile.Intro != "" {
			intro = profile.Intro
		}
		if profile.Format != "" {
			format = profile.Format
		}
	}

	report := ParseTurfReport(msg)
	if report == nil {
		return fmt.Sprintf("%s\n%s: %s", intro, sender, msg)
	}

	body := expand(format, sender, report)
	if placeholderPattern.MatchString(body) {
		// The custom format references unknown fields; fall back to
		// the default preset rather than relaying broken output.
		body = expand(DefaultPreset, sender, report)
	}
	return fmt.Sprintf("%s\n%s", intro, body)
}

func expand(format, sender string, report *TurfReport) string {
	replacer := strings.NewReplacer(
		"{attacker}", report.Attacker,
		"{begin}", report.Begin,
		"{zonename}", report.ZoneName,
		"{zonenumber}", report.ZoneNumber,
		"{sender}", sender,
		"\\n", "\n",
	)
	return replacer.Replace(format)
}

type webhookPayload struct {
	Content  string `json:"content"`
	Username string `json:"username,omitempty"`
}

// Send formats the message for the user and delivers it to their
// webhook. Non-2xx responses are reported as errors.
func (r *Relay) Send(ctx context.Context, userID int64, sender, msg string) error {
	profile, err := r.store.GetProfile(userID)
	if err != nil {
		logger.Warningf("Error loading relay profile for %d: %v", userID, err)
	}

	target := r.webhookURL
	if profile != nil && profile.WebhookURL != "" {
		target = profile.WebhookURL
	}
	if target == "" {
		return fmt.Errorf("no webhook configured for user %d", userID)
	}

	payload := webhookPayload{
		Content:  r.Format(userID, sender, msg),
		Username: fmt.Sprintf("Bridge (%s)", sender),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delivering to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// SavePreset stores a named format for later selection.
func (r *Relay) SavePreset(userID int64, name, format string) error {
	return r.store.SavePreset(&models.BridgePreset{UserID: userID, Name: name, Format: format})
}

// Presets lists the user's stored formats.
func (r *Relay) Presets(userID int64) ([]*models.BridgePreset, error) {
	return r.store.GetPresets(userID)
}

// ErrNoPreset is returned when loading a preset name the user never saved.
var ErrNoPreset = errors.New("no such preset")

// LoadPreset copies a saved format into the user's active profile.
func (r *Relay) LoadPreset(userID int64, name string) error {
	presets, err := r.store.GetPresets(userID)
	if err != nil {
		return err
	}
	for _, preset := range presets {
		if preset.Name == name {
			return r.SetFormat(userID, preset.Format)
		}
	}
	return ErrNoPreset
}

// SetFormat updates the user's active format, creating the profile on
// first use.
func (r *Relay) SetFormat(userID int64, format string) error {
	return r.updateProfile(userID, func(p *models.BridgeProfile) { p.Format = format })
}

// SetIntro updates the user's report introduction line.
func (r *Relay) SetIntro(userID int64, intro string) error {
	return r.updateProfile(userID, func(p *models.BridgeProfile) { p.Intro = intro })
}

// SetWebhook points the user's deliveries at their own webhook.
func (r *Relay) SetWebhook(userID int64, url string) error {
	return r.updateProfile(userID, func(p *models.BridgeProfile) { p.WebhookURL = url })
}

func (r *Relay) updateProfile(userID int64, mutate func(*models.BridgeProfile)) error {
	profile, err := r.store.GetProfile(userID)
	if err != nil {
		return err
	}
	if profile == nil {
		profile = &models.BridgeProfile{UserID: userID}
	}
	mutate(profile)
	return r.store.SaveProfile(profile)
}
