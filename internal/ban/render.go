package ban

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tg-turfbot/internal/models"
	"tg-turfbot/internal/platform"
)

func (m *Manager) tr(communityID int64, key string) string {
	return models.GetTranslation(m.langOf(communityID), key)
}

func (m *Manager) refreshKeyboard(communityID int64) platform.Keyboard {
	return platform.Keyboard{
		{platform.Button{Text: m.tr(communityID, "ban_dm_refresh_button"), Callback: RefreshCallback}},
	}
}

// communityTitle resolves the community's display name, falling back to
// the raw id when the lookup fails.
func (m *Manager) communityTitle(ctx context.Context, communityID int64) string {
	name, err := m.client.CommunityName(ctx, communityID)
	if err != nil || name == "" {
		return fmt.Sprintf("%d", communityID)
	}
	return name
}

// renderActive builds the countdown DM body for a running ban.
func (m *Manager) renderActive(ctx context.Context, communityID int64, reason string, unbanTimestamp int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", fmt.Sprintf(m.tr(communityID, "ban_dm_title"), m.communityTitle(ctx, communityID)))
	if reason != "" {
		fmt.Fprintf(&b, "%s: %s\n", m.tr(communityID, "reason"), reason)
	}
	remaining := time.Unix(unbanTimestamp, 0).Sub(m.now())
	if remaining < 0 {
		remaining = 0
	}
	fmt.Fprintf(&b, "%s: %s", m.tr(communityID, "ban_dm_ends"), FormatRemaining(remaining))
	return b.String()
}

// renderExpired builds the final DM body once the ban has run out.
func (m *Manager) renderExpired(ctx context.Context, record *models.BanRecord, invite string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", fmt.Sprintf(m.tr(record.CommunityID, "ban_expired_title"), m.communityTitle(ctx, record.CommunityID)))
	b.WriteString(m.tr(record.CommunityID, "ban_expired_desc"))
	if len(record.RestoreRoleIDs()) > 0 {
		b.WriteString("\n")
		b.WriteString(m.tr(record.CommunityID, "ban_expired_pending"))
	}
	if invite != "" {
		fmt.Fprintf(&b, "\n%s: %s", m.tr(record.CommunityID, "ban_rejoin_link"), invite)
	}
	return b.String()
}

// renderManualUnban builds the DM body for an operator-issued unban.
func (m *Manager) renderManualUnban(ctx context.Context, communityID, actorID int64, reason, invite string) string {
	actor, err := m.client.UserName(ctx, actorID)
	if err != nil || actor == "" {
		actor = fmt.Sprintf("%d", actorID)
	}
	if reason == "" {
		reason = "-"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", fmt.Sprintf(m.tr(communityID, "unban_manual_dm_title"), m.communityTitle(ctx, communityID)))
	fmt.Fprintf(&b, m.tr(communityID, "unban_manual_dm_desc"), actor, reason)
	if invite != "" {
		fmt.Fprintf(&b, "\n%s: %s", m.tr(communityID, "ban_rejoin_link"), invite)
	}
	return b.String()
}

// FormatRemaining renders a duration as a compact countdown string,
// e.g. "2d 3h 15m" or "45s". Sub-minute remainders only show once the
// total drops under a minute.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Seconds())

	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	parts := make([]string, 0, 3)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}
