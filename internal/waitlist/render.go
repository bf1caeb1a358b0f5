package waitlist

import (
	"context"
	"fmt"
	"strings"

	"tg-turfbot/internal/logger"
	"tg-turfbot/internal/models"
	"tg-turfbot/internal/platform"
)

func (e *Engine) tr(communityID int64, key string) string {
	return models.GetTranslation(e.langOf(communityID), key)
}

func (e *Engine) keyboard(communityID int64) platform.Keyboard {
	return platform.Keyboard{
		{
			platform.Button{Text: e.tr(communityID, "list_btn_join"), Callback: JoinCallback},
			platform.Button{Text: e.tr(communityID, "list_btn_reserve"), Callback: ReserveCallback},
			platform.Button{Text: e.tr(communityID, "list_btn_leave"), Callback: LeaveCallback},
		},
	}
}

// displayName resolves a slot holder's name, falling back to the id.
func (e *Engine) displayName(ctx context.Context, userID int64) string {
	name, err := e.client.UserName(ctx, userID)
	if err != nil || name == "" {
		return fmt.Sprintf("%d", userID)
	}
	return name
}

// renderText builds the full list display body. locked switches the
// footer; the slots themselves are rendered as passed in.
func (e *Engine) renderText(ctx context.Context, list *models.Waitlist, locked bool) string {
	main := list.MainIDs()
	reserve := list.ReserveIDs()

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n\n", e.tr(list.CommunityID, "list_header"))

	fmt.Fprintf(&b, "<b>%s</b>\n", fmt.Sprintf(e.tr(list.CommunityID, "list_main_title"), len(main), e.maxMain))
	if len(main) == 0 {
		b.WriteString(e.tr(list.CommunityID, "list_empty"))
		b.WriteString("\n")
	} else {
		for i, userID := range main {
			fmt.Fprintf(&b, "%d. %s\n", i+1, e.displayName(ctx, userID))
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "<b>%s</b>\n", fmt.Sprintf(e.tr(list.CommunityID, "list_reserve_title"), len(reserve)))
	if len(reserve) == 0 {
		b.WriteString(e.tr(list.CommunityID, "list_empty"))
		b.WriteString("\n")
	} else {
		for i, userID := range reserve {
			fmt.Fprintf(&b, "%d. %s\n", i+1, e.displayName(ctx, userID))
		}
	}

	b.WriteString("\n")
	if locked {
		b.WriteString(e.tr(list.CommunityID, "list_locked_footer"))
	} else {
		b.WriteString(e.tr(list.CommunityID, "list_footer"))
	}
	return b.String()
}

// redraw updates the list display in place, posting a fresh message
// when none exists yet or the old one is gone.
func (e *Engine) redraw(ctx context.Context, list *models.Waitlist) {
	text := e.renderText(ctx, list, list.Locked)
	var keyboard platform.Keyboard
	if !list.Locked {
		keyboard = e.keyboard(list.CommunityID)
	}

	if list.HasDisplay() {
		ref := platform.MessageRef{ChatID: list.ChannelID, MessageID: list.MessageID}
		if err := e.client.EditMessage(ctx, ref, text, keyboard); err == nil {
			return
		}
	}

	ref, err := e.client.SendGroupMessage(ctx, list.ChannelID, text, keyboard)
	if err != nil {
		logger.Warningf("Error posting list display in %d: %v", list.CommunityID, err)
		return
	}
	list.MessageID = ref.MessageID
	if err := e.store.Save(list); err != nil {
		logger.Warningf("Error saving list display ref in %d: %v", list.CommunityID, err)
	}
}

// retireDisplay marks a superseded list's message and drops its buttons.
func (e *Engine) retireDisplay(ctx context.Context, list *models.Waitlist) {
	if !list.HasDisplay() {
		return
	}
	ref := platform.MessageRef{ChatID: list.ChannelID, MessageID: list.MessageID}
	if err := e.client.EditMessage(ctx, ref, e.tr(list.CommunityID, "list_replaced"), nil); err != nil {
		logger.Warningf("Error retiring list display in %d: %v", list.CommunityID, err)
	}
}

// announcePromotion posts the move-up notice for a backfilled slot.
func (e *Engine) announcePromotion(ctx context.Context, list *models.Waitlist, userID int64) {
	text := fmt.Sprintf(e.tr(list.CommunityID, "list_msg_promoted_notice"), e.displayName(ctx, userID))
	if _, err := e.client.SendGroupMessage(ctx, list.ChannelID, text, nil); err != nil {
		logger.Warningf("Error announcing promotion in %d: %v", list.CommunityID, err)
	}
}
