// Package roster fans announcements out to the holders of a role
// artifact.
package roster

import (
	"context"

	"tg-turfbot/internal/logger"
	"tg-turfbot/internal/platform"
)

// MessageRole DMs the text to every current holder of the named role
// and returns how many deliveries went through. Individual delivery
// failures are logged and skipped; a missing role surfaces as
// platform.ErrNotFound.
func MessageRole(ctx context.Context, client platform.Client, communityID int64, roleName, text string) (int, error) {
	members, err := client.RoleMembers(ctx, communityID, roleName)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, userID := range members {
		if _, err := client.SendDirectMessage(ctx, userID, text, nil); err != nil {
			logger.Warningf("Error delivering role message to %d: %v", userID, err)
			continue
		}
		sent++
	}
	logger.Infof("Role message to %q in %d reached %d of %d holders", roleName, communityID, sent, len(members))
	return sent, nil
}
