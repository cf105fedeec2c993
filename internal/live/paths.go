package live

import "fmt"

// Collection paths namespace the change feed. Per-user collections live under
// the owner's namespace; channels are shared and reference user ids by value.
// A zero owner id yields an empty path, which collections treat as inert.

func UserTasks(ownerID uint64) string {
	return userPath(ownerID, "tasks")
}

func UserProjects(ownerID uint64) string {
	return userPath(ownerID, "projects")
}

func UserTeam(ownerID uint64) string {
	return userPath(ownerID, "team")
}

func UserNotifications(ownerID uint64) string {
	return userPath(ownerID, "notifications")
}

func UserLeads(ownerID uint64) string {
	return userPath(ownerID, "leads")
}

func UserStats(ownerID uint64) string {
	return userPath(ownerID, "stats")
}

func UserInvites(ownerID uint64) string {
	return userPath(ownerID, "invites")
}

func Channels() string {
	return "channels"
}

func ChannelMessages(channelID uint64) string {
	if channelID == 0 {
		return ""
	}
	return fmt.Sprintf("channels/%d/messages", channelID)
}

func userPath(ownerID uint64, collection string) string {
	if ownerID == 0 {
		return ""
	}
	return fmt.Sprintf("users/%d/%s", ownerID, collection)
}
