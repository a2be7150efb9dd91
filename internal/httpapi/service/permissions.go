package service

import "reviewhub/internal/httpapi/models"

// CanModify is the object-level predicate for reviews and comments: the
// author, a moderator, or an administrator may mutate the object.
func CanModify(actor *models.User, authorID string) bool {
	if actor == nil {
		return false
	}
	return actor.ID == authorID || actor.IsModerator() || actor.IsAdmin()
}
