package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/settleapp/settle/internal/apperr"
	"github.com/settleapp/settle/internal/models"
	"github.com/settleapp/settle/internal/notify"
	"github.com/settleapp/settle/internal/storage"
)

// GroupService creates and reads groups.
type GroupService struct {
	store    storage.Store
	notifier notify.Notifier
	mailer   notify.Mailer
}

// NewGroupService creates a new GroupService.
func NewGroupService(store storage.Store, notifier notify.Notifier, mailer notify.Mailer) *GroupService {
	return &GroupService{store: store, notifier: notifier, mailer: mailer}
}

// CreateGroup creates a group with the given members. Emails are normalized
// and de-duplicated preserving order, and the creator is always a member.
// Every member gets a new_group event; non-creator members with notifications
// enabled get an email.
func (s *GroupService) CreateGroup(ctx context.Context, actor *models.User, name, description string, members []string) (*models.Group, error) {
	if name == "" || len(members) == 0 {
		return nil, apperr.Validationf("group name and at least one member are required")
	}

	normalized := make([]string, 0, len(members)+1)
	seen := make(map[string]bool, len(members)+1)
	for _, m := range members {
		email := models.NormalizeEmail(m)
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		normalized = append(normalized, email)
	}
	if !seen[actor.Email] {
		normalized = append(normalized, actor.Email)
	}

	group := &models.Group{
		Name:        name,
		Description: description,
		Members:     normalized,
		CreatedBy:   actor.ID,
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, apperr.Dependency("failed to create group", err)
	}

	slog.Info("Group created", "group_id", group.ID, "members", len(group.Members))

	if err := s.notifier.Notify(ctx, group.Members, notify.EventNewGroup, group); err != nil {
		slog.Warn("Group event delivery failed", "group_id", group.ID, "error", err)
	}
	s.emailNewMembers(ctx, actor, group)

	return group, nil
}

// ListGroups retrieves every group the actor belongs to, newest first.
func (s *GroupService) ListGroups(ctx context.Context, actor *models.User) ([]*models.Group, error) {
	groups, err := s.store.ListGroupsByMember(ctx, actor.Email)
	if err != nil {
		slog.Error("ListGroups failed", "user_id", actor.ID, "error", err)
		return nil, apperr.Dependency("failed to list groups", err)
	}
	return groups, nil
}

// GetGroup retrieves a group. The actor must be its creator or a member.
func (s *GroupService) GetGroup(ctx context.Context, actor *models.User, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err == storage.ErrNotFound {
		return nil, apperr.NotFoundf("group not found")
	}
	if err != nil {
		slog.Error("GetGroup failed", "group_id", groupID, "error", err)
		return nil, apperr.Dependency("failed to get group", err)
	}

	if group.CreatedBy != actor.ID && !group.HasMember(actor.Email) {
		return nil, apperr.Forbiddenf("you do not have permission to view this group")
	}

	return group, nil
}

// emailNewMembers sends the welcome email to everyone except the creator,
// honoring each recipient's notification preference. Failures are logged and
// swallowed: mail never blocks group creation.
func (s *GroupService) emailNewMembers(ctx context.Context, actor *models.User, group *models.Group) {
	var others []string
	for _, m := range group.Members {
		if m != actor.Email {
			others = append(others, m)
		}
	}
	if len(others) == 0 {
		return
	}

	users, err := s.store.ListUsersByEmails(ctx, others)
	if err != nil {
		slog.Error("Failed to load members for email notification", "group_id", group.ID, "error", err)
		return
	}

	subject := fmt.Sprintf("You've been added to a new group: %s", group.Name)
	body := fmt.Sprintf(
		"Hi there,\n\n%s (%s) has added you to a new expense splitting group called %q.\n\nYou can now split expenses with them!\n\nBest,\nThe Settle Team",
		actor.Name, actor.Email, group.Name,
	)

	for _, user := range users {
		if !user.Notifications {
			continue
		}
		if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
			slog.Warn("Failed to send group email", "to", user.Email, "error", err)
		}
	}
}
