package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/apperrors"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/credential"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

// Family manages family groups, the partitions of the real-time sync channel.
type Family struct {
	familyStore  model.FamilyStore
	userStore    model.UserStore
	generateCode func() (string, error)
	logger       *logger.Logger
}

// NewFamily creates a family service.
func NewFamily(familyStore model.FamilyStore, userStore model.UserStore, logger *logger.Logger) *Family {
	return &Family{
		familyStore:  familyStore,
		userStore:    userStore,
		generateCode: credential.GenerateCode,
		logger:       logger,
	}
}

// Create starts a new family named name and moves user into it.
func (s *Family) Create(ctx context.Context, user model.User, name string) (model.FamilyView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.FamilyView{}, apperrors.NewErrValidation("family name is required")
	}

	code, err := s.uniqueInviteCode(ctx)
	if err != nil {
		return model.FamilyView{}, err
	}

	family, err := s.familyStore.Create(ctx, model.Family{
		ID:         uuid.New(),
		Name:       name,
		InviteCode: code,
	})
	if err != nil {
		s.logger.Error("Family service: failed to create family",
			"user_id", user.ID,
			"error", err.Error())
		return model.FamilyView{}, fmt.Errorf("failed to create family: %w", err)
	}

	if err := s.userStore.SetFamily(ctx, user.ID, &family.ID); err != nil {
		return model.FamilyView{}, fmt.Errorf("failed to set user family: %w", err)
	}

	s.logger.Info("Family service: family created",
		"family_id", family.ID,
		"user_id", user.ID)

	return s.view(ctx, family)
}

// Join moves user into the family holding inviteCode.
func (s *Family) Join(ctx context.Context, user model.User, inviteCode string) (model.FamilyView, error) {
	family, err := s.familyStore.GetByInviteCode(ctx, strings.ToUpper(strings.TrimSpace(inviteCode)))
	if errors.Is(err, model.ErrNotFound) {
		return model.FamilyView{}, apperrors.NewErrNotFound("Family")
	}
	if err != nil {
		return model.FamilyView{}, fmt.Errorf("failed to get family by invite code: %w", err)
	}

	if err := s.userStore.SetFamily(ctx, user.ID, &family.ID); err != nil {
		return model.FamilyView{}, fmt.Errorf("failed to set user family: %w", err)
	}

	s.logger.Info("Family service: user joined family",
		"family_id", family.ID,
		"user_id", user.ID)

	return s.view(ctx, family)
}

// Get returns the family of user with its members.
func (s *Family) Get(ctx context.Context, user model.User) (model.FamilyView, error) {
	if user.FamilyID == nil {
		return model.FamilyView{}, apperrors.NewErrNotFound("Family")
	}

	family, err := s.familyStore.GetByID(ctx, *user.FamilyID)
	if errors.Is(err, model.ErrNotFound) {
		return model.FamilyView{}, apperrors.NewErrNotFound("Family")
	}
	if err != nil {
		return model.FamilyView{}, fmt.Errorf("failed to get family: %w", err)
	}

	return s.view(ctx, family)
}

// Leave removes user from their family group.
func (s *Family) Leave(ctx context.Context, user model.User) error {
	if user.FamilyID == nil {
		return apperrors.NewErrNotFound("Family")
	}
	if err := s.userStore.SetFamily(ctx, user.ID, nil); err != nil {
		return fmt.Errorf("failed to clear user family: %w", err)
	}

	s.logger.Info("Family service: user left family",
		"family_id", *user.FamilyID,
		"user_id", user.ID)
	return nil
}

func (s *Family) view(ctx context.Context, family model.Family) (model.FamilyView, error) {
	members, err := s.userStore.GetByFamilyID(ctx, family.ID)
	if err != nil {
		return model.FamilyView{}, fmt.Errorf("failed to list family members: %w", err)
	}

	view := model.FamilyView{Family: family, Members: make([]model.UserSummary, 0, len(members))}
	for _, m := range members {
		view.Members = append(view.Members, m.Summary())
	}
	return view, nil
}

func (s *Family) uniqueInviteCode(ctx context.Context) (string, error) {
	for range maxCodeAttempts {
		code, err := s.generateCode()
		if err != nil {
			return "", err
		}
		_, err = s.familyStore.GetByInviteCode(ctx, code)
		if errors.Is(err, model.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check invite code: %w", err)
		}
	}
	return "", fmt.Errorf("no unique invite code after %d attempts", maxCodeAttempts)
}
