package follow

import (
	"context"
	"errors"
	"fmt"

	"foodgram/internal/core"
	"foodgram/internal/logger"
)

var (
	ErrSelfFollow       = errors.New("you cannot subscribe to yourself")
	ErrAlreadyFollowing = errors.New("already subscribed to this user")
	ErrNotFollowing     = errors.New("not subscribed to this user")
	ErrUserNotFound     = errors.New("user not found")
)

type Service struct {
	repo  Repository
	users core.UserReader
	log   *logger.Logger
}

func NewService(repo Repository, users core.UserReader, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:  repo,
		users: users,
		log:   log.With("service", "follow"),
	}
}

func (s *Service) checkTarget(ctx context.Context, userID, targetID string) error {
	exists, err := s.users.UserExists(ctx, targetID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}
	if userID == targetID {
		return ErrSelfFollow
	}
	return nil
}

func (s *Service) Subscribe(ctx context.Context, userID, targetID string, recipesLimit int) (*Subscription, error) {
	if err := s.checkTarget(ctx, userID, targetID); err != nil {
		return nil, err
	}

	added, err := s.repo.Follow(ctx, userID, targetID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, ErrAlreadyFollowing
	}
	s.log.Info("subscribed", "user_id", userID, "author_id", targetID)

	return s.repo.Subscription(ctx, userID, targetID, recipesLimit)
}

func (s *Service) Unsubscribe(ctx context.Context, userID, targetID string) error {
	if err := s.checkTarget(ctx, userID, targetID); err != nil {
		return err
	}

	removed, err := s.repo.Unfollow(ctx, userID, targetID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFollowing
	}
	return nil
}

func (s *Service) Subscriptions(
	ctx context.Context,
	userID string,
	limit, offset, recipesLimit int,
) ([]Subscription, int, error) {
	return s.repo.Subscriptions(ctx, userID, limit, offset, recipesLimit)
}
