package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/tienda-shop/tienda/internal/events"
	"github.com/tienda-shop/tienda/internal/logging"
	"github.com/tienda-shop/tienda/internal/models"
	"github.com/tienda-shop/tienda/internal/repo"
	"github.com/tienda-shop/tienda/internal/transport"
)

type CommentService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

func (s *CommentService) publish(ctx context.Context, key string, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, events.TopicComments, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

func (s *CommentService) ListForProduct(ctx context.Context, productID uint, includeModerated bool) ([]models.Comment, error) {
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return nil, err
	}
	return s.Repo.ListProductComments(ctx, productID, includeModerated)
}

// Create accepts a comment only from customers who have purchased the
// product.
func (s *CommentService) Create(ctx context.Context, userID, productID uint, req transport.CommentRequest) (*models.Comment, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return nil, err
	}

	purchased, err := s.Repo.HasPurchased(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, fmt.Errorf("%w: only customers who purchased this product can comment", ErrForbidden)
	}

	now := time.Now().UTC()
	comment := models.Comment{
		UserID:    userID,
		ProductID: productID,
		Text:      req.Text,
		Rating:    req.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.CreateComment(ctx, &comment); err != nil {
		return nil, err
	}

	s.publish(ctx, strconv.FormatUint(uint64(comment.ID), 10), map[string]any{
		"type":      "comment_created",
		"commentID": comment.ID,
		"productID": productID,
		"userID":    userID,
	})
	return &comment, nil
}

// Edit is restricted to the comment's owner.
func (s *CommentService) Edit(ctx context.Context, commentID, userID uint, req transport.PatchCommentRequest) (*models.Comment, error) {
	comment, err := s.Repo.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
		}
		return nil, err
	}

	if comment.UserID != userID {
		return nil, fmt.Errorf("%w: not the comment owner", ErrForbidden)
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
		}
		comment.Rating = *req.Rating
	}
	if req.Text != nil {
		comment.Text = *req.Text
	}
	comment.UpdatedAt = time.Now().UTC()

	if err := s.Repo.SaveComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Moderate sets or clears the moderation flag; moderated comments disappear
// from the public listing.
func (s *CommentService) Moderate(ctx context.Context, commentID uint, moderated bool) (*models.Comment, error) {
	comment, err := s.Repo.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
		}
		return nil, err
	}

	comment.Moderated = moderated
	comment.UpdatedAt = time.Now().UTC()

	if err := s.Repo.SaveComment(ctx, comment); err != nil {
		return nil, err
	}

	s.publish(ctx, strconv.FormatUint(uint64(comment.ID), 10), map[string]any{
		"type":      "comment_moderated",
		"commentID": comment.ID,
		"moderated": moderated,
	})
	return comment, nil
}
