package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Adhikram/ChartIQ-sub000/models"
)

// ErrMessageNotFound signals that a delete or lookup targeted a message
// id that does not exist, as opposed to a storage failure.
var ErrMessageNotFound = errors.New("message not found")

// PageRequest selects one page of messages. When Cursor is non-zero the
// cursor strategy takes precedence and Page is ignored.
type PageRequest struct {
	Page     int
	PageSize int
	Cursor   uint
}

// MessageRepository persists and retrieves chat messages.
type MessageRepository interface {
	Create(msg *models.Message) error
	// ListByUser returns one page of messages in chronological
	// (oldest-first) order, plus pagination info and the user's total
	// message count.
	ListByUser(userID string, req PageRequest) ([]models.Message, models.PaginationInfo, int64, error)
	Delete(id uint) error
	// LatestByRoles returns the newest message authored with any of the
	// given roles, or ErrMessageNotFound.
	LatestByRoles(userID string, roles ...models.MessageRole) (*models.Message, error)
}

type messageRepository struct {
	db              *gorm.DB
	defaultPageSize int
	maxPageSize     int
}

// NewMessageRepository creates a gorm-backed message repository. The page
// size limits are injected so that every endpoint clamps identically.
func NewMessageRepository(db *gorm.DB, defaultPageSize, maxPageSize int) MessageRepository {
	if defaultPageSize <= 0 {
		defaultPageSize = 10
	}
	if maxPageSize <= 0 {
		maxPageSize = 50
	}
	return &messageRepository{
		db:              db,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

func (r *messageRepository) Create(msg *models.Message) error {
	if strings.TrimSpace(msg.Content) == "" {
		return errors.New("message content must not be empty")
	}
	if msg.UserID == "" {
		return errors.New("message userId must not be empty")
	}
	if !msg.Role.Valid() {
		return fmt.Errorf("unrecognized message role %q", msg.Role)
	}
	return r.db.Create(msg).Error
}

func (r *messageRepository) ListByUser(userID string, req PageRequest) ([]models.Message, models.PaginationInfo, int64, error) {
	size := req.PageSize
	if size <= 0 {
		size = r.defaultPageSize
	}
	if size > r.maxPageSize {
		size = r.maxPageSize
	}

	var total int64
	if err := r.db.Model(&models.Message{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, models.PaginationInfo{}, 0, err
	}

	var messages []models.Message
	info := models.PaginationInfo{PageSize: size}

	if req.Cursor > 0 {
		err := r.db.
			Where("user_id = ? AND id < ?", userID, req.Cursor).
			Order("id DESC").
			Limit(size).
			Find(&messages).Error
		if err != nil {
			return nil, models.PaginationInfo{}, 0, err
		}
	} else {
		page := req.Page
		if page <= 0 {
			page = 1
		}
		skip := (page - 1) * size
		err := r.db.
			Where("user_id = ?", userID).
			Order("id DESC").
			Offset(skip).
			Limit(size).
			Find(&messages).Error
		if err != nil {
			return nil, models.PaginationInfo{}, 0, err
		}
		info.Page = page
		info.TotalPages = int((total + int64(size) - 1) / int64(size))
	}

	// Both strategies share the cursor contract: a full page means there
	// may be more, and the next cursor is the oldest id on this page
	// (queries run newest-first). A cursorless first request therefore
	// bootstraps cursor mode. A short page is exhausted.
	if len(messages) == size {
		info.HasMore = true
		info.NextCursor = messages[len(messages)-1].ID
	}

	// Queries run newest-first so that limits grab the most recent
	// messages; callers always receive chronological order.
	reverse(messages)
	return messages, info, total, nil
}

func (r *messageRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Message{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *messageRepository) LatestByRoles(userID string, roles ...models.MessageRole) (*models.Message, error) {
	var msg models.Message
	err := r.db.
		Where("user_id = ? AND role IN ?", userID, roles).
		Order("id DESC").
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func reverse(msgs []models.Message) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}
