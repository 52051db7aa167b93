package sms

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"laundrydesk.com/app/internal/modules/orders"
)

const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

type SentLog struct {
	ID                string     `gorm:"primaryKey;type:char(36)" json:"id"`
	OrderCode         *string    `gorm:"column:order_code;size:64" json:"order_code,omitempty"`
	PhoneE164         string     `gorm:"column:phone_e164;size:20;index" json:"phone"`
	MessageType       string     `gorm:"column:message_type;size:32" json:"message_type"`
	Body              string     `gorm:"column:body;type:text" json:"body"`
	Status            string     `gorm:"column:status;size:16" json:"status"`
	ProviderMessageID *string    `gorm:"column:provider_message_id" json:"provider_message_id,omitempty"`
	ErrorMessage      *string    `gorm:"column:error_message" json:"error,omitempty"`
	SentAt            *time.Time `gorm:"column:sent_at" json:"sent_at,omitempty"`
	CreatedAt         time.Time  `gorm:"column:created_at;index" json:"created_at"`
}

func (SentLog) TableName() string { return "sms_sent_logs" }

// Observer receives the final status of every send attempt.
type Observer func(status string)

type Service struct {
	db       *gorm.DB
	provider Provider
	logger   *slog.Logger
	observe  Observer
}

func NewService(db *gorm.DB, provider Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, provider: provider, logger: logger}
}

// OnResult registers a hook called after each attempt.
func (s *Service) OnResult(o Observer) { s.observe = o }

func (s *Service) Migrate(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).AutoMigrate(&SentLog{})
}

// Send delivers a free-form message. Phones must already be normalized.
func (s *Service) Send(ctx context.Context, phone, message string) (SentLog, error) {
	return s.send(ctx, phone, message, string(KindCustom), nil)
}

// NotifyOrder renders the template for kind and sends it to the order's customer.
func (s *Service) NotifyOrder(ctx context.Context, o orders.Order, kind Kind, custom string) (SentLog, error) {
	msg, err := Render(kind, o, custom)
	if err != nil {
		return SentLog{}, err
	}
	code := o.UniqueCode
	return s.send(ctx, o.Customer.Phone, msg, string(kind), &code)
}

func (s *Service) send(ctx context.Context, phone, message, msgType string, orderCode *string) (SentLog, error) {
	phone = strings.TrimSpace(phone)
	if !strings.HasPrefix(phone, "+") {
		s.logger.WarnContext(ctx, "sms skipped: invalid phone", "phone", phone, "type", msgType)
		return SentLog{}, ErrInvalidPhone
	}
	if strings.TrimSpace(message) == "" {
		return SentLog{}, ErrEmptyMessage
	}

	entry := SentLog{
		ID:          uuid.NewString(),
		OrderCode:   orderCode,
		PhoneE164:   phone,
		MessageType: msgType,
		Body:        message,
		CreatedAt:   time.Now(),
	}

	providerID, sendErr := s.provider.Send(ctx, phone, message)
	if sendErr != nil {
		entry.Status = StatusFailed
		errMsg := sendErr.Error()
		entry.ErrorMessage = &errMsg
		s.logger.ErrorContext(ctx, "sms send failed", "phone", phone, "type", msgType, "err", sendErr)
	} else {
		entry.Status = StatusSent
		entry.ProviderMessageID = &providerID
		sentAt := time.Now()
		entry.SentAt = &sentAt
		s.logger.InfoContext(ctx, "sms sent", "phone", phone, "type", msgType, "sid", providerID)
	}

	if s.db != nil {
		if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
			s.logger.WarnContext(ctx, "sms log write failed", "err", err)
		}
	}
	if s.observe != nil {
		s.observe(entry.Status)
	}
	return entry, sendErr
}

// History returns the most recent attempts for phone, newest first.
func (s *Service) History(ctx context.Context, phone string, limit int) ([]SentLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if s.db == nil {
		return nil, nil
	}
	var logs []SentLog
	q := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if phone != "" {
		q = q.Where("phone_e164 = ?", phone)
	}
	err := q.Find(&logs).Error
	return logs, err
}
