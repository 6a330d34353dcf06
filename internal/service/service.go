package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Dan9191/advisory-service/internal/config"
	"github.com/Dan9191/advisory-service/internal/models"
	"github.com/Dan9191/advisory-service/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed admin login
var ErrInvalidCredentials = errors.New("invalid credentials")

// ContactStore persists contact requests
type ContactStore interface {
	CreateContactRequest(ctx context.Context, req *models.ContactRequest) error
	ListContactRequests(ctx context.Context, unreadOnly bool) ([]models.ContactRequest, error)
	MarkRead(ctx context.Context, id int64) error
	MarkReadBatch(ctx context.Context, ids []int64) error
}

// Notifier delivers email notifications
type Notifier interface {
	SendContactNotification(req *models.ContactRequest) error
	SendUnreadDigest(reqs []models.ContactRequest) error
}

// Service handles business logic
type Service struct {
	store    ContactStore
	notifier Notifier
	log      *logrus.Logger
	config   *config.Config
	now      func() time.Time
	pending  sync.WaitGroup
}

// NewService initializes a new service
func NewService(store ContactStore, notifier Notifier, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{store: store, notifier: notifier, log: log, config: cfg, now: time.Now}
}

// SubmitContact validates and stores a contact request, then notifies the
// advisory desk in the background. A failed notification is only logged:
// the request is already stored.
func (s *Service) SubmitContact(ctx context.Context, in models.ContactInput) (*models.ContactRequest, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	encryptedPhone, err := utils.Encrypt(in.Phone, s.config.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt phone: %w", err)
	}

	req := &models.ContactRequest{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   encryptedPhone,
		Message: in.Message,
	}
	if err := s.store.CreateContactRequest(ctx, req); err != nil {
		return nil, err
	}
	req.Phone = in.Phone
	s.log.Infof("Contact request stored: id=%d", req.ID)

	notification := *req
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.notifier.SendContactNotification(&notification); err != nil {
			s.log.Errorf("Contact notification failed for request %d: %v", notification.ID, err)
		}
	}()

	return req, nil
}

// Wait blocks until background notifications have finished
func (s *Service) Wait() {
	s.pending.Wait()
}

// Login checks admin credentials and returns a signed JWT
func (s *Service) Login(creds models.Credentials) (*models.Token, error) {
	userOK := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(s.config.AdminUsername)) == 1
	if err := bcrypt.CompareHashAndPassword([]byte(s.config.AdminPasswordHash), []byte(creds.Password)); err != nil || !userOK {
		s.log.Warnf("Failed admin login for %q", creds.Username)
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	expires := now.Add(s.config.TokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   creds.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("Admin logged in: %s", creds.Username)
	return &models.Token{Token: tokenString, ExpiresAt: expires.Unix()}, nil
}

// ListContacts returns stored requests with phone numbers decrypted
func (s *Service) ListContacts(ctx context.Context, unreadOnly bool) ([]models.ContactRequest, error) {
	reqs, err := s.store.ListContactRequests(ctx, unreadOnly)
	if err != nil {
		return nil, err
	}
	for i := range reqs {
		phone, err := utils.Decrypt(reqs[i].Phone, s.config.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt phone of request %d: %w", reqs[i].ID, err)
		}
		reqs[i].Phone = phone
	}
	if reqs == nil {
		reqs = []models.ContactRequest{}
	}
	return reqs, nil
}

// MarkContactRead flags one request as read
func (s *Service) MarkContactRead(ctx context.Context, id int64) error {
	if err := s.store.MarkRead(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Contact request %d marked read", id)
	return nil
}

// SendUnreadDigest mails every unread request in one message and marks them
// read. It returns how many requests were included.
func (s *Service) SendUnreadDigest(ctx context.Context) (int, error) {
	unread, err := s.ListContacts(ctx, true)
	if err != nil {
		return 0, err
	}
	if len(unread) == 0 {
		s.log.Debug("No unread contact requests")
		return 0, nil
	}

	if err := s.notifier.SendUnreadDigest(unread); err != nil {
		return 0, err
	}

	ids := make([]int64, 0, len(unread))
	for _, r := range unread {
		ids = append(ids, r.ID)
	}
	if err := s.store.MarkReadBatch(ctx, ids); err != nil {
		return 0, err
	}

	s.log.Infof("Unread digest sent with %d request(s)", len(unread))
	return len(unread), nil
}
