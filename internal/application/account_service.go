package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/carbonsaathi/carbonsaathi-api/internal/domain/entity"
	repo "github.com/carbonsaathi/carbonsaathi-api/internal/domain/repository"
	"github.com/carbonsaathi/carbonsaathi-api/pkg/helpers"
	"github.com/carbonsaathi/carbonsaathi-api/pkg/mailer"
)

var (
	// ErrInvalidCredentials covers unknown email and wrong password alike;
	// callers must not be able to tell which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("user already exists")
	ErrAccountNotFound    = errors.New("user not found")
)

// Service orchestrates registration and login and owns token issuance.
// Pub and ES are optional; when nil the welcome mail and the directory index
// are skipped, never the core flow.
type Service struct {
	Repo            repo.UserRepository
	JWT             *helpers.JWTManager
	Logger          *logrus.Logger
	Pub             *helpers.RabbitPublisher
	ES              *elasticsearch.Client
	ESAccountsIndex string
}

func NewService(r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, pub *helpers.RabbitPublisher, es *elasticsearch.Client, esAccountsIndex string) *Service {
	return &Service{
		Repo:            r,
		JWT:             jwt,
		Logger:          logger,
		Pub:             pub,
		ES:              es,
		ESAccountsIndex: esAccountsIndex,
	}
}

// Register validates the input, creates the account and issues a token.
// The duplicate pre-check keeps the common case cheap; the unique index in
// the store is what actually guarantees uniqueness under concurrency, so
// ErrEmailTaken can also come back from Create itself.
func (s *Service) Register(ctx context.Context, in entity.NewUserInput) (*entity.User, string, error) {
	u, err := entity.NewUser(in)
	if err != nil {
		return nil, "", err
	}

	if _, err := s.Repo.GetByEmail(ctx, u.Email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, "", err
	}

	// Hash exactly once, right before persistence. The repository never
	// re-hashes, so a stored hash can never be hashed again.
	hash, err := helpers.HashPassword(u.Password)
	if err != nil {
		return nil, "", err
	}
	u.Password = hash

	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, _, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		return nil, "", err
	}

	s.enqueueWelcomeEmail(ctx, u)
	_ = s.indexAccount(ctx, u)

	return u, token, nil
}

// Login authenticates by normalized email and plaintext password and issues a
// token. Unknown account and bad password return the identical error.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// GetProfile returns the account for a validated token's id.
func (s *Service) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) enqueueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{
		To:      u.Email,
		Subject: "Welcome to CarbonSaathi",
		Text: fmt.Sprintf("Hi %s,\n\nYour CarbonSaathi account for %s is ready. "+
			"Log in to start tracking your organisation's carbon footprint.\n\nThe CarbonSaathi team", u.FirstName, u.Company.Name),
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email enqueue failed")
	}
}

func (s *Service) indexAccount(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESAccountsIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":               u.ID,
		"first_name":       u.FirstName,
		"last_name":        u.LastName,
		"email":            u.Email,
		"role":             u.Role,
		"company_name":     u.Company.Name,
		"company_size":     u.Company.Size,
		"company_industry": u.Company.Industry,
		"created_at":       u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESAccountsIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

// SearchAccounts performs a simple multi_match search over the directory index.
func (s *Service) SearchAccounts(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESAccountsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "first_name", "last_name", "company_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESAccountsIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
