package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/raihansp/wishwell/internal/domain/entity"
	repo "github.com/raihansp/wishwell/internal/domain/repository"
	"github.com/raihansp/wishwell/pkg/helpers"
)

// AccountService is the identity registry: registration with global
// email/username uniqueness, credential checks, token issuance and the
// batch lookups the sharing flow needs.
type AccountService struct {
	Repo            repo.AccountRepository
	JWT             *helpers.JWTManager
	Redis           *redis.Client
	Logger          *logrus.Logger
	ES              *elasticsearch.Client
	ESAccountsIndex string
}

func NewAccountService(repo repo.AccountRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esAccountsIndex string) *AccountService {
	return &AccountService{
		Repo:            repo,
		JWT:             jwt,
		Redis:           rdb,
		Logger:          logger,
		ES:              es,
		ESAccountsIndex: esAccountsIndex,
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(accountID string) string {
	return "account:session:" + accountID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Register creates an account with a hashed credential. Both
// uniqueness checks are always evaluated so the caller can correct
// email and username conflicts in one round trip; when both collide
// the returned error matches ErrDuplicateEmail and ErrDuplicateUsername.
func (s *AccountService) Register(ctx context.Context, email, username, password string) (*entity.Account, error) {
	var conflicts *multierror.Error
	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		conflicts = multierror.Append(conflicts, ErrDuplicateEmail)
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if existing, err := s.Repo.GetByUsername(ctx, username); err == nil && existing != nil {
		conflicts = multierror.Append(conflicts, ErrDuplicateUsername)
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if err := conflicts.ErrorOrNil(); err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	a := &entity.Account{Email: email, Username: username, PasswordHash: hash}
	if err := s.Repo.Create(ctx, a); err != nil {
		// The unique constraints backstop the checks above against a
		// concurrent registration of the same email or username.
		if errors.Is(err, repo.ErrUsernameTaken) {
			return nil, ErrDuplicateUsername
		}
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"account_id": a.ID, "username": a.Username}).Info("account registered")
	}
	_ = s.indexAccount(ctx, a)
	return a, nil
}

// FindByEmail is a pure lookup with no side effects.
func (s *AccountService) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	a, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// FindAllByUsernames resolves share recipients. Duplicate input names
// collapse to unique accounts; unknown names are skipped.
func (s *AccountService) FindAllByUsernames(ctx context.Context, usernames []string) ([]*entity.Account, error) {
	return s.Repo.ListByUsernames(ctx, dedupe(usernames))
}

// FindAllByEmails is the email-keyed variant of FindAllByUsernames.
func (s *AccountService) FindAllByEmails(ctx context.Context, emails []string) ([]*entity.Account, error) {
	return s.Repo.ListByEmails(ctx, dedupe(emails))
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Authenticate validates email/password and returns the account without issuing tokens.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*entity.Account, error) {
	a, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || a == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(a.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *AccountService) IssueTokens(ctx context.Context, a *entity.Account) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(a.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(a.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"account_id": a.ID,
			"email":      a.Email,
			"username":   a.Username,
			"sid":        sid,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		}
		key := sessionKey(a.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

type LoginResponse struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResponse, TokenPair, error) {
	a, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, a)
	if err != nil {
		return nil, TokenPair{}, err
	}
	resp := &LoginResponse{AccountID: a.ID, Email: a.Email, Username: a.Username}
	return resp, pair, nil
}

func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	a, err := s.Repo.GetByID(ctx, claims.AccountID)
	if err != nil || a == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	// Validate current session id matches the token's sid
	if s.Redis != nil {
		key := sessionKey(a.ID)
		data, rErr := s.Redis.HGetAll(ctx, key).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, a)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, a.ID, nil
}

// Logout drops the Redis session so stale tokens stop validating.
func (s *AccountService) Logout(ctx context.Context, accountID string) {
	if s.Redis != nil && accountID != "" {
		_ = s.Redis.Del(ctx, sessionKey(accountID)).Err()
	}
}

func (s *AccountService) GetProfile(ctx context.Context, accountID string) (*entity.Account, error) {
	a, err := s.Repo.GetByID(ctx, accountID)
	if err != nil || a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// UpdatePassword rotates the stored credential.
func (s *AccountService) UpdatePassword(ctx context.Context, accountID, newPassword string) error {
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, accountID, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *AccountService) indexAccount(ctx context.Context, a *entity.Account) error {
	if s.ES == nil || s.ESAccountsIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         a.ID,
		"email":      a.Email,
		"username":   a.Username,
		"created_at": a.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESAccountsIndex, DocumentID: a.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("account_id", a.ID).Warn("es index response error")
	}
	return nil
}

// SearchAccounts performs a multi_match search on email and username,
// used to pick share recipients.
func (s *AccountService) SearchAccounts(ctx context.Context, q string, size int) ([]map[string]any, error) {
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
				"fields": []string{"email^2", "username"},
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
