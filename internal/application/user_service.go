package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/elprofecharles/registration-api/internal/domain/entity"
	"github.com/elprofecharles/registration-api/internal/domain/profile"
	repo "github.com/elprofecharles/registration-api/internal/domain/repository"
	"github.com/elprofecharles/registration-api/pkg/helpers"
	"github.com/elprofecharles/registration-api/pkg/mailer"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidToken = errors.New("invalid token")
)

// Service orchestrates registration, login and profile flows. Redis and the
// rabbit publisher are optional; a nil client skips session caching or the
// welcome email respectively.
type Service struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	Logger      *logrus.Logger
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
}

func NewService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailEnabled bool) *Service {
	return &Service{Repo: r, JWT: jwt, Redis: rdb, Logger: logger, Pub: pub, MailEnabled: mailEnabled}
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// AuthResult is what a successful registration or login returns: the record
// plus a freshly minted bearer token.
type AuthResult struct {
	User        *entity.User
	Token       string
	TokenExpiry time.Time
}

// Register validates and normalizes the candidate, rejects duplicates (the
// document collision message wins when both collide), persists the record and
// mints a token. Validation and conflicts are reported before any write.
func (s *Service) Register(ctx context.Context, in profile.Registration) (*AuthResult, error) {
	in, verrs := profile.ValidateAndNormalize(in)
	if len(verrs) > 0 {
		return nil, verrs
	}

	existing, err := s.Repo.FindByDocumentOrEmail(in.DocumentID, in.Email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.DocumentID == in.DocumentID {
			return nil, repo.ErrDuplicateDocumentID
		}
		return nil, repo.ErrDuplicateEmail
	}

	u := &entity.User{
		FullName:      in.FullName,
		DocumentID:    in.DocumentID,
		Phone:         in.Phone,
		Email:         in.Email,
		Profession:    in.Profession,
		City:          in.City,
		Department:    in.Department,
		AcademicLevel: in.AcademicLevel,
		ConsentGiven:  true,
	}
	// The unique indexes are the real gate; a concurrent insert between the
	// pre-check and here still surfaces as a duplicate error.
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}

	res, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, err
	}

	if s.Pub != nil && s.MailEnabled {
		job := mailer.NewWelcomeJob(u.FullName, u.Email)
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
		}
	}
	return res, nil
}

// Login authenticates by document identifier, refreshes last_seen_at and
// mints a fresh token. Inactive records behave exactly like missing ones.
func (s *Service) Login(ctx context.Context, documentID string) (*AuthResult, error) {
	doc, ok := profile.ValidateDocumentID(documentID)
	if !ok {
		return nil, profile.FieldErrors{{Field: "documentId", Message: "must be 5 to 20 alphanumeric characters"}}
	}

	u, err := s.Repo.GetByDocumentID(doc)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrUserNotFound
	}

	if err := s.Repo.TouchLastSeen(u.ID); err != nil {
		return nil, err
	}
	u.LastSeenAt = time.Now()

	return s.issueToken(ctx, u)
}

func (s *Service) issueToken(ctx context.Context, u *entity.User) (*AuthResult, error) {
	token, exp, err := s.JWT.Generate(u.ID, u.DocumentID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("token signing failed")
		}
		return nil, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":     u.ID,
			"document_id": u.DocumentID,
			"full_name":   u.FullName,
			"created_at":  nowRFC3339(),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, s.JWT.TTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return &AuthResult{User: u, Token: token, TokenExpiry: exp}, nil
}

// VerifyToken parses a bearer token and resolves it to its record. Any
// failure (bad signature, expiry, missing or deactivated record) collapses
// into ErrInvalidToken so the caller learns nothing about which check failed.
func (s *Service) VerifyToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.JWT.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	u, err := s.Repo.GetByID(claims.UserID)
	if err != nil || !u.IsActive {
		return nil, ErrInvalidToken
	}
	return u, nil
}

func (s *Service) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile applies the mutable subset of fields. Email uniqueness is
// re-checked only when the email actually changes, so resubmitting the
// current address never self-conflicts.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in profile.Update) (*entity.User, error) {
	in, verrs := profile.ValidateAndNormalizeUpdate(in)
	if len(verrs) > 0 {
		return nil, verrs
	}

	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if in.Email != nil && *in.Email != u.Email {
		other, err := s.Repo.GetByEmail(*in.Email)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		if other != nil && other.ID != u.ID {
			return nil, repo.ErrDuplicateEmail
		}
	}

	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Profession != nil {
		u.Profession = *in.Profession
	}

	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"full_name":  u.FullName,
			"updated_at": nowRFC3339(),
		})
		if ttl, tErr := s.Redis.TTL(ctx, key).Result(); tErr == nil && ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		if _, pErr := pipe.Exec(ctx); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return u, nil
}

// Logout refreshes last_seen_at. The token stays valid until it expires.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.Repo.TouchLastSeen(userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if s.Redis != nil {
		s.Redis.HSet(ctx, sessionKey(userID), "updated_at", nowRFC3339())
	}
	return nil
}

// Deactivate soft-deletes the record. Terminal for auth purposes: logins and
// existing tokens stop resolving.
func (s *Service) Deactivate(ctx context.Context, userID string) error {
	if err := s.Repo.Deactivate(userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if s.Redis != nil {
		_ = helpers.RedisDel(ctx, s.Redis, sessionKey(userID))
	}
	return nil
}

// Stats is the dev-facing counters payload.
type Stats struct {
	TotalUsers int64     `json:"totalUsers"`
	TodayUsers int64     `json:"todayUsers"`
	Timestamp  time.Time `json:"timestamp"`
}

const statsCacheKey = "stats:users"

// GetStats returns active and registered-today counts, cached briefly in redis.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	if s.Redis != nil {
		var cached Stats
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, statsCacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	total, err := s.Repo.CountActive()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.Repo.CountRegisteredSince(midnight)
	if err != nil {
		return nil, err
	}

	st := &Stats{TotalUsers: total, TodayUsers: today, Timestamp: now}
	if s.Redis != nil {
		_ = helpers.RedisSetJSON(ctx, s.Redis, statsCacheKey, st, 30*time.Second)
	}
	return st, nil
}
