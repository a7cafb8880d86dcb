package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	userRepo "shopspotlight/database/repository/user"
	"shopspotlight/models"
	"shopspotlight/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long a session token stays valid. The Redis auth-cache
// entry expires together with the token.
const tokenTTL = 7 * 24 * time.Hour

var (
	// ErrInvalidCredentials covers both unknown email and wrong password, so
	// a caller cannot probe which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken rejects a sign-up against an already registered email.
	ErrEmailTaken = errors.New("email is already registered")
)

// DefaultUserService implements Service.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// SignUp registers the account and opens its first session.
func (s *DefaultUserService) SignUp(req SignUpRequest) (*models.User, string, error) {
	logger := utils.GetLogger()

	if strings.TrimSpace(req.Name) == "" {
		return nil, "", errors.New("name is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", errors.New("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, "", errors.New("password must be at least 8 characters")
	}
	if !req.Role.Valid() {
		return nil, "", fmt.Errorf("unknown role %q", req.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		Phone:        req.Phone,
		Role:         req.Role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.openSession(u)
	if err != nil {
		return nil, "", err
	}
	logger.Info("User signed up", zap.String("userID", u.ID), zap.String("role", string(u.Role)))
	return scrub(u), token, nil
}

// SignIn verifies the credentials and rotates the session token.
func (s *DefaultUserService) SignIn(email, password string) (*models.User, string, error) {
	u, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.openSession(u)
	if err != nil {
		return nil, "", err
	}
	utils.GetLogger().Info("User signed in", zap.String("userID", u.ID))
	return scrub(u), token, nil
}

// SignOut drops the stored token hash and evicts the cached session.
func (s *DefaultUserService) SignOut(userID string) error {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if err := s.Repo.UpdateFields(userID, bson.M{"token_hash": "", "updated_at": time.Now()}); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if u.TokenHash != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+u.TokenHash).Err(); err != nil {
			utils.GetLogger().Warn("Failed to evict cached session", zap.Error(err))
		}
	}
	return nil
}

// GetByID returns the account without credential fields.
func (s *DefaultUserService) GetByID(id string) (*models.User, error) {
	u, err := s.Repo.GetByIDWithProjection(id, bson.M{"password_hash": 0, "token_hash": 0})
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return u, nil
}

// UpdateProfile patches the account's editable fields. Email and role are
// not editable.
func (s *DefaultUserService) UpdateProfile(userID string, update ProfileUpdate) error {
	fields := bson.M{}
	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return errors.New("name cannot be empty")
		}
		fields["name"] = *update.Name
	}
	if update.Phone != nil {
		fields["phone"] = *update.Phone
	}
	if update.PhotoURL != nil {
		fields["photo_url"] = *update.PhotoURL
	}
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()
	if err := s.Repo.UpdateFields(userID, fields); err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	return nil
}

// openSession issues a token, stores its hash on the user row, and primes
// the Redis auth cache so the middleware avoids a DB read per request.
func (s *DefaultUserService) openSession(u *models.User) (string, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	tokenHash := utils.HashToken(token)
	if err := s.Repo.UpdateFields(u.ID, bson.M{"token_hash": tokenHash, "updated_at": time.Now()}); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	u.TokenHash = tokenHash

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	session := u.ID + "|" + string(u.Role)
	if err := utils.GetAuthCacheClient().Set(ctx, utils.AuthCachePrefix+tokenHash, session, tokenTTL).Err(); err != nil {
		// The cache is an optimization; the middleware falls back to Mongo.
		utils.GetLogger().Warn("Failed to cache session", zap.Error(err))
	}
	return token, nil
}

func scrub(u *models.User) *models.User {
	out := *u
	out.Password = ""
	out.PasswordHash = ""
	out.TokenHash = ""
	return &out
}
