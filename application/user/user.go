package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/muhammadheryan/mogadishu-rentals/cmd/config"
	"github.com/muhammadheryan/mogadishu-rentals/constant"
	"github.com/muhammadheryan/mogadishu-rentals/model"
	redisrepo "github.com/muhammadheryan/mogadishu-rentals/repository/redis"
	userrepo "github.com/muhammadheryan/mogadishu-rentals/repository/user"
	"github.com/muhammadheryan/mogadishu-rentals/utils/errors"
	"github.com/muhammadheryan/mogadishu-rentals/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const (
	providerGoogle   = "google"
	oauthStatePrefix = "oauth:state:"
)

type UserApp interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.Session, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.Session, error)
	Logout(ctx context.Context, tokenString string) error
	ValidateToken(ctx context.Context, tokenString string) (string, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.Profile, error)
	OAuthURL(ctx context.Context, provider, redirectTo string) (*model.OAuthResponse, error)
	OAuthCallback(ctx context.Context, provider, state, code string) (*model.OAuthCallbackResult, error)
}

type UserAppImpl struct {
	config    *config.Config
	userRepo  userrepo.UserRepository
	redisRepo redisrepo.Repository
}

func NewUserApp(config *config.Config, userRepo userrepo.UserRepository, redisRepo redisrepo.Repository) UserApp {
	return &UserAppImpl{
		config:    config,
		userRepo:  userRepo,
		redisRepo: redisRepo,
	}
}

// Register creates the account and signs it in.
func (s *UserAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existingUser, err := s.userRepo.Get(ctx, &model.UserFilter{Email: email})
	if err != nil {
		logger.Error("[Register] err userRepo.Get email", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrCredentialExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[Register] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	userEntity, err := s.userRepo.Create(ctx, &model.UserEntity{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: string(hashedPassword),
	})
	if err != nil {
		logger.Error("[Register] err userRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return s.openSession(ctx, "[Register]", userEntity)
}

func (s *UserAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.Session, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{Email: strings.ToLower(strings.TrimSpace(req.Email))})
	if err != nil {
		logger.Error("[Login] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidPassword)
	}

	return s.openSession(ctx, "[Login]", user)
}

// Logout drops the redis session behind the token. An already expired or
// unknown token is treated as signed out.
func (s *UserAppImpl) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil
	}
	if err := s.redisRepo.DeleteSession(ctx, claims.ID); err != nil {
		logger.Error("[Logout] err DeleteSession", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *UserAppImpl) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return "", err
	}

	userID := claims.Subject
	if userID == "" {
		return "", fmt.Errorf("token missing subject")
	}
	if claims.ID == "" {
		return "", fmt.Errorf("token missing jti")
	}

	sessionUserID, err := s.redisRepo.GetSession(ctx, claims.ID)
	if err != nil {
		return "", fmt.Errorf("invalid or expired session")
	}
	if sessionUserID != userID {
		return "", fmt.Errorf("token does not match user session")
	}

	return userID, nil
}

func (s *UserAppImpl) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.getUser(ctx, "[GetUser]", userID)
	if err != nil {
		return nil, err
	}
	return &model.User{ID: user.ID, Email: user.Email}, nil
}

func (s *UserAppImpl) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	user, err := s.getUser(ctx, "[GetProfile]", userID)
	if err != nil {
		return nil, err
	}
	return &model.Profile{ID: user.ID, FullName: user.FullName}, nil
}

func (s *UserAppImpl) UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.Profile, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	affected, err := s.userRepo.UpdateFullName(ctx, userID, fullName)
	if err != nil {
		logger.Error("[UpdateProfile] err userRepo.UpdateFullName", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if affected == 0 {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	return &model.Profile{ID: userID, FullName: fullName}, nil
}

// OAuthURL builds the provider authorize URL. The state sent to the provider
// is a one-time nonce; redirectTo stays in redis under it until the callback.
func (s *UserAppImpl) OAuthURL(ctx context.Context, provider, redirectTo string) (*model.OAuthResponse, error) {
	oauthCfg, err := s.oauthConfig(provider)
	if err != nil {
		return nil, err
	}

	state := uuid.NewString()
	if err := s.redisRepo.SetWithTTL(ctx, oauthStatePrefix+state, redirectTo, s.config.Auth.OAuthStateTTL); err != nil {
		logger.Error("[OAuthURL] err redisRepo.SetWithTTL", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.OAuthResponse{URL: oauthCfg.AuthCodeURL(state)}, nil
}

// OAuthCallback finishes the authorization code flow: it spends the state,
// trades the code for a provider token, and signs in the account behind the
// provider's verified email, creating it on first use.
func (s *UserAppImpl) OAuthCallback(ctx context.Context, provider, state, code string) (*model.OAuthCallbackResult, error) {
	oauthCfg, err := s.oauthConfig(provider)
	if err != nil {
		return nil, err
	}
	if state == "" || code == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	stateKey := oauthStatePrefix + state
	redirectTo, err := s.redisRepo.Get(ctx, stateKey)
	if err == redisrepo.ErrKeyNotFound {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}
	if err != nil {
		logger.Error("[OAuthCallback] err redisRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.redisRepo.Delete(ctx, stateKey); err != nil {
		logger.Warn("[OAuthCallback] err redisRepo.Delete", zap.String("error", err.Error()))
	}

	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		logger.Error("[OAuthCallback] err Exchange", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrUnauthenticated)
	}

	info, err := s.fetchUserInfo(ctx, oauthCfg.Client(ctx, token))
	if err != nil {
		logger.Error("[OAuthCallback] err fetchUserInfo", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrUnauthenticated)
	}
	email := strings.ToLower(strings.TrimSpace(info.Email))
	if email == "" || !info.EmailVerified {
		return nil, errors.SetCustomError(constant.ErrUnauthenticated)
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{Email: email})
	if err != nil {
		logger.Error("[OAuthCallback] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		// no password hash: the account can only sign in through the provider
		user, err = s.userRepo.Create(ctx, &model.UserEntity{
			ID:       uuid.NewString(),
			Email:    email,
			FullName: strings.TrimSpace(info.Name),
		})
		if err != nil {
			logger.Error("[OAuthCallback] err userRepo.Create", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	session, err := s.openSession(ctx, "[OAuthCallback]", user)
	if err != nil {
		return nil, err
	}
	return &model.OAuthCallbackResult{Session: session, RedirectTo: redirectTo}, nil
}

func (s *UserAppImpl) oauthConfig(provider string) (*oauth2.Config, error) {
	if provider != providerGoogle {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	auth := s.config.Auth
	if auth.GoogleClientID == "" {
		logger.Error("[oauthConfig] google client id not configured")
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	endpoint := endpoints.Google
	if auth.GoogleAuthorizeURL != "" {
		endpoint.AuthURL = auth.GoogleAuthorizeURL
	}
	if auth.GoogleTokenURL != "" {
		endpoint.TokenURL = auth.GoogleTokenURL
	}

	return &oauth2.Config{
		ClientID:     auth.GoogleClientID,
		ClientSecret: auth.GoogleClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  auth.GoogleCallbackURL,
		Scopes:       []string{"openid", "email", "profile"},
	}, nil
}

func (s *UserAppImpl) fetchUserInfo(ctx context.Context, client *http.Client) (*model.OAuthUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.Auth.GoogleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var info model.OAuthUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *UserAppImpl) getUser(ctx context.Context, method, userID string) (*model.UserEntity, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		logger.Error(method+" err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return user, nil
}

func (s *UserAppImpl) openSession(ctx context.Context, method string, user *model.UserEntity) (*model.Session, error) {
	token, jti, expiresAt, err := s.generateJWT(user.ID)
	if err != nil {
		logger.Error(method+" err generateJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.redisRepo.SetSession(ctx, jti, user.ID, s.config.Auth.SessionExpTime); err != nil {
		logger.Error(method+" err SetSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.Session{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        model.User{ID: user.ID, Email: user.Email},
	}, nil
}

func (s *UserAppImpl) parseToken(tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}

// generateJWT creates a JWT token for the user
func (s *UserAppImpl) generateJWT(userID string) (string, string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.config.Auth.JWTExpiration)
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims.ID, expiresAt, nil
}
