package services

import (
	"context"
	"strings"
	"time"

	"estatery-api-io/api/internal/apperr"
	"estatery-api-io/api/internal/common"
	"estatery-api-io/api/pkg/models"
	"estatery-api-io/api/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	errUserNotFound       = "User not found!"
	errWrongCredentials   = "Wrong credentials!"
	errUserExists         = "User already exists!"
	errOwnAccountOnly     = "You can only update your own account!"
	errDeleteOwnAccount   = "You can only delete your own account!"
	errGoogleTokenInvalid = "Google sign-in could not be verified"
)

// UserServiceDeps groups the collaborators of the user service.
type UserServiceDeps struct {
	Users      UserStore
	Listings   ListingService
	Media      MediaService
	Google     GoogleVerifier
	Mailer     WelcomeMailer
	Transactor Transactor
}

type userService struct {
	users    UserStore
	listings ListingService
	media    MediaService
	google   GoogleVerifier
	mailer   WelcomeMailer
	tx       Transactor
}

func NewUserService(deps UserServiceDeps) UserService {
	return &userService{
		users:    deps.Users,
		listings: deps.Listings,
		media:    deps.Media,
		google:   deps.Google,
		mailer:   deps.Mailer,
		tx:       deps.Transactor,
	}
}

func (s *userService) Signup(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := common.Validate.Struct(req); err != nil {
		return nil, apperr.Validation(common.ValidationMessage(err))
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperr.Conflict(errUserExists)
	} else if !isNotFound(err) {
		return nil, asAppError(err)
	}

	hashedPassword, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Upstream(err)
	}

	user, err := s.createUser(ctx, req.Username, req.Email, hashedPassword, common.DEFAULT_USER_AVATAR)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		s.mailer.SendWelcome(*user)
	}
	return user, nil
}

func (s *userService) Signin(ctx context.Context, req models.UserAuthRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := common.Validate.Struct(req); err != nil {
		return nil, apperr.Validation(common.ValidationMessage(err))
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.Validation(errUserNotFound)
		}
		return nil, asAppError(err)
	}

	if err := util.CheckPassword(user.Password, req.Password); err != nil {
		return nil, apperr.Validation(errWrongCredentials)
	}
	return user, nil
}

// GoogleSignin verifies the ID token and signs in the matching account,
// creating one from the token's profile on first use.
func (s *userService) GoogleSignin(ctx context.Context, req models.GoogleAuthRequest) (*models.User, error) {
	if err := common.Validate.Struct(req); err != nil {
		return nil, apperr.Validation(common.ValidationMessage(err))
	}

	identity, err := s.google.Verify(ctx, req.IdToken)
	if err != nil {
		util.Log.WithError(err).Warn("google id token rejected")
		return nil, apperr.Authentication(errGoogleTokenInvalid)
	}

	email := strings.ToLower(strings.TrimSpace(identity.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !isNotFound(err) {
		return nil, asAppError(err)
	}

	hashedPassword, err := util.HashPassword(generatePassword())
	if err != nil {
		return nil, apperr.Upstream(err)
	}

	avatar := identity.Picture
	if avatar == "" {
		avatar = common.DEFAULT_USER_AVATAR
	}

	user, err = s.createUser(ctx, GenerateUsername(identity.Name), email, hashedPassword, avatar)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		s.mailer.SendWelcome(*user)
	}
	return user, nil
}

func (s *userService) createUser(ctx context.Context, username, email, passwordDigest, avatar string) (*models.User, error) {
	now := time.Now().UTC()
	user := &models.User{
		Id:        primitive.NewObjectID(),
		Username:  username,
		Email:     email,
		Password:  passwordDigest,
		Avatar:    avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, asAppError(err)
	}

	util.Log.WithField("user_id", user.Id.Hex()).Info("user created")
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(userID))
	if err != nil {
		return nil, apperr.NotFound(errUserNotFound)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound(errUserNotFound)
		}
		return nil, asAppError(err)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, actingUserID primitive.ObjectID, userID string, req models.UpdateUserRequest) (*models.User, error) {
	if actingUserID.Hex() != strings.TrimSpace(userID) {
		return nil, apperr.Authorization(errOwnAccountOnly)
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := common.Validate.Struct(req); err != nil {
		return nil, apperr.Validation(common.ValidationMessage(err))
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Username != "" {
		set["username"] = req.Username
	}
	if req.Email != "" {
		set["email"] = req.Email
	}
	if req.Avatar != "" {
		set["avatar"] = req.Avatar
	}
	if req.Bio != "" {
		set["bio"] = req.Bio
	}
	if req.Password != "" {
		hashedPassword, err := util.HashPassword(req.Password)
		if err != nil {
			return nil, apperr.Upstream(err)
		}
		set["password"] = hashedPassword
	}

	user, err := s.users.Update(ctx, actingUserID, set)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound(errUserNotFound)
		}
		return nil, asAppError(err)
	}
	return user, nil
}

// DeleteUser removes the account together with every listing it owns, so no
// listing is left pointing at a missing owner.
func (s *userService) DeleteUser(ctx context.Context, actingUserID primitive.ObjectID, userID string) error {
	if actingUserID.Hex() != strings.TrimSpace(userID) {
		return apperr.Authorization(errDeleteOwnAccount)
	}

	var removed []models.Listing
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		listings, err := s.listings.DeleteListingsByOwner(txCtx, actingUserID)
		if err != nil {
			return err
		}

		deleted, err := s.users.Delete(txCtx, actingUserID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return apperr.NotFound(errUserNotFound)
		}

		removed = listings
		return nil
	})
	if err != nil {
		return asAppError(err)
	}

	s.listings.EvictListings(ctx, removed)
	if s.media != nil {
		for _, listing := range removed {
			s.media.DestroyImageURLs(ctx, listing.ImageURLs)
		}
	}

	util.Log.WithField("user_id", actingUserID.Hex()).WithField("listings", len(removed)).Info("user deleted")
	return nil
}
