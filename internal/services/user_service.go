package services

import (
	"context"
	"errors"

	"github.com/shoply/jobboard/internal/models"
	pgrepo "github.com/shoply/jobboard/internal/repositories/postgres"
	"github.com/shoply/jobboard/internal/utils"
)

// RegisterInput is the flat registration payload: user fields plus the
// optional inline shop profile for shop owners.
type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	Role         models.UserRole
	MobileNumber string
	ProfilePhoto string

	CompanyName string
	Description string
	Location    string
	Latitude    *float64
	Longitude   *float64
	Logo        string
}

// UpdateUserInput carries partial profile updates; nil means "leave as is".
type UpdateUserInput struct {
	Email        *string
	MobileNumber *string
	ProfilePhoto *string
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id uint) error
	ChangePassword(ctx context.Context, userID uint, current, newPass, confirm string) error
}

type userService struct {
	users pgrepo.UserRepository
}

func NewUserService(users pgrepo.UserRepository) UserService {
	return &userService{users: users}
}

// Register creates the user and, when the role is SHOP_OWNER and all three
// required shop fields are present, the shop profile in the same
// transaction. Incomplete shop data is dropped without error.
func (s *userService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	const op = "UserService.Register"

	fe := utils.FieldErrors{}
	if in.Username == "" {
		fe.Add("username", "This field is required.")
	}
	if in.Password == "" {
		fe.Add("password", "This field is required.")
	} else {
		for _, msg := range utils.ValidatePassword(in.Password, in.Username, in.Email) {
			fe.Add("password", msg)
		}
	}
	if in.Role == "" {
		in.Role = models.RoleJobSeeker
	}
	if !in.Role.Valid() {
		fe.Add("role", "Invalid role.")
	}
	if in.Username != "" {
		taken, err := s.users.UsernameTaken(ctx, in.Username)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to check username", err)
		}
		if taken {
			fe.Add("username", "A user with that username already exists.")
		}
	}
	if len(fe) > 0 {
		return nil, fe
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	u := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		Role:         in.Role,
		MobileNumber: in.MobileNumber,
		ProfilePhoto: in.ProfilePhoto,
		PasswordHash: hash,
	}

	var shop *models.ShopProfile
	if in.Role == models.RoleShopOwner && in.CompanyName != "" && in.Description != "" && in.Location != "" {
		shop = &models.ShopProfile{
			CompanyName: in.CompanyName,
			Description: in.Description,
			Location:    in.Location,
			Latitude:    in.Latitude,
			Longitude:   in.Longitude,
			Logo:        in.Logo,
		}
	}

	if err := s.users.Create(ctx, u, shop); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create user", err)
	}
	return u, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*models.User, error) {
	const op = "UserService.Get"

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get user", err)
	}
	return u, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	const op = "UserService.List"

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list users", err)
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	const op = "UserService.Update"

	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.MobileNumber != nil {
		u.MobileNumber = *in.MobileNumber
	}
	if in.ProfilePhoto != nil {
		u.ProfilePhoto = *in.ProfilePhoto
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save user", err)
	}
	return u, nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	const op = "UserService.Delete"

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete user", err)
	}
	return nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uint, current, newPass, confirm string) error {
	const op = "UserService.ChangePassword"

	if current == "" || newPass == "" || confirm == "" {
		return utils.E(utils.CodeInvalidArgument, op, "All fields are required.", nil)
	}
	if newPass != confirm {
		return utils.E(utils.CodeInvalidArgument, op, "New passwords do not match.", nil)
	}

	u, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	if err := utils.CheckPassword(u.PasswordHash, current); err != nil {
		return utils.E(utils.CodeInvalidArgument, op, "Current password is incorrect.", nil)
	}

	if msgs := utils.ValidatePassword(newPass, u.Username, u.Email); len(msgs) > 0 {
		return utils.E(utils.CodeInvalidArgument, op, joinMessages(msgs), nil)
	}

	hash, err := utils.HashPassword(newPass)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}
	u.PasswordHash = hash

	if err := s.users.Save(ctx, u); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to save user", err)
	}
	return nil
}

func joinMessages(msgs []string) string {
	out := ""
	for i, m := range msgs {
		if i > 0 {
			out += " "
		}
		out += m
	}
	return out
}
