package usecase_test

import (
	"context"
	"testing"

	"github.com/ErlanBelekov/league-manager/internal/auth"
	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/ErlanBelekov/league-manager/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserUsecase(users *fakeUserRepo, policy *auth.Policy) (*usecase.UserUsecase, *fakeNotifier) {
	n := &fakeNotifier{}
	return usecase.NewUserUsecase(users, &fakeHasher{}, policy, n), n
}

func candidate() domain.UserCandidate {
	return domain.UserCandidate{
		FirstName: "New",
		LastName:  "Person",
		Email:     "New.Person@Example.com",
		Password:  "long-enough",
	}
}

func ptr[T any](v T) *T { return &v }

func TestRegister_DefaultsToPlayerAndHashes(t *testing.T) {
	users := seedUsers()
	uc, n := newUserUsecase(users, auth.DefaultPolicy())

	u, err := uc.Register(context.Background(), candidate())
	require.NoError(t, err)

	assert.Equal(t, domain.RolePlayer, u.Role)
	assert.Equal(t, "new.person@example.com", u.Email)
	assert.Equal(t, "hashed:long-enough", u.PasswordHash)
	assert.Equal(t, []string{"new.person@example.com"}, n.welcomed)
}

func TestRegister_CannotChooseAdmin(t *testing.T) {
	users := seedUsers()
	uc, _ := newUserUsecase(users, auth.DefaultPolicy())

	c := candidate()
	c.Role = domain.RoleAdmin
	_, err := uc.Register(context.Background(), c)

	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, users.created)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	users := seedUsers()
	uc, n := newUserUsecase(users, auth.DefaultPolicy())

	c := candidate()
	c.Email = "CORA@example.com"
	_, err := uc.Register(context.Background(), c)

	require.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, n.welcomed)
}

func TestRegister_ValidationPersistsNothing(t *testing.T) {
	users := seedUsers()
	uc, _ := newUserUsecase(users, auth.DefaultPolicy())

	_, err := uc.Register(context.Background(), domain.UserCandidate{Email: "nope", Password: "x"})

	require.ErrorIs(t, err, domain.ErrValidation)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.GreaterOrEqual(t, len(verr.Violations), 4)
	assert.Empty(t, users.created)
}

func TestCreate_AdminOnly(t *testing.T) {
	tests := []struct {
		name    string
		who     domain.Identity
		wantErr error
	}{
		{"admin", admin, nil},
		{"coach", coachA, domain.ErrForbidden},
		{"anonymous", nobody, domain.ErrUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := seedUsers()
			uc, _ := newUserUsecase(users, auth.DefaultPolicy())

			c := candidate()
			c.Role = domain.RoleCoach
			u, err := uc.Create(context.Background(), tt.who, c)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, users.created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.RoleCoach, u.Role)
		})
	}
}

func TestProvision_AllowsAdminWithoutIdentity(t *testing.T) {
	users := seedUsers()
	uc, n := newUserUsecase(users, auth.NewPolicy())

	c := candidate()
	c.Role = domain.RoleAdmin
	u, err := uc.Provision(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Equal(t, "hashed:long-enough", u.PasswordHash)
	assert.Len(t, users.created, 1)
	assert.Equal(t, []string{"new.person@example.com"}, n.welcomed)
}

func TestProvision_StillValidates(t *testing.T) {
	users := seedUsers()
	uc, _ := newUserUsecase(users, auth.DefaultPolicy())

	c := candidate()
	c.Role = "owner"
	_, err := uc.Provision(context.Background(), c)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, users.created)
}

func TestUpdate_SelfCanEditProfile(t *testing.T) {
	users := seedUsers()
	uc, _ := newUserUsecase(users, auth.DefaultPolicy())

	u, err := uc.Update(context.Background(), player, 4, usecase.UpdateUserInput{
		FirstName: ptr("Patricia"),
		Password:  ptr("brand-new-pass"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Patricia", u.FirstName)
	assert.Equal(t, "Player", u.LastName)
	assert.Equal(t, "hashed:brand-new-pass", u.PasswordHash)
}

func TestUpdate_KeepsHashWhenPasswordAbsent(t *testing.T) {
	users := seedUsers()
	uc, _ := newUserUsecase(users, auth.DefaultPolicy())

	u, err := uc.Update(context.Background(), player, 4, usecase.UpdateUserInput{Phone: ptr("555-0100")})
	require.NoError(t, err)
	assert.Equal(t, "hashed:pat-pass", u.PasswordHash)
}

func TestUpdate_OtherUserForbidden(t *testing.T) {
	users := seedUsers()
	uc, _ := newUserUsecase(users, auth.DefaultPolicy())

	_, err := uc.Update(context.Background(), coachA, 4, usecase.UpdateUserInput{FirstName: ptr("Hacked")})

	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, users.updated)
}

func TestUpdate_CannotEscalateOwnRole(t *testing.T) {
	users := seedUsers()
	uc, _ := newUserUsecase(users, auth.DefaultPolicy())

	_, err := uc.Update(context.Background(), player, 4, usecase.UpdateUserInput{Role: ptr(domain.RoleAdmin)})

	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, users.updated)
}

func TestUpdate_AdminChangesRole(t *testing.T) {
	users := seedUsers()
	uc, _ := newUserUsecase(users, auth.DefaultPolicy())

	u, err := uc.Update(context.Background(), admin, 4, usecase.UpdateUserInput{Role: ptr(domain.RoleCoach)})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCoach, u.Role)
}

func TestUpdate_AdminOverrideDisabled(t *testing.T) {
	users := seedUsers()
	uc, _ := newUserUsecase(users, auth.NewPolicy())

	_, err := uc.Update(context.Background(), admin, 4, usecase.UpdateUserInput{FirstName: ptr("X")})
	require.ErrorIs(t, err, domain.ErrForbidden)

	// own profile is still editable
	_, err = uc.Update(context.Background(), admin, 1, usecase.UpdateUserInput{FirstName: ptr("Adele")})
	require.NoError(t, err)
}

func TestUpdate_MissingUser(t *testing.T) {
	users := seedUsers()
	uc, _ := newUserUsecase(users, auth.DefaultPolicy())

	_, err := uc.Update(context.Background(), admin, 404, usecase.UpdateUserInput{FirstName: ptr("X")})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_InvalidEmailRejected(t *testing.T) {
	users := seedUsers()
	uc, _ := newUserUsecase(users, auth.DefaultPolicy())

	_, err := uc.Update(context.Background(), player, 4, usecase.UpdateUserInput{Email: ptr("not-an-email")})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, users.updated)
}

func TestDelete_User(t *testing.T) {
	tests := []struct {
		name    string
		who     domain.Identity
		wantErr error
	}{
		{"self", player, nil},
		{"admin", admin, nil},
		{"other", coachB, domain.ErrForbidden},
		{"anonymous", nobody, domain.ErrUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := seedUsers()
			uc, _ := newUserUsecase(users, auth.DefaultPolicy())

			err := uc.Delete(context.Background(), tt.who, 4)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, users.deleted)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []int64{4}, users.deleted)
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	uc, _ := newUserUsecase(seedUsers(), auth.DefaultPolicy())

	_, err := uc.Get(context.Background(), 404)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
