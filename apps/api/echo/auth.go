package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/edutrack/backend/core"
	"github.com/edutrack/backend/core/school"
	"github.com/edutrack/backend/core/user"
)

const (
	jwtContextKey      = "userToken"
	contextIdentityKey = "identity"
)

// newJWTConfig returns the JWT auth middleware config.
func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    conf.SecretKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    jwtContextKey,
		Claims:        new(Claims),
	}
}

// Claims represents the authorization claims transmitted via a JWT.
// The role flags are hints for clients; authorization always re-resolves the
// user behind Subject.
type Claims struct {
	jwt.StandardClaims
	Username  string `json:"username,omitempty"`
	IsStudent bool   `json:"is_student,omitempty"`
	IsTeacher bool   `json:"is_teacher,omitempty"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
}

func GetUserClaims(conf *core.Config, usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   usr.ID,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username:  usr.Username,
		IsStudent: usr.IsStudent(),
		IsTeacher: usr.IsTeacher(),
		IsAdmin:   usr.IsAdmin(),
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)
	ss, err := token.SignedString(conf.SecretKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

// authenticate checks the credentials against the user store. Unknown
// usernames and wrong passwords fail identically.
func authenticate(ctx echo.Context, uname, pwd string, svc *user.Service) (user.User, error) {
	usr, err := svc.GetByUsernameOrEmail(ctx.Request().Context(), uname)
	if err != nil {
		if err == user.ErrNotFound {
			return user.User{}, errAuthenticationFailed
		}
		return user.User{}, errors.Wrap(err, "finding user by username or email")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return user.User{}, errAuthenticationFailed
	}
	return usr, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(jwtContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// Identity is the per-request resolved caller: the user behind the token
// Subject plus its bound profile id, when the role has one.
type Identity struct {
	UserID    string
	Role      string
	User      user.User
	StudentID string // set for students
	TeacherID string // set for teachers
}

func (i Identity) IsAdmin() bool   { return i.Role == user.RoleAdmin }
func (i Identity) IsTeacher() bool { return i.Role == user.RoleTeacher }
func (i Identity) IsStudent() bool { return i.Role == user.RoleStudent }

type identityResolver struct {
	users  *user.Service
	school *school.Service
}

// resolve maps the request token to an Identity, caching it on the context.
// Every failure mode collapses to errUnauthorized so callers cannot probe
// which part of the credential was wrong.
func (r *identityResolver) resolve(ctx echo.Context) (Identity, error) {
	if ident, ok := ctx.Get(contextIdentityKey).(Identity); ok {
		return ident, nil
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return Identity{}, err
	}
	reqCtx := ctx.Request().Context()

	usr, err := r.users.GetByID(reqCtx, claims.Subject)
	if err != nil {
		return Identity{}, errUnauthorized
	}

	ident := Identity{UserID: usr.ID, Role: usr.Role, User: usr}
	switch usr.Role {
	case user.RoleStudent:
		st, err := r.school.GetStudentByUserID(reqCtx, usr.ID)
		if err != nil {
			return Identity{}, errUnauthorized
		}
		ident.StudentID = st.ID
	case user.RoleTeacher:
		t, err := r.school.GetTeacherByUserID(reqCtx, usr.ID)
		if err != nil {
			return Identity{}, errUnauthorized
		}
		ident.TeacherID = t.ID
	}

	ctx.Set(contextIdentityKey, ident)
	return ident, nil
}
