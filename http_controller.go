package credentials

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// UsersControllerRoutes are the mounted paths.
type UsersControllerRoutes struct {
	Register       string
	Authenticate   string
	Inactivate     string
	UpdatePassword string
	Test           string
}

// UsersController exposes the lifecycle service as a JSON API. It
// derives the caller's identity from the verified claim stored by
// ProtectedRoute, falling back to the raw Authorization header on
// anonymous routes so an authenticated caller hitting Register is still
// rejected.
type UsersController struct {
	Debug        bool
	Logger       Logger
	Service      *Service
	Routes       *UsersControllerRoutes
	ErrorHandler func(router.Context, error) error
}

type UsersControllerOption func(*UsersController) *UsersController

func NewUsersController(service *Service, opts ...UsersControllerOption) *UsersController {
	c := &UsersController{
		Logger:       defLogger{},
		Service:      service,
		ErrorHandler: defaultErrHandler,
		Routes: &UsersControllerRoutes{
			Register:       "/register",
			Authenticate:   "/authenticate",
			Inactivate:     "/inactivate",
			UpdatePassword: "/update-password",
			Test:           "/test",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Service == nil {
		panic("Missing Service in users controller...")
	}

	return c
}

func WithControllerLogger(logger Logger) UsersControllerOption {
	return func(c *UsersController) *UsersController {
		c.Logger = logger
		return c
	}
}

func WithControllerErrorHandler(handler func(router.Context, error) error) UsersControllerOption {
	return func(c *UsersController) *UsersController {
		c.ErrorHandler = handler
		return c
	}
}

// RegisterUserRoutes mounts the controller. Register and Authenticate
// are anonymous; Inactivate, UpdatePassword, and Test go behind the
// protected middleware.
func RegisterUserRoutes[T any](app router.Router[T], controller *UsersController, protected router.MiddlewareFunc) {
	app.Post(controller.Routes.Register, controller.Register).
		SetName("users.register")

	app.Post(controller.Routes.Authenticate, controller.Authenticate).
		SetName("users.authenticate")

	app.Delete(controller.Routes.Inactivate, controller.Inactivate, protected).
		SetName("users.inactivate")

	app.Put(controller.Routes.UpdatePassword, controller.UpdatePassword, protected).
		SetName("users.update-password")

	app.Get(controller.Routes.Test, controller.Test, protected).
		SetName("users.test")
}

func (a *UsersController) Register(ctx router.Context) error {
	payload := new(RegistrationMessage)
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, bindError(err))
	}

	if a.Debug {
		fmt.Println(print.MaybePrettyJSON(payload))
	}

	requestedBy, err := a.requestedBy(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := a.Service.Register(ctx.Context(), *payload, requestedBy); err != nil {
		a.Logger.Error("register user error", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"message": fmt.Sprintf("User %s registered.", payload.Email),
	})
}

func (a *UsersController) Authenticate(ctx router.Context) error {
	payload := new(AuthenticationMessage)
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, bindError(err))
	}

	requestedBy, err := a.requestedBy(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	token, err := a.Service.Authenticate(ctx.Context(), *payload, requestedBy)
	if err != nil {
		a.Logger.Error("authenticate user error", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"token": token,
	})
}

func (a *UsersController) Inactivate(ctx router.Context) error {
	payload := new(InactivationMessage)
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, bindError(err))
	}

	requestedBy, err := a.requestedBy(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := a.Service.Inactivate(ctx.Context(), *payload, requestedBy); err != nil {
		a.Logger.Error("inactivate user error", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"message": fmt.Sprintf("Inactivated user %s.", payload.Email),
	})
}

func (a *UsersController) UpdatePassword(ctx router.Context) error {
	payload := new(UpdatePasswordMessage)
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, bindError(err))
	}

	requestedBy, err := a.requestedBy(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := a.Service.UpdatePassword(ctx.Context(), *payload, requestedBy); err != nil {
		a.Logger.Error("update password error", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"message": fmt.Sprintf("Updated password for user %s.", payload.Email),
	})
}

// Test answers 200 behind the protected middleware; an authorization
// smoke check for clients.
func (a *UsersController) Test(ctx router.Context) error {
	return ctx.JSON(fiber.StatusOK, map[string]any{
		"message": "Authorized.",
	})
}

// requestedBy resolves the caller identity: the verified claim when the
// protected middleware ran, otherwise the claim extracted, unverified,
// from the Authorization header, "" when the header is absent.
func (a *UsersController) requestedBy(ctx router.Context) (string, error) {
	if claim := ClaimFromContext(ctx); claim != "" {
		return claim, nil
	}

	authorization := ctx.GetString(router.HeaderAuthorization, "")
	if authorization == "" {
		return "", nil
	}

	return ExtractClaim(authorization)
}

func bindError(err error) error {
	return errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body").
		WithCode(errors.CodeBadRequest)
}

func defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	return c.JSON(richErr.Code, map[string]any{
		"error":     richErr.Message,
		"text_code": richErr.TextCode,
	})
}
