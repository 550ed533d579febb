package credentials_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-credentials"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestController() *credentials.UsersController {
	service := credentials.NewService(new(MockUserStore), credentials.NewTokenService(newTestConfig(), nil))
	return credentials.NewUsersController(service)
}

func TestNewUsersController(t *testing.T) {
	t.Run("panics without a service", func(t *testing.T) {
		assert.Panics(t, func() {
			credentials.NewUsersController(nil)
		})
	})

	t.Run("default routes", func(t *testing.T) {
		ctrl := newTestController()

		assert.Equal(t, "/register", ctrl.Routes.Register)
		assert.Equal(t, "/authenticate", ctrl.Routes.Authenticate)
		assert.Equal(t, "/inactivate", ctrl.Routes.Inactivate)
		assert.Equal(t, "/update-password", ctrl.Routes.UpdatePassword)
		assert.Equal(t, "/test", ctrl.Routes.Test)
		assert.NotNil(t, ctrl.ErrorHandler)
	})

	t.Run("options apply", func(t *testing.T) {
		var handled error
		ctrl := credentials.NewUsersController(
			credentials.NewService(new(MockUserStore), credentials.NewTokenService(newTestConfig(), nil)),
			credentials.WithControllerErrorHandler(func(_ router.Context, err error) error {
				handled = err
				return nil
			}),
		)

		ctx := router.NewMockContext()
		require.NoError(t, ctrl.ErrorHandler(ctx, credentials.ErrUnauthorized))
		assert.ErrorIs(t, handled, credentials.ErrUnauthorized)
	})
}

func TestControllerTestEndpoint(t *testing.T) {
	ctrl := newTestController()

	ctx := router.NewMockContext()
	var payload map[string]any
	ctx.On("JSON", fiber.StatusOK, mock.Anything).Run(func(args mock.Arguments) {
		payload = args.Get(1).(map[string]any)
	}).Return(nil).Once()

	require.NoError(t, ctrl.Test(ctx))
	assert.Equal(t, "Authorized.", payload["message"])
	ctx.AssertExpectations(t)
}
