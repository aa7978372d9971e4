package handler

import (
	"github.com/donorlink/backend/internal/application/connection"
	donationapp "github.com/donorlink/backend/internal/application/donation"
	"github.com/donorlink/backend/internal/application/identity"
	notificationapp "github.com/donorlink/backend/internal/application/notification"
	requirementapp "github.com/donorlink/backend/internal/application/requirement"
	"github.com/donorlink/backend/internal/infrastructure/auth"
	"github.com/donorlink/backend/internal/infrastructure/config"
	"github.com/donorlink/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// Handlers groups every HTTP handler of the API
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Donation     *DonationHandler
	Requirement  *RequirementHandler
	Connection   *ConnectionHandler
	Notification *NotificationHandler
	System       *SystemHandler
}

// NewHandlers wires the application services over store
func NewHandlers(store persistence.Store, jwtService *auth.JWTService, authCfg config.AuthConfig, log *zap.Logger) *Handlers {
	users := store.Users()
	dispatcher := notificationapp.NewDispatcher(store.Notifications(), users, log)

	authService := identity.NewAuthService(users, jwtService, identity.AuthServiceConfig{
		AllowPasswordlessLogin: authCfg.AllowPasswordlessLogin,
	}, log)

	return &Handlers{
		Auth:         NewAuthHandler(authService),
		User:         NewUserHandler(identity.NewUserService(users)),
		Donation:     NewDonationHandler(donationapp.NewService(store.Donations(), users, dispatcher, log)),
		Requirement:  NewRequirementHandler(requirementapp.NewService(store.Requirements(), users, dispatcher, log)),
		Connection:   NewConnectionHandler(connection.NewService(users, dispatcher, log)),
		Notification: NewNotificationHandler(notificationapp.NewService(store.Notifications())),
		System:       NewSystemHandler(store),
	}
}
