package handlers

// AppHandlers holds every HTTP handler.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	LearningPostHandler *LearningPostHandler
	SessionHandler      *SessionHandler
	HealthHandler       *HealthHandler
}
