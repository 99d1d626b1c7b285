package repository

// Store bundles every table of the service. It is built once at startup and
// handed to the services that need it.
type Store struct {
	Users       *UserRepository
	Profiles    *ProfileRepository
	Alerts      *AlertSettingsRepository
	Sessions    *SessionRepository
	Permissions *PermissionRepository
	Disputes    *DisputeRepository
	Litigation  *LitigationRepository
	Courses     *CourseRepository
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		Users:       NewUserRepository(),
		Profiles:    NewProfileRepository(),
		Alerts:      NewAlertSettingsRepository(),
		Sessions:    NewSessionRepository(),
		Permissions: NewPermissionRepository(),
		Disputes:    NewDisputeRepository(),
		Litigation:  NewLitigationRepository(),
		Courses:     NewCourseRepository(),
	}
}
