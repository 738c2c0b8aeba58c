package enums

// UserRole maps to users.role. Registration only ever writes UserRoleUser.
type UserRole string

const (
	UserRoleUser UserRole = "user"
)

// ActorRole tags log lines and events with who performed an operation.
type ActorRole string

const (
	ActorUser      ActorRole = "user"
	ActorVolunteer ActorRole = "volunteer"
	ActorAdmin     ActorRole = "admin"
	ActorAnonymous ActorRole = "anonymous"
)
