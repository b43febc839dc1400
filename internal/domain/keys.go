package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRoles CtxKey = "Roles"
	KeyRequestID CtxKey = "RequestID"
)
