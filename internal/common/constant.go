package common

// Keys of the values kept in the durable key/value store.
const (
	UsersKey             = "mindcandy_users"
	VerificationCodesKey = "mindcandy_verification_codes"
	UserProgressKey      = "mindcandy_user_progress"
	CurrentUserKey       = "mindcandy_current_user_id"
	SessionSecretKey     = "mindcandy_session_secret"
)

// BackupSuffix is appended to a key when an undecodable value is set aside.
const BackupSuffix = ".bak"
