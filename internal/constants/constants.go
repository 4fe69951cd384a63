package constants

// Context keys set by the auth middleware
const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "user_email"
	ContextKeyRole   = "user_role"
)

// User field limits
const (
	MinNameLength     = 4
	MaxNameLength     = 20
	MinPasswordLength = 8
	MaxPasswordLength = 20

	// MaxPasswordBytes is the bcrypt input limit
	MaxPasswordBytes = 72
)

// MaxTitleLength bounds task titles
const MaxTitleLength = 255

// MoneyScale is the number of fractional digits kept for monetary amounts
const MoneyScale = 2

// DateLayout is the accepted calendar date format
const DateLayout = "2006-01-02"
