package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrEmailTaken         ErrCode = "EMAIL_ALREADY_REGISTERED"
	ErrSessionActive      ErrCode = "SESSION_ALREADY_ACTIVE"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"
	ErrAdminAccessOnly   ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Sections / Tests ──────────────────────────────────────────────
	ErrSectionNameRequired  ErrCode = "SECTION_NAME_REQUIRED"
	ErrDuplicateSectionName ErrCode = "DUPLICATE_SECTION_NAME"
	ErrInvalidSection       ErrCode = "INVALID_SECTION"
	ErrPriceRequired        ErrCode = "PRICE_REQUIRED"
	ErrTestNotGenerated     ErrCode = "TEST_NOT_GENERATED"
	ErrTestAlreadyGenerated ErrCode = "TEST_ALREADY_GENERATED"
	ErrBankExhausted        ErrCode = "QUESTION_BANK_EXHAUSTED"

	// ─── Questions ─────────────────────────────────────────────────────
	ErrQuestionTextRequired   ErrCode = "QUESTION_TEXT_REQUIRED"
	ErrInsufficientOptions    ErrCode = "INSUFFICIENT_OPTIONS"
	ErrTooManyOptions         ErrCode = "TOO_MANY_OPTIONS"
	ErrNoCorrectAnswer        ErrCode = "NO_CORRECT_ANSWER"
	ErrTooManyCorrectAnswers  ErrCode = "TOO_MANY_CORRECT_ANSWERS"
	ErrUnknownSection         ErrCode = "UNKNOWN_SECTION"
	ErrInvalidImageDimensions ErrCode = "INVALID_IMAGE_DIMENSIONS"

	// ─── Ingestion / Media ─────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrInvalidFileType ErrCode = "INVALID_FILE_TYPE"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"
	ErrMalformedRecord ErrCode = "MALFORMED_RECORD"
	ErrEmptyUpload     ErrCode = "EMPTY_UPLOAD"

	// ─── Payments / Access ─────────────────────────────────────────────
	ErrPaymentRequired   ErrCode = "PAYMENT_REQUIRED"
	ErrOrderNotPending   ErrCode = "ORDER_NOT_PENDING"
	ErrSignatureMismatch ErrCode = "SIGNATURE_MISMATCH"
	ErrGatewayFailure    ErrCode = "GATEWAY_FAILURE"
	ErrAlreadyEnrolled   ErrCode = "ALREADY_ENROLLED"
	ErrItemIsFree        ErrCode = "ITEM_IS_FREE"

	// ─── Attempts ──────────────────────────────────────────────────────
	ErrAttemptActive      ErrCode = "ATTEMPT_ALREADY_ACTIVE"
	ErrAttemptNotActive   ErrCode = "ATTEMPT_NOT_ACTIVE"
	ErrAttemptNotScored   ErrCode = "ATTEMPT_NOT_SCORED"
	ErrNotAttemptOwner    ErrCode = "NOT_ATTEMPT_OWNER"
	ErrAttemptTimeElapsed ErrCode = "ATTEMPT_TIME_ELAPSED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrEmailTaken:
		return "An account with this email already exists."
	case ErrSessionActive:
		return "You are already logged in on another device."
	case ErrSessionInvalidated:
		return "Your session has expired. Please log in again."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid or expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrDependencyExists:
		return "This record is still referenced by other data and cannot be deleted."

	// ─── Sections / Tests ──────────────────────────────────────────────
	case ErrSectionNameRequired:
		return "Every section needs a name."
	case ErrDuplicateSectionName:
		return "Section names must be unique within a test or pattern."
	case ErrInvalidSection:
		return "Section values are out of range."
	case ErrPriceRequired:
		return "Paid tests require a price of at least 1."
	case ErrTestNotGenerated:
		return "This test has not been generated yet."
	case ErrTestAlreadyGenerated:
		return "This test has already been generated."
	case ErrBankExhausted:
		return "Not enough questions in the bank to fill every section."

	// ─── Questions ─────────────────────────────────────────────────────
	case ErrQuestionTextRequired:
		return "Question text is required."
	case ErrInsufficientOptions:
		return "At least 2 options are required."
	case ErrTooManyOptions:
		return "At most 6 options are allowed."
	case ErrNoCorrectAnswer:
		return "Mark at least one option as correct."
	case ErrTooManyCorrectAnswers:
		return "A single-choice question can only have one correct option."
	case ErrUnknownSection:
		return "The question's section does not exist on this test."
	case ErrInvalidImageDimensions:
		return "Image width or height is out of range."

	// ─── Ingestion / Media ─────────────────────────────────────────────
	case ErrFileRequired:
		return "A file upload is required."
	case ErrInvalidFileType:
		return "Only .json and .csv files are accepted."
	case ErrUnsupportedFile:
		return "Unsupported file type."
	case ErrFileTooLarge:
		return "File exceeds the size limit."
	case ErrMalformedRecord:
		return "One or more rows in the upload are malformed."
	case ErrEmptyUpload:
		return "The upload contained no valid questions."

	// ─── Payments / Access ─────────────────────────────────────────────
	case ErrPaymentRequired:
		return "Purchase this content to access it."
	case ErrOrderNotPending:
		return "This order is no longer pending."
	case ErrSignatureMismatch:
		return "Payment verification failed."
	case ErrGatewayFailure:
		return "The payment gateway could not process the request. Please try again."
	case ErrAlreadyEnrolled:
		return "You already own this content."
	case ErrItemIsFree:
		return "This content is free and does not need an order."

	// ─── Attempts ──────────────────────────────────────────────────────
	case ErrAttemptActive:
		return "You already have an attempt in progress for this test."
	case ErrAttemptNotActive:
		return "This attempt is not in progress."
	case ErrAttemptNotScored:
		return "This attempt has not been scored yet."
	case ErrNotAttemptOwner:
		return "This attempt belongs to another student."
	case ErrAttemptTimeElapsed:
		return "Time is up for this attempt."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
