package planner

// NoHistorySentinel is returned by SummarizeHistory when a user has no
// usable prior plans. The prompt builder renders it verbatim so the model
// is told explicitly that no history exists instead of inferring it from
// an omitted section.
const NoHistorySentinel = "No previous meal history available"

// Skip reason labels. Used as metric label values and log fields.
const (
	SkipOnboarding   = "skip_onboarding"
	SkipInvalidEmail = "skip_invalid_email"
	SkipUnsubscribed = "skip_unsubscribed"
	SkipPlanExists   = "skip_plan_exists"
	SkipNoSignal     = "skip_no_signal"
)

// Observability label constants
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Log field name constants
const (
	LogFieldCorrelationID = "correlation_id"
	LogFieldUserID        = "user_id"
	LogFieldWeekStart     = "week_start"
	LogFieldTrigger       = "trigger"
	LogFieldReason        = "reason"
	LogFieldCandidates    = "candidates"
	LogFieldProcessed     = "processed"
	LogFieldSuccess       = "success"
	LogFieldFailed        = "failed"
	LogFieldInvalidEmails = "invalid_emails"
)

// History summarization constants.
const (
	// historyKeepWeeks caps how many non-empty prior weeks feed the prompt.
	historyKeepWeeks = 2

	// historyDishSeparator joins the dish names within one day line.
	historyDishSeparator = " / "

	// emptySlotToken marks a blank meal slot in a history line.
	emptySlotToken = "empty"
)

// schemaPlaceholder is the literal value the prompt's JSON schema uses
// for every meal slot the model must fill in.
const schemaPlaceholder = "meal name"
